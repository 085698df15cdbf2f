package upstream

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/zxl7/laicai/pkg/errs"
	"github.com/zxl7/laicai/pkg/fetch"
	"github.com/zxl7/laicai/pkg/model"
	"github.com/zxl7/laicai/pkg/symbol"
)

// AkshareSource AKShare aktools边车数据源。
// 边车把akshare暴露为HTTP接口，全市场快照一次返回，
// 列名是中文；这里取出目标代码一行映射为行情。
type AkshareSource struct {
	client  *fetch.Client
	baseURL string
}

const akshareSpotPath = "/api/public/stock_zh_a_spot_em"

// NewAkshareSource 创建AKShare数据源，baseURL为空表示未启用
func NewAkshareSource(client *fetch.Client, baseURL string) *AkshareSource {
	return &AkshareSource{client: client, baseURL: strings.TrimSuffix(baseURL, "/")}
}

// Enabled 是否配置了边车地址
func (a *AkshareSource) Enabled() bool { return a.baseURL != "" }

// Fetch 从全市场快照中取出一只股票的行情。
// 快照较大，抓取走共享缓存，同一TTL窗口内多只股票只发一次请求。
func (a *AkshareSource) Fetch(ctx context.Context, sym symbol.Symbol) (*model.Quote, error) {
	if !a.Enabled() {
		return nil, fmt.Errorf("%w: akshare边车未配置", errs.ErrUpstreamUnavailable)
	}
	var rows []map[string]any
	if err := a.client.GetJSON(ctx, a.baseURL+akshareSpotPath, nil, "", 120*time.Second, &rows); err != nil {
		return nil, err
	}

	code := sym.Code()
	for _, row := range rows {
		if asString(row["代码"]) != code {
			continue
		}
		price := asFloat(row["最新价"])
		prevClose := asFloat(row["昨收"])
		if prevClose == 0 {
			prevClose = price
		}
		changeAmount := price - prevClose
		changePercent := 0.0
		if prevClose != 0 {
			changePercent = changeAmount / prevClose * 100
		}
		high := asFloat(row["最高"])
		if high == 0 {
			high = price
		}
		low := asFloat(row["最低"])
		if low == 0 {
			low = price
		}
		name := asString(row["名称"])
		t := asString(row["最新交易日"])
		if t == "" {
			t = asString(row["更新时间"])
		}
		return &model.Quote{
			Code:          code,
			Name:          name,
			Price:         price,
			ChangePercent: changePercent,
			ChangeAmount:  changeAmount,
			Open:          asFloat(row["今开"]),
			High:          high,
			Low:           low,
			PrevClose:     prevClose,
			Time:          t,
		}, nil
	}
	return nil, fmt.Errorf("%w: akshare快照中未找到代码 %s", errs.ErrMalformedResponse, code)
}
