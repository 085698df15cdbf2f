package upstream

import (
	"context"
	"net/url"
	"strings"
	"time"

	"github.com/zxl7/laicai/pkg/fetch"
	"github.com/zxl7/laicai/pkg/model"
)

// GenericQuoteSource 通用第三方行情覆盖源，GET {base}/quote?symbol=&api_key=。
// 严格来说是"有则用之"：接口不可达、非200、缺少必需字段都视为无结果
// 而不是错误，让编排层落回免费源。
type GenericQuoteSource struct {
	client  *fetch.Client
	baseURL string
	apiKey  string
}

// NewGenericQuoteSource 创建通用第三方行情源，baseURL为空表示未配置
func NewGenericQuoteSource(client *fetch.Client, baseURL, apiKey string) *GenericQuoteSource {
	return &GenericQuoteSource{client: client, baseURL: strings.TrimSuffix(baseURL, "/"), apiKey: apiKey}
}

var genericRequiredKeys = []string{"code", "name", "price", "prev_close", "open", "high", "low", "time"}

// Fetch 获取行情，返回 nil, nil 表示无结果（未配置或接口不符合约定）
func (g *GenericQuoteSource) Fetch(ctx context.Context, rawSymbol string) (*model.Quote, error) {
	if g.baseURL == "" {
		return nil, nil
	}
	// 涨跌停信息地址被误配成行情覆盖源时跳过
	if strings.Contains(g.baseURL, "biyingapi.com") || strings.HasSuffix(g.baseURL, "/hsstock/instrument") {
		return nil, nil
	}

	params := url.Values{"symbol": {rawSymbol}}
	if g.apiKey != "" {
		params.Set("api_key", g.apiKey)
	}
	var data map[string]any
	if err := g.client.GetJSON(ctx, g.baseURL+"/quote", params, "", 10*time.Second, &data); err != nil {
		return nil, nil
	}
	for _, k := range genericRequiredKeys {
		if _, ok := data[k]; !ok {
			return nil, nil
		}
	}

	orDefault := func(key string, fallback float64) float64 {
		if data[key] == nil {
			return fallback
		}
		return asFloat(data[key])
	}
	price := orDefault("price", 0)
	prevClose := orDefault("prev_close", price)
	changeAmount := price - prevClose
	changePercent := 0.0
	if prevClose != 0 {
		changePercent = changeAmount / prevClose * 100
	}

	return &model.Quote{
		Code:          asString(data["code"]),
		Name:          asString(data["name"]),
		Price:         price,
		ChangePercent: changePercent,
		ChangeAmount:  changeAmount,
		Open:          orDefault("open", price),
		High:          orDefault("high", price),
		Low:           orDefault("low", price),
		PrevClose:     prevClose,
		Time:          asString(data["time"]),
	}, nil
}
