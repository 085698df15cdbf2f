package upstream

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/zxl7/laicai/pkg/convert"
	"github.com/zxl7/laicai/pkg/errs"
	"github.com/zxl7/laicai/pkg/fetch"
	"github.com/zxl7/laicai/pkg/model"
	"github.com/zxl7/laicai/pkg/symbol"
)

const sinaReferer = "https://finance.sina.com.cn/"

// 响应形如 var hq_str_sh600000="浦发银行,10.00,9.90,...";
var sinaPayload = regexp.MustCompile(`"([^"]*)"\s*;`)

// SinaQuoteSource 新浪免费行情源。
// 返回单条带引号的逗号分隔文本，字段位置由上游约定固定：
// 0=名称 1=今开 2=昨收 3=现价 4=最高 5=最低 30=日期 31=时间。
type SinaQuoteSource struct {
	client  *fetch.Client
	baseURL string
}

// NewSinaQuoteSource 创建新浪行情源
func NewSinaQuoteSource(client *fetch.Client, baseURL string) *SinaQuoteSource {
	return &SinaQuoteSource{client: client, baseURL: strings.TrimSuffix(baseURL, "/")}
}

// Fetch 获取一只股票的行情。收盘时段上游可能缺省尾部字段，
// 按位缺省回退：今开→0，昨收→今开，现价→昨收，最高/最低→现价。
func (s *SinaQuoteSource) Fetch(ctx context.Context, sym symbol.Symbol) (*model.Quote, error) {
	url := s.baseURL + "/list=" + string(sym)
	text, err := s.client.GetText(ctx, url, nil, sinaReferer, 5*time.Second)
	if err != nil {
		return nil, err
	}

	m := sinaPayload.FindStringSubmatch(text)
	if m == nil {
		return nil, fmt.Errorf("%w: 未获取到行情数据", errs.ErrMalformedResponse)
	}
	parts := strings.Split(m[1], ",")
	if len(parts) < 32 {
		return nil, fmt.Errorf("%w: 行情数据字段不足(%d)", errs.ErrMalformedResponse, len(parts))
	}

	field := func(i int, fallback float64) float64 {
		if v, ok := convert.ParseFloat(parts[i]); ok {
			return v
		}
		return fallback
	}
	open := field(1, 0)
	prevClose := field(2, open)
	price := field(3, prevClose)
	high := field(4, price)
	low := field(5, price)

	changeAmount := price - prevClose
	changePercent := 0.0
	if prevClose != 0 {
		changePercent = changeAmount / prevClose * 100
	}

	return &model.Quote{
		Code:          sym.Code(),
		Name:          parts[0],
		Price:         price,
		ChangePercent: changePercent,
		ChangeAmount:  changeAmount,
		Open:          open,
		High:          high,
		Low:           low,
		PrevClose:     prevClose,
		Time:          parts[30] + " " + parts[31],
	}, nil
}
