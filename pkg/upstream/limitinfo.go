package upstream

import (
	"context"
	"strings"
	"time"

	"github.com/zxl7/laicai/pkg/fetch"
	"github.com/zxl7/laicai/pkg/symbol"
)

const biyingReferer = "https://api.biyingapi.com/"

// LimitInfo 第三方涨跌停信息的原始记录
type LimitInfo struct {
	// Code 代码别名字段 ii
	Code string
	// Name 名称
	Name string
	// PrevClose 昨收 pc
	PrevClose float64
	// Up 涨停价 up，0表示上游未给出
	Up float64
	// Down 跌停价 dp
	Down float64
	// Flag 显式标记 is：1=涨停 -1=跌停 0=未触及
	Flag int
}

// LimitInfoSource 第三方涨跌停信息源，GET {base}/{instrument}/{api_key}
type LimitInfoSource struct {
	client  *fetch.Client
	baseURL string
	apiKey  string
}

// NewLimitInfoSource 创建涨跌停信息源
func NewLimitInfoSource(client *fetch.Client, baseURL, apiKey string) *LimitInfoSource {
	return &LimitInfoSource{client: client, baseURL: strings.TrimSuffix(baseURL, "/"), apiKey: apiKey}
}

// Configured 基础地址是否指向涨跌停信息服务。
// 只有biyingapi风格的地址（或显式 /hsstock/instrument 路径）才走此源。
func (l *LimitInfoSource) Configured() bool {
	return l.baseURL != "" &&
		(strings.Contains(l.baseURL, "biyingapi.com") || strings.HasSuffix(l.baseURL, "/hsstock/instrument"))
}

// Fetch 获取涨跌停原始信息。apiKey为空时用构造时配置的licence。
func (l *LimitInfoSource) Fetch(ctx context.Context, sym symbol.Symbol, apiKey string) (*LimitInfo, error) {
	if apiKey == "" {
		apiKey = l.apiKey
	}
	url := l.baseURL + "/" + symbol.ToInstrument(sym)
	if apiKey != "" {
		url += "/" + apiKey
	}
	var data map[string]any
	if err := l.client.GetJSON(ctx, url, nil, biyingReferer, 10*time.Second, &data); err != nil {
		return nil, err
	}
	return &LimitInfo{
		Code:      asString(data["ii"]),
		Name:      asString(data["name"]),
		PrevClose: asFloat(data["pc"]),
		Up:        asFloat(data["up"]),
		Down:      asFloat(data["dp"]),
		Flag:      asInt(data["is"]),
	}, nil
}
