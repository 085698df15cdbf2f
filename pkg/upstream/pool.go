package upstream

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/zxl7/laicai/pkg/errs"
	"github.com/zxl7/laicai/pkg/fetch"
	"github.com/zxl7/laicai/pkg/model"
)

// PoolKind 股池种类
type PoolKind string

const (
	PoolLimitUp   PoolKind = "ztgc" // 涨停股池
	PoolLimitDown PoolKind = "dtgc" // 跌停股池
	PoolBreak     PoolKind = "zbgc" // 炸板股池
	PoolStrong    PoolKind = "qsgc" // 强势股池
)

// PoolResult 单次股池查询结果，同一时间只有一种条目非空
type PoolResult struct {
	LimitUp   []model.LimitUpPoolItem   `json:"limit_up,omitempty"`
	LimitDown []model.LimitDownPoolItem `json:"limit_down,omitempty"`
	Break     []model.BreakPoolItem     `json:"break,omitempty"`
	Strong    []model.StrongPoolItem    `json:"strong,omitempty"`
}

// PoolClient 四种股池接口客户端，GET {base}/{date}/{api_key}。
// 这些接口没有免费替代，缺少licence直接失败，不做静默回退。
type PoolClient struct {
	client *fetch.Client
	bases  map[PoolKind]string
}

// NewPoolClient 创建股池客户端
func NewPoolClient(client *fetch.Client, bases map[PoolKind]string) *PoolClient {
	trimmed := make(map[PoolKind]string, len(bases))
	for k, v := range bases {
		trimmed[k] = strings.TrimSuffix(v, "/")
	}
	return &PoolClient{client: client, bases: trimmed}
}

// Fetch 查询指定种类的股池。date为空时取本地当日（YYYY-MM-DD）。
// 强势股池在HTTPS整体失败时降级重试一次HTTP。
func (p *PoolClient) Fetch(ctx context.Context, kind PoolKind, date, apiKey string) (*PoolResult, error) {
	base, ok := p.bases[kind]
	if !ok || base == "" {
		return nil, fmt.Errorf("%w: 未知股池种类 %q", errs.ErrMalformedResponse, kind)
	}
	if apiKey == "" {
		return nil, errs.ErrMissingCredential
	}
	if date == "" {
		date = time.Now().Format("2006-01-02")
	}
	url := base + "/" + date + "/" + apiKey

	body, err := p.client.Get(ctx, url, nil, biyingReferer, 10*time.Second)
	if err != nil && kind == PoolStrong && strings.HasPrefix(base, "https://") {
		// 该上游的HTTPS端点时有故障，降级走明文HTTP再试一次
		alt := "http://" + strings.TrimPrefix(base, "https://") + "/" + date + "/" + apiKey
		body, err = p.client.Get(ctx, alt, nil, biyingReferer, 10*time.Second)
	}
	if err != nil {
		return nil, err
	}

	var rows []map[string]any
	if err := json.Unmarshal(body, &rows); err != nil {
		return nil, poolBodyError(body)
	}

	result := &PoolResult{}
	switch kind {
	case PoolLimitUp:
		result.LimitUp = make([]model.LimitUpPoolItem, 0, len(rows))
		for _, it := range rows {
			result.LimitUp = append(result.LimitUp, mapLimitUpItem(it))
		}
	case PoolLimitDown:
		result.LimitDown = make([]model.LimitDownPoolItem, 0, len(rows))
		for _, it := range rows {
			result.LimitDown = append(result.LimitDown, mapLimitDownItem(it))
		}
	case PoolBreak:
		result.Break = make([]model.BreakPoolItem, 0, len(rows))
		for _, it := range rows {
			result.Break = append(result.Break, mapBreakItem(it))
		}
	case PoolStrong:
		result.Strong = make([]model.StrongPoolItem, 0, len(rows))
		for _, it := range rows {
			result.Strong = append(result.Strong, mapStrongItem(it))
		}
	}
	return result, nil
}

// poolBodyError 非数组响应体里尽量带出上游给的错误说明
func poolBodyError(body []byte) error {
	var obj map[string]any
	if json.Unmarshal(body, &obj) == nil {
		for _, k := range []string{"error", "msg", "message"} {
			if v := asString(obj[k]); v != "" {
				return fmt.Errorf("%w: %s", errs.ErrMalformedResponse, v)
			}
		}
	}
	return fmt.Errorf("%w: 股池返回非数组", errs.ErrMalformedResponse)
}

func mapLimitUpItem(it map[string]any) model.LimitUpPoolItem {
	return model.LimitUpPoolItem{
		Code:              asString(it["dm"]),
		Name:              asString(it["mc"]),
		Price:             asFloat(it["p"]),
		ChangePercent:     asFloat(it["zf"]),
		Amount:            asFloat(it["cje"]),
		FloatMarketCap:    asFloat(it["lt"]),
		TotalMarketCap:    asFloat(it["zsz"]),
		TurnoverRate:      asFloat(it["hs"]),
		ConsecutiveBoards: asInt(it["lbc"]),
		FirstBoardTime:    asString(it["fbt"]),
		LastBoardTime:     asString(it["lbt"]),
		SealFunds:         asFloat(it["zj"]),
		BrokenBoards:      asInt(it["zbc"]),
		Stat:              asString(it["tj"]),
	}
}

func mapLimitDownItem(it map[string]any) model.LimitDownPoolItem {
	return model.LimitDownPoolItem{
		Code:             asString(it["dm"]),
		Name:             asString(it["mc"]),
		Price:            asFloat(it["p"]),
		ChangePercent:    asFloat(it["zf"]),
		Amount:           asFloat(it["cje"]),
		FloatMarketCap:   asFloat(it["lt"]),
		TotalMarketCap:   asFloat(it["zsz"]),
		PERatio:          asFloat(it["pe"]),
		TurnoverRate:     asFloat(it["hs"]),
		SealFunds:        asFloat(it["fj"]),
		LastBoardTime:    asString(it["lbt"]),
		BoardAmount:      asFloat(it["bc"]),
		ConsecutiveDowns: asInt(it["lbc"]),
		OpenedBoards:     asInt(it["kbc"]),
	}
}

func mapBreakItem(it map[string]any) model.BreakPoolItem {
	return model.BreakPoolItem{
		Code:           asString(it["dm"]),
		Name:           asString(it["mc"]),
		Price:          asFloat(it["p"]),
		ChangePercent:  asFloat(it["zf"]),
		LimitUpPrice:   asFloat(it["ztp"]),
		Amount:         asFloat(it["cje"]),
		FloatMarketCap: asFloat(it["lt"]),
		TotalMarketCap: asFloat(it["zsz"]),
		TurnoverRate:   asFloat(it["hs"]),
		FirstBoardTime: asString(it["fbt"]),
		BrokenBoards:   asInt(it["zbc"]),
		Stat:           asString(it["tj"]),
	}
}

func mapStrongItem(it map[string]any) model.StrongPoolItem {
	return model.StrongPoolItem{
		Code:           asString(it["dm"]),
		Name:           asString(it["mc"]),
		Price:          asFloat(it["p"]),
		ChangePercent:  asFloat(it["zf"]),
		LimitUpPrice:   asFloat(it["ztp"]),
		Amount:         asFloat(it["cje"]),
		FloatMarketCap: asFloat(it["lt"]),
		TotalMarketCap: asFloat(it["zsz"]),
		TurnoverRate:   asFloat(it["hs"]),
		VolumeRatio:    asFloat(it["lb"]),
		RiseSpeed:      asFloat(it["zs"]),
		IsNewHigh:      asInt(it["nh"]),
		Stat:           asString(it["tj"]),
		Reason:         asString(it["rx"]),
		Industry:       asString(it["hy"]),
	}
}
