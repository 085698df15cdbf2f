// Package resolve 按能力编排多个上游：每种能力维护一条固定顺序的源链，
// 用"先成功者胜"的组合器消费，中间失败被收集进聚合错误而不是逐层抛出。
package resolve

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/zxl7/laicai/pkg/convert"
	"github.com/zxl7/laicai/pkg/errs"
	"github.com/zxl7/laicai/pkg/model"
	"github.com/zxl7/laicai/pkg/shape"
	"github.com/zxl7/laicai/pkg/symbol"
	"github.com/zxl7/laicai/pkg/upstream"
)

const epsilon = 1e-6

// PoolSnapshotStore 股池快照存储，上游失败时充当最后的兜底数据源
type PoolSnapshotStore interface {
	SavePool(kind string, result *upstream.PoolResult)
	LoadPool(kind string) (*upstream.PoolResult, bool)
}

// Resolver 各能力的编排入口
type Resolver struct {
	generic   *upstream.GenericQuoteSource
	sina      *upstream.SinaQuoteSource
	akshare   *upstream.AkshareSource
	limitInfo *upstream.LimitInfoSource
	pools     *upstream.PoolClient
	realtime  *upstream.RealtimeClient
	profile   *upstream.ProfileSource
	snapshots PoolSnapshotStore
	apiKey    string
}

// New 创建编排器。snapshots可为nil表示不启用股池快照兜底。
func New(
	generic *upstream.GenericQuoteSource,
	sina *upstream.SinaQuoteSource,
	akshare *upstream.AkshareSource,
	limitInfo *upstream.LimitInfoSource,
	pools *upstream.PoolClient,
	realtime *upstream.RealtimeClient,
	profile *upstream.ProfileSource,
	snapshots PoolSnapshotStore,
	apiKey string,
) *Resolver {
	return &Resolver{
		generic:   generic,
		sina:      sina,
		akshare:   akshare,
		limitInfo: limitInfo,
		pools:     pools,
		realtime:  realtime,
		profile:   profile,
		snapshots: snapshots,
		apiKey:    apiKey,
	}
}

// quoteSource 行情源链上的一环。返回 nil, nil 表示无结果，继续下一环。
type quoteSource struct {
	name  string
	fetch func(ctx context.Context) (*model.Quote, error)
}

// firstQuote 按顺序尝试各源，第一个拿到结果的胜出；
// 全部失败时返回带每个源失败原因的聚合错误。
func firstQuote(ctx context.Context, sources []quoteSource) (*model.Quote, error) {
	failures := make([]string, 0, len(sources))
	for _, s := range sources {
		q, err := s.fetch(ctx)
		if err != nil {
			failures = append(failures, fmt.Sprintf("%s: %v", s.name, err))
			continue
		}
		if q == nil {
			failures = append(failures, s.name+": 无结果")
			continue
		}
		return q, nil
	}
	return nil, fmt.Errorf("%w: 所有行情源失败 [%s]", errs.ErrUpstreamUnavailable, strings.Join(failures, "; "))
}

// GetQuote 获取行情：第三方覆盖源优先，无结果时落回新浪免费源
func (r *Resolver) GetQuote(ctx context.Context, rawSymbol string) (*model.Quote, error) {
	sym, err := symbol.Normalize(rawSymbol)
	if err != nil {
		return nil, err
	}
	q, err := firstQuote(ctx, []quoteSource{
		{name: "第三方覆盖源", fetch: func(ctx context.Context) (*model.Quote, error) {
			return r.generic.Fetch(ctx, rawSymbol)
		}},
		{name: "新浪", fetch: func(ctx context.Context) (*model.Quote, error) {
			return r.sina.Fetch(ctx, sym)
		}},
	})
	if err != nil {
		return nil, err
	}
	shaped := shape.Quote(*q)
	return &shaped, nil
}

// GetAkshareQuote AKShare边车行情，失败时落回标准行情链
func (r *Resolver) GetAkshareQuote(ctx context.Context, rawSymbol string) (*model.Quote, error) {
	sym, err := symbol.Normalize(rawSymbol)
	if err != nil {
		return nil, err
	}
	if r.akshare.Enabled() {
		if q, err := r.akshare.Fetch(ctx, sym); err == nil {
			shaped := shape.Quote(*q)
			return &shaped, nil
		} else {
			log.Printf("akshare行情失败，回退标准行情链: %v", err)
		}
	}
	return r.GetQuote(ctx, rawSymbol)
}

// GetLimitStatus 获取涨跌停状态。配置了涨跌停信息源时优先使用，
// 其任何失败（网络、结构、解析）都静默落回本地计算；
// 本地计算永远可用，是正确性兜底。
func (r *Resolver) GetLimitStatus(ctx context.Context, rawSymbol, apiKey string) (*model.LimitStatus, error) {
	if r.limitInfo.Configured() {
		if ls, err := r.limitStatusFromProvider(ctx, rawSymbol, apiKey); err == nil {
			shaped := shape.LimitStatus(*ls)
			return &shaped, nil
		} else {
			log.Printf("第三方涨跌停信息失败，本地计算兜底: %v", err)
		}
	}
	ls, err := r.limitStatusLocal(ctx, rawSymbol)
	if err != nil {
		return nil, err
	}
	shaped := shape.LimitStatus(*ls)
	return &shaped, nil
}

func (r *Resolver) limitStatusFromProvider(ctx context.Context, rawSymbol, apiKey string) (*model.LimitStatus, error) {
	sym, err := symbol.Normalize(rawSymbol)
	if err != nil {
		return nil, err
	}
	info, err := r.limitInfo.Fetch(ctx, sym, apiKey)
	if err != nil {
		return nil, err
	}
	q, err := r.GetQuote(ctx, rawSymbol)
	if err != nil {
		return nil, err
	}

	code := info.Code
	if code == "" {
		code = sym.Code()
	}
	rate := LimitRate(code, info.Name)
	if info.PrevClose != 0 && info.Up > 0 {
		rate = info.Up/info.PrevClose - 1
	}
	up := info.Up
	if up == 0 {
		up = info.PrevClose * (1 + rate)
	}
	down := info.Down
	if down == 0 {
		down = info.PrevClose * (1 - rate)
	}
	// 越线判断针对舍入后的涨跌停价：实际成交价就是2位小数，
	// 不舍入的话正好封板的票会被漏判
	up = convert.RoundMoney(up)
	down = convert.RoundMoney(down)

	// 显式标记与价格越线判断取或：标记过期或缺失时价格判断兜底，
	// 两者不一致时按"真值获胜"处理
	isUp := info.Flag == 1 || q.Price >= up-epsilon
	isDown := info.Flag == -1 || q.Price <= down+epsilon

	return &model.LimitStatus{
		Code:           code,
		Name:           info.Name,
		Price:          q.Price,
		LimitUpPrice:   up,
		LimitDownPrice: down,
		IsLimitUp:      isUp,
		IsLimitDown:    isDown,
		LimitRate:      rate,
	}, nil
}

func (r *Resolver) limitStatusLocal(ctx context.Context, rawSymbol string) (*model.LimitStatus, error) {
	q, err := r.GetQuote(ctx, rawSymbol)
	if err != nil {
		return nil, err
	}
	rate := LimitRate(q.Code, q.Name)
	up := convert.RoundMoney(q.PrevClose * (1 + rate))
	down := convert.RoundMoney(q.PrevClose * (1 - rate))
	return &model.LimitStatus{
		Code:           q.Code,
		Name:           q.Name,
		Price:          q.Price,
		LimitUpPrice:   up,
		LimitDownPrice: down,
		IsLimitUp:      q.Price >= up-epsilon,
		IsLimitDown:    q.Price <= down+epsilon,
		LimitRate:      rate,
	}, nil
}

// GetPool 查询股池。股池没有免费替代，不做跨源回退；
// 上游不可用且存在历史快照时返回快照兜底。
func (r *Resolver) GetPool(ctx context.Context, kind upstream.PoolKind, date, apiKey string) (*upstream.PoolResult, error) {
	if apiKey == "" {
		apiKey = r.apiKey
	}
	result, err := r.pools.Fetch(ctx, kind, date, apiKey)
	if err != nil {
		if r.snapshots != nil && errors.Is(err, errs.ErrUpstreamUnavailable) {
			if cached, ok := r.snapshots.LoadPool(string(kind)); ok {
				log.Printf("股池 %s 上游不可用，返回本地快照", kind)
				return shapePool(kind, cached), nil
			}
		}
		return nil, err
	}
	if r.snapshots != nil {
		r.snapshots.SavePool(string(kind), result)
	}
	return shapePool(kind, result), nil
}

func shapePool(kind upstream.PoolKind, result *upstream.PoolResult) *upstream.PoolResult {
	switch kind {
	case upstream.PoolLimitUp:
		result.LimitUp = shape.LimitUpPool(result.LimitUp)
	case upstream.PoolLimitDown:
		result.LimitDown = shape.LimitDownPool(result.LimitDown)
	case upstream.PoolBreak:
		result.Break = shape.BreakPool(result.Break)
	case upstream.PoolStrong:
		result.Strong = shape.StrongPool(result.Strong)
	}
	return result
}

// GetRealtimePublic 公开源单股实时数据
func (r *Resolver) GetRealtimePublic(ctx context.Context, rawSymbol, apiKey string) ([]model.RealtimePublicItem, error) {
	sym, err := symbol.Normalize(rawSymbol)
	if err != nil {
		return nil, err
	}
	if apiKey == "" {
		apiKey = r.apiKey
	}
	items, err := r.realtime.FetchPublic(ctx, sym, apiKey)
	if err != nil {
		return nil, err
	}
	return shape.RealtimePublic(items), nil
}

// GetRealtimeBroker 券商源单股实时数据
func (r *Resolver) GetRealtimeBroker(ctx context.Context, rawSymbol, apiKey string) ([]model.RealtimeBrokerItem, error) {
	sym, err := symbol.Normalize(rawSymbol)
	if err != nil {
		return nil, err
	}
	if apiKey == "" {
		apiKey = r.apiKey
	}
	items, err := r.realtime.FetchBroker(ctx, sym, apiKey)
	if err != nil {
		return nil, err
	}
	return shape.RealtimeBroker(items), nil
}

// GetRealtimeBatch 公开源批量实时数据
func (r *Resolver) GetRealtimeBatch(ctx context.Context, rawSymbols []string, apiKey string) ([]model.RealtimeBatchItem, error) {
	syms := make([]symbol.Symbol, 0, len(rawSymbols))
	for _, raw := range rawSymbols {
		sym, err := symbol.Normalize(raw)
		if err != nil {
			return nil, err
		}
		syms = append(syms, sym)
	}
	if apiKey == "" {
		apiKey = r.apiKey
	}
	items, err := r.realtime.FetchPublicBatch(ctx, syms, apiKey)
	if err != nil {
		return nil, err
	}
	return shape.RealtimeBatch(items), nil
}

// GetProfile 上市公司简介
func (r *Resolver) GetProfile(ctx context.Context, rawSymbol, apiKey string) (*model.CompanyProfile, error) {
	sym, err := symbol.Normalize(rawSymbol)
	if err != nil {
		return nil, err
	}
	if apiKey == "" {
		apiKey = r.apiKey
	}
	return r.profile.Fetch(ctx, sym.Code(), apiKey)
}
