package upstream

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/zxl7/laicai/pkg/errs"
	"github.com/zxl7/laicai/pkg/fetch"
	"github.com/zxl7/laicai/pkg/model"
	"github.com/zxl7/laicai/pkg/symbol"
)

// RealtimeClient 实时交易数据客户端，覆盖公开源、券商源和公开批量三个变体。
// 单股接口的响应形态不稳定：裸数组、{data|list|items|result: [...]} 包裹、
// 或者单条记录直接作为对象返回，统一归一化为列表后再映射。
type RealtimeClient struct {
	client     *fetch.Client
	ssjyBase   string
	brokerBase string
	batchBase  string
}

// NewRealtimeClient 创建实时数据客户端
func NewRealtimeClient(client *fetch.Client, ssjyBase, brokerBase, batchBase string) *RealtimeClient {
	return &RealtimeClient{
		client:     client,
		ssjyBase:   strings.TrimSuffix(ssjyBase, "/"),
		brokerBase: strings.TrimSuffix(brokerBase, "/"),
		batchBase:  strings.TrimSuffix(batchBase, "/"),
	}
}

// normalizeRows 把三种已知响应形态归一化为记录列表
func normalizeRows(body []byte) ([]map[string]any, error) {
	var rows []map[string]any
	if json.Unmarshal(body, &rows) == nil {
		return rows, nil
	}
	var obj map[string]any
	if json.Unmarshal(body, &obj) != nil {
		return nil, fmt.Errorf("%w: 实时数据返回非数组非对象", errs.ErrMalformedResponse)
	}
	for _, k := range []string{"data", "list", "items", "result"} {
		if nested, ok := obj[k].([]any); ok {
			rows = make([]map[string]any, 0, len(nested))
			for _, it := range nested {
				if m, ok := it.(map[string]any); ok {
					rows = append(rows, m)
				}
			}
			return rows, nil
		}
	}
	// 单条记录返回为对象
	return []map[string]any{obj}, nil
}

// FetchPublic 公开源单股实时数据，GET {base}/{code}/{api_key}
func (r *RealtimeClient) FetchPublic(ctx context.Context, sym symbol.Symbol, apiKey string) ([]model.RealtimePublicItem, error) {
	if apiKey == "" {
		return nil, errs.ErrMissingCredential
	}
	body, err := r.client.Get(ctx, r.ssjyBase+"/"+sym.Code()+"/"+apiKey, nil, biyingReferer, 10*time.Second)
	if err != nil {
		return nil, err
	}
	rows, err := normalizeRows(body)
	if err != nil {
		return nil, err
	}
	items := make([]model.RealtimePublicItem, 0, len(rows))
	for _, it := range rows {
		items = append(items, model.RealtimePublicItem{
			FM:    asFloat(it["fm"]),
			H:     asFloat(it["h"]),
			HS:    asFloat(it["hs"]),
			LB:    asFloat(it["lb"]),
			L:     asFloat(it["l"]),
			LT:    asFloat(it["lt"]),
			O:     asFloat(it["o"]),
			PE:    asFloat(it["pe"]),
			PC:    asFloat(it["pc"]),
			P:     asFloat(it["p"]),
			SZ:    asFloat(it["sz"]),
			CJE:   asFloat(it["cje"]),
			UD:    asFloat(it["ud"]),
			V:     asFloat(it["v"]),
			YC:    asFloat(it["yc"]),
			ZF:    asFloat(it["zf"]),
			ZS:    asFloat(it["zs"]),
			SJL:   asFloat(it["sjl"]),
			ZDF60: asFloat(it["zdf60"]),
			ZDFNC: asFloat(it["zdfnc"]),
			T:     asString(it["t"]),
		})
	}
	return items, nil
}

func mapBrokerItem(it map[string]any) model.RealtimeBrokerItem {
	return model.RealtimeBrokerItem{
		P:       asFloat(it["p"]),
		O:       asFloat(it["o"]),
		H:       asFloat(it["h"]),
		L:       asFloat(it["l"]),
		YC:      asFloat(it["yc"]),
		CJE:     asFloat(it["cje"]),
		V:       asFloat(it["v"]),
		PV:      asFloat(it["pv"]),
		T:       asString(it["t"]),
		UD:      asFloat(it["ud"]),
		PC:      asFloat(it["pc"]),
		ZF:      asFloat(it["zf"]),
		PE:      asFloat(it["pe"]),
		TR:      asFloat(it["tr"]),
		PBRatio: asFloat(it["pb_ratio"]),
		TV:      asFloat(it["tv"]),
	}
}

// FetchBroker 券商源单股实时数据，GET {base}/{code}/{api_key}
func (r *RealtimeClient) FetchBroker(ctx context.Context, sym symbol.Symbol, apiKey string) ([]model.RealtimeBrokerItem, error) {
	if apiKey == "" {
		return nil, errs.ErrMissingCredential
	}
	body, err := r.client.Get(ctx, r.brokerBase+"/"+sym.Code()+"/"+apiKey, nil, biyingReferer, 10*time.Second)
	if err != nil {
		return nil, err
	}
	rows, err := normalizeRows(body)
	if err != nil {
		return nil, err
	}
	items := make([]model.RealtimeBrokerItem, 0, len(rows))
	for _, it := range rows {
		items = append(items, mapBrokerItem(it))
	}
	return items, nil
}

// FetchPublicBatch 公开源批量实时数据，GET {base}/{api_key}?stock_codes=c1,c2。
// 批量接口只接受裸数组响应。
func (r *RealtimeClient) FetchPublicBatch(ctx context.Context, syms []symbol.Symbol, apiKey string) ([]model.RealtimeBatchItem, error) {
	if apiKey == "" {
		return nil, errs.ErrMissingCredential
	}
	codes := make([]string, len(syms))
	for i, s := range syms {
		codes[i] = s.Code()
	}
	params := url.Values{"stock_codes": {strings.Join(codes, ",")}}
	body, err := r.client.Get(ctx, r.batchBase+"/"+apiKey, params, biyingReferer, 10*time.Second)
	if err != nil {
		return nil, err
	}
	var rows []map[string]any
	if err := json.Unmarshal(body, &rows); err != nil {
		return nil, fmt.Errorf("%w: 批量实时数据返回非数组", errs.ErrMalformedResponse)
	}
	items := make([]model.RealtimeBatchItem, 0, len(rows))
	for _, it := range rows {
		items = append(items, model.RealtimeBatchItem{
			DM:                 asString(it["dm"]),
			RealtimeBrokerItem: mapBrokerItem(it),
		})
	}
	return items, nil
}
