package upstream

import (
	"context"
	"strings"
	"time"

	"github.com/zxl7/laicai/pkg/errs"
	"github.com/zxl7/laicai/pkg/fetch"
	"github.com/zxl7/laicai/pkg/model"
)

// ProfileSource 上市公司简介接口，GET {base}/{code}/{api_key}。
// 工商登记字段集合是开放的，缺失字段留空串，不因个别字段缺失整条失败。
type ProfileSource struct {
	client  *fetch.Client
	baseURL string
}

// NewProfileSource 创建公司简介源
func NewProfileSource(client *fetch.Client, baseURL string) *ProfileSource {
	return &ProfileSource{client: client, baseURL: strings.TrimSuffix(baseURL, "/")}
}

// Fetch 获取公司简介
func (p *ProfileSource) Fetch(ctx context.Context, code, apiKey string) (*model.CompanyProfile, error) {
	if apiKey == "" {
		return nil, errs.ErrMissingCredential
	}
	var data map[string]any
	if err := p.client.GetJSON(ctx, p.baseURL+"/"+code+"/"+apiKey, nil, biyingReferer, 10*time.Second, &data); err != nil {
		return nil, err
	}

	// 同义字段名在不同版本的接口里出现过，取第一个非空值
	pick := func(keys ...string) string {
		for _, k := range keys {
			if v := asString(data[k]); v != "" {
				return v
			}
		}
		return ""
	}

	prof := &model.CompanyProfile{
		Code:         pick("dm", "code"),
		Name:         pick("name", "gsmc"),
		EnglishName:  pick("ename"),
		Market:       pick("market", "ssjys"),
		Concept:      pick("idea", "gn"),
		ListDate:     pick("ldate", "ssrq"),
		IssuePrice:   pick("sprice", "fxj"),
		Principal:    pick("principal", "frdb"),
		RegisterDate: pick("rdate", "clrq"),
		Underwriter:  pick("organ", "zcxs"),
		Phone:        pick("phone", "dh"),
		Website:      pick("site", "web", "gw"),
		Address:      pick("addr", "bgdz"),
		Description:  pick("desc", "jj", "gsjj"),
	}
	if prof.Code == "" {
		prof.Code = code
	}
	return prof, nil
}
