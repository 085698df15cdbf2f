package api

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/zxl7/laicai/pkg/messaging"
	"github.com/zxl7/laicai/pkg/model"
	"github.com/zxl7/laicai/pkg/resolve"
	"github.com/zxl7/laicai/pkg/upstream"
)

// 批量实时接口单次最多接受的代码数
const maxBatchSymbols = 20

var errMissingSymbol = errors.New("symbol参数不能为空")

// Handlers API处理程序
type Handlers struct {
	resolver  *resolve.Resolver
	publisher *messaging.QuotePublisher
}

// NewHandlers 创建新的API处理程序
func NewHandlers(resolver *resolve.Resolver) *Handlers {
	return &Handlers{resolver: resolver}
}

// apiKey 取api_key查询参数，缺省时取licence请求头
func apiKey(c *gin.Context) string {
	if key := c.Query("api_key"); key != "" {
		return key
	}
	return c.GetHeader("licence")
}

// fail 统一的错误出口，所有失败都是400加error字段
func fail(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, model.ErrorResponse{Error: err.Error()})
}

// Index 服务首页，列出可用接口
func (h *Handlers) Index(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"service": "laicai行情网关",
		"endpoints": []string{
			"/health",
			"/ready",
			"/quote?symbol=600000",
			"/akshare/quote?symbol=600000",
			"/limit-status?symbol=600000",
			"/hsstock/instrument/sh600000",
			"/hslt/{ztgc|dtgc|zbgc|qsgc}?date=2026-01-05",
			"/hsrl/ssjy?symbol=600000",
			"/hsrl/ssjy_more?symbols=600000,000001",
			"/hsstock/real/time?symbol=600000",
			"/company-profile/600000",
			"/ws/quote?symbol=600000",
		},
	})
}

// HealthCheck 健康检查处理程序
func (h *Handlers) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
	})
}

// ReadinessCheck 就绪检查处理程序
func (h *Handlers) ReadinessCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ready",
	})
}

// GetQuote 获取单股行情
func (h *Handlers) GetQuote(c *gin.Context) {
	symbol := c.Query("symbol")
	if symbol == "" {
		fail(c, errMissingSymbol)
		return
	}

	quote, err := h.resolver.GetQuote(c.Request.Context(), symbol)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, quote)
}

// GetAkshareQuote 走akshare数据源的行情，失败回落到普通行情链路
func (h *Handlers) GetAkshareQuote(c *gin.Context) {
	symbol := c.Query("symbol")
	if symbol == "" {
		fail(c, errMissingSymbol)
		return
	}

	quote, err := h.resolver.GetAkshareQuote(c.Request.Context(), symbol)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, quote)
}

// GetLimitStatus 获取涨跌停状态
func (h *Handlers) GetLimitStatus(c *gin.Context) {
	symbol := c.Query("symbol")
	if symbol == "" {
		fail(c, errMissingSymbol)
		return
	}

	status, err := h.resolver.GetLimitStatus(c.Request.Context(), symbol, apiKey(c))
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, status)
}

// GetInstrument 兼容第三方instrument路径的涨跌停状态查询
func (h *Handlers) GetInstrument(c *gin.Context) {
	instrument := c.Param("instrument")

	status, err := h.resolver.GetLimitStatus(c.Request.Context(), instrument, apiKey(c))
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, status)
}

// GetPool 获取指定种类的股池列表
func (h *Handlers) GetPool(c *gin.Context) {
	kind := upstream.PoolKind(c.Param("kind"))
	switch kind {
	case upstream.PoolLimitUp, upstream.PoolLimitDown, upstream.PoolBreak, upstream.PoolStrong:
	default:
		fail(c, errors.New("不支持的股池类型: "+string(kind)))
		return
	}

	result, err := h.resolver.GetPool(c.Request.Context(), kind, c.Query("date"), apiKey(c))
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, poolItems(kind, result))
}

// poolItems 取出对应种类的条目数组，保证空结果序列化成[]而不是null
func poolItems(kind upstream.PoolKind, result *upstream.PoolResult) any {
	switch kind {
	case upstream.PoolLimitUp:
		if result.LimitUp == nil {
			return []model.LimitUpPoolItem{}
		}
		return result.LimitUp
	case upstream.PoolLimitDown:
		if result.LimitDown == nil {
			return []model.LimitDownPoolItem{}
		}
		return result.LimitDown
	case upstream.PoolBreak:
		if result.Break == nil {
			return []model.BreakPoolItem{}
		}
		return result.Break
	default:
		if result.Strong == nil {
			return []model.StrongPoolItem{}
		}
		return result.Strong
	}
}

// GetRealtimePublic 公开源单股实时数据
func (h *Handlers) GetRealtimePublic(c *gin.Context) {
	symbol := c.Query("symbol")
	if symbol == "" {
		fail(c, errMissingSymbol)
		return
	}

	items, err := h.resolver.GetRealtimePublic(c.Request.Context(), symbol, apiKey(c))
	if err != nil {
		fail(c, err)
		return
	}
	if items == nil {
		items = []model.RealtimePublicItem{}
	}

	c.JSON(http.StatusOK, items)
}

// GetRealtimeBroker 券商源单股实时数据
func (h *Handlers) GetRealtimeBroker(c *gin.Context) {
	symbol := c.Query("symbol")
	if symbol == "" {
		fail(c, errMissingSymbol)
		return
	}

	items, err := h.resolver.GetRealtimeBroker(c.Request.Context(), symbol, apiKey(c))
	if err != nil {
		fail(c, err)
		return
	}
	if items == nil {
		items = []model.RealtimeBrokerItem{}
	}

	c.JSON(http.StatusOK, items)
}

// GetRealtimeBatch 公开源批量实时数据，最多20个代码
func (h *Handlers) GetRealtimeBatch(c *gin.Context) {
	symbolsParam := c.Query("symbols")
	if symbolsParam == "" {
		fail(c, errors.New("symbols参数不能为空"))
		return
	}

	var symbols []string
	for _, raw := range strings.Split(symbolsParam, ",") {
		raw = strings.TrimSpace(raw)
		if raw != "" {
			symbols = append(symbols, raw)
		}
	}
	if len(symbols) == 0 {
		fail(c, errors.New("symbols参数不能为空"))
		return
	}
	if len(symbols) > maxBatchSymbols {
		fail(c, errors.New("单次最多查询20个代码"))
		return
	}

	items, err := h.resolver.GetRealtimeBatch(c.Request.Context(), symbols, apiKey(c))
	if err != nil {
		fail(c, err)
		return
	}
	if items == nil {
		items = []model.RealtimeBatchItem{}
	}

	c.JSON(http.StatusOK, items)
}

// GetCompanyProfile 上市公司简介
func (h *Handlers) GetCompanyProfile(c *gin.Context) {
	code := c.Param("code")

	profile, err := h.resolver.GetProfile(c.Request.Context(), code, apiKey(c))
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, profile)
}
