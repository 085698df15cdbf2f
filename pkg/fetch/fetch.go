package fetch

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math/rand"
	"net"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/zxl7/laicai/pkg/errs"
)

// 浏览器头伪装，部分上游（新浪等）按UA/Referer反爬
const defaultUserAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0 Safari/537.36"

const defaultReferer = "https://quote.eastmoney.com/"

// Options 抓取客户端配置
type Options struct {
	// CacheTTL 成功响应的缓存时长，默认30秒
	CacheTTL time.Duration
	// QPS 全局最小请求间隔按 1/QPS 计算，默认10
	QPS float64
	// MaxAttempts 瞬时错误下的总尝试次数，默认3
	MaxAttempts int
}

type cacheEntry struct {
	expiresAt time.Time
	body      []byte
}

// Client 带限速、短TTL缓存和瞬时错误重试的GET客户端。
// 缓存和限速时间戳都是进程内共享状态，由互斥锁保护。
type Client struct {
	httpClient  *http.Client
	cacheTTL    time.Duration
	minInterval time.Duration
	maxAttempts int

	mu    sync.Mutex
	last  time.Time
	cache map[string]cacheEntry

	// 测试注入点
	now   func() time.Time
	sleep func(time.Duration)
}

// NewClient 创建抓取客户端。代理取自 HTTP_PROXY/HTTPS_PROXY 环境变量。
func NewClient(opts Options) *Client {
	if opts.CacheTTL <= 0 {
		opts.CacheTTL = 30 * time.Second
	}
	if opts.QPS <= 0 {
		opts.QPS = 10
	}
	if opts.MaxAttempts <= 0 {
		opts.MaxAttempts = 3
	}
	transport := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   3 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 20,
		IdleConnTimeout:     90 * time.Second,
	}
	return &Client{
		httpClient:  &http.Client{Transport: transport},
		cacheTTL:    opts.CacheTTL,
		minInterval: time.Duration(float64(time.Second) / opts.QPS),
		maxAttempts: opts.MaxAttempts,
		cache:       make(map[string]cacheEntry),
		now:         time.Now,
		sleep:       time.Sleep,
	}
}

// cacheKey URL加排序后参数构成请求签名
func cacheKey(rawurl string, params url.Values) string {
	if len(params) == 0 {
		return rawurl
	}
	return rawurl + "?" + params.Encode()
}

// rateLimit 保证全局最小请求间隔，附加少量抖动避免整齐的请求节奏。
// 锁覆盖整个等待过程，时间戳在等待结束后记录，
// 保证从任意两次真实发送之间量到的间隔都不小于最小间隔。
func (c *Client) rateLimit() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if wait := c.minInterval - c.now().Sub(c.last); wait > 0 {
		jitter := 50*time.Millisecond + time.Duration(rand.Int63n(int64(200*time.Millisecond)))
		c.sleep(wait + jitter)
	}
	c.last = c.now()
}

func (c *Client) cacheGet(key string) ([]byte, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.cache[key]
	if !ok || c.now().After(e.expiresAt) {
		return nil, false
	}
	return e.body, true
}

func (c *Client) cachePut(key string, body []byte) {
	c.mu.Lock()
	c.cache[key] = cacheEntry{expiresAt: c.now().Add(c.cacheTTL), body: body}
	c.mu.Unlock()
}

func retryable(status int) bool {
	switch status {
	case http.StatusTooManyRequests,
		http.StatusInternalServerError,
		http.StatusBadGateway,
		http.StatusServiceUnavailable,
		http.StatusGatewayTimeout:
		return true
	}
	return false
}

// Get 发起GET请求并返回响应体。命中未过期缓存时不产生网络请求。
// 瞬时错误（网络错误及429/500/502/503/504）按指数退避重试，
// 耗尽尝试或遇到其他非2xx状态码返回 已包装的 ErrUpstreamUnavailable。
func (c *Client) Get(ctx context.Context, rawurl string, params url.Values, referer string, timeout time.Duration) ([]byte, error) {
	key := cacheKey(rawurl, params)
	if body, ok := c.cacheGet(key); ok {
		return body, nil
	}

	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	target := rawurl
	if len(params) > 0 {
		target = rawurl + "?" + params.Encode()
	}
	if referer == "" {
		referer = defaultReferer
	}

	var lastErr error
	for attempt := 0; attempt < c.maxAttempts; attempt++ {
		if attempt > 0 {
			c.sleep(500 * time.Millisecond * time.Duration(1<<(attempt-1)))
		}
		c.rateLimit()

		body, status, err := c.doOnce(ctx, target, referer, timeout)
		if err != nil {
			lastErr = err
			continue
		}
		if status >= 200 && status < 300 {
			c.cachePut(key, body)
			return body, nil
		}
		lastErr = fmt.Errorf("状态码 %d", status)
		if !retryable(status) {
			break
		}
	}
	return nil, fmt.Errorf("%w: GET %s: %v", errs.ErrUpstreamUnavailable, rawurl, lastErr)
}

func (c *Client) doOnce(ctx context.Context, target, referer string, timeout time.Duration) ([]byte, int, error) {
	reqCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(reqCtx, http.MethodGet, target, nil)
	if err != nil {
		return nil, 0, err
	}
	req.Header.Set("User-Agent", defaultUserAgent)
	req.Header.Set("Accept", "application/json, */*;q=0.1")
	req.Header.Set("Accept-Language", "zh-CN,zh;q=0.9")
	req.Header.Set("Cache-Control", "no-cache")
	req.Header.Set("Pragma", "no-cache")
	req.Header.Set("Referer", referer)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, 0, err
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, 0, err
	}
	return body, resp.StatusCode, nil
}

// GetJSON 发起GET请求并把响应体解析到out。
// 2xx但无法解析为JSON时返回 ErrMalformedResponse。
func (c *Client) GetJSON(ctx context.Context, rawurl string, params url.Values, referer string, timeout time.Duration, out any) error {
	body, err := c.Get(ctx, rawurl, params, referer, timeout)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("%w: %v", errs.ErrMalformedResponse, err)
	}
	return nil
}

// GetText 发起GET请求并返回文本响应
func (c *Client) GetText(ctx context.Context, rawurl string, params url.Values, referer string, timeout time.Duration) (string, error) {
	body, err := c.Get(ctx, rawurl, params, referer, timeout)
	if err != nil {
		return "", err
	}
	return string(body), nil
}
