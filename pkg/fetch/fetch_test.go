package fetch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zxl7/laicai/pkg/errs"
)

// newTestClient 去掉真实等待，时钟可拨动
func newTestClient(opts Options) (*Client, *time.Time) {
	c := NewClient(opts)
	clock := time.Date(2025, 6, 2, 9, 30, 0, 0, time.Local)
	c.now = func() time.Time { return clock }
	c.sleep = func(time.Duration) {}
	return c, &clock
}

func TestGet_CacheWithinTTL(t *testing.T) {
	var calls int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(&calls, 1)
		w.Write([]byte(`{"ok":true}`))
	}))
	defer srv.Close()

	c, clock := newTestClient(Options{CacheTTL: 30 * time.Second})

	for i := 0; i < 2; i++ {
		body, err := c.Get(context.Background(), srv.URL, nil, "", time.Second)
		require.NoError(t, err)
		assert.Equal(t, `{"ok":true}`, string(body))
	}
	assert.Equal(t, int64(1), atomic.LoadInt64(&calls), "TTL内第二次调用应命中缓存")

	// 过期后需要重新抓取
	*clock = clock.Add(31 * time.Second)
	_, err := c.Get(context.Background(), srv.URL, nil, "", time.Second)
	require.NoError(t, err)
	assert.Equal(t, int64(2), atomic.LoadInt64(&calls))
}

func TestGet_RetriesTransientStatus(t *testing.T) {
	var calls int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt64(&calls, 1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.Write([]byte("ok"))
	}))
	defer srv.Close()

	c, _ := newTestClient(Options{MaxAttempts: 3})
	body, err := c.Get(context.Background(), srv.URL, nil, "", time.Second)
	require.NoError(t, err)
	assert.Equal(t, "ok", string(body))
	assert.Equal(t, int64(3), atomic.LoadInt64(&calls))
}

func TestGet_ExhaustedRetriesIsUpstreamUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	c, _ := newTestClient(Options{MaxAttempts: 3})
	_, err := c.Get(context.Background(), srv.URL, nil, "", time.Second)
	assert.ErrorIs(t, err, errs.ErrUpstreamUnavailable)
}

func TestGet_TerminalStatusDoesNotRetry(t *testing.T) {
	var calls int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(&calls, 1)
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	c, _ := newTestClient(Options{MaxAttempts: 3})
	_, err := c.Get(context.Background(), srv.URL, nil, "", time.Second)
	assert.ErrorIs(t, err, errs.ErrUpstreamUnavailable)
	assert.Equal(t, int64(1), atomic.LoadInt64(&calls))
}

func TestGet_BrowserHeadersAndReferer(t *testing.T) {
	var gotUA, gotRef string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		gotRef = r.Header.Get("Referer")
		w.Write([]byte("ok"))
	}))
	defer srv.Close()

	c, _ := newTestClient(Options{})
	_, err := c.Get(context.Background(), srv.URL, nil, "https://api.biyingapi.com/", time.Second)
	require.NoError(t, err)
	assert.Contains(t, gotUA, "Mozilla/5.0")
	assert.Equal(t, "https://api.biyingapi.com/", gotRef)
}

func TestGet_ParamsSortedIntoCacheKey(t *testing.T) {
	var calls int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(&calls, 1)
		w.Write([]byte(r.URL.RawQuery))
	}))
	defer srv.Close()

	c, _ := newTestClient(Options{})
	p1 := url.Values{"b": {"2"}, "a": {"1"}}
	p2 := url.Values{"a": {"1"}, "b": {"2"}}
	body1, err := c.Get(context.Background(), srv.URL, p1, "", time.Second)
	require.NoError(t, err)
	body2, err := c.Get(context.Background(), srv.URL, p2, "", time.Second)
	require.NoError(t, err)
	assert.Equal(t, body1, body2)
	assert.Equal(t, int64(1), atomic.LoadInt64(&calls), "同参数不同书写顺序应命中同一缓存键")
}

func TestGetJSON_MalformedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html>not json</html>"))
	}))
	defer srv.Close()

	c, _ := newTestClient(Options{})
	var out map[string]any
	err := c.GetJSON(context.Background(), srv.URL, nil, "", time.Second, &out)
	assert.ErrorIs(t, err, errs.ErrMalformedResponse)
}

func TestGet_RateLimitSpacesConsecutiveSends(t *testing.T) {
	var sends []time.Time
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	}))
	defer srv.Close()

	c, clock := newTestClient(Options{QPS: 10})
	// 注入的sleep拨动时钟，发送时刻以拨动后的时钟为准
	c.sleep = func(d time.Duration) { *clock = clock.Add(d) }

	for i := 0; i < 3; i++ {
		params := url.Values{"n": {string(rune('a' + i))}}
		_, err := c.Get(context.Background(), srv.URL, params, "", time.Second)
		require.NoError(t, err)
		sends = append(sends, *clock)
	}

	minInterval := 100 * time.Millisecond
	for i := 1; i < len(sends); i++ {
		gap := sends[i].Sub(sends[i-1])
		assert.GreaterOrEqual(t, gap, minInterval, "第%d次发送间隔过短", i+1)
	}
}
