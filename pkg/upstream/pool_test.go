package upstream

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zxl7/laicai/pkg/errs"
	"github.com/zxl7/laicai/pkg/fetch"
)

func newPoolClient(base string) *PoolClient {
	return NewPoolClient(testFetchClient(), map[PoolKind]string{
		PoolLimitUp:   base,
		PoolLimitDown: base,
		PoolBreak:     base,
		PoolStrong:    base,
	})
}

func TestPoolFetch_MissingKeyFailsBeforeNetwork(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.Write([]byte("[]"))
	}))
	defer srv.Close()

	_, err := newPoolClient(srv.URL).Fetch(context.Background(), PoolLimitUp, "2026-01-05", "")
	assert.ErrorIs(t, err, errs.ErrMissingCredential)
	assert.Equal(t, int32(0), atomic.LoadInt32(&calls))
}

func TestPoolFetch_LimitUpMapping(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Write([]byte(`[{"dm":"600519","mc":"贵州茅台","p":1888.0,"zf":10.0,"cje":5.2e9,
			"lt":2.1e12,"zsz":2.3e12,"hs":0.25,"lbc":2,"fbt":"093001","lbt":"100502",
			"zj":1.5e8,"zbc":1,"tj":"2/3"}]`))
	}))
	defer srv.Close()

	result, err := newPoolClient(srv.URL).Fetch(context.Background(), PoolLimitUp, "2026-01-05", "key123")
	require.NoError(t, err)
	require.Len(t, result.LimitUp, 1)

	assert.Equal(t, "/2026-01-05/key123", gotPath)
	it := result.LimitUp[0]
	assert.Equal(t, "600519", it.Code)
	assert.Equal(t, "贵州茅台", it.Name)
	assert.Equal(t, 1888.0, it.Price)
	assert.Equal(t, 2, it.ConsecutiveBoards)
	assert.Equal(t, "093001", it.FirstBoardTime)
	assert.Equal(t, 1.5e8, it.SealFunds)
	assert.Equal(t, "2/3", it.Stat)
}

func TestPoolFetch_DateDefaultsToToday(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Write([]byte("[]"))
	}))
	defer srv.Close()

	_, err := newPoolClient(srv.URL).Fetch(context.Background(), PoolBreak, "", "key123")
	require.NoError(t, err)
	assert.Equal(t, "/"+time.Now().Format("2006-01-02")+"/key123", gotPath)
}

func TestPoolFetch_SurfacesUpstreamErrorBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"msg":"licence已过期"}`))
	}))
	defer srv.Close()

	_, err := newPoolClient(srv.URL).Fetch(context.Background(), PoolLimitDown, "2026-01-05", "key123")
	assert.ErrorIs(t, err, errs.ErrMalformedResponse)
	assert.Contains(t, err.Error(), "licence已过期")
}

func TestPoolFetch_EmptyArrayStaysTyped(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("[]"))
	}))
	defer srv.Close()

	result, err := newPoolClient(srv.URL).Fetch(context.Background(), PoolStrong, "2026-01-05", "key123")
	require.NoError(t, err)
	assert.NotNil(t, result.Strong)
	assert.Empty(t, result.Strong)
	assert.Nil(t, result.LimitUp)
}

// downgradeClient 单次尝试的客户端，避免HTTPS失败腿上的重试等待
func downgradeClient() *fetch.Client {
	return fetch.NewClient(fetch.Options{CacheTTL: time.Nanosecond, QPS: 100000, MaxAttempts: 1})
}

func TestPoolFetch_StrongPoolDowngradesToHTTP(t *testing.T) {
	// 明文HTTP服务上的https地址：HTTPS握手必然失败，
	// 降级改写协议后走HTTP成功
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.Write([]byte(`[{"dm":"600519","mc":"贵州茅台","p":1888.0}]`))
	}))
	defer srv.Close()
	httpsBase := "https://" + srv.Listener.Addr().String()

	client := NewPoolClient(downgradeClient(), map[PoolKind]string{PoolStrong: httpsBase})
	result, err := client.Fetch(context.Background(), PoolStrong, "2026-01-05", "key123")
	require.NoError(t, err)
	require.Len(t, result.Strong, 1)
	assert.Equal(t, "600519", result.Strong[0].Code)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestPoolFetch_OtherPoolsDoNotDowngrade(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.Write([]byte("[]"))
	}))
	defer srv.Close()
	httpsBase := "https://" + srv.Listener.Addr().String()

	client := NewPoolClient(downgradeClient(), map[PoolKind]string{PoolLimitUp: httpsBase})
	_, err := client.Fetch(context.Background(), PoolLimitUp, "2026-01-05", "key123")
	assert.ErrorIs(t, err, errs.ErrUpstreamUnavailable)
	assert.Equal(t, int32(0), atomic.LoadInt32(&calls), "非强势股池不应降级重试")
}

func TestPoolFetch_StrongPoolBothLegsFail(t *testing.T) {
	// 拿一个已关闭的端口，HTTPS和降级后的HTTP都连不上
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	deadBase := "https://" + srv.Listener.Addr().String()
	srv.Close()

	client := NewPoolClient(downgradeClient(), map[PoolKind]string{PoolStrong: deadBase})
	_, err := client.Fetch(context.Background(), PoolStrong, "2026-01-05", "key123")
	assert.ErrorIs(t, err, errs.ErrUpstreamUnavailable)
}
