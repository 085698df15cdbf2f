package upstream

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zxl7/laicai/pkg/errs"
	"github.com/zxl7/laicai/pkg/symbol"
)

const ssjyRecord = `{"p":12.34,"o":12.0,"h":12.5,"l":11.9,"yc":12.1,"cje":3.4e8,"v":280000,"t":"14:30:00","hs":1.2}`

func TestRealtimePublic_ShapeVariants(t *testing.T) {
	cases := map[string]string{
		"裸数组":      `[` + ssjyRecord + `]`,
		"data包裹":   `{"data":[` + ssjyRecord + `]}`,
		"list包裹":   `{"list":[` + ssjyRecord + `]}`,
		"result包裹": `{"result":[` + ssjyRecord + `]}`,
		"单条对象":     ssjyRecord,
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(body))
			}))
			defer srv.Close()

			rc := NewRealtimeClient(testFetchClient(), srv.URL, srv.URL, srv.URL)
			items, err := rc.FetchPublic(context.Background(), "sh600000", "key123")
			require.NoError(t, err)
			require.Len(t, items, 1)
			assert.Equal(t, 12.34, items[0].P)
			assert.Equal(t, 12.1, items[0].YC)
			assert.Equal(t, "14:30:00", items[0].T)
		})
	}
}

func TestRealtimePublic_PathUsesBareCode(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Write([]byte("[]"))
	}))
	defer srv.Close()

	rc := NewRealtimeClient(testFetchClient(), srv.URL, srv.URL, srv.URL)
	_, err := rc.FetchPublic(context.Background(), "sh600000", "key123")
	require.NoError(t, err)
	assert.Equal(t, "/600000/key123", gotPath)
}

func TestRealtimeBroker_MapsFields(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"p":8.88,"yc":8.80,"pb_ratio":1.5,"tv":123.0,"t":"2026-01-05 14:30:00"}]`))
	}))
	defer srv.Close()

	rc := NewRealtimeClient(testFetchClient(), srv.URL, srv.URL, srv.URL)
	items, err := rc.FetchBroker(context.Background(), "sz000001", "key123")
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, 8.88, items[0].P)
	assert.Equal(t, 1.5, items[0].PBRatio)
	assert.Equal(t, 123.0, items[0].TV)
}

func TestRealtimeBatch_JoinsCodesAndRequiresArray(t *testing.T) {
	var gotCodes string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotCodes = r.URL.Query().Get("stock_codes")
		w.Write([]byte(`[{"dm":"600000","p":10.5},{"dm":"000001","p":8.8}]`))
	}))
	defer srv.Close()

	rc := NewRealtimeClient(testFetchClient(), srv.URL, srv.URL, srv.URL)
	items, err := rc.FetchPublicBatch(context.Background(), []symbol.Symbol{"sh600000", "sz000001"}, "key123")
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "600000,000001", gotCodes)
	assert.Equal(t, "600000", items[0].DM)
	assert.Equal(t, 10.5, items[0].P)
}

func TestRealtimeBatch_RejectsObjectBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data":[]}`))
	}))
	defer srv.Close()

	rc := NewRealtimeClient(testFetchClient(), srv.URL, srv.URL, srv.URL)
	_, err := rc.FetchPublicBatch(context.Background(), nil, "key123")
	assert.ErrorIs(t, err, errs.ErrMalformedResponse)
}

func TestRealtime_MissingKey(t *testing.T) {
	rc := NewRealtimeClient(testFetchClient(), "http://unused", "http://unused", "http://unused")
	_, err := rc.FetchPublic(context.Background(), "sh600000", "")
	assert.ErrorIs(t, err, errs.ErrMissingCredential)
	_, err = rc.FetchBroker(context.Background(), "sh600000", "")
	assert.ErrorIs(t, err, errs.ErrMissingCredential)
	_, err = rc.FetchPublicBatch(context.Background(), nil, "")
	assert.ErrorIs(t, err, errs.ErrMissingCredential)
}
