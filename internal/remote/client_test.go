package remote

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/myshop/internal/apperr"
	"github.com/example/myshop/internal/config"
	"github.com/example/myshop/internal/datamodels/product"
)

const listJSON = `[
  {"id":1,"name":"Laptop Dell","price":30000000,"image":"img/dell.jpg","category":"laptop","hot":true,"description":""},
  {"id":2,"name":"iPhone 15","price":25000000,"image":"img/ip15.jpg","category":"phone","hot":false,"description":""}
]`

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/products", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(listJSON))
	})
	mux.HandleFunc("/products/2", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":2,"name":"iPhone 15","price":25000000,"image":"img/ip15.jpg","category":"phone","hot":false,"description":""}`))
	})
	mux.HandleFunc("/products/", func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	})
	mux.HandleFunc("/db", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"products":` + listJSON + `}`))
	})
	ts := httptest.NewServer(mux)
	t.Cleanup(ts.Close)
	return ts
}

func newTestClient(ts *httptest.Server) *Client {
	return NewClient(
		&config.RemoteConfig{BaseURL: ts.URL},
		&config.SeedConfig{URL: ts.URL + "/db"},
	)
}

func TestClientList(t *testing.T) {
	client := newTestClient(newTestServer(t))

	list, err := client.List(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, product.ID(1), list[0].ID)
}

func TestClientGet(t *testing.T) {
	client := newTestClient(newTestServer(t))

	p, err := client.Get(context.Background(), 2)
	require.NoError(t, err)
	assert.Equal(t, "iPhone 15", p.Name)
}

func TestClientGet_NotFound(t *testing.T) {
	client := newTestClient(newTestServer(t))

	_, err := client.Get(context.Background(), 99)
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestClientFetchSeed(t *testing.T) {
	client := newTestClient(newTestServer(t))

	list, err := client.FetchSeed(context.Background())
	require.NoError(t, err)
	assert.Len(t, list, 2)
}

func TestClient_NetworkFailure(t *testing.T) {
	ts := newTestServer(t)
	client := newTestClient(ts)
	ts.Close() // 服务挂掉后所有请求都应是网络错误

	_, err := client.List(context.Background())
	assert.ErrorIs(t, err, apperr.ErrNetwork)
	_, err = client.FetchSeed(context.Background())
	assert.ErrorIs(t, err, apperr.ErrNetwork)
}

func TestClient_ServerError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	t.Cleanup(ts.Close)

	client := newTestClient(ts)
	_, err := client.List(context.Background())
	assert.ErrorIs(t, err, apperr.ErrNetwork)
}
