package openchain

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"signature-explorer/models"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL+"/", srv.Client(), nil)
}

func TestSearch(t *testing.T) {
	var gotPath, gotQuery string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.Query().Get("query")
		w.Write([]byte(`{"ok":true,"result":{"function":{"0xa9059cbb":[{"name":"transfer(address,uint256)","filtered":false}]}}}`))
	})

	result, err := client.Search(context.Background(), "transfer*&x=1")
	require.NoError(t, err)

	assert.Equal(t, searchPath, gotPath)
	assert.Equal(t, "transfer*&x=1", gotQuery, "term must arrive URL-decoded intact")
	require.Len(t, result.Function, 1)
	assert.Equal(t, "0xa9059cbb", result.Function[0].Hash)
	assert.Nil(t, result.Event)
}

func TestLookupHashQueriesBothCategories(t *testing.T) {
	var got map[string][]string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, lookupPath, r.URL.Path)
		got = r.URL.Query()
		w.Write([]byte(`{"ok":true,"result":{"function":{"0xa9059cbb":[{"name":"transfer(address,uint256)","filtered":false}]},"event":{"0xa9059cbb":null}}}`))
	})

	filter := false
	result, err := client.LookupHash(context.Background(), "0xa9059cbb", &filter)
	require.NoError(t, err)

	assert.Equal(t, []string{"0xa9059cbb"}, got["function"])
	assert.Equal(t, []string{"0xa9059cbb"}, got["event"])
	assert.Equal(t, []string{"false"}, got["filter"])
	assert.Len(t, result.Flatten(), 1)
}

func TestLookupParamsOmitUnset(t *testing.T) {
	v := LookupParams{Event: "0xabc"}.values()
	assert.Equal(t, "event=0xabc", v.Encode())
}

func TestUpstreamFailures(t *testing.T) {
	t.Run("Non-2xx becomes StatusError", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		})
		_, err := client.Search(context.Background(), "transfer")

		var statusErr *StatusError
		require.True(t, errors.As(err, &statusErr))
		assert.Equal(t, http.StatusBadGateway, statusErr.StatusCode)
		assert.Equal(t, "search", statusErr.Endpoint)
	})

	t.Run("ok false becomes APIError", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"ok":false,"error":"rate limited"}`))
		})
		_, err := client.Stats(context.Background())

		var apiErr *APIError
		require.True(t, errors.As(err, &apiErr))
		assert.Equal(t, "rate limited", apiErr.Error())
	})

	t.Run("Malformed body is a decode error", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`<html>`))
		})
		_, err := client.Lookup(context.Background(), LookupParams{Function: "0xa9059cbb"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "decode lookup response")
	})

	t.Run("Transport error is wrapped", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		client := NewClient(srv.URL, srv.Client(), nil)
		srv.Close()

		_, err := client.SearchRaw(context.Background(), "transfer")
		require.Error(t, err)
		var statusErr *StatusError
		assert.False(t, errors.As(err, &statusErr))
	})

	t.Run("Raw calls do not judge the status", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusTooManyRequests)
			w.Write([]byte(`{"ok":false}`))
		})
		raw, err := client.StatsRaw(context.Background())
		require.NoError(t, err)
		assert.Equal(t, http.StatusTooManyRequests, raw.StatusCode)
		assert.False(t, raw.OK())
		assert.Equal(t, `{"ok":false}`, string(raw.Body))
	})
}

func TestOversizedResponseIsRejected(t *testing.T) {
	limit := maxResponseBytes
	maxResponseBytes = 64
	t.Cleanup(func() { maxResponseBytes = limit })

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"ok":true,"result":{"count":{"function":1,"event":2,"error":3,"total":6},"metadata":{}}}`))
	})

	_, err := client.StatsRaw(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "exceeds 64 bytes")

	maxResponseBytes = 4096
	raw, err := client.StatsRaw(context.Background())
	require.NoError(t, err)
	assert.True(t, raw.OK())
}

func TestStats(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, statsPath, r.URL.Path)
		w.Write([]byte(`{"ok":true,"result":{"count":{"function":1000,"event":200,"error":3,"unknown":4,"total":1207},"metadata":{"refreshed_at":"2025-05-01"}}}`))
	})

	stats, err := client.Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(1000), stats.Count.Function)
	assert.Equal(t, int64(200), stats.Count.Event)
	assert.Equal(t, "2025-05-01", stats.Metadata.Refreshed())
}

func TestImport(t *testing.T) {
	t.Run("Posts the request body", func(t *testing.T) {
		var got models.ImportRequest
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, importPath, r.URL.Path)
			assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
			body, _ := io.ReadAll(r.Body)
			assert.NoError(t, json.Unmarshal(body, &got))
			w.Write([]byte(`{"ok":true,"result":{
				"function":{"imported":{"transfer(address,uint256)":"0xa9059cbb"},"duplicated":{},"invalid":null},
				"event":{"imported":{},"duplicated":{"Transfer(address,address,uint256)":"0xddf2"},"invalid":[]}}}`))
		})

		req := models.ImportRequest{Function: []string{"transfer(address,uint256)"}, Event: []string{"Transfer(address,address,uint256)"}}
		result, err := client.Import(context.Background(), req)
		require.NoError(t, err)

		assert.Equal(t, req, got)
		assert.Equal(t, "0xa9059cbb", result.Function.Imported["transfer(address,uint256)"])
		assert.Nil(t, result.Function.Invalid)
		assert.Len(t, result.Event.Duplicated, 1)
	})

	t.Run("Empty lists encode as arrays", func(t *testing.T) {
		var raw string
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			body, _ := io.ReadAll(r.Body)
			raw = string(body)
			w.Write([]byte(`{"ok":true,"result":{}}`))
		})
		_, err := client.Import(context.Background(), models.NewImportRequest())
		require.NoError(t, err)
		assert.JSONEq(t, `{"function":[],"event":[]}`, raw)
	})

	t.Run("Error message from a failed import", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte(`{"ok":false,"error":"too many signatures"}`))
		})
		_, err := client.Import(context.Background(), models.NewImportRequest())

		var apiErr *APIError
		require.True(t, errors.As(err, &apiErr))
		assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
		assert.Equal(t, "too many signatures", apiErr.Message)
	})

	t.Run("Failed import without a message", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		})
		_, err := client.Import(context.Background(), models.NewImportRequest())

		var statusErr *StatusError
		require.True(t, errors.As(err, &statusErr))
		assert.Equal(t, http.StatusInternalServerError, statusErr.StatusCode)
	})
}
