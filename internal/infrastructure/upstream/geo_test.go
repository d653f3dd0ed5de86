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
)

func TestHTTPGeoResolverResolve(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "203.0.113.7", r.URL.Query().Get("ip"))
		w.Write([]byte(`{"countryCode": "GB"}`))
	}))
	defer server.Close()

	resolver := NewHTTPGeoResolver(server.URL, 5*time.Second, newQuietLogger(t))
	region, err := resolver.Resolve(context.Background(), "203.0.113.7")
	require.NoError(t, err)
	assert.Equal(t, "GB", region)
}

func TestHTTPGeoResolverFailures(t *testing.T) {
	t.Run("no endpoint", func(t *testing.T) {
		resolver := NewHTTPGeoResolver("", time.Second, newQuietLogger(t))
		_, err := resolver.Resolve(context.Background(), "203.0.113.7")
		assert.ErrorIs(t, err, ErrGeoUnavailable)
	})

	t.Run("non-200 status", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer server.Close()

		resolver := NewHTTPGeoResolver(server.URL, time.Second, newQuietLogger(t))
		_, err := resolver.Resolve(context.Background(), "203.0.113.7")
		assert.ErrorIs(t, err, ErrGeoUnavailable)
	})

	t.Run("empty country code", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"countryCode": ""}`))
		}))
		defer server.Close()

		resolver := NewHTTPGeoResolver(server.URL, time.Second, newQuietLogger(t))
		_, err := resolver.Resolve(context.Background(), "203.0.113.7")
		assert.ErrorIs(t, err, ErrGeoUnavailable)
	})
}

func TestCachedGeoResolverReusesResult(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.Write([]byte(`{"countryCode": "DE"}`))
	}))
	defer server.Close()

	resolver := NewCachedGeoResolver(NewHTTPGeoResolver(server.URL, time.Second, newQuietLogger(t)), 5*time.Minute)

	for i := 0; i < 3; i++ {
		region, err := resolver.Resolve(context.Background(), "203.0.113.7")
		require.NoError(t, err)
		assert.Equal(t, "DE", region)
	}
	assert.Equal(t, int32(1), calls.Load())

	// A different address misses the cache.
	_, err := resolver.Resolve(context.Background(), "203.0.113.8")
	require.NoError(t, err)
	assert.Equal(t, int32(2), calls.Load())
}
