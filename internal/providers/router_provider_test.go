package providers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dummyHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
}

func serve(h http.Handler, method string) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(method, "/x", nil))
	return rr
}

func TestRouterProvider_Routes(t *testing.T) {
	rp := NewRouterProvider()
	rp.Get("/status", dummyHandler())
	rp.Post("/toggle", dummyHandler())
	rp.Any("/metrics", dummyHandler())

	routes := rp.GetRoutes()
	require.Len(t, routes, 3)
	assert.Equal(t, "/status", routes[0].Url)
	assert.Equal(t, "/toggle", routes[1].Url)
	assert.Equal(t, "/metrics", routes[2].Url)
}

func TestRouterProvider_MethodFiltering(t *testing.T) {
	rp := NewRouterProvider()
	rp.Get("/status", dummyHandler())
	rp.Post("/toggle", dummyHandler())
	rp.Any("/metrics", dummyHandler())
	routes := rp.GetRoutes()

	tests := []struct {
		name   string
		route  int
		method string
		want   int
	}{
		{"get on get", 0, http.MethodGet, http.StatusOK},
		{"head on get", 0, http.MethodHead, http.StatusOK},
		{"post on get", 0, http.MethodPost, http.StatusMethodNotAllowed},
		{"post on post", 1, http.MethodPost, http.StatusOK},
		{"get on post", 1, http.MethodGet, http.StatusMethodNotAllowed},
		{"delete on any", 2, http.MethodDelete, http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, serve(routes[tt.route].Handler, tt.method).Code)
		})
	}
}

func TestMethodHandler_SetsAllow(t *testing.T) {
	rr := serve(methodHandler(dummyHandler(), http.MethodPost), http.MethodGet)
	assert.Equal(t, http.StatusMethodNotAllowed, rr.Code)
	assert.Equal(t, http.MethodPost, rr.Header().Get("Allow"))
}
