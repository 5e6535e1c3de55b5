// Package testsupport holds fakes shared across provider connector tests:
// a scripted HTTP server standing in for an exchange's REST API, so a
// connector's full do()->Dispatch()->normalize() path can be exercised
// without a live network call.
package testsupport

import (
	"net/http"
	"net/http/httptest"
	"sync/atomic"
)

// JSONResponse is one scripted reply: StatusCode and a raw JSON body.
type JSONResponse struct {
	StatusCode int
	Body       string
	Headers    map[string]string
}

// SequenceServer serves one JSONResponse per request, in order, repeating
// the last response once the sequence is exhausted. This backs retry tests
// where the first N requests fail transiently and the last one succeeds.
func SequenceServer(responses ...JSONResponse) *httptest.Server {
	var n int32
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		i := int(atomic.AddInt32(&n, 1)) - 1
		if i >= len(responses) {
			i = len(responses) - 1
		}
		resp := responses[i]
		for k, v := range resp.Headers {
			w.Header().Set(k, v)
		}
		w.WriteHeader(resp.StatusCode)
		_, _ = w.Write([]byte(resp.Body))
	}))
}

// StaticServer always serves the same JSONResponse.
func StaticServer(resp JSONResponse) *httptest.Server {
	return SequenceServer(resp)
}

// CountingServer wraps a handler and atomically counts every request it
// serves, returning the counter alongside the server so assertions can
// check exactly how many attempts the facade made.
func CountingServer(handler http.HandlerFunc) (*httptest.Server, *int32) {
	var count int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&count, 1)
		handler(w, r)
	}))
	return srv, &count
}
