package http

import (
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWithCORS(t *testing.T) {
	var calls int32
	stub := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusNoContent)
	})
	wrapped := WithCORS(stub)

	testCases := []struct {
		description    string
		method         string
		origin         string
		expectedOrigin string
		expectedStatus int
		expectedCalls  int32
	}{
		{
			description:    "preflight is answered without next",
			method:         http.MethodOptions,
			expectedOrigin: "*",
			expectedStatus: http.StatusOK,
		},
		{
			description:    "plain request passes through",
			method:         http.MethodPost,
			expectedOrigin: "*",
			expectedStatus: http.StatusNoContent,
			expectedCalls:  1,
		},
		{
			description:    "origin is echoed",
			method:         http.MethodGet,
			origin:         "http://localhost:3000",
			expectedOrigin: "http://localhost:3000",
			expectedStatus: http.StatusNoContent,
			expectedCalls:  1,
		},
	}

	for _, tc := range testCases {
		atomic.StoreInt32(&calls, 0)
		t.Run(tc.description, func(t *testing.T) {
			req := httptest.NewRequest(tc.method, "/api/command", nil)
			if tc.origin != "" {
				req.Header.Set("Origin", tc.origin)
			}
			rec := httptest.NewRecorder()
			wrapped.ServeHTTP(rec, req)

			res := rec.Result()
			assert.EqualValues(t, tc.expectedStatus, res.StatusCode)
			assert.EqualValues(t, tc.expectedOrigin, res.Header.Get("Access-Control-Allow-Origin"))
			assert.NotEmpty(t, res.Header.Get("Access-Control-Allow-Methods"))
			assert.NotEmpty(t, res.Header.Get("Access-Control-Allow-Headers"))
			assert.EqualValues(t, tc.expectedCalls, atomic.LoadInt32(&calls))
		})
	}
}
