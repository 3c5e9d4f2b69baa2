//go:build integration

package mock

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
)

// ApiMock is a stand-in for third-party HTTP APIs. It records every request
// and answers with the response configured for its method and path.
type ApiMock struct {
	mu               sync.Mutex
	server           *httptest.Server
	requestsReceived map[string][]map[string]any
	headersReceived  map[string][]http.Header
	responseMap      map[string]any
	responseStatus   map[string]int
}

func NewApiServer() *ApiMock {
	return &ApiMock{
		requestsReceived: map[string][]map[string]any{},
		headersReceived:  map[string][]http.Header{},
		responseMap:      map[string]any{},
		responseStatus:   map[string]int{},
	}
}

func (a *ApiMock) Start() {
	a.server = httptest.NewServer(
		http.HandlerFunc(
			func(w http.ResponseWriter, r *http.Request) {
				key := r.Method + r.URL.Path

				body, _ := io.ReadAll(r.Body)
				var request map[string]any
				_ = json.Unmarshal(body, &request)
				if request == nil {
					request = map[string]any{}
				}

				a.mu.Lock()
				a.requestsReceived[key] = append(a.requestsReceived[key], request)
				a.headersReceived[key] = append(a.headersReceived[key], r.Header.Clone())
				status, ok := a.responseStatus[key]
				if !ok || status == 0 {
					// Return 200 as a safe default to prevent panic from WriteHeader(0)
					status = http.StatusOK
				}
				response, ok := a.responseMap[key]
				if !ok || response == nil {
					response = map[string]any{}
				}
				a.mu.Unlock()

				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(status)
				_ = json.NewEncoder(w).Encode(response)
			},
		),
	)
}

func (a *ApiMock) GetUrl() string {
	return a.server.URL
}

func (a *ApiMock) SetResponse(method, path string, status int, response map[string]any) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.responseMap[method+path] = response
	a.responseStatus[method+path] = status
}

// GetRequestBody returns the decoded body of the index-th request, or nil.
func (a *ApiMock) GetRequestBody(method, path string, index int) map[string]any {
	a.mu.Lock()
	defer a.mu.Unlock()
	requests := a.requestsReceived[method+path]
	if index < 0 || index >= len(requests) {
		return nil
	}
	return requests[index]
}

// GetRequestHeaders returns the headers of the index-th request, or nil.
func (a *ApiMock) GetRequestHeaders(method, path string, index int) http.Header {
	a.mu.Lock()
	defer a.mu.Unlock()
	headers := a.headersReceived[method+path]
	if index < 0 || index >= len(headers) {
		return nil
	}
	return headers[index]
}

func (a *ApiMock) RequestCount(method, path string) int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.requestsReceived[method+path])
}

// Reset forgets recorded requests and configured responses.
func (a *ApiMock) Reset() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.requestsReceived = map[string][]map[string]any{}
	a.headersReceived = map[string][]http.Header{}
	a.responseMap = map[string]any{}
	a.responseStatus = map[string]int{}
}
