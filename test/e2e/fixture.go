package e2e

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

// fixtureItems is a deterministic catalog in the upstream wire shape.
const fixtureItems = `[
  {"price": "$16.99", "name": "Founders All Day IPA", "rating": {"average": 4.41, "reviews": 453}, "image": "https://example.com/allday.png", "id": 1},
  {"price": "$13.99", "name": "Blue Moon Belgian White", "rating": {"average": 3.92, "reviews": 87}, "image": "https://example.com/bluemoon.png", "id": 2},
  {"price": "$9.49", "name": "Guinness Draught Stout", "rating": {"average": 4.12, "reviews": 210}, "image": "https://example.com/guinness.png", "id": 3}
]`

// serveFixture starts an HTTP server answering every request with body.
func serveFixture(t *testing.T, status int, body string) string {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv.URL
}
