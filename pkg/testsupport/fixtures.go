package testsupport

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
)

func LoadFixture(path string) ([]byte, error) {
	return os.ReadFile(path)
}

func LoadGolden(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, v)
}

// ServeFixtures starts a server answering each request path with the
// contents of the mapped fixture file. Unmapped paths get 404.
func ServeFixtures(t testing.TB, routes map[string]string) *httptest.Server {
	t.Helper()
	bodies := make(map[string][]byte, len(routes))
	for path, file := range routes {
		data, err := LoadFixture(file)
		if err != nil {
			t.Fatalf("load fixture %s: %v", file, err)
		}
		bodies[path] = data
	}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, ok := bodies[r.URL.Path]
		if !ok {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write(body)
	}))
	t.Cleanup(server.Close)
	return server
}
