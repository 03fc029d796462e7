package catalog

import (
	"encoding/json"
	"flag"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/urfave/cli"

	"github.com/reelgrid-io/web-api/services/tmdb"
)

func newTestRouter(t *testing.T, backendURL string) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	u, err := url.Parse(backendURL)
	if err != nil {
		t.Fatalf("failed to parse backend url: %v", err)
	}
	set := flag.NewFlagSet("test", flag.ContinueOnError)
	for _, f := range tmdb.RegisterFlags(nil) {
		f.Apply(set)
	}
	_ = set.Set("tmdb-api-host", u.Hostname())
	_ = set.Set("tmdb-api-port", u.Port())
	_ = set.Set("tmdb-api-secure", "false")
	_ = set.Set("tmdb-api-token", "test-token")
	api := tmdb.New(cli.NewContext(cli.NewApp(), set, nil), http.DefaultClient)
	if api == nil {
		t.Fatal("failed to build tmdb api")
	}

	r := gin.New()
	RegisterHandler(r, api)
	return r
}

type resultsResponse struct {
	Results []map[string]any `json:"results"`
}

func TestCatalog_UnknownList(t *testing.T) {
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Errorf("unexpected backend call: %v", r.URL.Path)
	}))
	defer backend.Close()

	r := newTestRouter(t, backend.URL)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/api/movies/catalog/bogus", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("status = %v, want 404", w.Code)
	}
}

func TestCatalog_NowPlaying(t *testing.T) {
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/3/movie/now_playing" {
			t.Errorf("backend path = %v", r.URL.Path)
		}
		_, _ = w.Write([]byte(`{"page": 1, "results": [{"id": 550, "title": "Fight Club", "release_date": "1999-10-15", "vote_average": 8.438, "poster_path": "/p.jpg"}]}`))
	}))
	defer backend.Close()

	r := newTestRouter(t, backend.URL)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/api/movies/catalog/now_playing", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %v, body = %v", w.Code, w.Body.String())
	}
	var resp resultsResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(resp.Results) != 1 {
		t.Fatalf("len = %v, want 1", len(resp.Results))
	}
	item := resp.Results[0]
	if item["id"] != "550" || item["title"] != "Fight Club" {
		t.Errorf("item = %v", item)
	}
	if item["year"] != float64(1999) {
		t.Errorf("year = %v, want 1999", item["year"])
	}
	if item["rating"] != 8.4 {
		t.Errorf("rating = %v, want 8.4", item["rating"])
	}
}

func TestCatalog_Trending(t *testing.T) {
	var gotPath string
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		_, _ = w.Write([]byte(`{"page": 1, "results": []}`))
	}))
	defer backend.Close()

	r := newTestRouter(t, backend.URL)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/api/shows/catalog/trending", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %v", w.Code)
	}
	if gotPath != "/3/trending/tv/week" {
		t.Errorf("backend path = %v, want /3/trending/tv/week", gotPath)
	}
}

func TestSearch_RequiresQuery(t *testing.T) {
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Errorf("unexpected backend call: %v", r.URL.Path)
	}))
	defer backend.Close()

	r := newTestRouter(t, backend.URL)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/api/search", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %v, want 400", w.Code)
	}
}

func TestSearch_InvalidType(t *testing.T) {
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Errorf("unexpected backend call: %v", r.URL.Path)
	}))
	defer backend.Close()

	r := newTestRouter(t, backend.URL)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/api/search?query=x&type=book", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %v, want 400", w.Code)
	}
}

func TestSearch_MultiFiltersPersons(t *testing.T) {
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/3/search/multi" {
			t.Errorf("backend path = %v", r.URL.Path)
		}
		_, _ = w.Write([]byte(`{"page": 1, "results": [
			{"id": 1, "media_type": "movie", "title": "A"},
			{"id": 2, "media_type": "person", "name": "Somebody"},
			{"id": 3, "media_type": "tv", "name": "B"}
		], "total_pages": 1, "total_results": 3}`))
	}))
	defer backend.Close()

	r := newTestRouter(t, backend.URL)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/api/search?query=x", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %v", w.Code)
	}
	var resp resultsResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(resp.Results) != 2 {
		t.Fatalf("len = %v, want 2 after filtering person records", len(resp.Results))
	}
	if resp.Results[0]["type"] != "movie" || resp.Results[1]["type"] != "show" {
		t.Errorf("types = [%v %v]", resp.Results[0]["type"], resp.Results[1]["type"])
	}
}
