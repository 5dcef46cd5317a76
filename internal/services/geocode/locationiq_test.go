package geocode

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func testClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	c := NewClient("test-key", "in")
	c.BaseURL = srv.URL
	return c
}

func TestSearch(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/search.php" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		q := r.URL.Query()
		if q.Get("key") != "test-key" {
			t.Errorf("key = %q", q.Get("key"))
		}
		if q.Get("countrycodes") != "in" {
			t.Errorf("countrycodes = %q", q.Get("countrycodes"))
		}
		if q.Get("limit") != "1" {
			t.Errorf("limit = %q", q.Get("limit"))
		}
		w.Write([]byte(`[{"lat":"19.0760","lon":"72.8777","display_name":"Mumbai, Maharashtra, India"}]`))
	})

	res, err := c.Search("Mumbai")
	if err != nil {
		t.Fatalf("Search() error: %v", err)
	}
	if res == nil {
		t.Fatal("Search() returned nil result")
	}
	if res.Lat != 19.0760 || res.Lon != 72.8777 {
		t.Errorf("coords = %v,%v", res.Lat, res.Lon)
	}
	if res.DisplayName != "Mumbai, Maharashtra, India" {
		t.Errorf("display name = %q", res.DisplayName)
	}
}

func TestSearchNoMatch(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[]`))
	})

	res, err := c.Search("nowhere")
	if err != nil {
		t.Fatalf("Search() error: %v", err)
	}
	if res != nil {
		t.Errorf("expected nil result for empty response, got %+v", res)
	}
}

func TestSearchErrorStatus(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error":"Invalid key"}`))
	})

	if _, err := c.Search("Mumbai"); err == nil {
		t.Error("expected error on non-200 status")
	}
}

func TestAutocomplete(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/autocomplete.php" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if r.URL.Query().Get("limit") != "5" {
			t.Errorf("limit = %q", r.URL.Query().Get("limit"))
		}
		w.Write([]byte(`[
			{"lat":"28.6139","lon":"77.2090","display_name":"Delhi, India"},
			{"lat":"28.7041","lon":"77.1025","display_name":"North Delhi, India"},
			{"lat":"bad","lon":"77.0","display_name":"broken row"}
		]`))
	})

	res, err := c.Autocomplete("Delh", 0)
	if err != nil {
		t.Fatalf("Autocomplete() error: %v", err)
	}
	// the unparsable row is skipped, not fatal
	if len(res) != 2 {
		t.Fatalf("expected 2 candidates, got %d", len(res))
	}
	if res[0].DisplayName != "Delhi, India" {
		t.Errorf("first candidate = %q", res[0].DisplayName)
	}
}

func TestReverse(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/reverse.php" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		q := r.URL.Query()
		if q.Get("lat") == "" || q.Get("lon") == "" {
			t.Error("lat/lon missing from query")
		}
		w.Write([]byte(`{"lat":"19.0760","lon":"72.8777","display_name":"Mumbai, Maharashtra, India"}`))
	})

	name, err := c.Reverse(19.0760, 72.8777)
	if err != nil {
		t.Fatalf("Reverse() error: %v", err)
	}
	if name != "Mumbai, Maharashtra, India" {
		t.Errorf("display name = %q", name)
	}
}
