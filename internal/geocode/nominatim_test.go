package geocode

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestGeocodeFirstResult(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("q"); got != "Calle Mayor 1, Madrid" {
			t.Errorf("q = %q", got)
		}
		if got := r.URL.Query().Get("limit"); got != "1" {
			t.Errorf("limit = %q", got)
		}
		if r.Header.Get("User-Agent") == "" {
			t.Error("missing User-Agent")
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"lat":"40.4168","lon":"-3.7038"}]`))
	}))
	defer ts.Close()

	lat, lon, err := NewNominatim(ts.URL).Geocode(context.Background(), "Calle Mayor 1, Madrid")
	if err != nil {
		t.Fatalf("geocode: %v", err)
	}
	if lat != 40.4168 || lon != -3.7038 {
		t.Fatalf("coordinates = (%v, %v)", lat, lon)
	}
}

func TestGeocodeNoResults(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[]`))
	}))
	defer ts.Close()

	lat, lon, err := NewNominatim(ts.URL).Geocode(context.Background(), "nowhere at all")
	if err != nil {
		t.Fatalf("geocode: %v", err)
	}
	if lat != 0 || lon != 0 {
		t.Fatalf("coordinates = (%v, %v), want (0, 0)", lat, lon)
	}
}

func TestGeocodeUpstreamError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer ts.Close()

	if _, _, err := NewNominatim(ts.URL).Geocode(context.Background(), "anywhere"); err == nil {
		t.Fatal("expected error for upstream failure")
	}
}
