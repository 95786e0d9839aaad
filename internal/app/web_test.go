package app

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/relabs-tech/lsm9ds1/internal/imu"
)

func TestWebLatestSample(t *testing.T) {
	latest := &latestSample{}
	srv := httptest.NewServer(newWebMux(latest, t.TempDir()))
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/api/imu")
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusServiceUnavailable {
		t.Errorf("before data: status %d, want 503", resp.StatusCode)
	}

	want := imu.Sample{Source: "lsm9ds1", Time: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC), Temperature: 27.5, MagValid: true}
	want.Accel.Z = 1
	want.Mag.X = 0.25
	latest.set(want)

	resp, err = http.Get(srv.URL + "/api/imu")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status %d", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "application/json" {
		t.Errorf("content type %q", ct)
	}
	var got imu.Sample
	if err := json.NewDecoder(resp.Body).Decode(&got); err != nil {
		t.Fatal(err)
	}
	if got.Source != want.Source || !got.Time.Equal(want.Time) || got.Accel != want.Accel || got.Mag != want.Mag || got.Temperature != want.Temperature || !got.MagValid {
		t.Errorf("got %+v, want %+v", got, want)
	}
}

func TestWebMetricsAndStatic(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "index.html"), []byte("<h1>imu</h1>"), 0o644); err != nil {
		t.Fatal(err)
	}
	srv := httptest.NewServer(newWebMux(&latestSample{}, dir))
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/metrics")
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("/metrics status %d", resp.StatusCode)
	}

	rec := httptest.NewRecorder()
	newWebMux(&latestSample{}, dir).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if !strings.Contains(rec.Body.String(), "<h1>imu</h1>") {
		t.Errorf("index not served: %q", rec.Body.String())
	}
}
