package app

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/relabs-tech/lsm9ds1/internal/config"
	"github.com/relabs-tech/lsm9ds1/internal/imu"
	"github.com/relabs-tech/lsm9ds1/internal/lsm9ds1"
)

func testSample() imu.Sample {
	return imu.Sample{
		Source:      "lsm9ds1",
		Accel:       lsm9ds1.Vector{X: 0.01, Y: -0.02, Z: 0.98},
		Gyro:        lsm9ds1.Vector{X: 1.5, Y: -3, Z: 120},
		Mag:         lsm9ds1.Vector{X: 0.2, Y: -0.1, Z: -0.45},
		Temperature: 26.3,
		MagValid:    true,
	}
}

func TestFormatSample(t *testing.T) {
	s := testSample()
	got := formatSample(s)
	for _, want := range []string{"az=  0.980", "gz=  120.00", "mz=-0.450", "t= 26.3C"} {
		if !strings.Contains(got, want) {
			t.Errorf("%q does not contain %q", got, want)
		}
	}

	s.MagValid = false
	if got := formatSample(s); !strings.Contains(got, "mag=n/a") || strings.Contains(got, "mx=") {
		t.Errorf("invalid magnetometer printed: %q", got)
	}
}

func TestDisplayLines(t *testing.T) {
	s := testSample()

	if got := displayLines(s, false, config.DisplayAll); got[2] != "Waiting..." {
		t.Errorf("no data: %q", got)
	}
	if got := displayLines(s, true, config.DisplayAccel); got[0] != "Accel g" || got[3] != "Z:     0.98" {
		t.Errorf("accel: %q", got)
	}
	if got := displayLines(s, true, config.DisplayGyro); got[0] != "Gyro dps" || got[3] != "Z:   120.00" {
		t.Errorf("gyro: %q", got)
	}
	all := displayLines(s, true, config.DisplayAll)
	if len(all) != 4 || !strings.HasPrefix(all[2], "M:") || all[3] != "T: 26.3C" {
		t.Errorf("all: %q", all)
	}

	s.MagValid = false
	if got := displayLines(s, true, config.DisplayMag); got[2] != "no data" {
		t.Errorf("mag without data: %q", got)
	}
	if got := displayLines(s, true, config.DisplayAll); got[2] != "M: --" {
		t.Errorf("all without mag: %q", got)
	}
}

func TestRender(t *testing.T) {
	blank := render(nil)
	for i, b := range blank.Pix {
		if b != 0 {
			t.Fatalf("blank image has pixel byte %d = %#x", i, b)
		}
	}
	img := render(displayLines(testSample(), true, config.DisplayAll))
	if b := img.Bounds(); b.Dx() != 128 || b.Dy() != 64 {
		t.Fatalf("bounds %v", b)
	}
	lit := 0
	for _, b := range img.Pix {
		if b != 0 {
			lit++
		}
	}
	if lit == 0 {
		t.Error("rendered text lit no pixels")
	}
}

type stubSource struct {
	mu    sync.Mutex
	calls int
	fail  int // fail the n-th call
}

func (s *stubSource) ReadIMU() (imu.Sample, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	if s.calls == s.fail {
		return imu.Sample{}, errors.New("bus fault")
	}
	smp := testSample()
	smp.Temperature = float32(s.calls)
	return smp, nil
}

func TestProduce(t *testing.T) {
	src := &stubSource{fail: 2}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var payloads [][]byte
	done := make(chan struct{})
	go func() {
		defer close(done)
		produce(ctx, src, time.Millisecond, time.Hour, func(p []byte) error {
			payloads = append(payloads, p)
			if len(payloads) == 3 {
				cancel()
			}
			return nil
		})
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("producer did not stop")
	}

	if len(payloads) != 3 {
		t.Fatalf("published %d samples, want 3", len(payloads))
	}
	var temps []float32
	for _, p := range payloads {
		var s imu.Sample
		if err := json.Unmarshal(p, &s); err != nil {
			t.Fatal(err)
		}
		temps = append(temps, s.Temperature)
	}
	// the second read failed and was skipped
	if temps[0] != 1 || temps[1] != 3 || temps[2] != 4 {
		t.Errorf("published temperatures %v, want [1 3 4]", temps)
	}
}

func TestProducePublishErrorContinues(t *testing.T) {
	src := &stubSource{}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	attempts := 0
	done := make(chan struct{})
	go func() {
		defer close(done)
		produce(ctx, src, time.Millisecond, 0, func([]byte) error {
			attempts++
			if attempts == 3 {
				cancel()
			}
			return errors.New("broker down")
		})
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("producer did not stop")
	}
	if attempts != 3 {
		t.Errorf("publish attempts %d, want 3", attempts)
	}
}

func TestLatestSampleHandler(t *testing.T) {
	l := &latestSample{}
	if _, ok := l.get(); ok {
		t.Fatal("empty store reports data")
	}
	h := sampleHandler("test", l.set)
	h(nil, fakeMessage(`{"source":"x","temp_c":30}`))
	h(nil, fakeMessage(`not json`))
	s, ok := l.get()
	if !ok || s.Source != "x" || s.Temperature != 30 {
		t.Errorf("latest = %+v, %v", s, ok)
	}
}
