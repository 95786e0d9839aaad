// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package imu

import (
	"math"
	"time"

	"github.com/relabs-tech/lsm9ds1/internal/lsm9ds1"
)

type mockSource struct {
	start time.Time
	now   func() time.Time
}

// NewMockSource creates a source that generates smoothly changing samples,
// for running the tools without hardware. The board slowly tilts about X
// while rotating about Z.
func NewMockSource() SampleSource {
	return &mockSource{start: time.Now(), now: time.Now}
}

func (m *mockSource) ReadIMU() (Sample, error) {
	t := m.now()
	elapsed := t.Sub(m.start).Seconds()

	roll := 0.35 * math.Sin(elapsed)
	yaw := math.Mod(elapsed*0.5, 2*math.Pi)

	return Sample{
		Source: "mock",
		Time:   t,
		Accel: lsm9ds1.Vector{
			X: 0,
			Y: float32(math.Sin(roll)),
			Z: float32(math.Cos(roll)),
		},
		Gyro: lsm9ds1.Vector{
			X: float32(0.35 * math.Cos(elapsed) * 180 / math.Pi),
			Z: float32(0.5 * 180 / math.Pi),
		},
		Mag: lsm9ds1.Vector{
			X: float32(0.45 * math.Cos(yaw)),
			Y: float32(-0.45 * math.Sin(yaw)),
			Z: -0.3,
		},
		Temperature: 25 + float32(math.Sin(elapsed/60)),
		MagValid:    true,
	}, nil
}
