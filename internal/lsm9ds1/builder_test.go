// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package lsm9ds1

import (
	"errors"
	"testing"
)

func TestBuilderDefaults(t *testing.T) {
	if NewBuilder().Config() != DefaultDeviceConfig() {
		t.Error("builder does not start from the default configuration")
	}
}

func TestBuilder(t *testing.T) {
	cfg := NewBuilder().
		WithGyroscopeEnabled(false).
		WithMagnetometerEnabled(true).
		WithAccelGyroSamplingRate(AccelGyro119Hz).
		WithAccelSamplingRate(Accel50Hz).
		WithMagnetometerSamplingRate(Mag80Hz).
		WithAccelerometerScale(Accel8G).
		WithGyroscopeScale(Gyro2000DPS).
		WithMagnetometerScale(Mag12Gauss).
		WithMagnetometerPerformance(UltraHighPerformance).
		WithBlockDataUpdate(true).
		Config()

	ag := cfg.AccelGyro
	if ag.GyroXAxisEnabled || ag.GyroYAxisEnabled || ag.GyroZAxisEnabled {
		t.Error("gyro still enabled")
	}
	if !ag.AccelXAxisEnabled {
		t.Error("accel disabled")
	}
	if ag.AccelGyroSamplingRate != AccelGyro119Hz || ag.AccelOnlySamplingRate != Accel50Hz {
		t.Errorf("rates %v, %v", ag.AccelGyroSamplingRate, ag.AccelOnlySamplingRate)
	}
	if ag.AccelFullScale != Accel8G || ag.GyroFullScale != Gyro2000DPS {
		t.Errorf("scales %v, %v", ag.AccelFullScale, ag.GyroFullScale)
	}
	m := cfg.Magnetometer
	if !m.Enabled() || m.SamplingRate != Mag80Hz || m.FullScale != Mag12Gauss {
		t.Errorf("magnetometer %+v", m)
	}
	if m.XYPerformanceMode != UltraHighPerformance || m.ZPerformanceMode != UltraHighPerformance {
		t.Errorf("performance %v/%v", m.XYPerformanceMode, m.ZPerformanceMode)
	}
	if !cfg.BlockDataUpdate || !m.BlockDataUpdate {
		t.Error("block data update not set on both components")
	}
}

func TestBuilderInitOn(t *testing.T) {
	bus := newFakeBus()
	d, err := NewBuilder().WithAccelerometerEnabled(false).InitOn(bus)
	if err != nil {
		t.Fatal(err)
	}
	if !d.Configured() {
		t.Error("device not configured")
	}
	if got := bus.regs[CtrlReg5XL]; got != 0x20 {
		t.Errorf("CTRL_REG5_XL = %#02x, want 0x20", got)
	}

	bus = newFakeBus()
	bus.failWrites = true
	if _, err := NewBuilder().InitOn(bus); !errors.Is(err, errBus) {
		t.Errorf("got %v, want %v", err, errBus)
	}
}
