// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package lsm9ds1

// Builder assembles a DeviceConfig starting from DefaultDeviceConfig.
type Builder struct {
	config DeviceConfig
}

func NewBuilder() *Builder {
	return &Builder{config: DefaultDeviceConfig()}
}

// WithConfig replaces the whole configuration.
func (b *Builder) WithConfig(config DeviceConfig) *Builder {
	b.config = config
	return b
}

func (b *Builder) WithAccelerometerEnabled(enabled bool) *Builder {
	ag := &b.config.AccelGyro
	ag.AccelXAxisEnabled = enabled
	ag.AccelYAxisEnabled = enabled
	ag.AccelZAxisEnabled = enabled
	return b
}

func (b *Builder) WithGyroscopeEnabled(enabled bool) *Builder {
	ag := &b.config.AccelGyro
	ag.GyroXAxisEnabled = enabled
	ag.GyroYAxisEnabled = enabled
	ag.GyroZAxisEnabled = enabled
	return b
}

func (b *Builder) WithMagnetometerEnabled(enabled bool) *Builder {
	if enabled {
		b.config.Magnetometer.OperatingMode = ContinuousConversion
	} else {
		b.config.Magnetometer.OperatingMode = PowerDown
	}
	return b
}

func (b *Builder) WithAccelGyroSamplingRate(rate AccelGyroSamplingRate) *Builder {
	b.config.AccelGyro.AccelGyroSamplingRate = rate
	return b
}

func (b *Builder) WithAccelSamplingRate(rate AccelSamplingRate) *Builder {
	b.config.AccelGyro.AccelOnlySamplingRate = rate
	return b
}

func (b *Builder) WithMagnetometerSamplingRate(rate MagSamplingRate) *Builder {
	b.config.Magnetometer.SamplingRate = rate
	return b
}

func (b *Builder) WithAccelerometerScale(fs AccelFullScale) *Builder {
	b.config.AccelGyro.AccelFullScale = fs
	return b
}

func (b *Builder) WithGyroscopeScale(fs GyroFullScale) *Builder {
	b.config.AccelGyro.GyroFullScale = fs
	return b
}

func (b *Builder) WithMagnetometerScale(fs MagFullScale) *Builder {
	b.config.Magnetometer.FullScale = fs
	return b
}

// WithMagnetometerPerformance sets the XY and Z performance modes together.
func (b *Builder) WithMagnetometerPerformance(mode PerformanceMode) *Builder {
	b.config.Magnetometer.XYPerformanceMode = mode
	b.config.Magnetometer.ZPerformanceMode = mode
	return b
}

func (b *Builder) WithBlockDataUpdate(enabled bool) *Builder {
	b.config.BlockDataUpdate = enabled
	b.config.Magnetometer.BlockDataUpdate = enabled
	return b
}

// Config returns the configuration built so far.
func (b *Builder) Config() DeviceConfig {
	return b.config
}

// InitOn creates a device on iface and programs it.
func (b *Builder) InitOn(iface Interface) (*Device, error) {
	d := New(iface, b.config)
	if err := d.Init(); err != nil {
		return nil, err
	}
	return d, nil
}
