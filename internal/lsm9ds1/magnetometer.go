// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package lsm9ds1

import "fmt"

// PerformanceMode is the magnetometer power/performance trade-off, set
// separately for the XY axes and the Z axis.
type PerformanceMode uint8

const (
	LowPower PerformanceMode = iota
	MediumPerformance
	HighPerformance
	UltraHighPerformance
)

var performanceNames = [...]string{"low", "medium", "high", "ultra-high"}

func (m PerformanceMode) String() string {
	if int(m) < len(performanceNames) {
		return performanceNames[m]
	}
	return fmt.Sprintf("PerformanceMode(%d)", uint8(m))
}

// MagSamplingRate is the magnetometer output data rate.
type MagSamplingRate uint8

const (
	Mag0p625Hz MagSamplingRate = iota
	Mag1p25Hz
	Mag2p5Hz
	Mag5Hz
	Mag10Hz
	Mag20Hz
	Mag40Hz
	Mag80Hz
)

var magRateNames = [...]string{"0.625Hz", "1.25Hz", "2.5Hz", "5Hz", "10Hz", "20Hz", "40Hz", "80Hz"}

func (r MagSamplingRate) String() string {
	if int(r) < len(magRateNames) {
		return magRateNames[r]
	}
	return fmt.Sprintf("MagSamplingRate(%d)", uint8(r))
}

// MagFullScale selects the magnetometer dynamic range.
type MagFullScale uint8

const (
	Mag4Gauss MagFullScale = iota
	Mag8Gauss
	Mag12Gauss
	Mag16Gauss
)

// Bound returns the full-scale bound in Gauss.
func (fs MagFullScale) Bound() float32 {
	switch fs {
	case Mag8Gauss:
		return 8
	case Mag12Gauss:
		return 12
	case Mag16Gauss:
		return 16
	default:
		return 4
	}
}

// ScaleFactor converts a raw sample to Gauss.
func (fs MagFullScale) ScaleFactor() float32 {
	return scaleFactor(fs.Bound())
}

func (fs MagFullScale) String() string {
	return fmt.Sprintf("±%ggauss", fs.Bound())
}

// OperatingMode is the magnetometer conversion mode.
type OperatingMode uint8

const (
	ContinuousConversion OperatingMode = iota
	SingleConversion
	PowerDown
)

func (m OperatingMode) String() string {
	switch m {
	case ContinuousConversion:
		return "continuous"
	case SingleConversion:
		return "single"
	case PowerDown:
		return "power-down"
	default:
		return fmt.Sprintf("OperatingMode(%d)", uint8(m))
	}
}

// MagnetometerConfig configures the magnetometer component.
type MagnetometerConfig struct {
	TemperatureCompensation bool
	XYPerformanceMode       PerformanceMode
	ZPerformanceMode        PerformanceMode
	SamplingRate            MagSamplingRate
	// Enables sampling rates higher than 80Hz.
	FastSampling bool
	SelfTest     bool
	FullScale    MagFullScale
	I2CDisabled  bool
	// Forces 0.625Hz and the minimum number of averages per channel.
	LowPowerMode  bool
	SPIWriteOnly  bool
	OperatingMode OperatingMode
	Endianness    Endianness
	// Allows reading only the high part of the data registers.
	FastRead bool
	// Blocks data updates until the current sample has been read.
	BlockDataUpdate bool
}

// DefaultMagnetometerConfig returns the power-on configuration, which keeps
// the magnetometer powered down.
func DefaultMagnetometerConfig() MagnetometerConfig {
	return MagnetometerConfig{
		XYPerformanceMode: LowPower,
		ZPerformanceMode:  LowPower,
		SamplingRate:      Mag10Hz,
		FullScale:         Mag4Gauss,
		SPIWriteOnly:      true,
		OperatingMode:     PowerDown,
		Endianness:        LittleEndian,
	}
}

// Enabled reports whether the magnetometer is converting.
func (c *MagnetometerConfig) Enabled() bool {
	return c.OperatingMode != PowerDown
}

// AllRegisters returns the control register values of this component, in
// write order.
func (c *MagnetometerConfig) AllRegisters() [magnetometerPlanSize]RegisterValue {
	return [magnetometerPlanSize]RegisterValue{
		{CtrlReg1M, EncodeCtrlReg1M(c.TemperatureCompensation, c.XYPerformanceMode, c.SamplingRate, c.FastSampling, c.SelfTest)},
		{CtrlReg2M, EncodeCtrlReg2M(c.FullScale)},
		{CtrlReg3M, EncodeCtrlReg3M(c.I2CDisabled, c.LowPowerMode, c.SPIWriteOnly, c.OperatingMode)},
		{CtrlReg4M, EncodeCtrlReg4M(c.ZPerformanceMode, c.Endianness)},
		{CtrlReg5M, EncodeCtrlReg5M(c.FastRead, c.BlockDataUpdate)},
	}
}
