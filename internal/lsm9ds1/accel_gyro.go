// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package lsm9ds1

import "fmt"

// AccelGyroSamplingRate is the output data rate when both accelerometer and
// gyroscope are active.
type AccelGyroSamplingRate uint8

const (
	AccelGyroPowerDown AccelGyroSamplingRate = iota
	AccelGyro14p9Hz
	AccelGyro59p5Hz
	AccelGyro119Hz
	AccelGyro238Hz
	AccelGyro476Hz
	AccelGyro952Hz
)

var accelGyroRateNames = [...]string{"power-down", "14.9Hz", "59.5Hz", "119Hz", "238Hz", "476Hz", "952Hz"}

func (r AccelGyroSamplingRate) String() string {
	if int(r) < len(accelGyroRateNames) {
		return accelGyroRateNames[r]
	}
	return fmt.Sprintf("AccelGyroSamplingRate(%d)", uint8(r))
}

// AccelSamplingRate is the output data rate when only the accelerometer is
// active.
type AccelSamplingRate uint8

const (
	AccelPowerDown AccelSamplingRate = iota
	Accel10Hz
	Accel50Hz
	Accel119Hz
	Accel238Hz
	Accel476Hz
	Accel952Hz
)

var accelRateNames = [...]string{"power-down", "10Hz", "50Hz", "119Hz", "238Hz", "476Hz", "952Hz"}

func (r AccelSamplingRate) String() string {
	if int(r) < len(accelRateNames) {
		return accelRateNames[r]
	}
	return fmt.Sprintf("AccelSamplingRate(%d)", uint8(r))
}

// GyroFullScale selects the gyroscope dynamic range.
type GyroFullScale uint8

const (
	Gyro245DPS GyroFullScale = iota
	Gyro500DPS
	Gyro2000DPS
)

// Bound returns the full-scale bound in degrees per second.
func (fs GyroFullScale) Bound() float32 {
	switch fs {
	case Gyro500DPS:
		return 500
	case Gyro2000DPS:
		return 2000
	default:
		return 245
	}
}

// ScaleFactor converts a raw sample to degrees per second.
func (fs GyroFullScale) ScaleFactor() float32 {
	return scaleFactor(fs.Bound())
}

func (fs GyroFullScale) String() string {
	return fmt.Sprintf("%gdps", fs.Bound())
}

// AccelFullScale selects the accelerometer dynamic range.
type AccelFullScale uint8

const (
	Accel2G AccelFullScale = iota
	Accel4G
	Accel8G
	Accel16G
)

// Bound returns the full-scale bound in g.
func (fs AccelFullScale) Bound() float32 {
	switch fs {
	case Accel4G:
		return 4
	case Accel8G:
		return 8
	case Accel16G:
		return 16
	default:
		return 2
	}
}

// ScaleFactor converts a raw sample to g.
func (fs AccelFullScale) ScaleFactor() float32 {
	return scaleFactor(fs.Bound())
}

func (fs AccelFullScale) String() string {
	return fmt.Sprintf("±%gg", fs.Bound())
}

// GyroBandwidth selects the BW_G code. The resulting cutoff depends on the
// selected output data rate (datasheet table 47).
type GyroBandwidth uint8

const (
	GyroBandwidth0 GyroBandwidth = iota
	GyroBandwidth1
	GyroBandwidth2
	GyroBandwidth3
)

// GyroHighPassCutoff selects the HPCF_G code (0..9). The resulting cutoff
// depends on the selected output data rate (datasheet table 52).
type GyroHighPassCutoff uint8

const (
	GyroHPCF0 GyroHighPassCutoff = iota
	GyroHPCF1
	GyroHPCF2
	GyroHPCF3
	GyroHPCF4
	GyroHPCF5
	GyroHPCF6
	GyroHPCF7
	GyroHPCF8
	GyroHPCF9
)

// AccelDecimation is the accelerometer output decimation.
type AccelDecimation uint8

const (
	DecimationNone AccelDecimation = iota
	DecimationHalf
	DecimationQuarter
	DecimationEighth
)

// AccelBandwidth is the accelerometer anti-aliasing bandwidth.
type AccelBandwidth uint8

const (
	// AccelBandwidthAuto derives the bandwidth from the output data rate.
	AccelBandwidthAuto AccelBandwidth = iota
	AccelBandwidth408Hz
	AccelBandwidth211Hz
	AccelBandwidth105Hz
	AccelBandwidth50Hz
)

// AccelLowpassCutoff is the accelerometer digital filter cutoff in high
// resolution mode.
type AccelLowpassCutoff uint8

const (
	ODRDiv9 AccelLowpassCutoff = iota
	ODRDiv50
	ODRDiv100
	ODRDiv400
)

// AccelGyroConfig configures the accelerometer/gyroscope component.
type AccelGyroConfig struct {
	// Sampling rate if both accelerometer and gyroscope are active.
	AccelGyroSamplingRate AccelGyroSamplingRate
	// Sampling rate if only the accelerometer is active.
	AccelOnlySamplingRate AccelSamplingRate

	GyroFullScale      GyroFullScale
	GyroBandwidth      GyroBandwidth
	GyroHighPassFilter bool
	GyroHighPassCutoff GyroHighPassCutoff
	GyroLowPassFilter  bool
	GyroLowPowerMode   bool
	GyroXAxisEnabled   bool
	GyroYAxisEnabled   bool
	GyroZAxisEnabled   bool

	AccelDecimation     AccelDecimation
	AccelXAxisEnabled   bool
	AccelYAxisEnabled   bool
	AccelZAxisEnabled   bool
	AccelFullScale      AccelFullScale
	AccelBandwidth      AccelBandwidth
	AccelHighResolution bool
	AccelLowPassCutoff  AccelLowpassCutoff
	// Enables the internal digital filter (high pass and low pass).
	AccelFilterEnabled bool

	// Byte order of the output registers.
	Endianness Endianness
}

// DefaultAccelGyroConfig returns the power-on configuration.
func DefaultAccelGyroConfig() AccelGyroConfig {
	return AccelGyroConfig{
		AccelGyroSamplingRate: AccelGyro14p9Hz,
		AccelOnlySamplingRate: Accel10Hz,
		GyroFullScale:         Gyro245DPS,
		GyroBandwidth:         GyroBandwidth0,
		GyroHighPassCutoff:    GyroHPCF0,
		GyroXAxisEnabled:      true,
		GyroYAxisEnabled:      true,
		GyroZAxisEnabled:      true,
		AccelDecimation:       DecimationNone,
		AccelXAxisEnabled:     true,
		AccelYAxisEnabled:     true,
		AccelZAxisEnabled:     true,
		AccelFullScale:        Accel2G,
		AccelBandwidth:        AccelBandwidthAuto,
		AccelLowPassCutoff:    ODRDiv50,
		Endianness:            LittleEndian,
	}
}

// AllRegisters returns the control register values of this component, in
// write order.
func (c *AccelGyroConfig) AllRegisters() [accelGyroPlanSize]RegisterValue {
	return [accelGyroPlanSize]RegisterValue{
		{CtrlReg1G, EncodeCtrlReg1G(c.AccelGyroSamplingRate, c.GyroFullScale, c.GyroBandwidth)},
		{CtrlReg2G, EncodeCtrlReg2G(c.GyroHighPassFilter, c.GyroLowPassFilter)},
		{CtrlReg3G, EncodeCtrlReg3G(c.GyroLowPowerMode, c.GyroHighPassFilter, c.GyroHighPassCutoff)},
		{CtrlReg4, EncodeCtrlReg4(c.GyroXAxisEnabled, c.GyroYAxisEnabled, c.GyroZAxisEnabled)},
		{CtrlReg5XL, EncodeCtrlReg5XL(c.AccelDecimation, c.AccelXAxisEnabled, c.AccelYAxisEnabled, c.AccelZAxisEnabled)},
		{CtrlReg6XL, EncodeCtrlReg6XL(c.AccelOnlySamplingRate, c.AccelFullScale, c.AccelBandwidth)},
		{CtrlReg7XL, EncodeCtrlReg7XL(c.AccelHighResolution, c.AccelLowPassCutoff, c.AccelFilterEnabled)},
	}
}
