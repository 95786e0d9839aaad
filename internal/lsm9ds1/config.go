// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package lsm9ds1

import "encoding/binary"

// InterruptPinMode is the electrical mode of the INT pins.
type InterruptPinMode uint8

const (
	PushPull InterruptPinMode = iota
	OpenDrain
)

// SPIMode selects 3-wire or 4-wire SPI.
type SPIMode uint8

const (
	FourWire SPIMode = iota
	ThreeWire
)

// Endianness is the byte order of the output data registers.
type Endianness uint8

const (
	// LittleEndian keeps the low byte at the lower address.
	LittleEndian Endianness = iota
	// BigEndian keeps the high byte at the lower address.
	BigEndian
)

func (e Endianness) byteOrder() binary.ByteOrder {
	if e == BigEndian {
		return binary.BigEndian
	}
	return binary.LittleEndian
}

// RegisterValue is one entry of a write plan.
type RegisterValue struct {
	Register Register
	Value    uint8
}

const (
	accelGyroPlanSize    = 7
	magnetometerPlanSize = 5

	// PlanSize is the number of register writes performed by Init.
	PlanSize = 1 + accelGyroPlanSize + magnetometerPlanSize
)

// DeviceConfig is the full sensor configuration. It is the record of the last
// successfully commanded state.
type DeviceConfig struct {
	RebootMemoryContent bool
	BlockDataUpdate     bool
	InterruptActiveLow  bool
	InterruptPinMode    InterruptPinMode
	SPIMode             SPIMode
	// Auto-increment of the register address on multi-byte access.
	RegisterIncrement bool

	AccelGyro    AccelGyroConfig
	Magnetometer MagnetometerConfig
}

// DefaultDeviceConfig returns the power-on-safe configuration.
func DefaultDeviceConfig() DeviceConfig {
	return DeviceConfig{
		InterruptPinMode:  PushPull,
		SPIMode:           FourWire,
		RegisterIncrement: true,
		AccelGyro:         DefaultAccelGyroConfig(),
		Magnetometer:      DefaultMagnetometerConfig(),
	}
}

// AllRegisters returns the init plan: CTRL_REG8 first, then the
// accelerometer/gyroscope block, then the magnetometer block.
func (c *DeviceConfig) AllRegisters() [PlanSize]RegisterValue {
	var plan [PlanSize]RegisterValue
	plan[0] = RegisterValue{CtrlReg8, EncodeCtrlReg8(
		c.RebootMemoryContent,
		c.BlockDataUpdate,
		c.InterruptActiveLow,
		c.InterruptPinMode,
		c.SPIMode,
		c.RegisterIncrement,
		c.AccelGyro.Endianness,
		false,
	)}
	ag := c.AccelGyro.AllRegisters()
	copy(plan[1:], ag[:])
	m := c.Magnetometer.AllRegisters()
	copy(plan[1+accelGyroPlanSize:], m[:])
	return plan
}
