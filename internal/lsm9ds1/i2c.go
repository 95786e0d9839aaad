// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package lsm9ds1

import (
	"fmt"

	"periph.io/x/conn/v3/i2c"
)

// AddressAG is the I2C address of the accelerometer/gyroscope, selected by
// the SDO_A/G pin.
type AddressAG uint16

const (
	AddressAG6A AddressAG = 0x6a
	AddressAG6B AddressAG = 0x6b
)

// AddressM is the I2C address of the magnetometer, selected by the SDO_M pin.
type AddressM uint16

const (
	AddressM1C AddressM = 0x1c
	AddressM1E AddressM = 0x1e
)

// I2CConfig selects the bus addresses of both components.
type I2CConfig struct {
	AccelGyro    AddressAG
	Magnetometer AddressM
}

// DefaultI2CConfig matches boards with both SDO pins pulled high.
var DefaultI2CConfig = I2CConfig{
	AccelGyro:    AddressAG6B,
	Magnetometer: AddressM1E,
}

// The magnetometer only auto-increments on I2C when bit 7 of the
// sub-address is set.
const magI2CAutoIncrement = 0x80

// I2CInterface talks to the sensor over I2C.
type I2CInterface struct {
	ag i2c.Dev
	m  i2c.Dev
}

// NewI2C returns an interface on bus using the given addresses.
func NewI2C(bus i2c.Bus, config I2CConfig) *I2CInterface {
	return &I2CInterface{
		ag: i2c.Dev{Addr: uint16(config.AccelGyro), Bus: bus},
		m:  i2c.Dev{Addr: uint16(config.Magnetometer), Bus: bus},
	}
}

func (i *I2CInterface) String() string {
	return fmt.Sprintf("lsm9ds1-i2c{ag:%#x m:%#x}", i.ag.Addr, i.m.Addr)
}

func (i *I2CInterface) dev(c Component) *i2c.Dev {
	if c == Magnetometer {
		return &i.m
	}
	return &i.ag
}

// Write implements Interface.
func (i *I2CInterface) Write(reg Register, value uint8) error {
	c, addr := reg.Addr()
	w := [2]byte{addr, value}
	return busError("write", reg, i.dev(c).Tx(w[:], nil))
}

// Read implements Interface.
func (i *I2CInterface) Read(reg Register) (uint8, error) {
	c, addr := reg.Addr()
	w := [1]byte{addr}
	var r [1]byte
	if err := i.dev(c).Tx(w[:], r[:]); err != nil {
		return 0, busError("read", reg, err)
	}
	return r[0], nil
}

// ReadMultiple implements Interface.
func (i *I2CInterface) ReadMultiple(start Register, buf []byte) error {
	c, addr := start.Addr()
	if c == Magnetometer && len(buf) > 1 {
		addr |= magI2CAutoIncrement
	}
	w := [1]byte{addr}
	return busError("read", start, i.dev(c).Tx(w[:], buf))
}
