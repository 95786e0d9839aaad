// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package lsm9ds1

import (
	"errors"
	"fmt"

	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi"
)

// SPI framing. The first byte carries the register address; bit 7 selects a
// read and, on the magnetometer only, bit 6 enables address auto-increment.
const (
	spiRead             = 0x80
	spiMagAutoIncrement = 0x40

	// DefaultSPIFrequency is well below the 10MHz limit of the chip.
	DefaultSPIFrequency = physic.MegaHertz

	spiMode = spi.Mode3
	spiBits = 8

	maxBurst = 32
)

var errBurstTooLong = errors.New("burst read longer than 32 bytes")

// SPIInterface talks to the sensor over SPI. Each component has its own chip
// select, so each gets its own connection.
type SPIInterface struct {
	ag spi.Conn
	m  spi.Conn
}

// NewSPI connects to the accelerometer/gyroscope on ag and the magnetometer
// on m. A zero freq selects DefaultSPIFrequency.
func NewSPI(ag, m spi.Port, freq physic.Frequency) (*SPIInterface, error) {
	if freq == 0 {
		freq = DefaultSPIFrequency
	}
	agConn, err := ag.Connect(freq, spiMode, spiBits)
	if err != nil {
		return nil, fmt.Errorf("lsm9ds1: connect accel/gyro SPI: %w", err)
	}
	mConn, err := m.Connect(freq, spiMode, spiBits)
	if err != nil {
		return nil, fmt.Errorf("lsm9ds1: connect magnetometer SPI: %w", err)
	}
	return &SPIInterface{ag: agConn, m: mConn}, nil
}

func (s *SPIInterface) String() string {
	return fmt.Sprintf("lsm9ds1-spi{ag:%s m:%s}", s.ag, s.m)
}

func (s *SPIInterface) conn(c Component) spi.Conn {
	if c == Magnetometer {
		return s.m
	}
	return s.ag
}

// Write implements Interface.
func (s *SPIInterface) Write(reg Register, value uint8) error {
	c, addr := reg.Addr()
	w := [2]byte{addr &^ spiRead, value}
	return busError("write", reg, s.conn(c).Tx(w[:], nil))
}

// Read implements Interface.
func (s *SPIInterface) Read(reg Register) (uint8, error) {
	c, addr := reg.Addr()
	w := [2]byte{addr | spiRead, 0}
	var r [2]byte
	if err := s.conn(c).Tx(w[:], r[:]); err != nil {
		return 0, busError("read", reg, err)
	}
	return r[1], nil
}

// ReadMultiple implements Interface.
func (s *SPIInterface) ReadMultiple(start Register, buf []byte) error {
	if len(buf) > maxBurst {
		return busError("read", start, errBurstTooLong)
	}
	c, addr := start.Addr()
	addr |= spiRead
	if c == Magnetometer && len(buf) > 1 {
		addr |= spiMagAutoIncrement
	}
	var w, r [maxBurst + 1]byte
	w[0] = addr
	n := len(buf) + 1
	if err := s.conn(c).Tx(w[:n], r[:n]); err != nil {
		return busError("read", start, err)
	}
	copy(buf, r[1:n])
	return nil
}
