// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package lsm9ds1

import "fmt"

// Interface is a register-addressed bus to the sensor. Implementations route
// each register to the bus address of its component.
type Interface interface {
	// Write writes value to reg.
	Write(reg Register, value uint8) error
	// Read reads a single register.
	Read(reg Register) (uint8, error)
	// ReadMultiple reads len(buf) consecutive registers starting at start.
	ReadMultiple(start Register, buf []byte) error
}

// BusError is the only error kind reported by the driver. It wraps the
// transport error verbatim.
type BusError struct {
	Op       string
	Register Register
	Err      error
}

func (e *BusError) Error() string {
	return fmt.Sprintf("lsm9ds1: %s %s: %v", e.Op, e.Register, e.Err)
}

func (e *BusError) Unwrap() error {
	return e.Err
}

func busError(op string, reg Register, err error) error {
	if err == nil {
		return nil
	}
	return &BusError{Op: op, Register: reg, Err: err}
}
