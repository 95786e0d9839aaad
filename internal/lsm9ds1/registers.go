// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package lsm9ds1

import "fmt"

// Component is one of the two physically addressed halves of the chip.
type Component uint8

const (
	// AccelGyro is the accelerometer + gyroscope (also temperature).
	AccelGyro Component = iota
	// Magnetometer is the magnetometer.
	Magnetometer
)

func (c Component) String() string {
	switch c {
	case AccelGyro:
		return "accel_gyro"
	case Magnetometer:
		return "magnetometer"
	default:
		return fmt.Sprintf("Component(%d)", uint8(c))
	}
}

// Register names every addressable byte of both address spaces.
type Register uint8

// Accelerometer/gyroscope registers.
const (
	ActThs Register = iota
	ActDur
	IntGenCfgXL
	IntGenThsXXL
	IntGenThsYXL
	IntGenThsZXL
	IntGenDurXL
	ReferenceG
	Int1Ctrl
	Int2Ctrl
	WhoAmI
	CtrlReg1G
	CtrlReg2G
	CtrlReg3G
	OrientCfgG
	IntGenSrcG
	OutTempL
	OutTempH
	StatusRegG
	OutXLG
	OutXHG
	OutYLG
	OutYHG
	OutZLG
	OutZHG
	CtrlReg4
	CtrlReg5XL
	CtrlReg6XL
	CtrlReg7XL
	CtrlReg8
	CtrlReg9
	CtrlReg10
	IntGenSrcXL
	StatusRegXL
	OutXLXL
	OutXHXL
	OutYLXL
	OutYHXL
	OutZLXL
	OutZHXL
	FifoCtrl
	FifoSrc
	IntGenCfgG
	IntGenThsXHG
	IntGenThsXLG
	IntGenThsYHG
	IntGenThsYLG
	IntGenThsZHG
	IntGenThsZLG
	IntGenDurG

	// Magnetometer registers.
	OffsetXRegLM
	OffsetXRegHM
	OffsetYRegLM
	OffsetYRegHM
	OffsetZRegLM
	OffsetZRegHM
	WhoAmIM
	CtrlReg1M
	CtrlReg2M
	CtrlReg3M
	CtrlReg4M
	CtrlReg5M
	StatusRegM
	OutXLM
	OutXHM
	OutYLM
	OutYHM
	OutZLM
	OutZHM
	IntCfgM
	IntSrcM
	IntThsLM
	IntThsHM

	numRegisters
)

type registerEntry struct {
	name      string
	component Component
	addr      uint8
	writable  bool
}

// registerTable follows the LSM9DS1 datasheet register map (DocID025715).
var registerTable = [numRegisters]registerEntry{
	ActThs:       {"ACT_THS", AccelGyro, 0x04, true},
	ActDur:       {"ACT_DUR", AccelGyro, 0x05, true},
	IntGenCfgXL:  {"INT_GEN_CFG_XL", AccelGyro, 0x06, true},
	IntGenThsXXL: {"INT_GEN_THS_X_XL", AccelGyro, 0x07, true},
	IntGenThsYXL: {"INT_GEN_THS_Y_XL", AccelGyro, 0x08, true},
	IntGenThsZXL: {"INT_GEN_THS_Z_XL", AccelGyro, 0x09, true},
	IntGenDurXL:  {"INT_GEN_DUR_XL", AccelGyro, 0x0a, true},
	ReferenceG:   {"REFERENCE_G", AccelGyro, 0x0b, true},
	Int1Ctrl:     {"INT1_CTRL", AccelGyro, 0x0c, true},
	Int2Ctrl:     {"INT2_CTRL", AccelGyro, 0x0d, true},
	WhoAmI:       {"WHO_AM_I", AccelGyro, 0x0f, false},
	CtrlReg1G:    {"CTRL_REG1_G", AccelGyro, 0x10, true},
	CtrlReg2G:    {"CTRL_REG2_G", AccelGyro, 0x11, true},
	CtrlReg3G:    {"CTRL_REG3_G", AccelGyro, 0x12, true},
	OrientCfgG:   {"ORIENT_CFG_G", AccelGyro, 0x13, true},
	IntGenSrcG:   {"INT_GEN_SRC_G", AccelGyro, 0x14, false},
	OutTempL:     {"OUT_TEMP_L", AccelGyro, 0x15, false},
	OutTempH:     {"OUT_TEMP_H", AccelGyro, 0x16, false},
	StatusRegG:   {"STATUS_REG", AccelGyro, 0x17, false},
	OutXLG:       {"OUT_X_L_G", AccelGyro, 0x18, false},
	OutXHG:       {"OUT_X_H_G", AccelGyro, 0x19, false},
	OutYLG:       {"OUT_Y_L_G", AccelGyro, 0x1a, false},
	OutYHG:       {"OUT_Y_H_G", AccelGyro, 0x1b, false},
	OutZLG:       {"OUT_Z_L_G", AccelGyro, 0x1c, false},
	OutZHG:       {"OUT_Z_H_G", AccelGyro, 0x1d, false},
	CtrlReg4:     {"CTRL_REG4", AccelGyro, 0x1e, true},
	CtrlReg5XL:   {"CTRL_REG5_XL", AccelGyro, 0x1f, true},
	CtrlReg6XL:   {"CTRL_REG6_XL", AccelGyro, 0x20, true},
	CtrlReg7XL:   {"CTRL_REG7_XL", AccelGyro, 0x21, true},
	CtrlReg8:     {"CTRL_REG8", AccelGyro, 0x22, true},
	CtrlReg9:     {"CTRL_REG9", AccelGyro, 0x23, true},
	CtrlReg10:    {"CTRL_REG10", AccelGyro, 0x24, true},
	IntGenSrcXL:  {"INT_GEN_SRC_XL", AccelGyro, 0x26, false},
	StatusRegXL:  {"STATUS_REG_1", AccelGyro, 0x27, false},
	OutXLXL:      {"OUT_X_L_XL", AccelGyro, 0x28, false},
	OutXHXL:      {"OUT_X_H_XL", AccelGyro, 0x29, false},
	OutYLXL:      {"OUT_Y_L_XL", AccelGyro, 0x2a, false},
	OutYHXL:      {"OUT_Y_H_XL", AccelGyro, 0x2b, false},
	OutZLXL:      {"OUT_Z_L_XL", AccelGyro, 0x2c, false},
	OutZHXL:      {"OUT_Z_H_XL", AccelGyro, 0x2d, false},
	FifoCtrl:     {"FIFO_CTRL", AccelGyro, 0x2e, true},
	FifoSrc:      {"FIFO_SRC", AccelGyro, 0x2f, false},
	IntGenCfgG:   {"INT_GEN_CFG_G", AccelGyro, 0x30, true},
	IntGenThsXHG: {"INT_GEN_THS_XH_G", AccelGyro, 0x31, true},
	IntGenThsXLG: {"INT_GEN_THS_XL_G", AccelGyro, 0x32, true},
	IntGenThsYHG: {"INT_GEN_THS_YH_G", AccelGyro, 0x33, true},
	IntGenThsYLG: {"INT_GEN_THS_YL_G", AccelGyro, 0x34, true},
	IntGenThsZHG: {"INT_GEN_THS_ZH_G", AccelGyro, 0x35, true},
	IntGenThsZLG: {"INT_GEN_THS_ZL_G", AccelGyro, 0x36, true},
	IntGenDurG:   {"INT_GEN_DUR_G", AccelGyro, 0x37, true},

	OffsetXRegLM: {"OFFSET_X_REG_L_M", Magnetometer, 0x05, true},
	OffsetXRegHM: {"OFFSET_X_REG_H_M", Magnetometer, 0x06, true},
	OffsetYRegLM: {"OFFSET_Y_REG_L_M", Magnetometer, 0x07, true},
	OffsetYRegHM: {"OFFSET_Y_REG_H_M", Magnetometer, 0x08, true},
	OffsetZRegLM: {"OFFSET_Z_REG_L_M", Magnetometer, 0x09, true},
	OffsetZRegHM: {"OFFSET_Z_REG_H_M", Magnetometer, 0x0a, true},
	WhoAmIM:      {"WHO_AM_I_M", Magnetometer, 0x0f, false},
	CtrlReg1M:    {"CTRL_REG1_M", Magnetometer, 0x20, true},
	CtrlReg2M:    {"CTRL_REG2_M", Magnetometer, 0x21, true},
	CtrlReg3M:    {"CTRL_REG3_M", Magnetometer, 0x22, true},
	CtrlReg4M:    {"CTRL_REG4_M", Magnetometer, 0x23, true},
	CtrlReg5M:    {"CTRL_REG5_M", Magnetometer, 0x24, true},
	StatusRegM:   {"STATUS_REG_M", Magnetometer, 0x27, false},
	OutXLM:       {"OUT_X_L_M", Magnetometer, 0x28, false},
	OutXHM:       {"OUT_X_H_M", Magnetometer, 0x29, false},
	OutYLM:       {"OUT_Y_L_M", Magnetometer, 0x2a, false},
	OutYHM:       {"OUT_Y_H_M", Magnetometer, 0x2b, false},
	OutZLM:       {"OUT_Z_L_M", Magnetometer, 0x2c, false},
	OutZHM:       {"OUT_Z_H_M", Magnetometer, 0x2d, false},
	IntCfgM:      {"INT_CFG_M", Magnetometer, 0x30, true},
	IntSrcM:      {"INT_SRC_M", Magnetometer, 0x31, false},
	IntThsLM:     {"INT_THS_L_M", Magnetometer, 0x32, true},
	IntThsHM:     {"INT_THS_H_M", Magnetometer, 0x33, true},
}

// Chip identification values read back from WHO_AM_I and WHO_AM_I_M.
const (
	WhoAmIAccelGyroValue    = 0x68
	WhoAmIMagnetometerValue = 0x3d
)

// Addr returns the component and byte address of the register.
func (r Register) Addr() (Component, uint8) {
	e := registerTable[r]
	return e.component, e.addr
}

// Component returns the half of the chip the register belongs to.
func (r Register) Component() Component {
	return registerTable[r].component
}

// Writable reports whether the datasheet marks the register as writable.
func (r Register) Writable() bool {
	return registerTable[r].writable
}

func (r Register) String() string {
	if r >= numRegisters {
		return fmt.Sprintf("Register(%d)", uint8(r))
	}
	return registerTable[r].name
}

// Registers returns every register identifier in table order.
func Registers() []Register {
	regs := make([]Register, 0, numRegisters)
	for r := Register(0); r < numRegisters; r++ {
		regs = append(regs, r)
	}
	return regs
}

// LookupRegister finds the register at addr within component c.
func LookupRegister(c Component, addr uint8) (Register, bool) {
	for r := Register(0); r < numRegisters; r++ {
		if e := registerTable[r]; e.component == c && e.addr == addr {
			return r, true
		}
	}
	return 0, false
}
