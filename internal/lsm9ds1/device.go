// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package lsm9ds1

// Device is an LSM9DS1 sensor behind an Interface.
//
// The in-memory configuration always mirrors the last successful register
// write. A Device is not safe for concurrent use.
type Device struct {
	iface      Interface
	config     DeviceConfig
	configured bool
}

// New returns an unconfigured device. Call Init to program the sensor.
func New(iface Interface, config DeviceConfig) *Device {
	return &Device{iface: iface, config: config}
}

// Config returns a copy of the current configuration.
func (d *Device) Config() DeviceConfig {
	return d.config
}

// Configured reports whether Init has completed since construction or the
// last Reset.
func (d *Device) Configured() bool {
	return d.configured
}

// Init writes every control register from the configuration. The first bus
// error aborts the sequence; call Init again to retry.
func (d *Device) Init() error {
	d.configured = false
	plan := d.config.AllRegisters()
	for _, rv := range plan {
		if err := d.iface.Write(rv.Register, rv.Value); err != nil {
			return err
		}
	}
	d.configured = true
	return nil
}

// SetAccelerometerEnabled enables or disables all accelerometer axes.
func (d *Device) SetAccelerometerEnabled(enabled bool) error {
	ag := &d.config.AccelGyro
	v := EncodeCtrlReg5XL(ag.AccelDecimation, enabled, enabled, enabled)
	if err := d.iface.Write(CtrlReg5XL, v); err != nil {
		return err
	}
	ag.AccelXAxisEnabled = enabled
	ag.AccelYAxisEnabled = enabled
	ag.AccelZAxisEnabled = enabled
	return nil
}

// SetGyroscopeEnabled enables or disables all gyroscope axes.
func (d *Device) SetGyroscopeEnabled(enabled bool) error {
	ag := &d.config.AccelGyro
	if err := d.iface.Write(CtrlReg4, EncodeCtrlReg4(enabled, enabled, enabled)); err != nil {
		return err
	}
	ag.GyroXAxisEnabled = enabled
	ag.GyroYAxisEnabled = enabled
	ag.GyroZAxisEnabled = enabled
	return nil
}

// SetMagnetometerEnabled switches the magnetometer between continuous
// conversion and power-down.
func (d *Device) SetMagnetometerEnabled(enabled bool) error {
	m := &d.config.Magnetometer
	mode := PowerDown
	if enabled {
		mode = ContinuousConversion
	}
	v := EncodeCtrlReg3M(m.I2CDisabled, m.LowPowerMode, m.SPIWriteOnly, mode)
	if err := d.iface.Write(CtrlReg3M, v); err != nil {
		return err
	}
	m.OperatingMode = mode
	return nil
}

// SetAccelGyroSamplingRate sets the rate used when both accelerometer and
// gyroscope are active.
func (d *Device) SetAccelGyroSamplingRate(rate AccelGyroSamplingRate) error {
	ag := &d.config.AccelGyro
	v := EncodeCtrlReg1G(rate, ag.GyroFullScale, ag.GyroBandwidth)
	if err := d.iface.Write(CtrlReg1G, v); err != nil {
		return err
	}
	ag.AccelGyroSamplingRate = rate
	return nil
}

// SetAccelSamplingRate sets the rate used when only the accelerometer is
// active.
func (d *Device) SetAccelSamplingRate(rate AccelSamplingRate) error {
	ag := &d.config.AccelGyro
	v := EncodeCtrlReg6XL(rate, ag.AccelFullScale, ag.AccelBandwidth)
	if err := d.iface.Write(CtrlReg6XL, v); err != nil {
		return err
	}
	ag.AccelOnlySamplingRate = rate
	return nil
}

// SetMagnetometerSamplingRate sets the magnetometer output data rate.
func (d *Device) SetMagnetometerSamplingRate(rate MagSamplingRate) error {
	m := &d.config.Magnetometer
	v := EncodeCtrlReg1M(m.TemperatureCompensation, m.XYPerformanceMode, rate, m.FastSampling, m.SelfTest)
	if err := d.iface.Write(CtrlReg1M, v); err != nil {
		return err
	}
	m.SamplingRate = rate
	return nil
}

// SetGyroscopeFullScale changes the gyroscope range. Subsequent reads use the
// new scale.
func (d *Device) SetGyroscopeFullScale(fs GyroFullScale) error {
	ag := &d.config.AccelGyro
	v := EncodeCtrlReg1G(ag.AccelGyroSamplingRate, fs, ag.GyroBandwidth)
	if err := d.iface.Write(CtrlReg1G, v); err != nil {
		return err
	}
	ag.GyroFullScale = fs
	return nil
}

// SetAccelerometerFullScale changes the accelerometer range.
func (d *Device) SetAccelerometerFullScale(fs AccelFullScale) error {
	ag := &d.config.AccelGyro
	v := EncodeCtrlReg6XL(ag.AccelOnlySamplingRate, fs, ag.AccelBandwidth)
	if err := d.iface.Write(CtrlReg6XL, v); err != nil {
		return err
	}
	ag.AccelFullScale = fs
	return nil
}

// SetMagnetometerFullScale changes the magnetometer range.
func (d *Device) SetMagnetometerFullScale(fs MagFullScale) error {
	if err := d.iface.Write(CtrlReg2M, EncodeCtrlReg2M(fs)); err != nil {
		return err
	}
	d.config.Magnetometer.FullScale = fs
	return nil
}

// Gyroscope reads the angular rate in degrees per second.
func (d *Device) Gyroscope() (Vector, error) {
	ag := &d.config.AccelGyro
	return d.readVector(OutXLG, ag.Endianness, ag.GyroFullScale.ScaleFactor())
}

// Accelerometer reads the acceleration in g.
func (d *Device) Accelerometer() (Vector, error) {
	ag := &d.config.AccelGyro
	return d.readVector(OutXLXL, ag.Endianness, ag.AccelFullScale.ScaleFactor())
}

// Magnetometer reads the magnetic field in Gauss.
func (d *Device) Magnetometer() (Vector, error) {
	m := &d.config.Magnetometer
	return d.readVector(OutXLM, m.Endianness, m.FullScale.ScaleFactor())
}

func (d *Device) readVector(start Register, e Endianness, scale float32) (Vector, error) {
	var raw [6]byte
	if err := d.iface.ReadMultiple(start, raw[:]); err != nil {
		return Vector{}, err
	}
	return DecodeOrder(raw, e.byteOrder(), scale), nil
}

// Temperature reads the die temperature in degrees Celsius. The sensor is
// meant for internal compensation; values are inaccurate while neither
// accelerometer nor gyroscope is sampling.
func (d *Device) Temperature() (float32, error) {
	lo, err := d.iface.Read(OutTempL)
	if err != nil {
		return 0, err
	}
	hi, err := d.iface.Read(OutTempH)
	if err != nil {
		return 0, err
	}
	return DecodeTemperature(lo, hi), nil
}

// WhoAmIAccelGyro reads the accelerometer/gyroscope identification (0x68).
func (d *Device) WhoAmIAccelGyro() (uint8, error) {
	return d.iface.Read(WhoAmI)
}

// WhoAmIMagnetometer reads the magnetometer identification (0x3D).
func (d *Device) WhoAmIMagnetometer() (uint8, error) {
	return d.iface.Read(WhoAmIM)
}

// Reset requests a software reset of the accelerometer/gyroscope. The stored
// configuration no longer describes the hardware afterwards; call Init.
func (d *Device) Reset() error {
	v, err := d.iface.Read(CtrlReg8)
	if err != nil {
		return err
	}
	if err := d.iface.Write(CtrlReg8, v|ctrlReg8Reset); err != nil {
		return err
	}
	d.configured = false
	return nil
}
