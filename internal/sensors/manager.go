// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package sensors

import (
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/relabs-tech/lsm9ds1/internal/config"
	"github.com/relabs-tech/lsm9ds1/internal/imu"
	"github.com/relabs-tech/lsm9ds1/internal/lsm9ds1"
)

// ErrNotInitialized is returned by IMUManager methods called before Init.
var ErrNotInitialized = errors.New("IMU not initialized")

// IMUManager owns the single LSM9DS1 device of the process and serialises
// every access to it.
type IMUManager struct {
	mu     sync.Mutex
	name   string
	iface  lsm9ds1.Interface
	dev    *lsm9ds1.Device
	closer io.Closer
}

var (
	imuManager  *IMUManager
	managerOnce sync.Once
)

// GetIMUManager returns the process wide manager.
func GetIMUManager() *IMUManager {
	managerOnce.Do(func() {
		imuManager = &IMUManager{name: "lsm9ds1"}
	})
	return imuManager
}

// Init opens the configured bus and programs the sensor.
func (m *IMUManager) Init() error {
	cfg := config.Get()
	if cfg == nil {
		return errors.New("configuration not loaded")
	}
	iface, closer, err := openInterface(cfg)
	if err != nil {
		return fmt.Errorf("%s IMU: %w", m.name, err)
	}
	if err := m.attachBus(iface, closer, cfg.DeviceConfig()); err != nil {
		return err
	}
	log.Printf("%s IMU: initialized on %s bus", m.name, cfg.Bus)
	return nil
}

// attachBus attaches iface and takes ownership of closer. A bus left from a
// previous Init is released once the new one is in use. On failure closer is
// released and the previous device stays attached.
func (m *IMUManager) attachBus(iface lsm9ds1.Interface, closer io.Closer, dc lsm9ds1.DeviceConfig) error {
	if err := m.Attach(iface, dc); err != nil {
		closer.Close()
		return err
	}
	m.mu.Lock()
	old := m.closer
	m.closer = closer
	m.mu.Unlock()
	if old != nil {
		if err := old.Close(); err != nil {
			log.Warnf("%s IMU: closing previous bus: %v", m.name, err)
		}
	}
	return nil
}

// Attach programs the sensor behind iface with dc and makes it the managed
// device. WHO_AM_I mismatches are logged but do not fail.
func (m *IMUManager) Attach(iface lsm9ds1.Interface, dc lsm9ds1.DeviceConfig) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.name == "" {
		m.name = "lsm9ds1"
	}
	dev := lsm9ds1.New(iface, dc)
	m.checkIdentity(dev)

	if err := countError("init", dev.Init()); err != nil {
		return fmt.Errorf("%s IMU: initialization: %w", m.name, err)
	}
	initCount.Inc()

	ag := dc.AccelGyro
	log.Printf("%s IMU: accel/gyro rate %s, accel %s, gyro %s", m.name, ag.AccelGyroSamplingRate, ag.AccelFullScale, ag.GyroFullScale)
	mag := dc.Magnetometer
	if mag.Enabled() {
		log.Printf("%s IMU: magnetometer %s, %s, %s performance", m.name, mag.SamplingRate, mag.FullScale, mag.XYPerformanceMode)
	} else {
		log.Printf("%s IMU: magnetometer powered down", m.name)
	}

	m.iface = iface
	m.dev = dev
	return nil
}

func (m *IMUManager) checkIdentity(dev *lsm9ds1.Device) {
	if id, err := dev.WhoAmIAccelGyro(); err != nil {
		log.Warnf("%s IMU: failed to read accel/gyro WHO_AM_I: %v", m.name, err)
	} else if id != lsm9ds1.WhoAmIAccelGyroValue {
		log.Warnf("%s IMU: accel/gyro WHO_AM_I = 0x%02X, expected 0x%02X", m.name, id, lsm9ds1.WhoAmIAccelGyroValue)
	} else {
		log.Debugf("%s IMU: accel/gyro WHO_AM_I = 0x%02X", m.name, id)
	}
	if id, err := dev.WhoAmIMagnetometer(); err != nil {
		log.Warnf("%s IMU: failed to read magnetometer WHO_AM_I: %v", m.name, err)
	} else if id != lsm9ds1.WhoAmIMagnetometerValue {
		log.Warnf("%s IMU: magnetometer WHO_AM_I = 0x%02X, expected 0x%02X", m.name, id, lsm9ds1.WhoAmIMagnetometerValue)
	} else {
		log.Debugf("%s IMU: magnetometer WHO_AM_I = 0x%02X", m.name, id)
	}
}

// IsAvailable reports whether a device is attached.
func (m *IMUManager) IsAvailable() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.dev != nil
}

// ReadIMU reads accelerometer, gyroscope, magnetometer and temperature.
func (m *IMUManager) ReadIMU() (imu.Sample, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.dev == nil {
		return imu.Sample{}, ErrNotInitialized
	}

	s := imu.Sample{Source: m.name, Time: time.Now()}
	var err error
	if s.Accel, err = m.dev.Accelerometer(); err != nil {
		return imu.Sample{}, fmt.Errorf("%s IMU accel: %w", m.name, countError("accel", err))
	}
	if s.Gyro, err = m.dev.Gyroscope(); err != nil {
		return imu.Sample{}, fmt.Errorf("%s IMU gyro: %w", m.name, countError("gyro", err))
	}
	if s.Temperature, err = m.dev.Temperature(); err != nil {
		return imu.Sample{}, fmt.Errorf("%s IMU temperature: %w", m.name, countError("temperature", err))
	}
	dieTemperature.Set(float64(s.Temperature))

	cfg := m.dev.Config()
	if cfg.Magnetometer.Enabled() {
		// A failing magnetometer does not invalidate the rest of the sample.
		if s.Mag, err = m.dev.Magnetometer(); err != nil {
			countError("mag", err)
			log.Printf("%s IMU: magnetometer read error: %v", m.name, err)
		} else {
			s.MagValid = true
		}
	}
	samplesRead.Inc()
	return s, nil
}

// Config returns the configuration of the attached device.
func (m *IMUManager) Config() (lsm9ds1.DeviceConfig, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.dev == nil {
		return lsm9ds1.DeviceConfig{}, ErrNotInitialized
	}
	return m.dev.Config(), nil
}

// Plan returns the register values Init writes for the current configuration.
func (m *IMUManager) Plan() ([lsm9ds1.PlanSize]lsm9ds1.RegisterValue, error) {
	cfg, err := m.Config()
	if err != nil {
		return [lsm9ds1.PlanSize]lsm9ds1.RegisterValue{}, err
	}
	return cfg.AllRegisters(), nil
}

// Update runs fn with exclusive access to the device, for live setting
// changes.
func (m *IMUManager) Update(fn func(*lsm9ds1.Device) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.dev == nil {
		return ErrNotInitialized
	}
	return countError("update", fn(m.dev))
}

// Reinitialize writes the full configuration again.
func (m *IMUManager) Reinitialize() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.dev == nil {
		return ErrNotInitialized
	}
	if err := countError("init", m.dev.Init()); err != nil {
		return fmt.Errorf("%s IMU: reinitialization: %w", m.name, err)
	}
	initCount.Inc()
	log.Printf("%s IMU: reinitialized", m.name)
	return nil
}

// Reset requests a software reset. The device must be reinitialized
// afterwards.
func (m *IMUManager) Reset() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.dev == nil {
		return ErrNotInitialized
	}
	if err := countError("reset", m.dev.Reset()); err != nil {
		return fmt.Errorf("%s IMU: reset: %w", m.name, err)
	}
	log.Printf("%s IMU: software reset requested", m.name)
	return nil
}

// ReadRegister reads one register by component and address.
func (m *IMUManager) ReadRegister(c lsm9ds1.Component, addr uint8) (uint8, error) {
	reg, ok := lsm9ds1.LookupRegister(c, addr)
	if !ok {
		return 0, fmt.Errorf("no %s register at 0x%02X", c, addr)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.iface == nil {
		return 0, ErrNotInitialized
	}
	v, err := m.iface.Read(reg)
	return v, countError("read", err)
}

// WriteRegister writes one register by component and address. Only registers
// marked writable are accepted. The write bypasses the device configuration,
// which no longer describes the hardware until the next Reinitialize.
func (m *IMUManager) WriteRegister(c lsm9ds1.Component, addr, value uint8) error {
	reg, ok := lsm9ds1.LookupRegister(c, addr)
	if !ok {
		return fmt.Errorf("no %s register at 0x%02X", c, addr)
	}
	if !reg.Writable() {
		return fmt.Errorf("register %s is read-only", reg)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.iface == nil {
		return ErrNotInitialized
	}
	if err := countError("write", m.iface.Write(reg, value)); err != nil {
		return err
	}
	log.Debugf("%s IMU: raw write %s = 0x%02X", m.name, reg, value)
	return nil
}

// ReadAllRegisters reads every known register of component c, keyed by
// address.
func (m *IMUManager) ReadAllRegisters(c lsm9ds1.Component) (map[uint8]uint8, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.iface == nil {
		return nil, ErrNotInitialized
	}
	values := make(map[uint8]uint8)
	for _, reg := range lsm9ds1.Registers() {
		rc, addr := reg.Addr()
		if rc != c {
			continue
		}
		v, err := m.iface.Read(reg)
		if err != nil {
			return nil, countError("read", err)
		}
		values[addr] = v
	}
	return values, nil
}

// RegisterMap returns the register metadata of component c.
func (m *IMUManager) RegisterMap(c lsm9ds1.Component) []RegisterInfo {
	return LSM9DS1RegisterMap(c)
}

// Close releases the bus.
func (m *IMUManager) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.dev = nil
	m.iface = nil
	if m.closer == nil {
		return nil
	}
	err := m.closer.Close()
	m.closer = nil
	return err
}
