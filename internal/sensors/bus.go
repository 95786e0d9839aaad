// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package sensors

import (
	"errors"
	"fmt"
	"io"

	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi/spireg"
	"periph.io/x/host/v3"

	"github.com/relabs-tech/lsm9ds1/internal/config"
	"github.com/relabs-tech/lsm9ds1/internal/lsm9ds1"
)

type closers []io.Closer

func (c closers) Close() error {
	var errs []error
	for _, cl := range c {
		if err := cl.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// openInterface opens the bus selected by cfg. The returned closer releases
// the underlying bus handles.
func openInterface(cfg *config.Config) (lsm9ds1.Interface, io.Closer, error) {
	if _, err := host.Init(); err != nil {
		return nil, nil, fmt.Errorf("periph host init: %w", err)
	}

	switch cfg.Bus {
	case config.BusSPI:
		agPort, err := spireg.Open(cfg.SPIDeviceAG)
		if err != nil {
			return nil, nil, fmt.Errorf("accel/gyro SPI open (%s): %w", cfg.SPIDeviceAG, err)
		}
		mPort, err := spireg.Open(cfg.SPIDeviceM)
		if err != nil {
			agPort.Close()
			return nil, nil, fmt.Errorf("magnetometer SPI open (%s): %w", cfg.SPIDeviceM, err)
		}
		iface, err := lsm9ds1.NewSPI(agPort, mPort, physic.Frequency(cfg.SPISpeedHz)*physic.Hertz)
		if err != nil {
			agPort.Close()
			mPort.Close()
			return nil, nil, err
		}
		return iface, closers{agPort, mPort}, nil

	default:
		bus, err := i2creg.Open(cfg.I2CBus)
		if err != nil {
			return nil, nil, fmt.Errorf("I2C bus open (%q): %w", cfg.I2CBus, err)
		}
		iface := lsm9ds1.NewI2C(bus, lsm9ds1.I2CConfig{
			AccelGyro:    cfg.I2CAddrAG,
			Magnetometer: cfg.I2CAddrM,
		})
		return iface, bus, nil
	}
}
