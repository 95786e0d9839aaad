// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package app

import (
	"fmt"
	"time"

	"github.com/relabs-tech/lsm9ds1/internal/imu"
)

// RunMockConsole prints synthetic samples without a broker or a sensor.
func RunMockConsole() error {
	src := imu.NewMockSource()
	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()

	for range ticker.C {
		s, err := src.ReadIMU()
		if err != nil {
			return err
		}
		fmt.Printf("[MOCK] %s\n", formatSample(s))
	}
	return nil
}
