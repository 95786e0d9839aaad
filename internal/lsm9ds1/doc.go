// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

// Package lsm9ds1 controls an ST LSM9DS1 inertial module (3D accelerometer,
// 3D gyroscope, 3D magnetometer and temperature sensor) over I²C or SPI.
//
// The package is split in layers:
//
//   - a register table mapping every register to its component and address,
//   - pure encoders packing typed settings into control register bytes,
//   - a configuration model producing the fixed init plan,
//   - decoders turning output registers into physical units,
//   - Device, which writes the plan and keeps the model in sync with live
//     updates.
//
// # Datasheet
//
// https://www.st.com/resource/en/datasheet/lsm9ds1.pdf
package lsm9ds1
