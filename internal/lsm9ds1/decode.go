// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package lsm9ds1

import (
	"encoding/binary"
	"fmt"
	"math"
)

// Vector is a triaxial reading in physical units.
type Vector struct {
	X float32 `json:"x"`
	Y float32 `json:"y"`
	Z float32 `json:"z"`
}

func (v Vector) String() string {
	return fmt.Sprintf("X:%.4f Y:%.4f Z:%.4f", v.X, v.Y, v.Z)
}

// Temperature sensor constants (datasheet table 5).
const (
	temperatureBias  = 25.0
	temperatureScale = 16.0
)

func scaleFactor(bound float32) float32 {
	return bound / math.MaxInt16
}

// Decode converts six little-endian output bytes (X, Y, Z pairs, low byte
// first) into a vector scaled by scale.
func Decode(raw [6]byte, scale float32) Vector {
	return DecodeOrder(raw, binary.LittleEndian, scale)
}

// DecodeOrder is Decode for an explicit byte order within each pair.
func DecodeOrder(raw [6]byte, order binary.ByteOrder, scale float32) Vector {
	x := int16(order.Uint16(raw[0:2]))
	y := int16(order.Uint16(raw[2:4]))
	z := int16(order.Uint16(raw[4:6]))
	return Vector{
		X: float32(x) * scale,
		Y: float32(y) * scale,
		Z: float32(z) * scale,
	}
}

// DecodeTemperature converts OUT_TEMP_L/OUT_TEMP_H into degrees Celsius.
func DecodeTemperature(lo, hi byte) float32 {
	raw := int16(uint16(hi)<<8 | uint16(lo))
	return float32(raw)/temperatureScale + temperatureBias
}
