package config

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/relabs-tech/lsm9ds1/internal/lsm9ds1"
)

// Sensor settings are written the way the driver prints them ("119Hz",
// "power-down") or as bare numbers ("119", "0").

func normalize(value string) string {
	v := strings.ToLower(strings.TrimSpace(value))
	v = strings.TrimSuffix(v, "hz")
	switch v {
	case "0", "off", "power-down", "powerdown":
		return "0"
	}
	return v
}

func rateIndex(key, value string, names []string) (int, error) {
	want := normalize(value)
	for i, name := range names {
		if normalize(name) == want {
			return i, nil
		}
	}
	return 0, fmt.Errorf("invalid %s %q, expected one of %s", key, value, strings.Join(names, ", "))
}

func rateNames[T fmt.Stringer](values []T) []string {
	names := make([]string, len(values))
	for i, v := range values {
		names[i] = v.String()
	}
	return names
}

var (
	accelGyroRates = []lsm9ds1.AccelGyroSamplingRate{
		lsm9ds1.AccelGyroPowerDown, lsm9ds1.AccelGyro14p9Hz, lsm9ds1.AccelGyro59p5Hz,
		lsm9ds1.AccelGyro119Hz, lsm9ds1.AccelGyro238Hz, lsm9ds1.AccelGyro476Hz,
		lsm9ds1.AccelGyro952Hz,
	}
	accelRates = []lsm9ds1.AccelSamplingRate{
		lsm9ds1.AccelPowerDown, lsm9ds1.Accel10Hz, lsm9ds1.Accel50Hz,
		lsm9ds1.Accel119Hz, lsm9ds1.Accel238Hz, lsm9ds1.Accel476Hz,
		lsm9ds1.Accel952Hz,
	}
	magRates = []lsm9ds1.MagSamplingRate{
		lsm9ds1.Mag0p625Hz, lsm9ds1.Mag1p25Hz, lsm9ds1.Mag2p5Hz, lsm9ds1.Mag5Hz,
		lsm9ds1.Mag10Hz, lsm9ds1.Mag20Hz, lsm9ds1.Mag40Hz, lsm9ds1.Mag80Hz,
	}
	accelRanges = []lsm9ds1.AccelFullScale{lsm9ds1.Accel2G, lsm9ds1.Accel4G, lsm9ds1.Accel8G, lsm9ds1.Accel16G}
	gyroRanges  = []lsm9ds1.GyroFullScale{lsm9ds1.Gyro245DPS, lsm9ds1.Gyro500DPS, lsm9ds1.Gyro2000DPS}
	magRanges   = []lsm9ds1.MagFullScale{lsm9ds1.Mag4Gauss, lsm9ds1.Mag8Gauss, lsm9ds1.Mag12Gauss, lsm9ds1.Mag16Gauss}
	performance = []lsm9ds1.PerformanceMode{
		lsm9ds1.LowPower, lsm9ds1.MediumPerformance, lsm9ds1.HighPerformance, lsm9ds1.UltraHighPerformance,
	}
)

// ParseAccelGyroRate parses ACCEL_GYRO_RATE, e.g. "119Hz".
func ParseAccelGyroRate(value string) (lsm9ds1.AccelGyroSamplingRate, error) {
	i, err := rateIndex("ACCEL_GYRO_RATE", value, rateNames(accelGyroRates))
	return accelGyroRates[i], err
}

// ParseAccelRate parses ACCEL_RATE, e.g. "50Hz".
func ParseAccelRate(value string) (lsm9ds1.AccelSamplingRate, error) {
	i, err := rateIndex("ACCEL_RATE", value, rateNames(accelRates))
	return accelRates[i], err
}

// ParseMagRate parses MAG_RATE, e.g. "0.625Hz".
func ParseMagRate(value string) (lsm9ds1.MagSamplingRate, error) {
	i, err := rateIndex("MAG_RATE", value, rateNames(magRates))
	return magRates[i], err
}

type bounded interface {
	Bound() float32
}

func rangeIndex[T bounded](key, value string, values []T) (int, error) {
	v := strings.ToLower(strings.TrimSpace(value))
	v = strings.TrimLeft(v, "±+")
	v = strings.TrimRight(v, "abcdefghijklmnopqrstuvwxyz/°")
	n, err := strconv.ParseFloat(v, 32)
	if err == nil {
		for i, fs := range values {
			if fs.Bound() == float32(n) {
				return i, nil
			}
		}
	}
	bounds := make([]string, len(values))
	for i, fs := range values {
		bounds[i] = strconv.FormatFloat(float64(fs.Bound()), 'g', -1, 32)
	}
	return 0, fmt.Errorf("invalid %s %q, expected one of %s", key, value, strings.Join(bounds, ", "))
}

// ParseAccelRange parses ACCEL_RANGE in g (2, 4, 8, 16).
func ParseAccelRange(value string) (lsm9ds1.AccelFullScale, error) {
	i, err := rangeIndex("ACCEL_RANGE", value, accelRanges)
	return accelRanges[i], err
}

// ParseGyroRange parses GYRO_RANGE in degrees per second (245, 500, 2000).
func ParseGyroRange(value string) (lsm9ds1.GyroFullScale, error) {
	i, err := rangeIndex("GYRO_RANGE", value, gyroRanges)
	return gyroRanges[i], err
}

// ParseMagRange parses MAG_RANGE in Gauss (4, 8, 12, 16).
func ParseMagRange(value string) (lsm9ds1.MagFullScale, error) {
	i, err := rangeIndex("MAG_RANGE", value, magRanges)
	return magRanges[i], err
}

// ParsePerformance parses MAG_PERFORMANCE (low, medium, high, ultra-high).
func ParsePerformance(value string) (lsm9ds1.PerformanceMode, error) {
	v := strings.ToLower(strings.TrimSpace(value))
	if v == "ultra" {
		v = "ultra-high"
	}
	for _, m := range performance {
		if m.String() == v {
			return m, nil
		}
	}
	return 0, fmt.Errorf("invalid MAG_PERFORMANCE %q, expected low, medium, high or ultra-high", value)
}
