package imu

import (
	"time"

	"github.com/relabs-tech/lsm9ds1/internal/lsm9ds1"
)

// Sample is one LSM9DS1 reading in physical units.
type Sample struct {
	Source string    `json:"source"`
	Time   time.Time `json:"time"`

	Accel lsm9ds1.Vector `json:"accel"` // g
	Gyro  lsm9ds1.Vector `json:"gyro"`  // °/s
	Mag   lsm9ds1.Vector `json:"mag"`   // gauss, zero while powered down

	Temperature float32 `json:"temp_c"`

	MagValid bool `json:"mag_valid"`
}

// SampleSource produces samples on demand.
type SampleSource interface {
	ReadIMU() (Sample, error)
}
