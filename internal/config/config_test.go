package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/relabs-tech/lsm9ds1/internal/lsm9ds1"
)

const sample = `
# LSM9DS1 test configuration
MQTT_BROKER=tcp://localhost:1883
BUS=spi
SPI_DEVICE_AG=/dev/spidev0.0
SPI_DEVICE_M=/dev/spidev0.1
SPI_SPEED_HZ=2000000
ACCEL_GYRO_RATE=238Hz
ACCEL_RATE=50
MAG_RATE=0.625Hz
ACCEL_RANGE=16
GYRO_RANGE=2000dps
MAG_RANGE=±12gauss
MAG_PERFORMANCE=ultra
GYRO_ENABLED=false
REGISTER_DEBUG_ALLOW_WRITES=true
DISPLAY_CONTENT=gyro
`

func TestParse(t *testing.T) {
	cfg, err := Parse(strings.NewReader(sample))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Bus != BusSPI || cfg.SPIDeviceAG != "/dev/spidev0.0" || cfg.SPISpeedHz != 2000000 {
		t.Errorf("bus settings: %+v", cfg)
	}
	if cfg.AccelGyroRate != lsm9ds1.AccelGyro238Hz {
		t.Errorf("AccelGyroRate = %v", cfg.AccelGyroRate)
	}
	if cfg.AccelRate != lsm9ds1.Accel50Hz {
		t.Errorf("AccelRate = %v", cfg.AccelRate)
	}
	if cfg.MagRate != lsm9ds1.Mag0p625Hz {
		t.Errorf("MagRate = %v", cfg.MagRate)
	}
	if cfg.AccelRange != lsm9ds1.Accel16G || cfg.GyroRange != lsm9ds1.Gyro2000DPS || cfg.MagRange != lsm9ds1.Mag12Gauss {
		t.Errorf("ranges %v %v %v", cfg.AccelRange, cfg.GyroRange, cfg.MagRange)
	}
	if cfg.MagPerformance != lsm9ds1.UltraHighPerformance {
		t.Errorf("MagPerformance = %v", cfg.MagPerformance)
	}
	if cfg.GyroEnabled || !cfg.AccelEnabled {
		t.Errorf("enables accel=%v gyro=%v", cfg.AccelEnabled, cfg.GyroEnabled)
	}
	if !cfg.RegisterDebugAllowWrites || cfg.DisplayContent != DisplayGyro {
		t.Errorf("tool settings %+v", cfg)
	}
	// untouched keys keep their defaults
	if cfg.TopicIMU != Default().TopicIMU || cfg.I2CAddrAG != lsm9ds1.AddressAG6B {
		t.Errorf("defaults lost: topic=%q ag=%#x", cfg.TopicIMU, cfg.I2CAddrAG)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"no equals", "MQTT_BROKER=x\nBUS\n", "invalid config line 2"},
		{"unknown key", "MQTT_BROKER=x\nFOO=1\n", `unknown config key: "FOO"`},
		{"bad bus", "MQTT_BROKER=x\nBUS=uart\n", "BUS must be"},
		{"bad ag address", "MQTT_BROKER=x\nI2C_ADDR_AG=0x1e\n", "I2C_ADDR_AG must be"},
		{"bad rate", "MQTT_BROKER=x\nACCEL_GYRO_RATE=100Hz\n", "invalid ACCEL_GYRO_RATE"},
		{"bad range", "MQTT_BROKER=x\nGYRO_RANGE=1000\n", "invalid GYRO_RANGE"},
		{"bad bool", "MQTT_BROKER=x\nMAG_ENABLED=maybe\n", "invalid MAG_ENABLED"},
		{"spi without devices", "MQTT_BROKER=x\nBUS=spi\n", "SPI_DEVICE_AG and SPI_DEVICE_M are required"},
		{"bad performance", "MQTT_BROKER=x\nMAG_PERFORMANCE=max\n", "invalid MAG_PERFORMANCE"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(strings.NewReader(tt.input))
			if err == nil {
				t.Fatal("expected an error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error %q does not mention %q", err, tt.want)
			}
		})
	}
}

func TestBrokerOnlyRequiredForMQTT(t *testing.T) {
	cfg, err := Parse(strings.NewReader("ACCEL_RANGE=8\n"))
	if err != nil {
		t.Fatalf("config without broker rejected: %v", err)
	}
	if err := cfg.RequireMQTT(); err == nil || !strings.Contains(err.Error(), "MQTT_BROKER is required") {
		t.Errorf("RequireMQTT = %v", err)
	}

	cfg, err = Parse(strings.NewReader("MQTT_BROKER=tcp://broker:1883\n"))
	if err != nil {
		t.Fatal(err)
	}
	if err := cfg.RequireMQTT(); err != nil {
		t.Errorf("RequireMQTT with broker = %v", err)
	}
}

func TestParseRates(t *testing.T) {
	tests := []struct {
		value string
		want  lsm9ds1.AccelGyroSamplingRate
	}{
		{"power-down", lsm9ds1.AccelGyroPowerDown},
		{"off", lsm9ds1.AccelGyroPowerDown},
		{"0", lsm9ds1.AccelGyroPowerDown},
		{"14.9", lsm9ds1.AccelGyro14p9Hz},
		{"59.5Hz", lsm9ds1.AccelGyro59p5Hz},
		{"952HZ", lsm9ds1.AccelGyro952Hz},
	}
	for _, tt := range tests {
		got, err := ParseAccelGyroRate(tt.value)
		if err != nil || got != tt.want {
			t.Errorf("ParseAccelGyroRate(%q) = %v, %v; want %v", tt.value, got, err, tt.want)
		}
	}
}

func TestDeviceConfig(t *testing.T) {
	cfg, err := Parse(strings.NewReader("MQTT_BROKER=x\nMAG_ENABLED=false\nACCEL_RANGE=8\n"))
	if err != nil {
		t.Fatal(err)
	}
	dc := cfg.DeviceConfig()
	if dc.Magnetometer.Enabled() {
		t.Error("magnetometer enabled")
	}
	if dc.AccelGyro.AccelFullScale != lsm9ds1.Accel8G {
		t.Errorf("accel range %v", dc.AccelGyro.AccelFullScale)
	}
	if dc.AccelGyro.AccelGyroSamplingRate != lsm9ds1.AccelGyro119Hz {
		t.Errorf("default rate %v", dc.AccelGyro.AccelGyroSamplingRate)
	}
	if dc.Magnetometer.XYPerformanceMode != lsm9ds1.MediumPerformance {
		t.Errorf("performance %v", dc.Magnetometer.XYPerformanceMode)
	}
}

func TestLoadAndGlobal(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultPath)
	if err := os.WriteFile(path, []byte("MQTT_BROKER=tcp://broker:1883\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(filepath.Join(t.TempDir(), "missing.txt")); err == nil {
		t.Error("loading a missing file should fail")
	}
	if err := InitGlobal(path); err != nil {
		t.Fatal(err)
	}
	if got := Get(); got == nil || got.MQTTBroker != "tcp://broker:1883" {
		t.Errorf("Get() = %+v", got)
	}
}
