package config

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"sync"

	"github.com/relabs-tech/lsm9ds1/internal/lsm9ds1"
)

// DefaultPath is the configuration file looked up when no path is given.
const DefaultPath = "lsm9ds1_config.txt"

// Bus types accepted by BUS.
const (
	BusI2C = "i2c"
	BusSPI = "spi"
)

// Config holds all application configuration values.
type Config struct {
	// Bus
	Bus         string // "i2c" or "spi"
	I2CBus      string // periph bus name, empty for the first one
	I2CAddrAG   lsm9ds1.AddressAG
	I2CAddrM    lsm9ds1.AddressM
	SPIDeviceAG string
	SPIDeviceM  string
	SPISpeedHz  int64

	// MQTT
	MQTTBroker           string
	MQTTClientIDProducer string
	MQTTClientIDConsole  string
	MQTTClientIDWeb      string
	MQTTClientIDDisplay  string

	// Topics
	TopicIMU string

	// Sensor
	AccelEnabled    bool
	GyroEnabled     bool
	MagEnabled      bool
	AccelGyroRate   lsm9ds1.AccelGyroSamplingRate
	AccelRate       lsm9ds1.AccelSamplingRate
	MagRate         lsm9ds1.MagSamplingRate
	AccelRange      lsm9ds1.AccelFullScale
	GyroRange       lsm9ds1.GyroFullScale
	MagRange        lsm9ds1.MagFullScale
	MagPerformance  lsm9ds1.PerformanceMode
	BlockDataUpdate bool

	// Timing
	IMUSampleInterval  int // milliseconds
	ConsoleLogInterval int // milliseconds

	// Web Server
	WebServerPort int

	// Register debug tool
	RegisterDebugPort        int
	RegisterDebugAllowWrites bool

	// Display
	DisplayI2CBus         string
	DisplayUpdateInterval int    // milliseconds
	DisplayContent        string // "accel", "gyro", "mag" or "all"
}

// Display content selectors.
const (
	DisplayAccel = "accel"
	DisplayGyro  = "gyro"
	DisplayMag   = "mag"
	DisplayAll   = "all"
)

var (
	globalConfig *Config
	configOnce   sync.Once
	configMu     sync.RWMutex
)

// Default returns the configuration used for keys missing from the file.
func Default() *Config {
	return &Config{
		Bus:                   BusI2C,
		I2CAddrAG:             lsm9ds1.DefaultI2CConfig.AccelGyro,
		I2CAddrM:              lsm9ds1.DefaultI2CConfig.Magnetometer,
		SPISpeedHz:            1000000,
		MQTTClientIDProducer:  "lsm9ds1-producer",
		MQTTClientIDConsole:   "lsm9ds1-console",
		MQTTClientIDWeb:       "lsm9ds1-web",
		MQTTClientIDDisplay:   "lsm9ds1-display",
		TopicIMU:              "lsm9ds1/imu",
		AccelEnabled:          true,
		GyroEnabled:           true,
		MagEnabled:            true,
		AccelGyroRate:         lsm9ds1.AccelGyro119Hz,
		AccelRate:             lsm9ds1.Accel119Hz,
		MagRate:               lsm9ds1.Mag10Hz,
		AccelRange:            lsm9ds1.Accel2G,
		GyroRange:             lsm9ds1.Gyro245DPS,
		MagRange:              lsm9ds1.Mag4Gauss,
		MagPerformance:        lsm9ds1.MediumPerformance,
		IMUSampleInterval:     50,
		ConsoleLogInterval:    500,
		WebServerPort:         8080,
		RegisterDebugPort:     8081,
		DisplayUpdateInterval: 250,
		DisplayContent:        DisplayAll,
	}
}

// Load reads the configuration file and returns a Config struct.
func Load(configPath string) (*Config, error) {
	file, err := os.Open(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open config file: %w", err)
	}
	defer file.Close()
	return Parse(file)
}

// Parse reads KEY=VALUE lines on top of Default.
func Parse(r io.Reader) (*Config, error) {
	cfg := Default()
	scanner := bufio.NewScanner(r)
	lineNum := 0

	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())

		// Skip empty lines and comments
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		parts := strings.SplitN(line, "=", 2)
		if len(parts) != 2 {
			return nil, fmt.Errorf("invalid config line %d: %q", lineNum, line)
		}

		key := strings.TrimSpace(parts[0])
		value := strings.TrimSpace(parts[1])

		if err := cfg.setValue(key, value); err != nil {
			return nil, fmt.Errorf("config line %d: %w", lineNum, err)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) setValue(key, value string) error {
	switch key {
	// Bus
	case "BUS":
		v := strings.ToLower(value)
		if v != BusI2C && v != BusSPI {
			return fmt.Errorf("BUS must be %q or %q, got %q", BusI2C, BusSPI, value)
		}
		c.Bus = v
	case "I2C_BUS":
		c.I2CBus = value
	case "I2C_ADDR_AG":
		addr, err := strconv.ParseUint(value, 0, 16)
		if err != nil {
			return fmt.Errorf("invalid I2C_ADDR_AG %q: %w", value, err)
		}
		switch a := lsm9ds1.AddressAG(addr); a {
		case lsm9ds1.AddressAG6A, lsm9ds1.AddressAG6B:
			c.I2CAddrAG = a
		default:
			return fmt.Errorf("I2C_ADDR_AG must be 0x6a or 0x6b, got %#x", addr)
		}
	case "I2C_ADDR_M":
		addr, err := strconv.ParseUint(value, 0, 16)
		if err != nil {
			return fmt.Errorf("invalid I2C_ADDR_M %q: %w", value, err)
		}
		switch a := lsm9ds1.AddressM(addr); a {
		case lsm9ds1.AddressM1C, lsm9ds1.AddressM1E:
			c.I2CAddrM = a
		default:
			return fmt.Errorf("I2C_ADDR_M must be 0x1c or 0x1e, got %#x", addr)
		}
	case "SPI_DEVICE_AG":
		c.SPIDeviceAG = value
	case "SPI_DEVICE_M":
		c.SPIDeviceM = value
	case "SPI_SPEED_HZ":
		speed, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid SPI_SPEED_HZ %q: %w", value, err)
		}
		if speed <= 0 || speed > 10000000 {
			return fmt.Errorf("SPI_SPEED_HZ must be 1-10000000, got %d", speed)
		}
		c.SPISpeedHz = speed

	// MQTT
	case "MQTT_BROKER":
		c.MQTTBroker = value
	case "MQTT_CLIENT_ID_PRODUCER":
		c.MQTTClientIDProducer = value
	case "MQTT_CLIENT_ID_CONSOLE":
		c.MQTTClientIDConsole = value
	case "MQTT_CLIENT_ID_WEB":
		c.MQTTClientIDWeb = value
	case "MQTT_CLIENT_ID_DISPLAY":
		c.MQTTClientIDDisplay = value

	// Topics
	case "TOPIC_IMU":
		c.TopicIMU = value

	// Sensor
	case "ACCEL_ENABLED":
		return parseBool(key, value, &c.AccelEnabled)
	case "GYRO_ENABLED":
		return parseBool(key, value, &c.GyroEnabled)
	case "MAG_ENABLED":
		return parseBool(key, value, &c.MagEnabled)
	case "BLOCK_DATA_UPDATE":
		return parseBool(key, value, &c.BlockDataUpdate)
	case "ACCEL_GYRO_RATE":
		rate, err := ParseAccelGyroRate(value)
		if err != nil {
			return err
		}
		c.AccelGyroRate = rate
	case "ACCEL_RATE":
		rate, err := ParseAccelRate(value)
		if err != nil {
			return err
		}
		c.AccelRate = rate
	case "MAG_RATE":
		rate, err := ParseMagRate(value)
		if err != nil {
			return err
		}
		c.MagRate = rate
	case "ACCEL_RANGE":
		fs, err := ParseAccelRange(value)
		if err != nil {
			return err
		}
		c.AccelRange = fs
	case "GYRO_RANGE":
		fs, err := ParseGyroRange(value)
		if err != nil {
			return err
		}
		c.GyroRange = fs
	case "MAG_RANGE":
		fs, err := ParseMagRange(value)
		if err != nil {
			return err
		}
		c.MagRange = fs
	case "MAG_PERFORMANCE":
		mode, err := ParsePerformance(value)
		if err != nil {
			return err
		}
		c.MagPerformance = mode

	// Timing
	case "IMU_SAMPLE_INTERVAL":
		interval, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid IMU_SAMPLE_INTERVAL %q: %w", value, err)
		}
		c.IMUSampleInterval = interval
	case "CONSOLE_LOG_INTERVAL":
		interval, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid CONSOLE_LOG_INTERVAL %q: %w", value, err)
		}
		c.ConsoleLogInterval = interval

	// Web Server
	case "WEB_SERVER_PORT":
		port, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid WEB_SERVER_PORT %q: %w", value, err)
		}
		c.WebServerPort = port

	// Register debug tool
	case "REGISTER_DEBUG_PORT":
		port, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid REGISTER_DEBUG_PORT %q: %w", value, err)
		}
		c.RegisterDebugPort = port
	case "REGISTER_DEBUG_ALLOW_WRITES":
		return parseBool(key, value, &c.RegisterDebugAllowWrites)

	// Display
	case "DISPLAY_I2C_BUS":
		c.DisplayI2CBus = value
	case "DISPLAY_UPDATE_INTERVAL":
		interval, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid DISPLAY_UPDATE_INTERVAL %q: %w", value, err)
		}
		c.DisplayUpdateInterval = interval
	case "DISPLAY_CONTENT":
		switch value {
		case DisplayAccel, DisplayGyro, DisplayMag, DisplayAll:
			c.DisplayContent = value
		default:
			return fmt.Errorf("DISPLAY_CONTENT must be accel, gyro, mag or all, got %q", value)
		}

	default:
		return fmt.Errorf("unknown config key: %q", key)
	}

	return nil
}

func parseBool(key, value string, dst *bool) error {
	b, err := strconv.ParseBool(value)
	if err != nil {
		return fmt.Errorf("invalid %s %q: %w", key, value, err)
	}
	*dst = b
	return nil
}

// RequireMQTT reports an error when no broker is configured. Only the
// tools that publish or subscribe need one.
func (c *Config) RequireMQTT() error {
	if c.MQTTBroker == "" {
		return fmt.Errorf("MQTT_BROKER is required")
	}
	return nil
}

func (c *Config) validate() error {
	if c.Bus == BusSPI && (c.SPIDeviceAG == "" || c.SPIDeviceM == "") {
		return fmt.Errorf("SPI_DEVICE_AG and SPI_DEVICE_M are required when BUS=spi")
	}
	if c.IMUSampleInterval <= 0 {
		return fmt.Errorf("IMU_SAMPLE_INTERVAL must be positive")
	}
	if c.ConsoleLogInterval <= 0 {
		return fmt.Errorf("CONSOLE_LOG_INTERVAL must be positive")
	}
	if c.DisplayUpdateInterval <= 0 {
		return fmt.Errorf("DISPLAY_UPDATE_INTERVAL must be positive")
	}
	return nil
}

// DeviceConfig builds the sensor configuration described by the file.
func (c *Config) DeviceConfig() lsm9ds1.DeviceConfig {
	return lsm9ds1.NewBuilder().
		WithAccelerometerEnabled(c.AccelEnabled).
		WithGyroscopeEnabled(c.GyroEnabled).
		WithMagnetometerEnabled(c.MagEnabled).
		WithAccelGyroSamplingRate(c.AccelGyroRate).
		WithAccelSamplingRate(c.AccelRate).
		WithMagnetometerSamplingRate(c.MagRate).
		WithAccelerometerScale(c.AccelRange).
		WithGyroscopeScale(c.GyroRange).
		WithMagnetometerScale(c.MagRange).
		WithMagnetometerPerformance(c.MagPerformance).
		WithBlockDataUpdate(c.BlockDataUpdate).
		Config()
}

// InitGlobal initializes the global configuration from file.
// Only the first call loads the file.
func InitGlobal(configPath string) error {
	var err error
	configOnce.Do(func() {
		configMu.Lock()
		defer configMu.Unlock()
		globalConfig, err = Load(configPath)
	})
	return err
}

// Get returns the global configuration instance, or nil before InitGlobal.
func Get() *Config {
	configMu.RLock()
	defer configMu.RUnlock()
	return globalConfig
}
