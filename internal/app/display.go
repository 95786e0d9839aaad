package app

import (
	"fmt"
	"image"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	log "github.com/sirupsen/logrus"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/devices/v3/ssd1306"
	"periph.io/x/devices/v3/ssd1306/image1bit"
	"periph.io/x/host/v3"

	"github.com/relabs-tech/lsm9ds1/internal/config"
	"github.com/relabs-tech/lsm9ds1/internal/imu"
	"github.com/relabs-tech/lsm9ds1/internal/lsm9ds1"
)

// RunDisplay shows the latest published sample on an SSD1306 OLED.
func RunDisplay() error {
	cfg := config.Get()

	if _, err := host.Init(); err != nil {
		return fmt.Errorf("failed to initialize periph: %w", err)
	}

	bus, err := i2creg.Open(cfg.DisplayI2CBus)
	if err != nil {
		return fmt.Errorf("failed to open I2C bus: %w", err)
	}
	defer bus.Close()

	dev, err := ssd1306.NewI2C(bus, &ssd1306.DefaultOpts)
	if err != nil {
		return fmt.Errorf("failed to initialize display: %w", err)
	}
	log.Printf("display: initialized on %s", bus)

	if err := draw(dev, []string{"", "LSM9DS1", "Waiting..."}); err != nil {
		log.Printf("display: error showing splash: %v", err)
	}

	data := &latestSample{}

	opts := mqtt.NewClientOptions().
		AddBroker(cfg.MQTTBroker).
		SetClientID(cfg.MQTTClientIDDisplay)

	client := mqtt.NewClient(opts)
	if token := client.Connect(); token.Wait() && token.Error() != nil {
		return token.Error()
	}
	defer client.Disconnect(250)
	log.Printf("display: connected to MQTT broker at %s", cfg.MQTTBroker)

	if err := subscribeSamples(client, cfg.TopicIMU, "display", data.set); err != nil {
		return err
	}

	ticker := time.NewTicker(time.Duration(cfg.DisplayUpdateInterval) * time.Millisecond)
	defer ticker.Stop()

	log.Println("display: starting update loop")

	for range ticker.C {
		s, have := data.get()
		if err := draw(dev, displayLines(s, have, cfg.DisplayContent)); err != nil {
			log.Printf("display: error updating display: %v", err)
		}
	}
	return nil
}

// displayLines formats up to four lines of 7x13 text for a 128x64 panel.
func displayLines(s imu.Sample, have bool, content string) []string {
	if !have {
		return []string{"", "IMU " + content, "Waiting..."}
	}
	switch content {
	case config.DisplayAccel:
		return vectorLines("Accel g", s.Accel)
	case config.DisplayGyro:
		return vectorLines("Gyro dps", s.Gyro)
	case config.DisplayMag:
		if !s.MagValid {
			return []string{"Mag gauss", "", "no data"}
		}
		return vectorLines("Mag gauss", s.Mag)
	default:
		mag := "M: --"
		if s.MagValid {
			mag = fmt.Sprintf("M:%5.2f%6.2f%6.2f", s.Mag.X, s.Mag.Y, s.Mag.Z)
		}
		return []string{
			fmt.Sprintf("A:%5.2f%6.2f%6.2f", s.Accel.X, s.Accel.Y, s.Accel.Z),
			fmt.Sprintf("G:%5.0f%6.0f%6.0f", s.Gyro.X, s.Gyro.Y, s.Gyro.Z),
			mag,
			fmt.Sprintf("T: %.1fC", s.Temperature),
		}
	}
}

func vectorLines(title string, v lsm9ds1.Vector) []string {
	return []string{
		title,
		fmt.Sprintf("X: %8.2f", v.X),
		fmt.Sprintf("Y: %8.2f", v.Y),
		fmt.Sprintf("Z: %8.2f", v.Z),
	}
}

// render draws lines on a fresh 128x64 image, one line every 13 pixels.
func render(lines []string) *image1bit.VerticalLSB {
	img := image1bit.NewVerticalLSB(image.Rect(0, 0, 128, 64))
	drawer := &font.Drawer{
		Dst:  img,
		Src:  &image.Uniform{image1bit.On},
		Face: basicfont.Face7x13,
	}
	for i, line := range lines {
		if i >= 4 {
			break
		}
		drawer.Dot = fixed.P(0, 13*(i+1))
		drawer.DrawString(line)
	}
	return img
}

func draw(dev *ssd1306.Dev, lines []string) error {
	return dev.Draw(dev.Bounds(), render(lines), image.Point{})
}
