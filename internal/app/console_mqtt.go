package app

import (
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	log "github.com/sirupsen/logrus"

	"github.com/relabs-tech/lsm9ds1/internal/config"
	"github.com/relabs-tech/lsm9ds1/internal/imu"
)

// RunConsoleMQTT prints every sample published on the IMU topic.
func RunConsoleMQTT() error {
	cfg := config.Get()

	opts := mqtt.NewClientOptions().
		AddBroker(cfg.MQTTBroker).
		SetClientID(cfg.MQTTClientIDConsole)

	client := mqtt.NewClient(opts)
	if token := client.Connect(); token.Wait() && token.Error() != nil {
		return token.Error()
	}
	log.Printf("console: connected to MQTT broker at %s", cfg.MQTTBroker)

	err := subscribeSamples(client, cfg.TopicIMU, "console", func(s imu.Sample) {
		fmt.Printf("[IMU] %s\n", formatSample(s))
	})
	if err != nil {
		return err
	}

	// Wait for Ctrl+C
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	log.Println("console: shutting down")
	client.Disconnect(250)
	return nil
}

// formatSample renders one sample on a single line, in g, dps, gauss and
// degrees Celsius.
func formatSample(s imu.Sample) string {
	var b strings.Builder
	fmt.Fprintf(&b, "ax=%7.3f ay=%7.3f az=%7.3f  ", s.Accel.X, s.Accel.Y, s.Accel.Z)
	fmt.Fprintf(&b, "gx=%8.2f gy=%8.2f gz=%8.2f  ", s.Gyro.X, s.Gyro.Y, s.Gyro.Z)
	if s.MagValid {
		fmt.Fprintf(&b, "mx=%6.3f my=%6.3f mz=%6.3f  ", s.Mag.X, s.Mag.Y, s.Mag.Z)
	} else {
		b.WriteString("mag=n/a  ")
	}
	fmt.Fprintf(&b, "t=%5.1fC", s.Temperature)
	return b.String()
}
