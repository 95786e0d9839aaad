package app

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	log "github.com/sirupsen/logrus"

	"github.com/relabs-tech/lsm9ds1/internal/config"
	"github.com/relabs-tech/lsm9ds1/internal/imu"
	"github.com/relabs-tech/lsm9ds1/internal/sensors"
)

// RunIMUProducer samples the sensor and publishes every reading as JSON on
// the configured IMU topic until SIGINT or SIGTERM.
func RunIMUProducer(useMock bool) error {
	log.Println("starting lsm9ds1 producer")

	cfg := config.Get()

	var src imu.SampleSource
	if useMock {
		log.Println("using mock sample source")
		src = imu.NewMockSource()
	} else {
		mgr := sensors.GetIMUManager()
		if err := mgr.Init(); err != nil {
			return fmt.Errorf("failed to initialize IMU: %w", err)
		}
		defer mgr.Close()
		src = mgr
	}

	opts := mqtt.NewClientOptions().
		AddBroker(cfg.MQTTBroker).
		SetClientID(cfg.MQTTClientIDProducer)

	client := mqtt.NewClient(opts)
	if token := client.Connect(); token.Wait() && token.Error() != nil {
		return fmt.Errorf("MQTT connect error: %w", token.Error())
	}
	defer client.Disconnect(250)

	log.Printf("connected to MQTT at %s, publishing on %s", cfg.MQTTBroker, cfg.TopicIMU)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	publish := func(payload []byte) error {
		token := client.Publish(cfg.TopicIMU, 0, true, payload)
		token.Wait()
		return token.Error()
	}
	produce(ctx, src, time.Duration(cfg.IMUSampleInterval)*time.Millisecond,
		time.Duration(cfg.ConsoleLogInterval)*time.Millisecond, publish)

	log.Println("producer: shutting down")
	return nil
}

// produce reads src every interval and hands the JSON encoded sample to
// publish. Read and publish errors are logged and the loop goes on. A
// summary line is logged at most once per logEvery.
func produce(ctx context.Context, src imu.SampleSource, interval, logEvery time.Duration, publish func([]byte) error) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	var lastLog time.Time
	for {
		select {
		case <-ctx.Done():
			return
		case t := <-ticker.C:
			if ctx.Err() != nil {
				return
			}
			s, err := src.ReadIMU()
			if err != nil {
				log.Printf("error reading IMU: %v", err)
				continue
			}
			payload, err := json.Marshal(s)
			if err != nil {
				log.Printf("json marshal error: %v", err)
				continue
			}
			if err := publish(payload); err != nil {
				log.Printf("MQTT publish error: %v", err)
				continue
			}
			if t.Sub(lastLog) >= logEvery {
				lastLog = t
				log.Printf("%s tick: %s", t.Format(time.RFC3339), formatSample(s))
			}
		}
	}
}
