package app

import (
	"fmt"
	"net/http"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"

	"github.com/relabs-tech/lsm9ds1/internal/config"
)

// RunWeb subscribes to the IMU topic and serves the latest sample over HTTP.
func RunWeb() error {
	cfg := config.Get()
	latest := &latestSample{}

	opts := mqtt.NewClientOptions().
		AddBroker(cfg.MQTTBroker).
		SetClientID(cfg.MQTTClientIDWeb)

	client := mqtt.NewClient(opts)
	if token := client.Connect(); token.Wait() && token.Error() != nil {
		return token.Error()
	}
	defer client.Disconnect(250)
	log.Printf("connected to MQTT broker at %s", cfg.MQTTBroker)

	if err := subscribeSamples(client, cfg.TopicIMU, "web", latest.set); err != nil {
		return err
	}

	addr := fmt.Sprintf(":%d", cfg.WebServerPort)
	log.Printf("web server listening on %s", addr)
	return http.ListenAndServe(addr, newWebMux(latest, "web"))
}

// newWebMux serves the latest sample at /api/imu, process metrics at
// /metrics and static files from staticDir at the root.
func newWebMux(latest http.Handler, staticDir string) *http.ServeMux {
	mux := http.NewServeMux()
	mux.Handle("/api/imu", latest)
	mux.Handle("/metrics", promhttp.Handler())
	mux.Handle("/", http.FileServer(http.Dir(staticDir)))
	return mux
}
