package app

import (
	"encoding/json"
	"net/http"
	"sync"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	log "github.com/sirupsen/logrus"

	"github.com/relabs-tech/lsm9ds1/internal/imu"
)

// latestSample keeps the most recent sample received from the broker.
type latestSample struct {
	mu       sync.RWMutex
	sample   imu.Sample
	haveData bool
}

func (l *latestSample) set(s imu.Sample) {
	l.mu.Lock()
	l.sample = s
	l.haveData = true
	l.mu.Unlock()
}

func (l *latestSample) get() (imu.Sample, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.sample, l.haveData
}

// ServeHTTP answers with the latest sample as JSON, or 503 before the first
// one arrives.
func (l *latestSample) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s, ok := l.get()
	if !ok {
		http.Error(w, "no data yet", http.StatusServiceUnavailable)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(s); err != nil {
		log.Printf("json encode error: %v", err)
	}
}

// sampleHandler decodes sample payloads for fn. Malformed payloads are
// logged under prefix and dropped.
func sampleHandler(prefix string, fn func(imu.Sample)) mqtt.MessageHandler {
	return func(_ mqtt.Client, msg mqtt.Message) {
		var s imu.Sample
		if err := json.Unmarshal(msg.Payload(), &s); err != nil {
			log.Printf("%s: sample unmarshal error: %v", prefix, err)
			return
		}
		fn(s)
	}
}

// subscribeSamples subscribes fn to topic and waits for the broker to
// acknowledge.
func subscribeSamples(client mqtt.Client, topic, prefix string, fn func(imu.Sample)) error {
	token := client.Subscribe(topic, 0, sampleHandler(prefix, fn))
	token.Wait()
	if token.Error() != nil {
		return token.Error()
	}
	log.Printf("%s: subscribed to %s", prefix, topic)
	return nil
}
