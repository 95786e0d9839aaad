// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package app

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"

	"github.com/relabs-tech/lsm9ds1/internal/config"
	"github.com/relabs-tech/lsm9ds1/internal/lsm9ds1"
	"github.com/relabs-tech/lsm9ds1/internal/sensors"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// RegisterDebugServer exposes raw register access to a browser over a
// WebSocket.
type RegisterDebugServer struct {
	mgr         *sensors.IMUManager
	allowWrites bool
}

// NewRegisterDebugServer serves mgr. Raw register writes are refused unless
// allowWrites is set.
func NewRegisterDebugServer(mgr *sensors.IMUManager, allowWrites bool) *RegisterDebugServer {
	return &RegisterDebugServer{mgr: mgr, allowWrites: allowWrites}
}

// RegisterDebugSession holds WebSocket connection state for register debugging
type RegisterDebugSession struct {
	Conn *websocket.Conn
	srv  *RegisterDebugServer
}

// RegisterResponse is every message sent to the client.
type RegisterResponse struct {
	Type        string                 `json:"type"` // "register_data", "register_map", "plan", "status", "error"
	Component   string                 `json:"component,omitempty"`
	Address     string                 `json:"addr,omitempty"`
	Value       string                 `json:"value,omitempty"`
	Registers   map[string]string      `json:"registers,omitempty"` // for bulk read
	Plan        []PlanEntry            `json:"plan,omitempty"`
	Timestamp   string                 `json:"timestamp,omitempty"`
	Message     string                 `json:"message,omitempty"`
	Status      string                 `json:"status,omitempty"`
	RegisterMap []sensors.RegisterInfo `json:"register_map,omitempty"`
}

// PlanEntry is one register write of the init plan.
type PlanEntry struct {
	Register  string `json:"register"`
	Component string `json:"component"`
	Address   string `json:"addr"`
	Value     string `json:"value"`
}

// RegisterConfigFile represents the JSON structure for exported register configuration
type RegisterConfigFile struct {
	Version   int               `json:"version"`
	Component string            `json:"component"`
	Timestamp string            `json:"timestamp"`
	Registers map[string]string `json:"registers"` // hex address -> hex value
}

// RunRegisterDebug serves the register debug tool until the listener fails.
func RunRegisterDebug() error {
	cfg := config.Get()
	log.Println("starting LSM9DS1 register debug tool")

	mgr := sensors.GetIMUManager()
	if err := mgr.Init(); err != nil {
		log.Warnf("IMU initialization failed: %v", err)
		log.Warn("continuing anyway, register access will fail until the sensor responds")
	}
	defer mgr.Close()

	srv := NewRegisterDebugServer(mgr, cfg.RegisterDebugAllowWrites)
	if !cfg.RegisterDebugAllowWrites {
		log.Println("raw register writes disabled (REGISTER_DEBUG_ALLOW_WRITES=false)")
	}

	addr := fmt.Sprintf(":%d", cfg.RegisterDebugPort)
	log.Printf("register debug tool listening on %s", addr)
	return http.ListenAndServe(addr, srv.Mux("web/register_debug.html"))
}

// Mux routes the WebSocket at /ws, live samples at /api/imu, metrics at
// /metrics and the page at the root.
func (d *RegisterDebugServer) Mux(page string) *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", d.HandleWS)
	mux.HandleFunc("/api/imu", d.HandleIMUData)
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		http.ServeFile(w, r, page)
	})
	return mux
}

// HandleWS handles the WebSocket connection for register debugging
func (d *RegisterDebugServer) HandleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("register_debug: websocket upgrade error: %v", err)
		return
	}
	defer conn.Close()

	session := &RegisterDebugSession{Conn: conn, srv: d}

	if err := session.sendRegisterMap(lsm9ds1.AccelGyro); err != nil {
		log.Printf("register_debug: error sending register map: %v", err)
		return
	}

	for {
		var rawMsg map[string]interface{}
		err := conn.ReadJSON(&rawMsg)
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("register_debug: websocket error: %v", err)
			}
			break
		}

		action, ok := rawMsg["action"].(string)
		if !ok {
			session.sendError("missing or invalid action field")
			continue
		}

		switch action {
		case "get_map":
			if c, ok := session.component(rawMsg); ok {
				session.sendRegisterMap(c)
			}
		case "read":
			session.handleRead(rawMsg)
		case "read_all":
			session.handleReadAll(rawMsg)
		case "write":
			session.handleWrite(rawMsg)
		case "init":
			session.handleInit()
		case "reset":
			session.handleReset()
		case "plan":
			session.handlePlan()
		case "set":
			session.handleSet(rawMsg)
		case "export_config":
			session.handleExportConfig(rawMsg)
		default:
			session.sendError(fmt.Sprintf("unknown action: %s", action))
		}
	}
}

// parseComponent accepts the component names used by the web page.
func parseComponent(name string) (lsm9ds1.Component, error) {
	switch strings.ToLower(name) {
	case "", "ag", "accel_gyro", "accelgyro":
		return lsm9ds1.AccelGyro, nil
	case "m", "mag", "magnetometer":
		return lsm9ds1.Magnetometer, nil
	}
	return 0, fmt.Errorf("unknown component %q", name)
}

func parseByte(s string) (uint8, error) {
	v, err := strconv.ParseUint(strings.TrimSpace(s), 0, 8)
	if err != nil {
		return 0, err
	}
	return uint8(v), nil
}

func hexByte(v uint8) string {
	return fmt.Sprintf("0x%02X", v)
}

func (s *RegisterDebugSession) component(rawMsg map[string]interface{}) (lsm9ds1.Component, bool) {
	name, _ := rawMsg["component"].(string)
	c, err := parseComponent(name)
	if err != nil {
		s.sendError(err.Error())
		return 0, false
	}
	return c, true
}

func (s *RegisterDebugSession) handleRead(rawMsg map[string]interface{}) {
	c, ok := s.component(rawMsg)
	if !ok {
		return
	}
	addr, _ := rawMsg["addr"].(string)
	if addr == "" {
		s.sendError("missing addr field")
		return
	}
	addrByte, err := parseByte(addr)
	if err != nil {
		s.sendError(fmt.Sprintf("invalid address format: %s", addr))
		return
	}

	value, err := s.srv.mgr.ReadRegister(c, addrByte)
	if err != nil {
		s.sendError(fmt.Sprintf("read error: %v", err))
		return
	}

	s.Conn.WriteJSON(RegisterResponse{
		Type:      "register_data",
		Component: c.String(),
		Address:   hexByte(addrByte),
		Value:     hexByte(value),
		Timestamp: time.Now().Format(time.RFC3339),
	})
}

func (s *RegisterDebugSession) handleReadAll(rawMsg map[string]interface{}) {
	c, ok := s.component(rawMsg)
	if !ok {
		return
	}
	registers, err := s.srv.mgr.ReadAllRegisters(c)
	if err != nil {
		s.sendError(fmt.Sprintf("read all error: %v", err))
		return
	}

	s.Conn.WriteJSON(RegisterResponse{
		Type:      "register_data",
		Component: c.String(),
		Registers: hexMap(registers),
		Timestamp: time.Now().Format(time.RFC3339),
	})
}

func hexMap(registers map[uint8]uint8) map[string]string {
	regMap := make(map[string]string, len(registers))
	for addr, value := range registers {
		regMap[hexByte(addr)] = hexByte(value)
	}
	return regMap
}

func (s *RegisterDebugSession) handleWrite(rawMsg map[string]interface{}) {
	if !s.srv.allowWrites {
		s.sendError("register writes are disabled")
		return
	}
	c, ok := s.component(rawMsg)
	if !ok {
		return
	}
	addr, _ := rawMsg["addr"].(string)
	valueStr, _ := rawMsg["value"].(string)
	if addr == "" || valueStr == "" {
		s.sendError("missing addr or value field")
		return
	}
	addrByte, err := parseByte(addr)
	if err != nil {
		s.sendError(fmt.Sprintf("invalid address format: %s", addr))
		return
	}
	valueByte, err := parseByte(valueStr)
	if err != nil {
		s.sendError(fmt.Sprintf("invalid value format: %s", valueStr))
		return
	}

	if err := s.srv.mgr.WriteRegister(c, addrByte, valueByte); err != nil {
		s.sendError(fmt.Sprintf("write error: %v", err))
		return
	}

	s.Conn.WriteJSON(RegisterResponse{
		Type:      "register_data",
		Component: c.String(),
		Address:   hexByte(addrByte),
		Value:     hexByte(valueByte),
		Timestamp: time.Now().Format(time.RFC3339),
		Message:   "write successful",
	})
}

func (s *RegisterDebugSession) handleInit() {
	if err := s.srv.mgr.Reinitialize(); err != nil {
		s.sendError(fmt.Sprintf("reinit error: %v", err))
		return
	}
	s.sendStatus("initialized", "IMU reinitialized successfully")
}

func (s *RegisterDebugSession) handleReset() {
	if err := s.srv.mgr.Reset(); err != nil {
		s.sendError(fmt.Sprintf("reset error: %v", err))
		return
	}
	s.sendStatus("reset", "software reset requested, send init to reprogram")
}

func (s *RegisterDebugSession) handlePlan() {
	plan, err := s.srv.mgr.Plan()
	if err != nil {
		s.sendError(fmt.Sprintf("plan error: %v", err))
		return
	}
	s.Conn.WriteJSON(RegisterResponse{Type: "plan", Plan: planEntries(plan[:])})
}

func planEntries(plan []lsm9ds1.RegisterValue) []PlanEntry {
	entries := make([]PlanEntry, len(plan))
	for i, rv := range plan {
		c, addr := rv.Register.Addr()
		entries[i] = PlanEntry{
			Register:  rv.Register.String(),
			Component: c.String(),
			Address:   hexByte(addr),
			Value:     hexByte(rv.Value),
		}
	}
	return entries
}

func (s *RegisterDebugSession) handleSet(rawMsg map[string]interface{}) {
	setting, _ := rawMsg["setting"].(string)
	value, _ := rawMsg["value"].(string)
	if setting == "" || value == "" {
		s.sendError("missing setting or value field")
		return
	}
	err := s.srv.mgr.Update(func(dev *lsm9ds1.Device) error {
		return applySetting(dev, setting, value)
	})
	if err != nil {
		s.sendError(fmt.Sprintf("set error: %v", err))
		return
	}
	s.sendStatus("updated", fmt.Sprintf("%s set to %s", setting, value))
}

// applySetting performs one live update on dev. Values use the same
// spelling as the configuration file.
func applySetting(dev *lsm9ds1.Device, setting, value string) error {
	switch setting {
	case "accel_enabled", "gyro_enabled", "mag_enabled":
		enabled, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid %s %q: %w", setting, value, err)
		}
		switch setting {
		case "accel_enabled":
			return dev.SetAccelerometerEnabled(enabled)
		case "gyro_enabled":
			return dev.SetGyroscopeEnabled(enabled)
		default:
			return dev.SetMagnetometerEnabled(enabled)
		}
	case "accel_gyro_rate":
		rate, err := config.ParseAccelGyroRate(value)
		if err != nil {
			return err
		}
		return dev.SetAccelGyroSamplingRate(rate)
	case "accel_rate":
		rate, err := config.ParseAccelRate(value)
		if err != nil {
			return err
		}
		return dev.SetAccelSamplingRate(rate)
	case "mag_rate":
		rate, err := config.ParseMagRate(value)
		if err != nil {
			return err
		}
		return dev.SetMagnetometerSamplingRate(rate)
	case "accel_range":
		fs, err := config.ParseAccelRange(value)
		if err != nil {
			return err
		}
		return dev.SetAccelerometerFullScale(fs)
	case "gyro_range":
		fs, err := config.ParseGyroRange(value)
		if err != nil {
			return err
		}
		return dev.SetGyroscopeFullScale(fs)
	case "mag_range":
		fs, err := config.ParseMagRange(value)
		if err != nil {
			return err
		}
		return dev.SetMagnetometerFullScale(fs)
	}
	return fmt.Errorf("unknown setting %q", setting)
}

func (s *RegisterDebugSession) handleExportConfig(rawMsg map[string]interface{}) {
	c, ok := s.component(rawMsg)
	if !ok {
		return
	}
	registers, err := s.srv.mgr.ReadAllRegisters(c)
	if err != nil {
		s.sendError(fmt.Sprintf("export error: %v", err))
		return
	}

	now := time.Now()
	configFile := RegisterConfigFile{
		Version:   1,
		Component: c.String(),
		Timestamp: now.Format(time.RFC3339),
		Registers: hexMap(registers),
	}

	configJSON, err := json.Marshal(configFile)
	if err != nil {
		s.sendError(fmt.Sprintf("export error: %v", err))
		return
	}
	s.Conn.WriteJSON(map[string]interface{}{
		"type":      "export_config",
		"component": c.String(),
		"message":   "config exported",
		"config":    string(configJSON),
		"filename":  fmt.Sprintf("lsm9ds1_%s_%s_registers.json", c.String(), now.Format("20060102_150405")),
	})
}

func (s *RegisterDebugSession) sendRegisterMap(c lsm9ds1.Component) error {
	return s.Conn.WriteJSON(RegisterResponse{
		Type:        "register_map",
		Component:   c.String(),
		RegisterMap: s.srv.mgr.RegisterMap(c),
	})
}

func (s *RegisterDebugSession) sendStatus(status, message string) {
	s.Conn.WriteJSON(RegisterResponse{
		Type:    "status",
		Status:  status,
		Message: message,
	})
}

func (s *RegisterDebugSession) sendError(message string) {
	s.Conn.WriteJSON(RegisterResponse{
		Type:    "error",
		Message: message,
	})
}

// HandleIMUData serves one live sample via REST API
func (d *RegisterDebugServer) HandleIMUData(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Access-Control-Allow-Origin", "*")

	sample, err := d.mgr.ReadIMU()
	if err != nil {
		http.Error(w, fmt.Sprintf("read error: %v", err), http.StatusServiceUnavailable)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(sample)
}
