package sensors

import (
	"errors"
	"testing"

	"github.com/relabs-tech/lsm9ds1/internal/lsm9ds1"
)

type memBus struct {
	regs      map[lsm9ds1.Register]uint8
	failRead  map[lsm9ds1.Register]bool
	failWrite bool
}

func newMemBus() *memBus {
	return &memBus{
		regs: map[lsm9ds1.Register]uint8{
			lsm9ds1.WhoAmI:  lsm9ds1.WhoAmIAccelGyroValue,
			lsm9ds1.WhoAmIM: lsm9ds1.WhoAmIMagnetometerValue,
		},
		failRead: map[lsm9ds1.Register]bool{},
	}
}

var errMem = errors.New("mem bus fault")

func (b *memBus) Write(reg lsm9ds1.Register, v uint8) error {
	if b.failWrite {
		return errMem
	}
	b.regs[reg] = v
	return nil
}

func (b *memBus) Read(reg lsm9ds1.Register) (uint8, error) {
	if b.failRead[reg] {
		return 0, errMem
	}
	return b.regs[reg], nil
}

func (b *memBus) ReadMultiple(start lsm9ds1.Register, buf []byte) error {
	if b.failRead[start] {
		return errMem
	}
	for i := range buf {
		buf[i] = b.regs[start+lsm9ds1.Register(i)]
	}
	return nil
}

func attached(t *testing.T, dc lsm9ds1.DeviceConfig) (*IMUManager, *memBus) {
	t.Helper()
	bus := newMemBus()
	m := &IMUManager{name: "test"}
	if err := m.Attach(bus, dc); err != nil {
		t.Fatal(err)
	}
	return m, bus
}

func TestManagerNotInitialized(t *testing.T) {
	m := &IMUManager{}
	if m.IsAvailable() {
		t.Error("fresh manager reports a device")
	}
	if _, err := m.ReadIMU(); !errors.Is(err, ErrNotInitialized) {
		t.Errorf("ReadIMU: %v", err)
	}
	if _, err := m.ReadRegister(lsm9ds1.AccelGyro, 0x0f); !errors.Is(err, ErrNotInitialized) {
		t.Errorf("ReadRegister: %v", err)
	}
	if err := m.Reinitialize(); !errors.Is(err, ErrNotInitialized) {
		t.Errorf("Reinitialize: %v", err)
	}
	if _, err := m.Plan(); !errors.Is(err, ErrNotInitialized) {
		t.Errorf("Plan: %v", err)
	}
}

func TestAttachProgramsDevice(t *testing.T) {
	m, bus := attached(t, lsm9ds1.DefaultDeviceConfig())
	if !m.IsAvailable() {
		t.Fatal("device not available after Attach")
	}
	if got := bus.regs[lsm9ds1.CtrlReg8]; got != 0x04 {
		t.Errorf("CTRL_REG8 = %#02x, want 0x04", got)
	}
	plan, err := m.Plan()
	if err != nil {
		t.Fatal(err)
	}
	for _, rv := range plan {
		if bus.regs[rv.Register] != rv.Value {
			t.Errorf("%s = %#02x, plan says %#02x", rv.Register, bus.regs[rv.Register], rv.Value)
		}
	}
}

func TestReadIMU(t *testing.T) {
	dc := lsm9ds1.NewBuilder().WithMagnetometerEnabled(true).Config()
	m, bus := attached(t, dc)
	// accel X = +full scale, gyro Y = +full scale, mag Z = +full scale
	for i, b := range []byte{0xff, 0x7f, 0, 0, 0, 0} {
		bus.regs[lsm9ds1.OutXLXL+lsm9ds1.Register(i)] = b
	}
	for i, b := range []byte{0, 0, 0xff, 0x7f, 0, 0} {
		bus.regs[lsm9ds1.OutXLG+lsm9ds1.Register(i)] = b
	}
	for i, b := range []byte{0, 0, 0, 0, 0xff, 0x7f} {
		bus.regs[lsm9ds1.OutXLM+lsm9ds1.Register(i)] = b
	}
	bus.regs[lsm9ds1.OutTempL] = 0x10

	s, err := m.ReadIMU()
	if err != nil {
		t.Fatal(err)
	}
	if s.Source != "test" || s.Time.IsZero() {
		t.Errorf("source %q time %v", s.Source, s.Time)
	}
	if s.Accel.X < 1.99 || s.Accel.X > 2.01 {
		t.Errorf("accel X = %g", s.Accel.X)
	}
	if s.Gyro.Y < 244.9 || s.Gyro.Y > 245.1 {
		t.Errorf("gyro Y = %g", s.Gyro.Y)
	}
	if !s.MagValid || s.Mag.Z < 3.99 || s.Mag.Z > 4.01 {
		t.Errorf("mag %v valid=%v", s.Mag, s.MagValid)
	}
	if s.Temperature != 26 {
		t.Errorf("temperature = %g, want 26", s.Temperature)
	}
}

func TestReadIMUMagnetometer(t *testing.T) {
	m, bus := attached(t, lsm9ds1.DefaultDeviceConfig())
	s, err := m.ReadIMU()
	if err != nil {
		t.Fatal(err)
	}
	if s.MagValid {
		t.Error("powered down magnetometer reported valid data")
	}

	if err := m.Update(func(d *lsm9ds1.Device) error { return d.SetMagnetometerEnabled(true) }); err != nil {
		t.Fatal(err)
	}
	bus.failRead[lsm9ds1.OutXLM] = true
	s, err = m.ReadIMU()
	if err != nil {
		t.Fatalf("magnetometer failure broke the sample: %v", err)
	}
	if s.MagValid {
		t.Error("failed magnetometer read reported valid data")
	}

	bus.failRead[lsm9ds1.OutXLXL] = true
	if _, err := m.ReadIMU(); !errors.Is(err, errMem) {
		t.Errorf("accel failure: got %v", err)
	}
}

func TestRegisterAccess(t *testing.T) {
	m, bus := attached(t, lsm9ds1.DefaultDeviceConfig())

	v, err := m.ReadRegister(lsm9ds1.Magnetometer, 0x0f)
	if err != nil || v != 0x3d {
		t.Errorf("WHO_AM_I_M = %#02x, %v", v, err)
	}
	if _, err := m.ReadRegister(lsm9ds1.AccelGyro, 0x00); err == nil {
		t.Error("reading a reserved address should fail")
	}

	if err := m.WriteRegister(lsm9ds1.AccelGyro, 0x10, 0xc0); err != nil {
		t.Fatal(err)
	}
	if bus.regs[lsm9ds1.CtrlReg1G] != 0xc0 {
		t.Errorf("CTRL_REG1_G = %#02x", bus.regs[lsm9ds1.CtrlReg1G])
	}
	if err := m.WriteRegister(lsm9ds1.AccelGyro, 0x0f, 0); err == nil {
		t.Error("writing WHO_AM_I should fail")
	}

	all, err := m.ReadAllRegisters(lsm9ds1.Magnetometer)
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != len(LSM9DS1RegisterMap(lsm9ds1.Magnetometer)) {
		t.Errorf("read %d magnetometer registers, map has %d", len(all), len(LSM9DS1RegisterMap(lsm9ds1.Magnetometer)))
	}
	if all[0x0f] != 0x3d {
		t.Errorf("all[0x0f] = %#02x", all[0x0f])
	}
}

func TestResetAndReinitialize(t *testing.T) {
	m, bus := attached(t, lsm9ds1.DefaultDeviceConfig())
	if err := m.Reset(); err != nil {
		t.Fatal(err)
	}
	if bus.regs[lsm9ds1.CtrlReg8] != 0x05 {
		t.Errorf("CTRL_REG8 after reset = %#02x, want 0x05", bus.regs[lsm9ds1.CtrlReg8])
	}
	if err := m.Reinitialize(); err != nil {
		t.Fatal(err)
	}
	if bus.regs[lsm9ds1.CtrlReg8] != 0x04 {
		t.Errorf("CTRL_REG8 after init = %#02x, want 0x04", bus.regs[lsm9ds1.CtrlReg8])
	}
}

func TestCloseDetachesDevice(t *testing.T) {
	m, _ := attached(t, lsm9ds1.DefaultDeviceConfig())
	if err := m.Close(); err != nil {
		t.Fatal(err)
	}
	if m.IsAvailable() {
		t.Error("device still available after Close")
	}
}

type countingCloser struct{ closed int }

func (c *countingCloser) Close() error {
	c.closed++
	return nil
}

func TestReattachReleasesPreviousBus(t *testing.T) {
	m := &IMUManager{name: "test"}
	first, second := &countingCloser{}, &countingCloser{}

	if err := m.attachBus(newMemBus(), first, lsm9ds1.DefaultDeviceConfig()); err != nil {
		t.Fatal(err)
	}
	if err := m.attachBus(newMemBus(), second, lsm9ds1.DefaultDeviceConfig()); err != nil {
		t.Fatal(err)
	}
	if first.closed != 1 || second.closed != 0 {
		t.Errorf("after re-init: first closed %d times, second %d", first.closed, second.closed)
	}

	// a failed attach releases only the new bus
	broken := newMemBus()
	broken.failWrite = true
	third := &countingCloser{}
	if err := m.attachBus(broken, third, lsm9ds1.DefaultDeviceConfig()); err == nil {
		t.Fatal("attach on a failing bus succeeded")
	}
	if third.closed != 1 || second.closed != 0 {
		t.Errorf("after failed attach: third closed %d times, second %d", third.closed, second.closed)
	}

	if err := m.Close(); err != nil {
		t.Fatal(err)
	}
	if second.closed != 1 {
		t.Errorf("Close released the current bus %d times", second.closed)
	}
}
