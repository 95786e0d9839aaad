package app

import (
	"sync"

	"github.com/relabs-tech/lsm9ds1/internal/lsm9ds1"
)

// regBus is an in-memory register file.
type regBus struct {
	mu   sync.Mutex
	regs map[lsm9ds1.Register]uint8
}

func newRegBus() *regBus {
	return &regBus{regs: map[lsm9ds1.Register]uint8{
		lsm9ds1.WhoAmI:  lsm9ds1.WhoAmIAccelGyroValue,
		lsm9ds1.WhoAmIM: lsm9ds1.WhoAmIMagnetometerValue,
	}}
}

func (b *regBus) Write(reg lsm9ds1.Register, v uint8) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.regs[reg] = v
	return nil
}

func (b *regBus) Read(reg lsm9ds1.Register) (uint8, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.regs[reg], nil
}

func (b *regBus) ReadMultiple(start lsm9ds1.Register, buf []byte) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	for i := range buf {
		buf[i] = b.regs[start+lsm9ds1.Register(i)]
	}
	return nil
}

func (b *regBus) get(reg lsm9ds1.Register) uint8 {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.regs[reg]
}

type fakeMessage []byte

func (m fakeMessage) Duplicate() bool   { return false }
func (m fakeMessage) Qos() byte         { return 0 }
func (m fakeMessage) Retained() bool    { return false }
func (m fakeMessage) Topic() string     { return "lsm9ds1/imu" }
func (m fakeMessage) MessageID() uint16 { return 0 }
func (m fakeMessage) Payload() []byte   { return m }
func (m fakeMessage) Ack()              {}
