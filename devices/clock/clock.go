// Package clock implements the frame clock which paces the host loop.
package clock

import (
	"log"
	"sync/atomic"
	"time"

	"github.com/hexaflex/chip8/devices"
)

// DefaultRate is the conventional frame and timer rate in Hz.
const DefaultRate = 60

// Device defines the clock state.
type Device struct {
	interval time.Duration // Time between ticks.
	tick     chan struct{}  // Pending tick; holds at most one.
	endPoll  chan struct{}  // poll exit signaller.
	ticks    uint64         // Ticks delivered.
	dropped  uint64         // Ticks lost because the consumer was late.
}

var _ devices.Device = &Device{}

// New creates a clock ticking at the given rate in Hz.
func New(rate int) *Device {
	if rate <= 0 {
		rate = DefaultRate
	}

	return &Device{
		interval: time.Second / time.Duration(rate),
	}
}

// ID returns the device id.
func (d *Device) ID() devices.ID {
	return devices.NewID(devices.ClassClock, 0x0001)
}

// Startup starts the clock.
func (d *Device) Startup() error {
	d.tick = make(chan struct{}, 1)
	d.endPoll = make(chan struct{})
	atomic.StoreUint64(&d.ticks, 0)
	atomic.StoreUint64(&d.dropped, 0)
	go d.poll(d.tick, d.endPoll)
	log.Println(d.ID(), "tick interval:", d.interval)
	return nil
}

// Shutdown stops the clock.
func (d *Device) Shutdown() error {
	if d.endPoll != nil {
		close(d.endPoll)
		d.endPoll = nil
	}
	return nil
}

// Update does nothing; the clock runs on its own.
func (d *Device) Update(devices.Machine) {}

// Due returns true if a tick has arrived since the last call.
// It never blocks.
func (d *Device) Due() bool {
	select {
	case <-d.tick:
		atomic.AddUint64(&d.ticks, 1)
		return true
	default:
		return false
	}
}

// C returns the channel on which ticks are delivered.
// Receiving from it directly bypasses the tick counter.
func (d *Device) C() <-chan struct{} {
	return d.tick
}

// Ticks returns the number of ticks consumed through Due.
func (d *Device) Ticks() uint64 {
	return atomic.LoadUint64(&d.ticks)
}

// Dropped returns the number of ticks lost because the previous one
// had not been consumed yet.
func (d *Device) Dropped() uint64 {
	return atomic.LoadUint64(&d.dropped)
}

// poll delivers ticks until the end channel is closed.
func (d *Device) poll(tick chan<- struct{}, end <-chan struct{}) {
	timer := time.NewTicker(d.interval)
	defer timer.Stop()

	for {
		select {
		case <-end:
			return
		case <-timer.C:
			select {
			case tick <- struct{}{}:
			default:
				atomic.AddUint64(&d.dropped, 1)
			}
		}
	}
}
