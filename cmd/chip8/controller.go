package main

import (
	"time"

	"github.com/hexaflex/chip8/cpu"
	"github.com/hexaflex/chip8/devices"
)

// CPUController controls the execution of a CPU and its peripherals.
type CPUController struct {
	cpu        *cpu.CPU
	devices    devices.Map
	start      time.Time
	cycleCount uint64
	running    bool
}

// NewCPUController creates a new CPU controller. Devices are updated
// in the order given.
func NewCPUController(trace cpu.TraceFunc, lenient bool, devs ...devices.Device) *CPUController {
	c := &CPUController{
		cpu: cpu.New(trace, nil),
	}

	c.cpu.SkipUnknown = lenient

	for _, dev := range devs {
		c.devices.Connect(dev)
	}

	return c
}

// Running returns true if the CPU is currently running.
func (c *CPUController) Running() bool {
	return c.running
}

// Frequency returns the current instruction rate in herz.
func (c *CPUController) Frequency() float64 {
	if c.running {
		return float64(c.cycleCount) / time.Since(c.start).Seconds()
	}
	return 0
}

// ToggleRun starts or stops program execution.
func (c *CPUController) ToggleRun() {
	c.setRunning(!c.running)
}

// Start begins execution of the program.
func (c *CPUController) Start() {
	c.setRunning(true)
}

// Stop pauses execution of the program.
func (c *CPUController) Stop() {
	c.setRunning(false)
}

// Step performs a single execution step.
// Execution stops if the step fails.
func (c *CPUController) Step() error {
	c.cycleCount++

	err := c.cpu.Step()
	if err != nil {
		c.setRunning(false)
	}

	return err
}

// RunFrame performs up to ipf execution steps followed by a timer tick,
// if the CPU is running. Stopping the CPU part way, through a breakpoint
// or a failed step, skips the timer tick.
func (c *CPUController) RunFrame(ipf int) error {
	if !c.running {
		return nil
	}

	for i := 0; i < ipf && c.running; i++ {
		if err := c.Step(); err != nil {
			return err
		}
	}

	if c.running {
		c.cpu.TickTimers()
	}

	return nil
}

// Update exchanges state between the CPU and all peripherals.
func (c *CPUController) Update() {
	c.devices.Update(c.cpu)
}

// Load resets the CPU and loads the given program.
func (c *CPUController) Load(program []byte) error {
	c.cpu.Reset()
	return c.cpu.Load(program)
}

// State returns a snapshot of the CPU registers.
func (c *CPUController) State() cpu.State {
	return c.cpu.State()
}

// Startup initializes the connected peripherals.
func (c *CPUController) Startup() error {
	return c.devices.Startup()
}

// Shutdown disposes of peripheral resources.
func (c *CPUController) Shutdown() error {
	c.Stop()
	return c.devices.Shutdown()
}

// setRunning determines if the CPU is running or is paused.
func (c *CPUController) setRunning(v bool) {
	c.running = v
	c.start = time.Now()
	c.cycleCount = 0
}
