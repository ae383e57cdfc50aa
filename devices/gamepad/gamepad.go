// Package gamepad maps a connected gamepad onto the hexadecimal keypad.
package gamepad

import (
	"log"

	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/hexaflex/chip8/devices"
	"github.com/hexaflex/chip8/devices/keypad"
)

// ButtonMap maps gamepad buttons onto keypad keys. The directional pad
// follows the 2/4/6/8 movement keys most programs use.
var ButtonMap = map[glfw.GamepadButton]int{
	glfw.ButtonDpadUp:    0x2,
	glfw.ButtonDpadDown:  0x8,
	glfw.ButtonDpadLeft:  0x4,
	glfw.ButtonDpadRight: 0x6,
	glfw.ButtonA:         0x5,
	glfw.ButtonB:         0xa,
	glfw.ButtonX:         0x0,
	glfw.ButtonY:         0xb,
	glfw.ButtonStart:     0xf,
	glfw.ButtonBack:      0xe,
}

// Device defines the gamepad state.
type Device struct {
	pad         *keypad.Device
	joy         glfw.Joystick
	initialized bool
}

var _ devices.Device = &Device{}

// New creates a new device which forwards button state to the given keypad.
// It must be connected before the keypad, so presses reach the machine
// in the same frame.
func New(pad *keypad.Device) *Device {
	return &Device{pad: pad}
}

// ID returns the device id.
func (d *Device) ID() devices.ID {
	return devices.NewID(devices.ClassInput, 0x0002)
}

// Startup initializes device resources.
// It detects any connected gamepad.
func (d *Device) Startup() error {
	glfw.SetJoystickCallback(d.configure)

	for joy := glfw.Joystick1; joy <= glfw.JoystickLast; joy++ {
		if joy.Present() && joy.IsGamepad() {
			d.configure(joy, glfw.Connected)
			break
		}
	}

	return nil
}

// Shutdown clears up device resources.
func (d *Device) Shutdown() error {
	glfw.SetJoystickCallback(nil)
	d.release()
	return nil
}

// Update reads the gamepad buttons and forwards them to the keypad.
func (d *Device) Update(devices.Machine) {
	if !d.initialized {
		return
	}

	state := d.joy.GetGamepadState()
	if state == nil {
		return
	}

	for btn, key := range ButtonMap {
		d.pad.Set(keypad.Gamepad, key, state.Buttons[btn] == glfw.Press)
	}
}

// configure is called whenever a joystick is connected or disconnected from the system.
func (d *Device) configure(joy glfw.Joystick, event glfw.PeripheralEvent) {
	d.initialized = event == glfw.Connected && joy.IsGamepad()
	d.joy = joy

	if d.initialized {
		log.Println(d.ID(), "gamepad connected:", joy.GetGamepadName())
	} else {
		log.Println(d.ID(), "gamepad disconnected")
	}

	d.release()
}

// release lets go of every key held by the gamepad.
func (d *Device) release() {
	for _, key := range ButtonMap {
		d.pad.Set(keypad.Gamepad, key, false)
	}
}
