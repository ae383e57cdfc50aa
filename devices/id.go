package devices

import "fmt"

// Known device classes.
const (
	ClassDisplay = 0x0001
	ClassInput   = 0x0002
	ClassAudio   = 0x0003
	ClassClock   = 0x0004
)

var classNames = map[int]string{
	ClassDisplay: "display",
	ClassInput:   "input",
	ClassAudio:   "audio",
	ClassClock:   "clock",
}

// ID identifies a device.
// The upper 16 bits hold the device class.
// The lower 16 bits distinguish devices of the same class.
type ID uint32

// NewID creates a new id with the given components.
func NewID(class, serial int) ID {
	return ID(class&0xffff)<<16 | ID(serial&0xffff)
}

// Class returns the class component of the ID.
func (id ID) Class() int {
	return int(id>>16) & 0xffff
}

// Serial returns the serial number component of the ID.
func (id ID) Serial() int {
	return int(id) & 0xffff
}

func (id ID) String() string {
	if name, ok := classNames[id.Class()]; ok {
		return fmt.Sprintf("%s:%04x", name, id.Serial())
	}
	return fmt.Sprintf("%04x:%04x", id.Class(), id.Serial())
}
