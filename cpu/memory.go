package cpu

const (
	MemoryCapacity = 0x1000                        // Total memory capacity.
	ProgramStart   = 0x200                         // Address at which programs are loaded and started.
	MaxROMSize     = MemoryCapacity - ProgramStart // Largest program that fits in memory.
)

// Memory defines the system's memory bank.
type Memory [MemoryCapacity]byte

// U8 returns the byte at the given address.
func (m *Memory) U8(addr int) byte {
	return m[addr]
}

// U16 returns the big-endian 16-bit value at the given address.
func (m *Memory) U16(addr int) uint16 {
	return uint16(m[addr])<<8 | uint16(m[addr+1])
}

// Span returns the n bytes starting at the given address.
// Returns false if any part of the range lies outside of memory.
func (m *Memory) Span(addr, n int) ([]byte, bool) {
	if addr < 0 || n < 0 || addr+n > MemoryCapacity {
		return nil, false
	}
	return m[addr : addr+n], true
}

// Write writes len(p) bytes from p into memory, starting at the given address.
// Returns false without writing anything if p does not fit.
func (m *Memory) Write(addr int, p []byte) bool {
	dst, ok := m.Span(addr, len(p))
	if !ok {
		return false
	}
	copy(dst, p)
	return true
}

// Read reads len(p) bytes from memory into p, starting at the given address.
// Returns false without reading anything if the range does not fit.
func (m *Memory) Read(addr int, p []byte) bool {
	src, ok := m.Span(addr, len(p))
	if !ok {
		return false
	}
	copy(p, src)
	return true
}
