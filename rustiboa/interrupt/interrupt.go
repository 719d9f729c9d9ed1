// Package interrupt implements the prioritized interrupt controller that
// runs between CPU instructions.
package interrupt

import (
	"github.com/xcorvisx/rustiboa/rustiboa/addr"
	"github.com/xcorvisx/rustiboa/rustiboa/cpu"
)

// Bus is the memory surface the controller needs: IE/IF live behind the
// ordinary byte interface, same as any other I/O register.
type Bus interface {
	Read(address uint16) byte
	Write(address uint16, value byte)
}

// Request sets the given interrupt's bit in IF through bus. The PPU, timer,
// serial port, and joypad do not call it: they raise their interrupts
// through memory.MMU.RequestInterrupt, which makes the same IF update.
func Request(bus Bus, source addr.Interrupt) {
	bus.Write(addr.IF, bus.Read(addr.IF)|byte(source))
}

// vectors, indexed by interrupt priority (bit 0 = VBlank is highest).
var vectors = [5]uint16{0x40, 0x48, 0x50, 0x58, 0x60}

// Service runs one interrupt-controller step. If an enabled interrupt is
// pending and the CPU is halted, it wakes the CPU regardless of IME. If IME
// is also set, it services the highest-priority pending interrupt and
// returns the 5 M-cycles that costs; otherwise it returns 0.
func Service(c *cpu.CPU, bus Bus) int {
	triggered := bus.Read(addr.IE) & bus.Read(addr.IF) & 0x1F
	if triggered == 0 {
		return 0
	}

	if c.Halted {
		c.Halted = false
	}

	if !c.IME {
		return 0
	}

	for bit := 0; bit < 5; bit++ {
		mask := byte(1 << uint(bit))
		if triggered&mask == 0 {
			continue
		}
		bus.Write(addr.IF, bus.Read(addr.IF)&^mask)
		c.IME = false
		c.Service(vectors[bit])
		return 5
	}

	return 0
}
