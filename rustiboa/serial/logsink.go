// Package serial implements the stubbed Game Boy serial link used by
// test ROMs that print diagnostics over SB/SC instead of a real link cable.
package serial

import "github.com/xcorvisx/rustiboa/rustiboa/addr"

// Port is the minimal serial device behind 0xFF01/0xFF02: it stores SB/SC,
// completes a transfer synthetically and instantly whenever SC's start bit
// is set, and accumulates printable bytes written to SB into a
// shell-readable buffer.
type Port struct {
	sb, sc byte
	buf    []byte
	irq    func()
}

// New returns a serial port. irq is called whenever a synthetic transfer
// completes; it should be wired to request the serial interrupt.
func New(irq func()) *Port {
	return &Port{irq: irq}
}

func (p *Port) Write(address uint16, value byte) {
	switch address {
	case addr.SB:
		p.sb = value
		if value >= 0x20 && value <= 0x7E {
			p.buf = append(p.buf, value)
		}
	case addr.SC:
		p.sc = value
		if value&0x80 != 0 {
			p.sc &^= 0x80
			if p.irq != nil {
				p.irq()
			}
		}
	}
}

func (p *Port) Read(address uint16) byte {
	switch address {
	case addr.SB:
		return p.sb
	case addr.SC:
		return p.sc
	default:
		return 0xFF
	}
}

// Tick exists to satisfy the owning MMU's SerialPort interface; the
// synthetic transfer above completes within the same write, so there is
// nothing time-driven left to do.
func (p *Port) Tick(cycles int) {}

func (p *Port) Reset() {
	p.sb, p.sc = 0, 0
	p.buf = p.buf[:0]
}

// Output returns the accumulated printable bytes written to SB so far.
func (p *Port) Output() string {
	return string(p.buf)
}
