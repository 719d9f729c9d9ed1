package cpu

// Flag bit positions within the F register. The low nibble of F is
// unused on real hardware and must read back as zero.
const (
	flagZ uint8 = 1 << 7
	flagN uint8 = 1 << 6
	flagH uint8 = 1 << 5
	flagC uint8 = 1 << 4
)

// Registers holds the Sharp LR35902 register file: eight 8-bit registers
// plus the 16-bit program counter and stack pointer.
type Registers struct {
	A, F    uint8
	B, C    uint8
	D, E    uint8
	H, L    uint8
	PC, SP  uint16
}

// NewRegisters returns the documented post-boot register state.
func NewRegisters() Registers {
	return Registers{
		A: 0x01, F: 0xB0,
		B: 0x00, C: 0x13,
		D: 0x00, E: 0xD8,
		H: 0x01, L: 0x4D,
		PC: 0x0100, SP: 0xFFFE,
	}
}

func (r Registers) AF() uint16 { return uint16(r.A)<<8 | uint16(r.F) }
func (r Registers) BC() uint16 { return uint16(r.B)<<8 | uint16(r.C) }
func (r Registers) DE() uint16 { return uint16(r.D)<<8 | uint16(r.E) }
func (r Registers) HL() uint16 { return uint16(r.H)<<8 | uint16(r.L) }

func (r *Registers) SetAF(v uint16) {
	r.A = uint8(v >> 8)
	r.F = uint8(v) & 0xF0
}

func (r *Registers) SetBC(v uint16) {
	r.B = uint8(v >> 8)
	r.C = uint8(v)
}

func (r *Registers) SetDE(v uint16) {
	r.D = uint8(v >> 8)
	r.E = uint8(v)
}

func (r *Registers) SetHL(v uint16) {
	r.H = uint8(v >> 8)
	r.L = uint8(v)
}

func (r Registers) flag(mask uint8) bool { return r.F&mask != 0 }

func (r Registers) FlagZ() bool { return r.flag(flagZ) }
func (r Registers) FlagN() bool { return r.flag(flagN) }
func (r Registers) FlagH() bool { return r.flag(flagH) }
func (r Registers) FlagC() bool { return r.flag(flagC) }

func (r *Registers) setFlag(mask uint8, set bool) {
	if set {
		r.F |= mask
	} else {
		r.F &^= mask
	}
	r.F &= 0xF0
}

func (r *Registers) SetFlagZ(v bool) { r.setFlag(flagZ, v) }
func (r *Registers) SetFlagN(v bool) { r.setFlag(flagN, v) }
func (r *Registers) SetFlagH(v bool) { r.setFlag(flagH, v) }
func (r *Registers) SetFlagC(v bool) { r.setFlag(flagC, v) }

// regFromCB maps the CB-instruction operand field (bits 2-0) to a register
// pointer, in the CB table's own ordering: 0=B, 1=C, 2=D, 3=E, 4=H, 5=L,
// 6=(HL) [handled by the caller], 7=A.
func (r *Registers) regFromCB(id uint8) *uint8 {
	switch id {
	case 0:
		return &r.B
	case 1:
		return &r.C
	case 2:
		return &r.D
	case 3:
		return &r.E
	case 4:
		return &r.H
	case 5:
		return &r.L
	case 7:
		return &r.A
	default:
		panic("cpu: invalid CB register id")
	}
}
