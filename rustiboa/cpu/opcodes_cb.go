package cpu

// execCB executes the instruction following a 0xCB prefix byte. The CB
// opcode space is structurally regular: bits 7-6 select an operation
// class, bits 5-3 select a bit position (BIT/RES/SET) or a rotate/shift
// sub-operation, and bits 2-0 select the operand in CB register order
// (0=B, 1=C, 2=D, 3=E, 4=H, 5=L, 6=(HL), 7=A).
func (c *CPU) execCB() int {
	opcode := c.fetch8()

	class := opcode >> 6
	mid := (opcode >> 3) & 0x7
	operand := opcode & 0x7

	if operand == 6 {
		addr := c.Reg.HL()
		v := c.bus.Read(addr)
		switch class {
		case 0:
			v = c.shiftOp(mid, v)
			c.bus.Write(addr, v)
			return 4
		case 1:
			c.bit(mid, v)
			return 3
		case 2:
			c.bus.Write(addr, resBit(mid, v))
			return 4
		case 3:
			c.bus.Write(addr, setBit(mid, v))
			return 4
		}
	}

	reg := c.Reg.regFromCB(operand)
	switch class {
	case 0:
		*reg = c.shiftOp(mid, *reg)
	case 1:
		c.bit(mid, *reg)
	case 2:
		*reg = resBit(mid, *reg)
	case 3:
		*reg = setBit(mid, *reg)
	}
	return 2
}

// shiftOp dispatches the eight rotate/shift sub-operations (CB class 0,
// selected by bits 5-3): RLC, RRC, RL, RR, SLA, SRA, SWAP, SRL.
func (c *CPU) shiftOp(sub uint8, v uint8) uint8 {
	switch sub {
	case 0:
		return c.rlc(v)
	case 1:
		return c.rrc(v)
	case 2:
		return c.rl(v)
	case 3:
		return c.rr(v)
	case 4:
		return c.sla(v)
	case 5:
		return c.sra(v)
	case 6:
		return c.swap(v)
	case 7:
		return c.srl(v)
	default:
		panic("cpu: invalid CB shift sub-operation")
	}
}
