package cpu

// dispatch executes a single non-CB, non-illegal opcode and returns the
// number of M-cycles it consumed. 0x40-0x7F (register loads, plus HALT at
// 0x76) and 0x80-0xBF (ALU A,r8) are structurally regular and are decoded
// directly from the opcode bits rather than enumerated one by one; the
// rest of the table is a flat dispatch as on real hardware.
func (c *CPU) dispatch(opcode uint8) int {
	if opcode >= 0x40 && opcode <= 0x7F {
		return c.execLoadGroup(opcode)
	}
	if opcode >= 0x80 && opcode <= 0xBF {
		return c.execALUGroup(opcode)
	}

	switch opcode {
	case 0x00: // NOP
		return 1
	case 0x01: // LD BC,d16
		c.Reg.SetBC(c.fetch16())
		return 3
	case 0x02: // LD (BC),A
		c.bus.Write(c.Reg.BC(), c.Reg.A)
		return 2
	case 0x03: // INC BC
		c.Reg.SetBC(c.Reg.BC() + 1)
		return 2
	case 0x04: // INC B
		c.Reg.B = c.inc8(c.Reg.B)
		return 1
	case 0x05: // DEC B
		c.Reg.B = c.dec8(c.Reg.B)
		return 1
	case 0x06: // LD B,d8
		c.Reg.B = c.fetch8()
		return 2
	case 0x07: // RLCA
		c.rlca()
		return 1
	case 0x08: // LD (a16),SP
		addr := c.fetch16()
		c.write16(addr, c.Reg.SP)
		return 5
	case 0x09: // ADD HL,BC
		c.addHL(c.Reg.BC())
		return 2
	case 0x0A: // LD A,(BC)
		c.Reg.A = c.bus.Read(c.Reg.BC())
		return 2
	case 0x0B: // DEC BC
		c.Reg.SetBC(c.Reg.BC() - 1)
		return 2
	case 0x0C: // INC C
		c.Reg.C = c.inc8(c.Reg.C)
		return 1
	case 0x0D: // DEC C
		c.Reg.C = c.dec8(c.Reg.C)
		return 1
	case 0x0E: // LD C,d8
		c.Reg.C = c.fetch8()
		return 2
	case 0x0F: // RRCA
		c.rrca()
		return 1

	case 0x10: // STOP
		c.fetch8() // the following byte is read and discarded
		return 1
	case 0x11: // LD DE,d16
		c.Reg.SetDE(c.fetch16())
		return 3
	case 0x12: // LD (DE),A
		c.bus.Write(c.Reg.DE(), c.Reg.A)
		return 2
	case 0x13: // INC DE
		c.Reg.SetDE(c.Reg.DE() + 1)
		return 2
	case 0x14: // INC D
		c.Reg.D = c.inc8(c.Reg.D)
		return 1
	case 0x15: // DEC D
		c.Reg.D = c.dec8(c.Reg.D)
		return 1
	case 0x16: // LD D,d8
		c.Reg.D = c.fetch8()
		return 2
	case 0x17: // RLA
		c.rla()
		return 1
	case 0x18: // JR r8
		offset := int8(c.fetch8())
		c.Reg.PC = uint16(int32(c.Reg.PC) + int32(offset))
		return 3
	case 0x19: // ADD HL,DE
		c.addHL(c.Reg.DE())
		return 2
	case 0x1A: // LD A,(DE)
		c.Reg.A = c.bus.Read(c.Reg.DE())
		return 2
	case 0x1B: // DEC DE
		c.Reg.SetDE(c.Reg.DE() - 1)
		return 2
	case 0x1C: // INC E
		c.Reg.E = c.inc8(c.Reg.E)
		return 1
	case 0x1D: // DEC E
		c.Reg.E = c.dec8(c.Reg.E)
		return 1
	case 0x1E: // LD E,d8
		c.Reg.E = c.fetch8()
		return 2
	case 0x1F: // RRA
		c.rra()
		return 1

	case 0x20: // JR NZ,r8
		return c.jrCond(!c.Reg.FlagZ())
	case 0x21: // LD HL,d16
		c.Reg.SetHL(c.fetch16())
		return 3
	case 0x22: // LD (HL+),A
		hl := c.Reg.HL()
		c.bus.Write(hl, c.Reg.A)
		c.Reg.SetHL(hl + 1)
		return 2
	case 0x23: // INC HL
		c.Reg.SetHL(c.Reg.HL() + 1)
		return 2
	case 0x24: // INC H
		c.Reg.H = c.inc8(c.Reg.H)
		return 1
	case 0x25: // DEC H
		c.Reg.H = c.dec8(c.Reg.H)
		return 1
	case 0x26: // LD H,d8
		c.Reg.H = c.fetch8()
		return 2
	case 0x27: // DAA
		c.daa()
		return 1
	case 0x28: // JR Z,r8
		return c.jrCond(c.Reg.FlagZ())
	case 0x29: // ADD HL,HL
		c.addHL(c.Reg.HL())
		return 2
	case 0x2A: // LD A,(HL+)
		hl := c.Reg.HL()
		c.Reg.A = c.bus.Read(hl)
		c.Reg.SetHL(hl + 1)
		return 2
	case 0x2B: // DEC HL
		c.Reg.SetHL(c.Reg.HL() - 1)
		return 2
	case 0x2C: // INC L
		c.Reg.L = c.inc8(c.Reg.L)
		return 1
	case 0x2D: // DEC L
		c.Reg.L = c.dec8(c.Reg.L)
		return 1
	case 0x2E: // LD L,d8
		c.Reg.L = c.fetch8()
		return 2
	case 0x2F: // CPL
		c.Reg.A = ^c.Reg.A
		c.Reg.SetFlagN(true)
		c.Reg.SetFlagH(true)
		return 1

	case 0x30: // JR NC,r8
		return c.jrCond(!c.Reg.FlagC())
	case 0x31: // LD SP,d16
		c.Reg.SP = c.fetch16()
		return 3
	case 0x32: // LD (HL-),A
		hl := c.Reg.HL()
		c.bus.Write(hl, c.Reg.A)
		c.Reg.SetHL(hl - 1)
		return 2
	case 0x33: // INC SP
		c.Reg.SP++
		return 2
	case 0x34: // INC (HL)
		hl := c.Reg.HL()
		c.bus.Write(hl, c.inc8(c.bus.Read(hl)))
		return 3
	case 0x35: // DEC (HL)
		hl := c.Reg.HL()
		c.bus.Write(hl, c.dec8(c.bus.Read(hl)))
		return 3
	case 0x36: // LD (HL),d8
		c.bus.Write(c.Reg.HL(), c.fetch8())
		return 3
	case 0x37: // SCF
		c.Reg.SetFlagN(false)
		c.Reg.SetFlagH(false)
		c.Reg.SetFlagC(true)
		return 1
	case 0x38: // JR C,r8
		return c.jrCond(c.Reg.FlagC())
	case 0x39: // ADD HL,SP
		c.addHL(c.Reg.SP)
		return 2
	case 0x3A: // LD A,(HL-)
		hl := c.Reg.HL()
		c.Reg.A = c.bus.Read(hl)
		c.Reg.SetHL(hl - 1)
		return 2
	case 0x3B: // DEC SP
		c.Reg.SP--
		return 2
	case 0x3C: // INC A
		c.Reg.A = c.inc8(c.Reg.A)
		return 1
	case 0x3D: // DEC A
		c.Reg.A = c.dec8(c.Reg.A)
		return 1
	case 0x3E: // LD A,d8
		c.Reg.A = c.fetch8()
		return 2
	case 0x3F: // CCF
		c.Reg.SetFlagN(false)
		c.Reg.SetFlagH(false)
		c.Reg.SetFlagC(!c.Reg.FlagC())
		return 1

	case 0xC0: // RET NZ
		return c.retCond(!c.Reg.FlagZ())
	case 0xC1: // POP BC
		c.Reg.SetBC(c.pop16())
		return 3
	case 0xC2: // JP NZ,a16
		return c.jpCond(!c.Reg.FlagZ())
	case 0xC3: // JP a16
		c.Reg.PC = c.fetch16()
		return 4
	case 0xC4: // CALL NZ,a16
		return c.callCond(!c.Reg.FlagZ())
	case 0xC5: // PUSH BC
		c.push16(c.Reg.BC())
		return 4
	case 0xC6: // ADD A,d8
		c.Reg.A = c.add8(c.Reg.A, c.fetch8())
		return 2
	case 0xC7: // RST 00H
		c.rst(0x00)
		return 4
	case 0xC8: // RET Z
		return c.retCond(c.Reg.FlagZ())
	case 0xC9: // RET
		c.Reg.PC = c.pop16()
		return 4
	case 0xCA: // JP Z,a16
		return c.jpCond(c.Reg.FlagZ())
	case 0xCC: // CALL Z,a16
		return c.callCond(c.Reg.FlagZ())
	case 0xCD: // CALL a16
		addr := c.fetch16()
		c.push16(c.Reg.PC)
		c.Reg.PC = addr
		return 6
	case 0xCE: // ADC A,d8
		c.Reg.A = c.adc8(c.Reg.A, c.fetch8())
		return 2
	case 0xCF: // RST 08H
		c.rst(0x08)
		return 4

	case 0xD0: // RET NC
		return c.retCond(!c.Reg.FlagC())
	case 0xD1: // POP DE
		c.Reg.SetDE(c.pop16())
		return 3
	case 0xD2: // JP NC,a16
		return c.jpCond(!c.Reg.FlagC())
	case 0xD4: // CALL NC,a16
		return c.callCond(!c.Reg.FlagC())
	case 0xD5: // PUSH DE
		c.push16(c.Reg.DE())
		return 4
	case 0xD6: // SUB A,d8
		c.Reg.A = c.sub8(c.Reg.A, c.fetch8())
		return 2
	case 0xD7: // RST 10H
		c.rst(0x10)
		return 4
	case 0xD8: // RET C
		return c.retCond(c.Reg.FlagC())
	case 0xD9: // RETI
		c.Reg.PC = c.pop16()
		c.IME = true
		return 4
	case 0xDA: // JP C,a16
		return c.jpCond(c.Reg.FlagC())
	case 0xDC: // CALL C,a16
		return c.callCond(c.Reg.FlagC())
	case 0xDE: // SBC A,d8
		c.Reg.A = c.sbc8(c.Reg.A, c.fetch8())
		return 2
	case 0xDF: // RST 18H
		c.rst(0x18)
		return 4

	case 0xE0: // LDH (a8),A
		c.bus.Write(0xFF00+uint16(c.fetch8()), c.Reg.A)
		return 3
	case 0xE1: // POP HL
		c.Reg.SetHL(c.pop16())
		return 3
	case 0xE2: // LD (C),A
		c.bus.Write(0xFF00+uint16(c.Reg.C), c.Reg.A)
		return 2
	case 0xE5: // PUSH HL
		c.push16(c.Reg.HL())
		return 4
	case 0xE6: // AND A,d8
		c.Reg.A = c.and8(c.Reg.A, c.fetch8())
		return 2
	case 0xE7: // RST 20H
		c.rst(0x20)
		return 4
	case 0xE8: // ADD SP,i8
		offset := int8(c.fetch8())
		c.Reg.SP = c.addSPOffset(offset)
		return 4
	case 0xE9: // JP HL
		c.Reg.PC = c.Reg.HL()
		return 1
	case 0xEA: // LD (a16),A
		c.bus.Write(c.fetch16(), c.Reg.A)
		return 4
	case 0xEE: // XOR A,d8
		c.Reg.A = c.xor8(c.Reg.A, c.fetch8())
		return 2
	case 0xEF: // RST 28H
		c.rst(0x28)
		return 4

	case 0xF0: // LDH A,(a8)
		c.Reg.A = c.bus.Read(0xFF00 + uint16(c.fetch8()))
		return 3
	case 0xF1: // POP AF
		c.Reg.SetAF(c.pop16())
		return 3
	case 0xF2: // LD A,(C)
		c.Reg.A = c.bus.Read(0xFF00 + uint16(c.Reg.C))
		return 2
	case 0xF3: // DI
		c.IME = false
		return 1
	case 0xF5: // PUSH AF
		c.push16(c.Reg.AF())
		return 4
	case 0xF6: // OR A,d8
		c.Reg.A = c.or8(c.Reg.A, c.fetch8())
		return 2
	case 0xF7: // RST 30H
		c.rst(0x30)
		return 4
	case 0xF8: // LD HL,SP+i8
		offset := int8(c.fetch8())
		c.Reg.SetHL(c.addSPOffset(offset))
		return 3
	case 0xF9: // LD SP,HL
		c.Reg.SP = c.Reg.HL()
		return 2
	case 0xFA: // LD A,(a16)
		c.Reg.A = c.bus.Read(c.fetch16())
		return 4
	case 0xFB: // EI
		c.IME = true
		return 1
	case 0xFE: // CP A,d8
		c.cp8(c.Reg.A, c.fetch8())
		return 2
	case 0xFF: // RST 38H
		c.rst(0x38)
		return 4
	}

	panic(&IllegalOpcodeError{Opcode: uint16(opcode), PC: c.Reg.PC - 1})
}

// execLoadGroup handles 0x40-0x7F: LD r,r' plus HALT at 0x76. Bits 5-3
// select the destination, bits 2-0 the source, in CB register order
// (0=B,1=C,2=D,3=E,4=H,5=L,6=(HL),7=A).
func (c *CPU) execLoadGroup(opcode uint8) int {
	if opcode == 0x76 {
		c.Halted = true
		return 1
	}

	dst := (opcode >> 3) & 0x7
	src := opcode & 0x7

	if src == 6 {
		v := c.bus.Read(c.Reg.HL())
		*c.Reg.regFromCB(dst) = v
		return 2
	}
	if dst == 6 {
		c.bus.Write(c.Reg.HL(), *c.Reg.regFromCB(src))
		return 2
	}

	*c.Reg.regFromCB(dst) = *c.Reg.regFromCB(src)
	return 1
}

// execALUGroup handles 0x80-0xBF: ADD/ADC/SUB/SBC/AND/XOR/OR/CP A,r8.
// Bits 5-3 select the operation, bits 2-0 the operand in CB register order.
func (c *CPU) execALUGroup(opcode uint8) int {
	op := (opcode >> 3) & 0x7
	operand := opcode & 0x7

	var value uint8
	cycles := 1
	if operand == 6 {
		value = c.bus.Read(c.Reg.HL())
		cycles = 2
	} else {
		value = *c.Reg.regFromCB(operand)
	}

	switch op {
	case 0:
		c.Reg.A = c.add8(c.Reg.A, value)
	case 1:
		c.Reg.A = c.adc8(c.Reg.A, value)
	case 2:
		c.Reg.A = c.sub8(c.Reg.A, value)
	case 3:
		c.Reg.A = c.sbc8(c.Reg.A, value)
	case 4:
		c.Reg.A = c.and8(c.Reg.A, value)
	case 5:
		c.Reg.A = c.xor8(c.Reg.A, value)
	case 6:
		c.Reg.A = c.or8(c.Reg.A, value)
	case 7:
		c.cp8(c.Reg.A, value)
	}
	return cycles
}

func (c *CPU) jrCond(take bool) int {
	offset := int8(c.fetch8())
	if !take {
		return 2
	}
	c.Reg.PC = uint16(int32(c.Reg.PC) + int32(offset))
	return 3
}

func (c *CPU) jpCond(take bool) int {
	addr := c.fetch16()
	if !take {
		return 3
	}
	c.Reg.PC = addr
	return 4
}

func (c *CPU) callCond(take bool) int {
	addr := c.fetch16()
	if !take {
		return 3
	}
	c.push16(c.Reg.PC)
	c.Reg.PC = addr
	return 6
}

func (c *CPU) retCond(take bool) int {
	if !take {
		return 2
	}
	c.Reg.PC = c.pop16()
	return 5
}

func (c *CPU) rst(vector uint16) {
	c.push16(c.Reg.PC)
	c.Reg.PC = vector
}
