package rustiboa

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xcorvisx/rustiboa/rustiboa/addr"
	"github.com/xcorvisx/rustiboa/rustiboa/memory"
)

// romEmulator builds an emulator whose ROM image is the given header-sized
// (or larger) byte slice, so tests can place a short program directly at
// its file offset (0x0000-0x7FFF maps straight through for a NoMBC cart).
func romEmulator(t *testing.T, rom []byte) *Emulator {
	t.Helper()
	data := make([]byte, 0x8000)
	copy(data, rom)
	cart, err := memory.NewCartridgeWithData(data)
	require.NoError(t, err)
	e := &Emulator{}
	e.init(memory.NewWithCartridge(cart))
	return e
}

func TestBootState(t *testing.T) {
	e := New()
	reg := e.cpu.Reg

	assert.Equal(t, byte(0x01), reg.A)
	assert.Equal(t, byte(0xB0), reg.F)
	assert.Equal(t, byte(0x00), reg.B)
	assert.Equal(t, byte(0x13), reg.C)
	assert.Equal(t, byte(0x00), reg.D)
	assert.Equal(t, byte(0xD8), reg.E)
	assert.Equal(t, byte(0x01), reg.H)
	assert.Equal(t, byte(0x4D), reg.L)
	assert.Equal(t, uint16(0x0100), reg.PC)
	assert.Equal(t, uint16(0xFFFE), reg.SP)
}

func TestXorAThenJump(t *testing.T) {
	rom := make([]byte, 0x104)
	rom[0x100] = 0xAF // XOR A
	rom[0x101] = 0xC3 // JP $0100
	rom[0x102] = 0x00
	rom[0x103] = 0x01
	e := romEmulator(t, rom)

	e.step()
	assert.Zero(t, e.cpu.Reg.A, "XOR A should zero the accumulator")
	assert.Equal(t, byte(0x80), e.cpu.Reg.F, "XOR A should set only the zero flag")
	assert.Equal(t, uint16(0x0101), e.cpu.PC())

	e.step()
	assert.Equal(t, uint16(0x0100), e.cpu.PC(), "JP should jump back to 0x0100")
}

func TestCallReturnRoundTrip(t *testing.T) {
	rom := make([]byte, 0x201)
	rom[0x100] = 0xCD // CALL $0200
	rom[0x101] = 0x00
	rom[0x102] = 0x02
	rom[0x200] = 0xC9 // RET
	e := romEmulator(t, rom)

	startSP := e.cpu.SP()
	e.step() // CALL
	require.Equal(t, uint16(0x0200), e.cpu.PC(), "after CALL")

	e.step() // RET
	assert.Equal(t, uint16(0x0103), e.cpu.PC(), "after RET")
	assert.Equal(t, startSP, e.cpu.SP(), "SP should be restored after RET")
}

func TestVBlankInterruptHandshake(t *testing.T) {
	rom := make([]byte, 0x102)
	rom[0x40], rom[0x41] = 0x18, 0xFE   // VBlank handler: JR -2 (spin at 0x0040)
	rom[0x100], rom[0x101] = 0x18, 0xFE // main program: JR -2 (spin at 0x0100)
	e := romEmulator(t, rom)
	e.mem.Write(addr.LCDC, 0x91) // LCD on
	e.mem.Write(addr.IE, 0x01)
	e.cpu.IME = true

	for i := 0; i < 200000 && !e.gpu.FrameReady; i++ {
		e.step()
	}
	require.True(t, e.gpu.FrameReady, "frame never became ready")

	// Service the pending VBlank interrupt on the very next outer step.
	e.step()
	assert.Equal(t, uint16(0x0040), e.cpu.PC(), "interrupt should vector to 0x0040")
	assert.False(t, e.cpu.IME, "IME should be cleared once serviced")
	assert.Zero(t, e.mem.Read(addr.IF)&0x01, "IF bit 0 should be cleared once serviced")
}

func TestMBC1BankSwitch(t *testing.T) {
	data := make([]byte, 64*1024)
	data[0x148] = 0x01 // ROM size code 1 -> 64 KiB
	data[0x147] = 0x01 // MBC1
	data[0x08000] = 0x99

	cart, err := memory.NewCartridgeWithData(data)
	require.NoError(t, err)
	e := &Emulator{}
	e.init(memory.NewWithCartridge(cart))

	e.mem.Write(0x2000, 0x02)
	assert.Equal(t, byte(0x99), e.mem.Read(0x4000), "Read(0x4000) after bank switch")
}
