// Package memory implements the MMU: the single address arbiter every other
// component reaches through to read or write Game Boy memory.
package memory

import (
	"fmt"

	"github.com/xcorvisx/rustiboa/rustiboa/addr"
	"github.com/xcorvisx/rustiboa/rustiboa/serial"
)

type memRegion uint8

const (
	regionROM memRegion = iota
	regionVRAM
	regionExtRAM
	regionWRAM
	regionEcho
	regionOAM
	regionIO
)

// SerialPort is the minimal interface for the device behind SB/SC.
type SerialPort interface {
	Write(address uint16, value byte)
	Read(address uint16) byte
	Tick(cycles int)
	Reset()
}

// MMU routes every 16-bit address to exactly one storage location and
// enforces the region-specific write semantics in the address map: ROM bank
// switching, the WRAM echo, the unusable window, OAM DMA, and the I/O
// registers with side effects.
type MMU struct {
	cart      *Cartridge
	mbc       MBC
	memory    []byte
	regionMap [256]memRegion

	serial SerialPort
	timer  Timer

	dmaActive     bool
	dmaSourceHigh byte
	dmaProgress   int

	// logMode makes LY read back as a constant 0x90, used by the --log CLI
	// mode to produce deterministic golden-log output.
	logMode bool
}

// New creates an MMU with no cartridge loaded: all RAM regions zeroed and
// the documented post-boot I/O defaults applied.
func New() *MMU {
	mmu := &MMU{
		memory: make([]byte, 0x10000),
	}
	mmu.serial = serial.New(func() { mmu.RequestInterrupt(addr.SerialInterrupt) })
	mmu.timer.TimerInterruptHandler = func() { mmu.RequestInterrupt(addr.TimerInterrupt) }
	initRegionMap(mmu)
	mmu.applyPostBootDefaults()
	return mmu
}

// NewWithCartridge creates an MMU with cart loaded and its appropriate MBC
// wired in.
func NewWithCartridge(cart *Cartridge) *MMU {
	mmu := New()
	mmu.cart = cart
	if cart.usesMBC1() {
		mmu.mbc = NewMBC1(cart)
	} else {
		mmu.mbc = NewNoMBC(cart)
	}
	return mmu
}

func (m *MMU) applyPostBootDefaults() {
	m.memory[addr.LCDC] = 0x91
	m.memory[addr.STAT] = 0x81
	m.memory[addr.BGP] = 0xFC
}

// SetLogMode puts the MMU into the CLI's --log mode, where LY always reads
// back as 0x90 regardless of PPU state, to make golden-log output
// deterministic across runs.
func (m *MMU) SetLogMode(enabled bool) { m.logMode = enabled }

// SerialOutput returns the text accumulated from printable writes to SB.
func (m *MMU) SerialOutput() string {
	if s, ok := m.serial.(interface{ Output() string }); ok {
		return s.Output()
	}
	return ""
}

func initRegionMap(m *MMU) {
	for i := 0x00; i <= 0x7F; i++ {
		m.regionMap[i] = regionROM
	}
	for i := 0x80; i <= 0x9F; i++ {
		m.regionMap[i] = regionVRAM
	}
	for i := 0xA0; i <= 0xBF; i++ {
		m.regionMap[i] = regionExtRAM
	}
	for i := 0xC0; i <= 0xDF; i++ {
		m.regionMap[i] = regionWRAM
	}
	for i := 0xE0; i <= 0xFD; i++ {
		m.regionMap[i] = regionEcho
	}
	m.regionMap[0xFE] = regionOAM
	m.regionMap[0xFF] = regionIO
}

// Tick advances the timer, the serial port, and the OAM DMA engine by
// cycles M-cycles. DMA advances one byte per M-cycle, so it is stepped
// cycles times rather than all at once.
func (m *MMU) Tick(cycles int) {
	m.timer.Tick(cycles)
	m.serial.Tick(cycles)
	for i := 0; i < cycles; i++ {
		m.stepDMA()
	}
}

// SetTimerSeed seeds the internal timer divider for deterministic DIV
// output. The --log mode does not call it.
func (m *MMU) SetTimerSeed(seed uint16) {
	m.timer.SetSeed(seed)
}

// RequestInterrupt sets the IF bit for the given interrupt source. This is
// the one cross-component effect every other component reaches for, kept as
// a method on the MMU (which already owns IF) rather than on the caller.
func (m *MMU) RequestInterrupt(source addr.Interrupt) {
	m.Write(addr.IF, m.Read(addr.IF)|byte(source))
}

func (m *MMU) Read(address uint16) byte {
	switch m.regionMap[address>>8] {
	case regionROM, regionExtRAM:
		if m.mbc == nil {
			return 0xFF
		}
		return m.mbc.Read(address)
	case regionVRAM, regionWRAM:
		return m.memory[address]
	case regionEcho:
		return m.memory[address-0x2000]
	case regionOAM:
		if address <= 0xFE9F {
			return m.memory[address]
		}
		return 0xFF // unusable window, 0xFEA0-0xFEFF
	case regionIO:
		return m.readIO(address)
	default:
		panic(fmt.Sprintf("memory: unmapped read at 0x%04X", address))
	}
}

func (m *MMU) readIO(address uint16) byte {
	switch {
	case address == addr.LY && m.logMode:
		return 0x90
	case address == addr.SB || address == addr.SC:
		return m.serial.Read(address)
	case address == addr.DIV || address == addr.TIMA || address == addr.TMA || address == addr.TAC:
		return m.timer.Read(address)
	default:
		return m.memory[address]
	}
}

func (m *MMU) Write(address uint16, value byte) {
	switch m.regionMap[address>>8] {
	case regionROM, regionExtRAM:
		if m.mbc == nil {
			return
		}
		m.mbc.Write(address, value)
	case regionVRAM, regionWRAM:
		m.memory[address] = value
	case regionEcho:
		m.memory[address-0x2000] = value
	case regionOAM:
		if address <= 0xFE9F {
			m.memory[address] = value
		}
		// writes to the unusable window, 0xFEA0-0xFEFF, are dropped
	case regionIO:
		m.writeIO(address, value)
	default:
		panic(fmt.Sprintf("memory: unmapped write at 0x%04X", address))
	}
}

func (m *MMU) writeIO(address uint16, value byte) {
	switch {
	case address == addr.P1:
		m.writeJoypad(value)
	case address == addr.SB || address == addr.SC:
		m.serial.Write(address, value)
	case address == addr.DIV || address == addr.TIMA || address == addr.TMA || address == addr.TAC:
		m.timer.Write(address, value)
	case address == addr.DMA:
		m.dmaSourceHigh = value
		m.dmaProgress = 0
		m.dmaActive = true
		m.memory[address] = value
	case address == addr.LY:
		// LY is PPU-owned and read-only from the CPU's perspective; ignore.
	default:
		m.memory[address] = value
	}
}

func (m *MMU) writeJoypad(value uint8) {
	previous := m.memory[addr.P1]
	m.memory[addr.P1] = value
	if newlyPressed := previous &^ value; newlyPressed != 0 {
		m.RequestInterrupt(addr.JoypadInterrupt)
	}
}

// stepDMA copies one byte per call while OAM DMA is active, mirroring real
// hardware's one-byte-per-M-cycle transfer rate.
func (m *MMU) stepDMA() {
	if !m.dmaActive {
		return
	}
	src := uint16(m.dmaSourceHigh)<<8 + uint16(m.dmaProgress)
	m.memory[0xFE00+uint16(m.dmaProgress)] = m.dmaReadRaw(src)
	m.dmaProgress++
	if m.dmaProgress >= 160 {
		m.dmaActive = false
	}
}

// dmaReadRaw reads a DMA source byte directly from the owning region's
// backing array, bypassing the ordinary read dispatcher (to avoid
// re-entering it) and treating the unusable window, I/O, and HRAM as 0xFF.
func (m *MMU) dmaReadRaw(address uint16) byte {
	switch m.regionMap[address>>8] {
	case regionROM, regionExtRAM:
		if m.mbc == nil {
			return 0xFF
		}
		return m.mbc.Read(address)
	case regionVRAM, regionWRAM:
		return m.memory[address]
	case regionEcho:
		return m.memory[address-0x2000]
	case regionOAM:
		if address <= 0xFE9F {
			return m.memory[address]
		}
		return 0xFF
	default:
		return 0xFF
	}
}

// DMAActive reports whether an OAM DMA transfer is in progress.
func (m *MMU) DMAActive() bool { return m.dmaActive }
