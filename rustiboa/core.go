// Package rustiboa wires the CPU, MMU, PPU, timer, and interrupt controller
// into the outer stepping loop described by the system design: interrupts,
// then one CPU instruction, then timer/DMA/PPU advance by that instruction's
// cycle cost.
package rustiboa

import (
	"fmt"
	"log/slog"
	"os"
	"sync"

	"github.com/xcorvisx/rustiboa/rustiboa/cpu"
	"github.com/xcorvisx/rustiboa/rustiboa/interrupt"
	"github.com/xcorvisx/rustiboa/rustiboa/memory"
	"github.com/xcorvisx/rustiboa/rustiboa/video"
)

const dotsPerFrame = 70224

// DebuggerState represents the current debugger mode.
type DebuggerState int

const (
	DebuggerRunning   DebuggerState = iota // Normal execution
	DebuggerPaused                         // Paused, waiting for commands
	DebuggerStep                           // Execute one instruction then pause
	DebuggerStepFrame                      // Execute one frame then pause
)

// Emulator is the root struct and entry point for running the emulation: it
// owns the CPU, PPU, and MMU and drives the outer step loop between them.
type Emulator struct {
	cpu *cpu.CPU
	gpu *video.GPU
	mem *memory.MMU

	debuggerState    DebuggerState
	debuggerMutex    sync.RWMutex
	stepRequested    bool
	frameRequested   bool
	instructionCount uint64
	frameCount       uint64
}

func (e *Emulator) init(mem *memory.MMU) {
	e.cpu = cpu.New(mem)
	e.gpu = video.NewGpu(mem)
	e.mem = mem
}

// New creates an emulator with no cartridge loaded: the MMU has no MBC, so
// every read from ROM or external-RAM space returns 0xFF.
func New() *Emulator {
	e := &Emulator{}
	e.init(memory.New())
	return e
}

// NewWithFile creates an emulator instance and loads the ROM at path into it.
func NewWithFile(path string) (*Emulator, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	slog.Debug("loaded ROM data", "size", len(data))

	cart, err := memory.NewCartridgeWithData(data)
	if err != nil {
		return nil, err
	}

	e := &Emulator{}
	e.init(memory.NewWithCartridge(cart))
	return e, nil
}

// step runs the interrupt controller, one CPU instruction, and advances the
// timer/DMA/PPU by that instruction's cycle cost. Returns the M-cycles
// consumed by this step (interrupt service cost plus instruction cost).
func (e *Emulator) step() int {
	irqCycles := interrupt.Service(e.cpu, e.mem)
	instrCycles := e.cpu.Exec()

	cycles := irqCycles + instrCycles
	e.mem.Tick(cycles)
	e.gpu.Tick(4 * cycles)
	e.instructionCount++
	return cycles
}

// RunUntilFrame steps the emulator until one full frame has been produced,
// honoring the current debugger state.
func (e *Emulator) RunUntilFrame() {
	e.debuggerMutex.RLock()
	state := e.debuggerState
	e.debuggerMutex.RUnlock()

	if state == DebuggerPaused {
		return
	}

	if state == DebuggerStep {
		e.runSingleStep()
		return
	}

	if state == DebuggerStepFrame {
		e.runSteppedFrame()
		return
	}

	e.runFrame()
}

func (e *Emulator) runSingleStep() {
	e.debuggerMutex.Lock()
	if !e.stepRequested {
		e.debuggerMutex.Unlock()
		return
	}
	e.stepRequested = false
	e.debuggerMutex.Unlock()

	oldPC := e.cpu.PC()
	e.step()
	slog.Debug("step executed", "pc", fmt.Sprintf("0x%04X", oldPC), "new_pc", fmt.Sprintf("0x%04X", e.cpu.PC()))

	e.SetDebuggerState(DebuggerPaused)
}

func (e *Emulator) runSteppedFrame() {
	e.debuggerMutex.Lock()
	requested := e.frameRequested
	e.frameRequested = false
	e.debuggerMutex.Unlock()

	if !requested {
		return
	}

	e.runFrame()
	slog.Debug("frame step completed", "frame", e.frameCount, "instructions", e.instructionCount)
	e.SetDebuggerState(DebuggerPaused)
}

func (e *Emulator) runFrame() {
	total := 0
	for {
		total += e.step()
		if e.gpu.FrameReady || total >= dotsPerFrame/4 {
			break
		}
	}
	e.frameCount++
	if e.frameCount%60 == 0 {
		slog.Debug("frame completed", "frame", e.frameCount, "pc", fmt.Sprintf("0x%04X", e.cpu.PC()))
	}
}

func (e *Emulator) GetCurrentFrame() *video.FrameBuffer {
	return e.gpu.GetFrameBuffer()
}

// SetLogMode puts the underlying MMU into --log mode, where LY always reads
// back as a constant 0x90 so golden-log output is deterministic.
func (e *Emulator) SetLogMode(enabled bool) {
	e.mem.SetLogMode(enabled)
}

// Step runs exactly one outer step (interrupt check, one CPU instruction,
// timer/DMA/PPU advance) and returns the M-cycles it consumed.
func (e *Emulator) Step() int {
	return e.step()
}

func (e *Emulator) SetButtonState(button memory.JoypadButton, pressed bool) {
	e.mem.SetButtonState(button, pressed)
}

func (e *Emulator) GetCPU() *cpu.CPU {
	return e.cpu
}

func (e *Emulator) GetMMU() *memory.MMU {
	return e.mem
}

func (e *Emulator) GetInstructionCount() uint64 {
	return e.instructionCount
}

func (e *Emulator) GetFrameCount() uint64 {
	return e.frameCount
}

// SetDebuggerState transitions the emulator's debugger mode.
func (e *Emulator) SetDebuggerState(state DebuggerState) {
	e.debuggerMutex.Lock()
	defer e.debuggerMutex.Unlock()
	e.debuggerState = state
	slog.Debug("debugger state changed", "state", state)
}

func (e *Emulator) GetDebuggerState() DebuggerState {
	e.debuggerMutex.RLock()
	defer e.debuggerMutex.RUnlock()
	return e.debuggerState
}

func (e *Emulator) DebuggerPause() {
	e.SetDebuggerState(DebuggerPaused)
	slog.Info("emulator paused")
}

func (e *Emulator) DebuggerResume() {
	e.SetDebuggerState(DebuggerRunning)
	slog.Info("emulator resumed")
}

func (e *Emulator) DebuggerStepInstruction() {
	e.debuggerMutex.Lock()
	defer e.debuggerMutex.Unlock()
	e.stepRequested = true
	e.debuggerState = DebuggerStep
	slog.Info("step instruction requested")
}

func (e *Emulator) DebuggerStepFrame() {
	e.debuggerMutex.Lock()
	defer e.debuggerMutex.Unlock()
	e.frameRequested = true
	e.debuggerState = DebuggerStepFrame
	slog.Info("step frame requested")
}
