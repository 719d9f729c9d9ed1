// Command rustiboa is the CLI shell around the emulator core: it owns ROM
// loading, window creation, keyboard-to-joypad mapping, and the --log
// golden-trace mode. None of this is part of the core itself.
package main

import (
	"bufio"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/gdamore/tcell/v2"
	"github.com/urfave/cli"

	"github.com/xcorvisx/rustiboa/rustiboa"
	"github.com/xcorvisx/rustiboa/rustiboa/memory"
	"github.com/xcorvisx/rustiboa/rustiboa/timing"
	"github.com/xcorvisx/rustiboa/rustiboa/video"
)

var shadeChars = []rune{'█', '▓', '▒', '░'}

const (
	screenWidth  = 160
	screenHeight = 144

	scaleX = 2 // terminal characters are taller than wide; stretch horizontally
	scaleY = 1
)

// keymap maps terminal key events to joypad buttons.
var keymap = map[tcell.Key]memory.JoypadButton{
	tcell.KeyRight: memory.JoypadRight,
	tcell.KeyLeft:  memory.JoypadLeft,
	tcell.KeyUp:    memory.JoypadUp,
	tcell.KeyDown:  memory.JoypadDown,
}

var runeKeymap = map[rune]memory.JoypadButton{
	'z': memory.JoypadA,
	'x': memory.JoypadB,
	'\r': memory.JoypadStart,
	' ': memory.JoypadSelect,
}

type terminalShell struct {
	screen   tcell.Screen
	emulator *rustiboa.Emulator
	running  bool
}

func newTerminalShell(emu *rustiboa.Emulator) (*terminalShell, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize terminal: %v", err)
	}
	if err := screen.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize terminal: %v", err)
	}

	return &terminalShell{screen: screen, emulator: emu, running: true}, nil
}

func (t *terminalShell) Run() error {
	defer func() {
		slog.Info("finishing terminal")
		t.screen.Fini()
	}()

	t.screen.SetStyle(tcell.StyleDefault.Background(tcell.ColorBlack).Foreground(tcell.ColorWhite))
	t.screen.Clear()

	go t.handleInput()

	limiter := timing.NewTickerLimiter()
	defer limiter.Stop()

	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)

	for t.running {
		select {
		default:
			limiter.WaitForNextFrame()
			if !t.running {
				return nil
			}
			t.emulator.RunUntilFrame()
			t.render()
			t.screen.Show()
		case <-signals:
			slog.Info("received signal to stop")
			return nil
		}
	}

	return nil
}

func (t *terminalShell) handleInput() {
	for t.running {
		ev := t.screen.PollEvent()
		switch ev := ev.(type) {
		case *tcell.EventKey:
			if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC {
				t.running = false
				return
			}
			if button, ok := keymap[ev.Key()]; ok {
				t.emulator.SetButtonState(button, true)
			} else if button, ok := runeKeymap[ev.Rune()]; ok {
				t.emulator.SetButtonState(button, true)
			}
		case *tcell.EventResize:
			t.screen.Sync()
		}
	}
}

func (t *terminalShell) render() {
	shades := t.emulator.GetCurrentFrame().Shades()
	t.screen.Clear()

	for y := 0; y < screenHeight; y++ {
		for x := 0; x < screenWidth; x++ {
			shade := shades[y*screenWidth+x]
			style := tcell.StyleDefault.Foreground(tcell.ColorWhite)
			char := shadeChars[shade]

			screenX, screenY := x*scaleX, y*scaleY
			for sx := 0; sx < scaleX; sx++ {
				t.screen.SetContent(screenX+sx, screenY, char, nil, style)
			}
		}
	}
}

// fatalRecover turns an illegal-opcode panic from the core into the
// documented fatal-error exit, per the spec's error handling policy:
// illegal opcodes abort with the offending opcode byte in the message.
func fatalRecover() {
	if r := recover(); r != nil {
		slog.Error("rustiboa halted on a fatal core error", "error", r)
		os.Exit(1)
	}
}

func main() {
	defer fatalRecover()

	app := cli.NewApp()
	app.Name = "rustiboa"
	app.Usage = "rustiboa <rom> [--log <file>]"
	app.Version = "1.0.0"
	app.Flags = []cli.Flag{
		cli.StringFlag{
			Name:  "log",
			Usage: "write a golden-trace log line per executed instruction to this file",
		},
		cli.BoolFlag{
			Name:  "sdl",
			Usage: "use an SDL2 window instead of the terminal",
		},
	}
	app.Action = run

	if err := app.Run(os.Args); err != nil {
		slog.Error("rustiboa exited with an error", "error", err)
		os.Exit(1)
	}
}

func run(c *cli.Context) error {
	if c.NArg() < 1 {
		cli.ShowAppHelp(c)
		return errors.New("no ROM path provided")
	}
	romPath := c.Args().Get(0)

	emu, err := rustiboa.NewWithFile(romPath)
	if err != nil {
		return fmt.Errorf("failed to load ROM: %w", err)
	}

	if logPath := c.String("log"); logPath != "" {
		return runLogMode(emu, logPath)
	}

	if c.Bool("sdl") {
		return runSDLShell(emu)
	}

	shell, err := newTerminalShell(emu)
	if err != nil {
		return err
	}
	return shell.Run()
}

// runSDLShell drives the emulator with an SDL2 window instead of the
// terminal, for hosts that want real pixels rather than block characters.
func runSDLShell(emu *rustiboa.Emulator) error {
	screen, err := video.NewScreen()
	if err != nil {
		return fmt.Errorf("failed to open SDL2 window: %w", err)
	}
	defer screen.Destroy()

	limiter := timing.NewAdaptiveLimiter()

	for {
		limiter.WaitForNextFrame()
		emu.RunUntilFrame()
		if err := screen.Draw(emu.GetCurrentFrame()); err != nil {
			return fmt.Errorf("SDL2 draw failed: %w", err)
		}
		if screen.PollQuit() {
			return nil
		}
	}
}

// runLogMode steps the CPU one instruction at a time, writing a
// deterministic register-and-memory trace line per instruction.
func runLogMode(emu *rustiboa.Emulator, logPath string) error {
	f, err := os.Create(logPath)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	defer w.Flush()

	emu.SetLogMode(true)
	cpu := emu.GetCPU()
	mmu := emu.GetMMU()

	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)

	for {
		select {
		case <-signals:
			return nil
		default:
		}

		pc := cpu.PC()
		fmt.Fprintf(w, "A:%02X F:%02X B:%02X C:%02X D:%02X E:%02X H:%02X L:%02X SP:%04X PC:%04X PCMEM:%02X,%02X,%02X,%02X\n",
			cpu.Reg.A, cpu.Reg.F, cpu.Reg.B, cpu.Reg.C, cpu.Reg.D, cpu.Reg.E, cpu.Reg.H, cpu.Reg.L,
			cpu.SP(), pc,
			mmu.Read(pc), mmu.Read(pc+1), mmu.Read(pc+2), mmu.Read(pc+3))

		emu.Step()
	}
}
