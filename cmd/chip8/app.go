package main

import (
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/bradleyjkemp/memviz"
	"github.com/go-echarts/statsview"
	"github.com/go-echarts/statsview/viewer"
	"github.com/go-gl/gl/v4.2-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/pkg/errors"

	"github.com/hexaflex/chip8/arch"
	"github.com/hexaflex/chip8/cpu"
	"github.com/hexaflex/chip8/devices"
	"github.com/hexaflex/chip8/devices/buzzer"
	"github.com/hexaflex/chip8/devices/clock"
	"github.com/hexaflex/chip8/devices/display"
	"github.com/hexaflex/chip8/devices/gamepad"
	"github.com/hexaflex/chip8/devices/keypad"
	"github.com/hexaflex/chip8/devices/wavrec"
	"github.com/hexaflex/chip8/rom"
)

// App defines application context.
type App struct {
	config       *Config         // Application configuration.
	window       *glfw.Window    // OpenGL/GLFW context.
	cpu          *CPUController  // VM with program to be run.
	display      *display.Device // Display renderer.
	keypad       *keypad.Device  // Keypad shared by keyboard and gamepad.
	clock        *clock.Device   // Frame clock.
	titleUpdated time.Time       // Value used to periodically update window title.
}

// NewApp creates a new application instance using the given configuration.
func NewApp(config *Config) *App {
	var a App
	a.config = config
	a.display = display.New(config.Foreground, config.Background, config.Fade)
	a.keypad = keypad.New()
	a.clock = clock.New(clock.DefaultRate)
	return &a
}

// Run runs the application and does not return until it is finished
// or an error occured during initialization.
func (a *App) Run() error {
	devs, err := a.connect()
	if err != nil {
		return err
	}

	a.cpu = NewCPUController(a.printTrace, a.config.Lenient, devs...)

	if err := a.initGL(); err != nil {
		return err
	}

	defer a.dispose()

	log.Println(Version())
	printHelp()

	if err := a.cpu.Startup(); err != nil {
		return err
	}

	if err := a.loadProgram(); err != nil {
		return err
	}

	if len(a.config.StatsView) > 0 {
		launchStatsView(a.config.StatsView)
	}

	if !a.config.Debug {
		a.cpu.Start()
	}

	for !a.window.ShouldClose() {
		a.mainLoop()
	}

	return nil
}

// connect creates the peripherals in update order: input first, so key
// changes reach the machine in the same frame, then output.
func (a *App) connect() ([]devices.Device, error) {
	devs := []devices.Device{
		a.clock,
		gamepad.New(a.keypad),
		a.keypad,
		a.display,
	}

	var source buzzer.Source
	if len(a.config.Beep) > 0 {
		sample, err := buzzer.LoadSample(a.config.Beep, buzzer.DefaultRate, 1)
		if err != nil {
			return nil, err
		}
		source = sample
	}

	if !a.config.Mute {
		devs = append(devs, buzzer.New(source, buzzer.DefaultRate, clock.DefaultRate))
	}

	if len(a.config.Record) > 0 {
		// The recorder needs its own source; sources keep playback position.
		var rec buzzer.Source
		if len(a.config.Beep) > 0 {
			sample, err := buzzer.LoadSample(a.config.Beep, wavrec.DefaultRate, 1)
			if err != nil {
				return nil, err
			}
			rec = sample
		}
		devs = append(devs, wavrec.New(a.config.Record, rec, wavrec.DefaultRate, clock.DefaultRate))
	}

	return devs, nil
}

// mainLoop performs all main loop operations.
func (a *App) mainLoop() {
	glfw.WaitEventsTimeout(0.002)

	if !a.clock.Due() {
		return
	}

	if err := a.cpu.RunFrame(a.config.IPF); err != nil {
		log.Println(err)
	}

	a.cpu.Update()

	gl.Clear(gl.COLOR_BUFFER_BIT)
	a.display.Draw()
	a.window.SwapBuffers()

	// Periodically update the window title to show the current instruction rate.
	if time.Since(a.titleUpdated) >= time.Second*2 {
		a.titleUpdated = time.Now()
		freq := prettyFrequency(a.cpu.Frequency())
		a.window.SetTitle(fmt.Sprintf("%s %s - %s", AppName, AppVersion, freq))
	}
}

// dispose ensures openGL/GLFW and other resources are cleaned up.
func (a *App) dispose() {
	if a.cpu != nil {
		if err := a.cpu.Shutdown(); err != nil {
			log.Println(err)
		}
	}

	if a.window != nil {
		a.window.Destroy()
		a.window = nil
	}

	glfw.Terminate()
}

func (a *App) keyCallback(_ *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
	if action == glfw.Repeat {
		return
	}

	// glfw key codes for letters and digits match their ASCII values.
	if k, ok := keypad.Lookup(rune(key)); ok && key < 128 {
		a.keypad.Set(keypad.Keyboard, k, action == glfw.Press)
		return
	}

	if action != glfw.Press {
		return
	}

	var err error

	switch key {
	case glfw.KeyEscape:
		a.window.SetShouldClose(true)
	case glfw.KeyF1:
		printHelp()
	case glfw.KeyF2:
		a.config.Debug = !a.config.Debug
		log.Println("debug mode:", a.config.Debug)
	case glfw.KeyF5:
		err = a.loadProgram()
	case glfw.KeyF6:
		err = a.dumpState()
	case glfw.KeySpace:
		a.cpu.ToggleRun()
	case glfw.KeyF10:
		err = a.cpu.Step()
		a.cpu.Update()
	case glfw.KeyF9:
		a.config.PrintTrace = !a.config.PrintTrace
	}

	if err != nil {
		log.Println(err)
	}
}

// initGL initializes GLFW and openGL.
func (a *App) initGL() error {
	err := glfw.Init()
	if err != nil {
		return errors.Wrapf(err, "glfw.Init failed")
	}

	glfw.WindowHint(glfw.Resizable, glfw.False)
	glfw.WindowHint(glfw.Visible, glfw.True)
	glfw.WindowHint(glfw.Focused, glfw.True)
	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 2)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)

	var monitor *glfw.Monitor

	width := display.Width * a.config.ScaleFactor
	height := display.Height * a.config.ScaleFactor

	if a.config.Fullscreen {
		monitor = glfw.GetPrimaryMonitor()
		mode := monitor.GetVideoMode()

		width = mode.Width
		height = mode.Height

		glfw.WindowHint(glfw.Decorated, glfw.False)
		glfw.WindowHint(glfw.Maximized, glfw.True)
	} else {
		glfw.WindowHint(glfw.Decorated, glfw.True)
		glfw.WindowHint(glfw.Maximized, glfw.False)
	}

	a.window, err = glfw.CreateWindow(width, height, AppName, monitor, nil)
	if err != nil {
		a.dispose()
		return errors.Wrapf(err, "glfw.CreateWindow failed")
	}

	a.window.MakeContextCurrent()
	a.window.SetKeyCallback(a.keyCallback)

	glfw.SwapInterval(0)

	err = gl.Init()
	if err != nil {
		a.dispose()
		return errors.Wrapf(err, "gl.Init failed")
	}

	gl.ClearColor(0, 0, 0, 1.0)
	return nil
}

// loadProgram loads the current program from disk and resets the cpu.
func (a *App) loadProgram() error {
	log.Println("loading", a.config.Program)

	program, err := rom.Load(a.config.Program)
	if err != nil {
		return err
	}

	a.keypad.Reset()
	return a.cpu.Load(program)
}

// dumpState writes a graph of the current machine state to the memviz file.
func (a *App) dumpState() error {
	fd, err := os.Create(a.config.MemViz)
	if err != nil {
		return err
	}

	defer fd.Close()

	state := a.cpu.State()
	memviz.Map(fd, &state)

	log.Println("machine state written to", a.config.MemViz)
	return nil
}

// printTrace prints instruction trace data. This can be toggled
// on off through a.config.PrintTrace.
//
// It also ensures execution is stopped if the given instruction has a breakpoint
// associated with it. This only happens if a.config.Debug is true.
func (a *App) printTrace(i *arch.Instruction) {
	if a.config.Debug && a.config.Breakpoints[i.Address] {
		log.Printf("breakpoint at %04x", i.Address)
		a.cpu.Stop()
	}

	if !a.config.PrintTrace {
		return
	}

	fmt.Println(formatTrace(i, a.cpu.State()))
}

// formatTrace returns a single trace line for the given instruction
// and the machine state before it executes.
func formatTrace(i *arch.Instruction, st cpu.State) string {
	var sb strings.Builder
	sb.Grow(120)

	fmt.Fprintf(&sb, "%04x %04x  %s", i.Address, i.Word, i)
	pad(&sb, 30)

	fmt.Fprintf(&sb, "I=%04x", st.Index)

	for _, r := range tracedRegisters(i) {
		fmt.Fprintf(&sb, " %s=%02x", arch.RegisterName(r), st.Registers[r])
	}

	return sb.String()
}

// tracedRegisters returns the registers an instruction operates on.
func tracedRegisters(i *arch.Instruction) []int {
	switch i.Opcode {
	case arch.SKEQR, arch.SKNER, arch.MOVR, arch.OR, arch.AND, arch.XOR,
		arch.ADDR, arch.SUB, arch.SHR, arch.SUBN, arch.SHL, arch.DRAW:
		return []int{i.X(), i.Y(), arch.VF}
	case arch.SKEQ, arch.SKNE, arch.MOV, arch.ADD, arch.RAND, arch.SKPR, arch.SKUP,
		arch.GDELAY, arch.KEY, arch.SDELAY, arch.SSOUND, arch.ADI, arch.FONT, arch.BCD:
		return []int{i.X()}
	case arch.JMI:
		return []int{0}
	}
	return nil
}

// launchStatsView serves runtime statistics on the given address.
func launchStatsView(addr string) {
	go func() {
		viewer.SetConfiguration(viewer.WithAddr(addr))
		mgr := statsview.New()
		mgr.Start()
	}()

	log.Printf("stats server available at http://%s/debug/statsview", addr)
}

// printHelp writes a short overview of supported shortcut keys.
func printHelp() {
	var sb strings.Builder
	sb.WriteString("shortcut keys:\n")
	sb.WriteString(" ESC      Exit the program.\n")
	sb.WriteString(" F1       Display this help.\n")
	sb.WriteString(" F2       Enable/Disable debug mode.\n")
	sb.WriteString(" F5       (re)load the program from disk and reset the cpu.\n")
	sb.WriteString(" F6       Write a graph of the machine state.\n")
	sb.WriteString(" SPACE    Start/Stop program execution.\n")
	sb.WriteString(" F9       Enable/Disable debug trace output.\n")
	sb.WriteString(" F10      Perform a single execution step.\n")
	sb.WriteString("keypad:\n")
	sb.WriteString(" 1 2 3 4      1 2 3 C\n")
	sb.WriteString(" Q W E R  ->  4 5 6 D\n")
	sb.WriteString(" A S D F      7 8 9 E\n")
	sb.WriteString(" Z X C V      A 0 B F")
	log.Println(sb.String())
}

// pad padds sb with spaces until it reaches the given size.
var pad = func() func(*strings.Builder, int) {
	set := strings.Repeat(" ", 80)
	return func(sb *strings.Builder, size int) {
		if sb.Len() >= size {
			return
		}
		if size > len(set) {
			size = len(set)
		}
		if size < sb.Len() {
			size = sb.Len()
		}
		sb.WriteString(set[:size-sb.Len()])
	}
}()

// prettyFrequency returns a human-readable version of the given frequency in herz.
func prettyFrequency(v float64) string {
	switch {
	case v >= 1e6:
		return fmt.Sprintf("%.2f MHz", v/1e6)
	case v >= 1e3:
		return fmt.Sprintf("%.2f KHz", v/1e3)
	default:
		return fmt.Sprintf("%.2f Hz", v)
	}
}
