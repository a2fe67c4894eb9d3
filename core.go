package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/eliperez-dev/electron/common"
	"github.com/eliperez-dev/electron/electron"
	"github.com/eliperez-dev/electron/isa"
)

func usage() {
	fmt.Printf("Usage: %s -f <source.elt> [options]\n", os.Args[0])
	flag.PrintDefaults()
}

func dumpDeviceList() {
	for name, desc := range deviceDescriptions {
		fmt.Printf("%-20s %s\n", name, desc)
	}
}

var showFPS bool

func main() {
	fileName := flag.String("f", "", "Electron assembly source file (.elt). Required.")
	useV2 := flag.Bool("v2", false, "Target the Electron 2 architecture. Default is the original Electron.")
	clockRate := flag.Float64("c", 1.0, "Clock rate factor (ticks per second).")
	noTerm := flag.Bool("nt", false, "Suppress the terminal state dump.")
	fpsFlag := flag.Bool("fps", false, "Show the display rendering frame rate in the window title.")
	deviceList := flag.String("hw", "display,keyboard",
		"List of hardware devices. See -dump-hw for a list of devices.")
	dumpDevices := flag.Bool("dump-hw", false,
		"Dump a list of hardware devices and exit.")
	disassemble := flag.Bool("disassemble", false, "Disassemble the assembled ROM to stdout and exit.")
	script := flag.String("script", "", "Lua driver script to run instead of the interactive loop.")
	romOut := flag.String("rom", "", "Write the assembled ROM image to this file and exit.")

	flag.Parse()

	if *dumpDevices {
		dumpDeviceList()
		return
	}

	if *fileName == "" {
		fmt.Println("Error: No file name given. Use -f <filename>")
		usage()
		os.Exit(1)
	}

	arch := isa.V1
	if *useV2 {
		arch = isa.V2
	}
	cpu := electron.New(arch)

	src, err := os.ReadFile(*fileName)
	if err != nil {
		fmt.Fprintln(os.Stderr, errors.Wrapf(err, "reading %s", *fileName))
		os.Exit(1)
	}

	warns, err := cpu.LoadSource(string(src))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	printed := map[string]bool{}
	for _, w := range warns {
		if s := w.String(); !printed[s] {
			printed[s] = true
			fmt.Fprintln(os.Stderr, s)
		}
	}

	if *disassemble {
		cpu.Disassemble()
		return
	}

	if *romOut != "" {
		f, err := os.Create(*romOut)
		if err == nil {
			err = cpu.SaveImage(f)
			f.Close()
		}
		if err != nil {
			fmt.Fprintln(os.Stderr, errors.Wrapf(err, "writing %s", *romOut))
			os.Exit(1)
		}
		return
	}

	common.InputReader = bufio.NewReader(os.Stdin)
	showFPS = *fpsFlag

	for _, name := range strings.Split(*deviceList, ",") {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		dt, ok := deviceTypes[name]
		if !ok {
			fmt.Printf("Unknown device: %s\n", name)
			dumpDeviceList()
			return
		}
		cpu.AddDevice(dt())
	}

	if *script != "" {
		if err := RunScript(cpu, *script); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(2)
		}
		return
	}

	run(cpu, *clockRate, !*noTerm)
}

var inputReader *bufio.Reader

// run is the main loop: devices render and pump events continuously, the
// pipeline advances at the requested clock rate, and the dashboard redraws
// after every tick.
func run(c common.CPU, clockRate float64, term bool) {
	if clockRate <= 0 {
		clockRate = 1.0
	}
	inputReader = bufio.NewReader(os.Stdin)

	tick := time.NewTicker(time.Duration(float64(time.Second) / clockRate))
	defer tick.Stop()
	frame := time.NewTicker(time.Second / 60)
	defer frame.Stop()

	for {
		for !*c.Debugging() {
			select {
			case <-tick.C:
				c.Tick()
				if term {
					drawTerminal(c)
				}
			case <-frame.C:
				for _, d := range c.Devices() {
					d.Tick(c)
				}
			}
		}
		debugConsole(c)
	}
}

func debugConsole(c common.CPU) {
	fmt.Printf("%02x debug> ", c.PC())
	in, err := inputReader.ReadString('\n')
	if err != nil {
		fmt.Printf("error while reading input: %v\n", err)
		return
	}

	args := strings.Split(strings.TrimSpace(in), " ")
	if cmd, ok := common.DebugCommands[args[0]]; ok {
		cmd.Run(c, args)
	} else {
		fmt.Printf("Unknown command '%s'\n", args[0])
		fmt.Printf("Commands:\n")
		for key, dbg := range common.DebugCommands {
			fmt.Printf("%s\t%s\n", key, dbg.Describe())
		}
	}
}
