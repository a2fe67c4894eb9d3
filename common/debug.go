package common

import (
	"fmt"

	"github.com/k0kubun/pp/v3"
)

// DebugCommand captures a self-describing debug command.
type DebugCommand interface {
	Describe() string
	Run(c CPU, args []string)
}

type debugBlob struct {
	desc string
	f    func(CPU, []string)
}

// DebugCommands is a map of command strings to command objects.
var DebugCommands = map[string]DebugCommand{
	"r": newCommand("Dump the (r)egisters, accumulator and flags", cmdRegs),
	"q": newCommand("(Q)uit the emulator", func(c CPU, _ []string) { c.Exit() }),

	"c": newCommand("(C)ontinue execution", func(c CPU, s []string) {
		*c.Debugging() = false
	}),

	"s": newCommand("(S)tep forward one clock tick", func(c CPU, args []string) {
		c.Tick()
	}),

	"b": newCommand("Set a new (b)reakpoint at the given (hex) code address",
		singleHexArg("No breakpoint location specified (needs hex number)",
			"Error parsing the location", func(c CPU, loc uint8) {
				c.AddBreakpoint(loc)
				fmt.Printf("Breakpoint set at PC = %02x\n", loc)
			})),

	"m": newCommand("Print a value from RA(m)",
		singleHexArg("No RAM slot specified", "Error parsing slot",
			func(c CPU, loc uint8) {
				x := c.RAM(int(loc) & 15)
				fmt.Printf("[#%d] = %02x (%d)\n", loc&15, x, x)
			})),

	"i": newCommand("Disassemble the (i)nstruction at the given location, or at PC",
		func(c CPU, args []string) {
			loc := c.PC()
			if len(args) > 1 {
				if _, err := fmt.Sscanf(args[1], "%x", &loc); err != nil {
					fmt.Printf("Error parsing location: %v\n", err)
					return
				}
			}
			c.DisassembleOp(loc)
		}),

	"fb": newCommand("Dump the (f)rame(b)uffer rows", func(c CPU, args []string) {
		fb := c.Framebuffer()
		for row, v := range fb {
			fmt.Printf("%%%d: %08b\n", row, v)
		}
	}),

	"p": newCommand("Show the (p)ipeline stages", func(c CPU, args []string) {
		names := c.StageNames()
		fmt.Printf("FETCH %s | DECODE %s | EXECUTE %s | WRITE_BACK %s\n",
			names[0], names[1], names[2], names[3])
	}),

	"in": newCommand("Latch an (in)put byte for INP", func(c CPU, args []string) {
		if len(args) <= 1 {
			fmt.Println("No input value given")
			return
		}
		var v uint8
		if _, err := fmt.Sscanf(args[1], "%d", &v); err != nil {
			fmt.Printf("Error parsing value: %v\n", err)
			return
		}
		c.SetInput(v)
	}),

	"dump": newCommand("Pretty-print the whole machine state", func(c CPU, args []string) {
		state := struct {
			Ticks       uint64
			PC, SP, Acc uint8
			Regs        [8]uint8
			Flags       Flags
			RAM         [16]uint8
			Ports       [8]uint8
			Waiting     bool
		}{
			Ticks: c.Ticks(), PC: c.PC(), SP: c.SP(), Acc: c.Accumulator(),
			Flags: c.Flags(), Ports: c.Framebuffer(), Waiting: c.WaitingForInput(),
		}
		for i := range state.Regs {
			state.Regs[i] = c.Reg(i)
		}
		for i := range state.RAM {
			state.RAM[i] = c.RAM(i)
		}
		pp.Println(state)
	}),
}

func newCommand(desc string, f func(c CPU, args []string)) DebugCommand {
	d := new(debugBlob)
	d.desc = desc
	d.f = f
	return d
}

func (dbg *debugBlob) Describe() string {
	return dbg.desc
}

func (dbg *debugBlob) Run(c CPU, args []string) {
	dbg.f(c, args)
}

func cmdRegs(c CPU, args []string) {
	for i := 0; i < 8; i++ {
		fmt.Printf("R%d  %02x (%d)\n", i, c.Reg(i), c.Reg(i))
	}
	fmt.Printf("ACC %02x (%d)\n", c.Accumulator(), c.Accumulator())
	f := c.Flags()
	fmt.Printf("EQ=%v GT=%v LT=%v OV=%v\n", f.EQ, f.GT, f.LT, f.OV)
	fmt.Printf("PC  %02x   SP %d\n", c.PC(), c.SP())
}

func singleHexArg(notSpecifiedMsg, parseErrorMsg string,
	cmd func(c CPU, arg uint8)) func(CPU, []string) {
	return func(c CPU, args []string) {
		if len(args) <= 1 {
			fmt.Println(notSpecifiedMsg)
			return
		}

		var x uint8
		_, err := fmt.Sscanf(args[1], "%x", &x)
		if err != nil {
			fmt.Printf(parseErrorMsg+": %v\n", err)
			return
		}

		cmd(c, x)
	}
}
