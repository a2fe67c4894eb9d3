package main

import (
	"fmt"

	"github.com/eliperez-dev/electron/common"
	"github.com/eliperez-dev/electron/isa"
)

// Terminal dashboard, redrawn after every tick unless -nt is given. Shows
// the pipeline occupancy, the ALU state, the register file and, on the
// Electron 2, the RAM/stack columns, with the eight port rows alongside.

func clearTerminal() {
	fmt.Print("\x1b[2J\x1b[1;1H")
}

func portRow(c common.CPU, port int) string {
	v := c.Port(port)
	row := fmt.Sprintf("     Port %d: (%3d)  ", port, v)
	for bit := 7; bit >= 0; bit-- {
		if v&(1<<bit) != 0 {
			row += "▓▓"
		} else {
			row += "░░"
		}
	}
	return row
}

func drawTerminal(c common.CPU) {
	clearTerminal()

	names := c.StageNames()
	flags := c.Flags()

	fmt.Printf("=== %s pipeline ===                       === Ports ===\n", c.Arch())
	fmt.Printf("| FETCH    | DECODE   | EXECUTE  | WRITE_BACK |%s\n", portRow(c, 0))
	fmt.Printf("| %-8s | %-8s | %-8s | %-10s |%s\n",
		names[0], names[1], names[2], names[3], portRow(c, 1))
	fmt.Printf("=== ALU ===                                   %s\n", portRow(c, 2))
	fmt.Printf("| Accumulator: %3d                           |%s\n", c.Accumulator(), portRow(c, 3))
	fmt.Printf("| Equals: %-5v  Greater: %-5v               |%s\n", flags.EQ, flags.GT, portRow(c, 4))
	fmt.Printf("| Less:   %-5v  Overflow: %-5v              |%s\n", flags.LT, flags.OV, portRow(c, 5))
	fmt.Printf("| PC: %3d                                    |%s\n", c.PC(), portRow(c, 6))
	fmt.Printf("| Tick: %-6d                               |%s\n", c.Ticks(), portRow(c, 7))

	fmt.Println()
	if c.Arch() == isa.V2 {
		fmt.Println("| Registers |      RAM      | Stack")
		for i := 0; i < 8; i++ {
			marker := "    "
			if int(c.SP()) == i || int(c.SP()) == i+8 {
				marker = "< SP"
			}
			fmt.Printf("| R%d: %3d   | #%02d: %3d #%02d: %3d | %s\n",
				i, c.Reg(i), i, c.RAM(i), i+8, c.RAM(i+8), marker)
		}
		if c.WaitingForInput() {
			fmt.Println("Waiting for input (INP)...")
		}
	} else {
		fmt.Println("| Registers |")
		for i := 0; i < 8; i++ {
			fmt.Printf("| R%d: %3d   |\n", i, c.Reg(i))
		}
	}
}
