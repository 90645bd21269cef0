// This file is part of M65832.
//
// M65832 is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// M65832 is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with M65832.  If not, see <https://www.gnu.org/licenses/>.

package debugger

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/bradleyjkemp/memviz"

	"github.com/benjcooley/m65832-sub002/curated"
	"github.com/benjcooley/m65832-sub002/debugger/terminal"
	"github.com/benjcooley/m65832-sub002/disassembly"
	"github.com/benjcooley/m65832-sub002/logger"
)

// Sentinel errors from command processing.
const (
	CommandError = "command: %v"
)

// the commands the debugger understands, used for the HELP listing and for
// tab completion.
var commandList = []string{
	"BACK", "BREAK", "CLEAR", "DISASM", "HELP", "LOG", "MEM", "MMU",
	"POKE", "QUIT", "REGS", "RESET", "RUN", "SET", "STEP", "TIMER",
	"TRACE", "VIZ", "WATCH",
}

var commandHelp = map[string]string{
	"BACK":   "restore the machine state recorded at the last RUN",
	"BREAK":  "list breakpoints, or add one: BREAK <addr>",
	"CLEAR":  "clear breakpoints and watches: CLEAR [BREAKS|WATCHES]",
	"DISASM": "disassemble from an address: DISASM [<addr> [<n>]]",
	"HELP":   "this help",
	"LOG":    "print the recent contents of the machine log",
	"MEM":    "hex dump of virtual memory: MEM <addr> [<n>]",
	"MMU":    "print the translation state and TLB contents",
	"POKE":   "write bytes to virtual memory: POKE <addr> <val>...",
	"QUIT":   "leave the debugger",
	"REGS":   "print the register file",
	"RESET":  "reset the machine",
	"RUN":    "run until a breakpoint, watch, STP or interrupt",
	"SET":    "set a register: SET <reg> <val>",
	"STEP":   "execute the next instruction: STEP [<n>]",
	"TIMER":  "print the interval timer state",
	"TRACE":  "toggle instruction tracing during RUN",
	"VIZ":    "write a graphviz visualisation of the CPU: VIZ <file>",
	"WATCH":  "list watches, or add one: WATCH <addr> [<n>]",
}

// parseAddress converts a numeric token. Hex is the normal debugger
// currency so both $8000 and 8000 parse as hexadecimal; use the 0d prefix
// for decimal.
func parseAddress(s string) (uint32, error) {
	s = strings.ToLower(strings.TrimPrefix(s, "$"))

	base := 16
	if strings.HasPrefix(s, "0d") {
		s = s[2:]
		base = 10
	} else {
		s = strings.TrimPrefix(s, "0x")
	}

	v, err := strconv.ParseUint(s, base, 32)
	if err != nil {
		return 0, curated.Errorf(CommandError, fmt.Sprintf("bad address or value (%s)", s))
	}
	return uint32(v), nil
}

func (dbg *Debugger) processCommand(cmd string) error {
	tokens := strings.Fields(cmd)
	verb := strings.ToUpper(tokens[0])
	args := tokens[1:]

	switch verb {
	case "HELP":
		for _, c := range commandList {
			dbg.printStyle(terminal.StyleHelp, "%-8s %s", c, commandHelp[c])
		}

	case "QUIT":
		dbg.quit = true

	case "RESET":
		dbg.m65.Reset()
		dbg.printStyle(terminal.StyleFeedback, "machine reset")
		dbg.printInstruction()

	case "STEP":
		n := 1
		if len(args) > 0 {
			v, err := parseAddress(args[0])
			if err != nil {
				return err
			}
			n = int(v)
		}
		for i := 0; i < n; i++ {
			if err := dbg.step(); err != nil {
				return err
			}
		}
		dbg.printInstruction()

	case "RUN":
		if dbg.m65.CPU.Halted {
			return curated.Errorf(CommandError, "machine has halted, use RESET")
		}
		if err := dbg.run(); err != nil {
			return err
		}
		dbg.printInstruction()

	case "BACK":
		if !dbg.history.StepBack() {
			return curated.Errorf(CommandError, "nothing to step back to")
		}
		dbg.printStyle(terminal.StyleFeedback, "stepped back")
		dbg.printInstruction()

	case "BREAK":
		if len(args) == 0 {
			dbg.printStyle(terminal.StyleFeedback, "%s", dbg.breakpoints)
			return nil
		}
		for _, a := range args {
			addr, err := parseAddress(a)
			if err != nil {
				return err
			}
			dbg.breakpoints.add(addr)
		}

	case "WATCH":
		if len(args) == 0 {
			dbg.printStyle(terminal.StyleFeedback, "%s", dbg.watches)
			return nil
		}
		addr, err := parseAddress(args[0])
		if err != nil {
			return err
		}
		n := uint32(1)
		if len(args) > 1 {
			n, err = parseAddress(args[1])
			if err != nil {
				return err
			}
		}
		dbg.watches.add(addr, n)

	case "CLEAR":
		what := "ALL"
		if len(args) > 0 {
			what = strings.ToUpper(args[0])
		}
		switch what {
		case "BREAKS":
			dbg.breakpoints.clear()
		case "WATCHES":
			dbg.watches.clear()
		case "ALL":
			dbg.breakpoints.clear()
			dbg.watches.clear()
		default:
			return curated.Errorf(CommandError, fmt.Sprintf("cannot clear %s", what))
		}

	case "TRACE":
		dbg.trace = !dbg.trace
		dbg.printStyle(terminal.StyleFeedback, "trace: %v", dbg.trace)

	case "REGS":
		dbg.printStyle(terminal.StyleMachineInfo, "%s", dbg.m65.CPU.String())

	case "SET":
		if len(args) != 2 {
			return curated.Errorf(CommandError, "SET <reg> <val>")
		}
		return dbg.setRegister(strings.ToUpper(args[0]), args[1])

	case "MEM":
		if len(args) == 0 {
			return curated.Errorf(CommandError, "MEM <addr> [<n>]")
		}
		addr, err := parseAddress(args[0])
		if err != nil {
			return err
		}
		n := uint32(64)
		if len(args) > 1 {
			n, err = parseAddress(args[1])
			if err != nil {
				return err
			}
		}
		dbg.dumpMemory(addr, n)

	case "POKE":
		if len(args) < 2 {
			return curated.Errorf(CommandError, "POKE <addr> <val>...")
		}
		addr, err := parseAddress(args[0])
		if err != nil {
			return err
		}
		for i, a := range args[1:] {
			v, err := parseAddress(a)
			if err != nil {
				return err
			}
			if err := dbg.m65.Mem.Write8(addr+uint32(i), uint8(v)); err != nil {
				return err
			}
		}

	case "DISASM":
		addr := dbg.m65.CPU.PC.Address()
		n := uint32(16)
		var err error
		if len(args) > 0 {
			addr, err = parseAddress(args[0])
			if err != nil {
				return err
			}
		}
		if len(args) > 1 {
			n, err = parseAddress(args[1])
			if err != nil {
				return err
			}
		}
		return disassembly.Block(&styleWriter{dbg: dbg, style: terminal.StyleMachineInfo},
			dbg.m65.Mem, addr, int(n), dbg.m65.CPU.Status)

	case "TIMER":
		dbg.printStyle(terminal.StyleMachineInfo, "%s", dbg.m65.Mem.Timer.String())

	case "MMU":
		dbg.printStyle(terminal.StyleMachineInfo, "%s", dbg.m65.Mem.MMU.String())

	case "VIZ":
		if len(args) != 1 {
			return curated.Errorf(CommandError, "VIZ <file>")
		}
		return dbg.writeVisualisation(args[0])

	case "LOG":
		logger.Tail(&styleWriter{dbg: dbg, style: terminal.StyleFeedback}, 20)

	default:
		return curated.Errorf(CommandError, fmt.Sprintf("unknown command (%s)", verb))
	}

	return nil
}

// setRegister handles the SET command.
func (dbg *Debugger) setRegister(reg string, arg string) error {
	v, err := parseAddress(arg)
	if err != nil {
		return err
	}

	mc := dbg.m65.CPU
	switch reg {
	case "PC":
		mc.PC.LoadFull(v)
	case "A":
		mc.A.LoadFull(v)
	case "X":
		mc.X.LoadFull(v)
	case "Y":
		mc.Y.LoadFull(v)
	case "S", "SP":
		mc.S.LoadFull(v)
	case "D":
		mc.D.LoadFull(v)
	case "B":
		mc.B.LoadFull(v)
	case "T":
		mc.T.LoadFull(v)
	case "VBR":
		mc.VBR.LoadFull(v)
	case "P":
		mc.Status.Load(uint16(v))
	default:
		return curated.Errorf(CommandError, fmt.Sprintf("unknown register (%s)", reg))
	}

	dbg.printStyle(terminal.StyleMachineInfo, "%s", mc.String())
	return nil
}

// dumpMemory prints a hex dump of virtual memory, sixteen bytes per line.
// Unmapped addresses print as "--".
func (dbg *Debugger) dumpMemory(addr uint32, n uint32) {
	for base := addr &^ 0xf; base < addr+n; base += 16 {
		s := strings.Builder{}
		s.WriteString(fmt.Sprintf("%08x  ", base))
		for i := uint32(0); i < 16; i++ {
			if v, ok := dbg.m65.Mem.Peek(base + i); ok {
				s.WriteString(fmt.Sprintf("%02x ", v))
			} else {
				s.WriteString("-- ")
			}
		}
		dbg.printStyle(terminal.StyleMachineInfo, "%s", s.String())
	}
}

// writeVisualisation handles the VIZ command.
func (dbg *Debugger) writeVisualisation(filename string) error {
	f, err := os.Create(filename)
	if err != nil {
		return curated.Errorf(CommandError, err)
	}
	defer f.Close()

	memviz.Map(f, dbg.m65.CPU)
	dbg.printStyle(terminal.StyleFeedback, "written %s", filename)
	return nil
}

// styleWriter adapts the terminal output interface to io.Writer for
// functions that want to stream text at us.
type styleWriter struct {
	dbg   *Debugger
	style terminal.Style
}

func (w *styleWriter) Write(p []byte) (int, error) {
	for _, l := range strings.Split(strings.TrimRight(string(p), "\n"), "\n") {
		w.dbg.printStyle(w.style, "%s", l)
	}
	return len(p), nil
}

// tabCompletion is a simple TabCompletion implementation over the command
// list.
type tabCompletion struct{}

func newTabCompletion() *tabCompletion {
	return &tabCompletion{}
}

// Complete implements the terminal.TabCompletion interface. Only the
// command verb completes, arguments are passed through untouched.
func (tc *tabCompletion) Complete(input string) string {
	if strings.ContainsAny(input, " ;") {
		return input
	}
	up := strings.ToUpper(input)
	for _, c := range commandList {
		if strings.HasPrefix(c, up) {
			return c + " "
		}
	}
	return input
}

// Reset implements the terminal.TabCompletion interface.
func (tc *tabCompletion) Reset() {
}
