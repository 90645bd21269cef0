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
	"io"
	"strings"
	"testing"

	"github.com/benjcooley/m65832-sub002/debugger/terminal"
	"github.com/benjcooley/m65832-sub002/hardware"
	"github.com/benjcooley/m65832-sub002/hardware/memory/memorymap"
	"github.com/benjcooley/m65832-sub002/test"
)

const origin = 0x8000

// scriptTerm feeds a prepared list of commands to the debugger and records
// everything printed back.
type scriptTerm struct {
	script []string
	output []string
}

func (trm *scriptTerm) Initialise() error { return nil }

func (trm *scriptTerm) CleanUp() {}

func (trm *scriptTerm) RegisterTabCompletion(terminal.TabCompletion) {}

func (trm *scriptTerm) Silence(bool) {}

func (trm *scriptTerm) IsInteractive() bool { return false }

func (trm *scriptTerm) TermPrintLine(style terminal.Style, s string, a ...interface{}) {
	trm.output = append(trm.output, fmt.Sprintf(s, a...))
}

func (trm *scriptTerm) TermRead(input []byte, _ terminal.Prompt, _ *terminal.ReadEvents) (int, error) {
	if len(trm.script) == 0 {
		return 0, io.EOF
	}
	line := trm.script[0]
	trm.script = trm.script[1:]
	copy(input, line)
	return len(line), nil
}

func (trm *scriptTerm) contains(substring string) bool {
	for _, l := range trm.output {
		if strings.Contains(l, substring) {
			return true
		}
	}
	return false
}

func newTestDebugger(t *testing.T, program []byte, script ...string) (*Debugger, *scriptTerm) {
	t.Helper()

	m65 := hardware.NewM65832(0x100000)
	m65.Mem.PhysWrite16(uint64(memorymap.VecResetEmu), origin)
	test.ExpectedSuccess(t, m65.Mem.LoadBinary(origin, program))
	m65.Reset()

	trm := &scriptTerm{script: script}
	dbg, err := New(m65, trm)
	test.ExpectedSuccess(t, err)

	return dbg, trm
}

func TestParseAddress(t *testing.T) {
	v, err := parseAddress("$8000")
	test.ExpectedSuccess(t, err)
	test.Equate(t, v, uint32(0x8000))

	v, err = parseAddress("0x10")
	test.ExpectedSuccess(t, err)
	test.Equate(t, v, uint32(0x10))

	// bare numbers are hexadecimal
	v, err = parseAddress("10")
	test.ExpectedSuccess(t, err)
	test.Equate(t, v, uint32(0x10))

	v, err = parseAddress("0d16")
	test.ExpectedSuccess(t, err)
	test.Equate(t, v, uint32(16))

	_, err = parseAddress("pear")
	test.ExpectedFailure(t, err)
}

func TestTabCompletion(t *testing.T) {
	tc := newTabCompletion()
	test.Equate(t, tc.Complete("BR"), "BREAK ")
	test.Equate(t, tc.Complete("q"), "QUIT ")

	// arguments don't complete
	test.Equate(t, tc.Complete("BREAK 80"), "BREAK 80")
}

func TestStepCommand(t *testing.T) {
	// LDA #$07 / STA $10 / STP
	dbg, _ := newTestDebugger(t, []byte{0xa9, 0x07, 0x85, 0x10, 0xdb},
		"STEP 2", "QUIT")

	test.ExpectedSuccess(t, dbg.Start())
	test.Equate(t, dbg.m65.CPU.InstructionCount, uint64(2))
	test.Equate(t, dbg.m65.Mem.PhysRead8(0x10), uint8(0x07))
}

func TestBreakpoint(t *testing.T) {
	// INX / INX / INX / STP
	dbg, trm := newTestDebugger(t, []byte{0xe8, 0xe8, 0xe8, 0xdb},
		"BREAK 8002", "RUN", "QUIT")

	test.ExpectedSuccess(t, dbg.Start())
	test.ExpectedSuccess(t, trm.contains("break at $00008002"))
	test.Equate(t, dbg.m65.CPU.PC.Address(), uint32(0x8002))
	test.ExpectedFailure(t, dbg.m65.CPU.Halted)
}

func TestBreakpointToggle(t *testing.T) {
	dbg, trm := newTestDebugger(t, []byte{0xdb},
		"BREAK 8002", "BREAK 8002", "BREAK", "QUIT")

	test.ExpectedSuccess(t, dbg.Start())
	test.ExpectedSuccess(t, trm.contains("no breakpoints"))
}

func TestWatch(t *testing.T) {
	// LDA #$42 / STA $20 / STP
	dbg, trm := newTestDebugger(t, []byte{0xa9, 0x42, 0x85, 0x20, 0xdb},
		"WATCH 20", "RUN", "QUIT")

	test.ExpectedSuccess(t, dbg.Start())
	test.ExpectedSuccess(t, trm.contains("watch: $00000020 changed $00 -> $42"))

	// the machine stopped on the watch, before the STP
	test.ExpectedFailure(t, dbg.m65.CPU.Halted)
}

func TestRunToSTP(t *testing.T) {
	dbg, trm := newTestDebugger(t, []byte{0xea, 0xea, 0xdb},
		"RUN", "QUIT")

	test.ExpectedSuccess(t, dbg.Start())
	test.ExpectedSuccess(t, trm.contains("machine halted"))
	test.ExpectedSuccess(t, dbg.m65.CPU.Halted)
}

func TestBackCommand(t *testing.T) {
	// INX / INX / STP
	dbg, _ := newTestDebugger(t, []byte{0xe8, 0xe8, 0xdb},
		"RUN", "BACK", "QUIT")

	test.ExpectedSuccess(t, dbg.Start())

	// BACK restores the state recorded when RUN started
	test.Equate(t, dbg.m65.CPU.PC.Address(), uint32(origin))
	test.Equate(t, dbg.m65.CPU.X.Value(), uint32(0))
	test.ExpectedFailure(t, dbg.m65.CPU.Halted)
}

func TestSetAndPoke(t *testing.T) {
	dbg, _ := newTestDebugger(t, []byte{0xdb},
		"SET A 1234", "POKE 40 aa bb", "QUIT")

	test.ExpectedSuccess(t, dbg.Start())
	test.Equate(t, dbg.m65.CPU.A.Value(), uint32(0x1234))
	test.Equate(t, dbg.m65.Mem.PhysRead8(0x40), uint8(0xaa))
	test.Equate(t, dbg.m65.Mem.PhysRead8(0x41), uint8(0xbb))
}

func TestMultipleCommandsOnOneLine(t *testing.T) {
	dbg, _ := newTestDebugger(t, []byte{0xe8, 0xe8, 0xdb},
		"STEP; STEP", "QUIT")

	test.ExpectedSuccess(t, dbg.Start())
	test.Equate(t, dbg.m65.CPU.X.Value(), uint32(2))
}

func TestUnknownCommand(t *testing.T) {
	dbg, trm := newTestDebugger(t, []byte{0xdb},
		"FLY", "QUIT")

	test.ExpectedSuccess(t, dbg.Start())
	test.ExpectedSuccess(t, trm.contains("unknown command (FLY)"))
}
