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
	"os"
	"os/signal"
	"strings"

	"github.com/benjcooley/m65832-sub002/curated"
	"github.com/benjcooley/m65832-sub002/debugger/terminal"
	"github.com/benjcooley/m65832-sub002/disassembly"
	"github.com/benjcooley/m65832-sub002/hardware"
)

// Debugger is the interactive monitor for the M65832 machine.
type Debugger struct {
	m65  *hardware.M65832
	term terminal.Terminal

	breakpoints *breakpoints
	watches     *watches
	history     *hardware.History

	events *terminal.ReadEvents

	// the machine is disassembled and printed after every halt when trace
	// is enabled
	trace bool

	// the input loop ends when this is true
	quit bool
}

// New is the preferred method of initialisation for the Debugger type.
func New(m65 *hardware.M65832, term terminal.Terminal) (*Debugger, error) {
	dbg := &Debugger{
		m65:  m65,
		term: term,
	}

	dbg.breakpoints = newBreakpoints(dbg)
	dbg.watches = newWatches(dbg)
	dbg.history = hardware.NewHistory(m65, 32)

	dbg.events = &terminal.ReadEvents{
		Signal: make(chan os.Signal, 1),
		SignalHandler: func(sig os.Signal) error {
			if sig == os.Interrupt {
				return curated.Errorf(terminal.UserInterrupt)
			}
			return curated.Errorf(terminal.UserAbort)
		},
	}

	if err := term.Initialise(); err != nil {
		return nil, curated.Errorf("debugger: %v", err)
	}
	term.RegisterTabCompletion(newTabCompletion())

	return dbg, nil
}

// Start the debugger's input loop. Returns when the user quits.
func (dbg *Debugger) Start() error {
	signal.Notify(dbg.events.Signal, os.Interrupt)
	defer func() {
		signal.Stop(dbg.events.Signal)
		dbg.term.CleanUp()
	}()

	dbg.printInstruction()

	input := make([]byte, 255)
	for !dbg.quit {
		prompt := terminal.Prompt{
			Content: dbg.promptContent(),
		}

		n, err := dbg.term.TermRead(input, prompt, dbg.events)
		if err != nil {
			if curated.Is(err, terminal.UserInterrupt) {
				dbg.printStyle(terminal.StyleFeedback, "use QUIT to exit the debugger")
				continue
			}
			if curated.Is(err, terminal.UserAbort) {
				return nil
			}
			// EOF from a pipe is a normal way to end a session
			return nil
		}

		if err := dbg.processInput(strings.TrimSpace(string(input[:n]))); err != nil {
			dbg.printStyle(terminal.StyleError, "%v", err)
		}
	}

	return nil
}

// processInput splits the input into individual commands and dispatches
// them.
func (dbg *Debugger) processInput(input string) error {
	for _, cmd := range strings.Split(input, ";") {
		cmd = strings.TrimSpace(cmd)
		if cmd == "" {
			continue
		}
		if err := dbg.processCommand(cmd); err != nil {
			return err
		}
		if dbg.quit {
			break
		}
	}
	return nil
}

// promptContent describes the instruction about to execute.
func (dbg *Debugger) promptContent() string {
	e, err := disassembly.Decode(dbg.m65.Mem, dbg.m65.CPU.PC.Address(), dbg.m65.CPU.Status)
	if err != nil {
		return dbg.m65.CPU.PC.String()
	}
	return strings.TrimSpace(e.String())
}

func (dbg *Debugger) printStyle(style terminal.Style, s string, a ...interface{}) {
	dbg.term.TermPrintLine(style, s, a...)
}

// printInstruction prints the instruction at the current PC.
func (dbg *Debugger) printInstruction() {
	e, err := disassembly.Decode(dbg.m65.Mem, dbg.m65.CPU.PC.Address(), dbg.m65.CPU.Status)
	if err != nil {
		dbg.printStyle(terminal.StyleError, "%v", err)
		return
	}
	dbg.printStyle(terminal.StyleInstructionStep, "%s", e.String())
}

// step executes one instruction, servicing the watch list afterwards.
func (dbg *Debugger) step() error {
	_, err := dbg.m65.Step()
	if err != nil {
		return err
	}
	for _, hit := range dbg.watches.check() {
		dbg.printStyle(terminal.StyleFeedback, "%s", hit)
	}
	return nil
}

// run the machine until a halt condition: a breakpoint, a watch hit, STP
// or a user interrupt.
func (dbg *Debugger) run() error {
	dbg.history.Record()

	for {
		_, err := dbg.m65.Step()
		if err != nil {
			return err
		}

		if dbg.m65.CPU.Halted {
			dbg.printStyle(terminal.StyleFeedback, "machine halted (STP)")
			return nil
		}

		if hits := dbg.watches.check(); len(hits) > 0 {
			for _, hit := range hits {
				dbg.printStyle(terminal.StyleFeedback, "%s", hit)
			}
			return nil
		}

		if dbg.breakpoints.check(dbg.m65.CPU.PC.Address()) {
			dbg.printStyle(terminal.StyleFeedback, "break at $%08x", dbg.m65.CPU.PC.Address())
			return nil
		}

		select {
		case sig := <-dbg.events.Signal:
			if err := dbg.events.SignalHandler(sig); err != nil {
				if curated.Is(err, terminal.UserInterrupt) {
					dbg.printStyle(terminal.StyleFeedback, "emulation interrupted")
					return nil
				}
				return err
			}
		default:
		}

		if dbg.trace {
			dbg.printInstruction()
		}
	}
}
