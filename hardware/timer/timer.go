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

// Package timer implements the M65832 interval timer. The timer is
// programmed through three system registers: a control register, a compare
// register and a free running counter. The counter advances with retired
// instruction cost and the timer raises the IRQ line when it reaches the
// compare value.
package timer

import (
	"fmt"

	"github.com/benjcooley/m65832-sub002/hardware/memory/memorymap"
)

// Timer is the M65832 interval timer.
type Timer struct {
	Ctrl uint32
	Cmp  uint32
	Cnt  uint32
}

// NewTimer is the preferred method of initialisation for the Timer type.
func NewTimer() *Timer {
	return &Timer{}
}

// Reset the timer to the power-on state.
func (tmr *Timer) Reset() {
	tmr.Ctrl = 0
	tmr.Cmp = 0
	tmr.Cnt = 0
}

// SetCtrl writes the control register. The IRQ pending bit is not directly
// writable, it is cleared by writing the IRQ clear bit and preserved
// otherwise.
func (tmr *Timer) SetCtrl(val uint32) {
	pending := tmr.Ctrl & memorymap.TimerIRQPending
	if val&memorymap.TimerIRQClear != 0 {
		pending = 0
	}
	tmr.Ctrl = (val & ^(memorymap.TimerIRQPending | memorymap.TimerIRQClear)) | pending
}

// Step advances the counter by the cost of a retired instruction. The
// returned value is true when the timer wants the IRQ line raised.
func (tmr *Timer) Step(cycles uint32) bool {
	if tmr.Ctrl&memorymap.TimerEnable == 0 {
		return tmr.Pending()
	}

	tmr.Cnt += cycles
	if tmr.Cnt >= tmr.Cmp {
		if tmr.Ctrl&memorymap.TimerIRQEnable != 0 {
			tmr.Ctrl |= memorymap.TimerIRQPending
		}
		if tmr.Ctrl&memorymap.TimerAutoReset != 0 {
			tmr.Cnt = 0
		}
	}

	return tmr.Pending()
}

// Pending returns true while the IRQ pending bit is set.
func (tmr *Timer) Pending() bool {
	return tmr.Ctrl&memorymap.TimerIRQPending != 0
}

func (tmr *Timer) String() string {
	return fmt.Sprintf("TIMER: ctrl=%08x cmp=%08x cnt=%08x", tmr.Ctrl, tmr.Cmp, tmr.Cnt)
}
