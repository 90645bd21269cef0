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

package timer_test

import (
	"testing"

	"github.com/benjcooley/m65832-sub002/hardware/memory/memorymap"
	"github.com/benjcooley/m65832-sub002/hardware/timer"
	"github.com/benjcooley/m65832-sub002/test"
)

func TestFireAtCompare(t *testing.T) {
	tmr := timer.NewTimer()
	tmr.Cmp = 10
	tmr.SetCtrl(memorymap.TimerEnable | memorymap.TimerIRQEnable)

	test.Equate(t, tmr.Step(4), false)
	test.Equate(t, tmr.Step(4), false)
	test.Equate(t, tmr.Step(4), true)
	test.Equate(t, tmr.Cnt, uint32(12))

	// pending stays raised until cleared
	test.Equate(t, tmr.Step(1), true)
}

func TestAutoReset(t *testing.T) {
	tmr := timer.NewTimer()
	tmr.Cmp = 5
	tmr.SetCtrl(memorymap.TimerEnable | memorymap.TimerIRQEnable | memorymap.TimerAutoReset)

	test.Equate(t, tmr.Step(6), true)
	test.Equate(t, tmr.Cnt, uint32(0))
}

func TestIRQClear(t *testing.T) {
	tmr := timer.NewTimer()
	tmr.Cmp = 1
	tmr.SetCtrl(memorymap.TimerEnable | memorymap.TimerIRQEnable)
	test.Equate(t, tmr.Step(2), true)

	// rewriting the control register without the clear bit preserves the
	// pending state
	tmr.SetCtrl(memorymap.TimerEnable | memorymap.TimerIRQEnable)
	test.Equate(t, tmr.Pending(), true)

	tmr.SetCtrl(memorymap.TimerEnable | memorymap.TimerIRQEnable | memorymap.TimerIRQClear)
	test.Equate(t, tmr.Pending(), false)
	test.Equate(t, tmr.Ctrl&memorymap.TimerIRQClear, uint32(0))
}

func TestIRQDisabled(t *testing.T) {
	tmr := timer.NewTimer()
	tmr.Cmp = 1
	tmr.SetCtrl(memorymap.TimerEnable)
	test.Equate(t, tmr.Step(2), false)
}
