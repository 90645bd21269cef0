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

package registers_test

import (
	"testing"

	"github.com/benjcooley/m65832-sub002/hardware/cpu/registers"
	"github.com/benjcooley/m65832-sub002/test"
)

func TestWidthFunctionIsTotal(t *testing.T) {
	// every combination of W1:W0, M and X must yield a defined width for
	// both the accumulator and the index registers
	for _, w1 := range []bool{false, true} {
		for _, w0 := range []bool{false, true} {
			for _, m := range []bool{false, true} {
				for _, x := range []bool{false, true} {
					sr := registers.NewStatus()
					sr.Width1 = w1
					sr.Width0 = w0
					sr.MemoryNarrow = m
					sr.IndexNarrow = x

					mw := sr.MWidth()
					xw := sr.XWidth()
					ok := func(w registers.Width) bool {
						return w == registers.Width8 || w == registers.Width16 || w == registers.Width32
					}
					test.ExpectedSuccess(t, ok(mw))
					test.ExpectedSuccess(t, ok(xw))

					// emulation mode forces 8-bit regardless of M/X
					if !w1 && !w0 {
						test.Equate(t, int(mw), int(registers.Width8))
						test.Equate(t, int(xw), int(registers.Width8))
					}

					// a set narrow flag always narrows to 8-bit
					if m {
						test.Equate(t, int(mw), int(registers.Width8))
					}
					if x {
						test.Equate(t, int(xw), int(registers.Width8))
					}
				}
			}
		}
	}

	// reserved W=10 resolves to native-32
	sr := registers.NewStatus()
	sr.Width1 = true
	sr.Width0 = false
	test.Equate(t, sr.Mode().String(), "native-32")
}

func TestStatusRoundTrip(t *testing.T) {
	sr := registers.NewStatus()
	sr.Carry = true
	sr.MemoryNarrow = true
	sr.Supervisor = true
	sr.Width0 = true
	sr.Width1 = true
	sr.Compat = true

	var rt registers.Status
	rt.Load(sr.Value())
	test.Equate(t, rt.Value(), sr.Value())
	test.Equate(t, rt.Mode().String(), "native-32")
}

func TestDataMasking(t *testing.T) {
	r := registers.NewData(0xdeadbeef, "A")

	// narrow load preserves high bits
	r.Load(0x42, registers.Width8)
	test.Equate(t, r.Value(), 0xdeadbe42)
	test.Equate(t, r.Masked(registers.Width8), 0x42)

	r.Load(0x1234, registers.Width16)
	test.Equate(t, r.Value(), 0xdead1234)

	r.LoadFull(0x80000000)
	test.ExpectedSuccess(t, r.IsNegative(registers.Width32))
	test.ExpectedFailure(t, r.IsNegative(registers.Width16))
	test.ExpectedSuccess(t, r.IsZero(registers.Width16))
}

func TestDataAdd(t *testing.T) {
	r := registers.NewData(0xff, "A")
	carry, overflow := r.Add(1, false, registers.Width8)
	test.ExpectedSuccess(t, carry)
	test.ExpectedFailure(t, overflow)
	test.Equate(t, r.Masked(registers.Width8), 0)

	// signed overflow at 8-bit
	r.LoadFull(0x7f)
	carry, overflow = r.Add(1, false, registers.Width8)
	test.ExpectedFailure(t, carry)
	test.ExpectedSuccess(t, overflow)

	// the same addition does not overflow at 16-bit
	r.LoadFull(0x7f)
	carry, overflow = r.Add(1, false, registers.Width16)
	test.ExpectedFailure(t, carry)
	test.ExpectedFailure(t, overflow)
	test.Equate(t, r.Masked(registers.Width16), 0x80)

	// 32-bit carry out
	r.LoadFull(0xffffffff)
	carry, _ = r.Add(1, false, registers.Width32)
	test.ExpectedSuccess(t, carry)
	test.Equate(t, r.Value(), 0)
}

func TestDataSubtract(t *testing.T) {
	r := registers.NewData(3, "A")
	carry, _ := r.Subtract(8, true, registers.Width8)
	test.ExpectedFailure(t, carry)
	test.Equate(t, r.Masked(registers.Width8), 0xfb)

	r.LoadFull(11)
	carry, _ = r.Subtract(8, true, registers.Width8)
	test.ExpectedSuccess(t, carry)
	test.Equate(t, r.Masked(registers.Width8), 3)
}

func TestDataShifts(t *testing.T) {
	r := registers.NewData(0x80, "A")
	test.ExpectedSuccess(t, r.ASL(registers.Width8))
	test.Equate(t, r.Masked(registers.Width8), 0)

	// the same value does not carry out at 16-bit
	r.LoadFull(0x80)
	test.ExpectedFailure(t, r.ASL(registers.Width16))
	test.Equate(t, r.Masked(registers.Width16), 0x100)

	r.LoadFull(1)
	test.ExpectedSuccess(t, r.LSR(registers.Width32))
	test.Equate(t, r.Value(), 0)

	r.LoadFull(0)
	r.ROR(true, registers.Width16)
	test.Equate(t, r.Masked(registers.Width16), 0x8000)
}

func TestWindowAlignment(t *testing.T) {
	win := &registers.Window{}

	test.ExpectedSuccess(t, win.Write(0, 0x11223344, registers.Width32))
	test.Equate(t, win.Reg(0), 0x11223344)

	// byte lanes are little-endian
	v, ok := win.Read(1, registers.Width8)
	test.ExpectedSuccess(t, ok)
	test.Equate(t, v, 0x33)

	v, ok = win.Read(2, registers.Width16)
	test.ExpectedSuccess(t, ok)
	test.Equate(t, v, 0x1122)

	// misaligned accesses are refused
	_, ok = win.Read(1, registers.Width16)
	test.ExpectedFailure(t, ok)
	_, ok = win.Read(2, registers.Width32)
	test.ExpectedFailure(t, ok)
	test.ExpectedFailure(t, win.Write(3, 0, registers.Width16))

	// a narrow write only touches its lane
	test.ExpectedSuccess(t, win.Write(4, 0xaa, registers.Width8))
	test.ExpectedSuccess(t, win.Write(6, 0xbbcc, registers.Width16))
	test.Equate(t, win.Reg(1), 0xbbcc00aa)
}
