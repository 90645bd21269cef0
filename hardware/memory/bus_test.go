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

package memory_test

import (
	"strings"
	"testing"

	"github.com/benjcooley/m65832-sub002/curated"
	"github.com/benjcooley/m65832-sub002/hardware/cpu/registers"
	"github.com/benjcooley/m65832-sub002/hardware/memory"
	"github.com/benjcooley/m65832-sub002/hardware/memory/memorymap"
	"github.com/benjcooley/m65832-sub002/test"
)

// mockContext stands in for the CPU.
type mockContext struct {
	supervisor bool
	short      bool
}

func (c *mockContext) Supervisor() bool      { return c.supervisor }
func (c *mockContext) ShortAddressing() bool { return c.short }

func TestReadWriteWidths(t *testing.T) {
	bus := memory.NewBus(0x10000)

	test.ExpectedSuccess(t, bus.Write32(0x1000, 0x04030201))
	v8, err := bus.Read8(0x1002)
	test.ExpectedSuccess(t, err)
	test.Equate(t, v8, uint8(0x03))
	v16, err := bus.Read16(0x1001)
	test.ExpectedSuccess(t, err)
	test.Equate(t, v16, uint16(0x0302))
	v32, err := bus.Read32(0x1000)
	test.ExpectedSuccess(t, err)
	test.Equate(t, v32, uint32(0x04030201))
}

func TestSysRegPrivilege(t *testing.T) {
	bus := memory.NewBus(0x10000)
	ctx := &mockContext{supervisor: true, short: false}
	bus.Attach(ctx)

	// supervisor access succeeds
	err := bus.Write32(memorymap.SysRegBase+memorymap.RegTimerCmp, 100)
	test.ExpectedSuccess(t, err)
	test.Equate(t, bus.Timer.Cmp, uint32(100))

	// user access is a privilege violation
	ctx.supervisor = false
	_, err = bus.Read32(memorymap.SysRegBase + memorymap.RegTimerCmp)
	test.ExpectedFailure(t, err)
	if !curated.Is(err, memory.PrivilegeViolation) {
		t.Errorf("expected a privilege violation error, got %v", err)
	}
}

func TestSysRegAlias(t *testing.T) {
	bus := memory.NewBus(0x10000)
	ctx := &mockContext{supervisor: true, short: true}
	bus.Attach(ctx)

	// in the short addressing modes the window is visible at the alias
	err := bus.Write32(memorymap.SysRegAlias+memorymap.RegTimerCmp, 55)
	test.ExpectedSuccess(t, err)
	test.Equate(t, bus.Timer.Cmp, uint32(55))

	// in long mode the same address is plain RAM
	ctx.short = false
	err = bus.Write32(memorymap.SysRegAlias+memorymap.RegTimerCmp, 77)
	test.ExpectedSuccess(t, err)
	test.Equate(t, bus.Timer.Cmp, uint32(55))
	v, err := bus.Read32(memorymap.SysRegAlias + memorymap.RegTimerCmp)
	test.ExpectedSuccess(t, err)
	test.Equate(t, v, uint32(77))
}

func TestSysRegSideEffects(t *testing.T) {
	bus := memory.NewBus(0x100000)
	bus.Attach(&mockContext{supervisor: true})

	// PTBR halves assemble into the 64-bit register
	test.ExpectedSuccess(t, bus.Write32(memorymap.SysRegBase+memorymap.RegPTBRLo, 0x00010000))
	test.ExpectedSuccess(t, bus.Write32(memorymap.SysRegBase+memorymap.RegPTBRHi, 0x00000001))
	test.Equate(t, bus.MMU.PTBR, uint64(0x0000000100010000))

	// the fault register cannot be written
	test.ExpectedSuccess(t, bus.Write32(memorymap.SysRegBase+memorymap.RegFaultVA, 0xdeadbeef))
	v, err := bus.Read32(memorymap.SysRegBase + memorymap.RegFaultVA)
	test.ExpectedSuccess(t, err)
	test.Equate(t, v, uint32(0))
}

func TestMMIORegion(t *testing.T) {
	bus := memory.NewBus(0x10000)

	var lastWrite uint8
	bus.AddRegion(memory.Region{
		Base: 0x2000,
		Size: 0x100,
		Read: func(addr uint64) uint8 {
			return uint8(addr)
		},
		Write: func(addr uint64, val uint8) {
			lastWrite = val
		},
	})

	v, err := bus.Read8(0x2042)
	test.ExpectedSuccess(t, err)
	test.Equate(t, v, uint8(0x42))

	test.ExpectedSuccess(t, bus.Write8(0x2000, 0x99))
	test.Equate(t, lastWrite, uint8(0x99))

	// the device shadows RAM, the backing bytes are untouched
	test.Equate(t, bus.RAM[0x2000], uint8(0))
}

func TestCompareAndSwap(t *testing.T) {
	bus := memory.NewBus(0x10000)
	test.ExpectedSuccess(t, bus.Write32(0x1000, 50))

	// failed swap returns the memory value
	mem, ok, err := bus.CompareAndSwap(0x1000, registers.Width32, 49, 99)
	test.ExpectedSuccess(t, err)
	test.ExpectedFailure(t, ok)
	test.Equate(t, mem, uint32(50))

	// successful swap stores the new value
	mem, ok, err = bus.CompareAndSwap(0x1000, registers.Width32, 50, 99)
	test.ExpectedSuccess(t, err)
	test.ExpectedSuccess(t, ok)
	test.Equate(t, mem, uint32(50))

	v, err := bus.Read32(0x1000)
	test.ExpectedSuccess(t, err)
	test.Equate(t, v, uint32(99))
}

func TestLoadLinked(t *testing.T) {
	bus := memory.NewBus(0x10000)
	test.ExpectedSuccess(t, bus.Write32(0x1000, 10))

	// undisturbed link succeeds
	v, err := bus.LoadLinked(0x1000, registers.Width32)
	test.ExpectedSuccess(t, err)
	test.Equate(t, v, uint32(10))
	ok, err := bus.StoreConditional(0x1000, registers.Width32, 11)
	test.ExpectedSuccess(t, err)
	test.ExpectedSuccess(t, ok)

	// an intervening store into the linked word breaks the link
	_, err = bus.LoadLinked(0x1000, registers.Width32)
	test.ExpectedSuccess(t, err)
	test.ExpectedSuccess(t, bus.Write8(0x1002, 0xff))
	ok, err = bus.StoreConditional(0x1000, registers.Width32, 12)
	test.ExpectedSuccess(t, err)
	test.ExpectedFailure(t, ok)

	// a store conditional with no open link fails
	ok, err = bus.StoreConditional(0x1000, registers.Width32, 13)
	test.ExpectedSuccess(t, err)
	test.ExpectedFailure(t, ok)
}

func TestLoadLinkedForeignStore(t *testing.T) {
	bus := memory.NewBus(0x10000)
	test.ExpectedSuccess(t, bus.Write32(0x1000, 10))

	// a store through the physical path, the seam used by foreign agents
	// and by the exception frame traffic, breaks the link the same as a
	// translated store does
	_, err := bus.LoadLinked(0x1000, registers.Width32)
	test.ExpectedSuccess(t, err)
	bus.PhysWrite8(0x1000, 0xff)
	ok, err := bus.StoreConditional(0x1000, registers.Width32, 12)
	test.ExpectedSuccess(t, err)
	test.ExpectedFailure(t, ok)

	// a physical store elsewhere leaves the link alone
	_, err = bus.LoadLinked(0x1000, registers.Width32)
	test.ExpectedSuccess(t, err)
	bus.PhysWrite8(0x2000, 0xff)
	ok, err = bus.StoreConditional(0x1000, registers.Width32, 12)
	test.ExpectedSuccess(t, err)
	test.ExpectedSuccess(t, ok)
}

func TestPhysicalPathIgnoresPaging(t *testing.T) {
	bus := memory.NewBus(0x100000)
	bus.Attach(&mockContext{supervisor: true})

	bus.PhysWrite16(uint64(memorymap.VecResetEmu), 0x8000)

	// enable paging with an empty page table. the virtual path faults but
	// the physical path, which the vector fetch uses, still works
	test.ExpectedSuccess(t, bus.Write32(memorymap.SysRegBase+memorymap.RegMMUCR, memorymap.MMUCRPaging))

	_, err := bus.Read16(memorymap.VecResetEmu)
	test.ExpectedFailure(t, err)

	test.Equate(t, bus.PhysRead16(uint64(memorymap.VecResetEmu)), uint16(0x8000))
}

func TestLoadBinary(t *testing.T) {
	bus := memory.NewBus(0x1000)

	test.ExpectedSuccess(t, bus.LoadBinary(0x100, []byte{1, 2, 3}))
	test.Equate(t, bus.RAM[0x101], uint8(2))

	err := bus.LoadBinary(0xfff, []byte{1, 2, 3})
	test.ExpectedFailure(t, err)
	if !curated.Is(err, memory.Loader) {
		t.Errorf("expected a loader error, got %v", err)
	}
}

func TestLoadHex(t *testing.T) {
	bus := memory.NewBus(0x10000)

	// two data records and an end of file record
	hex := ":03100000010203E7\n:021003000405E2\n:00000001FF\n"
	test.ExpectedSuccess(t, bus.LoadHex(strings.NewReader(hex)))
	test.Equate(t, bus.RAM[0x1000], uint8(1))
	test.Equate(t, bus.RAM[0x1004], uint8(5))

	// bad checksum
	test.ExpectedFailure(t, bus.LoadHex(strings.NewReader(":0310000001020300\n")))
}
