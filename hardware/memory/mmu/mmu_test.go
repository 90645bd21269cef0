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

package mmu_test

import (
	"testing"

	"github.com/benjcooley/m65832-sub002/curated"
	"github.com/benjcooley/m65832-sub002/hardware/memory/memorymap"
	"github.com/benjcooley/m65832-sub002/hardware/memory/mmu"
	"github.com/benjcooley/m65832-sub002/test"
)

// mockPhys is a sparse 64-bit wide physical memory.
type mockPhys struct {
	mem map[uint64]uint64
}

func newMockPhys() *mockPhys {
	return &mockPhys{mem: make(map[uint64]uint64)}
}

func (m *mockPhys) Read64(addr uint64) uint64 {
	return m.mem[addr]
}

func (m *mockPhys) Write64(addr uint64, val uint64) {
	m.mem[addr] = val
}

const (
	ptbr   = uint64(0x00010000)
	l2base = uint64(0x00020000)
)

// mapPage installs a translation for va with the given L2 flags. the L1
// entry pointing at the L2 table is created as required.
func mapPage(m *mockPhys, va uint32, pa uint64, flags uint64) {
	l1Addr := ptbr + uint64((va>>22)&0x3ff)*8
	m.mem[l1Addr] = l2base | memorymap.PTEPresent
	l2Addr := l2base + uint64((va>>12)&0x3ff)*8
	m.mem[l2Addr] = (pa & memorymap.PTEPPNMask) | flags
}

func newTestMMU(m *mockPhys) *mmu.MMU {
	tr := mmu.NewMMU(m)
	tr.PTBR = ptbr
	tr.SetCtrl(memorymap.MMUCRPaging)
	return tr
}

func TestTranslationDisabled(t *testing.T) {
	tr := mmu.NewMMU(newMockPhys())
	pa, err := tr.Translate(0xdeadbeef, mmu.Read, true)
	test.ExpectedSuccess(t, err)
	test.Equate(t, pa, uint64(0xdeadbeef))
}

func TestWalkAndTLBAgree(t *testing.T) {
	m := newMockPhys()
	tr := newTestMMU(m)
	mapPage(m, 0x00400000, 0x00800000, memorymap.PTEPresent|memorymap.PTEWritable|memorymap.PTEUser)

	pa, err := tr.Translate(0x00400abc, mmu.Read, true)
	test.ExpectedSuccess(t, err)
	test.Equate(t, pa, uint64(0x00800abc))

	// the translation is now cached. the cached result and a fresh walk
	// must agree
	cached, ok := tr.PeekTLB(0x00400abc)
	test.ExpectedSuccess(t, ok)
	walked, ok := tr.PeekWalk(0x00400abc)
	test.ExpectedSuccess(t, ok)
	test.Equate(t, cached, walked)
}

func TestFaultLatching(t *testing.T) {
	m := newMockPhys()
	tr := newTestMMU(m)
	mapPage(m, 0x00400000, 0x00800000, memorymap.PTEPresent)

	// supervisor page accessed from user mode
	_, err := tr.Translate(0x00400010, mmu.Read, true)
	test.ExpectedFailure(t, err)
	if !curated.Is(err, mmu.PageFault) {
		t.Errorf("expected a page fault error, got %v", err)
	}
	test.Equate(t, tr.FaultVA, uint32(0x00400010))
	test.Equate(t, (tr.Ctrl&memorymap.MMUCRFaultMask)>>memorymap.MMUCRFaultShift, memorymap.FaultUserSuper)

	// read-only page written from supervisor mode
	_, err = tr.Translate(0x00400020, mmu.Write, false)
	test.ExpectedFailure(t, err)
	test.Equate(t, (tr.Ctrl&memorymap.MMUCRFaultMask)>>memorymap.MMUCRFaultShift, memorymap.FaultWriteProtect)

	// no-execute page fetched from
	mapPage(m, 0x00401000, 0x00801000, memorymap.PTEPresent|memorymap.PTENoExec)
	_, err = tr.Translate(0x00401000, mmu.Execute, false)
	test.ExpectedFailure(t, err)
	test.Equate(t, (tr.Ctrl&memorymap.MMUCRFaultMask)>>memorymap.MMUCRFaultShift, memorymap.FaultNoExecute)

	// unmapped addresses fault at the level that is missing
	_, err = tr.Translate(0x00402000, mmu.Read, false)
	test.ExpectedFailure(t, err)
	test.Equate(t, (tr.Ctrl&memorymap.MMUCRFaultMask)>>memorymap.MMUCRFaultShift, memorymap.FaultNotPresent)

	_, err = tr.Translate(0x80000000, mmu.Read, false)
	test.ExpectedFailure(t, err)
	test.Equate(t, (tr.Ctrl&memorymap.MMUCRFaultMask)>>memorymap.MMUCRFaultShift, memorymap.FaultL1NotPresent)
}

func TestAccessedAndDirty(t *testing.T) {
	m := newMockPhys()
	tr := newTestMMU(m)
	mapPage(m, 0x00400000, 0x00800000, memorymap.PTEPresent|memorymap.PTEWritable)

	l2Addr := l2base + uint64((0x00400000>>12)&0x3ff)*8

	_, err := tr.Translate(0x00400000, mmu.Read, false)
	test.ExpectedSuccess(t, err)
	test.Equate(t, m.mem[l2Addr]&memorymap.PTEAccessed != 0, true)
	test.Equate(t, m.mem[l2Addr]&memorymap.PTEDirty != 0, false)

	// first write goes through the now cached entry and must still reach
	// the dirty bit in the PTE
	_, err = tr.Translate(0x00400000, mmu.Write, false)
	test.ExpectedSuccess(t, err)
	test.Equate(t, m.mem[l2Addr]&memorymap.PTEDirty != 0, true)
}

func TestASIDTagging(t *testing.T) {
	m := newMockPhys()
	tr := newTestMMU(m)
	mapPage(m, 0x00400000, 0x00800000, memorymap.PTEPresent|memorymap.PTEUser)
	mapPage(m, 0x00401000, 0x00801000, memorymap.PTEPresent|memorymap.PTEGlobal)

	tr.ASID = 1
	_, err := tr.Translate(0x00400000, mmu.Read, true)
	test.ExpectedSuccess(t, err)
	_, err = tr.Translate(0x00401000, mmu.Read, false)
	test.ExpectedSuccess(t, err)

	// the non-global entry is invisible under a different ASID
	tr.ASID = 2
	_, ok := tr.PeekTLB(0x00400000)
	test.ExpectedFailure(t, ok)

	// the global entry is visible under any ASID
	_, ok = tr.PeekTLB(0x00401000)
	test.ExpectedSuccess(t, ok)

	// ASID invalidation leaves global entries alone
	tr.InvalidateASID(1)
	tr.ASID = 1
	_, ok = tr.PeekTLB(0x00400000)
	test.ExpectedFailure(t, ok)
	_, ok = tr.PeekTLB(0x00401000)
	test.ExpectedSuccess(t, ok)
}

func TestInvalidation(t *testing.T) {
	m := newMockPhys()
	tr := newTestMMU(m)
	mapPage(m, 0x00400000, 0x00800000, memorymap.PTEPresent)

	_, err := tr.Translate(0x00400000, mmu.Read, false)
	test.ExpectedSuccess(t, err)
	_, ok := tr.PeekTLB(0x00400000)
	test.ExpectedSuccess(t, ok)

	tr.InvalidateVA(0x00400123)
	_, ok = tr.PeekTLB(0x00400000)
	test.ExpectedFailure(t, ok)

	_, err = tr.Translate(0x00400000, mmu.Read, false)
	test.ExpectedSuccess(t, err)
	tr.Flush()
	_, ok = tr.PeekTLB(0x00400000)
	test.ExpectedFailure(t, ok)
}

func TestPTEUpdateAfterInvalidate(t *testing.T) {
	m := newMockPhys()
	tr := newTestMMU(m)
	mapPage(m, 0x00400000, 0x00800000, memorymap.PTEPresent|memorymap.PTEWritable)

	_, err := tr.Translate(0x00400000, mmu.Read, false)
	test.ExpectedSuccess(t, err)

	// revoke write permission and invalidate. the next write must fault
	// rather than hit the stale cached permission
	l2Addr := l2base + uint64((0x00400000>>12)&0x3ff)*8
	m.mem[l2Addr] &^= memorymap.PTEWritable
	tr.InvalidateVA(0x00400000)

	_, err = tr.Translate(0x00400000, mmu.Write, false)
	test.ExpectedFailure(t, err)
}
