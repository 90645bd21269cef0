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

package mmu

import (
	"fmt"

	"github.com/benjcooley/m65832-sub002/curated"
	"github.com/benjcooley/m65832-sub002/hardware/memory/memorymap"
)

// PageFault is the error pattern returned by a failed translation. The
// fault detail (virtual address and fault type) is latched in the MMU
// registers, not carried by the error.
const PageFault = "page fault: %08x"

// Access describes the kind of memory access being translated.
type Access int

// The three access kinds.
const (
	Read Access = iota
	Write
	Execute
)

func (a Access) String() string {
	switch a {
	case Write:
		return "write"
	case Execute:
		return "execute"
	}
	return "read"
}

// PageTableMemory is the physical memory interface used by the page table
// walker. Reads and writes are 64-bit and little-endian and never subject
// to translation.
type PageTableMemory interface {
	Read64(addr uint64) uint64
	Write64(addr uint64, val uint64)
}

// tlbEntry tags a cached translation. An entry matches a lookup when the
// VPN is equal and either the entry is global or the ASID tags agree.
type tlbEntry struct {
	valid      bool
	asid       uint8
	vpn        uint32
	ppn        uint64
	pteAddr    uint64
	global     bool
	writable   bool
	user       bool
	executable bool
	dirty      bool
	accessed   bool
}

// NumTLBEntries is the size of the translation cache.
const NumTLBEntries = 16

// MMU is the M65832 address translator.
type MMU struct {
	mem PageTableMemory

	// Ctrl is the MMUCR register. The fault type field is read-only from
	// software, writes through SetCtrl preserve it.
	Ctrl    uint32
	ASID    uint8
	PTBR    uint64
	FaultVA uint32

	tlb  [NumTLBEntries]tlbEntry
	next int
}

// NewMMU is the preferred method of initialisation for the MMU type.
func NewMMU(mem PageTableMemory) *MMU {
	return &MMU{mem: mem}
}

// Reset the MMU to the power-on state. Paging disabled, TLB empty.
func (m *MMU) Reset() {
	m.Ctrl = 0
	m.ASID = 0
	m.PTBR = 0
	m.FaultVA = 0
	m.Flush()
}

// Enabled returns true when paging is turned on.
func (m *MMU) Enabled() bool {
	return m.Ctrl&memorymap.MMUCRPaging != 0
}

// SetCtrl writes the MMUCR register, preserving the hardware-latched fault
// type field.
func (m *MMU) SetCtrl(val uint32) {
	m.Ctrl = (m.Ctrl & memorymap.MMUCRFaultMask) | (val & ^memorymap.MMUCRFaultMask)
}

func (m *MMU) latchFault(va uint32, ftype uint32) error {
	m.FaultVA = va
	m.Ctrl = (m.Ctrl & ^memorymap.MMUCRFaultMask) | (ftype << memorymap.MMUCRFaultShift)
	return curated.Errorf(PageFault, va)
}

// Translate a virtual address to a physical address for the given access
// kind and privilege. On failure the fault information is latched and an
// error with the PageFault pattern returned.
//
// Translation sets the Accessed bit of the backing PTE, and the Dirty bit
// for write accesses, as a side effect.
func (m *MMU) Translate(va uint32, access Access, user bool) (uint64, error) {
	if !m.Enabled() {
		return uint64(va), nil
	}

	// TLB lookup
	if e := m.lookup(va); e != nil {
		if user && !e.user {
			return 0, m.latchFault(va, memorymap.FaultUserSuper)
		}
		if access == Write && !e.writable {
			return 0, m.latchFault(va, memorymap.FaultWriteProtect)
		}
		if access == Execute && !e.executable {
			return 0, m.latchFault(va, memorymap.FaultNoExecute)
		}

		// first write through a clean entry marks the PTE dirty
		if access == Write && !e.dirty {
			e.dirty = true
			m.mem.Write64(e.pteAddr, m.mem.Read64(e.pteAddr)|memorymap.PTEDirty)
		}

		return e.ppn<<memorymap.PageShift | uint64(va&(memorymap.PageSize-1)), nil
	}

	return m.walk(va, access, user)
}

// walk the two-level page table. L1 is indexed by va[31:22], L2 by
// va[21:12]. Each table holds 1024 eight-byte entries.
func (m *MMU) walk(va uint32, access Access, user bool) (uint64, error) {
	l1Addr := m.PTBR + uint64((va>>22)&0x3ff)*8
	l1 := m.mem.Read64(l1Addr)
	if l1&memorymap.PTEPresent == 0 {
		return 0, m.latchFault(va, memorymap.FaultL1NotPresent)
	}

	l2Addr := (l1 & memorymap.PTEPPNMask) + uint64((va>>12)&0x3ff)*8
	l2 := m.mem.Read64(l2Addr)
	if l2&memorymap.PTEPresent == 0 {
		return 0, m.latchFault(va, memorymap.FaultNotPresent)
	}

	if user && l2&memorymap.PTEUser == 0 {
		return 0, m.latchFault(va, memorymap.FaultUserSuper)
	}
	if access == Write && l2&memorymap.PTEWritable == 0 {
		return 0, m.latchFault(va, memorymap.FaultWriteProtect)
	}
	if access == Execute && l2&memorymap.PTENoExec != 0 {
		return 0, m.latchFault(va, memorymap.FaultNoExecute)
	}

	// accessed/dirty side effects
	upd := l2 | memorymap.PTEAccessed
	if access == Write {
		upd |= memorymap.PTEDirty
	}
	if upd != l2 {
		m.mem.Write64(l2Addr, upd)
	}

	ppn := (l2 & memorymap.PTEPPNMask) >> memorymap.PageShift
	m.insert(va, ppn, l2Addr, upd)

	return ppn<<memorymap.PageShift | uint64(va&(memorymap.PageSize-1)), nil
}

func (m *MMU) lookup(va uint32) *tlbEntry {
	vpn := va >> memorymap.PageShift
	for i := range m.tlb {
		e := &m.tlb[i]
		if e.valid && e.vpn == vpn && (e.global || e.asid == m.ASID) {
			return e
		}
	}
	return nil
}

// insert a translation into the TLB. At most one valid entry may exist per
// (asid-or-global, vpn) pair so a matching entry is replaced in place,
// otherwise replacement is round-robin.
func (m *MMU) insert(va uint32, ppn uint64, pteAddr uint64, pte uint64) {
	vpn := va >> memorymap.PageShift

	e := m.lookup(va)
	if e == nil {
		e = &m.tlb[m.next]
		m.next = (m.next + 1) % NumTLBEntries
	}

	*e = tlbEntry{
		valid:      true,
		asid:       m.ASID,
		vpn:        vpn,
		ppn:        ppn,
		pteAddr:    pteAddr,
		global:     pte&memorymap.PTEGlobal != 0,
		writable:   pte&memorymap.PTEWritable != 0,
		user:       pte&memorymap.PTEUser != 0,
		executable: pte&memorymap.PTENoExec == 0,
		dirty:      pte&memorymap.PTEDirty != 0,
		accessed:   pte&memorymap.PTEAccessed != 0,
	}
}

// InvalidateVA removes any TLB entries for the page containing va,
// regardless of ASID.
func (m *MMU) InvalidateVA(va uint32) {
	vpn := va >> memorymap.PageShift
	for i := range m.tlb {
		if m.tlb[i].valid && m.tlb[i].vpn == vpn {
			m.tlb[i].valid = false
		}
	}
}

// InvalidateASID removes all non-global TLB entries tagged with the ASID.
func (m *MMU) InvalidateASID(asid uint8) {
	for i := range m.tlb {
		if m.tlb[i].valid && m.tlb[i].asid == asid && !m.tlb[i].global {
			m.tlb[i].valid = false
		}
	}
}

// Flush removes every TLB entry.
func (m *MMU) Flush() {
	for i := range m.tlb {
		m.tlb[i].valid = false
	}
	m.next = 0
}

// Registers is the architectural register state of the MMU, as visible
// through the system register window. The TLB is a cache and is not part
// of it.
type Registers struct {
	Ctrl    uint32
	ASID    uint8
	PTBR    uint64
	FaultVA uint32
}

// Registers returns a copy of the architectural MMU registers.
func (m *MMU) Registers() Registers {
	return Registers{
		Ctrl:    m.Ctrl,
		ASID:    m.ASID,
		PTBR:    m.PTBR,
		FaultVA: m.FaultVA,
	}
}

// RestoreRegisters loads the architectural MMU registers. The TLB is not
// touched, the caller flushes it separately.
func (m *MMU) RestoreRegisters(r Registers) {
	m.Ctrl = r.Ctrl
	m.ASID = r.ASID
	m.PTBR = r.PTBR
	m.FaultVA = r.FaultVA
}

// PeekTLB returns the cached translation for va, if one exists. No fault
// latching, no side effects. Intended for debugger use and for tests.
func (m *MMU) PeekTLB(va uint32) (uint64, bool) {
	if e := m.lookup(va); e != nil {
		return e.ppn<<memorymap.PageShift | uint64(va&(memorymap.PageSize-1)), true
	}
	return 0, false
}

// PeekWalk performs a page table walk for va without touching the TLB,
// the fault registers or the Accessed/Dirty bits. Intended for debugger
// use and for tests.
func (m *MMU) PeekWalk(va uint32) (uint64, bool) {
	if !m.Enabled() {
		return uint64(va), true
	}

	l1 := m.mem.Read64(m.PTBR + uint64((va>>22)&0x3ff)*8)
	if l1&memorymap.PTEPresent == 0 {
		return 0, false
	}
	l2 := m.mem.Read64((l1 & memorymap.PTEPPNMask) + uint64((va>>12)&0x3ff)*8)
	if l2&memorymap.PTEPresent == 0 {
		return 0, false
	}
	ppn := (l2 & memorymap.PTEPPNMask) >> memorymap.PageShift
	return ppn<<memorymap.PageShift | uint64(va&(memorymap.PageSize-1)), true
}

// String returns a summary of the valid TLB entries.
func (m *MMU) String() string {
	s := fmt.Sprintf("MMUCR=%08x ASID=%02x PTBR=%016x FAULTVA=%08x\n", m.Ctrl, m.ASID, m.PTBR, m.FaultVA)
	for i, e := range m.tlb {
		if !e.valid {
			continue
		}
		flags := ""
		if e.global {
			flags += "g"
		}
		if e.writable {
			flags += "w"
		}
		if e.user {
			flags += "u"
		}
		if e.executable {
			flags += "x"
		}
		if e.dirty {
			flags += "d"
		}
		if e.accessed {
			flags += "a"
		}
		s += fmt.Sprintf("  [%02d] asid=%02x vpn=%05x ppn=%013x %s\n", i, e.asid, e.vpn, e.ppn, flags)
	}
	return s
}
