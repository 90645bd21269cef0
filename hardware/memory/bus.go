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

package memory

import (
	"sync"

	"github.com/benjcooley/m65832-sub002/curated"
	"github.com/benjcooley/m65832-sub002/hardware/cpu/registers"
	"github.com/benjcooley/m65832-sub002/hardware/memory/memorymap"
	"github.com/benjcooley/m65832-sub002/hardware/memory/mmu"
	"github.com/benjcooley/m65832-sub002/hardware/timer"
)

// PrivilegeViolation is the error pattern returned when a user mode access
// touches the system register window. Like the mmu.PageFault pattern it is
// handled by the execution engine, never by the host.
const PrivilegeViolation = "privilege violation: %08x"

// Context is the view of the processor state the bus needs in order to
// dispatch an access: the privilege level and whether the short (16-bit)
// addressing modes are active. Implemented by the CPU.
type Context interface {
	Supervisor() bool
	ShortAddressing() bool
}

// permissiveContext stands in until a CPU is attached.
type permissiveContext struct{}

func (permissiveContext) Supervisor() bool      { return true }
func (permissiveContext) ShortAddressing() bool { return false }

// Region is a memory mapped device window in physical address space.
// Handlers are 8-bit, wider accesses are decomposed by the bus.
type Region struct {
	Base  uint64
	Size  uint64
	Read  func(addr uint64) uint8
	Write func(addr uint64, val uint8)
}

// Bus is the M65832 memory bus.
type Bus struct {
	crit sync.Mutex

	RAM   []uint8
	MMU   *mmu.MMU
	Timer *timer.Timer

	ctx     Context
	regions []Region

	// load-link state for LLI/SCI. the link is keyed on the physical
	// address so a store by any agent, translated or not, breaks it
	llValid bool
	llPhys  uint64
	llWidth registers.Width
}

// NewBus is the preferred method of initialisation for the Bus type.
func NewBus(ramSize uint32) *Bus {
	bus := &Bus{
		RAM:   make([]uint8, ramSize),
		Timer: timer.NewTimer(),
		ctx:   permissiveContext{},
	}
	bus.MMU = mmu.NewMMU(bus)
	return bus
}

// Attach gives the bus its processor context. Must be called before the
// machine runs, accesses before attachment behave as long-mode supervisor
// accesses.
func (bus *Bus) Attach(ctx Context) {
	bus.ctx = ctx
}

// AddRegion registers a memory mapped device window.
func (bus *Bus) AddRegion(r Region) {
	bus.regions = append(bus.regions, r)
}

// Reset the bus peripherals. RAM contents are preserved, matching the
// behaviour of the hardware on a warm reset.
func (bus *Bus) Reset() {
	bus.MMU.Reset()
	bus.Timer.Reset()
	bus.llValid = false
}

// Read64 reads a little-endian 64-bit value from physical RAM. It exists
// for the page table walker and is not synchronised, the walker always
// runs under the bus mutex.
func (bus *Bus) Read64(addr uint64) uint64 {
	var v uint64
	for i := uint64(0); i < 8; i++ {
		v |= uint64(bus.physRead8(addr+i)) << (i * 8)
	}
	return v
}

// Write64 writes a little-endian 64-bit value to physical RAM. See Read64.
func (bus *Bus) Write64(addr uint64, val uint64) {
	for i := uint64(0); i < 8; i++ {
		bus.physWrite8(addr+i, uint8(val>>(i*8)))
	}
}

// physRead8 dispatches a physical read to a device region or to RAM.
// Unmapped addresses read as zero, open bus style.
func (bus *Bus) physRead8(pa uint64) uint8 {
	for i := range bus.regions {
		r := &bus.regions[i]
		if pa >= r.Base && pa < r.Base+r.Size {
			if r.Read != nil {
				return r.Read(pa)
			}
			return 0
		}
	}
	if pa < uint64(len(bus.RAM)) {
		return bus.RAM[pa]
	}
	return 0
}

func (bus *Bus) physWrite8(pa uint64, val uint8) {
	// every store funnels through here, so this is where the load link
	// breaks: exception frame pushes and foreign-agent stores included
	if bus.llValid && pa >= bus.llPhys && pa < bus.llPhys+uint64(bus.llWidth) {
		bus.llValid = false
	}

	for i := range bus.regions {
		r := &bus.regions[i]
		if pa >= r.Base && pa < r.Base+r.Size {
			if r.Write != nil {
				r.Write(pa, val)
			}
			return
		}
	}
	if pa < uint64(len(bus.RAM)) {
		bus.RAM[pa] = val
	}
}

// sysRegOffset returns the offset into the system register window when the
// virtual address hits the window, and whether it did. The window is
// matched on the virtual address, it bypasses translation. The 16-bit
// alias only exists in the short addressing modes.
func (bus *Bus) sysRegOffset(va uint32) (uint32, bool) {
	if memorymap.IsSysReg(va) {
		return va - memorymap.SysRegBase, true
	}
	if bus.ctx.ShortAddressing() && memorymap.IsSysRegAlias(va) {
		return va - memorymap.SysRegAlias, true
	}
	return 0, false
}

// read8 is the unsynchronised virtual read. Exported accessors and the
// atomic operations wrap it with the bus mutex held.
func (bus *Bus) read8(va uint32, access mmu.Access) (uint8, error) {
	if off, ok := bus.sysRegOffset(va); ok {
		if !bus.ctx.Supervisor() {
			return 0, curated.Errorf(PrivilegeViolation, va)
		}
		return bus.sysRead8(off), nil
	}

	pa, err := bus.MMU.Translate(va, access, !bus.ctx.Supervisor())
	if err != nil {
		return 0, err
	}

	return bus.physRead8(pa), nil
}

func (bus *Bus) write8(va uint32, val uint8) error {
	if off, ok := bus.sysRegOffset(va); ok {
		if !bus.ctx.Supervisor() {
			return curated.Errorf(PrivilegeViolation, va)
		}
		bus.sysWrite8(off, val)
		return nil
	}

	pa, err := bus.MMU.Translate(va, mmu.Write, !bus.ctx.Supervisor())
	if err != nil {
		return err
	}

	bus.physWrite8(pa, val)
	return nil
}

func (bus *Bus) readVal(va uint32, w registers.Width, access mmu.Access) (uint32, error) {
	var v uint32
	for i := uint32(0); i < uint32(w); i++ {
		b, err := bus.read8(va+i, access)
		if err != nil {
			return 0, err
		}
		v |= uint32(b) << (i * 8)
	}
	return v, nil
}

func (bus *Bus) writeVal(va uint32, w registers.Width, val uint32) error {
	for i := uint32(0); i < uint32(w); i++ {
		if err := bus.write8(va+i, uint8(val>>(i*8))); err != nil {
			return err
		}
	}
	return nil
}

// Read8 reads a byte from the virtual address.
func (bus *Bus) Read8(va uint32) (uint8, error) {
	bus.crit.Lock()
	defer bus.crit.Unlock()
	return bus.read8(va, mmu.Read)
}

// Read16 reads a little-endian 16-bit value from the virtual address.
func (bus *Bus) Read16(va uint32) (uint16, error) {
	bus.crit.Lock()
	defer bus.crit.Unlock()
	v, err := bus.readVal(va, registers.Width16, mmu.Read)
	return uint16(v), err
}

// Read32 reads a little-endian 32-bit value from the virtual address.
func (bus *Bus) Read32(va uint32) (uint32, error) {
	bus.crit.Lock()
	defer bus.crit.Unlock()
	return bus.readVal(va, registers.Width32, mmu.Read)
}

// ReadVal reads a value of the given width from the virtual address.
func (bus *Bus) ReadVal(va uint32, w registers.Width) (uint32, error) {
	bus.crit.Lock()
	defer bus.crit.Unlock()
	return bus.readVal(va, w, mmu.Read)
}

// Write8 writes a byte to the virtual address.
func (bus *Bus) Write8(va uint32, val uint8) error {
	bus.crit.Lock()
	defer bus.crit.Unlock()
	return bus.write8(va, val)
}

// Write16 writes a little-endian 16-bit value to the virtual address.
func (bus *Bus) Write16(va uint32, val uint16) error {
	bus.crit.Lock()
	defer bus.crit.Unlock()
	return bus.writeVal(va, registers.Width16, uint32(val))
}

// Write32 writes a little-endian 32-bit value to the virtual address.
func (bus *Bus) Write32(va uint32, val uint32) error {
	bus.crit.Lock()
	defer bus.crit.Unlock()
	return bus.writeVal(va, registers.Width32, val)
}

// WriteVal writes a value of the given width to the virtual address.
func (bus *Bus) WriteVal(va uint32, w registers.Width, val uint32) error {
	bus.crit.Lock()
	defer bus.crit.Unlock()
	return bus.writeVal(va, w, val)
}

// Fetch8 reads an instruction byte. Fetches translate with execute
// permission so the no-execute PTE bit is honoured.
func (bus *Bus) Fetch8(va uint32) (uint8, error) {
	bus.crit.Lock()
	defer bus.crit.Unlock()
	return bus.read8(va, mmu.Execute)
}

// Fetch16 reads a little-endian 16-bit instruction operand.
func (bus *Bus) Fetch16(va uint32) (uint16, error) {
	bus.crit.Lock()
	defer bus.crit.Unlock()
	v, err := bus.readVal(va, registers.Width16, mmu.Execute)
	return uint16(v), err
}

// Fetch24 reads a little-endian 24-bit instruction operand.
func (bus *Bus) Fetch24(va uint32) (uint32, error) {
	bus.crit.Lock()
	defer bus.crit.Unlock()
	var v uint32
	for i := uint32(0); i < 3; i++ {
		b, err := bus.read8(va+i, mmu.Execute)
		if err != nil {
			return 0, err
		}
		v |= uint32(b) << (i * 8)
	}
	return v, nil
}

// Fetch32 reads a little-endian 32-bit instruction operand.
func (bus *Bus) Fetch32(va uint32) (uint32, error) {
	bus.crit.Lock()
	defer bus.crit.Unlock()
	return bus.readVal(va, registers.Width32, mmu.Execute)
}

// PhysRead8 reads a byte from the physical address, bypassing translation.
func (bus *Bus) PhysRead8(pa uint64) uint8 {
	bus.crit.Lock()
	defer bus.crit.Unlock()
	return bus.physRead8(pa)
}

// PhysRead16 reads a little-endian 16-bit value from the physical address.
func (bus *Bus) PhysRead16(pa uint64) uint16 {
	bus.crit.Lock()
	defer bus.crit.Unlock()
	return uint16(bus.physRead8(pa)) | uint16(bus.physRead8(pa+1))<<8
}

// PhysRead32 reads a little-endian 32-bit value from the physical address.
func (bus *Bus) PhysRead32(pa uint64) uint32 {
	bus.crit.Lock()
	defer bus.crit.Unlock()
	var v uint32
	for i := uint64(0); i < 4; i++ {
		v |= uint32(bus.physRead8(pa+i)) << (i * 8)
	}
	return v
}

// PhysWrite8 writes a byte to the physical address, bypassing translation.
func (bus *Bus) PhysWrite8(pa uint64, val uint8) {
	bus.crit.Lock()
	defer bus.crit.Unlock()
	bus.physWrite8(pa, val)
}

// PhysWrite16 writes a little-endian 16-bit value to the physical address.
func (bus *Bus) PhysWrite16(pa uint64, val uint16) {
	bus.crit.Lock()
	defer bus.crit.Unlock()
	bus.physWrite8(pa, uint8(val))
	bus.physWrite8(pa+1, uint8(val>>8))
}

// PhysWrite32 writes a little-endian 32-bit value to the physical address.
func (bus *Bus) PhysWrite32(pa uint64, val uint32) {
	bus.crit.Lock()
	defer bus.crit.Unlock()
	for i := uint64(0); i < 4; i++ {
		bus.physWrite8(pa+i, uint8(val>>(i*8)))
	}
}

// CompareAndSwap atomically compares the value at the virtual address with
// expect and, when equal, stores val. The returned values are the memory
// value observed and whether the swap happened.
func (bus *Bus) CompareAndSwap(va uint32, w registers.Width, expect uint32, val uint32) (uint32, bool, error) {
	bus.crit.Lock()
	defer bus.crit.Unlock()

	mem, err := bus.readVal(va, w, mmu.Read)
	if err != nil {
		return 0, false, err
	}

	if mem != expect {
		return mem, false, nil
	}

	if err := bus.writeVal(va, w, val); err != nil {
		return 0, false, err
	}

	return mem, true, nil
}

// LoadLinked reads the value at the virtual address and opens a link to
// the backing physical address. A later StoreConditional succeeds only
// while the link is intact: a store into the linked word by any agent,
// through the translated or the physical path, breaks it. The system
// register window has no physical backing so no link opens there.
func (bus *Bus) LoadLinked(va uint32, w registers.Width) (uint32, error) {
	bus.crit.Lock()
	defer bus.crit.Unlock()

	v, err := bus.readVal(va, w, mmu.Read)
	if err != nil {
		return 0, err
	}

	if _, sys := bus.sysRegOffset(va); !sys {
		pa, err := bus.MMU.Translate(va, mmu.Read, !bus.ctx.Supervisor())
		if err != nil {
			return 0, err
		}
		bus.llValid = true
		bus.llPhys = pa
		bus.llWidth = w
	}

	return v, nil
}

// StoreConditional stores val at the virtual address if the link opened by
// LoadLinked is still intact and names the same physical word. The link is
// consumed either way.
func (bus *Bus) StoreConditional(va uint32, w registers.Width, val uint32) (bool, error) {
	bus.crit.Lock()
	defer bus.crit.Unlock()

	ok := bus.llValid && bus.llWidth == w
	bus.llValid = false

	if ok {
		if _, sys := bus.sysRegOffset(va); sys {
			ok = false
		} else {
			pa, err := bus.MMU.Translate(va, mmu.Write, !bus.ctx.Supervisor())
			if err != nil {
				return false, err
			}
			ok = pa == bus.llPhys
		}
	}

	if !ok {
		return false, nil
	}

	if err := bus.writeVal(va, w, val); err != nil {
		return false, err
	}

	return true, nil
}

// InvalidateLink drops any link opened by LoadLinked. Used when machine
// state is restored wholesale and the linked word can no longer be
// trusted.
func (bus *Bus) InvalidateLink() {
	bus.crit.Lock()
	defer bus.crit.Unlock()
	bus.llValid = false
}

// Fence is a synchronisation point. The bus serialises every access under
// one lock so ordering is already program order; taking the lock is enough
// to make the fence a barrier against concurrently held accesses.
func (bus *Bus) Fence() {
	bus.crit.Lock()
	bus.crit.Unlock() //nolint:staticcheck
}

// Peek reads a byte from the virtual address without any side effects: no
// fault latching, no TLB insertion, no privilege check. Intended for
// debugger use. The second return value is false when the address does not
// currently translate.
func (bus *Bus) Peek(va uint32) (uint8, bool) {
	bus.crit.Lock()
	defer bus.crit.Unlock()

	if off, ok := bus.sysRegOffset(va); ok {
		return bus.sysRead8(off), true
	}

	pa, ok := bus.MMU.PeekTLB(va)
	if !ok {
		pa, ok = bus.MMU.PeekWalk(va)
		if !ok {
			return 0, false
		}
	}

	return bus.physRead8(pa), true
}
