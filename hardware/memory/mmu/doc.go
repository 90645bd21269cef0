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

// Package mmu implements the M65832 address translator: a 16 entry fully
// associative TLB backed by a two-level page table walker.
//
// Translation only happens when the paging bit of MMUCR is set, otherwise
// virtual addresses map to physical addresses directly. Page table walks
// read physical memory without translation, as does everything else the
// exception machinery touches.
//
// A failed translation latches the faulting virtual address and a fault
// type code into the MMU registers and returns a curated error with the
// PageFault pattern. The execution engine converts that error into a
// vectored exception, it is never propagated to the host.
package mmu
