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

package registers

import "fmt"

// WindowSize is the number of 32-bit registers in the register window.
const WindowSize = 64

// Window is the 64 entry register file aliased onto the direct page when the
// R status flag is set. Direct page offsets address the window as 256 bytes
// of little-endian storage, each group of four bytes being one register.
//
// 16 and 32-bit accesses must be naturally aligned. Misaligned access is not
// defined by the architecture and Read/Write report it so the execution
// engine can raise an alignment fault rather than silently truncate.
type Window [WindowSize]uint32

// Read a value of the given width from the window at a direct page byte
// offset. The second return value is false if the access is misaligned.
func (win *Window) Read(offset uint32, w Width) (uint32, bool) {
	if !aligned(offset, w) {
		return 0, false
	}

	reg := win[(offset>>2)%WindowSize]
	shift := (offset & 3) * 8
	return (reg >> shift) & w.Mask(), true
}

// Write a value of the given width to the window at a direct page byte
// offset. The return value is false if the access is misaligned.
func (win *Window) Write(offset uint32, val uint32, w Width) bool {
	if !aligned(offset, w) {
		return false
	}

	i := (offset >> 2) % WindowSize
	shift := (offset & 3) * 8
	mask := w.Mask() << shift
	win[i] = (win[i] & ^mask) | ((val << shift) & mask)
	return true
}

// Reg returns the full content of a numbered window register.
func (win *Window) Reg(n int) uint32 {
	return win[n%WindowSize]
}

// SetReg replaces the full content of a numbered window register.
func (win *Window) SetReg(n int, val uint32) {
	win[n%WindowSize] = val
}

func (win *Window) String() string {
	return fmt.Sprintf("R0=%08x R1=%08x R2=%08x R3=%08x ...", win[0], win[1], win[2], win[3])
}

func aligned(offset uint32, w Width) bool {
	switch w {
	case Width16:
		return offset&1 == 0
	case Width32:
		return offset&3 == 0
	}
	return true
}
