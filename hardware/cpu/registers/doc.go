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

// Package registers implements the M65832 register file: width-masked 32-bit
// data registers, the 16-bit status word and the 64 entry register window.
//
// Data registers are always stored at full 32-bit precision. The operand
// width active at any moment is a pure function of the status word and is
// applied at the read/write boundary with the Width argument carried by most
// methods. This keeps width-mode transitions safe: narrowing never destroys
// the high bits of a register and widening reveals them again.
package registers
