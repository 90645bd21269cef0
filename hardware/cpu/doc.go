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

// Package cpu implements the M65832 execution engine. The package is
// built around the CPU type, which owns the register file and drives the
// memory bus.
//
// The Step function executes one instruction, servicing any pending
// interrupt first. Machine faults raised by the bus (page faults,
// privilege violations) and by the execution engine itself (illegal
// instructions, alignment faults) are not surfaced to the caller, they
// vector through the exception controller exactly as the hardware would.
// A non-nil error from Step is a host level problem.
//
// Width handling follows the W1:W0 model of the status register. The
// register file stores full 32-bit values at all times, the active width
// masks each operation. In emulation mode (W=00) every memory reference
// is relocated by the VBR register and the stack is pinned to page one.
package cpu
