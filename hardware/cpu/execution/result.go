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

package execution

import (
	"fmt"

	"github.com/benjcooley/m65832-sub002/hardware/cpu/instructions"
)

// Result records the execution of a single instruction.
type Result struct {
	// Address is the address the instruction was fetched from.
	Address uint32

	// Defn is the standard page definition of the executed instruction.
	// For the extended page this is the $02 prefix definition and the
	// SubOpCode field holds the extended sub-opcode.
	Defn *instructions.Definition

	// SubOpCode is only meaningful when Extended is true.
	Extended  bool
	SubOpCode uint8

	// Cycles is the cost of the instruction.
	Cycles int
}

func (r Result) String() string {
	if r.Defn == nil {
		return fmt.Sprintf("%08x: ??", r.Address)
	}
	if r.Extended {
		return fmt.Sprintf("%08x: EXT %02x", r.Address, r.SubOpCode)
	}
	return fmt.Sprintf("%08x: %s", r.Address, r.Defn.Mnemonic)
}
