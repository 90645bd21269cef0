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

package disassembly

import (
	"fmt"
	"io"
	"strings"

	"github.com/benjcooley/m65832-sub002/curated"
	"github.com/benjcooley/m65832-sub002/hardware/cpu/registers"
)

// Sentinel errors from the disassembly package.
const (
	// the address does not translate so there is nothing to decode
	UnmappedAddress = "disassembly: address %08x does not translate"
)

// Peeker is any source of side-effect free memory reads. The memory bus
// satisfies it.
type Peeker interface {
	Peek(va uint32) (uint8, bool)
}

// Entry is a single decoded instruction.
type Entry struct {
	Address uint32
	Bytes   []uint8

	Operator string
	Operand  string

	// Next is the address of the following instruction.
	Next uint32
}

// String returns the Entry in the standard listing format.
func (e Entry) String() string {
	b := strings.Builder{}
	for _, v := range e.Bytes {
		b.WriteString(fmt.Sprintf("%02x ", v))
	}
	return fmt.Sprintf("$%08x  %-15s %s %s", e.Address, b.String(), e.Operator, e.Operand)
}

// Decode a single instruction. The status value supplies the width flags
// that govern immediate operand sizes.
func Decode(mem Peeker, addr uint32, status registers.Status) (Entry, error) {
	d := decoder{mem: mem, status: status, addr: addr, next: addr}

	opcode, err := d.fetch()
	if err != nil {
		return Entry{}, err
	}

	e, err := d.instruction(opcode)
	if err != nil {
		return Entry{}, err
	}

	e.Address = addr
	e.Bytes = d.bytes
	e.Next = d.next
	return e, nil
}

// Block decodes n instructions starting at addr, writing the listing to
// output. Decoding stops early at an unmapped address, which is not an
// error: a listing that runs off the end of mapped memory is still a
// listing.
func Block(output io.Writer, mem Peeker, addr uint32, n int, status registers.Status) error {
	for i := 0; i < n; i++ {
		e, err := Decode(mem, addr, status)
		if err != nil {
			if curated.Is(err, UnmappedAddress) {
				return nil
			}
			return err
		}
		if _, err := fmt.Fprintln(output, e.String()); err != nil {
			return err
		}
		addr = e.Next
	}
	return nil
}
