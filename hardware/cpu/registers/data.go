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

// Data is a 32-bit data register. Values are always stored at full
// precision, the Width argument to most methods selects how much of the
// register takes part in the operation. Bits above the active width are
// preserved on writes.
type Data struct {
	label string
	value uint32
}

// NewData creates a new data register with an initial value and a label.
func NewData(val uint32, label string) Data {
	return Data{value: val, label: label}
}

// Label returns the label assigned to the register.
func (r Data) Label() string {
	return r.label
}

func (r Data) String() string {
	return fmt.Sprintf("%s=%08x", r.label, r.value)
}

// Value returns the full 32-bit content of the register.
func (r Data) Value() uint32 {
	return r.value
}

// Masked returns the register content clipped to the width.
func (r Data) Masked(w Width) uint32 {
	return r.value & w.Mask()
}

// Address returns the full register content for use in an address context.
func (r Data) Address() uint32 {
	return r.value
}

// IsNegative checks the sign bit of the active width.
func (r Data) IsNegative(w Width) bool {
	return r.value&w.SignBit() != 0
}

// IsZero checks if the active width of the register is zero.
func (r Data) IsZero(w Width) bool {
	return r.value&w.Mask() == 0
}

// Load a value into the active width of the register. Bits above the width
// are untouched.
func (r *Data) Load(val uint32, w Width) {
	mask := w.Mask()
	r.value = (r.value & ^mask) | (val & mask)
}

// LoadFull replaces the entire 32-bit register content.
func (r *Data) LoadFull(val uint32) {
	r.value = val
}

// Add value to the active width of the register. Returns carry and overflow
// states.
//
// Overflow detection from Ken Shirriff's blog: "The 6502 overflow flag
// explained mathematically", generalised to the active width.
func (r *Data) Add(val uint32, carry bool, w Width) (rcarry bool, overflow bool) {
	mask := w.Mask()
	sign := w.SignBit()

	v := r.value & mask
	val &= mask

	result := uint64(v) + uint64(val)
	if carry {
		result++
	}

	res := uint32(result) & mask
	rcarry = result > uint64(mask)
	overflow = (^(v^val)&(v^res))&sign != 0

	r.value = (r.value & ^mask) | res
	return rcarry, overflow
}

// Subtract value from the active width of the register. Returns carry and
// overflow states. As on the 6502 the carry flag acts as an inverted borrow.
func (r *Data) Subtract(val uint32, carry bool, w Width) (bool, bool) {
	return r.Add(^val, carry, w)
}

// AND value with the active width of the register.
func (r *Data) AND(val uint32, w Width) {
	mask := w.Mask()
	r.value = (r.value & ^mask) | (r.value & val & mask)
}

// ORA ors value with the active width of the register.
func (r *Data) ORA(val uint32, w Width) {
	mask := w.Mask()
	r.value = (r.value & ^mask) | ((r.value | val) & mask)
}

// EOR exclusive-ors value with the active width of the register.
func (r *Data) EOR(val uint32, w Width) {
	mask := w.Mask()
	r.value = (r.value & ^mask) | ((r.value ^ val) & mask)
}

// ASL shifts the active width one bit to the left. Returns the bit shifted
// out, which in a multiply-by-two reading is the carry bit.
func (r *Data) ASL(w Width) bool {
	mask := w.Mask()
	carry := r.value&w.SignBit() != 0
	r.value = (r.value & ^mask) | ((r.value << 1) & mask)
	return carry
}

// LSR shifts the active width one bit to the right. Returns the bit shifted
// out.
func (r *Data) LSR(w Width) bool {
	mask := w.Mask()
	carry := r.value&1 == 1
	r.value = (r.value & ^mask) | ((r.value & mask) >> 1)
	return carry
}

// ROL rotates the active width one bit to the left through the carry.
// Returns the new carry state.
func (r *Data) ROL(carry bool, w Width) bool {
	mask := w.Mask()
	rcarry := r.value&w.SignBit() != 0
	v := (r.value << 1) & mask
	if carry {
		v |= 1
	}
	r.value = (r.value & ^mask) | v
	return rcarry
}

// ROR rotates the active width one bit to the right through the carry.
// Returns the new carry state.
func (r *Data) ROR(carry bool, w Width) bool {
	mask := w.Mask()
	rcarry := r.value&1 == 1
	v := (r.value & mask) >> 1
	if carry {
		v |= w.SignBit()
	}
	r.value = (r.value & ^mask) | v
	return rcarry
}

// Increment the active width of the register.
func (r *Data) Increment(w Width) {
	mask := w.Mask()
	r.value = (r.value & ^mask) | ((r.value + 1) & mask)
}

// Decrement the active width of the register.
func (r *Data) Decrement(w Width) {
	mask := w.Mask()
	r.value = (r.value & ^mask) | ((r.value - 1) & mask)
}
