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

package hardware

// History is a bounded stack of machine snapshots. The debugger records a
// snapshot before every resumption so the machine can be stepped back.
type History struct {
	m65 *M65832

	entries []*Snapshot
	max     int
}

// NewHistory is the preferred method of initialisation for the History
// type. A max of zero or less selects a default depth.
func NewHistory(m65 *M65832, max int) *History {
	if max <= 0 {
		max = 32
	}
	return &History{
		m65: m65,
		max: max,
	}
}

// Record the current machine state. The oldest entry is discarded once the
// history is at depth.
func (h *History) Record() {
	h.entries = append(h.entries, h.m65.Snapshot())
	if len(h.entries) > h.max {
		copy(h.entries, h.entries[1:])
		h.entries = h.entries[:h.max]
	}
}

// StepBack restores the most recent snapshot. Returns false when the
// history is empty.
func (h *History) StepBack() bool {
	if len(h.entries) == 0 {
		return false
	}
	sn := h.entries[len(h.entries)-1]
	h.entries = h.entries[:len(h.entries)-1]
	h.m65.Restore(sn)
	return true
}

// Depth returns the number of recorded snapshots.
func (h *History) Depth() int {
	return len(h.entries)
}
