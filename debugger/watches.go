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

package debugger

import (
	"fmt"
	"strings"
)

// watch is a range of virtual addresses whose contents are compared after
// every instruction. There are no write hooks on the bus so a watch is a
// value comparison, it triggers on change rather than on access.
type watch struct {
	addr uint32
	n    uint32
	last []uint8
}

type watches struct {
	dbg  *Debugger
	list []*watch
}

func newWatches(dbg *Debugger) *watches {
	return &watches{dbg: dbg}
}

func (wt *watches) snapshot(w *watch) {
	w.last = w.last[:0]
	for i := uint32(0); i < w.n; i++ {
		v, _ := wt.dbg.m65.Mem.Peek(w.addr + i)
		w.last = append(w.last, v)
	}
}

func (wt *watches) add(addr uint32, n uint32) {
	if n == 0 {
		n = 1
	}
	w := &watch{addr: addr, n: n}
	wt.snapshot(w)
	wt.list = append(wt.list, w)
}

func (wt *watches) clear() {
	wt.list = nil
}

// check compares every watch against memory and returns a description of
// each change. The stored values update so a change reports once.
func (wt *watches) check() []string {
	var hits []string

	for _, w := range wt.list {
		for i := uint32(0); i < w.n; i++ {
			v, _ := wt.dbg.m65.Mem.Peek(w.addr + i)
			if v != w.last[i] {
				hits = append(hits, fmt.Sprintf("watch: $%08x changed $%02x -> $%02x",
					w.addr+i, w.last[i], v))
				w.last[i] = v
			}
		}
	}

	return hits
}

func (wt *watches) String() string {
	if len(wt.list) == 0 {
		return "no watches"
	}

	s := strings.Builder{}
	s.WriteString("watches:")
	for _, w := range wt.list {
		if w.n == 1 {
			s.WriteString(fmt.Sprintf(" $%08x", w.addr))
		} else {
			s.WriteString(fmt.Sprintf(" $%08x+%d", w.addr, w.n))
		}
	}
	return s.String()
}
