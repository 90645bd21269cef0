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
	"sort"
	"strings"
)

// breakpoints is the list of addresses the RUN loop stops at. Breakpoints
// match against the virtual address of the next instruction.
type breakpoints struct {
	dbg   *Debugger
	addrs map[uint32]bool
}

func newBreakpoints(dbg *Debugger) *breakpoints {
	return &breakpoints{
		dbg:   dbg,
		addrs: make(map[uint32]bool),
	}
}

// add a breakpoint. Adding an address a second time removes it, which is
// the least surprising behaviour at the command line.
func (bk *breakpoints) add(addr uint32) {
	if bk.addrs[addr] {
		delete(bk.addrs, addr)
		return
	}
	bk.addrs[addr] = true
}

func (bk *breakpoints) check(pc uint32) bool {
	return bk.addrs[pc]
}

func (bk *breakpoints) clear() {
	bk.addrs = make(map[uint32]bool)
}

func (bk *breakpoints) String() string {
	if len(bk.addrs) == 0 {
		return "no breakpoints"
	}

	list := make([]uint32, 0, len(bk.addrs))
	for a := range bk.addrs {
		list = append(list, a)
	}
	sort.Slice(list, func(i, j int) bool { return list[i] < list[j] })

	s := strings.Builder{}
	s.WriteString("breakpoints:")
	for _, a := range list {
		s.WriteString(fmt.Sprintf(" $%08x", a))
	}
	return s.String()
}
