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

import (
	"github.com/benjcooley/m65832-sub002/hardware/cpu/execution"
)

// Step the machine by one instruction (or one interrupt service, if a line
// is pending). The returned Result describes what was executed.
func (m65 *M65832) Step() (execution.Result, error) {
	_, err := m65.CPU.Step()
	return m65.CPU.LastResult, err
}
