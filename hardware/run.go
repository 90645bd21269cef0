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

// Run the machine until the continueCheck function instructs otherwise or
// the CPU executes STP. continueCheck is called after every instruction; a
// nil continueCheck runs until STP.
//
// A non-nil error is a host problem, not a machine fault. Machine faults
// vector through the exception controller inside Step and never surface
// here.
func (m65 *M65832) Run(continueCheck func() (bool, error)) error {
	if continueCheck == nil {
		continueCheck = func() (bool, error) { return true, nil }
	}

	cont := true
	for cont {
		_, err := m65.CPU.Step()
		if err != nil {
			return err
		}

		if m65.CPU.Halted {
			return nil
		}

		cont, err = continueCheck()
		if err != nil {
			return err
		}
	}

	return nil
}

// RunForCycles runs the machine until at least the stated number of cycles
// have elapsed. Useful for driving the machine in real-time-ish slices.
func (m65 *M65832) RunForCycles(cycles uint64) error {
	limit := m65.CPU.CycleCount + cycles
	return m65.Run(func() (bool, error) {
		return m65.CPU.CycleCount < limit, nil
	})
}
