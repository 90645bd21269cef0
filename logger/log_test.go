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

package logger_test

import (
	"strings"
	"testing"

	"github.com/benjcooley/m65832-sub002/logger"
	"github.com/benjcooley/m65832-sub002/test"
)

func TestLogger(t *testing.T) {
	logger.Clear()

	s := &strings.Builder{}
	logger.Write(s)
	test.Equate(t, s.Len(), 0)

	logger.Log("test", "this is a test")
	logger.Write(s)
	test.ExpectedSuccess(t, strings.Contains(s.String(), "test: this is a test"))

	// repeated entries are collapsed
	logger.Log("test", "this is a test")
	s.Reset()
	logger.Write(s)
	test.ExpectedSuccess(t, strings.Contains(s.String(), "repeat x2"))
}

func TestTail(t *testing.T) {
	logger.Clear()

	logger.Log("test", "1")
	logger.Log("test", "2")
	logger.Log("test", "3")

	s := &strings.Builder{}
	logger.Tail(s, 2)
	test.ExpectedFailure(t, strings.Contains(s.String(), "test: 1"))
	test.ExpectedSuccess(t, strings.Contains(s.String(), "test: 2"))
	test.ExpectedSuccess(t, strings.Contains(s.String(), "test: 3"))
}
