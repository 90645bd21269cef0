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

// Package curated is a helper package for the plain Go language error type.
// Curated errors implement the error interface.
//
// Curated errors are created with the Errorf() function. This is similar to
// the Errorf() function in the fmt package. It takes a formatting pattern,
// placeholder values and returns an error.
//
// The Is() function can be used to check whether an error was created with a
// specific pattern. The Has() function is similar but checks if a pattern
// occurs somewhere in the error chain. The IsAny() function answers whether
// the error was created by curated.Errorf() at all.
//
// The Error() function implementation for curated errors ensures that the
// error chain is normalised. Specifically, that the chain does not contain
// duplicate adjacent parts, which alleviates the problem of when and how to
// wrap errors as they move up the call chain.
//
// There is no special provision for sentinal errors in the curated package
// but they are achievable in practice through the use of the Is() and Has()
// functions. Sentinal patterns should be stored as a const string, suitably
// named and commented.
//
// In this project the curated package serves double duty: alongside ordinary
// host-side failures it carries the machine fault conditions (page fault,
// privilege violation, alignment fault) from the memory system up to the
// execution engine, which converts them into vectored exceptions rather than
// propagating them to the caller.
package curated
