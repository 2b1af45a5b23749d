// pdftools - stamp page numbers and link badges onto PDF files
// Copyright (C) 2026  The pdftools authors
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

// Package prompt asks the user for passwords of encrypted files.
package prompt

import (
	"errors"
	"fmt"
	"io"
	"os"

	"golang.org/x/term"
)

// ErrNoTerminal is returned when standard input is not a terminal.
var ErrNoTerminal = errors.New("cannot ask for password: stdin is not a terminal")

// Password reads the password for fname from the terminal without echo.
func Password(fname string) (string, error) {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return "", ErrNoTerminal
	}
	return ask(os.Stderr, fname, func() ([]byte, error) {
		return term.ReadPassword(fd)
	})
}

func ask(w io.Writer, fname string, read func() ([]byte, error)) (string, error) {
	fmt.Fprintf(w, "password for %s: ", fname)
	passwd, err := read()
	fmt.Fprintln(w)
	if err != nil {
		return "", err
	}
	return string(passwd), nil
}
