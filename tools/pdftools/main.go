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

// Pdftools stamps page numbers and artifact badges onto PDF files and
// merges PDF files.
//
// Usage:
//
//	pdftools overlay -s paper.pdf -d stamped.pdf -p 17 -b badge.png
//	pdftools merge -f front.pdf -s paper.pdf -d combined.pdf
//	pdftools batch volume.yaml
//	pdftools info paper.pdf
//
// Output files are written as PDF/A if all inputs claim PDF/A conformance.
// Otherwise, and whenever the result would not conform, the tool falls back
// to writing plain PDF.
package main

import (
	"fmt"
	"os"
)

func main() {
	cmd := newRootCmd(&app{})
	err := cmd.Execute()
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
