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

// Package pdftools stamps page numbers and clickable badges onto PDF files,
// and merges PDF files.
//
// All operations first try to keep the documents PDF/A conforming.  If an
// input is not PDF/A, or the output could not be kept conforming, the
// operation is restarted once in plain PDF mode.
//
// The package is used by the pdftools command:
//
//	pdftools overlay -s paper.pdf -d stamped.pdf -p 17 -b badge.png
//	pdftools merge -f front.pdf -s paper.pdf -d merged.pdf
package pdftools
