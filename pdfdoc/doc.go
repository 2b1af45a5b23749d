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

// Package pdfdoc opens PDF files for stamping and writes the result.
//
// A [Document] combines the pages of one or more input files.  Content and
// annotations can be added to individual pages; the pages are copied to the
// output file when the document is closed.
//
// In [conformance.PDFA] mode, the inputs must declare PDF/A conformance and
// the output is checked before and after writing.  Problems are reported as
// [*conformance.Error] values, so that callers can fall back to
// [conformance.Plain] mode.
package pdfdoc

import (
	"errors"

	"go.uber.org/zap"
	"golang.org/x/text/language"
)

// Options control how documents are read and written.
// The zero value is ready to use.
type Options struct {
	// Passwords are tried, in order, when an input file is encrypted.
	Passwords []string

	// Prompt, if not nil, is called to ask for a password once all
	// entries of Passwords have been tried.
	Prompt func(fname string) (string, error)

	// Producer is recorded in the XMP metadata of the output.
	Producer string

	// Lang is the document language recorded in the output, if the
	// first input does not specify one.
	Lang language.Tag

	// Verify requests structural validation of output files written in
	// plain mode.  PDF/A output is always validated.
	Verify bool

	// Logger receives progress messages.  If nil, nothing is logged.
	Logger *zap.Logger
}

var (
	// ErrNoPages is returned when an input file has no pages.
	ErrNoPages = errors.New("document has no pages")

	// ErrNoSources is returned by Open when no input file is given.
	ErrNoSources = errors.New("no input files")

	errClosed     = errors.New("document is closed")
	errPageNumber = errors.New("page number out of range")
)
