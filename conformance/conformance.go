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

// Package conformance implements the PDF/A checks used when stamping and
// merging documents.
//
// The checks cover the properties which this tool relies on or could break:
// the PDF/A identification in the XMP metadata, the output intent, the
// absence of encryption and of transparency in added images.  Full
// ISO 19005 validation is not attempted.
package conformance

import (
	"fmt"
	"strings"
)

// Mode selects how strictly documents are treated.
type Mode int

// These are the supported modes.
const (
	// PDFA requires PDF/A input and keeps the output PDF/A conforming.
	PDFA Mode = iota

	// Plain treats all documents as ordinary PDF files.
	Plain
)

func (m Mode) String() string {
	switch m {
	case PDFA:
		return "PDF/A"
	case Plain:
		return "plain PDF"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// Stages at which conformance problems are detected.
const (
	StageOpen  = "open"
	StageClose = "close"
)

// Error is returned when a document cannot be processed in [PDFA] mode.
type Error struct {
	// Stage is either [StageOpen] or [StageClose].
	Stage string

	// Reason describes the violated requirement(s).
	Reason string
}

func (err *Error) Error() string {
	return "PDF/A " + err.Stage + ": " + err.Reason
}

// Checker collects conformance violations.
// The zero value is ready to use.
type Checker struct {
	violations []string
}

// Add records a violation.
func (c *Checker) Add(format string, args ...any) {
	c.violations = append(c.violations, fmt.Sprintf(format, args...))
}

// Check records err as a violation, if it is non-nil.
func (c *Checker) Check(err error) {
	if err != nil {
		c.violations = append(c.violations, err.Error())
	}
}

// Err returns an [*Error] listing all violations, or nil if there are
// none.
func (c *Checker) Err(stage string) error {
	if len(c.violations) == 0 {
		return nil
	}
	return &Error{
		Stage:  stage,
		Reason: strings.Join(c.violations, "; "),
	}
}
