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

package pdfdoc

import (
	"fmt"

	"seehuhn.de/go/pdf"
	"seehuhn.de/go/pdf/pagetree"

	"github.com/artifact-badging/pdftools/conformance"
)

// Summary describes an input file.
type Summary struct {
	Version   pdf.Version
	Pages     int
	Encrypted bool

	// Claim is the PDF/A claim from the XMP metadata, or nil.
	Claim *conformance.Claim

	// Title is taken from the document information dictionary.
	Title string
}

// Inspect reads the basic properties of a PDF file.
func Inspect(fname string, opt *Options) (*Summary, error) {
	if opt == nil {
		opt = &Options{}
	}
	r, err := pdf.Open(fname, opt.readerOptions(fname))
	if err != nil {
		return nil, err
	}
	defer r.Close()

	meta := r.GetMeta()
	s := &Summary{
		Version:   meta.Version,
		Encrypted: meta.Trailer["Encrypt"] != nil,
	}
	s.Pages, err = pagetree.NumPages(r)
	if err != nil {
		return nil, fmt.Errorf("page tree: %w", err)
	}

	// Damaged metadata does not prevent the other fields from being
	// reported.
	s.Claim, _ = conformance.Identify(r)

	if meta.Info != nil {
		s.Title = string(meta.Info.Title)
	}
	return s, nil
}
