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

// Package validate checks the structure of written PDF files, using an
// independent PDF implementation.
package validate

import (
	"fmt"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"
)

func init() {
	// Do not read or create pdfcpu's configuration directory.
	api.DisableConfigDir()
}

func config(strict bool) *model.Configuration {
	conf := model.NewDefaultConfiguration()
	if strict {
		conf.ValidationMode = model.ValidationStrict
	} else {
		conf.ValidationMode = model.ValidationRelaxed
	}
	return conf
}

// File validates the PDF file fname.
// Strict validation is used for PDF/A output, relaxed validation for
// ordinary PDF files.
func File(fname string, strict bool) error {
	err := api.ValidateFile(fname, config(strict))
	if err != nil {
		return fmt.Errorf("validating %q: %w", fname, err)
	}
	return nil
}

// PageDims returns the size of every page of fname, in PDF units.
func PageDims(fname string) ([]types.Dim, error) {
	dims, err := api.PageDimsFile(fname)
	if err != nil {
		return nil, fmt.Errorf("reading page sizes of %q: %w", fname, err)
	}
	return dims, nil
}

// PageCount returns the number of pages of fname.
func PageCount(fname string) (int, error) {
	n, err := api.PageCountFile(fname)
	if err != nil {
		return 0, fmt.Errorf("counting pages of %q: %w", fname, err)
	}
	return n, nil
}
