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

package main

import (
	"fmt"
	"io"

	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/artifact-badging/pdftools/pdfdoc"
	"github.com/artifact-badging/pdftools/validate"
)

func newInfoCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "info FILE...",
		Short: "Show page count, page sizes and PDF/A status",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opt := &pdfdoc.Options{Passwords: a.passwords}
			w := cmd.OutOrStdout()
			var firstErr error
			for _, fname := range args {
				err := showInfo(w, fname, opt, a.logger)
				if err != nil {
					a.logger.Error("cannot read file", zap.String("file", fname), zap.Error(err))
					if firstErr == nil {
						firstErr = err
					}
				}
			}
			return firstErr
		},
	}
}

func showInfo(w io.Writer, fname string, opt *pdfdoc.Options, logger *zap.Logger) error {
	s, err := pdfdoc.Inspect(fname, opt)
	if err != nil {
		return fmt.Errorf("%s: %w", fname, err)
	}

	fmt.Fprintf(w, "%s:\n", fname)
	field := func(name string, value any) {
		fmt.Fprintf(w, "  %-12s %v\n", name+":", value)
	}
	if s.Title != "" {
		field("title", s.Title)
	}
	field("version", "PDF "+s.Version.String())
	field("pages", s.Pages)
	if s.Claim != nil {
		field("conformance", s.Claim)
	} else {
		field("conformance", "none")
	}
	if s.Encrypted {
		field("encrypted", "yes")
		return nil
	}

	dims, err := validate.PageDims(fname)
	if err != nil {
		logger.Debug("page sizes unavailable", zap.String("file", fname), zap.Error(err))
		return nil
	}
	for _, r := range pageRuns(dims) {
		fmt.Fprintf(w, "  %s\n", r)
	}
	return nil
}

type dim struct{ w, h float64 }

type pageRun struct {
	first, last int
	size        dim
}

func (r pageRun) String() string {
	pages := fmt.Sprintf("page %d", r.first)
	if r.last > r.first {
		pages = fmt.Sprintf("pages %d-%d", r.first, r.last)
	}
	return fmt.Sprintf("%-12s %g x %g pt", pages+":", r.size.w, r.size.h)
}

// pageRuns groups consecutive pages of equal size.
func pageRuns(dims []types.Dim) []pageRun {
	var runs []pageRun
	for i, d := range dims {
		size := dim{d.Width, d.Height}
		if n := len(runs); n > 0 && runs[n-1].size == size {
			runs[n-1].last = i + 1
			continue
		}
		runs = append(runs, pageRun{first: i + 1, last: i + 1, size: size})
	}
	return runs
}
