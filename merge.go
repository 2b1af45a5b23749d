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

package pdftools

import (
	"go.uber.org/zap"

	"github.com/artifact-badging/pdftools/conformance"
	"github.com/artifact-badging/pdftools/pdfdoc"
)

// Merge concatenates the source documents into the destination file.
// The first source provides the document metadata of the result.
//
// The options are not validated; call [MergeOptions.Validate] first.
// If logger is nil, nothing is logged.
func Merge(opts *MergeOptions, logger *zap.Logger) error {
	if logger == nil {
		logger = zap.NewNop()
	}
	if len(opts.Sources) < 2 {
		return ErrTooFewSources
	}

	first := opts.Sources[0]
	return withFallback(logger, first, opts.Dest, opts.ForcePlain, func(mode conformance.Mode) error {
		logger.Debug("merge attempt", zap.Strings("sources", opts.Sources), zap.Stringer("mode", mode))

		doc, err := pdfdoc.Open(opts.Sources, opts.Dest, mode, opts.docOptions(logger))
		if err != nil {
			return err
		}
		err = doc.Close()
		if err != nil {
			return err
		}

		logger.Info("output written",
			zap.String("dest", opts.Dest),
			zap.Int("pages", doc.NumPages()),
			zap.Stringer("mode", mode))
		return nil
	})
}
