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
	"errors"
	"os"

	"go.uber.org/zap"

	"github.com/artifact-badging/pdftools/conformance"
)

// attemptFunc runs one attempt of an operation in the given mode.
type attemptFunc func(mode conformance.Mode) error

// withFallback runs an operation in PDF/A mode.  If this fails because of
// a PDF/A problem, the partial output is removed and the operation is run
// once more in plain mode.  If forcePlain is set, only the plain attempt is
// made.
func withFallback(logger *zap.Logger, source, dest string, forcePlain bool, attempt attemptFunc) error {
	mode := conformance.PDFA
	if forcePlain {
		mode = conformance.Plain
	}

	err := attempt(mode)
	var cErr *conformance.Error
	if err == nil || mode == conformance.Plain || !errors.As(err, &cErr) {
		if err != nil {
			logger.Error("giving up", zap.String("dest", dest), zap.Error(err))
		}
		return err
	}

	logger.Info("input is not PDF/A, reverting to simple PDF and restarting",
		zap.String("source", source),
		zap.String("stage", cErr.Stage),
		zap.String("reason", cErr.Reason))
	removeOutput(logger, dest)

	err = attempt(conformance.Plain)
	if err != nil {
		logger.Error("giving up", zap.String("dest", dest), zap.Error(err))
	}
	return err
}

func removeOutput(logger *zap.Logger, fname string) {
	err := os.Remove(fname)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		logger.Warn("cannot remove partial output", zap.String("file", fname), zap.Error(err))
	}
}
