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
	"path/filepath"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/artifact-badging/pdftools/conformance"
)

func observedLogger() (*zap.Logger, *observer.ObservedLogs) {
	core, logs := observer.New(zapcore.DebugLevel)
	return zap.New(core), logs
}

const revertMessage = "input is not PDF/A, reverting to simple PDF and restarting"

func TestFallbackSuccess(t *testing.T) {
	logger, logs := observedLogger()

	var modes []conformance.Mode
	err := withFallback(logger, "in.pdf", "out.pdf", false, func(mode conformance.Mode) error {
		modes = append(modes, mode)
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(modes) != 1 || modes[0] != conformance.PDFA {
		t.Errorf("attempts: %v", modes)
	}
	if logs.FilterMessage(revertMessage).Len() != 0 {
		t.Error("unexpected fallback")
	}
}

func TestFallbackRetry(t *testing.T) {
	for _, stage := range []string{conformance.StageOpen, conformance.StageClose} {
		logger, logs := observedLogger()
		dest := filepath.Join(t.TempDir(), "out.pdf")

		var modes []conformance.Mode
		err := withFallback(logger, "in.pdf", dest, false, func(mode conformance.Mode) error {
			modes = append(modes, mode)
			if mode == conformance.PDFA {
				// leave a partial output behind
				err := os.WriteFile(dest, []byte("%PDF-"), 0o644)
				if err != nil {
					t.Fatal(err)
				}
				return &conformance.Error{Stage: stage, Reason: "no pdfaid"}
			}
			if _, err := os.Stat(dest); err == nil {
				t.Error("partial output not removed before retry")
			}
			return nil
		})
		if err != nil {
			t.Fatal(err)
		}
		want := []conformance.Mode{conformance.PDFA, conformance.Plain}
		if len(modes) != 2 || modes[0] != want[0] || modes[1] != want[1] {
			t.Errorf("%s: attempts %v, want %v", stage, modes, want)
		}
		if logs.FilterMessage(revertMessage).Len() != 1 {
			t.Errorf("%s: fallback not logged", stage)
		}
	}
}

func TestFallbackGivesUp(t *testing.T) {
	logger, logs := observedLogger()

	attempts := 0
	err := withFallback(logger, "in.pdf", "out.pdf", false, func(mode conformance.Mode) error {
		attempts++
		return &conformance.Error{Stage: conformance.StageClose, Reason: "still broken"}
	})
	var cErr *conformance.Error
	if !errors.As(err, &cErr) {
		t.Errorf("got %v, want conformance error", err)
	}
	if attempts != 2 {
		t.Errorf("%d attempts, want 2", attempts)
	}
	if logs.FilterMessage("giving up").Len() != 1 {
		t.Error("giving up not logged")
	}
}

func TestFallbackOtherError(t *testing.T) {
	logger, _ := observedLogger()
	broken := errors.New("disk full")

	attempts := 0
	err := withFallback(logger, "in.pdf", "out.pdf", false, func(mode conformance.Mode) error {
		attempts++
		return broken
	})
	if !errors.Is(err, broken) {
		t.Errorf("got %v, want %v", err, broken)
	}
	if attempts != 1 {
		t.Errorf("%d attempts, want 1", attempts)
	}
}

func TestFallbackForcePlain(t *testing.T) {
	logger, _ := observedLogger()

	var modes []conformance.Mode
	err := withFallback(logger, "in.pdf", "out.pdf", true, func(mode conformance.Mode) error {
		modes = append(modes, mode)
		return &conformance.Error{Stage: conformance.StageOpen, Reason: "ignored"}
	})
	if err == nil {
		t.Error("error swallowed")
	}
	if len(modes) != 1 || modes[0] != conformance.Plain {
		t.Errorf("attempts: %v", modes)
	}
}
