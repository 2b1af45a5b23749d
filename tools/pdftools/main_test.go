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
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
	"seehuhn.de/go/pdf"
	"seehuhn.de/go/pdf/pagetree"

	"github.com/artifact-badging/pdftools/internal/testpdf"
)

// run executes the command line args and returns the standard output and
// the log entries.
func run(t *testing.T, args ...string) (string, *observer.ObservedLogs, error) {
	t.Helper()
	core, logs := observer.New(zap.DebugLevel)
	a := &app{logger: zap.New(core), noPrompt: true}

	cmd := newRootCmd(a)
	stdout := &bytes.Buffer{}
	cmd.SetOut(stdout)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), logs, err
}

func createPDF(t *testing.T, dir, name string, pages int) string {
	t.Helper()
	fname := filepath.Join(dir, name)
	require.NoError(t, testpdf.Create(fname, &testpdf.Options{Pages: pages}))
	return fname
}

func numPages(t *testing.T, fname string) int {
	t.Helper()
	r, err := pdf.Open(fname, nil)
	require.NoError(t, err)
	defer r.Close()
	n, err := pagetree.NumPages(r)
	require.NoError(t, err)
	return n
}

func TestOverlayCommand(t *testing.T) {
	dir := t.TempDir()
	src := createPDF(t, dir, "paper.pdf", 3)
	dst := filepath.Join(dir, "out.pdf")

	_, logs, err := run(t, "overlay", "-s", src, "-d", dst, "-p", "188", "--style", "roman")
	require.NoError(t, err)
	assert.Equal(t, 3, numPages(t, dst))
	assert.Equal(t, 1, logs.FilterMessage("no badge").Len())
	assert.Equal(t, 1, logs.FilterMessage("output written").Len())

	// the output exists now
	_, _, err = run(t, "overlay", "-s", src, "-d", dst, "-p", "1")
	assert.Error(t, err)
	_, _, err = run(t, "overlay", "-s", src, "-d", dst, "-p", "1", "--force", "-N")
	assert.NoError(t, err)
}

func TestOverlayCommandErrors(t *testing.T) {
	dir := t.TempDir()
	src := createPDF(t, dir, "paper.pdf", 1)
	dst := filepath.Join(dir, "out.pdf")

	cases := map[string][]string{
		"missing page":  {"overlay", "-s", src, "-d", dst},
		"missing dest":  {"overlay", "-s", src, "-p", "1"},
		"same file":     {"overlay", "-s", src, "-d", src, "-p", "1"},
		"bad style":     {"overlay", "-s", src, "-d", dst, "-p", "1", "--style", "greek"},
		"bad lang":      {"overlay", "-s", src, "-d", dst, "-p", "1", "--lang", "no such language"},
		"missing input": {"overlay", "-s", filepath.Join(dir, "nope.pdf"), "-d", dst, "-p", "1"},
		"bad font size": {"overlay", "-s", src, "-d", dst, "-p", "1", "--font-size", "-3"},
		"extra args":    {"overlay", "-s", src, "-d", dst, "-p", "1", "more.pdf"},
	}
	for name, args := range cases {
		t.Run(name, func(t *testing.T) {
			_, _, err := run(t, args...)
			assert.Error(t, err)
		})
	}
	_, err := os.Stat(dst)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestFlagErrorHint(t *testing.T) {
	_, _, err := run(t, "overlay", "--no-such-flag")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Please read the options carefully!")
}

func TestMergeCommand(t *testing.T) {
	dir := t.TempDir()
	a := createPDF(t, dir, "a.pdf", 1)
	b := createPDF(t, dir, "b.pdf", 2)
	c := createPDF(t, dir, "c.pdf", 3)
	dst := filepath.Join(dir, "merged.pdf")

	_, _, err := run(t, "merge", "-f", a, "-s", b, c, "-d", dst)
	require.NoError(t, err)
	assert.Equal(t, 6, numPages(t, dst))
}

func TestBatchCommand(t *testing.T) {
	dir := t.TempDir()
	createPDF(t, dir, "p1.pdf", 2)
	createPDF(t, dir, "p2.pdf", 2)
	jobFile := filepath.Join(dir, "volume.yaml")
	job := "start: 3\njobs:\n  - source: p1.pdf\n    dest: out/p1.pdf\n  - source: p2.pdf\n    dest: out/p2.pdf\n"
	require.NoError(t, os.WriteFile(jobFile, []byte(job), 0o644))

	_, logs, err := run(t, "batch", jobFile, "-j", "2", "-N")
	require.NoError(t, err)
	assert.Equal(t, 1, logs.FilterMessage("batch finished").Len())
	assert.Equal(t, 2, numPages(t, filepath.Join(dir, "out", "p2.pdf")))
}

func TestInfoCommand(t *testing.T) {
	dir := t.TempDir()
	src := createPDF(t, dir, "paper.pdf", 3)

	out, _, err := run(t, "info", src)
	require.NoError(t, err)
	assert.Contains(t, out, "pages:       3")
	assert.Contains(t, out, "conformance: none")
	assert.Contains(t, out, "pages 1-3:   612 x 792 pt")

	_, _, err = run(t, "info", filepath.Join(dir, "missing.pdf"))
	assert.Error(t, err)
}

func TestVersionCommand(t *testing.T) {
	out, _, err := run(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, toolName)
}
