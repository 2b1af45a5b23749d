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

package batch

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"seehuhn.de/go/pdf"
	"seehuhn.de/go/pdf/pagetree"

	"github.com/artifact-badging/pdftools"
	"github.com/artifact-badging/pdftools/internal/testpdf"
	"github.com/artifact-badging/pdftools/label"
)

func TestParseDefaults(t *testing.T) {
	data := []byte(`
jobs:
  - source: a.pdf
    dest: out/a.pdf
  - source: /abs/b.pdf
    dest: out/b.pdf
    badge: badge.png
    skip_numbers: true
`)
	job, err := Parse(data, "/vol")
	require.NoError(t, err)

	numbers := pdftools.DefaultPageNumberOptions()
	badge := pdftools.DefaultBadgeOptions()
	assert.Equal(t, numbers.Start, job.Start)
	assert.Equal(t, numbers.FontSize, job.FontSize)
	assert.Equal(t, numbers.Y, job.Y)
	assert.Equal(t, badge.URI, job.Badge.URI)
	assert.Equal(t, badge.Width, job.Badge.Width)
	assert.Equal(t, label.Decimal, job.style)

	require.Len(t, job.Papers, 2)
	assert.Equal(t, filepath.Join("/vol", "a.pdf"), job.Papers[0].Source)
	assert.Equal(t, filepath.Join("/vol", "out", "a.pdf"), job.Papers[0].Dest)
	assert.Empty(t, job.Papers[0].Badge)
	assert.Equal(t, "/abs/b.pdf", job.Papers[1].Source)
	assert.Equal(t, filepath.Join("/vol", "badge.png"), job.Papers[1].Badge)
	assert.True(t, job.Papers[1].SkipNumbers)
}

func TestParseSettings(t *testing.T) {
	data := []byte(`
start: 101
style: roman
prefix: "A-"
font_size: 8
badge:
  uri: https://example.com/badges
  x: 0.5
  width: 36
  height: 36
jobs:
  - source: a.pdf
    dest: b.pdf
`)
	job, err := Parse(data, ".")
	require.NoError(t, err)
	assert.Equal(t, 101, job.Start)
	assert.Equal(t, label.RomanLower, job.style)
	assert.Equal(t, "A-", job.Prefix)
	assert.Equal(t, 8.0, job.FontSize)
	assert.Equal(t, "https://example.com/badges", job.Badge.URI)
	assert.Equal(t, 0.5, job.Badge.XRatio)
	assert.Equal(t, pdftools.DefaultBadgeOptions().YRatio, job.Badge.YRatio)
	assert.Equal(t, 36.0, job.Badge.Width)
}

func TestParseErrors(t *testing.T) {
	cases := map[string]string{
		"empty":         "start: 1\n",
		"unknown field": "colour: red\njobs:\n  - source: a.pdf\n    dest: b.pdf\n",
		"same file":     "jobs:\n  - source: a.pdf\n    dest: a.pdf\n",
		"missing dest":  "jobs:\n  - source: a.pdf\n",
		"bad start":     "start: 0\njobs:\n  - source: a.pdf\n    dest: b.pdf\n",
		"bad style":     "style: greek\njobs:\n  - source: a.pdf\n    dest: b.pdf\n",
		"bad ratio":     "badge:\n  x: 2\njobs:\n  - source: a.pdf\n    dest: b.pdf\n",
		"bad uri":       "badge:\n  uri: nope\njobs:\n  - source: a.pdf\n    dest: b.pdf\n",
	}
	for name, data := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Parse([]byte(data), ".")
			assert.Error(t, err)
		})
	}
}

func TestParseDuplicateDest(t *testing.T) {
	cases := map[string]string{
		"same dest":      "jobs:\n  - source: a.pdf\n    dest: out/x.pdf\n  - source: b.pdf\n    dest: out/x.pdf\n",
		"unclean dest":   "jobs:\n  - source: a.pdf\n    dest: out/x.pdf\n  - source: b.pdf\n    dest: out/../out/x.pdf\n",
		"dest is source": "jobs:\n  - source: a.pdf\n    dest: b.pdf\n  - source: b.pdf\n    dest: c.pdf\n",
	}
	for name, data := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Parse([]byte(data), "/vol")
			assert.ErrorIs(t, err, errDuplicateDst)
		})
	}
}

func TestOptionsSkipNumbers(t *testing.T) {
	job := &Job{Start: 1, FontSize: 10}
	opts := job.Options(&Task{Paper: Paper{Source: "a.pdf", Dest: "b.pdf", SkipNumbers: true}})
	assert.True(t, opts.Numbers.Skip)
	assert.False(t, opts.Numbers.Enabled())

	opts = job.Options(&Task{Paper: Paper{Source: "a.pdf", Dest: "b.pdf"}, First: 3})
	assert.False(t, opts.Numbers.Skip)
	assert.True(t, opts.Numbers.Enabled())
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	fname := filepath.Join(dir, "volume.yaml")
	err := os.WriteFile(fname, []byte("jobs:\n  - source: p.pdf\n    dest: q.pdf\n"), 0o644)
	require.NoError(t, err)

	job, err := Load(fname)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "p.pdf"), job.Papers[0].Source)

	_, err = Load(filepath.Join(dir, "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestPlan(t *testing.T) {
	defer goleak.VerifyNone(t)

	job := &Job{
		Start: 7,
		Papers: []Paper{
			{Source: "a.pdf"},
			{Source: "b.pdf", SkipNumbers: true},
			{Source: "c.pdf"},
			{Source: "d.pdf"},
		},
	}
	pages := map[string]int{"a.pdf": 3, "b.pdf": 2, "c.pdf": 10, "d.pdf": 1}
	count := func(fname string) (int, error) { return pages[fname], nil }

	tasks, err := Plan(context.Background(), job, 3, count)
	require.NoError(t, err)
	require.Len(t, tasks, 4)

	first := make([]int, len(tasks))
	for i, task := range tasks {
		first[i] = task.First
		assert.Equal(t, pages[task.Source], task.Pages)
	}
	assert.Equal(t, []int{7, 0, 12, 22}, first)
}

func TestPlanError(t *testing.T) {
	defer goleak.VerifyNone(t)

	job := &Job{
		Start:  1,
		Papers: []Paper{{Source: "a.pdf"}, {Source: "broken.pdf"}, {Source: "c.pdf"}},
	}
	errBroken := errors.New("broken")
	var calls atomic.Int32
	count := func(fname string) (int, error) {
		calls.Add(1)
		if fname == "broken.pdf" {
			return 0, errBroken
		}
		return 1, nil
	}

	_, err := Plan(context.Background(), job, 1, count)
	assert.ErrorIs(t, err, errBroken)
	assert.LessOrEqual(t, calls.Load(), int32(2))
}

func TestRun(t *testing.T) {
	defer goleak.VerifyNone(t)

	dir := t.TempDir()
	for name, n := range map[string]int{"p1.pdf": 2, "p2.pdf": 3} {
		err := testpdf.Create(filepath.Join(dir, name), &testpdf.Options{Pages: n})
		require.NoError(t, err)
	}
	data := []byte(`
start: 5
jobs:
  - source: p1.pdf
    dest: out/p1.pdf
  - source: p2.pdf
    dest: out/p2.pdf
`)
	job, err := Parse(data, dir)
	require.NoError(t, err)

	err = Run(context.Background(), job, 2, nil)
	require.NoError(t, err)

	wantStart := []int{5, 7}
	wantPages := []int{2, 3}
	for i, name := range []string{"p1.pdf", "p2.pdf"} {
		r, err := pdf.Open(filepath.Join(dir, "out", name), nil)
		require.NoError(t, err)

		n, err := pagetree.NumPages(r)
		assert.NoError(t, err)
		assert.Equal(t, wantPages[i], n)

		labels, err := pdf.GetDict(r, r.GetMeta().Catalog.PageLabels)
		assert.NoError(t, err)
		nums, err := pdf.GetArray(r, labels["Nums"])
		assert.NoError(t, err)
		if assert.Len(t, nums, 2) {
			labelDict, err := pdf.GetDict(r, nums[1])
			assert.NoError(t, err)
			assert.Equal(t, pdf.Integer(wantStart[i]), labelDict["St"])
		}
		r.Close()
	}
}

func TestRunMissingSource(t *testing.T) {
	defer goleak.VerifyNone(t)

	dir := t.TempDir()
	job := &Job{
		Start:    1,
		FontSize: 10,
		Papers:   []Paper{{Source: filepath.Join(dir, "missing.pdf"), Dest: filepath.Join(dir, "out.pdf")}},
		Badge:    BadgeConfig{URI: pdftools.DefaultBadgeOptions().URI, Width: 1, Height: 1},
	}
	err := Run(context.Background(), job, 1, nil)
	assert.Error(t, err)

	_, err = os.Stat(filepath.Join(dir, "out.pdf"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
