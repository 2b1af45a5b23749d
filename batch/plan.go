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
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/artifact-badging/pdftools"
	"github.com/artifact-badging/pdftools/validate"
)

// Task is the overlay run for one paper.
type Task struct {
	Paper

	// Pages is the number of pages of the paper.
	Pages int

	// First is the page number of the first page, or 0 if the paper gets
	// no page numbers.
	First int
}

// PageCounter returns the number of pages of a PDF file.
type PageCounter func(fname string) (int, error)

// Plan counts the pages of all papers, using up to workers goroutines, and
// assigns the page numbers.  If count is nil, [validate.PageCount] is used.
func Plan(ctx context.Context, job *Job, workers int, count PageCounter) ([]Task, error) {
	if count == nil {
		count = validate.PageCount
	}
	if workers < 1 {
		workers = 1
	}

	tasks := make([]Task, len(job.Papers))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, paper := range job.Papers {
		tasks[i].Paper = paper
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			n, err := count(paper.Source)
			if err != nil {
				return fmt.Errorf("%s: %w", paper.Source, err)
			}
			tasks[i].Pages = n
			return nil
		})
	}
	err := g.Wait()
	if err != nil {
		return nil, err
	}

	next := job.Start
	for i := range tasks {
		if !tasks[i].SkipNumbers {
			tasks[i].First = next
		}
		next += tasks[i].Pages
	}
	return tasks, nil
}

// Options returns the overlay options for a task.
func (job *Job) Options(t *Task) *pdftools.OverlayOptions {
	opts := &pdftools.OverlayOptions{
		Source: t.Source,
		Dest:   t.Dest,
		Badge: pdftools.BadgeOptions{
			Path:   t.Badge,
			URI:    job.Badge.URI,
			XRatio: job.Badge.XRatio,
			YRatio: job.Badge.YRatio,
			Width:  job.Badge.Width,
			Height: job.Badge.Height,
		},
		Numbers: pdftools.PageNumberOptions{
			FontPath: job.Font,
			FontSize: job.FontSize,
			Start:    t.First,
			Y:        job.Y,
			Style:    job.style,
			Prefix:   job.Prefix,
			Skip:     t.SkipNumbers,
		},
	}
	opts.ForcePlain = job.ForcePlain
	opts.Verify = job.Verify
	opts.Force = job.Force
	return opts
}
