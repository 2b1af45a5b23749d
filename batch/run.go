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
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/artifact-badging/pdftools"
)

// Run stamps all papers of a job, using up to workers goroutines.
// After the first failure, papers which have not been started yet are
// skipped.  If logger is nil, nothing is logged.
func Run(ctx context.Context, job *Job, workers int, logger *zap.Logger) error {
	if logger == nil {
		logger = zap.NewNop()
	}

	tasks, err := Plan(ctx, job, workers, nil)
	if err != nil {
		return err
	}
	if workers < 1 {
		workers = 1
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i := range tasks {
		task := &tasks[i]
		opts := job.Options(task)
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			return runTask(opts, task, logger)
		})
	}
	err = g.Wait()
	if err != nil {
		return err
	}

	logger.Info("batch finished", zap.Int("papers", len(tasks)))
	return nil
}

func runTask(opts *pdftools.OverlayOptions, task *Task, logger *zap.Logger) error {
	err := os.MkdirAll(filepath.Dir(opts.Dest), 0o755)
	if err != nil {
		return err
	}
	err = opts.Validate()
	if err != nil {
		return fmt.Errorf("%s: %w", task.Source, err)
	}

	logger = logger.With(zap.String("paper", filepath.Base(task.Source)))
	if task.First > 0 {
		logger.Debug("stamping",
			zap.Int("first", task.First),
			zap.Int("last", task.First+task.Pages-1))
	}
	err = pdftools.Overlay(opts, logger)
	if err != nil {
		return fmt.Errorf("%s: %w", task.Source, err)
	}
	return nil
}
