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
	"context"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/artifact-badging/pdftools/batch"
)

func newBatchCmd(a *app) *cobra.Command {
	var workers int
	var forcePlain, force bool

	cmd := &cobra.Command{
		Use:   "batch JOBFILE",
		Short: "Stamp all papers of a proceedings volume",
		Long: `Read a YAML job file listing the papers of a volume and stamp them with
consecutive page numbers.  Up to WORKERS papers are processed at the same
time.  The default can be set with the PDFTOOLS_WORKERS environment
variable.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			job, err := batch.Load(args[0])
			if err != nil {
				return err
			}
			if forcePlain {
				job.ForcePlain = true
			}
			if force {
				job.Force = true
			}
			if !cmd.Flags().Changed("jobs") {
				workers = a.cfg.Workers
			}

			ctx, cancel := signal.NotifyContext(cmdContext(cmd), os.Interrupt)
			defer cancel()
			return batch.Run(ctx, job, workers, a.logger)
		},
	}

	flags := cmd.Flags()
	flags.IntVarP(&workers, "jobs", "j", 4, "number of papers processed concurrently")
	flags.BoolVarP(&forcePlain, "force-not-PdfA", "N", false, "write plain PDF without trying PDF/A first")
	flags.BoolVar(&force, "force", false, "overwrite existing output files")
	return cmd
}

func cmdContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
