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
	"github.com/spf13/cobra"

	"github.com/artifact-badging/pdftools"
)

func newMergeCmd(a *app) *cobra.Command {
	var first, second string
	opts := &pdftools.MergeOptions{}
	out := &outputFlags{}

	cmd := &cobra.Command{
		Use:   "merge -f FIRST -s SECOND [MORE.pdf ...] -d DEST",
		Short: "Merge documents",
		Long: `Concatenate the pages of FIRST, SECOND and any further files given as
arguments, in this order, and write the result to DEST.`,
		RunE: func(_ *cobra.Command, args []string) error {
			opts.Sources = append([]string{first, second}, args...)
			var err error
			opts.OutputOptions, err = a.outputOptions(out)
			if err != nil {
				return err
			}
			err = opts.Validate()
			if err != nil {
				return err
			}
			return pdftools.Merge(opts, a.logger)
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&first, "first", "f", "", "first input PDF file")
	flags.StringVarP(&second, "second", "s", "", "second input PDF file")
	flags.StringVarP(&opts.Dest, "dest", "d", "", "output PDF file")
	out.register(cmd)

	cmd.MarkFlagRequired("first")
	cmd.MarkFlagRequired("second")
	cmd.MarkFlagRequired("dest")
	return cmd
}
