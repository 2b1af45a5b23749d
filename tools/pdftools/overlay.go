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

func newOverlayCmd(a *app) *cobra.Command {
	opts := &pdftools.OverlayOptions{
		Badge:   pdftools.DefaultBadgeOptions(),
		Numbers: pdftools.DefaultPageNumberOptions(),
	}
	out := &outputFlags{}

	cmd := &cobra.Command{
		Use:   "overlay -s SOURCE -d DEST -p START",
		Short: "Add page numbers and a badge",
		Long: `Add page numbers to all pages of SOURCE, starting at START, and place
a badge image with a link on the first page.  The result is written to DEST.

A start page below 1 disables the page numbers.  Without -b no badge is added.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !cmd.Flags().Changed("font") {
				opts.Numbers.FontPath = a.cfg.Font
			}
			if !cmd.Flags().Changed("uri") && a.cfg.BadgeURI != "" {
				opts.Badge.URI = a.cfg.BadgeURI
			}
			var err error
			opts.OutputOptions, err = a.outputOptions(out)
			if err != nil {
				return err
			}
			err = opts.Validate()
			if err != nil {
				return err
			}
			return pdftools.Overlay(opts, a.logger)
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&opts.Source, "source", "s", "", "input PDF file")
	flags.StringVarP(&opts.Dest, "dest", "d", "", "output PDF file")
	flags.IntVarP(&opts.Numbers.Start, "page", "p", 0, "number of the first page")
	flags.StringVarP(&opts.Badge.Path, "badge", "b", "", "badge image (PNG, JPEG, GIF, BMP, TIFF or WebP)")
	flags.StringVarP(&opts.Numbers.FontPath, "font", "f", "", "TrueType font for page numbers (default: built-in)")
	flags.StringVar(&opts.Badge.URI, "uri", opts.Badge.URI, "link target of the badge")
	flags.Float64Var(&opts.Numbers.FontSize, "font-size", opts.Numbers.FontSize, "font size of page numbers")
	flags.Float64Var(&opts.Numbers.Y, "y", opts.Numbers.Y, "distance of the page number top from the bottom edge")
	flags.Var(&opts.Numbers.Style, "style", "numbering style: decimal, roman, Roman, alpha or Alpha")
	flags.StringVar(&opts.Numbers.Prefix, "prefix", "", "text placed before every page number")
	flags.Float64Var(&opts.Badge.XRatio, "badge-x", opts.Badge.XRatio, "horizontal badge position, as a fraction of the page width")
	flags.Float64Var(&opts.Badge.YRatio, "badge-y", opts.Badge.YRatio, "vertical badge position, as a fraction of the page height")
	flags.Float64Var(&opts.Badge.Width, "badge-width", opts.Badge.Width, "badge width")
	flags.Float64Var(&opts.Badge.Height, "badge-height", opts.Badge.Height, "badge height")
	out.register(cmd)

	cmd.MarkFlagRequired("source")
	cmd.MarkFlagRequired("dest")
	cmd.MarkFlagRequired("page")
	return cmd
}
