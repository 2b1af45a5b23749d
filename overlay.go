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
	"fmt"

	"go.uber.org/zap"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/icc"
	"seehuhn.de/go/pdf"
	"seehuhn.de/go/pdf/graphics"
	"seehuhn.de/go/pdf/graphics/color"

	"github.com/artifact-badging/pdftools/badge"
	"github.com/artifact-badging/pdftools/conformance"
	"github.com/artifact-badging/pdftools/fontfile"
	"github.com/artifact-badging/pdftools/label"
	"github.com/artifact-badging/pdftools/pdfdoc"
	"github.com/artifact-badging/pdftools/placement"
)

// Producer is recorded in the metadata of all written files.
var Producer = "pdftools"

// Document is an opened document, on its way to the output file.
// This is implemented by [*pdfdoc.Document].
type Document interface {
	NumPages() int
	OutputIntent() icc.ColorSpace
	PageSize(i int) (rect.Rect, error)
	AddContent(i int, draw func(*graphics.Writer) error) error
	AddAnnotation(i int, annot pdf.Dict) error
	SetPageLabels(labels pdf.Dict)
	Require(err error)
	Close() error
	Abort()
}

var _ Document = (*pdfdoc.Document)(nil)

func (o *OutputOptions) docOptions(logger *zap.Logger) *pdfdoc.Options {
	return &pdfdoc.Options{
		Passwords: o.Passwords,
		Prompt:    o.Prompt,
		Producer:  Producer,
		Lang:      o.Lang,
		Verify:    o.Verify,
		Logger:    logger,
	}
}

// Overlay stamps the badge and the page numbers described by opts onto
// the source document and writes the result to the destination file.
//
// The options are not validated; call [OverlayOptions.Validate] first.
// If logger is nil, nothing is logged.
func Overlay(opts *OverlayOptions, logger *zap.Logger) error {
	if logger == nil {
		logger = zap.NewNop()
	}

	return withFallback(logger, opts.Source, opts.Dest, opts.ForcePlain, func(mode conformance.Mode) error {
		logger.Debug("overlay attempt", zap.String("source", opts.Source), zap.Stringer("mode", mode))

		doc, err := pdfdoc.Open([]string{opts.Source}, opts.Dest, mode, opts.docOptions(logger))
		if err != nil {
			return err
		}
		err = stamp(doc, opts, logger)
		if err != nil {
			doc.Abort()
			return err
		}
		err = doc.Close()
		if err != nil {
			return err
		}

		logger.Info("output written",
			zap.String("dest", opts.Dest),
			zap.Stringer("mode", mode))
		return nil
	})
}

// stamp adds the badge and the page numbers to doc.
func stamp(doc Document, opts *OverlayOptions, logger *zap.Logger) error {
	if opts.Badge.Path != "" {
		err := addBadge(doc, &opts.Badge)
		if err != nil {
			return err
		}
		logger.Debug("badge added", zap.String("badge", opts.Badge.Path))
	} else {
		logger.Info("no badge", zap.String("source", opts.Source), zap.String("dest", opts.Dest))
	}

	switch {
	case opts.Numbers.Skip:
		logger.Info("no page numbers", zap.String("source", opts.Source))
		return nil
	case !opts.Numbers.Enabled():
		logger.Warn("start page is smaller than 1, no page numbers added",
			zap.Int("start", opts.Numbers.Start))
		return nil
	}
	return addPageNumbers(doc, &opts.Numbers)
}

func addBadge(doc Document, opts *BadgeOptions) error {
	img, err := badge.Load(opts.Path)
	if err != nil {
		return err
	}
	doc.Require(conformance.CheckImage(img.HasAlpha()))
	doc.Require(conformance.CheckDeviceRGB(doc.OutputIntent()))

	page, err := doc.PageSize(0)
	if err != nil {
		return err
	}
	pl := placement.Badge(page, opts.XRatio, opts.YRatio, opts.Width, opts.Height)

	xObj := img.XObject()
	err = doc.AddContent(0, func(w *graphics.Writer) error {
		w.PushGraphicsState()
		w.Transform(pl.Matrix)
		w.DrawXObject(xObj)
		w.PopGraphicsState()
		return nil
	})
	if err != nil {
		return fmt.Errorf("badge: %w", err)
	}

	uri := opts.URI
	if uri == "" {
		uri = badge.DefaultURI
	}
	return doc.AddAnnotation(0, badge.LinkAnnotation(pl.Link, uri))
}

func addPageNumbers(doc Document, opts *PageNumberOptions) error {
	F, err := fontfile.Load(opts.FontPath)
	if err != nil {
		return err
	}
	size := opts.FontSize
	ascent := F.Ascent(size)

	for i := range doc.NumPages() {
		text, err := label.Format(opts.Start+i, opts.Style)
		if err != nil {
			return fmt.Errorf("page %d: %w", i+1, err)
		}
		text = opts.Prefix + text
		err = F.Check(text)
		if err != nil {
			return err
		}

		page, err := doc.PageSize(i)
		if err != nil {
			return err
		}
		x, y := placement.Label(page, opts.Y, F.Width(text, size), ascent)

		err = doc.AddContent(i, func(w *graphics.Writer) error {
			w.SetFillColor(color.DeviceGray(0))
			w.TextBegin()
			w.TextSetFont(F.Instance(), size)
			w.TextFirstLine(x, y)
			w.TextShow(text)
			w.TextEnd()
			return nil
		})
		if err != nil {
			return fmt.Errorf("page %d: %w", i+1, err)
		}
	}

	doc.SetPageLabels(label.PageLabels(opts.Start, opts.Style, opts.Prefix))
	return nil
}
