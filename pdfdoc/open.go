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

package pdfdoc

import (
	"errors"
	"fmt"
	"os"

	"go.uber.org/zap"
	"seehuhn.de/go/icc"
	"seehuhn.de/go/pdf"
	"seehuhn.de/go/pdf/pagetree"
	"seehuhn.de/go/pdf/pdfcopy"

	"github.com/artifact-badging/pdftools/conformance"
)

// Document is a set of input pages on their way to an output file.
type Document struct {
	mode   conformance.Mode
	opt    Options
	logger *zap.Logger

	sources []*source
	pages   []*page
	claim   *conformance.Claim
	intent  icc.ColorSpace

	dst string
	fd  *os.File
	out *pdf.Writer
	rm  *pdf.ResourceManager

	checks     conformance.Checker
	pageLabels pdf.Dict
	saveRef    pdf.Reference
	closed     bool
}

// source is one input file.
type source struct {
	fname  string
	r      *pdf.Reader
	copier *pdfcopy.Copier
}

// page is one page of an input file, together with the additions
// which will be made to it.
type page struct {
	src    *source
	refIn  pdf.Reference
	refOut pdf.Reference
	dict   pdf.Dict

	forms  []pdf.Reference
	annots []pdf.Dict
}

// Open reads the input files srcs and creates the output file dst.
// The pages of all inputs, in order, form the pages of the document.
// The first input provides the document-level information of the output,
// like metadata and outlines.
//
// In [conformance.PDFA] mode, an [*conformance.Error] is returned if the
// inputs do not declare PDF/A conformance.
func Open(srcs []string, dst string, mode conformance.Mode, opt *Options) (*Document, error) {
	if len(srcs) == 0 {
		return nil, ErrNoSources
	}
	if opt == nil {
		opt = &Options{}
	}
	logger := opt.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	d := &Document{
		mode:   mode,
		opt:    *opt,
		logger: logger,
		dst:    dst,
	}

	for _, fname := range srcs {
		err := d.readSource(fname)
		if err != nil {
			d.closeSources()
			return nil, err
		}
	}

	if mode == conformance.PDFA {
		err := d.checkSources()
		if err != nil {
			d.closeSources()
			return nil, err
		}
	}

	err := d.createOutput()
	if err != nil {
		d.closeSources()
		return nil, err
	}

	return d, nil
}

func (d *Document) readSource(fname string) error {
	r, err := pdf.Open(fname, d.opt.readerOptions(fname))
	if err != nil {
		return fmt.Errorf("opening %q: %w", fname, err)
	}
	src := &source{fname: fname, r: r}
	d.sources = append(d.sources, src)

	numPages, err := pagetree.NumPages(r)
	if err != nil {
		return fmt.Errorf("%q: %w", fname, err)
	}
	if numPages == 0 {
		return fmt.Errorf("%q: %w", fname, ErrNoPages)
	}

	for i := range numPages {
		ref, dict, err := pagetree.GetPage(r, i)
		if err != nil {
			return fmt.Errorf("%q: page %d: %w", fname, i+1, err)
		}
		d.pages = append(d.pages, &page{
			src:   src,
			refIn: ref,
			dict:  dict,
		})
	}

	d.logger.Debug("input file loaded",
		zap.String("file", fname),
		zap.Int("pages", numPages),
		zap.Stringer("version", r.GetMeta().Version))
	return nil
}

// checkSources verifies that all inputs can be processed in PDF/A mode.
func (d *Document) checkSources() error {
	c := &conformance.Checker{}
	for _, src := range d.sources {
		if err := conformance.CheckEncryption(src.r); err != nil {
			c.Add("%s: %v", src.fname, err)
		}

		claim, err := conformance.Identify(src.r)
		switch {
		case err != nil:
			c.Add("%s: %v", src.fname, err)
		case claim == nil:
			c.Add("%s does not claim PDF/A conformance", src.fname)
		case claim.Tagged():
			// the logical structure is not carried over to the output
			c.Add("%s: %s requires a structure tree, which cannot be preserved", src.fname, claim)
		case d.claim == nil:
			d.claim = claim
		case claim.Part != d.claim.Part:
			c.Add("%s: %s cannot be merged with %s", src.fname, claim, d.claim)
		}

		intent, err := conformance.CheckOutputIntent(src.r)
		switch {
		case err != nil:
			c.Add("%s: %v", src.fname, err)
		case d.intent == 0:
			d.intent = intent
		case intent != d.intent:
			// only the output intent of the first input is kept
			c.Add("%s: %v output intent cannot be merged with %v", src.fname, intent, d.intent)
		}
	}
	return c.Err(conformance.StageOpen)
}

func (d *Document) createOutput() error {
	// image masks need PDF 1.3, XMP metadata needs PDF 1.4
	ver := pdf.V1_4
	for _, src := range d.sources {
		if v := src.r.GetMeta().Version; v > ver {
			ver = v
		}
	}

	fd, err := os.Create(d.dst)
	if err != nil {
		return err
	}
	out, err := pdf.NewWriter(fd, ver, nil)
	if err != nil {
		fd.Close()
		os.Remove(d.dst)
		return err
	}
	d.fd = fd
	d.out = out
	d.rm = pdf.NewResourceManager(out)

	for _, src := range d.sources {
		src.copier = pdfcopy.NewCopier(out, src.r)
	}
	// Allocate all page references up front, so that links between pages
	// point to the copied pages.
	for _, p := range d.pages {
		p.refOut = out.Alloc()
		if p.refIn != 0 {
			p.src.copier.Redirect(p.refIn, p.refOut)
		}
	}
	return nil
}

// Mode returns the mode the document was opened in.
func (d *Document) Mode() conformance.Mode {
	return d.mode
}

// Claim returns the PDF/A claim of the inputs.
// This is nil in [conformance.Plain] mode.
func (d *Document) Claim() *conformance.Claim {
	return d.claim
}

// OutputIntent returns the colour space of the PDF/A output intent of the
// inputs.  This is zero in [conformance.Plain] mode.
func (d *Document) OutputIntent() icc.ColorSpace {
	return d.intent
}

// NumPages returns the total number of pages.
func (d *Document) NumPages() int {
	return len(d.pages)
}

// Require records a conformance problem found by the caller.
// In [conformance.Plain] mode, the problem is ignored.
// Recorded problems make Close fail with an [*conformance.Error].
func (d *Document) Require(err error) {
	if err == nil || d.mode != conformance.PDFA {
		return
	}
	d.checks.Check(err)
}

// Abort discards the document and removes the partially written output.
func (d *Document) Abort() {
	if d.closed {
		return
	}
	d.closed = true
	d.closeSources()
	d.removeOutput()
}

func (d *Document) removeOutput() {
	if d.fd == nil {
		return
	}
	err := d.fd.Close()
	if err != nil && !errors.Is(err, os.ErrClosed) {
		d.logger.Debug("closing output", zap.Error(err))
	}
	d.fd = nil
	err = os.Remove(d.dst)
	if err != nil && !os.IsNotExist(err) {
		d.logger.Warn("cannot remove partial output", zap.String("file", d.dst), zap.Error(err))
	}
}

func (d *Document) closeSources() {
	for _, src := range d.sources {
		err := src.r.Close()
		if err != nil {
			d.logger.Debug("closing input", zap.String("file", src.fname), zap.Error(err))
		}
	}
	d.sources = nil
}
