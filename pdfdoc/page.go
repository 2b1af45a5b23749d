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
	"bytes"
	"fmt"

	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/pdf"
	"seehuhn.de/go/pdf/graphics"
)

// letter is used for pages without a valid media box.
var letter = rect.Rect{URx: 612, URy: 792}

func (d *Document) getPage(i int) (*page, error) {
	if d.closed {
		return nil, errClosed
	}
	if i < 0 || i >= len(d.pages) {
		return nil, fmt.Errorf("page %d: %w", i+1, errPageNumber)
	}
	return d.pages[i], nil
}

// PageSize returns the media box of page i.
// Pages are numbered starting from 0.
func (d *Document) PageSize(i int) (rect.Rect, error) {
	p, err := d.getPage(i)
	if err != nil {
		return rect.Rect{}, err
	}

	box, err := pdf.GetRectangle(p.src.r, p.dict["MediaBox"])
	if err != nil {
		return rect.Rect{}, fmt.Errorf("page %d: %w", i+1, err)
	}
	if box == nil || box.URx <= box.LLx || box.URy <= box.LLy {
		return letter, nil
	}
	return rect.Rect{LLx: box.LLx, LLy: box.LLy, URx: box.URx, URy: box.URy}, nil
}

// AddContent draws additional content on top of page i.
//
// The content is written as a form XObject, with its own resource
// dictionary, so that the resources of the page are not affected.
// The graphics state is restored before the new content is drawn.
func (d *Document) AddContent(i int, draw func(*graphics.Writer) error) error {
	p, err := d.getPage(i)
	if err != nil {
		return err
	}
	bbox, err := d.PageSize(i)
	if err != nil {
		return err
	}

	buf := &bytes.Buffer{}
	w := graphics.NewWriter(buf, d.rm)
	err = draw(w)
	if err != nil {
		return err
	}
	if w.Err != nil {
		return w.Err
	}

	ref := d.out.Alloc()
	dict := pdf.Dict{
		"Type":    pdf.Name("XObject"),
		"Subtype": pdf.Name("Form"),
		"BBox": &pdf.Rectangle{
			LLx: bbox.LLx,
			LLy: bbox.LLy,
			URx: bbox.URx,
			URy: bbox.URy,
		},
	}
	if res := pdf.AsDict(w.Resources); len(res) > 0 {
		dict["Resources"] = res
	}
	stm, err := d.out.OpenStream(ref, dict, pdf.FilterCompress{})
	if err != nil {
		return err
	}
	_, err = stm.Write(buf.Bytes())
	if err != nil {
		return err
	}
	err = stm.Close()
	if err != nil {
		return err
	}

	p.forms = append(p.forms, ref)
	return nil
}

// AddAnnotation adds an annotation to page i.
// The /P entry of the annotation is filled in automatically.
func (d *Document) AddAnnotation(i int, annot pdf.Dict) error {
	p, err := d.getPage(i)
	if err != nil {
		return err
	}
	p.annots = append(p.annots, annot)
	return nil
}

// SetPageLabels sets the /PageLabels number tree of the output.
func (d *Document) SetPageLabels(labels pdf.Dict) {
	d.pageLabels = labels
}
