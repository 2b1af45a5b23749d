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

// Package placement computes where the badge and the page numbers go.
//
// All coordinates are in PDF default user space units (1/72 inch), relative
// to the page's media box.
package placement

import (
	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/rect"
)

// Placement describes the position of a badge on a page.
type Placement struct {
	// X and Y give the lower left corner of the badge.
	X, Y float64

	// Matrix maps the unit square, in which image XObjects are drawn,
	// onto the badge area.  This is translate(X, Y)·scale(w, h),
	// i.e. the matrix [w 0 0 h X Y].
	Matrix matrix.Matrix

	// Link is the area covered by the badge, used as the rectangle of
	// the link annotation.
	Link rect.Rect
}

// Badge places a badge of size w×h on a page.  The lower left corner of
// the badge is at the relative position (xRatio, yRatio) of the page.
func Badge(page rect.Rect, xRatio, yRatio, w, h float64) Placement {
	x := page.LLx + (page.URx-page.LLx)*xRatio
	y := page.LLy + (page.URy-page.LLy)*yRatio

	// Scale is applied first, then the translation.
	M := matrix.Scale(w, h).Mul(matrix.Translate(x, y))

	return Placement{
		X:      x,
		Y:      y,
		Matrix: M,
		Link: rect.Rect{
			LLx: x,
			LLy: y,
			URx: x + w,
			URy: y + h,
		},
	}
}

// Label returns the starting point for a page label of the given width.
// The label is centred horizontally on the page, and the top of the glyphs
// is y units above the bottom edge of the page.
func Label(page rect.Rect, y, textWidth, ascent float64) (x, baseline float64) {
	mid := page.LLx + (page.URx-page.LLx)/2
	return mid - textWidth/2, page.LLy + y - ascent
}
