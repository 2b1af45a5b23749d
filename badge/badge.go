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

// Package badge loads badge images and builds the link annotation which
// makes a badge clickable.
package badge

import (
	"errors"
	"fmt"
	"image"
	gocolor "image/color"
	_ "image/gif"  // register GIF decoder
	_ "image/jpeg" // register JPEG decoder
	_ "image/png"  // register PNG decoder
	"os"

	_ "golang.org/x/image/bmp"  // register BMP decoder
	_ "golang.org/x/image/tiff" // register TIFF decoder
	_ "golang.org/x/image/webp" // register WebP decoder

	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/pdf"
	"seehuhn.de/go/pdf/graphics"
	"seehuhn.de/go/pdf/graphics/color"
	pdfimage "seehuhn.de/go/pdf/graphics/image"
)

// DefaultURI is the link target used when no other URI is configured.
const DefaultURI = "https://www.acm.org/publications/policies/artifact-review-and-badging-current"

var errEmptyImage = errors.New("badge image is empty")

// Image is a decoded badge image.
type Image struct {
	img    image.Image
	format string
}

// Load reads a badge image from a file.
// PNG, JPEG, GIF, BMP, TIFF and WebP files are supported.
func Load(fname string) (*Image, error) {
	fd, err := os.Open(fname)
	if err != nil {
		return nil, err
	}
	defer fd.Close()

	img, format, err := image.Decode(fd)
	if err != nil {
		return nil, fmt.Errorf("badge %q: %w", fname, err)
	}
	return New(img, format)
}

// New wraps an already decoded image.
func New(img image.Image, format string) (*Image, error) {
	b := img.Bounds()
	if b.Dx() <= 0 || b.Dy() <= 0 {
		return nil, errEmptyImage
	}
	return &Image{img: img, format: format}, nil
}

// HasAlpha reports whether any pixel of the image is not fully opaque.
func (b *Image) HasAlpha() bool {
	switch b.img.ColorModel() {
	case gocolor.GrayModel, gocolor.Gray16Model, gocolor.CMYKModel, gocolor.YCbCrModel:
		return false
	case gocolor.AlphaModel, gocolor.Alpha16Model:
		return true
	}

	bounds := b.img.Bounds()
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			_, _, _, a := b.img.At(x, y).RGBA()
			if a != 0xffff {
				return true
			}
		}
	}
	return false
}

// XObject returns the image as a DeviceRGB image XObject, drawn into the
// unit square.  Transparent images get a stencil mask derived from the alpha
// channel.
func (b *Image) XObject() graphics.XObject {
	if b.HasAlpha() {
		return pdfimage.FromImageWithMask(b.img, b.img, color.DeviceRGBSpace, 8)
	}
	return pdfimage.FromImage(b.img, color.DeviceRGBSpace, 8)
}

// Annotation flags, see section 12.5.3 of ISO 32000-2:2020.
const (
	flagPrint = 1 << 2
)

// LinkAnnotation returns a link annotation for the rectangle r which opens
// uri when clicked.  The annotation has no visible border, is printed
// and outlines its area while the mouse button is pressed.
func LinkAnnotation(r rect.Rect, uri string) pdf.Dict {
	return pdf.Dict{
		"Type":    pdf.Name("Annot"),
		"Subtype": pdf.Name("Link"),
		"Rect": &pdf.Rectangle{
			LLx: r.LLx,
			LLy: r.LLy,
			URx: r.URx,
			URy: r.URy,
		},
		"Border": pdf.Array{pdf.Integer(0), pdf.Integer(0), pdf.Integer(0)},
		"F":      pdf.Integer(flagPrint),
		"H":      pdf.Name("O"),
		"A": pdf.Dict{
			"S":   pdf.Name("URI"),
			"URI": pdf.String(uri),
		},
	}
}
