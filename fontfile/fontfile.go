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

// Package fontfile loads the font used for page numbers.
//
// Only fonts with TrueType outlines can be used.  The font is always
// embedded into the output, since PDF/A does not allow references to
// non-embedded fonts.
package fontfile

import (
	"errors"
	"fmt"

	"seehuhn.de/go/pdf/font/gofont"
	"seehuhn.de/go/pdf/font/truetype"
	"seehuhn.de/go/postscript/funit"
	"seehuhn.de/go/sfnt"
	"seehuhn.de/go/sfnt/cmap"
	"seehuhn.de/go/sfnt/glyph"
)

// Font is a font loaded from a file, together with its metrics.
type Font struct {
	info *sfnt.Font
	inst *truetype.Instance
	cmap cmap.Subtable
	name string
}

var errNoGlyf = errors.New("font has no TrueType outlines")

// Load reads a TrueType or OpenType font file.
// If fname is empty, the Go Regular font is used.
func Load(fname string) (*Font, error) {
	if fname == "" {
		inst, err := gofont.Regular.New(nil)
		if err != nil {
			return nil, err
		}
		return newFont(inst.Font, inst, "Go Regular")
	}

	info, err := sfnt.ReadFile(fname)
	if err != nil {
		return nil, fmt.Errorf("font %q: %w", fname, err)
	}
	if !info.IsGlyf() {
		return nil, fmt.Errorf("font %q: %w", fname, errNoGlyf)
	}
	inst, err := truetype.New(info, nil)
	if err != nil {
		return nil, fmt.Errorf("font %q: %w", fname, err)
	}
	return newFont(info, inst, fname)
}

func newFont(info *sfnt.Font, inst *truetype.Instance, name string) (*Font, error) {
	subtable, err := info.CMapTable.GetBest()
	if err != nil {
		return nil, fmt.Errorf("font %q: no usable cmap: %w", name, err)
	}
	return &Font{
		info: info,
		inst: inst,
		cmap: subtable,
		name: name,
	}, nil
}

// Name returns a human readable name for the font.
func (f *Font) Name() string {
	if family := f.info.FamilyName; family != "" {
		return family
	}
	return f.name
}

// Instance returns the font for use with graphics.Writer.TextSetFont.
func (f *Font) Instance() *truetype.Instance {
	return f.inst
}

// Width returns the advance width of s, set at the given font size,
// in PDF text space units.
// Kerning is ignored.
func (f *Font) Width(s string, size float64) float64 {
	var w float64
	for _, r := range s {
		gid := f.cmap.Lookup(r)
		w += f.info.GlyphWidthPDF(gid)
	}
	return w * size / 1000
}

// Ascent returns the distance from the baseline to the top of the glyphs,
// at the given font size.
func (f *Font) Ascent(size float64) float64 {
	return f.toPDF(f.info.Ascent, size)
}

func (f *Font) toPDF(x funit.Int16, size float64) float64 {
	return float64(x) * size / float64(f.info.UnitsPerEm)
}

// MissingGlyphs returns the runes of s which the font cannot display.
func (f *Font) MissingGlyphs(s string) []rune {
	var missing []rune
	seen := make(map[rune]bool)
	for _, r := range s {
		if seen[r] {
			continue
		}
		seen[r] = true
		if f.cmap.Lookup(r) == glyph.ID(0) {
			missing = append(missing, r)
		}
	}
	return missing
}

// Check returns an error if the font cannot display s.
func (f *Font) Check(s string) error {
	missing := f.MissingGlyphs(s)
	if len(missing) > 0 {
		return fmt.Errorf("font %s has no glyphs for %q", f.Name(), string(missing))
	}
	return nil
}
