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

// Package testpdf writes small PDF files for use in tests.
package testpdf

import (
	"bytes"
	_ "embed"
	"fmt"
	"io"
	"os"

	"seehuhn.de/go/icc"
	"seehuhn.de/go/pdf"
	"seehuhn.de/go/pdf/pagetree"
	"seehuhn.de/go/xmp"
)

// Letter is the US letter paper size.
var Letter = pdf.Rectangle{URx: 612, URy: 792}

// Options describes a test document.
type Options struct {
	// Pages is the number of pages.  Zero means one page.
	Pages int

	// Size is the media box of all pages.  The zero value means [Letter].
	Size pdf.Rectangle

	// Version is the PDF version.  Zero means PDF 1.7.
	Version pdf.Version

	// PDFA adds a PDF/A-2b identification and an output intent.
	PDFA bool

	// Intent is the colour space of the output intent profile.
	// Zero means an sRGB profile.
	Intent icc.ColorSpace

	// Title, if set, is stored in the document information dictionary.
	Title string

	// InheritMediaBox places the media box on the page tree root instead
	// of the individual pages.
	InheritMediaBox bool
}

// Create writes a test document to the named file.
func Create(fname string, opt *Options) error {
	buf := &bytes.Buffer{}
	err := Write(buf, opt)
	if err != nil {
		return err
	}
	return os.WriteFile(fname, buf.Bytes(), 0o644)
}

// Write writes a test document to w.
// Page i shows a filled square of i+1 times 10 units.
func Write(w io.Writer, opt *Options) error {
	if opt == nil {
		opt = &Options{}
	}
	numPages := opt.Pages
	if numPages <= 0 {
		numPages = 1
	}
	size := opt.Size
	if size.IsZero() {
		size = Letter
	}
	ver := opt.Version
	if ver == 0 {
		ver = pdf.V1_7
	}

	out, err := pdf.NewWriter(w, ver, nil)
	if err != nil {
		return err
	}
	tree := pagetree.NewWriter(out)

	for i := range numPages {
		contentRef := out.Alloc()
		stm, err := out.OpenStream(contentRef, pdf.Dict{})
		if err != nil {
			return err
		}
		side := float64(10 * (i + 1))
		_, err = fmt.Fprintf(stm, "0 0 1 rg\n100 100 %g %g re\nf\n", side, side)
		if err != nil {
			return err
		}
		err = stm.Close()
		if err != nil {
			return err
		}

		pageDict := pdf.Dict{
			"Type":      pdf.Name("Page"),
			"Contents":  contentRef,
			"Resources": pdf.Dict{},
		}
		if !opt.InheritMediaBox {
			box := size
			pageDict["MediaBox"] = &box
		}
		err = tree.AppendPageRef(out.Alloc(), pageDict)
		if err != nil {
			return err
		}
	}

	treeRef, err := tree.Close()
	if err != nil {
		return err
	}
	if opt.InheritMediaBox {
		// the page tree root is written by now, so we patch it through a
		// fresh root node
		rootRef := out.Alloc()
		box := size
		err = out.Put(rootRef, pdf.Dict{
			"Type":     pdf.Name("Pages"),
			"Kids":     pdf.Array{treeRef},
			"Count":    pdf.Integer(numPages),
			"MediaBox": &box,
		})
		if err != nil {
			return err
		}
		treeRef = rootRef
	}
	meta := out.GetMeta()
	meta.Catalog.Pages = treeRef
	if opt.Title != "" {
		meta.Info = &pdf.Info{Title: pdf.TextString(opt.Title)}
	}

	if opt.PDFA {
		metaRef, err := writePDFAMetadata(out)
		if err != nil {
			return err
		}
		meta.Catalog.Metadata = metaRef

		intent, err := writeOutputIntent(out, opt.Intent)
		if err != nil {
			return err
		}
		meta.Catalog.OutputIntents = pdf.Array{intent}
	}

	return out.Close()
}

type pdfaID struct {
	_           xmp.Namespace `xmp:"http://www.aiim.org/pdfa/ns/id/"`
	_           xmp.Prefix    `xmp:"pdfaid"`
	Part        xmp.Text      `xmp:"part"`
	Conformance xmp.Text      `xmp:"conformance"`
}

func writePDFAMetadata(out *pdf.Writer) (pdf.Reference, error) {
	packet := xmp.NewPacket()
	packet.Set(&pdfaID{
		Part:        xmp.NewText("2"),
		Conformance: xmp.NewText("B"),
	})

	ref := out.Alloc()
	stm, err := out.OpenStream(ref, pdf.Dict{
		"Type":    pdf.Name("Metadata"),
		"Subtype": pdf.Name("XML"),
	})
	if err != nil {
		return 0, err
	}
	err = packet.Write(stm, &xmp.PacketOptions{Pretty: true})
	if err != nil {
		return 0, err
	}
	return ref, stm.Close()
}

// sRGBProfile is the compact sRGB profile from
// https://github.com/saucecontrol/Compact-ICC-Profiles (CC0).
//
//go:embed sRGB-v2-micro.icc
var sRGBProfile []byte

// Profile returns an ICC profile for the given colour space.
// Profiles other than sRGB carry a header only, which is enough for
// checks which look at the profile colour space.
func Profile(space icc.ColorSpace) (data []byte, channels int, err error) {
	switch space {
	case 0, icc.RGBSpace:
		return sRGBProfile, 3, nil
	case icc.GraySpace:
		channels = 1
	case icc.CMYKSpace:
		channels = 4
	default:
		return nil, 0, fmt.Errorf("unsupported output intent space %v", space)
	}
	p := &icc.Profile{
		Version:    icc.Version2_1_0,
		Class:      icc.OutputDeviceProfile,
		ColorSpace: space,
		PCS:        icc.CIELabSpace,
	}
	return p.Encode(), channels, nil
}

func writeOutputIntent(out *pdf.Writer, space icc.ColorSpace) (pdf.Dict, error) {
	profile, channels, err := Profile(space)
	if err != nil {
		return nil, err
	}

	ref := out.Alloc()
	stm, err := out.OpenStream(ref, pdf.Dict{"N": pdf.Integer(channels)}, pdf.FilterCompress{})
	if err != nil {
		return nil, err
	}
	_, err = stm.Write(profile)
	if err != nil {
		return nil, err
	}
	err = stm.Close()
	if err != nil {
		return nil, err
	}

	condition := "sRGB IEC61966-2.1"
	if space != 0 && space != icc.RGBSpace {
		condition = "Custom"
	}
	intent := pdf.Dict{
		"Type":                      pdf.Name("OutputIntent"),
		"S":                         pdf.Name("GTS_PDFA1"),
		"OutputConditionIdentifier": pdf.String(condition),
		"DestOutputProfile":         ref,
	}
	return intent, nil
}
