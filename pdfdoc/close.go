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
	"errors"
	"fmt"
	"maps"
	"os"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/text/language"
	"seehuhn.de/go/pdf"
	"seehuhn.de/go/pdf/pagetree"

	"github.com/artifact-badging/pdftools/conformance"
	"github.com/artifact-badging/pdftools/validate"
)

// Close writes the output file and releases all input files.
//
// In [conformance.PDFA] mode, an [*conformance.Error] is returned if a
// conformance problem was recorded using [Document.Require], or if the
// written file fails strict validation.  In this case, and whenever an
// error is returned, the output file is removed.
func (d *Document) Close() error {
	if d.closed {
		return errClosed
	}

	if err := d.checks.Err(conformance.StageClose); err != nil {
		d.Abort()
		return err
	}

	err := d.write()
	if err != nil {
		d.Abort()
		return fmt.Errorf("writing %q: %w", d.dst, err)
	}
	d.closed = true
	d.closeSources()

	return d.verify()
}

func (d *Document) write() error {
	tree := pagetree.NewWriter(d.out)
	for i, p := range d.pages {
		dict, err := d.pageDict(p)
		if err != nil {
			return fmt.Errorf("page %d: %w", i+1, err)
		}
		err = tree.AppendPageRef(p.refOut, dict)
		if err != nil {
			return fmt.Errorf("page %d: %w", i+1, err)
		}
	}
	treeRef, err := tree.Close()
	if err != nil {
		return err
	}

	err = d.writeCatalog(treeRef)
	if err != nil {
		return err
	}

	err = d.rm.Close()
	if err != nil {
		return err
	}
	err = d.out.Close()
	if err != nil {
		return err
	}
	err = d.fd.Close()
	if err != nil && !errors.Is(err, os.ErrClosed) {
		return err
	}
	d.fd = nil
	return nil
}

// pageDict returns the output version of a page dictionary, with the
// added forms and annotations.
func (d *Document) pageDict(p *page) (pdf.Dict, error) {
	r := p.src.r

	in := maps.Clone(p.dict)
	delete(in, "Parent")

	if len(p.forms) > 0 {
		res, err := pdf.GetDict(r, in["Resources"])
		if err != nil {
			return nil, err
		}
		xObjects, err := pdf.GetDict(r, res["XObject"])
		if err != nil {
			return nil, err
		}
		res = maps.Clone(res)
		if res == nil {
			res = pdf.Dict{}
		}
		xObjects = maps.Clone(xObjects)
		if xObjects == nil {
			xObjects = pdf.Dict{}
		}
		res["XObject"] = xObjects
		in["Resources"] = res

		contents, err := resolveArray(r, in["Contents"])
		if err != nil {
			return nil, err
		}
		if contents != nil {
			in["Contents"] = contents
		}
	}
	if len(p.annots) > 0 {
		annots, err := resolveArray(r, in["Annots"])
		if err != nil {
			return nil, err
		}
		if annots != nil {
			in["Annots"] = annots
		}
	}

	out, err := p.src.copier.CopyDict(in)
	if err != nil {
		return nil, err
	}

	if len(p.forms) > 0 {
		err = d.addForms(out, p.forms)
		if err != nil {
			return nil, err
		}
	}

	if len(p.annots) > 0 {
		annots, _ := out["Annots"].(pdf.Array)
		for _, a := range p.annots {
			a = maps.Clone(a)
			a["P"] = p.refOut
			ref := d.out.Alloc()
			err := d.out.Put(ref, a)
			if err != nil {
				return nil, err
			}
			annots = append(annots, ref)
		}
		out["Annots"] = annots
	}

	return out, nil
}

// resolveArray returns obj as a direct array.  Objects which are not
// arrays are returned unchanged, wrapped into a one-element array.
func resolveArray(r pdf.Getter, obj pdf.Object) (pdf.Array, error) {
	if obj == nil {
		return nil, nil
	}
	resolved, err := pdf.Resolve(r, obj)
	if err != nil {
		return nil, err
	}
	switch x := resolved.(type) {
	case pdf.Array:
		return x, nil
	case nil:
		return nil, nil
	default:
		return pdf.Array{obj}, nil
	}
}

// addForms draws the form XObjects on top of the copied page contents.
// The original contents are enclosed in q/Q, so that changes to the
// graphics state do not affect the added forms.
func (d *Document) addForms(out pdf.Dict, forms []pdf.Reference) error {
	res, _ := out["Resources"].(pdf.Dict)
	xObjects, _ := res["XObject"].(pdf.Dict)
	if res == nil || xObjects == nil {
		return errors.New("missing resource dictionary")
	}

	overlay := &bytes.Buffer{}
	overlay.WriteString("Q\n")
	for _, ref := range forms {
		name := freshName(xObjects)
		xObjects[name] = ref
		err := pdf.Format(overlay, 0, name)
		if err != nil {
			return err
		}
		overlay.WriteString(" Do\n")
	}
	overlayRef, err := d.putStream(overlay.Bytes())
	if err != nil {
		return err
	}

	if d.saveRef == 0 {
		d.saveRef, err = d.putStream([]byte("q\n"))
		if err != nil {
			return err
		}
	}

	contents := pdf.Array{d.saveRef}
	if orig, ok := out["Contents"].(pdf.Array); ok {
		contents = append(contents, orig...)
	}
	contents = append(contents, overlayRef)
	out["Contents"] = contents
	return nil
}

// freshName returns a resource name which is not yet used in dict.
func freshName(dict pdf.Dict) pdf.Name {
	for i := len(dict) + 1; ; i++ {
		name := pdf.Name(fmt.Sprintf("Stamp%d", i))
		if _, used := dict[name]; !used {
			return name
		}
	}
}

func (d *Document) putStream(body []byte) (pdf.Reference, error) {
	ref := d.out.Alloc()
	stm, err := d.out.OpenStream(ref, pdf.Dict{})
	if err != nil {
		return 0, err
	}
	_, err = stm.Write(body)
	if err != nil {
		return 0, err
	}
	return ref, stm.Close()
}

// writeCatalog fills in the document catalog, the information
// dictionary and the file identifier of the output.
func (d *Document) writeCatalog(treeRef pdf.Reference) error {
	first := d.sources[0]
	metaIn := first.r.GetMeta()
	catIn := metaIn.Catalog
	metaOut := d.out.GetMeta()
	catOut := metaOut.Catalog

	catOut.Pages = treeRef

	// Document-level entries are taken from the first input.  Outlines
	// and named destinations only make sense if they refer to pages
	// of the first input, which are all part of the output.
	carry := pdf.Dict{}
	if catIn.Outlines != 0 {
		carry["Outlines"] = catIn.Outlines
	}
	for key, val := range map[pdf.Name]pdf.Object{
		"Names":             catIn.Names,
		"Dests":             catIn.Dests,
		"ViewerPreferences": catIn.ViewerPreferences,
		"OutputIntents":     catIn.OutputIntents,
		"AcroForm":          catIn.AcroForm,
		"OCProperties":      catIn.OCProperties,
	} {
		if val != nil {
			carry[key] = val
		}
	}
	if len(d.sources) == 1 && catIn.PageLabels != nil {
		carry["PageLabels"] = catIn.PageLabels
	}
	carried, err := first.copier.CopyDict(carry)
	if err != nil {
		return err
	}
	if ref, ok := carried["Outlines"].(pdf.Reference); ok {
		catOut.Outlines = ref
	}
	catOut.Names = carried["Names"]
	catOut.Dests = carried["Dests"]
	catOut.ViewerPreferences = carried["ViewerPreferences"]
	catOut.OutputIntents = carried["OutputIntents"]
	catOut.AcroForm = carried["AcroForm"]
	catOut.OCProperties = carried["OCProperties"]
	catOut.PageLabels = carried["PageLabels"]
	catOut.PageMode = catIn.PageMode
	catOut.PageLayout = catIn.PageLayout

	if d.pageLabels != nil {
		catOut.PageLabels = d.pageLabels
	}

	catOut.Lang = catIn.Lang
	if catOut.Lang == language.Und {
		catOut.Lang = d.opt.Lang
	}

	now := time.Now()
	metadataUpdated, err := d.writeMetadata(now)
	if err != nil {
		return err
	}

	if metaIn.Info != nil {
		info := *metaIn.Info
		if metadataUpdated {
			// The information dictionary must agree with the XMP
			// metadata.  Entries updated there are dropped here.
			info.ModDate = pdf.Date{}
			info.Producer = ""
		}
		metaOut.Info = &info
	}

	metaOut.ID = fileID(metaIn.ID)
	return nil
}

// writeMetadata copies the XMP metadata of the first input to the output,
// updated to reflect the modification.
func (d *Document) writeMetadata(now time.Time) (bool, error) {
	packet, err := conformance.ReadMetadata(d.sources[0].r)
	if err != nil {
		if d.mode == conformance.PDFA {
			return false, &conformance.Error{
				Stage:  conformance.StageClose,
				Reason: "XMP metadata: " + err.Error(),
			}
		}
		d.logger.Warn("XMP metadata dropped", zap.Error(err))
		return false, nil
	}
	if packet == nil {
		return false, nil
	}

	if d.mode == conformance.Plain {
		// the output is not checked, so it must not claim PDF/A
		conformance.ClearClaim(packet)
	}
	conformance.UpdateMetadata(packet, d.opt.Producer, now)

	ref := d.out.Alloc()
	stm, err := d.out.OpenStream(ref, pdf.Dict{
		"Type":    pdf.Name("Metadata"),
		"Subtype": pdf.Name("XML"),
	})
	if err != nil {
		return false, err
	}
	err = packet.Write(stm, nil)
	if err != nil {
		return false, err
	}
	err = stm.Close()
	if err != nil {
		return false, err
	}
	d.out.GetMeta().Catalog.Metadata = ref
	return true, nil
}

// fileID returns the file identifier for a modified version of a file.
// The first part of the identifier is kept, the second part is new.
func fileID(orig [][]byte) [][]byte {
	fresh := uuid.New()
	if len(orig) == 2 && len(orig[0]) > 0 {
		return [][]byte{orig[0], fresh[:]}
	}
	return [][]byte{fresh[:], fresh[:]}
}

// verify validates the written file.
func (d *Document) verify() error {
	strict := d.mode == conformance.PDFA
	if !strict && !d.opt.Verify {
		return nil
	}

	err := validate.File(d.dst, strict)
	if err == nil {
		d.logger.Debug("output validated", zap.String("file", d.dst), zap.Bool("strict", strict))
		return nil
	}

	rmErr := os.Remove(d.dst)
	if rmErr != nil {
		d.logger.Warn("cannot remove invalid output", zap.String("file", d.dst), zap.Error(rmErr))
	}
	if strict {
		return &conformance.Error{
			Stage:  conformance.StageClose,
			Reason: err.Error(),
		}
	}
	return err
}
