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

package conformance

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"seehuhn.de/go/icc"
	"seehuhn.de/go/pdf"
	"seehuhn.de/go/xmp"
)

// pdfaID is the PDF/A identification schema of ISO 19005.
type pdfaID struct {
	_           xmp.Namespace `xmp:"http://www.aiim.org/pdfa/ns/id/"`
	_           xmp.Prefix    `xmp:"pdfaid"`
	Part        xmp.Text      `xmp:"part"`
	Conformance xmp.Text      `xmp:"conformance"`
}

// Claim is the PDF/A version a document declares to conform to.
type Claim struct {
	Part        int    // 1, 2, 3 or 4
	Conformance string // "A", "B", "U", "E", "F" or empty
}

func (c *Claim) String() string {
	return fmt.Sprintf("PDF/A-%d%s", c.Part, strings.ToLower(c.Conformance))
}

// Tagged reports whether the claim requires a logical structure tree.
func (c *Claim) Tagged() bool {
	return c.Conformance == "A"
}

var (
	errNoOutputIntent = errors.New("no PDF/A output intent")
	errEncrypted      = errors.New("document is encrypted")
	errTransparency   = errors.New("image transparency is not allowed")
)

// ReadMetadata reads the XMP metadata stream of the document catalog.
// If the document has no metadata stream, nil is returned.
func ReadMetadata(r pdf.Getter) (*xmp.Packet, error) {
	ref := r.GetMeta().Catalog.Metadata
	if ref == 0 {
		return nil, nil
	}

	stm, err := pdf.GetStream(r, ref)
	if err != nil {
		return nil, err
	} else if stm == nil {
		return nil, nil
	}
	body, err := pdf.DecodeStream(r, stm, 0)
	if err != nil {
		return nil, err
	}
	return xmp.Read(body)
}

// Identify returns the PDF/A claim of a document.
// If the document does not claim PDF/A conformance, nil is returned.
func Identify(r pdf.Getter) (*Claim, error) {
	packet, err := ReadMetadata(r)
	if err != nil {
		return nil, fmt.Errorf("XMP metadata: %w", err)
	}
	return ClaimFromPacket(packet)
}

// ClaimFromPacket extracts the PDF/A claim from an XMP packet.
// If the packet does not contain a claim, nil is returned.
func ClaimFromPacket(packet *xmp.Packet) (*Claim, error) {
	if packet == nil {
		return nil, nil
	}

	id := &pdfaID{}
	packet.Get(id)

	part := strings.TrimSpace(id.Part.V)
	if part == "" {
		return nil, nil
	}
	n, err := strconv.Atoi(part)
	if err != nil || n < 1 {
		return nil, fmt.Errorf("invalid pdfaid:part %q", part)
	}

	return &Claim{
		Part:        n,
		Conformance: strings.ToUpper(strings.TrimSpace(id.Conformance.V)),
	}, nil
}

// pdfaIDNamespace is the namespace of the PDF/A identification schema.
const pdfaIDNamespace = "http://www.aiim.org/pdfa/ns/id/"

// ClearClaim removes the PDF/A identification from an XMP packet.
func ClearClaim(packet *xmp.Packet) {
	for _, name := range []string{"part", "conformance", "amd", "corr", "rev"} {
		packet.ClearValue(pdfaIDNamespace, name)
	}
}

// CheckOutputIntent verifies that the document catalog has a PDF/A output
// intent, with a destination profile for a gray, RGB or CMYK device.
// The colour space of the profile is returned.
func CheckOutputIntent(r pdf.Getter) (icc.ColorSpace, error) {
	intents, err := pdf.GetArray(r, r.GetMeta().Catalog.OutputIntents)
	if err != nil {
		return 0, fmt.Errorf("output intents: %w", err)
	}

	for _, obj := range intents {
		intent, err := pdf.GetDict(r, obj)
		if err != nil {
			return 0, fmt.Errorf("output intent: %w", err)
		}
		subtype, _ := pdf.GetName(r, intent["S"])
		if subtype != "GTS_PDFA1" {
			continue
		}

		stm, err := pdf.GetStream(r, intent["DestOutputProfile"])
		if err != nil {
			return 0, fmt.Errorf("output intent profile: %w", err)
		} else if stm == nil {
			// a DestOutputProfileRef is not enough for PDF/A
			return 0, errors.New("output intent has no embedded ICC profile")
		}
		body, err := pdf.DecodeStream(r, stm, 0)
		if err != nil {
			return 0, fmt.Errorf("output intent profile: %w", err)
		}
		data, err := io.ReadAll(body)
		if err != nil {
			return 0, fmt.Errorf("output intent profile: %w", err)
		}
		return checkProfile(data)
	}

	return 0, errNoOutputIntent
}

func checkProfile(data []byte) (icc.ColorSpace, error) {
	p, err := icc.Decode(data)
	if err != nil {
		return 0, fmt.Errorf("output intent profile: %w", err)
	}
	switch p.ColorSpace {
	case icc.GraySpace, icc.RGBSpace, icc.CMYKSpace:
		return p.ColorSpace, nil
	default:
		return 0, fmt.Errorf("output intent profile has unsupported color space %v", p.ColorSpace)
	}
}

// CheckDeviceRGB verifies that DeviceRGB content may be added to a
// document with the given output intent colour space.
func CheckDeviceRGB(intent icc.ColorSpace) error {
	if intent != icc.RGBSpace {
		return fmt.Errorf("DeviceRGB content needs an RGB output intent, not %v", intent)
	}
	return nil
}

// CheckEncryption verifies that the document is not encrypted.
func CheckEncryption(r pdf.Getter) error {
	if r.GetMeta().Trailer["Encrypt"] != nil {
		return errEncrypted
	}
	return nil
}

// CheckImage verifies that an image added to a page is allowed in PDF/A
// documents.
func CheckImage(hasAlpha bool) error {
	if hasAlpha {
		return errTransparency
	}
	return nil
}
