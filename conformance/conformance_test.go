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
	"bytes"
	"errors"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"seehuhn.de/go/icc"
	"seehuhn.de/go/pdf"
	"seehuhn.de/go/xmp"

	"github.com/artifact-badging/pdftools/internal/testpdf"
)

func TestChecker(t *testing.T) {
	c := &Checker{}
	if err := c.Err(StageClose); err != nil {
		t.Fatalf("empty checker returned %v", err)
	}

	c.Check(nil)
	c.Check(errTransparency)
	c.Add("page %d has no fonts", 3)

	want := []string{"image transparency is not allowed", "page 3 has no fonts"}
	if d := cmp.Diff(want, c.violations); d != "" {
		t.Errorf("violations (-want +got):\n%s", d)
	}

	err := fmt.Errorf("stamping: %w", c.Err(StageClose))
	var cErr *Error
	if !errors.As(err, &cErr) {
		t.Fatalf("%v is not a conformance error", err)
	}
	if cErr.Stage != StageClose {
		t.Errorf("stage = %q", cErr.Stage)
	}
	if !strings.Contains(cErr.Error(), "page 3") {
		t.Errorf("error %q lacks a violation", cErr)
	}
}

// setClaim records a PDF/A claim in an XMP packet.
func setClaim(packet *xmp.Packet, c *Claim) {
	id := &pdfaID{
		Part: xmp.NewText(strconv.Itoa(c.Part)),
	}
	if c.Conformance != "" {
		id.Conformance = xmp.NewText(c.Conformance)
	}
	packet.Set(id)
}

func TestClaimRoundTrip(t *testing.T) {
	packet := xmp.NewPacket()
	claim, err := ClaimFromPacket(packet)
	if err != nil {
		t.Fatal(err)
	}
	if claim != nil {
		t.Fatalf("empty packet claims %s", claim)
	}

	setClaim(packet, &Claim{Part: 3, Conformance: "U"})
	claim, err = ClaimFromPacket(packet)
	if err != nil {
		t.Fatal(err)
	}
	if d := cmp.Diff(&Claim{Part: 3, Conformance: "U"}, claim); d != "" {
		t.Errorf("claim (-want +got):\n%s", d)
	}
	if claim.String() != "PDF/A-3u" {
		t.Errorf("String() = %q", claim)
	}
	if claim.Tagged() {
		t.Error("PDF/A-3u reported as tagged")
	}
}

func TestClearClaim(t *testing.T) {
	packet := xmp.NewPacket()
	setClaim(packet, &Claim{Part: 2, Conformance: "B"})
	UpdateMetadata(packet, "pdftools test", time.Now())

	ClearClaim(packet)
	claim, err := ClaimFromPacket(packet)
	if err != nil {
		t.Fatal(err)
	}
	if claim != nil {
		t.Errorf("claim %s left in packet", claim)
	}
	basic := &xmpBasic{}
	packet.Get(basic)
	if basic.ModifyDate.V.IsZero() {
		t.Error("other properties removed")
	}
}

func TestClaimMissingPacket(t *testing.T) {
	claim, err := ClaimFromPacket(nil)
	if claim != nil || err != nil {
		t.Errorf("got %v, %v", claim, err)
	}
}

func TestUpdateMetadata(t *testing.T) {
	packet := xmp.NewPacket()
	setClaim(packet, &Claim{Part: 2, Conformance: "B"})

	now := time.Date(2024, 5, 17, 12, 30, 0, 0, time.UTC)
	UpdateMetadata(packet, "pdftools test", now)

	basic := &xmpBasic{}
	packet.Get(basic)
	if !basic.ModifyDate.V.Equal(now) {
		t.Errorf("ModifyDate = %v, want %v", basic.ModifyDate.V, now)
	}
	if !basic.MetadataDate.V.Equal(now) {
		t.Errorf("MetadataDate = %v, want %v", basic.MetadataDate.V, now)
	}

	claim, err := ClaimFromPacket(packet)
	if err != nil {
		t.Fatal(err)
	}
	if claim == nil || claim.Part != 2 {
		t.Errorf("PDF/A claim lost: %v", claim)
	}
}

func TestCheckProfile(t *testing.T) {
	for _, want := range []icc.ColorSpace{icc.GraySpace, icc.RGBSpace, icc.CMYKSpace} {
		data, _, err := testpdf.Profile(want)
		if err != nil {
			t.Fatal(err)
		}
		got, err := checkProfile(bytes.Clone(data))
		if err != nil {
			t.Errorf("%v: %v", want, err)
		} else if got != want {
			t.Errorf("profile space %v, want %v", got, want)
		}
	}

	lab := &icc.Profile{
		Version:    icc.Version2_1_0,
		Class:      icc.ColorSpaceProfile,
		ColorSpace: icc.CIELabSpace,
		PCS:        icc.CIEXYZSpace,
	}
	if _, err := checkProfile(lab.Encode()); err == nil {
		t.Error("Lab profile accepted")
	}
	if _, err := checkProfile([]byte("not an ICC profile")); err == nil {
		t.Error("invalid profile accepted")
	}
}

func TestCheckDeviceRGB(t *testing.T) {
	if err := CheckDeviceRGB(icc.RGBSpace); err != nil {
		t.Error(err)
	}
	for _, intent := range []icc.ColorSpace{icc.GraySpace, icc.CMYKSpace, 0} {
		if err := CheckDeviceRGB(intent); err == nil {
			t.Errorf("DeviceRGB accepted with %v output intent", intent)
		}
	}
}

func TestCheckImage(t *testing.T) {
	if err := CheckImage(false); err != nil {
		t.Error(err)
	}
	if err := CheckImage(true); err == nil {
		t.Error("transparent image accepted")
	}
}

func TestDocuments(t *testing.T) {
	dir := t.TempDir()

	plainName := filepath.Join(dir, "plain.pdf")
	err := testpdf.Create(plainName, &testpdf.Options{Pages: 2})
	if err != nil {
		t.Fatal(err)
	}
	archivalName := filepath.Join(dir, "archival.pdf")
	err = testpdf.Create(archivalName, &testpdf.Options{Pages: 2, PDFA: true})
	if err != nil {
		t.Fatal(err)
	}

	plain, err := pdf.Open(plainName, nil)
	if err != nil {
		t.Fatal(err)
	}
	defer plain.Close()

	claim, err := Identify(plain)
	if err != nil {
		t.Fatal(err)
	}
	if claim != nil {
		t.Errorf("plain document claims %s", claim)
	}
	if _, err := CheckOutputIntent(plain); err == nil {
		t.Error("plain document has an output intent")
	}
	if err := CheckEncryption(plain); err != nil {
		t.Error(err)
	}

	archival, err := pdf.Open(archivalName, nil)
	if err != nil {
		t.Fatal(err)
	}
	defer archival.Close()

	claim, err = Identify(archival)
	if err != nil {
		t.Fatal(err)
	}
	if d := cmp.Diff(&Claim{Part: 2, Conformance: "B"}, claim); d != "" {
		t.Errorf("claim (-want +got):\n%s", d)
	}
	if space, err := CheckOutputIntent(archival); err != nil {
		t.Error(err)
	} else if space != icc.RGBSpace {
		t.Errorf("output intent space %v, want RGB", space)
	}
}

func TestCMYKOutputIntent(t *testing.T) {
	fname := filepath.Join(t.TempDir(), "cmyk.pdf")
	err := testpdf.Create(fname, &testpdf.Options{PDFA: true, Intent: icc.CMYKSpace})
	if err != nil {
		t.Fatal(err)
	}
	r, err := pdf.Open(fname, nil)
	if err != nil {
		t.Fatal(err)
	}
	defer r.Close()

	space, err := CheckOutputIntent(r)
	if err != nil {
		t.Fatal(err)
	}
	if space != icc.CMYKSpace {
		t.Errorf("output intent space %v, want CMYK", space)
	}
	if err := CheckDeviceRGB(space); err == nil {
		t.Error("DeviceRGB accepted with a CMYK output intent")
	}
}
