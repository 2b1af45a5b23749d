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
	"time"

	"seehuhn.de/go/xmp"
)

// xmpBasic holds the properties of the XMP basic schema which change when
// a document is modified.
type xmpBasic struct {
	_            xmp.Namespace `xmp:"http://ns.adobe.com/xap/1.0/"`
	_            xmp.Prefix    `xmp:"xmp"`
	ModifyDate   xmp.Date
	MetadataDate xmp.Date
}

// adobePDF is the Adobe PDF schema.
type adobePDF struct {
	_        xmp.Namespace `xmp:"http://ns.adobe.com/pdf/1.3/"`
	_        xmp.Prefix    `xmp:"pdf"`
	Producer xmp.AgentName
}

// UpdateMetadata marks an XMP packet as describing a modified document.
// All other properties, including the PDF/A identification, are kept.
func UpdateMetadata(packet *xmp.Packet, producer string, now time.Time) {
	basic := &xmpBasic{
		ModifyDate:   xmp.NewDate(now),
		MetadataDate: xmp.NewDate(now),
	}
	packet.Set(basic)

	if producer != "" {
		packet.Set(&adobePDF{Producer: xmp.NewAgentName(producer)})
	}
}
