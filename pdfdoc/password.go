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
	"github.com/xdg-go/stringprep"
	"seehuhn.de/go/pdf"
)

// maxPrompts limits how often the user is asked for the password of a
// single file.
const maxPrompts = 3

// readerOptions returns the options used to open fname.
func (opt *Options) readerOptions(fname string) *pdf.ReaderOptions {
	return &pdf.ReaderOptions{
		ReadPassword: func(_ []byte, try int) string {
			if try < len(opt.Passwords) {
				return normalizePassword(opt.Passwords[try])
			}
			try -= len(opt.Passwords)
			if opt.Prompt == nil || try >= maxPrompts {
				return ""
			}
			passwd, err := opt.Prompt(fname)
			if err != nil {
				return ""
			}
			return normalizePassword(passwd)
		},
		ErrorHandling: pdf.ErrorHandlingReport,
	}
}

// normalizePassword applies the SASLprep profile to a password.
// Passwords which cannot be prepared are used unchanged, since older
// encryption methods do not use SASLprep.
func normalizePassword(passwd string) string {
	prepped, err := stringprep.SASLprep.Prepare(passwd)
	if err != nil {
		return passwd
	}
	return prepped
}
