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

package prompt

import (
	"bytes"
	"errors"
	"testing"
)

func TestAsk(t *testing.T) {
	buf := &bytes.Buffer{}
	passwd, err := ask(buf, "secret.pdf", func() ([]byte, error) {
		return []byte("hunter2"), nil
	})
	if err != nil {
		t.Fatal(err)
	}
	if passwd != "hunter2" {
		t.Errorf("got %q", passwd)
	}
	if buf.String() != "password for secret.pdf: \n" {
		t.Errorf("unexpected prompt %q", buf.String())
	}

	errRead := errors.New("read failed")
	_, err = ask(buf, "secret.pdf", func() ([]byte, error) { return nil, errRead })
	if !errors.Is(err, errRead) {
		t.Errorf("got error %v", err)
	}
}
