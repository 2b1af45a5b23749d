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

// Package label formats the page numbers stamped onto documents.
//
// Besides the label strings themselves, the package produces the
// /PageLabels number tree for the document catalog, so that the page
// labels shown by PDF viewers agree with the stamped numbers.
package label

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"seehuhn.de/go/pdf"
)

// Style selects the numbering system for page labels.
type Style int

// These are the supported numbering styles.
// The names follow table 161 of ISO 32000-2:2020.
const (
	Decimal    Style = iota // 1, 2, 3, ...
	RomanLower              // i, ii, iii, ...
	RomanUpper              // I, II, III, ...
	AlphaLower              // a, b, ..., z, aa, bb, ...
	AlphaUpper              // A, B, ..., Z, AA, BB, ...
)

var styleNames = map[Style]string{
	Decimal:    "decimal",
	RomanLower: "roman",
	RomanUpper: "Roman",
	AlphaLower: "alpha",
	AlphaUpper: "Alpha",
}

func (s Style) String() string {
	if name, ok := styleNames[s]; ok {
		return name
	}
	return fmt.Sprintf("Style(%d)", int(s))
}

// ParseStyle converts a style name, as used on the command line, into a
// [Style].  The empty string selects [Decimal].
func ParseStyle(name string) (Style, error) {
	if name == "" {
		return Decimal, nil
	}
	for s, n := range styleNames {
		if n == name {
			return s, nil
		}
	}
	return 0, fmt.Errorf("unknown label style %q (want decimal, roman, Roman, alpha or Alpha)", name)
}

// UnmarshalText implements [encoding.TextUnmarshaler].
func (s *Style) UnmarshalText(text []byte) error {
	style, err := ParseStyle(string(text))
	if err != nil {
		return err
	}
	*s = style
	return nil
}

// Set implements the pflag.Value interface.
func (s *Style) Set(name string) error {
	return s.UnmarshalText([]byte(name))
}

// Type implements the pflag.Value interface.
func (s *Style) Type() string {
	return "style"
}

// maxAlpha is the largest number with an alphabetic label, "zzzzzzzzzz".
const maxAlpha = 26 * 10

var (
	errNotPositive = errors.New("page labels must be positive")
	errRomanRange  = errors.New("roman numerals only go up to 3999")
	errAlphaRange  = fmt.Errorf("alphabetic labels only go up to %d", maxAlpha)
)

// Format returns the label for page number n.
func Format(n int, style Style) (string, error) {
	if n < 1 {
		return "", errNotPositive
	}

	switch style {
	case Decimal:
		return strconv.Itoa(n), nil
	case RomanLower:
		s, err := roman(n)
		return strings.ToLower(s), err
	case RomanUpper:
		return roman(n)
	case AlphaLower:
		return alpha(n, 'a')
	case AlphaUpper:
		return alpha(n, 'A')
	default:
		return "", fmt.Errorf("invalid label style %d", int(style))
	}
}

var romanDigits = []struct {
	value  int
	symbol string
}{
	{1000, "M"}, {900, "CM"}, {500, "D"}, {400, "CD"},
	{100, "C"}, {90, "XC"}, {50, "L"}, {40, "XL"},
	{10, "X"}, {9, "IX"}, {5, "V"}, {4, "IV"},
	{1, "I"},
}

func roman(n int) (string, error) {
	if n > 3999 {
		return "", errRomanRange
	}
	var b strings.Builder
	for _, d := range romanDigits {
		for n >= d.value {
			b.WriteString(d.symbol)
			n -= d.value
		}
	}
	return b.String(), nil
}

// alpha uses the PDF convention: after z come aa, bb, ..., zz, aaa, ...
func alpha(n int, base byte) (string, error) {
	if n > maxAlpha {
		return "", errAlphaRange
	}
	repeat := (n-1)/26 + 1
	letter := base + byte((n-1)%26)
	return strings.Repeat(string(letter), repeat), nil
}

// PageLabels returns a /PageLabels number tree which labels all pages of a
// document in the given style, starting at the number start.
// A non-empty prefix is prepended to every label.
func PageLabels(start int, style Style, prefix string) pdf.Dict {
	labelDict := pdf.Dict{}
	switch style {
	case Decimal:
		labelDict["S"] = pdf.Name("D")
	case RomanLower:
		labelDict["S"] = pdf.Name("r")
	case RomanUpper:
		labelDict["S"] = pdf.Name("R")
	case AlphaLower:
		labelDict["S"] = pdf.Name("a")
	case AlphaUpper:
		labelDict["S"] = pdf.Name("A")
	}
	if prefix != "" {
		labelDict["P"] = pdf.String(prefix)
	}
	if start != 1 {
		labelDict["St"] = pdf.Integer(start)
	}

	return pdf.Dict{
		"Nums": pdf.Array{pdf.Integer(0), labelDict},
	}
}
