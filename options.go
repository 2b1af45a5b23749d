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

package pdftools

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"golang.org/x/text/language"

	"github.com/artifact-badging/pdftools/badge"
	"github.com/artifact-badging/pdftools/label"
)

// BadgeOptions describe the badge stamped onto the first page.
type BadgeOptions struct {
	// Path is the badge image file.  If empty, no badge is added.
	Path string

	// URI is opened when the badge is clicked.
	URI string `validate:"required,uri"`

	// XRatio and YRatio give the position of the lower left corner of the
	// badge, relative to the page size.
	XRatio float64 `validate:"gte=0,lte=1"`
	YRatio float64 `validate:"gte=0,lte=1"`

	// Width and Height give the badge size in PDF units.
	Width  float64 `validate:"gt=0"`
	Height float64 `validate:"gt=0"`
}

// DefaultBadgeOptions returns the badge placement used for ACM artifact
// badges: 72x72 units, near the top right corner of the page.
func DefaultBadgeOptions() BadgeOptions {
	return BadgeOptions{
		URI:    badge.DefaultURI,
		XRatio: 0.756,
		YRatio: 0.901,
		Width:  72,
		Height: 72,
	}
}

// PageNumberOptions describe the page numbers.
type PageNumberOptions struct {
	// FontPath is a TrueType font file.  If empty, the Go Regular font is
	// used.
	FontPath string

	// FontSize is the font size in PDF units.
	FontSize float64 `validate:"gt=0"`

	// Start is the number of the first page.  Values smaller than 1
	// disable page numbers.
	Start int

	// Y is the distance of the top of the page numbers from the bottom
	// edge of the page.
	Y float64 `validate:"gte=0"`

	// Style selects the numbering system.
	Style label.Style

	// Prefix is prepended to every page number.
	Prefix string

	// Skip turns page numbers off regardless of Start.
	Skip bool
}

// DefaultPageNumberOptions returns the default page number options.
// Page numbering starts at 1.
func DefaultPageNumberOptions() PageNumberOptions {
	return PageNumberOptions{
		FontSize: 10,
		Start:    1,
		Y:        40,
		Style:    label.Decimal,
	}
}

// Enabled reports whether page numbers are added.
func (o *PageNumberOptions) Enabled() bool {
	return !o.Skip && o.Start >= 1
}

// OverlayOptions describe one overlay run.
type OverlayOptions struct {
	Source string `validate:"required"`
	Dest   string `validate:"required,nefield=Source"`

	// Badge is only checked if a badge image is set, Numbers only if
	// page numbers are enabled.
	Badge   BadgeOptions      `validate:"-"`
	Numbers PageNumberOptions `validate:"-"`

	OutputOptions
}

// OutputOptions are shared by all operations.
type OutputOptions struct {
	// ForcePlain skips the PDF/A attempt.
	ForcePlain bool

	// Verify validates the output also in plain mode.
	Verify bool

	// Force allows to overwrite an existing output file.
	Force bool

	// Passwords are tried for encrypted input files.
	Passwords []string

	// Prompt, if set, asks for the password of an encrypted input file
	// once all Passwords have been tried.
	Prompt func(fname string) (string, error)

	// Lang is the document language, used if the input does not
	// specify one.
	Lang language.Tag `validate:"-"`
}

// MergeOptions describe one merge run.
type MergeOptions struct {
	Sources []string `validate:"min=2,dive,required"`
	Dest    string   `validate:"required"`

	OutputOptions
}

var (
	// ErrTooFewSources is returned when a merge has less than two inputs.
	ErrTooFewSources = errors.New("at least two input files are needed")

	// ErrSameFile is returned when an input file is also the output file.
	ErrSameFile = errors.New("input and output must be different files")

	// ErrOutputExists is returned when the output file already exists and
	// overwriting was not requested.
	ErrOutputExists = errors.New("output file already exists")
)

var structValidator = validator.New()

// Validate checks the options and the files they refer to.
func (o *OverlayOptions) Validate() error {
	err := structValidator.Struct(o)
	if err != nil {
		return validationError(err)
	}
	if o.Badge.Path != "" {
		err = structValidator.Struct(&o.Badge)
		if err != nil {
			return validationError(err)
		}
	}
	if o.Numbers.Enabled() {
		err = structValidator.Struct(&o.Numbers)
		if err != nil {
			return validationError(err)
		}
	}

	err = checkInput("source", o.Source)
	if err != nil {
		return err
	}
	if o.Badge.Path != "" {
		err = checkInput("badge", o.Badge.Path)
		if err != nil {
			return err
		}
	}
	if o.Numbers.Enabled() && o.Numbers.FontPath != "" {
		err = checkInput("font", o.Numbers.FontPath)
		if err != nil {
			return err
		}
	}
	return checkOutput([]string{o.Source}, o.Dest, o.Force)
}

// Validate checks the options and the files they refer to.
func (o *MergeOptions) Validate() error {
	if len(o.Sources) < 2 {
		return ErrTooFewSources
	}
	err := structValidator.Struct(o)
	if err != nil {
		return validationError(err)
	}
	for _, src := range o.Sources {
		err = checkInput("source", src)
		if err != nil {
			return err
		}
	}
	return checkOutput(o.Sources, o.Dest, o.Force)
}

func checkInput(what, fname string) error {
	info, err := os.Stat(fname)
	if err != nil {
		return fmt.Errorf("%s file: %w", what, err)
	}
	if info.IsDir() {
		return fmt.Errorf("%s file %q is a directory", what, fname)
	}
	return nil
}

func checkOutput(srcs []string, dst string, force bool) error {
	dstInfo, err := os.Stat(dst)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	} else if err != nil {
		return err
	}

	for _, src := range srcs {
		srcInfo, err := os.Stat(src)
		if err == nil && os.SameFile(srcInfo, dstInfo) {
			return fmt.Errorf("%q: %w", dst, ErrSameFile)
		}
	}
	if !force {
		return fmt.Errorf("%q: %w", dst, ErrOutputExists)
	}
	return nil
}

func validationError(err error) error {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}
	msgs := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		field := fe.Namespace()
		if _, after, found := strings.Cut(field, "."); found {
			field = after
		}
		if fe.Param() != "" {
			msgs = append(msgs, fmt.Sprintf("%s must satisfy %s=%s", field, fe.Tag(), fe.Param()))
		} else {
			msgs = append(msgs, fmt.Sprintf("%s: %s", field, fe.Tag()))
		}
	}
	return fmt.Errorf("invalid options: %s", strings.Join(msgs, ", "))
}
