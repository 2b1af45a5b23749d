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

// Package batch stamps whole proceedings volumes.
//
// A job file lists the papers of a volume in order.  Page numbers run
// through the volume: every paper starts with the number following the
// last page of the previous paper.
//
// Example job file:
//
//	start: 1
//	font: fonts/LinLibertine.ttf
//	style: decimal
//	badge:
//	  uri: https://www.acm.org/publications/policies/artifact-review-and-badging-current
//	  width: 72
//	  height: 72
//	jobs:
//	  - source: papers/p1.pdf
//	    dest: out/p1.pdf
//	    badge: badges/available.png
//	  - source: papers/p2.pdf
//	    dest: out/p2.pdf
//
// Relative paths are interpreted relative to the directory of the job file.
package batch

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/artifact-badging/pdftools"
	"github.com/artifact-badging/pdftools/label"
)

// Job describes a proceedings volume.
type Job struct {
	// Start is the page number of the first page of the first paper.
	Start int `yaml:"start" validate:"gte=1"`

	Font     string  `yaml:"font"`
	FontSize float64 `yaml:"font_size" validate:"gt=0"`
	Y        float64 `yaml:"y" validate:"gte=0"`
	Style    string  `yaml:"style"`
	Prefix   string  `yaml:"prefix"`

	Badge BadgeConfig `yaml:"badge"`

	ForcePlain bool `yaml:"force_plain"`
	Verify     bool `yaml:"verify"`
	Force      bool `yaml:"force"`

	Papers []Paper `yaml:"jobs" validate:"required,min=1,dive"`

	style label.Style
}

// BadgeConfig gives the badge placement shared by all papers.
type BadgeConfig struct {
	URI    string  `yaml:"uri" validate:"required,uri"`
	XRatio float64 `yaml:"x" validate:"gte=0,lte=1"`
	YRatio float64 `yaml:"y" validate:"gte=0,lte=1"`
	Width  float64 `yaml:"width" validate:"gt=0"`
	Height float64 `yaml:"height" validate:"gt=0"`
}

// Paper is one document of the volume.
type Paper struct {
	Source string `yaml:"source" validate:"required"`
	Dest   string `yaml:"dest" validate:"required,nefield=Source"`

	// Badge is the badge image for this paper.  If empty, the paper gets
	// no badge.
	Badge string `yaml:"badge"`

	// SkipNumbers excludes the paper from page numbering.  Its pages are
	// still counted.
	SkipNumbers bool `yaml:"skip_numbers"`
}

var (
	errEmptyJob     = errors.New("job file lists no papers")
	errDuplicateDst = errors.New("output file used more than once")
)

// Load reads a job file.
func Load(fname string) (*Job, error) {
	data, err := os.ReadFile(fname)
	if err != nil {
		return nil, err
	}
	job, err := Parse(data, filepath.Dir(fname))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", fname, err)
	}
	return job, nil
}

// Parse decodes a job description.  Relative paths are resolved against
// baseDir.
func Parse(data []byte, baseDir string) (*Job, error) {
	badgeDefaults := pdftools.DefaultBadgeOptions()
	numberDefaults := pdftools.DefaultPageNumberOptions()
	job := &Job{
		Start:    numberDefaults.Start,
		FontSize: numberDefaults.FontSize,
		Y:        numberDefaults.Y,
		Badge: BadgeConfig{
			URI:    badgeDefaults.URI,
			XRatio: badgeDefaults.XRatio,
			YRatio: badgeDefaults.YRatio,
			Width:  badgeDefaults.Width,
			Height: badgeDefaults.Height,
		},
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	err := dec.Decode(job)
	if err != nil {
		return nil, err
	}

	if len(job.Papers) == 0 {
		return nil, errEmptyJob
	}
	err = validator.New().Struct(job)
	if err != nil {
		return nil, err
	}
	job.style, err = label.ParseStyle(job.Style)
	if err != nil {
		return nil, err
	}

	job.Font = resolve(baseDir, job.Font)
	for i := range job.Papers {
		p := &job.Papers[i]
		p.Source = resolve(baseDir, p.Source)
		p.Dest = resolve(baseDir, p.Dest)
		p.Badge = resolve(baseDir, p.Badge)
	}

	// concurrent runs must not write to the same file, or overwrite an
	// input of another run
	inputs := make(map[string]bool, len(job.Papers))
	for _, p := range job.Papers {
		inputs[filepath.Clean(p.Source)] = true
	}
	seen := make(map[string]bool, len(job.Papers))
	for _, p := range job.Papers {
		dst := filepath.Clean(p.Dest)
		if seen[dst] || inputs[dst] {
			return nil, fmt.Errorf("%s: %w", p.Dest, errDuplicateDst)
		}
		seen[dst] = true
	}
	return job, nil
}

func resolve(baseDir, fname string) string {
	if fname == "" || filepath.IsAbs(fname) {
		return fname
	}
	return filepath.Join(baseDir, fname)
}
