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

// Package config reads tool defaults from the environment.
//
// Settings are taken from environment variables.  Variables can also be
// given in a ".env" file in the current directory; values already present
// in the environment take precedence.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// These are the environment variables read by [Load].
const (
	EnvFont     = "PDFTOOLS_FONT"
	EnvBadgeURI = "PDFTOOLS_BADGE_URI"
	EnvWorkers  = "PDFTOOLS_WORKERS"
)

// Config holds the defaults for command line flags.
type Config struct {
	// Font is the TrueType font for page numbers.  Empty means the
	// built-in font.
	Font string

	// BadgeURI is the link target of the badge.  Empty means the
	// built-in default.
	BadgeURI string

	// Workers is the number of papers processed concurrently by the
	// batch command.
	Workers int
}

// Load reads the configuration.  The files, if any, are read as dotenv
// files.  Without arguments, ".env" is used if it exists.
func Load(files ...string) (*Config, error) {
	err := godotenv.Load(files...)
	if err != nil && (len(files) > 0 || !errors.Is(err, fs.ErrNotExist)) {
		return nil, err
	}
	return fromEnv(os.LookupEnv)
}

func fromEnv(lookup func(string) (string, bool)) (*Config, error) {
	c := &Config{
		Workers: 4,
	}
	if v, ok := lookup(EnvFont); ok {
		c.Font = v
	}
	if v, ok := lookup(EnvBadgeURI); ok {
		c.BadgeURI = v
	}
	if v, ok := lookup(EnvWorkers); ok && v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			return nil, fmt.Errorf("%s=%q: want a positive integer", EnvWorkers, v)
		}
		c.Workers = n
	}
	return c, nil
}
