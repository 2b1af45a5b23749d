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

package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/text/language"

	"github.com/artifact-badging/pdftools"
	"github.com/artifact-badging/pdftools/tools/internal/buildinfo"
	"github.com/artifact-badging/pdftools/tools/internal/config"
	"github.com/artifact-badging/pdftools/tools/internal/logging"
	"github.com/artifact-badging/pdftools/tools/internal/profile"
	"github.com/artifact-badging/pdftools/tools/internal/prompt"
)

const toolName = "pdftools"

// app holds the state shared by all commands.
type app struct {
	verbose    bool
	passwords  []string
	cpuprofile string
	memprofile string

	// logger is created in PersistentPreRunE, unless set beforehand.
	logger *zap.Logger
	cfg    *config.Config
	stop   func()

	// noPrompt disables the interactive password prompt.
	noPrompt bool
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   toolName,
		Short: "Stamp page numbers and artifact badges onto PDF files",
		Long: `pdftools post-processes camera-ready PDF files: it adds page numbers,
places a clickable badge on the first page, and merges documents.

PDF/A input is preserved as PDF/A where possible.  If the input is not
PDF/A, or the result would violate PDF/A, plain PDF is written instead.`,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			// Flags have been parsed at this point, so later errors
			// are not usage errors.
			cmd.SilenceUsage = true
			return a.setup()
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			a.teardown()
		},
	}
	root.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return fmt.Errorf("%w\nPlease read the options carefully!", err)
	})

	flags := root.PersistentFlags()
	flags.BoolVarP(&a.verbose, "verbose", "v", false, "show debug messages")
	flags.StringArrayVar(&a.passwords, "password", nil, "password for encrypted input files (repeatable)")
	flags.StringVar(&a.cpuprofile, "cpuprofile", "", "write CPU profile to `file`")
	flags.StringVar(&a.memprofile, "memprofile", "", "write memory profile to `file`")

	root.AddCommand(
		newOverlayCmd(a),
		newMergeCmd(a),
		newBatchCmd(a),
		newInfoCmd(a),
		newVersionCmd(),
	)
	return root
}

func (a *app) setup() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	a.cfg = cfg

	if a.logger == nil {
		a.logger = logging.Stderr(a.verbose)
	}
	pdftools.Producer = buildinfo.Producer(toolName)

	a.stop, err = profile.Start(a.cpuprofile, a.memprofile, a.logger)
	return err
}

func (a *app) teardown() {
	if a.stop != nil {
		a.stop()
	}
	if a.logger != nil {
		_ = a.logger.Sync()
	}
}

// outputFlags are the flags shared by all commands which write PDF files.
type outputFlags struct {
	forcePlain bool
	verify     bool
	force      bool
	lang       string
}

func (f *outputFlags) register(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.BoolVarP(&f.forcePlain, "force-not-PdfA", "N", false, "write plain PDF without trying PDF/A first")
	flags.BoolVar(&f.verify, "verify", false, "validate plain PDF output")
	flags.BoolVar(&f.force, "force", false, "overwrite the output file if it exists")
	flags.StringVar(&f.lang, "lang", "", "document language, e.g. en-GB, if the input does not declare one")
}

func (a *app) outputOptions(f *outputFlags) (pdftools.OutputOptions, error) {
	opts := pdftools.OutputOptions{
		ForcePlain: f.forcePlain,
		Verify:     f.verify,
		Force:      f.force,
		Passwords:  a.passwords,
	}
	if !a.noPrompt {
		opts.Prompt = prompt.Password
	}
	if f.lang != "" {
		tag, err := language.Parse(f.lang)
		if err != nil {
			return opts, fmt.Errorf("--lang: %w", err)
		}
		opts.Lang = tag
	}
	return opts, nil
}
