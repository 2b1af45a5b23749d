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

// Package profile writes CPU and memory profiles for the command line tools.
package profile

import (
	"fmt"
	"os"
	"runtime"
	"runtime/pprof"

	"go.uber.org/zap"
)

// Start begins CPU profiling, if cpuprofile is non-empty.  The returned
// function stops CPU profiling and writes a heap profile to memprofile, if
// that is non-empty.  Problems during stop are logged, not returned.
func Start(cpuprofile, memprofile string, logger *zap.Logger) (stop func(), err error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	var cpuFile *os.File
	if cpuprofile != "" {
		cpuFile, err = os.Create(cpuprofile)
		if err != nil {
			return nil, fmt.Errorf("CPU profile: %w", err)
		}
		err = pprof.StartCPUProfile(cpuFile)
		if err != nil {
			cpuFile.Close()
			return nil, fmt.Errorf("CPU profile: %w", err)
		}
	}

	stop = func() {
		if cpuFile != nil {
			pprof.StopCPUProfile()
			err := cpuFile.Close()
			if err != nil {
				logger.Error("cannot write CPU profile", zap.Error(err))
			}
		}
		if memprofile != "" {
			err := writeHeap(memprofile)
			if err != nil {
				logger.Error("cannot write memory profile", zap.Error(err))
			}
		}
	}
	return stop, nil
}

func writeHeap(fname string) error {
	f, err := os.Create(fname)
	if err != nil {
		return err
	}
	runtime.GC()
	err = pprof.Lookup("allocs").WriteTo(f, 0)
	if err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
