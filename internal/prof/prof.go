// Package prof wraps runtime/pprof and runtime/trace behind a single
// session so the CLI can enable any combination of profiles with one
// start/stop pair.
package prof

import (
	"fmt"
	"os"
	"runtime"
	"runtime/pprof"
	"runtime/trace"
)

// Options selects which profiles a session records. Empty paths disable
// the corresponding profile.
type Options struct {
	CPUPath   string
	MemPath   string
	TracePath string
}

// Session holds the open profile files for one run.
type Session struct {
	opts      Options
	cpuFile   *os.File
	traceFile *os.File
}

// Start enables the requested profilers. On error everything already
// started is torn down, so a failed Start never leaks a running profile.
func Start(opts Options) (*Session, error) {
	s := &Session{opts: opts}

	if opts.CPUPath != "" {
		f, err := os.Create(opts.CPUPath)
		if err != nil {
			return nil, fmt.Errorf("cpu profile: %w", err)
		}
		if err := pprof.StartCPUProfile(f); err != nil {
			_ = f.Close()
			return nil, fmt.Errorf("cpu profile: %w", err)
		}
		s.cpuFile = f
	}

	if opts.TracePath != "" {
		f, err := os.Create(opts.TracePath)
		if err != nil {
			s.stopCPU()
			return nil, fmt.Errorf("runtime trace: %w", err)
		}
		if err := trace.Start(f); err != nil {
			_ = f.Close()
			s.stopCPU()
			return nil, fmt.Errorf("runtime trace: %w", err)
		}
		s.traceFile = f
	}

	return s, nil
}

// Stop flushes and closes every active profile. Safe to call more than once.
func (s *Session) Stop() {
	if s == nil {
		return
	}
	if s.traceFile != nil {
		trace.Stop()
		_ = s.traceFile.Close()
		s.traceFile = nil
	}
	s.stopCPU()
	if s.opts.MemPath != "" {
		path := s.opts.MemPath
		s.opts.MemPath = ""
		if err := writeHeapProfile(path); err != nil {
			fmt.Fprintf(os.Stderr, "pyfix: mem profile: %v\n", err)
		}
	}
}

func (s *Session) stopCPU() {
	if s.cpuFile != nil {
		pprof.StopCPUProfile()
		_ = s.cpuFile.Close()
		s.cpuFile = nil
	}
}

func writeHeapProfile(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	runtime.GC()
	return pprof.WriteHeapProfile(f)
}
