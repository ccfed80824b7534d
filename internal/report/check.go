// ============================================================================
// rspm - Script Package Metadata
// ============================================================================
//
// Package:     report
// Description: Check reports over many files
// Author:      Mike Stoffels
// Created:     2026-10-14
// License:     MIT
// ============================================================================

package report

import (
	"fmt"
	"time"

	"github.com/msto63/rspm/internal/scan"
)

// Summary counts the outcome of a check run
type Summary struct {
	Files    int           `json:"files" yaml:"files"`
	Failed   int           `json:"failed" yaml:"failed"`
	Nodes    int           `json:"nodes" yaml:"nodes"`
	Duration time.Duration `json:"duration_ns" yaml:"duration_ns"`
}

// OK reports whether every file parsed
func (s Summary) OK() bool {
	return s.Failed == 0
}

// Summarize counts results. Duration is the sum of per-file parse times.
func Summarize(results []*scan.Result) Summary {
	var s Summary
	for _, r := range results {
		s.Files++
		s.Duration += r.Duration
		if !r.OK() {
			s.Failed++
			continue
		}
		s.Nodes += r.Package.Len()
	}
	return s
}

// FileStatus is the machine readable outcome of one file
type FileStatus struct {
	Path    string      `json:"path" yaml:"path"`
	Package string      `json:"package,omitempty" yaml:"package,omitempty"`
	Version string      `json:"version,omitempty" yaml:"version,omitempty"`
	OK      bool        `json:"ok" yaml:"ok"`
	Removed bool        `json:"removed,omitempty" yaml:"removed,omitempty"`
	Nodes   int         `json:"nodes" yaml:"nodes"`
	Error   *Diagnostic `json:"error,omitempty" yaml:"error,omitempty"`
}

// CheckDocument is the machine readable form of a check run
type CheckDocument struct {
	header  `yaml:",inline"`
	Files   []FileStatus `json:"files" yaml:"files"`
	Summary Summary      `json:"summary" yaml:"summary"`
}

func fileStatus(r *scan.Result) FileStatus {
	st := FileStatus{Path: r.Path, OK: r.OK()}
	if !r.OK() {
		d := NewDiagnostic(r.Path, r.Err)
		st.Error = &d
		return st
	}
	st.Package = r.Package.Name
	st.Version, _ = r.Package.Version()
	st.Nodes = r.Package.Len()
	return st
}

// Check writes the outcome of every result followed by a summary and
// returns the summary. Text output lists diagnostics for failed files; with
// verbose, successful files are listed too.
func (r *Reporter) Check(results []*scan.Result, verbose bool) (Summary, error) {
	summary := Summarize(results)

	if r.format != FormatText {
		doc := CheckDocument{
			header:  r.header(),
			Files:   make([]FileStatus, 0, len(results)),
			Summary: summary,
		}
		for _, res := range results {
			doc.Files = append(doc.Files, fileStatus(res))
		}
		return summary, r.encode(doc)
	}

	for _, res := range results {
		if err := r.Result(res, verbose); err != nil {
			return summary, err
		}
	}
	return summary, r.Summary(summary)
}

// Result writes the outcome of a single file in text form
func (r *Reporter) Result(res *scan.Result, verbose bool) error {
	if r.format != FormatText {
		return r.encode(fileStatus(res))
	}
	if !res.OK() {
		return r.Diagnostic(res.Path, res.Err)
	}
	if !verbose {
		return nil
	}

	line := fmt.Sprintf("%s %s %s", r.styles.OK.Render("ok"), res.Path, r.styles.Span.Render(fmt.Sprintf("(%s, %d declarations)", res.Package.Name, res.Package.Len())))
	_, err := fmt.Fprintln(r.w, line)
	return err
}

// Summary writes the closing line of a check run
func (r *Reporter) Summary(s Summary) error {
	if r.format != FormatText {
		return r.encode(s)
	}

	status := r.styles.OK.Render("PASS")
	if !s.OK() {
		status = r.styles.Failed.Render("FAIL")
	}
	_, err := fmt.Fprintf(r.w, "%s %s\n", status,
		r.styles.Summary.Render(fmt.Sprintf("%d files, %d failed, %d declarations in %s",
			s.Files, s.Failed, s.Nodes, s.Duration.Round(time.Microsecond))))
	return err
}

// Removed writes a notice for a file that disappeared during watch mode
func (r *Reporter) Removed(path string) error {
	if r.format != FormatText {
		return r.encode(FileStatus{Path: path, Removed: true})
	}
	_, err := fmt.Fprintf(r.w, "%s %s\n", r.styles.Span.Render("removed"), path)
	return err
}
