// ============================================================================
// rspm - Script Package Metadata
// ============================================================================
//
// Package:     report
// Description: Terminal styles for diagnostics and declaration listings
// Author:      Mike Stoffels
// Created:     2026-10-14
// License:     MIT
// ============================================================================

package report

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Color modes accepted by ParseColorMode
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// Colors
var (
	colorPrimary   = lipgloss.Color("#7C3AED")
	colorSecondary = lipgloss.Color("#10B981")
	colorAccent    = lipgloss.Color("#F59E0B")
	colorError     = lipgloss.Color("#EF4444")
	colorMuted     = lipgloss.Color("#6B7280")
)

// Styles groups every style used by the text renderers
type Styles struct {
	// Headings
	Package lipgloss.Style
	Version lipgloss.Style

	// Declarations
	Kind   lipgloss.Style
	Name   lipgloss.Style
	Global lipgloss.Style
	Span   lipgloss.Style
	Value  lipgloss.Style

	// Diagnostics
	Location lipgloss.Style
	Error    lipgloss.Style
	Code     lipgloss.Style
	Snippet  lipgloss.Style
	Caret    lipgloss.Style

	// Status
	OK      lipgloss.Style
	Failed  lipgloss.Style
	Summary lipgloss.Style
}

// ParseColorMode validates a color mode. The empty string means auto.
func ParseColorMode(mode string) (string, error) {
	switch mode {
	case "", ColorAuto:
		return ColorAuto, nil
	case ColorAlways, ColorNever:
		return mode, nil
	default:
		return "", fmt.Errorf("unknown color mode %q", mode)
	}
}

// NewStyles creates styles bound to a renderer for w. In auto mode the
// color profile is detected from w, so pipes and files get plain text.
func NewStyles(w io.Writer, mode string) Styles {
	r := lipgloss.NewRenderer(w)
	switch mode {
	case ColorAlways:
		r.SetColorProfile(termenv.TrueColor)
	case ColorNever:
		r.SetColorProfile(termenv.Ascii)
	}

	return Styles{
		Package: r.NewStyle().
			Bold(true).
			Foreground(colorPrimary),
		Version: r.NewStyle().
			Foreground(colorMuted).
			Italic(true),

		Kind: r.NewStyle().
			Foreground(colorAccent),
		Name: r.NewStyle().
			Bold(true),
		Global: r.NewStyle().
			Foreground(colorSecondary),
		Span: r.NewStyle().
			Foreground(colorMuted),
		Value: r.NewStyle(),

		Location: r.NewStyle().
			Bold(true),
		Error: r.NewStyle().
			Bold(true).
			Foreground(colorError),
		Code: r.NewStyle().
			Foreground(colorError),
		Snippet: r.NewStyle().
			Foreground(colorMuted),
		Caret: r.NewStyle().
			Bold(true).
			Foreground(colorError),

		OK: r.NewStyle().
			Foreground(colorSecondary),
		Failed: r.NewStyle().
			Foreground(colorError),
		Summary: r.NewStyle().
			Bold(true),
	}
}
