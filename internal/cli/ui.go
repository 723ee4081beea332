package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/flowgrid/pkg/pipeline"
)

// statusOut receives status lines. Records may go to stdout, so status
// output never does.
var statusOut io.Writer = os.Stderr

// =============================================================================
// Palette
// =============================================================================

// ANSI 256 colors, named by role rather than hue.
var (
	colorAccent = lipgloss.Color("36")
	colorOK     = lipgloss.Color("35")
	colorWarn   = lipgloss.Color("220")
	colorFail   = lipgloss.Color("167")
	colorLink   = lipgloss.Color("75")
	colorBright = lipgloss.Color("255")
	colorMuted  = lipgloss.Color("245")
	colorFaint  = lipgloss.Color("240")
)

var (
	// StyleDim renders secondary text such as hints and separators.
	StyleDim = lipgloss.NewStyle().Foreground(colorFaint)

	// StyleValue renders paths, counts and other data.
	StyleValue = lipgloss.NewStyle().Foreground(colorBright)

	// StyleWarning renders the text of warning lines.
	StyleWarning = lipgloss.NewStyle().Foreground(colorWarn)

	styleIconSpinner = lipgloss.NewStyle().Foreground(colorAccent)
	styleKey         = lipgloss.NewStyle().Foreground(colorMuted).Width(12)
	styleCommand     = lipgloss.NewStyle().Foreground(colorLink)
)

// =============================================================================
// Status Lines
// =============================================================================

// lineKind is the leading marker of a status line.
type lineKind struct {
	icon  string
	style lipgloss.Style
	text  lipgloss.Style
}

var (
	lineSuccess = lineKind{"✓", lipgloss.NewStyle().Foreground(colorOK), lipgloss.NewStyle()}
	lineError   = lineKind{"✗", lipgloss.NewStyle().Foreground(colorFail), lipgloss.NewStyle()}
	lineWarning = lineKind{"!", lipgloss.NewStyle().Foreground(colorWarn), StyleWarning}
	lineInfo    = lineKind{"›", lipgloss.NewStyle().Foreground(colorMuted), lipgloss.NewStyle()}
)

func (k lineKind) print(format string, args ...any) {
	fmt.Fprintln(statusOut, k.style.Render(k.icon)+" "+k.text.Render(fmt.Sprintf(format, args...)))
}

func printSuccess(format string, args ...any) { lineSuccess.print(format, args...) }
func printError(format string, args ...any)   { lineError.print(format, args...) }
func printWarning(format string, args ...any) { lineWarning.print(format, args...) }
func printInfo(format string, args ...any)    { lineInfo.print(format, args...) }

// printDetail prints an indented, dimmed line under the previous status line.
func printDetail(format string, args ...any) {
	fmt.Fprintln(statusOut, "  "+StyleDim.Render(fmt.Sprintf(format, args...)))
}

// printFile reports a written output file.
func printFile(path string) {
	fmt.Fprintln(statusOut, "  "+StyleDim.Render("→")+" "+StyleValue.Render(path))
}

func printKeyValue(key, value string) {
	fmt.Fprintln(statusOut, styleKey.Render(key)+" "+StyleValue.Render(value))
}

// printNextStep suggests a follow-up command.
func printNextStep(description, cmd string) {
	fmt.Fprintln(statusOut, StyleDim.Render(description+":")+" "+styleCommand.Render(cmd))
}

// =============================================================================
// Layout Summary
// =============================================================================

const (
	iconCached = "cached"
	iconFresh  = "fresh"
)

var (
	styleCached = lipgloss.NewStyle().Foreground(colorOK)
	styleFresh  = lipgloss.NewStyle().Foreground(colorMuted)
)

// printStats prints the one-line summary of a laid-out document.
func printStats(s pipeline.Stats, cached bool) {
	fmt.Fprintln(statusOut, statsLine(s, cached))
}

// statsLine joins the non-zero counts with " · ", flags cyclic graphs and
// ends with whether the layout came from the cache.
func statsLine(s pipeline.Stats, cached bool) string {
	var b strings.Builder
	b.WriteString("  ")
	for _, c := range []struct {
		n    int
		unit string
	}{{s.NodeCount, "nodes"}, {s.EdgeCount, "edges"}, {s.LayerCount, "layers"}} {
		if c.n > 0 {
			b.WriteString(StyleDim.Render(fmt.Sprintf("%d %s · ", c.n, c.unit)))
		}
	}
	if s.Cyclic {
		b.WriteString(StyleDim.Render("cyclic · "))
	}
	if cached {
		b.WriteString(styleCached.Render(iconCached))
	} else {
		b.WriteString(styleFresh.Render(iconFresh))
	}
	return b.String()
}
