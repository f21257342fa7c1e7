package main

import (
	"regexp"
	"strings"

	"github.com/charmbracelet/glamour"
)

// Precompiled patterns for note-flavored Markdown -> CommonMark conversion.
var (
	// Highlights: ==text== -> **text**.
	noteHighlight = regexp.MustCompile(`==([^=\n]+)==`)
	// Aliased wiki links: [[Page|alias]] -> _alias_.
	noteWikiAlias = regexp.MustCompile(`\[\[[^\]|\n]+\|([^\]\n]+)\]\]`)
	// Wiki links: [[Page]] -> _Page_.
	noteWikiLink = regexp.MustCompile(`\[\[([^\]\n]+)\]\]`)
	// Indented task items are tab-indented in notes; glamour wants spaces.
	noteTabIndent = regexp.MustCompile(`(?m)^\t+`)
)

// noteToMarkdown converts the note syntax used in announcement documents to
// standard Markdown. Text inside fenced code blocks is left as is.
func noteToMarkdown(s string) string {
	// Split on ``` boundaries. Odd-indexed segments are inside code fences.
	parts := strings.Split(s, "```")
	for i, part := range parts {
		if i%2 == 0 {
			parts[i] = convertNoteSegment(part)
		}
	}
	return strings.Join(parts, "```")
}

func convertNoteSegment(s string) string {
	// Aliased links first; the plain pattern would swallow the pipe.
	s = noteWikiAlias.ReplaceAllString(s, "_${1}_")
	s = noteWikiLink.ReplaceAllString(s, "_${1}_")
	s = noteHighlight.ReplaceAllString(s, "**${1}**")
	s = noteTabIndent.ReplaceAllStringFunc(s, func(tabs string) string {
		return strings.Repeat("  ", len(tabs))
	})
	return s
}

// Cached glamour renderer. WithAutoStyle() performs OS I/O to detect the
// terminal theme, which is too slow to repeat on every keypress in inspect.
var (
	cachedRenderer      *glamour.TermRenderer
	cachedRendererWidth int
)

// renderDocument renders an announcement document for the terminal.
// If rendering fails, the raw document is returned.
func renderDocument(s string, width int) string {
	md := noteToMarkdown(s)

	if cachedRenderer == nil || cachedRendererWidth != width {
		r, err := glamour.NewTermRenderer(
			glamour.WithAutoStyle(),
			glamour.WithWordWrap(width),
			glamour.WithEmoji(),
		)
		if err != nil {
			return s
		}
		cachedRenderer = r
		cachedRendererWidth = width
	}

	rendered, err := cachedRenderer.Render(md)
	if err != nil {
		return s
	}

	return rendered
}
