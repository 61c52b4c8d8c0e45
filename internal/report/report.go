// Package report renders a compared snapshot for the console.
package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"fileversion/internal/versioner"

	"github.com/fatih/color"
)

const (
	tagWidth     = 20
	lineTemplate = "%s %s\n"
)

type Options struct {
	ShowUnchanged bool
}

var tagColors = map[versioner.Status]*color.Color{
	versioner.StatusNewMissing: color.New(color.FgRed, color.Bold),
	versioner.StatusMissing:    color.New(color.FgRed),
	versioner.StatusNew:        color.New(color.FgGreen),
	versioner.StatusUnchanged:  color.New(color.Faint),
	versioner.StatusModified:   color.New(color.FgYellow),
}

// Write prints one row per diff, line details for modified files, and the
// composite version last.
func Write(w io.Writer, diffs []versioner.FileDiff, version string, opts Options) error {
	for _, d := range diffs {
		status := d.Status()
		if status == versioner.StatusUnchanged && !opts.ShowUnchanged {
			continue
		}

		if _, err := fmt.Fprintf(w, lineTemplate, tag(status), d.Path); err != nil {
			return err
		}
		if status != versioner.StatusModified {
			continue
		}
		if _, err := fmt.Fprintf(w, "   Modified Lines: %s\n   Missing Lines:  %s\n",
			formatLines(d.AddedLines), formatLines(d.RemovedLines)); err != nil {
			return err
		}
	}

	_, err := fmt.Fprintf(w, "\nVersion: %s\n", version)
	return err
}

// tag pads outside the color codes so the column stays aligned.
func tag(s versioner.Status) string {
	raw := "[" + string(s) + "]"
	pad := strings.Repeat(" ", max(0, tagWidth-len(raw)))
	if c, ok := tagColors[s]; ok {
		raw = c.Sprint(raw)
	}
	return raw + pad
}

func formatLines(lines []int) string {
	parts := make([]string, len(lines))
	for i, n := range lines {
		parts[i] = strconv.Itoa(n)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}
