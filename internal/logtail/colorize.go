package logtail

import (
	"regexp"

	"github.com/gdamore/tcell/v2"

	"github.com/five82/tinywin/internal/text"
	"github.com/five82/tinywin/internal/theme"
)

// Every group is optional, so the pattern matches any line.
var logLine = regexp.MustCompile(`^(\d{4}-\d{2}-\d{2}[ T]\d{2}:\d{2}:\d{2}\S*)?(\s*)(?:(DEBUG|INFO|WARNING|WARN|ERROR)\b)?(\s*)(\[[^\]]*\])?(.*)$`)

// Colorize splits a log line into styled segments: timestamp muted, level by
// severity, a bracketed component in the accent style and the rest as text.
// Lines that do not look like log lines come back as a single text segment.
func Colorize(line string, st theme.Styles) *text.Line {
	m := logLine.FindStringSubmatch(line)
	if m == nil || (m[1] == "" && m[3] == "") {
		return text.Plain(line, st.Text)
	}
	out := text.NewLine()
	add := func(s string, style tcell.Style) {
		if s != "" {
			out.Append(s, style)
		}
	}
	add(m[1], st.Muted)
	add(m[2], st.Text)
	add(m[3], levelStyle(m[3], st))
	add(m[4], st.Text)
	add(m[5], st.Accent)
	add(m[6], st.Text)
	return out
}

func levelStyle(level string, st theme.Styles) tcell.Style {
	switch level {
	case "ERROR":
		return st.Danger
	case "WARN", "WARNING":
		return st.Warning
	case "INFO":
		return st.Success
	default:
		return st.Muted
	}
}

// ColorizeLines colorizes every line.
func ColorizeLines(lines []string, st theme.Styles) []*text.Line {
	out := make([]*text.Line, len(lines))
	for i, l := range lines {
		out[i] = Colorize(l, st)
	}
	return out
}
