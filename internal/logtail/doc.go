// Package logtail reads the end of text files for display in a pane.
//
// Tail keeps the last N lines with a ring buffer, so memory stays at
// O(N × line length) however large the file is. Lines are sanitized on the
// way in: tabs become spaces and other control characters are dropped, since
// a pane writes cells one character at a time. Files containing NUL bytes are
// rejected with ErrBinary.
//
//	lines, err := logtail.Tail(ctx, "/var/log/app.log", 400)
//	if err != nil {
//		return err
//	}
//	rows := logtail.ColorizeLines(lines, theme.Get("Nightfox").Styles())
//
// Colorize recognizes "2024-10-10 14:32:15 INFO [component] message" lines
// and styles the timestamp, level and component. Anything else is shown as
// plain text. It never fails.
//
// A missing file is not an error: Tail returns nil, nil. Permission and I/O
// errors are wrapped with the path.
package logtail
