package text

import (
	"errors"
	"fmt"
)

// ErrTerminalTooSmall matches every TerminalTooSmallError with errors.Is.
var ErrTerminalTooSmall = errors.New("terminal too small")

// TerminalTooSmallError reports content that cannot fit the width it was given.
type TerminalTooSmallError struct {
	What  string // the text or element that did not fit
	Width int    // width available
	Need  int    // smallest width that would have worked
}

func (e *TerminalTooSmallError) Error() string {
	return fmt.Sprintf("terminal too small: cannot fit %q in %d cells (need %d)", e.What, e.Width, e.Need)
}

func (e *TerminalTooSmallError) Is(target error) bool {
	return target == ErrTerminalTooSmall
}
