package layout

import "github.com/five82/tinywin/internal/pane"

// TabChain is a linear focus order independent of where panes sit on screen.
type TabChain struct {
	panes []pane.Focusable
	wrap  bool
}

// NewTabChain returns a chain over panes in the given order.
func NewTabChain(wrap bool, panes ...pane.Focusable) *TabChain {
	return &TabChain{panes: panes, wrap: wrap}
}

// Len is the number of panes in the chain.
func (c *TabChain) Len() int { return len(c.panes) }

// Wrap reports whether stepping past either end wraps around.
func (c *TabChain) Wrap() bool { return c.wrap }

// Forward focuses the next pane. It reports false when the chain is empty or
// when the last pane is focused and the chain does not wrap.
func (c *TabChain) Forward() bool { return c.step(1) }

// Back focuses the previous pane, with the same boundary rule as Forward.
func (c *TabChain) Back() bool { return c.step(-1) }

func (c *TabChain) step(dir int) bool {
	if len(c.panes) == 0 {
		return false
	}
	current := -1
	for i, p := range c.panes {
		if p.Focused() {
			current = i
			break
		}
	}
	if current < 0 {
		c.panes[0].Focus()
		return true
	}

	next := current + dir
	if next < 0 || next >= len(c.panes) {
		if !c.wrap {
			return false
		}
		next = (next + len(c.panes)) % len(c.panes)
	}
	c.panes[current].Unfocus()
	c.panes[next].Focus()
	return true
}
