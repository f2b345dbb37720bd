// Package text models a styled logical line and its width-constrained display
// form.
//
// A Line is an ordered list of Segments. The logical segments are never
// modified by truncation; ShortenToFit always derives the display segments
// from them, so shortening to the same width twice gives the same result.
// Lengths are counted in grapheme clusters (github.com/rivo/uniseg).
//
// When a line does not fit, characters are removed from the end until the
// remaining text plus the ellipsis marker fits. If the segment that was cut
// now ends in a space, that space is dropped so the ellipsis does not follow
// a gap. A width smaller than the ellipsis itself is a TerminalTooSmallError.
package text
