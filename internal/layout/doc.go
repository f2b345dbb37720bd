// Package layout partitions a terminal into a grid of equal cells, places
// panes over cell spans and moves focus between them by direction, by tab
// order, by hot key or by mouse.
package layout
