// Package ui provides the colour palettes shared by the plain runner and the
// dashboard, and the NO_COLOR handling that switches them off.
package ui
