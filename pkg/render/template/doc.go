// Package template defines the renderer seam the terminal screens draw
// through. The gotemplate subpackage provides the pongo2 implementation.
package template
