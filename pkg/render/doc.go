// Package render holds the text helpers shared by the terminal screens.
// Templates live in the template subpackage.
package render
