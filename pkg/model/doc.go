// Package model defines the form model consumed by the wizard and its
// renderers. Builders reside in internal/model but return the types defined
// here. Schema extensions under the `x-changewizard` namespace flow into
// Field.Metadata; the `widget`, `placeholder`, and `helpText` keys also land
// in Field.UIHints. Sections carry the ordered wizard steps once a layout
// decorator has run.
package model
