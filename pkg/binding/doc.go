// Package binding abstracts the form controls the wizard reads and writes.
// Controls are addressed by logical name: record fields use their field
// name, radio groups their group name, and auxiliary controls ids such as
// "systems-input" or "backout-required".
package binding
