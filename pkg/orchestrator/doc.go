// Package orchestrator wires the OpenAPI loader, parser, model builder, and
// step layout decorators into the change form model the wizard runs on.
package orchestrator
