// Package openapi exposes the public contracts for the loader and parser
// stages that turn the change-record OpenAPI document into operations. The
// implementations live under internal/openapi so kin-openapi types never leak
// into the wizard packages.
package openapi
