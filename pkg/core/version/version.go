// ============================================================================
// TaxWise NG - Progressive Income Tax Calculator
// ============================================================================
//
// Package:     version
// Description: Central version management for binaries and services
// Author:      TaxWise NG Team
// Created:     2026-10-14
// License:     MIT
// ============================================================================

package version

import "fmt"

// Version constants for TaxWise components
const (
	// Application version
	App = "1.0.0"

	// API versions
	HTTPAPI = "v1"
	GRPCAPI = "taxwise.v1"

	// Bracket table year shipped as default
	TableYear = 2026
)

// Set at build time via -ldflags "-X github.com/msto63/taxwise/pkg/core/version.Commit=..."
var (
	Commit    = "dev"
	BuildDate = "unknown"
)

// ServiceVersion returns the version for a given component name
func ServiceVersion(name string) string {
	switch name {
	case "http":
		return HTTPAPI
	case "grpc":
		return GRPCAPI
	default:
		return App
	}
}

// String returns a one-line version description
func String() string {
	return fmt.Sprintf("taxwise %s (commit %s, built %s, tables %d)", App, Commit, BuildDate, TableYear)
}
