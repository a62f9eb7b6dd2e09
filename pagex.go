// Package pagex extracts the main content beneath a page's primary heading,
// sanitizes it, and exports batches of results as tabular or XML datasets.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., goquery/, rod/, sqlite/, etree/).
package pagex
