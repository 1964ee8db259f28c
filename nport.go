// Package nport locates SEC Form N-PORT filings on EDGAR and extracts
// portfolio holdings from filings published as semi-structured HTML.
// It resolves a filer's latest NPORT-P filing to a concrete archive
// document, scans the document's tables with keyword heuristics, and
// returns a flat, de-duplicated sequence of holdings.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., goquery/, sqlite/, gocache/).
package nport
