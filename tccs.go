// Package tccs extracts clean article records from a news publisher's
// pages, classifies article images by provenance, and drives batch
// fetch/extract runs for an editorial workflow (checking, archiving and
// payment forms).
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., goquery/, readability/, excelize/).
package tccs
