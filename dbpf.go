// Package dbpf reads and writes DBPF (Database Packed File) archives: the
// container format used by SimCity 4 and related titles to bundle game
// records — Exemplars, Cohorts, localized text, and raw binary blobs —
// identified by a (Type, Group, Instance) triple and optionally compressed
// with QFS/RefPack.
//
// # Basic usage
//
// Opening an archive and reading an entry:
//
//	a, err := dbpf.Open("SimCity_1.sc4")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer a.Close()
//
//	entry, err := a.GetEntry(tgi.New(0x6534284A, 0xA8FBD372, 0x00000001))
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	data, err := entry.GetUncompressedData()
//
// Building a new archive:
//
//	a, _ := dbpf.Create()
//	a.Add(tgi.New(0x2026960B, 0x00000000, 0x00000001), payload, true)
//	if err := a.SaveAs("new.dat"); err != nil {
//	    log.Fatal(err)
//	}
//
// # Package structure
//
// This package is a thin convenience wrapper over [archive.Archive]. For
// the on-disk record types (Exemplar/Cohort, LTEXT) and the QFS codec, use
// the exemplar, ltext, and qfs packages directly.
package dbpf

import "github.com/0xC0000054/dbpf/archive"

// Archive is re-exported so callers need only import this package for the
// common case.
type Archive = archive.Archive

// Option configures Open or Create.
type Option = archive.Option

// WithPreloadPayloads causes Open to read every entry's payload into memory
// immediately instead of deferring reads to the first GetEntry call.
func WithPreloadPayloads() Option {
	return archive.WithPreloadPayloads()
}

// Open reads and validates an existing DBPF archive at path.
func Open(path string, opts ...Option) (*Archive, error) {
	return archive.Open(path, opts...)
}

// Create returns a new, empty in-memory archive with no backing file until
// Save or SaveAs is called.
func Create(opts ...Option) (*Archive, error) {
	return archive.Create(opts...)
}
