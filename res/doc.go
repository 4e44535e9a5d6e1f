// Package res reconstructs in-memory object graphs from pointer-linked
// binary resource archives.
//
// # Overview
//
// A resource archive stores its internal structure as absolute byte offsets
// rather than nested values: a record's fixed-size body sits at one position
// in the file and refers to strings, lists, dictionaries and other records
// anywhere else in the file by 8-byte little-endian addresses, with 0
// reserved to mean "no value". This package provides the machinery to walk
// such a file and materialize the full reachable graph: a positioned Cursor,
// scoped seeks that always restore the caller's position, an offset-keyed
// identity cache that keeps shared references shared, and generic loaders
// for single values, lists, keyed dictionaries and strings.
//
// # Key Types
//
//   - Loader: one load session binding a Cursor to an identity cache
//   - Cursor: little-endian reader with absolute get/set position
//   - Loadable: implemented by every record type that parses itself
//   - Dict: an ordered name-to-record dictionary, itself a Loadable
//   - File: the materialized result of opening an archive
//
// # Record Graph
//
// Concrete record types (Archive, Model, Material, ShaderArchive, ...)
// implement Loadable: starting at the cursor's current position they consume
// exactly their own fixed footprint, delegating every offset-valued field to
// the generic loaders. The loaders seek to the target, parse, and restore
// the cursor, so a record's sequential layout and its non-local references
// never interfere.
//
// # Opening an Archive
//
//	f, err := res.Open("model.bfres")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer f.Close()
//	for i := range f.Archive.Models.Len() {
//	    _, m := f.Archive.Models.At(i)
//	    fmt.Println(m.Name)
//	}
//
// A session is strictly single-threaded: the cursor position is the one
// piece of shared mutable state, and every nested jump restores it on all
// exit paths, including failures. Errors abort the whole load; there is no
// partial-result recovery.
package res
