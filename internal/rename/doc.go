// Package rename is the talk-to-file matching and filename-generation engine.
//
// It reconciles two independently produced, loosely structured records: a
// scheduling record (room, time, speakers, title) and a vendor-typed video
// filename. Filenames are decomposed into tokens, matched against the program
// on room plus normalized time plus speaker-name overlap, and matched talks
// get a clean publication filename. Files that match nothing are flagged for
// manual review rather than dropped; talks that match nothing are reported.
//
// Everything here is a pure function over in-memory values: no I/O, no shared
// state, safe to call concurrently across independent talks. The surrounding
// organizer applies plans to disk.
package rename
