// Package attribute resolves externally hosted video titles back to the
// conference schedule so published videos can credit their speakers.
//
// Resolution prefers fuzzy title lookup against the schedule catalog and
// only accepts matches at a configurable confidence threshold. Titles that
// embed their speaker survive a failed lookup through a direct parse, and
// anything still unresolved is flagged for manual review rather than
// guessed at.
package attribute
