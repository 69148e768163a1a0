// Package schedule defines the conference program data model: talk records
// with room, start time, title, and speakers, loaded from the JSON catalog the
// schedule scraper produces. Records are values; nothing in the pipeline
// mutates them.
package schedule
