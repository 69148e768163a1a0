// Command greenroom runs the conference video publishing pipeline:
// fetching vendor uploads, renaming them to the published format from the
// conference schedule, and generating PyVideo metadata trees.
package main
