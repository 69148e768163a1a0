// Package pyvideo converts downloaded video metadata into the JSON tree
// format used by the PyVideo.org conference index.
//
// The converter reads yt-dlp info documents for a published playlist,
// attributes speakers from the conference schedule, cleans up uploader
// boilerplate in descriptions, clamps recorded dates into the conference
// range, and writes one metadata document per talk plus a category
// document for the conference.
package pyvideo
