// Package pipeline runs one video through extraction, upload, recognition,
// and transcript persistence.
//
// Run executes the steps strictly in order and stops at the first failure.
// Artifacts from earlier steps are left in place when a later step fails so
// the operator can inspect or retry them; the local audio file is removed only
// after the transcript is on disk. An advisory lock in the output directory
// keeps two runs from processing the same video concurrently.
package pipeline
