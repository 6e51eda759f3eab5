// Package services defines shared utilities consumed by the pipeline steps and
// the cloud integrations.
//
// Key responsibilities:
//   - Context helpers that stamp run IDs, step names, and the source video for
//     logging.
//   - Structured error markers plus the Wrap helper that classify failures
//     into consistent process exit codes.
//
// Use these helpers when wiring new step logic so error handling and
// observability stay uniform across the pipeline.
package services
