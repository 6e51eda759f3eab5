// Package audio extracts the speech track of a video into an MP3 file.
//
// Select ranks a container's audio streams against the recognition
// language (matching base languages, so "spa" satisfies "es-ES"), preferring
// default-flagged streams on ties. Extractor probes the video with ffprobe,
// maps the selected stream through ffmpeg's libmp3lame encoder, and verifies
// a non-empty file was written.
//
// Primary entry points:
//   - Select: picks the audio stream to extract
//   - Extractor.Extract: writes <output_dir>/<stem>.mp3
package audio
