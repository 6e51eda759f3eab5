// Package main hosts the vidscribe CLI entrypoint and command graph.
//
// The root command transcribes a single video: it loads the .env file and
// configuration, wires the extractor, Cloud Storage uploader, and Speech
// client into a pipeline, runs it, and prints a step summary. The config and
// doctor subcommands scaffold configuration and report readiness.
package main
