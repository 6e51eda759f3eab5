// Package config loads, normalizes, and validates vidscribe configuration data.
//
// Settings come from three layers: repository defaults, an optional TOML file,
// and the process environment. LoadDotenv merges a local .env file into the
// environment first without overriding variables that are already set, so the
// required GCP_PROJECT_ID, GCS_BUCKET_NAME, and AUDIO_LANGUAGE_CODE values can
// live in either place.
//
// Components receive the resulting Config value explicitly; nothing below the
// CLI reads the environment.
package config
