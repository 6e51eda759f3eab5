// Package preflight provides readiness checks for the binaries, credentials,
// and filesystem paths vidscribe depends on.
//
// These checks run in two contexts:
//   - The pipeline calls RunAll before extracting audio. If any check fails,
//     the run stops before touching the cloud.
//   - The "vidscribe doctor" command renders the same results as a table.
package preflight
