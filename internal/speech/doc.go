// Package speech submits long-running recognition jobs and collects their
// transcripts.
//
// Recognizer abstracts the service that accepts a Request and returns an
// Operation handle. GoogleRecognizer backs it with the Cloud Speech-to-Text
// v1 API. Transcriber drives a single job: it submits the request, polls the
// operation on a fixed interval until it completes or the deadline passes,
// and joins the best alternative of every result into the transcript text.
package speech
