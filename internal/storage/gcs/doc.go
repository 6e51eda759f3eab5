// Package gcs uploads local audio artifacts to Google Cloud Storage.
//
// Uploader streams a file into an ObjectStore and returns the object's
// gs://<bucket>/<object> URI. GoogleStore backs the interface with the Cloud
// Storage client; tests substitute an in-memory store. Uploads always
// overwrite; there is no versioning or retry at this layer.
package gcs
