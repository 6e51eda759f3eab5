// Package gcp builds the client options shared by the Google Cloud clients.
package gcp

import (
	"strings"

	"google.golang.org/api/option"
)

// Credentials identifies the project and optional key file used by the clients.
type Credentials struct {
	ProjectID string
	// CredentialsFile is a service account key. Empty uses application
	// default credentials (GOOGLE_APPLICATION_CREDENTIALS, gcloud, metadata).
	CredentialsFile string
}

// ClientOptions returns the options passed to every Google Cloud client.
func ClientOptions(creds Credentials) []option.ClientOption {
	var opts []option.ClientOption
	if project := strings.TrimSpace(creds.ProjectID); project != "" {
		opts = append(opts, option.WithQuotaProject(project))
	}
	if file := strings.TrimSpace(creds.CredentialsFile); file != "" {
		opts = append(opts, option.WithCredentialsFile(file))
	}
	return opts
}
