// Package validation holds the local argument checks run before any request
// is sent: canned ACLs, bucket locations, bucket names, keys, upload prefixes
// and metadata.
package validation
