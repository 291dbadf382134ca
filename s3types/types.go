// Package s3types provides shared type definitions for the s3tool module.
package s3types

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/go-git/go-billy/v5"
)

// AddressingStyle selects how bucket names appear in request URLs.
type AddressingStyle string

const (
	// AddressingOrdinary puts the bucket in the URL path (path style)
	AddressingOrdinary AddressingStyle = "ordinary"

	// AddressingVirtualHosted puts the bucket in the host name
	AddressingVirtualHosted AddressingStyle = "virtual"
)

// ParseAddressingStyle maps a flag value to an AddressingStyle.
// The empty string selects AddressingOrdinary.
func ParseAddressingStyle(s string) (AddressingStyle, bool) {
	switch AddressingStyle(s) {
	case "", AddressingOrdinary, "path":
		return AddressingOrdinary, true
	case AddressingVirtualHosted, "virtual-hosted":
		return AddressingVirtualHosted, true
	}
	return "", false
}

// Credentials identify the caller to the object store.
// They are supplied once per invocation and never mutated.
type Credentials struct {
	AccessKeyID     string
	SecretAccessKey string

	// Region is optional. When set, addressing is forced to ordinary.
	Region string

	// Addressing is optional and only honoured when Region is empty.
	Addressing AddressingStyle

	// Endpoint optionally points at an S3-compatible store instead of AWS.
	Endpoint string
}

// CannedACL is a predefined, named access-control policy.
type CannedACL string

// Canned ACLs accepted by set-acl and upload.
const (
	// ACLPrivate grants the owner full control and nobody else access
	ACLPrivate CannedACL = "private"

	// ACLPublicRead grants everyone read access
	ACLPublicRead CannedACL = "public-read"

	// ACLPublicReadWrite grants everyone read and write access
	ACLPublicReadWrite CannedACL = "public-read-write"

	// ACLAuthenticatedRead grants authenticated users read access
	ACLAuthenticatedRead CannedACL = "authenticated-read"
)

// CannedACLs lists every accepted canned ACL in display order.
var CannedACLs = []CannedACL{
	ACLPrivate,
	ACLPublicRead,
	ACLPublicReadWrite,
	ACLAuthenticatedRead,
}

// Object carries the metadata of a resolved key.
type Object struct {
	// Key is the object key
	Key string

	// Size is the object size in bytes
	Size int64

	// LastModified is when the object was last modified
	LastModified time.Time

	// ETag is the entity tag for the object
	ETag string

	// ContentType is the MIME type, when known
	ContentType string
}

// ClientConfig holds configuration for a connection.
type ClientConfig struct {
	Endpoint         string
	MaxRetries       int
	Timeout          time.Duration
	CustomAWSConfig  *aws.Config
	CustomHTTPClient *http.Client
	Filesystem       billy.Filesystem // local filesystem for downloads and uploads
	Logger           *slog.Logger
	CheckConnection  bool
}

// UploadOptionConfig holds configuration for upload operations via functional options.
type UploadOptionConfig struct {
	ContentType string
	ACL         CannedACL
	Metadata    map[string]string
	PartSize    int64
}

// Option is a functional option for configuring a connection.
type (
	Option func(*ClientConfig)
	// UploadOption is a functional option for configuring upload operations.
	UploadOption func(*UploadOptionConfig)
)
