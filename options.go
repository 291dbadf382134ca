// Package s3tool provides functional options for configuring connections and uploads.
// These options follow the functional options pattern for clean, composable configuration.
package s3tool

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/go-git/go-billy/v5"

	"github.com/input-output-hk/catalyst-forge-libs/aws/s3tool/s3types"
)

// WithEndpoint sets a custom S3 endpoint URL.
// This is useful for S3-compatible services or local testing with LocalStack.
// An endpoint given in the credentials takes precedence.
func WithEndpoint(endpoint string) s3types.Option {
	return func(c *s3types.ClientConfig) {
		c.Endpoint = endpoint
	}
}

// WithMaxRetries sets the maximum number of attempts for failed requests.
// Zero keeps the SDK default.
func WithMaxRetries(maxRetries int) s3types.Option {
	return func(c *s3types.ClientConfig) {
		c.MaxRetries = maxRetries
	}
}

// WithTimeout sets the timeout of the HTTP client used for S3 requests.
// Default is no timeout (0). Ignored when WithCustomHTTPClient is given.
func WithTimeout(timeout time.Duration) s3types.Option {
	return func(c *s3types.ClientConfig) {
		c.Timeout = timeout
	}
}

// WithAWSConfig allows providing a base AWS configuration.
// Region and credentials are still taken from the Credentials passed to Connect.
func WithAWSConfig(config *aws.Config) s3types.Option {
	return func(c *s3types.ClientConfig) {
		c.CustomAWSConfig = config
	}
}

// WithCustomHTTPClient allows providing a custom HTTP client.
// This gives full control over HTTP behavior including timeouts, proxies, etc.
func WithCustomHTTPClient(client *http.Client) s3types.Option {
	return func(c *s3types.ClientConfig) {
		c.CustomHTTPClient = client
	}
}

// WithFilesystem sets the filesystem used for local files by downloads and uploads.
// This allows using in-memory filesystems for testing.
// If not specified, paths resolve against the OS filesystem.
func WithFilesystem(filesystem billy.Filesystem) s3types.Option {
	return func(c *s3types.ClientConfig) {
		c.Filesystem = filesystem
	}
}

// WithLogger sets the logger operations report failures to.
// If not specified, nothing is logged.
func WithLogger(logger *slog.Logger) s3types.Option {
	return func(c *s3types.ClientConfig) {
		c.Logger = logger
	}
}

// WithConnectionCheck makes Connect list buckets once before returning.
// Any failure of that request yields a connection error.
func WithConnectionCheck() s3types.Option {
	return func(c *s3types.ClientConfig) {
		c.CheckConnection = true
	}
}

// WithContentType sets the content type for upload operations.
// If not specified, the type is detected from the file content.
func WithContentType(contentType string) s3types.UploadOption {
	return func(c *s3types.UploadOptionConfig) {
		c.ContentType = contentType
	}
}

// WithMetadata sets metadata for upload operations.
func WithMetadata(metadata map[string]string) s3types.UploadOption {
	return func(c *s3types.UploadOptionConfig) {
		if c.Metadata == nil {
			c.Metadata = make(map[string]string)
		}
		for k, v := range metadata {
			c.Metadata[k] = v
		}
	}
}

// WithACL applies a canned ACL to the uploaded object.
func WithACL(acl s3types.CannedACL) s3types.UploadOption {
	return func(c *s3types.UploadOptionConfig) {
		c.ACL = acl
	}
}

// WithUploadPartSize sets the part size for multipart uploads.
// Values below the S3 minimum of 5MiB are raised to it.
func WithUploadPartSize(partSize int64) s3types.UploadOption {
	return func(c *s3types.UploadOptionConfig) {
		if partSize > 0 {
			c.PartSize = partSize
		}
	}
}

func newClientConfig(opts []s3types.Option) *s3types.ClientConfig {
	cfg := &s3types.ClientConfig{}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

func newUploadConfig(opts []s3types.UploadOption) *s3types.UploadOptionConfig {
	cfg := &s3types.UploadOptionConfig{}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}
