// Package download handles S3 object download operations.
// Objects are streamed with GetObject into files on a billy filesystem,
// named after the last path segment of their key.
package download
