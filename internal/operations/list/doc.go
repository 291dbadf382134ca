// Package list handles S3 object listing operations.
//
// Listings are exposed as iter.Seq2 sequences that page through
// ListObjectsV2 lazily. Each range over a sequence starts a fresh listing,
// nothing is buffered between passes.
package list
