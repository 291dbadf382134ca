// Package delete handles S3 object deletion operations.
//
// Keys are deleted one DeleteObject call at a time, in listing order, and a
// failing key does not stop the keys after it. Failures are aggregated into a
// single error.
package delete
