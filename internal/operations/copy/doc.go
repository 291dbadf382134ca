// Package copy handles server-side S3 object copies.
//
// A copy is a CopyObject call followed by re-applying the source object's
// access control policy to the destination, so grants survive the copy.
package copy
