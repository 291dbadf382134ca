package s3tool

import (
	s3errors "github.com/input-output-hk/catalyst-forge-libs/aws/s3tool/errors"
)

// result holds exactly one of a handle or an error. The zero value, and a
// result built from neither, report an Unhandled error.
type result[H any] struct {
	handle *H
	err    error
	op     string
}

func newResult[H any](op string, handle *H, err error) result[H] {
	if err != nil {
		return result[H]{err: err, op: op}
	}
	return result[H]{handle: handle, op: op}
}

// Get returns the handle, or the error that prevented resolving it.
func (r result[H]) Get() (*H, error) {
	if err := r.Err(); err != nil {
		return nil, err
	}
	return r.handle, nil
}

// Err returns the failure cause, or nil when the result holds a handle.
func (r result[H]) Err() error {
	if r.err != nil {
		return r.err
	}
	if r.handle == nil {
		return s3errors.NewError(r.op, s3errors.KindUnhandled, nil)
	}
	return nil
}

// OK reports whether the result holds a handle.
func (r result[H]) OK() bool {
	return r.Err() == nil
}

// ConnectionResult is either a live connection or the reason it failed.
type ConnectionResult struct {
	result[Connection]
}

// ConnectionFailed returns a failed ConnectionResult carrying err.
func ConnectionFailed(err error) ConnectionResult {
	return ConnectionResult{newResult[Connection]("connecting", nil, err)}
}

// BucketResult is either a bucket handle or the reason it could not be resolved.
type BucketResult struct {
	result[Bucket]
	name string
}

// BucketFailed returns a failed BucketResult for the named bucket.
func BucketFailed(name string, err error) BucketResult {
	return BucketResult{newResult[Bucket](opGetBucket, nil, err), name}
}

// Name returns the requested bucket name, whether or not it resolved.
func (r BucketResult) Name() string {
	return r.name
}

// KeyResult is either a key handle or the reason it could not be resolved.
type KeyResult struct {
	result[Key]
	bucket string
	name   string
}

// KeyFailed returns a failed KeyResult for the named key.
func KeyFailed(bucket, name string, err error) KeyResult {
	return KeyResult{newResult[Key](opGetKey, nil, err), bucket, name}
}

// BucketName returns the bucket the key was requested from.
func (r KeyResult) BucketName() string {
	return r.bucket
}

// Name returns the requested key name, whether or not it resolved.
func (r KeyResult) Name() string {
	return r.name
}

// ListingResult is either a key listing or the reason it could not be made.
type ListingResult struct {
	result[Listing]
	bucket string
	prefix *string
}

// ListingFailed returns a failed ListingResult for bucket and prefix.
func ListingFailed(bucket string, prefix *string, err error) ListingResult {
	return ListingResult{newResult[Listing](opListKeys, nil, err), bucket, prefix}
}

// BucketName returns the bucket the listing was requested for.
func (r ListingResult) BucketName() string {
	return r.bucket
}

// Prefix returns the requested prefix, nil when every key was requested.
func (r ListingResult) Prefix() *string {
	return r.prefix
}
