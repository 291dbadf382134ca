package s3tool

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	s3errors "github.com/input-output-hk/catalyst-forge-libs/aws/s3tool/errors"
	"github.com/input-output-hk/catalyst-forge-libs/aws/s3tool/s3types"
)

// NoKeyFound is the message of the single record returned for an empty listing.
const NoKeyFound = "No key found"

// LookupBucket reports whether a bucket can be resolved on conn.
func LookupBucket(ctx context.Context, conn ConnectionResult, name string) s3types.BucketLookup {
	bucket := ResolveBucket(ctx, conn, name)
	return s3types.BucketLookup{
		BucketName: name,
		IsExists:   bucket.OK(),
		Message:    message(bucket.Err()),
	}
}

// LookupKey reports whether a key can be resolved in bucket.
func LookupKey(ctx context.Context, bucket BucketResult, name string) s3types.KeyLookup {
	key := ResolveKey(ctx, bucket, name)
	return s3types.KeyLookup{
		BucketName: bucket.Name(),
		KeyName:    name,
		IsExists:   key.OK(),
		Message:    message(key.Err()),
	}
}

// ListBuckets returns every bucket visible to conn with its creation time.
// On failure it returns a single entry carrying the message.
func ListBuckets(ctx context.Context, conn ConnectionResult) []s3types.BucketEntry {
	c, err := conn.Get()
	if err != nil {
		return []s3types.BucketEntry{{Message: message(err)}}
	}

	out, err := c.api.ListBuckets(ctx, &s3.ListBucketsInput{})
	if err != nil {
		e := s3errors.FromAPI("getting all buckets", "", "", err)
		c.logger.ErrorContext(ctx, "failed to list buckets", "error", e)
		return []s3types.BucketEntry{{Message: message(e)}}
	}

	entries := make([]s3types.BucketEntry, 0, len(out.Buckets))
	for _, b := range out.Buckets {
		entries = append(entries, s3types.BucketEntry{
			Name:    b.Name,
			Created: b.CreationDate,
		})
	}
	return entries
}

// ListKeyEntries materializes a listing into key records.
//
// An empty listing yields exactly one record whose message is "No key found".
// A failure yields exactly one record whose message is the cause, discarding
// any keys seen before it.
func ListKeyEntries(ctx context.Context, listing ListingResult) []s3types.KeyEntry {
	l, err := listing.Get()
	if err != nil {
		return []s3types.KeyEntry{{Message: message(err)}}
	}

	var entries []s3types.KeyEntry
	for key, err := range l.Keys(ctx) {
		if err != nil {
			return []s3types.KeyEntry{{Message: message(err)}}
		}
		obj := key.Object()
		modified := obj.LastModified
		entries = append(entries, s3types.KeyEntry{
			KeyName:  aws.String(obj.Key),
			Size:     aws.Int64(obj.Size),
			Modified: &modified,
		})
	}

	if len(entries) == 0 {
		return []s3types.KeyEntry{{Message: aws.String(NoKeyFound)}}
	}
	return entries
}

// message renders err for the message field of a record. A nil err yields nil.
func message(err error) *string {
	if err == nil {
		return nil
	}
	return aws.String(err.Error())
}
