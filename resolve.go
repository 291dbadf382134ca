package s3tool

import (
	"context"
	"iter"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	s3errors "github.com/input-output-hk/catalyst-forge-libs/aws/s3tool/errors"
	"github.com/input-output-hk/catalyst-forge-libs/aws/s3tool/internal/operations/list"
	"github.com/input-output-hk/catalyst-forge-libs/aws/s3tool/s3types"
)

// Resolution steps, appended to provider messages as "... when <step>".
const (
	opGetBucket = "getting bucket"
	opGetKey    = "getting key"
	opListKeys  = "getting bucket list"
)

// Bucket is a name-scoped capability derived from a connection.
type Bucket struct {
	conn *Connection
	name string
}

// Name returns the bucket name.
func (b *Bucket) Name() string {
	return b.name
}

// Connection returns the connection the bucket was resolved on.
func (b *Bucket) Connection() *Connection {
	return b.conn
}

// Key is an object-scoped capability carrying the metadata seen when it was resolved.
type Key struct {
	bucket *Bucket
	object s3types.Object
}

// Name returns the key name.
func (k *Key) Name() string {
	return k.object.Key
}

// Bucket returns the bucket the key belongs to.
func (k *Key) Bucket() *Bucket {
	return k.bucket
}

// Object returns the key's metadata.
func (k *Key) Object() s3types.Object {
	return k.object
}

// Listing enumerates the keys of a bucket, optionally restricted to a prefix.
type Listing struct {
	bucket *Bucket
	prefix *string
}

// Bucket returns the listed bucket.
func (l *Listing) Bucket() *Bucket {
	return l.bucket
}

// Prefix returns the prefix filter, nil when every key is listed.
func (l *Listing) Prefix() *string {
	return l.prefix
}

// Keys returns a single-pass sequence over the listed keys. Each call starts
// a fresh listing. A provider failure is yielded once and ends the sequence.
func (l *Listing) Keys(ctx context.Context) iter.Seq2[*Key, error] {
	return func(yield func(*Key, error) bool) {
		lister := list.New(l.bucket.conn.api)
		for obj, err := range lister.Objects(ctx, &list.Config{Bucket: l.bucket.name, Prefix: l.prefix}) {
			if err != nil {
				e := s3errors.FromAPI(opListKeys, l.bucket.name, "", err)
				l.bucket.conn.logger.WarnContext(ctx, "key listing failed", "bucket", l.bucket.name, "error", e)
				yield(nil, e)
				return
			}
			if !yield(&Key{bucket: l.bucket, object: obj}, nil) {
				return
			}
		}
	}
}

// ResolveBucket resolves a bucket name on conn.
//
// A failed conn is forwarded unchanged without contacting the store. A
// missing bucket fails with a NotFound error; other provider faults carry
// the provider code and message.
func ResolveBucket(ctx context.Context, conn ConnectionResult, name string) BucketResult {
	c, err := conn.Get()
	if err != nil {
		return BucketFailed(name, err)
	}

	if _, err := c.api.HeadBucket(ctx, &s3.HeadBucketInput{Bucket: aws.String(name)}); err != nil {
		e := s3errors.FromAPI(opGetBucket, name, "", err)
		c.logger.WarnContext(ctx, "bucket not resolved", "bucket", name, "error", e)
		return BucketFailed(name, e)
	}

	return BucketResult{newResult(opGetBucket, &Bucket{conn: c, name: name}, nil), name}
}

// ResolveKey resolves a key in bucket, capturing its size, modification
// time, ETag and content type. A failed bucket is forwarded unchanged.
func ResolveKey(ctx context.Context, bucket BucketResult, name string) KeyResult {
	b, err := bucket.Get()
	if err != nil {
		return KeyFailed(bucket.Name(), name, err)
	}

	out, err := b.conn.api.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(b.name),
		Key:    aws.String(name),
	})
	if err != nil {
		e := s3errors.FromAPI(opGetKey, b.name, name, err)
		b.conn.logger.WarnContext(ctx, "key not resolved", "bucket", b.name, "key", name, "error", e)
		return KeyFailed(b.name, name, e)
	}

	key := &Key{
		bucket: b,
		object: s3types.Object{
			Key:          name,
			Size:         aws.ToInt64(out.ContentLength),
			LastModified: aws.ToTime(out.LastModified),
			ETag:         aws.ToString(out.ETag),
			ContentType:  aws.ToString(out.ContentType),
		},
	}
	return KeyResult{newResult(opGetKey, key, nil), b.name, name}
}

// ListKeys prepares a listing of bucket, restricted to keys starting with
// prefix when prefix is non-nil. No request is made until the listing's
// Keys are iterated. A failed bucket is forwarded unchanged.
func ListKeys(bucket BucketResult, prefix *string) ListingResult {
	b, err := bucket.Get()
	if err != nil {
		return ListingFailed(bucket.Name(), prefix, err)
	}
	return ListingResult{newResult(opListKeys, &Listing{bucket: b, prefix: prefix}, nil), b.name, prefix}
}
