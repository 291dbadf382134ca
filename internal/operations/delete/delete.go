package delete

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/input-output-hk/catalyst-forge-libs/aws/s3tool/errors"
	"github.com/input-output-hk/catalyst-forge-libs/aws/s3tool/internal/operations/list"
)

// S3Interface defines the S3 operations we need.
type S3Interface interface {
	list.S3Interface
	DeleteObject(
		ctx context.Context,
		input *s3.DeleteObjectInput,
		opts ...func(*s3.Options),
	) (*s3.DeleteObjectOutput, error)
}

// Deleter deletes keys sequentially.
type Deleter struct {
	client S3Interface
	lister *list.Lister
}

// New creates a new Deleter.
func New(client S3Interface) *Deleter {
	return &Deleter{
		client: client,
		lister: list.New(client),
	}
}

// Result reports the outcome of a multi-key deletion.
type Result struct {
	// Matched is the number of keys the listing returned
	Matched int

	// Deleted holds the keys removed, in deletion order
	Deleted []string

	// Err aggregates per-key failures, nil when every key was deleted
	Err error
}

// DeleteKey deletes a single key.
func (d *Deleter) DeleteKey(ctx context.Context, bucket, key string) error {
	_, err := d.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return errors.FromAPI("deleting key", bucket, key, err)
	}
	return nil
}

// DeleteKeys deletes every key in keys, continuing past failures.
func (d *Deleter) DeleteKeys(ctx context.Context, bucket string, keys []string) *Result {
	result := &Result{Matched: len(keys)}
	var failures []error

	for _, key := range keys {
		if err := d.DeleteKey(ctx, bucket, key); err != nil {
			failures = append(failures, err)
			continue
		}
		result.Deleted = append(result.Deleted, key)
	}

	result.Err = errors.Join(failures...)
	return result
}

// DeletePrefix lists the keys under prefix (every key when prefix is nil)
// and deletes them with DeleteKeys. The listing completes before the first
// deletion; a listing failure is returned as the error and nothing is deleted.
func (d *Deleter) DeletePrefix(ctx context.Context, bucket string, prefix *string) (*Result, error) {
	var keys []string
	for obj, err := range d.lister.Objects(ctx, &list.Config{Bucket: bucket, Prefix: prefix}) {
		if err != nil {
			return nil, errors.FromAPI("getting bucket list", bucket, "", err)
		}
		keys = append(keys, obj.Key)
	}

	return d.DeleteKeys(ctx, bucket, keys), nil
}
