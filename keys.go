package s3tool

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"

	s3errors "github.com/input-output-hk/catalyst-forge-libs/aws/s3tool/errors"
	"github.com/input-output-hk/catalyst-forge-libs/aws/s3tool/internal/operations/delete"
	"github.com/input-output-hk/catalyst-forge-libs/aws/s3tool/s3types"
)

// NoKeyIsFound is the message of a deletion that matched nothing.
const NoKeyIsFound = "No key is found"

// DeleteKeys deletes the key called name when name is non-nil, otherwise
// every key starting with prefix (every key when prefix is nil too).
//
// NumKeys is the number of keys deleted. It is 0, with the message
// "No key is found", when nothing matched, and -1 when the bucket could not
// be resolved or listed, or when no matched key could be deleted. Partial
// failures keep the count of keys that were deleted and are joined into
// Message.
func DeleteKeys(ctx context.Context, bucket BucketResult, name, prefix *string) s3types.KeyDeletion {
	res := s3types.KeyDeletion{
		BucketName: bucket.Name(),
		KeyName:    name,
		Prefix:     prefix,
		Keys:       []string{},
	}

	if name != nil {
		return deleteOne(ctx, bucket, *name, res)
	}

	b, err := bucket.Get()
	if err != nil {
		res.NumKeys = -1
		res.Message = message(err)
		return res
	}

	deleted, err := delete.New(b.conn.api).DeletePrefix(ctx, b.name, prefix)
	if err != nil {
		res.NumKeys = -1
		res.Message = message(err)
		return res
	}
	if deleted.Matched == 0 {
		res.Message = aws.String(NoKeyIsFound)
		return res
	}

	res.NumKeys = len(deleted.Deleted)
	res.Keys = append(res.Keys, deleted.Deleted...)
	if deleted.Err != nil && len(deleted.Deleted) == 0 {
		res.NumKeys = -1
	}
	if deleted.Err != nil {
		b.conn.logger.WarnContext(ctx, "some keys were not deleted",
			"bucket", b.name,
			"matched", deleted.Matched,
			"deleted", len(deleted.Deleted),
			"error", deleted.Err)
		res.Message = message(deleted.Err)
	}
	return res
}

// deleteOne resolves the key first so that a missing key is reported as
// "No key is found" rather than silently succeeding.
func deleteOne(ctx context.Context, bucket BucketResult, name string, res s3types.KeyDeletion) s3types.KeyDeletion {
	if !bucket.OK() {
		res.NumKeys = -1
		res.Message = message(bucket.Err())
		return res
	}

	k, err := ResolveKey(ctx, bucket, name).Get()
	switch {
	case s3errors.IsNotFound(err):
		res.Message = aws.String(NoKeyIsFound)
		return res
	case err != nil:
		res.NumKeys = -1
		res.Message = message(err)
		return res
	}

	b := k.bucket
	if err := delete.New(b.conn.api).DeleteKey(ctx, b.name, name); err != nil {
		b.conn.logger.ErrorContext(ctx, "failed to delete key", "bucket", b.name, "key", name, "error", err)
		res.NumKeys = -1
		res.Message = message(err)
		return res
	}

	res.NumKeys = 1
	res.Keys = append(res.Keys, name)
	return res
}
