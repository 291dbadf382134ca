package s3tool

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"

	s3errors "github.com/input-output-hk/catalyst-forge-libs/aws/s3tool/errors"
	"github.com/input-output-hk/catalyst-forge-libs/aws/s3tool/internal/operations/delete"
	"github.com/input-output-hk/catalyst-forge-libs/aws/s3tool/internal/validation"
	"github.com/input-output-hk/catalyst-forge-libs/aws/s3tool/s3types"
)

const (
	opCreateBucket = "creating bucket"
	opDeleteBucket = "deleting bucket"
)

// CreateBucket creates a bucket at location, given by name ("EU") or by
// constraint ("eu-central-1"). An empty location selects the default.
//
// An existing bucket is never modified: the result has IsCreated false and
// the message "Bucket <name> already exists".
//
// Errors reported in Message:
//   - LocalInputError: the name is not a valid bucket name or the location is unknown
//   - AccessDenied: the bucket exists but is owned by another account
//   - ProtocolError: any other provider fault
func CreateBucket(ctx context.Context, conn ConnectionResult, name, location string) s3types.BucketCreation {
	res := s3types.BucketCreation{BucketName: name, Location: location}

	c, err := conn.Get()
	if err != nil {
		res.Message = message(err)
		return res
	}

	if err := validation.ValidateBucketName(name); err != nil {
		res.Message = message(err)
		return res
	}

	loc, err := validation.LookupLocation(location)
	if err != nil {
		res.Message = message(err)
		return res
	}
	res.Location = loc.Name

	existing := ResolveBucket(ctx, conn, name)
	if existing.OK() {
		res.Message = aws.String(alreadyExists(name))
		return res
	}
	if !s3errors.IsNotFound(existing.Err()) {
		res.Message = message(existing.Err())
		return res
	}

	input := &s3.CreateBucketInput{Bucket: aws.String(name)}
	if loc.Constraint != "" {
		input.CreateBucketConfiguration = &types.CreateBucketConfiguration{
			LocationConstraint: types.BucketLocationConstraint(loc.Constraint),
		}
	}

	if _, err := c.api.CreateBucket(ctx, input); err != nil {
		e := s3errors.FromAPI(opCreateBucket, name, "", err)
		switch e.Code {
		case "BucketAlreadyOwnedByYou", "BucketAlreadyExists":
			res.Message = aws.String(alreadyExists(name))
		default:
			c.logger.ErrorContext(ctx, "failed to create bucket", "bucket", name, "error", e)
			res.Message = message(e)
		}
		return res
	}

	res.IsCreated = true
	return res
}

// DeleteBucket deletes every key of the bucket, then the bucket itself.
//
// Key deletion is best effort: a failing key does not stop the others, and
// the bucket deletion is attempted regardless, even when the keys could not
// be listed. IsDeleted is true only when the
// bucket deletion succeeds. Message joins every key failure and the bucket
// failure with "; ". NumKeys counts the keys actually deleted.
func DeleteBucket(ctx context.Context, conn ConnectionResult, name string) s3types.BucketDeletion {
	res := s3types.BucketDeletion{BucketName: name}

	b, err := ResolveBucket(ctx, conn, name).Get()
	if err != nil {
		res.Message = message(err)
		return res
	}
	c := b.conn

	keys, err := delete.New(c.api).DeletePrefix(ctx, name, nil)
	if err != nil {
		c.logger.WarnContext(ctx, "failed to list keys before deleting bucket", "bucket", name, "error", err)
		keys = &delete.Result{Err: err}
	}
	res.NumKeys = len(keys.Deleted)
	if keys.Err != nil && err == nil {
		c.logger.WarnContext(ctx, "some keys were not deleted",
			"bucket", name,
			"matched", keys.Matched,
			"deleted", len(keys.Deleted),
			"error", keys.Err)
	}

	var bucketErr error
	if _, err := c.api.DeleteBucket(ctx, &s3.DeleteBucketInput{Bucket: aws.String(name)}); err != nil {
		bucketErr = s3errors.FromAPI(opDeleteBucket, name, "", err)
		c.logger.ErrorContext(ctx, "failed to delete bucket", "bucket", name, "error", bucketErr)
	}

	res.IsDeleted = bucketErr == nil
	res.Message = message(s3errors.Join(keys.Err, bucketErr))
	return res
}

func alreadyExists(name string) string {
	return fmt.Sprintf("Bucket %s already exists", name)
}
