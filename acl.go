package s3tool

import (
	"context"

	"github.com/input-output-hk/catalyst-forge-libs/aws/s3tool/internal/operations/acl"
	"github.com/input-output-hk/catalyst-forge-libs/aws/s3tool/internal/validation"
	"github.com/input-output-hk/catalyst-forge-libs/aws/s3tool/s3types"
)

// GetBucketACL returns the grants of bucket.
// On failure it returns a single grant whose fields are null except Message.
func GetBucketACL(ctx context.Context, bucket BucketResult) []s3types.Grant {
	b, err := bucket.Get()
	if err != nil {
		return grantFailure(err)
	}

	grants, err := acl.New(b.conn.api).BucketGrants(ctx, b.name)
	if err != nil {
		b.conn.logger.WarnContext(ctx, "failed to get bucket acl", "bucket", b.name, "error", err)
		return grantFailure(err)
	}
	return grants
}

// GetKeyACL returns the grants of key.
// On failure it returns a single grant whose fields are null except Message.
func GetKeyACL(ctx context.Context, key KeyResult) []s3types.Grant {
	k, err := key.Get()
	if err != nil {
		return grantFailure(err)
	}

	b := k.bucket
	grants, err := acl.New(b.conn.api).KeyGrants(ctx, b.name, k.Name())
	if err != nil {
		b.conn.logger.WarnContext(ctx, "failed to get key acl", "bucket", b.name, "key", k.Name(), "error", err)
		return grantFailure(err)
	}
	return grants
}

// SetBucketACL applies the canned ACL named by permission to bucket and
// returns the resulting grants. A permission outside private, public-read,
// public-read-write and authenticated-read is rejected before any request.
func SetBucketACL(ctx context.Context, bucket BucketResult, permission string) []s3types.Grant {
	canned, err := validation.ValidateCannedACL(permission)
	if err != nil {
		return grantFailure(err)
	}

	b, err := bucket.Get()
	if err != nil {
		return grantFailure(err)
	}

	if err := acl.New(b.conn.api).SetBucket(ctx, b.name, canned); err != nil {
		b.conn.logger.ErrorContext(ctx, "failed to set bucket acl",
			"bucket", b.name,
			"permission", permission,
			"error", err)
		return grantFailure(err)
	}
	return GetBucketACL(ctx, bucket)
}

// SetKeyACL applies the canned ACL named by permission to key and returns
// the resulting grants. Invalid permissions are rejected before any request.
func SetKeyACL(ctx context.Context, key KeyResult, permission string) []s3types.Grant {
	canned, err := validation.ValidateCannedACL(permission)
	if err != nil {
		return grantFailure(err)
	}

	k, err := key.Get()
	if err != nil {
		return grantFailure(err)
	}

	b := k.bucket
	if err := acl.New(b.conn.api).SetKey(ctx, b.name, k.Name(), canned); err != nil {
		b.conn.logger.ErrorContext(ctx, "failed to set key acl",
			"bucket", b.name,
			"key", k.Name(),
			"permission", permission,
			"error", err)
		return grantFailure(err)
	}
	return GetKeyACL(ctx, key)
}

func grantFailure(err error) []s3types.Grant {
	return []s3types.Grant{{Message: message(err)}}
}
