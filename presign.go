package s3tool

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	s3errors "github.com/input-output-hk/catalyst-forge-libs/aws/s3tool/errors"
	"github.com/input-output-hk/catalyst-forge-libs/aws/s3tool/s3types"
)

const opPresign = "generating url"

// MaxPresignSeconds is the longest lifetime SigV4 allows for a presigned URL (7 days).
const MaxPresignSeconds = 7 * 24 * 60 * 60

// GeneratePresignedURL returns a GET URL for key that stays valid for the
// given number of seconds. Signing happens locally; the key is resolved first
// so that a URL is never produced for a missing object.
func GeneratePresignedURL(ctx context.Context, key KeyResult, seconds int64) s3types.PresignedURL {
	res := s3types.PresignedURL{
		BucketName: aws.String(key.BucketName()),
		KeyName:    aws.String(key.Name()),
		Seconds:    seconds,
	}

	if seconds <= 0 || seconds > MaxPresignSeconds {
		e := s3errors.NewInputError(opPresign,
			fmt.Sprintf("seconds must be between 1 and %d, got %d", MaxPresignSeconds, seconds))
		res.Message = message(e)
		return res
	}

	k, err := key.Get()
	if err != nil {
		res.Message = message(err)
		return res
	}

	c := k.bucket.conn
	if c.presigner == nil {
		res.Message = message(s3errors.NewError(opPresign, s3errors.KindUnhandled, nil))
		return res
	}

	req, err := c.presigner.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(k.bucket.name),
		Key:    aws.String(k.Name()),
	}, s3.WithPresignExpires(time.Duration(seconds)*time.Second))
	if err != nil {
		e := s3errors.FromAPI(opPresign, k.bucket.name, k.Name(), err)
		c.logger.ErrorContext(ctx, "failed to presign url", "bucket", k.bucket.name, "key", k.Name(), "error", e)
		res.Message = message(e)
		return res
	}

	res.URL = aws.String(req.URL)
	return res
}

// TestConnection lists buckets once to prove conn can reach the store.
// Any failure is reported with the message "connection error".
func TestConnection(ctx context.Context, conn ConnectionResult) s3types.Connect {
	c, err := conn.Get()
	if err != nil {
		return s3types.Connect{Message: message(err)}
	}

	res := s3types.Connect{
		Region:          c.region,
		AddressingStyle: string(c.addressing),
	}
	if err := c.ping(ctx); err != nil {
		res.Message = message(err)
		return res
	}

	res.IsConnected = true
	return res
}
