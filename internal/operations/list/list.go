package list

import (
	"context"
	"iter"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"

	"github.com/input-output-hk/catalyst-forge-libs/aws/s3tool/s3types"
)

// maxPageSize is the largest page S3 will return.
const maxPageSize = 1000

// S3Interface defines the S3 operations we need.
type S3Interface interface {
	ListObjectsV2(
		ctx context.Context,
		input *s3.ListObjectsV2Input,
		opts ...func(*s3.Options),
	) (*s3.ListObjectsV2Output, error)
}

// Lister handles listing of S3 objects.
type Lister struct {
	client S3Interface
}

// New creates a new Lister.
func New(client S3Interface) *Lister {
	return &Lister{
		client: client,
	}
}

// Config holds configuration for list operations.
type Config struct {
	Bucket string

	// Prefix restricts the listing to keys starting with it. Nil lists every key.
	Prefix *string

	// PageSize caps each ListObjectsV2 page. Zero or values above 1000 mean 1000.
	PageSize int32
}

// Objects returns a sequence over every object matching config, in the order
// S3 returns them. The first error ends the sequence after being yielded.
func (l *Lister) Objects(ctx context.Context, config *Config) iter.Seq2[s3types.Object, error] {
	return func(yield func(s3types.Object, error) bool) {
		paginator := s3.NewListObjectsV2Paginator(l.client, l.input(config))

		for paginator.HasMorePages() {
			page, err := paginator.NextPage(ctx)
			if err != nil {
				yield(s3types.Object{}, err)
				return
			}

			for _, obj := range page.Contents {
				if !yield(ConvertObject(obj), nil) {
					return
				}
			}
		}
	}
}

func (l *Lister) input(config *Config) *s3.ListObjectsV2Input {
	pageSize := config.PageSize
	if pageSize <= 0 || pageSize > maxPageSize {
		pageSize = maxPageSize
	}

	input := &s3.ListObjectsV2Input{
		Bucket:  aws.String(config.Bucket),
		MaxKeys: aws.Int32(pageSize),
	}
	if config.Prefix != nil && *config.Prefix != "" {
		input.Prefix = aws.String(*config.Prefix)
	}
	return input
}

// ConvertObject builds an s3types.Object from a listing entry.
func ConvertObject(obj types.Object) s3types.Object {
	return s3types.Object{
		Key:          aws.ToString(obj.Key),
		Size:         aws.ToInt64(obj.Size),
		LastModified: aws.ToTime(obj.LastModified),
		ETag:         aws.ToString(obj.ETag),
	}
}
