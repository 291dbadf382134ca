package s3tool

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/go-git/go-billy/v5"

	s3errors "github.com/input-output-hk/catalyst-forge-libs/aws/s3tool/errors"
	"github.com/input-output-hk/catalyst-forge-libs/aws/s3tool/internal/localfs"
	"github.com/input-output-hk/catalyst-forge-libs/aws/s3tool/internal/s3api"
	"github.com/input-output-hk/catalyst-forge-libs/aws/s3tool/s3types"
)

// Connection is a capability to reach one storage endpoint.
// It holds no state beyond the SDK clients it was built with.
type Connection struct {
	// api is the underlying AWS SDK S3 client
	api s3api.S3API

	// presigner signs object URLs
	presigner s3api.Presigner

	region     string
	addressing s3types.AddressingStyle

	// fs is the local filesystem for downloads and uploads
	fs billy.Filesystem

	logger *slog.Logger
}

// Region returns the region requests are signed for.
func (c *Connection) Region() string {
	return c.region
}

// Addressing returns how bucket names are placed in request URLs.
func (c *Connection) Addressing() s3types.AddressingStyle {
	return c.addressing
}

// Connect establishes a connection to the object store.
//
// When creds.Region is empty the connection targets the default region with
// the requested addressing style (ordinary unless virtual-hosted is asked
// for). When creds.Region is set, addressing is forced to ordinary.
//
// Connect never fails with anything but a connection error, whose message is
// "connection error". Without WithConnectionCheck no request is made, so bad
// credentials surface on the first operation instead.
//
// Example:
//
//	conn := s3tool.Connect(ctx, creds,
//	    s3tool.WithEndpoint("http://localhost:4566"),
//	    s3tool.WithMaxRetries(3),
//	)
//	if err := conn.Err(); err != nil {
//	    return err
//	}
func Connect(ctx context.Context, creds s3types.Credentials, opts ...s3types.Option) ConnectionResult {
	clientCfg := newClientConfig(opts)
	logger := loggerOrDiscard(clientCfg.Logger)

	if creds.AccessKeyID == "" || creds.SecretAccessKey == "" {
		logger.ErrorContext(ctx, "access key id and secret access key are required")
		return ConnectionFailed(s3errors.NewConnectionError(s3errors.ErrInvalidInput))
	}

	region, addressing := resolveAddressing(creds)

	cfg, err := loadAWSConfig(ctx, clientCfg, creds, region)
	if err != nil {
		logger.ErrorContext(ctx, "failed to load AWS configuration", "error", err)
		return ConnectionFailed(s3errors.NewConnectionError(err))
	}

	if clientCfg.MaxRetries > 0 {
		cfg.RetryMaxAttempts = clientCfg.MaxRetries
	}

	endpoint := creds.Endpoint
	if endpoint == "" {
		endpoint = clientCfg.Endpoint
	}

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		o.UsePathStyle = addressing == s3types.AddressingOrdinary
		if endpoint != "" {
			o.BaseEndpoint = aws.String(endpoint)
		}
		if httpClient := httpClientFor(clientCfg); httpClient != nil {
			o.HTTPClient = httpClient
		}
	})

	conn := &Connection{
		api:        client,
		presigner:  s3.NewPresignClient(client),
		region:     region,
		addressing: addressing,
	}
	return finishConnection(ctx, conn, clientCfg)
}

// NewConnection wraps an existing S3 client and presigner.
// This is primarily used for testing with mocked clients. The region is
// reported as the default region and addressing as ordinary.
func NewConnection(
	ctx context.Context,
	api s3api.S3API,
	presigner s3api.Presigner,
	opts ...s3types.Option,
) ConnectionResult {
	clientCfg := newClientConfig(opts)
	if api == nil {
		return ConnectionFailed(s3errors.NewConnectionError(fmt.Errorf("no S3 client given")))
	}

	conn := &Connection{
		api:        api,
		presigner:  presigner,
		region:     s3types.DefaultRegion,
		addressing: s3types.AddressingOrdinary,
	}
	return finishConnection(ctx, conn, clientCfg)
}

func finishConnection(ctx context.Context, conn *Connection, clientCfg *s3types.ClientConfig) ConnectionResult {
	conn.logger = loggerOrDiscard(clientCfg.Logger)

	conn.fs = clientCfg.Filesystem
	if conn.fs == nil {
		conn.fs = localfs.New()
	}

	if clientCfg.CheckConnection {
		if err := conn.ping(ctx); err != nil {
			return ConnectionFailed(err)
		}
	}

	return ConnectionResult{newResult("connecting", conn, nil)}
}

// ping lists buckets once. Any failure is reported as a connection error.
func (c *Connection) ping(ctx context.Context) error {
	if _, err := c.api.ListBuckets(ctx, &s3.ListBucketsInput{}); err != nil {
		c.logger.ErrorContext(ctx, "connection check failed",
			"region", c.region,
			"error", s3errors.FromAPI("connecting", "", "", err))
		return s3errors.NewConnectionError(err)
	}
	return nil
}

// resolveAddressing picks the region and addressing style for creds.
func resolveAddressing(creds s3types.Credentials) (string, s3types.AddressingStyle) {
	if creds.Region != "" {
		return creds.Region, s3types.AddressingOrdinary
	}

	addressing := creds.Addressing
	if addressing == "" {
		addressing = s3types.AddressingOrdinary
	}
	return s3types.DefaultRegion, addressing
}

func loadAWSConfig(
	ctx context.Context,
	clientCfg *s3types.ClientConfig,
	creds s3types.Credentials,
	region string,
) (aws.Config, error) {
	provider := credentials.NewStaticCredentialsProvider(creds.AccessKeyID, creds.SecretAccessKey, "")

	if clientCfg.CustomAWSConfig != nil {
		cfg := clientCfg.CustomAWSConfig.Copy()
		cfg.Region = region
		cfg.Credentials = aws.NewCredentialsCache(provider)
		return cfg, nil
	}

	return config.LoadDefaultConfig(ctx,
		config.WithRegion(region),
		config.WithCredentialsProvider(provider),
	)
}

func httpClientFor(clientCfg *s3types.ClientConfig) *http.Client {
	if clientCfg.CustomHTTPClient != nil {
		return clientCfg.CustomHTTPClient
	}
	if clientCfg.Timeout > 0 {
		return &http.Client{Timeout: clientCfg.Timeout}
	}
	return nil
}

func loggerOrDiscard(logger *slog.Logger) *slog.Logger {
	if logger != nil {
		return logger
	}
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
