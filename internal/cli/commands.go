package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/input-output-hk/catalyst-forge-libs/aws/s3tool"
	"github.com/input-output-hk/catalyst-forge-libs/aws/s3tool/s3types"
)

const (
	flagBucketName = "bucket-name"
	flagKeyName    = "key-name"
	flagPrefix     = "prefix"
	flagFilePath   = "file-path"
)

// optional returns the value of a string flag, or nil when it was not given.
func optional(cmd *cobra.Command, name string) *string {
	if !cmd.Flags().Changed(name) {
		return nil
	}
	v, _ := cmd.Flags().GetString(name)
	return &v
}

func defaultDownloadDir() string {
	if home, err := os.UserHomeDir(); err == nil {
		return home
	}
	return "."
}

func (a *App) connectTestCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "connect-test",
		Short: "Check that the store accepts the credentials",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			return a.print(s3tool.TestConnection(ctx, a.connect(ctx)))
		},
	}
}

func (a *App) lookupBucketCmd() *cobra.Command {
	var bucket string
	cmd := &cobra.Command{
		Use:   "lookup-bucket",
		Short: "Report whether a bucket exists",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			return a.print(s3tool.LookupBucket(ctx, a.connect(ctx), bucket))
		},
	}
	cmd.Flags().StringVar(&bucket, flagBucketName, "", "bucket name")
	_ = cmd.MarkFlagRequired(flagBucketName)
	return cmd
}

func (a *App) lookupKeyCmd() *cobra.Command {
	var bucket, key string
	cmd := &cobra.Command{
		Use:   "lookup-key",
		Short: "Report whether a key exists",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			b := s3tool.ResolveBucket(ctx, a.connect(ctx), bucket)
			return a.print(s3tool.LookupKey(ctx, b, key))
		},
	}
	cmd.Flags().StringVar(&bucket, flagBucketName, "", "bucket name")
	cmd.Flags().StringVar(&key, flagKeyName, "", "key name")
	_ = cmd.MarkFlagRequired(flagBucketName)
	_ = cmd.MarkFlagRequired(flagKeyName)
	return cmd
}

func (a *App) listBucketsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list-buckets",
		Short: "List all buckets with their creation dates",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			return a.print(s3tool.ListBuckets(ctx, a.connect(ctx)))
		},
	}
}

func (a *App) listKeysCmd() *cobra.Command {
	var bucket string
	cmd := &cobra.Command{
		Use:   "list-keys",
		Short: "List the keys of a bucket, optionally under a prefix",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			b := s3tool.ResolveBucket(ctx, a.connect(ctx), bucket)
			return a.print(s3tool.ListKeyEntries(ctx, s3tool.ListKeys(b, optional(cmd, flagPrefix))))
		},
	}
	cmd.Flags().StringVar(&bucket, flagBucketName, "", "bucket name")
	cmd.Flags().String(flagPrefix, "", "key prefix")
	_ = cmd.MarkFlagRequired(flagBucketName)
	return cmd
}

func (a *App) getACLCmd() *cobra.Command {
	var bucket string
	cmd := &cobra.Command{
		Use:   "get-acl",
		Short: "Show the grants of a bucket or, with --key-name, of a key",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			b := s3tool.ResolveBucket(ctx, a.connect(ctx), bucket)
			if key := optional(cmd, flagKeyName); key != nil {
				return a.print(s3tool.GetKeyACL(ctx, s3tool.ResolveKey(ctx, b, *key)))
			}
			return a.print(s3tool.GetBucketACL(ctx, b))
		},
	}
	cmd.Flags().StringVar(&bucket, flagBucketName, "", "bucket name")
	cmd.Flags().String(flagKeyName, "", "key name")
	_ = cmd.MarkFlagRequired(flagBucketName)
	return cmd
}

func (a *App) setACLCmd() *cobra.Command {
	var bucket, permission string
	cmd := &cobra.Command{
		Use:   "set-acl",
		Short: "Apply a canned ACL to a bucket or, with --key-name, to a key",
		Long: `Apply a canned ACL and print the resulting grants.
Accepted permissions: private, public-read, public-read-write, authenticated-read.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			b := s3tool.ResolveBucket(ctx, a.connect(ctx), bucket)
			if key := optional(cmd, flagKeyName); key != nil {
				return a.print(s3tool.SetKeyACL(ctx, s3tool.ResolveKey(ctx, b, *key), permission))
			}
			return a.print(s3tool.SetBucketACL(ctx, b, permission))
		},
	}
	cmd.Flags().StringVar(&bucket, flagBucketName, "", "bucket name")
	cmd.Flags().String(flagKeyName, "", "key name")
	cmd.Flags().StringVar(&permission, "permission", "", "canned ACL")
	_ = cmd.MarkFlagRequired(flagBucketName)
	_ = cmd.MarkFlagRequired("permission")
	return cmd
}

func (a *App) createBucketCmd() *cobra.Command {
	var bucket, location string
	cmd := &cobra.Command{
		Use:   "create-bucket",
		Short: "Create a bucket in a named location",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			return a.print(s3tool.CreateBucket(ctx, a.connect(ctx), bucket, location))
		},
	}
	cmd.Flags().StringVar(&bucket, flagBucketName, "", "bucket name")
	cmd.Flags().StringVar(&location, "location", "", "location name, see the locations command (default DEFAULT)")
	_ = cmd.MarkFlagRequired(flagBucketName)
	return cmd
}

func (a *App) deleteBucketCmd() *cobra.Command {
	var bucket string
	cmd := &cobra.Command{
		Use:   "delete-bucket",
		Short: "Delete every key of a bucket, then the bucket",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			return a.print(s3tool.DeleteBucket(ctx, a.connect(ctx), bucket))
		},
	}
	cmd.Flags().StringVar(&bucket, flagBucketName, "", "bucket name")
	_ = cmd.MarkFlagRequired(flagBucketName)
	return cmd
}

func (a *App) deleteKeysCmd() *cobra.Command {
	var bucket string
	cmd := &cobra.Command{
		Use:   "delete-keys",
		Short: "Delete one key, or every key under a prefix",
		Long: `Delete the key named by --key-name, or every key under --prefix when no
key name is given. Without either flag every key of the bucket is deleted.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			b := s3tool.ResolveBucket(ctx, a.connect(ctx), bucket)
			return a.print(s3tool.DeleteKeys(ctx, b, optional(cmd, flagKeyName), optional(cmd, flagPrefix)))
		},
	}
	cmd.Flags().StringVar(&bucket, flagBucketName, "", "bucket name")
	cmd.Flags().String(flagKeyName, "", "key name")
	cmd.Flags().String(flagPrefix, "", "key prefix")
	_ = cmd.MarkFlagRequired(flagBucketName)
	return cmd
}

func (a *App) downloadFileCmd() *cobra.Command {
	var bucket, key, dir string
	cmd := &cobra.Command{
		Use:   "download-file",
		Short: "Download one key into a local directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			k := s3tool.ResolveKey(ctx, s3tool.ResolveBucket(ctx, a.connect(ctx), bucket), key)
			return a.print(s3tool.DownloadFile(ctx, k, dir))
		},
	}
	cmd.Flags().StringVar(&bucket, flagBucketName, "", "bucket name")
	cmd.Flags().StringVar(&key, flagKeyName, "", "key name")
	cmd.Flags().StringVar(&dir, flagFilePath, defaultDownloadDir(), "local directory")
	_ = cmd.MarkFlagRequired(flagBucketName)
	_ = cmd.MarkFlagRequired(flagKeyName)
	return cmd
}

func (a *App) downloadFilesCmd() *cobra.Command {
	var bucket, pattern, dir string
	cmd := &cobra.Command{
		Use:   "download-files",
		Short: "Download every key matching a pattern into a local directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			b := s3tool.ResolveBucket(ctx, a.connect(ctx), bucket)
			return a.print(s3tool.DownloadFiles(ctx, s3tool.ListKeys(b, optional(cmd, flagPrefix)), dir, pattern))
		},
	}
	cmd.Flags().StringVar(&bucket, flagBucketName, "", "bucket name")
	cmd.Flags().String(flagPrefix, "", "key prefix")
	cmd.Flags().StringVar(&pattern, "pattern", "", "regular expression key names must match (default all keys)")
	cmd.Flags().StringVar(&dir, flagFilePath, defaultDownloadDir(), "local directory")
	_ = cmd.MarkFlagRequired(flagBucketName)
	return cmd
}

func (a *App) uploadFileCmd() *cobra.Command {
	var (
		path, bucket, prefix string
		acl, contentType     string
		metadata             map[string]string
	)
	cmd := &cobra.Command{
		Use:   "upload-file",
		Short: "Upload a local file to <prefix>/<file name>",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			var opts []s3types.UploadOption
			if acl != "" {
				opts = append(opts, s3tool.WithACL(s3types.CannedACL(acl)))
			}
			if contentType != "" {
				opts = append(opts, s3tool.WithContentType(contentType))
			}
			if len(metadata) > 0 {
				opts = append(opts, s3tool.WithMetadata(metadata))
			}
			return a.print(s3tool.UploadFile(ctx, a.connect(ctx), path, bucket, prefix, opts...))
		},
	}
	cmd.Flags().StringVar(&path, flagFilePath, "", "local file to upload")
	cmd.Flags().StringVar(&bucket, flagBucketName, "", "bucket name")
	cmd.Flags().StringVar(&prefix, flagPrefix, "", "key prefix")
	cmd.Flags().StringVar(&acl, "acl", "", "canned ACL applied to the new key")
	cmd.Flags().StringVar(&contentType, "content-type", "", "content type (detected from the content when empty)")
	cmd.Flags().StringToStringVar(&metadata, "metadata", nil, "user metadata as key=value pairs")
	_ = cmd.MarkFlagRequired(flagFilePath)
	_ = cmd.MarkFlagRequired(flagBucketName)
	return cmd
}

func (a *App) copyFileCmd() *cobra.Command {
	var srcBucket, srcKey, dstBucket, dstKey string
	cmd := &cobra.Command{
		Use:   "copy-file",
		Short: "Copy a key on the server side, keeping its ACL",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			return a.print(s3tool.CopyFile(ctx, a.connect(ctx), srcBucket, srcKey, dstBucket, dstKey))
		},
	}
	cmd.Flags().StringVar(&srcBucket, "src-bucket-name", "", "source bucket name")
	cmd.Flags().StringVar(&srcKey, "src-key-name", "", "source key name")
	cmd.Flags().StringVar(&dstBucket, "dst-bucket-name", "", "destination bucket name")
	cmd.Flags().StringVar(&dstKey, "dst-key-name", "", "destination key name (default the source key name)")
	_ = cmd.MarkFlagRequired("src-bucket-name")
	_ = cmd.MarkFlagRequired("src-key-name")
	_ = cmd.MarkFlagRequired("dst-bucket-name")
	return cmd
}

func (a *App) generateURLCmd() *cobra.Command {
	var bucket, key string
	var seconds int64
	cmd := &cobra.Command{
		Use:   "generate-url",
		Short: "Generate a presigned GET URL for a key",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			k := s3tool.ResolveKey(ctx, s3tool.ResolveBucket(ctx, a.connect(ctx), bucket), key)
			return a.print(s3tool.GeneratePresignedURL(ctx, k, seconds))
		},
	}
	cmd.Flags().StringVar(&bucket, flagBucketName, "", "bucket name")
	cmd.Flags().StringVar(&key, flagKeyName, "", "key name")
	cmd.Flags().Int64Var(&seconds, "seconds", 0, "lifetime of the url in seconds")
	_ = cmd.MarkFlagRequired(flagBucketName)
	_ = cmd.MarkFlagRequired(flagKeyName)
	_ = cmd.MarkFlagRequired("seconds")
	return cmd
}

func (a *App) locationsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "locations",
		Short: "List the location names accepted by create-bucket",
		Args:  cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			return a.print(s3types.Locations)
		},
	}
}

func (a *App) regionsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "regions",
		Short: "List the known regions",
		Args:  cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			return a.print(s3types.Regions)
		},
	}
}
