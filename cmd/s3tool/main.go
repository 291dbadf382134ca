// Command s3tool runs single operations against an S3-compatible object store
// and prints the result as JSON.
package main

import (
	"context"
	"os"
	"os/signal"
	"time"

	"github.com/input-output-hk/catalyst-forge-libs/aws/s3tool/internal/cli"
)

func main() {
	time.Local = time.UTC

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := cli.Execute(ctx)
	stop()
	os.Exit(code)
}
