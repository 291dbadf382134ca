// Package internal contains private implementation details of s3tool.
// These packages are not intended for external use and may change without notice.
//
// The internal packages are organized as follows:
//   - s3api: the SDK surface the operations depend on
//   - operations: one subpackage per store operation
//   - validation: input validation before any request is sent
//   - localfs: the default local filesystem
//   - config: command line configuration
//   - cli: the command tree
//   - testutil: mocks, an in-memory store and LocalStack helpers
package internal
