// Package operations contains the store operations behind the s3tool
// facade. Each subpackage wraps one concern (listing, transfers, copy,
// deletion, access control) over the s3api interfaces and reports
// failures as *errors.Error values.
package operations
