// Package localfs provides the billy filesystem used for local files when the
// caller does not supply one.
package localfs

import (
	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/osfs"
)

// NativeFS is a billy.Filesystem that resolves paths exactly like the os
// package: relative paths against the working directory, absolute paths as is.
type NativeFS struct {
	osfs.ChrootOS
}

// New returns a NativeFS.
func New() *NativeFS {
	return &NativeFS{}
}

// Chroot returns a new filesystem rooted at the provided path.
//
//nolint:ireturn // billy.Filesystem is an interface; signature is dictated by upstream.
func (n *NativeFS) Chroot(path string) (billy.Filesystem, error) {
	return osfs.New(path), nil
}

// Root returns the root path for this filesystem.
func (n *NativeFS) Root() string {
	return "/"
}

var _ billy.Filesystem = (*NativeFS)(nil)
