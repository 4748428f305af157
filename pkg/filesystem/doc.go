// Package filesystem provides the filesystem seam used by dotstrap.
//
// Every component that touches the disk (symlinks, the RC file patcher and
// the RC addon writer) goes through the FS interface so tests can point it
// at temporary directories.
package filesystem
