// Package filesystem provides the afero filesystems the tools write to and a
// few helpers on top of them.
//
// Commands use NewOS; tests use NewMemory so nothing touches the disk.
package filesystem
