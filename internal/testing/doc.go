// Package testing provides fixtures for building project folders and
// assertions over generated output trees.
package testing

const (
	testDirPermissions  = 0o750
	testFilePermissions = 0o600
)
