// Package testutil provides utilities for testing dotstrap components.
//
// Key components:
//   - TestEnvironment: an isolated repo and home directory with a private
//     environment, so tests never read the real $HOME or $SHELL
//   - FakeRunner: a runner.Runner that records commands instead of spawning them
//   - File helpers: CreateFile, CreateDir, ReadFile, Chmod
//
// Usage guidelines:
//   - Tests touching the filesystem use t.TempDir through TestEnvironment
//   - External commands are never executed; script FakeRunner instead
//   - Each test should be completely isolated with no shared state
package testutil
