// Package ciutil detects CI environments and reads the environment
// variables shared by tooling and integration tests.
package ciutil
