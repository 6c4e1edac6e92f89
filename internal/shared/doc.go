// Package shared holds helpers used across the fundingpulse packages that do
// not belong to any single layer.
//
// The testutil subpackage provides a buffered slog handler for asserting on
// log output and small funding CSV fixtures for loader and pipeline tests.
package shared
