// Package util holds small helpers shared by the CLI and the feedback
// service: human sizes and durations, secret masking, storage-safe names and
// locale-aware number formatting.
package util
