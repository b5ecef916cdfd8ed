// Package storage is the object store for uploaded voice recordings.
//
// Backends register a factory under a provider name and are selected by
// Config.Provider:
//
//   - storage/local: files under a base directory
//   - storage/memory: in-process map, for tests and throwaway runs
//
// # Configuration
//
//	storage:
//	  enabled: true
//	  provider: "local"
//	  base_path: "./data/audio"
//	  max_file_size: "10MB"
//
// Object paths are slash separated and relative; CleanPath rejects
// anything that would escape the store root.
package storage
