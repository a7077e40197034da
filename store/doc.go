// Package store resolves and reads/writes instrument-data documents.
//
// The instrument-data tree lives under a base directory with two roots,
// config/ and data/, each holding YAML documents in optional subdirectories:
//
//	<base>/config/<subdir...>/<name>.yaml
//	<base>/data/<subdir...>/<name>.yaml
//
// The base directory comes from a Locator handed to New. Static uses a fixed
// directory (typically read once from PFS_INSTDATA_DIR by ConfigFromEnv),
// Environment reads PFS_INSTDATA_DIR on every call, and Discovery derives it
// from an installation layout. A missing base directory is always an error.
//
// Documents are read fresh on every call; nothing is cached and nothing is
// locked. Concurrent writers to the same document race at the filesystem
// level and the last writer wins.
//
// Errors wrap one of ErrConfiguration, ErrNotFound, ErrParse, ErrIO or
// ErrInvalidRef and can be tested with errors.Is.
package store
