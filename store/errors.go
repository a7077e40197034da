package store

import "errors"

// ErrConfiguration is returned when the base directory is not established.
var ErrConfiguration = errors.New("instdata base directory not configured")

// ErrNotFound is returned when the referenced document (or section) does not exist.
var ErrNotFound = errors.New("document not found")

// ErrParse is returned when a document's content is malformed.
var ErrParse = errors.New("malformed document")

// ErrIO is returned on filesystem failures other than a missing document.
var ErrIO = errors.New("instdata i/o failure")

// ErrInvalidRef is returned when a reference names an unknown root or no file.
var ErrInvalidRef = errors.New("invalid document reference")

// ErrPathIsDirectory is returned when a document path points to a directory instead of a file.
var ErrPathIsDirectory = errors.New("path is a directory, not a file")
