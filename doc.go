// Package instdata bootstraps applications that read and write the PFS
// instrument-data tree: an Fx App carrying structured logging, the document
// store and, optionally, the HTTP document service.
package instdata
