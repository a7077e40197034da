// Package server exposes an instdata store over HTTP.
//
// Routes:
//
//	GET  /healthz                  liveness probe
//	GET  /{config|data}/{path...}  read a document (YAML, or JSON on request)
//	PUT  /data/{path...}           replace a data document with the YAML body
//
// The path is the subdirectory segments followed by the file stem, with an
// optional .yaml suffix: GET /config/bar/foo reads <base>/config/bar/foo.yaml.
// ?section=a:b narrows a GET to a sub-value; ?format=json or an
// "Accept: application/json" header selects JSON output.
package server
