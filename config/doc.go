// Package config provides typed views of instrument-data documents.
//
// The package uses an interface-based design with three extension points:
//   - Source: decodes a section of a document into a Go value (*store.Store)
//   - Validator: validates the value after decoding
//   - Defaulter: applies default values before validation
//
// # Section Paths
//
// Provider and Load accept a path targeting a section of the document.
// Paths use colon (:) as the separator:
//
//	"motors:theta"   -> doc["motors"]["theta"]
//	"fibers"         -> doc["fibers"]
//	""               -> entire document
//
// # Example
//
//	type MotorConfig struct {
//	    Steps    int  `yaml:"steps"`
//	    Reversed bool `yaml:"reversed"`
//	}
//
//	provider := config.Provider(&MotorConfig{}, store.ConfigRef("pfi"), "motors:theta")
//	cfg, err := provider(instdataStore)
//
// Provider returns an Fx-friendly constructor, so it can be passed to
// fx.Provide directly once a *store.Store is available in the container.
package config
