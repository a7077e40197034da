// Package document provides the in-memory model of instrument-data documents.
//
// A Value is a tagged variant holding one of: null, bool, int, float, string,
// sequence or mapping. Mappings keep the order of their keys, so a document
// loaded from disk and dumped back keeps its layout.
//
// Values are immutable from the outside: builders return new values and
// accessors return copies of nested slices.
//
//	doc := document.Map(
//	    document.Field("a", document.Int(1)),
//	    document.Field("b", document.List(document.Int(1), document.Int(2))),
//	)
//	v, ok := doc.Lookup("b:1") // Int(2)
package document
