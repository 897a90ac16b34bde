// Package haltools provides tools for building, parsing, and navigating
// HAL+JSON documents (draft-kelly-json-hal).
//
// The library consists of three primary packages:
//
//   - hal: the resource-representation model: links, embedded resources,
//     domain attributes, and CURI (Compact URI) resolution
//   - halerrors: structured error types for programmatic error handling
//   - paging: skip/limit paging links for collection resources
//
// # Quick Start
//
// Parse a HAL+JSON document:
//
//	import "github.com/erraggy/haltools/hal"
//
//	rep, err := hal.Parse(data)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if link, ok := rep.LinkBy("self"); ok {
//	    fmt.Printf("self: %s\n", link.Href())
//	}
//
// Build a document:
//
//	self, _ := hal.Self("/orders/42")
//	curi, _ := hal.Curi("x", "http://example.org/rels/{rel}")
//	rep := hal.NewRepresentation(hal.NewLinks(self, curi), hal.Embedded{})
//	data, err := json.Marshal(rep)
//
// # CURI Resolution
//
// Documents may declare short prefixes for verbose link-relation-type URIs.
// The model resolves transparently between both forms: relations can be
// looked up by either their curied ("x:orders") or their expanded
// ("http://example.org/rels/orders") form, and rendering compacts every
// relation key for which a CURI is in scope. CURI registries inherit
// top-down into embedded documents, with nearer-scope declarations winning.
//
// # Error Handling
//
// Construction and parse failures are structured errors from the halerrors
// package, matchable with errors.Is and errors.As. Lookup misses are normal
// empty results, never errors.
package haltools
