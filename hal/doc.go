// Package hal implements the HAL+JSON resource-representation model
// (draft-kelly-json-hal): links, embedded sub-resources, domain attributes,
// and CURI (Compact URI) resolution between the compact "prefix:suffix" and
// the expanded URI form of link-relation types.
//
// # Building documents
//
//	self, _ := hal.Self("/orders")
//	curi, _ := hal.Curi("x", "http://example.org/rels/{rel}")
//	rep := hal.NewRepresentation(
//	    hal.NewLinks(self, curi),
//	    hal.NewEmbedded("x:orders", orderRep),
//	)
//	data, err := json.Marshal(rep)
//
// # Parsing documents
//
//	rep, err := hal.Parse(data)
//	if err != nil {
//	    // *halerrors.ParseError
//	}
//	orders := rep.ItemsBy("http://example.org/rels/orders")
//
// Lookups accept either form of a relation type: a relation stored under
// "x:orders" is found by "http://example.org/rels/orders" and vice versa,
// as long as the document (or an ancestor document) declares the "x" CURI.
//
// # Curie inheritance
//
// A document's CURI registry is pushed into every embedded child. A child
// declaring the same prefix name keeps its own definition (nearer scope
// wins), and a child curi identical to an inherited one is not re-declared
// in the child's rendered _links.
//
// The model is a pure, synchronous value-transformation layer: no I/O, no
// goroutines. Values are safe for concurrent readers once built; only
// Curies.Register mutates in place and is meant for initialization.
package hal
