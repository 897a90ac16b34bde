package hal_test

import (
	"encoding/json"
	"fmt"
	"log"

	"github.com/erraggy/haltools/hal"
)

// Example demonstrates parsing a HAL+JSON document and looking up a link by
// the expanded form of its curied relation type.
func Example() {
	doc := []byte(`{"_links":{"curies":[{"href":"http://example.org/rels/{rel}","templated":true,"name":"x"}],"x:orders":{"href":"/orders"}}}`)

	rep, err := hal.Parse(doc)
	if err != nil {
		log.Fatal(err)
	}

	link, ok := rep.LinkBy("http://example.org/rels/orders")
	if !ok {
		log.Fatal("no orders link")
	}
	fmt.Println(link.Href())
	fmt.Println(rep.Curies().Expand("x:orders"))
	// Output:
	// /orders
	// http://example.org/rels/orders
}

// Example_building demonstrates composing a document; relation keys are
// compacted on rendering when a CURI is in scope.
func Example_building() {
	self, _ := hal.Self("/orders")
	curi, _ := hal.Curi("x", "http://example.org/rels/{rel}")
	shipment, _ := hal.New("http://example.org/rels/shipment", "/shipments/1")

	rep := hal.NewRepresentation(hal.NewLinks(self, curi, shipment), hal.Embedded{})
	data, err := json.Marshal(rep)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(string(data))
	// Output:
	// {"_links":{"self":{"href":"/orders"},"curies":[{"href":"http://example.org/rels/{rel}","templated":true,"name":"x"}],"x:shipment":{"href":"/shipments/1"}}}
}

// ExampleItemsAs demonstrates decoding embedded items into a domain type.
func ExampleItemsAs() {
	doc := []byte(`{"_links":{"curies":[{"href":"http://example.org/rels/{rel}","templated":true,"name":"x"}]},"_embedded":{"x:orders":[{"_links":{"self":{"href":"/o/1"}},"total":42}]}}`)

	type Order struct {
		Total int       `json:"total"`
		Links hal.Links `json:"_links"`
	}

	rep, err := hal.Parse(doc)
	if err != nil {
		log.Fatal(err)
	}
	orders, err := hal.ItemsAs[Order](rep.Embedded(), "http://example.org/rels/orders")
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(orders[0].Total, orders[0].Links.HrefOf("self"))
	// Output:
	// 42 /o/1
}
