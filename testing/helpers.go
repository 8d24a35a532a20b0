// Package testing provides test utilities for crumb.
package testing

import (
	"testing"

	"github.com/zoobzio/crumb"
)

// Payment is a sample union covering field-less, single-field and
// multi-field cases, including one stored by pointer.
type Payment interface{ isPayment() }

// Cash is a field-less case.
type Cash struct{}

// Card is a single-field case.
type Card struct {
	Number string `json:"number"`
}

// Transfer is a multi-field case stored by pointer.
type Transfer struct {
	IBAN      string
	Reference crumb.Option[string]
}

func (Cash) isPayment()      {}
func (Card) isPayment()      {}
func (*Transfer) isPayment() {}

// Status is a sample union with a case named Some, so options of it are
// always boxed.
type Status interface{ isStatus() }

// Confirmed is the case named Some.
type Confirmed struct {
	At string
}

// Pending is a field-less case.
type Pending struct{}

func (Confirmed) isStatus() {}
func (Pending) isStatus()   {}

// Order is a sample record mixing every algebraic shape.
type Order struct {
	ID       string                               `json:"id"`
	Payment  Payment                              `json:"payment"`
	Status   crumb.Option[Status]                 `json:"status"`
	Lines    []crumb.Tuple3[string, int, float64] `json:"lines"`
	Discount crumb.Option[crumb.Option[float64]]  `json:"discount"`
	Notes    map[string]crumb.Option[string]      `json:"notes,omitempty"`
}

// Shapes returned by registration, exposed for assertions.
var (
	PaymentShape = crumb.MustRegisterUnion[Payment](
		crumb.Case[Cash](),
		crumb.Case[Card](),
		crumb.Case[*Transfer](),
	)
	StatusShape = crumb.MustRegisterUnion[Status](
		crumb.NamedCase[Confirmed]("Some"),
		crumb.Case[Pending](),
	)
)

// SampleOrder returns a fully populated Order.
func SampleOrder() Order {
	return Order{
		ID:      "ord-1",
		Payment: &Transfer{IBAN: "GB82WEST12345698765432", Reference: crumb.Some("inv-7")},
		Status:  crumb.Some[Status](Confirmed{At: "2024-01-02"}),
		Lines: []crumb.Tuple3[string, int, float64]{
			crumb.Triple("widget", 2, 9.5),
			crumb.Triple("gadget", 1, 20.0),
		},
		Discount: crumb.Some(crumb.None[float64]()),
		Notes:    map[string]crumb.Option[string]{"gift": crumb.Some("yes"), "door": crumb.None[string]()},
	}
}

// RoundTrip marshals v with c, unmarshals the result into a fresh T and
// returns it with the encoded bytes. Failures stop the test.
func RoundTrip[T any](tb testing.TB, c crumb.Codec, v T) (T, []byte) {
	tb.Helper()

	data, err := c.Marshal(v)
	if err != nil {
		tb.Fatalf("Marshal(%#v) error: %v", v, err)
	}

	var out T
	if err := c.Unmarshal(data, &out); err != nil {
		tb.Fatalf("Unmarshal(%s) error: %v", data, err)
	}
	return out, data
}

// MustMarshal marshals v with c, failing the test on error.
func MustMarshal(tb testing.TB, c crumb.Codec, v any) []byte {
	tb.Helper()

	data, err := c.Marshal(v)
	if err != nil {
		tb.Fatalf("Marshal(%#v) error: %v", v, err)
	}
	return data
}
