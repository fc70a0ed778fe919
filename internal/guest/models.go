package guest

import "time"

// Guest is one contribution record scoped to an event.
//
// Invariants:
// - ID is unique within the event's guest collection and never changes.
// - CreatedAt is server-assigned and never changes.
// - Both currency amounts are always present; either (or both) may be zero.
type Guest struct {
	ID      string `json:"id" db:"id"`
	EventID string `json:"event_id" db:"event_id"`

	Name string `json:"name" db:"name"`

	// Amounts are independent: a guest may give in USD, KHR, or both.
	AmountUSD float64 `json:"amount_usd" db:"amount_usd"`
	AmountKHR float64 `json:"amount_khr" db:"amount_khr"`

	// PaymentMethod is "cash" for in-hand cash; any other string (bank or
	// e-wallet name) is the bank/QR channel. Comparison is exact and
	// case-sensitive.
	PaymentMethod string `json:"payment_method" db:"payment_method"`

	// Location is free-text provenance, e.g. a reception table.
	Location string `json:"location,omitempty" db:"location"`
	Note     string `json:"note,omitempty" db:"note"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// PaymentMethodCash is the one semantically special payment-method value.
const PaymentMethodCash = "cash"

// IsCash reports whether the guest paid through the cash channel.
func (g Guest) IsCash() bool { return g.PaymentMethod == PaymentMethodCash }

// NewGuest is the creation input; id and created_at are server-assigned.
type NewGuest struct {
	Name          string  `json:"name"`
	AmountUSD     float64 `json:"amount_usd"`
	AmountKHR     float64 `json:"amount_khr"`
	PaymentMethod string  `json:"payment_method"`
	Location      string  `json:"location,omitempty"`
	Note          string  `json:"note,omitempty"`
}

// Patch is a sparse update. A nil field means "not supplied"; a non-nil
// pointer to the zero value means "explicitly set to zero/empty". This keeps
// partial-update semantics unambiguous.
type Patch struct {
	Name          *string  `json:"name,omitempty"`
	AmountUSD     *float64 `json:"amount_usd,omitempty"`
	AmountKHR     *float64 `json:"amount_khr,omitempty"`
	PaymentMethod *string  `json:"payment_method,omitempty"`
	Location      *string  `json:"location,omitempty"`
	Note          *string  `json:"note,omitempty"`
}

// IsEmpty reports whether the patch supplies no fields.
func (p Patch) IsEmpty() bool {
	return p.Name == nil && p.AmountUSD == nil && p.AmountKHR == nil &&
		p.PaymentMethod == nil && p.Location == nil && p.Note == nil
}

// apply merges the supplied fields onto g. ID, EventID and CreatedAt are
// immutable and never touched.
func (p Patch) apply(g Guest) Guest {
	if p.Name != nil {
		g.Name = *p.Name
	}
	if p.AmountUSD != nil {
		g.AmountUSD = *p.AmountUSD
	}
	if p.AmountKHR != nil {
		g.AmountKHR = *p.AmountKHR
	}
	if p.PaymentMethod != nil {
		g.PaymentMethod = *p.PaymentMethod
	}
	if p.Location != nil {
		g.Location = *p.Location
	}
	if p.Note != nil {
		g.Note = *p.Note
	}
	return g
}
