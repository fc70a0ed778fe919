package expense

import "time"

// Expense is one disbursement record scoped to an event. Unlike guests,
// an expense is denominated in exactly one currency.
type Expense struct {
	ID      string `json:"id" db:"id"`
	EventID string `json:"event_id" db:"event_id"`

	Name string `json:"name" db:"name"`

	ActualAmount float64 `json:"actual_amount" db:"actual_amount"`
	// BudgetAmount is the planned figure; zero when unused.
	BudgetAmount float64 `json:"budget_amount" db:"budget_amount"`

	Currency Currency `json:"currency" db:"currency"`

	// PaymentMethod follows the guest convention: "cash" is the in-hand
	// channel, anything else is bank. Empty is treated as cash.
	PaymentMethod string `json:"payment_method" db:"payment_method"`

	InvoiceNumber string `json:"invoice_number,omitempty" db:"invoice_number"`
	Note          string `json:"note,omitempty" db:"note"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

type Currency string

const (
	CurrencyUSD Currency = "USD"
	CurrencyKHR Currency = "KHR"
)

const PaymentMethodCash = "cash"

// IsCash reports whether the expense was paid in cash. An absent payment
// method defaults to cash.
func (e Expense) IsCash() bool {
	return e.PaymentMethod == "" || e.PaymentMethod == PaymentMethodCash
}

// NewExpense is the creation input; id and created_at are server-assigned.
type NewExpense struct {
	Name          string   `json:"name"`
	ActualAmount  float64  `json:"actual_amount"`
	BudgetAmount  float64  `json:"budget_amount"`
	Currency      Currency `json:"currency"`
	PaymentMethod string   `json:"payment_method"`
	InvoiceNumber string   `json:"invoice_number,omitempty"`
	Note          string   `json:"note,omitempty"`
}

// Patch is a sparse update; nil means "not supplied".
type Patch struct {
	Name          *string   `json:"name,omitempty"`
	ActualAmount  *float64  `json:"actual_amount,omitempty"`
	BudgetAmount  *float64  `json:"budget_amount,omitempty"`
	Currency      *Currency `json:"currency,omitempty"`
	PaymentMethod *string   `json:"payment_method,omitempty"`
	InvoiceNumber *string   `json:"invoice_number,omitempty"`
	Note          *string   `json:"note,omitempty"`
}

func (p Patch) apply(e Expense) Expense {
	if p.Name != nil {
		e.Name = *p.Name
	}
	if p.ActualAmount != nil {
		e.ActualAmount = *p.ActualAmount
	}
	if p.BudgetAmount != nil {
		e.BudgetAmount = *p.BudgetAmount
	}
	if p.Currency != nil {
		e.Currency = *p.Currency
	}
	if p.PaymentMethod != nil {
		e.PaymentMethod = *p.PaymentMethod
	}
	if p.InvoiceNumber != nil {
		e.InvoiceNumber = *p.InvoiceNumber
	}
	if p.Note != nil {
		e.Note = *p.Note
	}
	return e
}

func validCurrency(c Currency) bool {
	return c == CurrencyUSD || c == CurrencyKHR
}
