// Package summary computes currency- and channel-partitioned totals from
// ledger records. All functions are pure: same input list, same output,
// no I/O. Callers pass whatever the guest/expense services return.
package summary

import (
	"banhchi-platform/internal/expense"
	"banhchi-platform/internal/guest"
)

// CurrencyTotals partitions one currency's contributions by channel.
// Invariant: Cash + QR == Total, exactly (plain sums, mutually exclusive
// classification).
type CurrencyTotals struct {
	Total float64 `json:"total"`
	Cash  float64 `json:"cash"`
	QR    float64 `json:"qr"`
}

// GuestSummary is the aggregation over a guest list, per currency.
type GuestSummary struct {
	USD CurrencyTotals `json:"usd"`
	KHR CurrencyTotals `json:"khr"`
}

// GuestTotals folds a guest list into per-currency, per-channel totals.
// Classification is a single linear partition on the exact string "cash";
// any other payment method, regardless of spelling, is the QR channel.
func GuestTotals(gs []guest.Guest) GuestSummary {
	var out GuestSummary
	for _, g := range gs {
		out.USD.Total += g.AmountUSD
		out.KHR.Total += g.AmountKHR
		if g.IsCash() {
			out.USD.Cash += g.AmountUSD
			out.KHR.Cash += g.AmountKHR
		} else {
			out.USD.QR += g.AmountUSD
			out.KHR.QR += g.AmountKHR
		}
	}
	return out
}

// ExpenseSummary is the aggregation over an expense list. Each expense lands
// in exactly one currency bucket and, within it, one channel sub-bucket.
type ExpenseSummary struct {
	ActualUSD float64 `json:"actual_usd"`
	ActualKHR float64 `json:"actual_khr"`
	CashUSD   float64 `json:"cash_usd"`
	CashKHR   float64 `json:"cash_khr"`
	BankUSD   float64 `json:"bank_usd"`
	BankKHR   float64 `json:"bank_khr"`
}

// ExpenseTotals folds an expense list. Branch order: currency first, then
// channel. An absent payment method counts as cash.
func ExpenseTotals(es []expense.Expense) ExpenseSummary {
	var out ExpenseSummary
	for _, e := range es {
		switch e.Currency {
		case expense.CurrencyKHR:
			out.ActualKHR += e.ActualAmount
			if e.IsCash() {
				out.CashKHR += e.ActualAmount
			} else {
				out.BankKHR += e.ActualAmount
			}
		default:
			out.ActualUSD += e.ActualAmount
			if e.IsCash() {
				out.CashUSD += e.ActualAmount
			} else {
				out.BankUSD += e.ActualAmount
			}
		}
	}
	return out
}
