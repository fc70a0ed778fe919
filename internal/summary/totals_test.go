package summary

import (
	"testing"

	"banhchi-platform/internal/expense"
	"banhchi-platform/internal/guest"
)

func TestGuestTotals_EmptyListIsAllZero(t *testing.T) {
	got := GuestTotals(nil)
	if got != (GuestSummary{}) {
		t.Fatalf("expected all-zero summary, got %+v", got)
	}
}

func TestGuestTotals_PartitionIsComplete(t *testing.T) {
	gs := []guest.Guest{
		{AmountUSD: 100, AmountKHR: 0, PaymentMethod: "cash"},
		{AmountUSD: 0, AmountKHR: 40000, PaymentMethod: "ABA Bank"},
		{AmountUSD: 25.5, AmountKHR: 10000, PaymentMethod: "Wing"},
		{AmountUSD: 10, AmountKHR: 2000, PaymentMethod: "cash"},
	}
	got := GuestTotals(gs)

	if got.USD.Cash+got.USD.QR != got.USD.Total {
		t.Fatalf("usd partition incomplete: %+v", got.USD)
	}
	if got.KHR.Cash+got.KHR.QR != got.KHR.Total {
		t.Fatalf("khr partition incomplete: %+v", got.KHR)
	}
	if got.USD.Total != 135.5 || got.KHR.Total != 52000 {
		t.Fatalf("unexpected totals: %+v", got)
	}
}

func TestGuestTotals_CashSentinelIsExact(t *testing.T) {
	gs := []guest.Guest{{AmountUSD: 10, PaymentMethod: "Cash"}} // capital C
	got := GuestTotals(gs)
	if got.USD.Cash != 0 || got.USD.QR != 10 {
		t.Fatalf("capital-C Cash must classify as QR: %+v", got.USD)
	}
}

func TestGuestTotals_EndToEndScenario(t *testing.T) {
	a := guest.Guest{Name: "A", AmountUSD: 100, AmountKHR: 0, PaymentMethod: "cash"}
	b := guest.Guest{Name: "B", AmountUSD: 0, AmountKHR: 40000, PaymentMethod: "ABA Bank"}

	got := GuestTotals([]guest.Guest{a, b})
	want := GuestSummary{
		USD: CurrencyTotals{Total: 100, Cash: 100, QR: 0},
		KHR: CurrencyTotals{Total: 40000, Cash: 0, QR: 40000},
	}
	if got != want {
		t.Fatalf("got %+v, want %+v", got, want)
	}

	// after A is removed only B's QR riel remains
	got = GuestTotals([]guest.Guest{b})
	want = GuestSummary{KHR: CurrencyTotals{Total: 40000, QR: 40000}}
	if got != want {
		t.Fatalf("after delete: got %+v, want %+v", got, want)
	}
}

func TestGuestTotals_Idempotent(t *testing.T) {
	gs := []guest.Guest{
		{AmountUSD: 1, AmountKHR: 500, PaymentMethod: "cash"},
		{AmountUSD: 2, AmountKHR: 0, PaymentMethod: "Wing"},
	}
	if GuestTotals(gs) != GuestTotals(gs) {
		t.Fatalf("aggregation must be deterministic")
	}
}

func TestExpenseTotals_BranchesCurrencyThenChannel(t *testing.T) {
	es := []expense.Expense{
		{ActualAmount: 100, Currency: expense.CurrencyUSD, PaymentMethod: "cash"},
		{ActualAmount: 50, Currency: expense.CurrencyUSD, PaymentMethod: "ABA Bank"},
		{ActualAmount: 200000, Currency: expense.CurrencyKHR, PaymentMethod: ""}, // absent -> cash
		{ActualAmount: 80000, Currency: expense.CurrencyKHR, PaymentMethod: "Wing"},
	}
	got := ExpenseTotals(es)
	want := ExpenseSummary{
		ActualUSD: 150, ActualKHR: 280000,
		CashUSD: 100, CashKHR: 200000,
		BankUSD: 50, BankKHR: 80000,
	}
	if got != want {
		t.Fatalf("got %+v, want %+v", got, want)
	}
}

func TestExpenseTotals_EmptyListIsAllZero(t *testing.T) {
	if ExpenseTotals(nil) != (ExpenseSummary{}) {
		t.Fatalf("expected all-zero summary")
	}
}
