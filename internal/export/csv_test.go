package export

import (
	"strings"
	"testing"
	"time"

	"banhchi-platform/internal/expense"
	"banhchi-platform/internal/guest"
)

func TestGuests_RowsAndSummary(t *testing.T) {
	now := time.Unix(1700000000, 0).UTC()
	gs := []guest.Guest{
		{Name: "Sok", AmountUSD: 100, AmountKHR: 0, PaymentMethod: "cash", Location: "Hall 1", CreatedAt: now},
		{Name: "Dara", AmountUSD: 0, AmountKHR: 40000, PaymentMethod: "ABA Bank", CreatedAt: now},
	}

	var b strings.Builder
	if err := Guests(&b, gs); err != nil {
		t.Fatalf("export: %v", err)
	}
	out := b.String()

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	// header + 2 guests + blank + 3 summary rows
	if len(lines) != 7 {
		t.Fatalf("expected 7 lines, got %d:\n%s", len(lines), out)
	}
	if !strings.HasPrefix(lines[0], "Name,Amount USD,Amount KHR") {
		t.Fatalf("unexpected header: %q", lines[0])
	}
	if lines[3] != "" {
		t.Fatalf("expected blank separator, got %q", lines[3])
	}
	if lines[4] != "TOTAL,100,40000" {
		t.Fatalf("unexpected TOTAL row: %q", lines[4])
	}
	if lines[5] != "CASH IN-HAND,100,0" {
		t.Fatalf("unexpected CASH row: %q", lines[5])
	}
	if lines[6] != "QR TRANSFER,0,40000" {
		t.Fatalf("unexpected QR row: %q", lines[6])
	}
}

func TestGuests_EmptyListStillHasSummary(t *testing.T) {
	var b strings.Builder
	if err := Guests(&b, nil); err != nil {
		t.Fatalf("export: %v", err)
	}
	if !strings.Contains(b.String(), "TOTAL,0,0") {
		t.Fatalf("expected zero summary, got:\n%s", b.String())
	}
}

func TestExpenses_SummaryRows(t *testing.T) {
	now := time.Unix(1700000000, 0).UTC()
	es := []expense.Expense{
		{Name: "Catering", ActualAmount: 1200, Currency: expense.CurrencyUSD, PaymentMethod: "ABA Bank", CreatedAt: now},
		{Name: "Flowers", ActualAmount: 200000, Currency: expense.CurrencyKHR, PaymentMethod: "cash", CreatedAt: now},
	}

	var b strings.Builder
	if err := Expenses(&b, es); err != nil {
		t.Fatalf("export: %v", err)
	}
	out := b.String()
	if !strings.Contains(out, "TOTAL,1200,200000") {
		t.Fatalf("missing TOTAL row:\n%s", out)
	}
	if !strings.Contains(out, "CASH IN-HAND,0,200000") {
		t.Fatalf("missing CASH row:\n%s", out)
	}
	if !strings.Contains(out, "BANK,1200,0") {
		t.Fatalf("missing BANK row:\n%s", out)
	}
}
