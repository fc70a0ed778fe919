// Package export renders already-computed ledger data as CSV for download
// and print views. It is a formatting layer over internal/summary; no
// aggregation logic lives here.
package export

import (
	"encoding/csv"
	"io"
	"strconv"
	"time"

	"banhchi-platform/internal/expense"
	"banhchi-platform/internal/guest"
	"banhchi-platform/internal/summary"
)

// Guests writes the guest ledger: a header row, one row per guest, then a
// blank-line-separated summary block (TOTAL / CASH IN-HAND / QR TRANSFER).
func Guests(w io.Writer, gs []guest.Guest) error {
	cw := csv.NewWriter(w)

	if err := cw.Write([]string{"Name", "Amount USD", "Amount KHR", "Payment Method", "Location", "Note", "Created At"}); err != nil {
		return err
	}
	for _, g := range gs {
		rec := []string{
			g.Name,
			amount(g.AmountUSD),
			amount(g.AmountKHR),
			g.PaymentMethod,
			g.Location,
			g.Note,
			g.CreatedAt.Format(time.RFC3339),
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}

	// csv.Writer renders a lone empty field as "", so the blank separator
	// goes to the underlying writer directly.
	cw.Flush()
	if err := cw.Error(); err != nil {
		return err
	}
	if _, err := io.WriteString(w, "\n"); err != nil {
		return err
	}

	totals := summary.GuestTotals(gs)
	rows := [][]string{
		{"TOTAL", amount(totals.USD.Total), amount(totals.KHR.Total)},
		{"CASH IN-HAND", amount(totals.USD.Cash), amount(totals.KHR.Cash)},
		{"QR TRANSFER", amount(totals.USD.QR), amount(totals.KHR.QR)},
	}
	for _, rec := range rows {
		if err := cw.Write(rec); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

// Expenses writes the expense ledger with a per-currency, per-channel
// summary block.
func Expenses(w io.Writer, es []expense.Expense) error {
	cw := csv.NewWriter(w)

	if err := cw.Write([]string{"Name", "Actual Amount", "Budget Amount", "Currency", "Payment Method", "Invoice", "Note", "Created At"}); err != nil {
		return err
	}
	for _, e := range es {
		rec := []string{
			e.Name,
			amount(e.ActualAmount),
			amount(e.BudgetAmount),
			string(e.Currency),
			e.PaymentMethod,
			e.InvoiceNumber,
			e.Note,
			e.CreatedAt.Format(time.RFC3339),
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return err
	}
	if _, err := io.WriteString(w, "\n"); err != nil {
		return err
	}

	totals := summary.ExpenseTotals(es)
	rows := [][]string{
		{"TOTAL", amount(totals.ActualUSD), amount(totals.ActualKHR)},
		{"CASH IN-HAND", amount(totals.CashUSD), amount(totals.CashKHR)},
		{"BANK", amount(totals.BankUSD), amount(totals.BankKHR)},
	}
	for _, rec := range rows {
		if err := cw.Write(rec); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

func amount(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
