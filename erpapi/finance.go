package erpapi

import (
	"context"
	"time"
)

// FinanceSummary is the backend-computed headline view for the finance page.
// All totals are computed server-side; the portal only renders them.
type FinanceSummary struct {
	Revenue      float64 `json:"revenue"`
	Outstanding  float64 `json:"outstanding"`
	Overdue      float64 `json:"overdue"`
	OpenInvoices int     `json:"open_invoices"`
}

// FinanceInvoice is an invoice row on the finance screen.
type FinanceInvoice struct {
	ID       string    `json:"_id"`
	Number   string    `json:"number"`
	Customer string    `json:"customer"`
	Status   string    `json:"status"`
	Total    float64   `json:"total"`
	DueAt    time.Time `json:"due_at"`
}

// FetchFinanceSummary fetches the finance headline numbers.
func (c *Client) FetchFinanceSummary(ctx context.Context) (FinanceSummary, error) {
	var out FinanceSummary
	if err := c.get(ctx, "/finance/summary", &out); err != nil {
		return FinanceSummary{}, err
	}
	return out, nil
}

// FinanceInvoices fetches the finance invoice list.
func (c *Client) FinanceInvoices(ctx context.Context) ([]FinanceInvoice, error) {
	var out []FinanceInvoice
	if err := c.get(ctx, "/finance/invoices", &out); err != nil {
		return nil, err
	}
	return out, nil
}
