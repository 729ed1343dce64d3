package erpapi

import (
	"context"
	"time"
)

// SalesOrder is a transactional sales document, read-only in the portal.
type SalesOrder struct {
	ID        string    `json:"_id"`
	Number    string    `json:"number"`
	Customer  string    `json:"customer"`
	Status    string    `json:"status"`
	Total     float64   `json:"total"`
	OrderedAt time.Time `json:"ordered_at"`
}

// SalesInvoice is an issued invoice belonging to a sales order.
type SalesInvoice struct {
	ID       string    `json:"_id"`
	Number   string    `json:"number"`
	Customer string    `json:"customer"`
	Status   string    `json:"status"`
	Total    float64   `json:"total"`
	IssuedAt time.Time `json:"issued_at"`
}

// SalesOrders fetches the sales-order list.
func (c *Client) SalesOrders(ctx context.Context) ([]SalesOrder, error) {
	var out []SalesOrder
	if err := c.get(ctx, "/sales/orders", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// SalesInvoices fetches the sales-invoice list.
func (c *Client) SalesInvoices(ctx context.Context) ([]SalesInvoice, error) {
	var out []SalesInvoice
	if err := c.get(ctx, "/sales/invoices", &out); err != nil {
		return nil, err
	}
	return out, nil
}
