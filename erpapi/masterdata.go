package erpapi

import (
	"context"
	"net/url"
)

// Master-data entities are transient caches of server state: the portal
// never mutates them locally, it refetches after any create or deactivate.

// Category groups products for reporting and pricing.
type Category struct {
	ID          string `json:"_id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Active      bool   `json:"active"`
}

// CategoryInput is the create payload for a category.
type CategoryInput struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Tax is a named tax rate applied by the backend; the portal only displays it.
type Tax struct {
	ID          string  `json:"_id"`
	Name        string  `json:"name"`
	RatePercent float64 `json:"rate_percent"`
	Active      bool    `json:"active"`
}

// TaxInput is the create payload for a tax.
type TaxInput struct {
	Name        string  `json:"name"`
	RatePercent float64 `json:"rate_percent"`
}

// PriceList assigns a currency-scoped price book to customers.
type PriceList struct {
	ID       string `json:"_id"`
	Name     string `json:"name"`
	Currency string `json:"currency"`
	Active   bool   `json:"active"`
}

// PriceListInput is the create payload for a price list.
type PriceListInput struct {
	Name     string `json:"name"`
	Currency string `json:"currency"`
}

func listPath(base, search string) string {
	if search == "" {
		return base
	}
	return base + "?search=" + url.QueryEscape(search)
}

// ListCategories fetches categories, optionally filtered by a search term.
func (c *Client) ListCategories(ctx context.Context, search string) ([]Category, error) {
	var out []Category
	if err := c.get(ctx, listPath("/categories", search), &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateCategory creates a category.
func (c *Client) CreateCategory(ctx context.Context, input CategoryInput) (Category, error) {
	var out Category
	if err := c.post(ctx, "/categories", input, &out); err != nil {
		return Category{}, err
	}
	return out, nil
}

// DeactivateCategory deactivates a category by ID.
func (c *Client) DeactivateCategory(ctx context.Context, id string) error {
	return c.delete(ctx, "/categories/"+url.PathEscape(id))
}

// ListTaxes fetches taxes, optionally filtered by a search term.
func (c *Client) ListTaxes(ctx context.Context, search string) ([]Tax, error) {
	var out []Tax
	if err := c.get(ctx, listPath("/taxes", search), &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateTax creates a tax.
func (c *Client) CreateTax(ctx context.Context, input TaxInput) (Tax, error) {
	var out Tax
	if err := c.post(ctx, "/taxes", input, &out); err != nil {
		return Tax{}, err
	}
	return out, nil
}

// DeactivateTax deactivates a tax by ID.
func (c *Client) DeactivateTax(ctx context.Context, id string) error {
	return c.delete(ctx, "/taxes/"+url.PathEscape(id))
}

// ListPriceLists fetches price lists, optionally filtered by a search term.
func (c *Client) ListPriceLists(ctx context.Context, search string) ([]PriceList, error) {
	var out []PriceList
	if err := c.get(ctx, listPath("/price-lists", search), &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CreatePriceList creates a price list.
func (c *Client) CreatePriceList(ctx context.Context, input PriceListInput) (PriceList, error) {
	var out PriceList
	if err := c.post(ctx, "/price-lists", input, &out); err != nil {
		return PriceList{}, err
	}
	return out, nil
}

// DeactivatePriceList deactivates a price list by ID.
func (c *Client) DeactivatePriceList(ctx context.Context, id string) error {
	return c.delete(ctx, "/price-lists/"+url.PathEscape(id))
}
