package view_test

import (
	"strings"
	"testing"

	"github.com/ledgerline/erp-portal/view"
	"github.com/stretchr/testify/require"
)

type category struct {
	ID     string
	Name   string
	Active bool
}

func categoryColumns() []view.Column[category] {
	return []view.Column[category]{
		{Label: "Name", Value: func(c category) string { return c.Name }},
		{Label: "Status", Value: func(c category) string {
			if c.Active {
				return "Active"
			}
			return "Inactive"
		}},
	}
}

func TestTableRender(t *testing.T) {
	t.Run("renders one row per record", func(t *testing.T) {
		table := view.Table[category]{
			Columns: categoryColumns(),
			Rows:    []category{{ID: "1", Name: "Electronics", Active: true}},
		}

		html, err := table.Render()
		require.NoError(t, err)

		out := string(html)
		require.Contains(t, out, "<td>Electronics</td>")
		require.Contains(t, out, "<td>Active</td>")
		require.NotContains(t, out, "empty-row")
		require.NotContains(t, out, "skeleton-row")
	})

	t.Run("empty list shows the empty message", func(t *testing.T) {
		table := view.Table[category]{
			Columns:      categoryColumns(),
			EmptyMessage: "No categories found.",
		}

		html, err := table.Render()
		require.NoError(t, err)
		require.Contains(t, string(html), "No categories found.")
	})

	t.Run("empty message has a default", func(t *testing.T) {
		html, err := view.Table[category]{Columns: categoryColumns()}.Render()
		require.NoError(t, err)
		require.Contains(t, string(html), "Nothing here yet.")
	})

	t.Run("loading renders fixed skeleton rows and no data", func(t *testing.T) {
		table := view.Table[category]{
			Columns: categoryColumns(),
			Rows:    []category{{Name: "Electronics"}},
			Loading: true,
		}

		html, err := table.Render()
		require.NoError(t, err)

		out := string(html)
		require.Equal(t, view.SkeletonRowCount, strings.Count(out, "skeleton-row"))
		require.NotContains(t, out, "Electronics")
		require.NotContains(t, out, "empty-row")
	})

	t.Run("row actions render forms for POST and links otherwise", func(t *testing.T) {
		table := view.Table[category]{
			Columns: categoryColumns(),
			Rows:    []category{{ID: "7", Name: "Hardware"}},
			Actions: []view.RowAction[category]{
				{Label: "Deactivate", Method: "POST", URL: func(c category) string { return "/categories/" + c.ID + "/deactivate" }},
				{Label: "Edit", URL: func(c category) string { return "/categories/" + c.ID }},
			},
		}

		html, err := table.Render()
		require.NoError(t, err)

		out := string(html)
		require.Contains(t, out, `<form method="post" action="/categories/7/deactivate">`)
		require.Contains(t, out, `<a href="/categories/7">Edit</a>`)
	})

	t.Run("search toolbar carries the current query", func(t *testing.T) {
		table := view.Table[category]{
			Columns:      categoryColumns(),
			SearchAction: "/categories",
			SearchQuery:  "elec",
			AddURL:       "/categories?modal=new",
			AddLabel:     "Add category",
		}

		html, err := table.Render()
		require.NoError(t, err)

		out := string(html)
		require.Contains(t, out, `action="/categories"`)
		require.Contains(t, out, `value="elec"`)
		require.Contains(t, out, "Add category")
	})

	t.Run("cell text is escaped", func(t *testing.T) {
		table := view.Table[category]{
			Columns: categoryColumns(),
			Rows:    []category{{Name: "<script>alert(1)</script>"}},
		}

		html, err := table.Render()
		require.NoError(t, err)
		require.NotContains(t, string(html), "<script>")
	})
}
