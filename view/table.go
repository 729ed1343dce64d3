package view

import (
	"bytes"
	"fmt"
	"html/template"
)

// SkeletonRowCount is how many placeholder rows render while a list fetch is
// in flight, regardless of how much data eventually arrives.
const SkeletonRowCount = 5

// Column maps one entity field to a display label. Value extracts the cell
// text; it must not mutate the record.
type Column[T any] struct {
	Label string
	Value func(T) string
}

// RowAction is a per-row control (edit, deactivate). Method "POST" renders
// an inline form; anything else renders a link.
type RowAction[T any] struct {
	Label  string
	Method string
	URL    func(T) string
}

// Table is the reusable list shell every master-data screen parameterizes
// with its own columns and records. It renders a search toolbar, an add
// action, and one row per record — or skeleton rows while loading, or an
// empty-state message when the list is empty after loading. It never mutates
// the records it is given.
type Table[T any] struct {
	Columns      []Column[T]
	Rows         []T
	Loading      bool
	EmptyMessage string

	SearchAction string
	SearchQuery  string
	AddURL       string
	AddLabel     string
	Actions      []RowAction[T]
}

type tableActionData struct {
	Label  string
	Method string
	URL    string
}

type tableRowData struct {
	Cells   []string
	Actions []tableActionData
}

type tableData struct {
	Head         []string
	Rows         []tableRowData
	Loading      bool
	Skeleton     []int
	EmptyMessage string
	HasActions   bool
	ColSpan      int
	SearchAction string
	SearchQuery  string
	AddURL       string
	AddLabel     string
}

// Render produces the table markup.
func (t Table[T]) Render() (template.HTML, error) {
	data := tableData{
		Loading:      t.Loading,
		EmptyMessage: t.EmptyMessage,
		HasActions:   len(t.Actions) > 0,
		SearchAction: t.SearchAction,
		SearchQuery:  t.SearchQuery,
		AddURL:       t.AddURL,
		AddLabel:     t.AddLabel,
	}
	if data.EmptyMessage == "" {
		data.EmptyMessage = "Nothing here yet."
	}
	if data.AddLabel == "" {
		data.AddLabel = "Add"
	}

	for _, col := range t.Columns {
		data.Head = append(data.Head, col.Label)
	}
	data.ColSpan = len(data.Head)
	if data.HasActions {
		data.ColSpan++
	}

	if t.Loading {
		data.Skeleton = make([]int, SkeletonRowCount)
	} else {
		for _, row := range t.Rows {
			rd := tableRowData{}
			for _, col := range t.Columns {
				rd.Cells = append(rd.Cells, col.Value(row))
			}
			for _, action := range t.Actions {
				rd.Actions = append(rd.Actions, tableActionData{
					Label:  action.Label,
					Method: action.Method,
					URL:    action.URL(row),
				})
			}
			data.Rows = append(data.Rows, rd)
		}
	}

	var buf bytes.Buffer
	if err := tableTmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("render table: %w", err)
	}
	return template.HTML(buf.String()), nil
}
