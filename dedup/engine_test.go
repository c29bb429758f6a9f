package dedup

import (
	"reflect"
	"testing"

	"prodedup/product"
)

func row(title, price string) product.Row {
	return product.Row{Title: title, Url: "u", Image: "i", Price: price}
}

func TestSubtract(t *testing.T) {
	t.Parallel()

	newTable := product.Table{
		Path: "acme_2024.csv",
		Rows: []product.Row{
			row("Widget", "$10.00"),
			row("Gadget", "$20.00"),
			row("Gizmo", "$5.00"),
		},
	}
	hist := product.Table{
		Rows: []product.Row{
			row("Widget", "$10.00"),
			row("Gizmo", "$6.00"),
		},
	}

	result := Subtract(newTable, hist)

	want := []product.Row{
		row("Gadget", "$20.00"),
		row("Gizmo", "$5.00"),
	}
	if !reflect.DeepEqual(result.Rows, want) {
		t.Fatalf("unexpected result rows: %+v", result.Rows)
	}
	if result.Path != newTable.Path {
		t.Fatalf("unexpected result path: %q", result.Path)
	}
}

func TestSubtract_SelfYieldsEmpty(t *testing.T) {
	t.Parallel()

	table := product.Table{
		Rows: []product.Row{
			row("Widget", "$10.00"),
			row("Gadget", "$20.00"),
		},
	}

	result := Subtract(table, table)
	if len(result.Rows) != 0 {
		t.Fatalf("subtracting a table from itself must be empty, got %+v", result.Rows)
	}
}

func TestSubtract_PriceComparedAsText(t *testing.T) {
	t.Parallel()

	newTable := product.Table{Rows: []product.Row{row("Widget", "$10.00")}}
	hist := product.Table{Rows: []product.Row{row("Widget", "$10.0")}}

	result := Subtract(newTable, hist)
	if len(result.Rows) != 1 {
		t.Fatalf("differently formatted prices are distinct keys, got %+v", result.Rows)
	}
}

func TestSubtract_TitleTrimmedForComparison(t *testing.T) {
	t.Parallel()

	newTable := product.Table{Rows: []product.Row{row("  Widget  ", "$10.00")}}
	hist := product.Table{Rows: []product.Row{row("Widget", "$10.00")}}

	result := Subtract(newTable, hist)
	if len(result.Rows) != 0 {
		t.Fatalf("trimmed titles must match, got %+v", result.Rows)
	}
}

func TestSubtract_DropsRowsWithAbsentKeyFields(t *testing.T) {
	t.Parallel()

	newTable := product.Table{
		Rows: []product.Row{
			row("", "$10.00"),
			row("Widget", ""),
			row("Gadget", "$20.00"),
		},
	}

	result := Subtract(newTable, product.Table{})
	want := []product.Row{row("Gadget", "$20.00")}
	if !reflect.DeepEqual(result.Rows, want) {
		t.Fatalf("rows without title or price must be dropped: %+v", result.Rows)
	}
}

func TestSubtract_HistoryOrderIndependent(t *testing.T) {
	t.Parallel()

	newTable := product.Table{
		Rows: []product.Row{
			row("A", "$1.00"),
			row("B", "$2.00"),
			row("C", "$3.00"),
			row("D", "$4.00"),
		},
	}
	histories := []product.Table{
		{Rows: []product.Row{row("A", "$1.00")}},
		{Rows: []product.Row{row("C", "$3.00")}},
		{Rows: []product.Row{row("A", "$1.00"), row("D", "$4.00")}},
	}

	apply := func(order []int) []product.Row {
		table := newTable
		for _, i := range order {
			table = Subtract(table, histories[i])
		}
		return table.Rows
	}

	want := apply([]int{0, 1, 2})
	for _, order := range [][]int{{2, 1, 0}, {1, 0, 2}, {2, 0, 1}} {
		if got := apply(order); !reflect.DeepEqual(got, want) {
			t.Fatalf("result depends on history order %v: want %+v, got %+v", order, want, got)
		}
	}
}
