package match

import (
	"errors"
	"reflect"
	"testing"
)

func TestExtractDomain(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		filename string
		want     string
		fails    bool
	}{
		{name: "hyphenated store", filename: "acme-store_2024.csv", want: "acme-store"},
		{name: "hostname with dots", filename: "shop.example.com_export.xlsx", want: "shop.example.com"},
		{name: "plain name", filename: "acme.csv", want: "acme"},
		{name: "full path uses base name", filename: "/data/new/acme-store_2024.csv", want: "acme-store"},
		{name: "uppercase extension", filename: "acme-store_2024.CSV", want: "acme-store"},
		{name: "unsupported extension", filename: "acme-store_2024.txt", fails: true},
		{name: "no token before extension", filename: "_.csv", fails: true},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got, err := ExtractDomain(tc.filename)
			if tc.fails {
				if !errors.Is(err, ErrNoDomain) {
					t.Fatalf("expected ErrNoDomain for %q, got %v", tc.filename, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error for %q: %v", tc.filename, err)
			}
			if got != tc.want {
				t.Fatalf("unexpected domain for %q: want %q, got %q", tc.filename, tc.want, got)
			}
		})
	}
}

func TestFindMatches(t *testing.T) {
	t.Parallel()

	oldPaths := []string{
		"/old/acme-store_2023.csv",
		"/old/acme-store.xlsx",
		"/old/ACME-STORE_jan.csv",
		"/old/bigshop_2023.csv",
		"/old/shop_2023.csv",
		"/old/other.csv",
	}

	group := FindMatches("acme-store", oldPaths)
	want := []string{
		"/old/acme-store_2023.csv",
		"/old/acme-store.xlsx",
		"/old/ACME-STORE_jan.csv",
	}
	if group.Domain != "acme-store" {
		t.Fatalf("unexpected domain: %q", group.Domain)
	}
	if !reflect.DeepEqual(group.FilePaths, want) {
		t.Fatalf("unexpected matches: %v", group.FilePaths)
	}
}

func TestFindMatches_TokenBoundaries(t *testing.T) {
	t.Parallel()

	oldPaths := []string{
		"/old/shop_2023.csv",
		"/old/bigshop_2023.csv",
		"/old/shopping_2023.csv",
	}

	group := FindMatches("shop", oldPaths)
	want := []string{"/old/shop_2023.csv"}
	if !reflect.DeepEqual(group.FilePaths, want) {
		t.Fatalf("substring of a longer token must not match: %v", group.FilePaths)
	}
}

func TestFindMatches_NoMatches(t *testing.T) {
	t.Parallel()

	group := FindMatches("acme", []string{"/old/other_2023.csv"})
	if len(group.FilePaths) != 0 {
		t.Fatalf("expected no matches, got %v", group.FilePaths)
	}
}
