package output

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestSortEntries(t *testing.T) {
	t.Run("weight descending", func(t *testing.T) {
		entries := []Entry{
			{Path: "a", Weight: 1},
			{Path: "b", Weight: 30},
			{Path: "c", Weight: 7},
		}
		SortEntries(entries)

		want := []Entry{
			{Path: "b", Weight: 30},
			{Path: "c", Weight: 7},
			{Path: "a", Weight: 1},
		}
		if diff := cmp.Diff(want, entries); diff != "" {
			t.Errorf("SortEntries() mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("ties broken by path ascending", func(t *testing.T) {
		entries := []Entry{
			{Path: "users;name", Weight: 5},
			{Path: "users;[];id", Weight: 5},
			{Path: "Users", Weight: 5},
			{Path: "", Weight: 5},
		}
		SortEntries(entries)

		want := []Entry{
			{Path: "", Weight: 5},
			{Path: "Users", Weight: 5},
			{Path: "users;[];id", Weight: 5},
			{Path: "users;name", Weight: 5},
		}
		if diff := cmp.Diff(want, entries); diff != "" {
			t.Errorf("SortEntries() mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("independent of input order", func(t *testing.T) {
		a := []Entry{{"x", 2}, {"y", 2}, {"z", 9}, {"w", 1}}
		b := []Entry{{"w", 1}, {"z", 9}, {"y", 2}, {"x", 2}}
		SortEntries(a)
		SortEntries(b)
		if diff := cmp.Diff(a, b); diff != "" {
			t.Errorf("order depends on input (-a +b):\n%s", diff)
		}
	})

	t.Run("empty", func(t *testing.T) {
		var entries []Entry
		SortEntries(entries)
		if len(entries) != 0 {
			t.Errorf("expected empty slice, got %v", entries)
		}
	})
}

func TestSummarize(t *testing.T) {
	s := Summarize([]Entry{{"a", 3}, {"b", 4}})
	if s.Paths != 2 || s.TotalWeight != 7 {
		t.Errorf("Summarize() = %+v, want {Paths:2 TotalWeight:7}", s)
	}
}

func TestTop(t *testing.T) {
	entries := []Entry{{"a", 6}, {"b", 3}, {"c", 1}}

	rows := Top(entries, 2)
	if len(rows) != 2 {
		t.Fatalf("len(Top()) = %d, want 2", len(rows))
	}
	if rows[0].Path != "a" || rows[0].Share != 0.6 {
		t.Errorf("rows[0] = %+v, want a with share 0.6", rows[0])
	}
	if rows[1].Path != "b" || rows[1].Share != 0.3 {
		t.Errorf("rows[1] = %+v, want b with share 0.3", rows[1])
	}

	if all := Top(entries, 0); len(all) != 3 {
		t.Errorf("Top(entries, 0) returned %d rows, want 3", len(all))
	}
	if all := Top(entries, 10); len(all) != 3 {
		t.Errorf("Top(entries, 10) returned %d rows, want 3", len(all))
	}
	if zero := Top([]Entry{{"a", 0}}, 1); zero[0].Share != 0 {
		t.Errorf("zero total should give zero share, got %v", zero[0].Share)
	}
}
