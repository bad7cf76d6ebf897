package diag

import (
	"testing"

	"sollint/internal/source"
)

func span(file source.FileID, start, end uint32) source.Span {
	return source.Span{File: file, Start: start, End: end}
}

func TestBagHonorsLimit(t *testing.T) {
	bag := NewBag(2)
	if !bag.Add(Diagnostic{Code: "a"}) || !bag.Add(Diagnostic{Code: "b"}) {
		t.Fatal("first two adds should succeed")
	}
	if bag.Add(Diagnostic{Code: "c"}) {
		t.Error("add past the limit should report a drop")
	}
	if bag.Len() != 2 {
		t.Errorf("len = %d, want 2", bag.Len())
	}
}

func TestBagSortOrder(t *testing.T) {
	bag := NewBag(10)
	bag.Add(Diagnostic{Code: "z", Severity: SevInfo, Primary: span(2, 0, 1)})
	bag.Add(Diagnostic{Code: "b", Severity: SevInfo, Primary: span(1, 5, 6)})
	bag.Add(Diagnostic{Code: "a", Severity: SevHigh, Primary: span(1, 5, 6)})
	bag.Add(Diagnostic{Code: "c", Severity: SevInfo, Primary: span(1, 0, 3)})
	bag.Sort()

	got := make([]Code, 0, bag.Len())
	for _, d := range bag.Items() {
		got = append(got, d.Code)
	}
	want := []Code{"c", "a", "b", "z"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("order = %v, want %v", got, want)
		}
	}
}

func TestBagFilter(t *testing.T) {
	bag := NewBag(10)
	bag.Add(Diagnostic{Code: "keep", Severity: SevHigh})
	bag.Add(Diagnostic{Code: "drop", Severity: SevInfo})
	bag.Add(Diagnostic{Code: "keep2", Severity: SevMed})

	bag.Filter(func(d *Diagnostic) bool { return d.Severity >= SevMed })

	if bag.Len() != 2 {
		t.Fatalf("len = %d, want 2", bag.Len())
	}
	if bag.Items()[0].Code != "keep" || bag.Items()[1].Code != "keep2" {
		t.Errorf("filter should preserve order, got %v", bag.Items())
	}
}

func TestBagMergeGrowsLimit(t *testing.T) {
	a := NewBag(1)
	a.Add(Diagnostic{Code: "a"})
	b := NewBag(2)
	b.Add(Diagnostic{Code: "b"})
	b.Add(Diagnostic{Code: "c"})

	a.Merge(b)
	if a.Len() != 3 {
		t.Fatalf("len = %d, want 3", a.Len())
	}
}

func TestBagMaxSeverity(t *testing.T) {
	bag := NewBag(4)
	if _, ok := bag.MaxSeverity(); ok {
		t.Error("empty bag should report ok=false")
	}
	bag.Add(Diagnostic{Severity: SevGas})
	bag.Add(Diagnostic{Severity: SevHigh})
	bag.Add(Diagnostic{Severity: SevLow})
	if sev, ok := bag.MaxSeverity(); !ok || sev != SevHigh {
		t.Errorf("MaxSeverity = %v, %v; want high, true", sev, ok)
	}
}

func TestParseSeverity(t *testing.T) {
	cases := []struct {
		in      string
		want    Severity
		wantErr bool
	}{
		{"info", SevInfo, false},
		{"gas", SevGas, false},
		{"low", SevLow, false},
		{"med", SevMed, false},
		{"medium", SevMed, false},
		{"high", SevHigh, false},
		{"", SevInfo, true},
		{"warning", SevInfo, true},
	}
	for _, tc := range cases {
		got, err := ParseSeverity(tc.in)
		if (err != nil) != tc.wantErr {
			t.Errorf("ParseSeverity(%q) err = %v, wantErr %v", tc.in, err, tc.wantErr)
			continue
		}
		if err == nil && got != tc.want {
			t.Errorf("ParseSeverity(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}
