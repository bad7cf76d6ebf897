package diag

import (
	"testing"

	"sollint/internal/source"
)

func TestDedupReporterCollapsesDuplicates(t *testing.T) {
	bag := NewBag(8)
	r := NewDedupReporter(NewBagReporter(bag))

	sp := source.Span{File: 1, Start: 4, End: 9}
	r.Report("incorrect-shift", SevMed, sp, "operands look swapped", nil, nil)
	r.Report("incorrect-shift", SevMed, sp, "operands look swapped", nil, nil)

	if bag.Len() != 1 {
		t.Fatalf("bag has %d items, want the duplicate collapsed", bag.Len())
	}
}

func TestDedupReporterKeepsDistinctReports(t *testing.T) {
	bag := NewBag(8)
	r := NewDedupReporter(NewBagReporter(bag))

	sp := source.Span{File: 1, Start: 4, End: 9}
	r.Report("incorrect-shift", SevMed, sp, "operands look swapped", nil, nil)
	r.Report("incorrect-shift", SevMed, source.Span{File: 1, Start: 20, End: 25}, "operands look swapped", nil, nil)
	r.Report("divide-before-multiply", SevMed, sp, "division precedes multiplication", nil, nil)
	r.Report("incorrect-shift", SevLow, sp, "operands look swapped", nil, nil)

	if bag.Len() != 4 {
		t.Fatalf("bag has %d items, want all four distinct reports", bag.Len())
	}
}
