package suppress

import (
	"sort"

	"sollint/internal/ast"
	"sollint/internal/diag"
	"sollint/internal/source"
	"sollint/internal/token"
)

// interval is an inclusive 1-based line range during which a rule is
// suppressed. Intervals may overlap; a point is suppressed when any
// interval covers it.
type interval struct {
	first uint32
	last  uint32
}

func (iv interval) contains(line uint32) bool {
	return iv.first <= line && line <= iv.last
}

// Index answers "is rule R suppressed at span S" for one source unit.
// Built once from the unit's comments, then read-only.
type Index struct {
	file     *source.File
	byRule   map[diag.Code][]interval
	wildcard []interval
}

// ItemFinder locates the next declaration for disable-next-item. The
// returned span is the item's full span.
type ItemFinder interface {
	NextItem(after uint32) (source.Span, bool)
}

// Build scans comments in source order and reduces the recognized
// directives into an Index. Range directives are tracked per rule with a
// stack of open starts, so nested disable-start/disable-end pairs for
// the same rule compose: an inner pair closes only its own level and the
// outer range stays open. An unmatched disable-end is a no-op. Ranges
// still open at end of scan extend through end of file.
//
// finder may be nil when the unit has no syntax tree; disable-next-item
// directives then degrade to no-ops.
func Build(file *source.File, comments []token.Comment, finder ItemFinder) *Index {
	idx := &Index{
		file:   file,
		byRule: make(map[diag.Code][]interval),
	}
	open := make(map[diag.Code][]uint32) // rule -> stack of open start lines
	var openAll []uint32

	for _, c := range comments {
		d, ok := ParseComment(c)
		if !ok {
			continue
		}
		line := file.LineOf(d.Span.Start)
		switch d.Kind {
		case KindDisableLine:
			idx.add(d.Rules, interval{line, line})
		case KindDisableNextLine:
			idx.add(d.Rules, interval{line + 1, line + 1})
		case KindDisableNextItem:
			if finder == nil {
				continue
			}
			sp, ok := finder.NextItem(d.Span.End)
			if !ok {
				continue
			}
			idx.add(d.Rules, spanLines(file, sp))
		case KindDisableStart:
			if len(d.Rules) == 0 {
				openAll = append(openAll, line)
				continue
			}
			for _, r := range d.Rules {
				open[r] = append(open[r], line)
			}
		case KindDisableEnd:
			if len(d.Rules) == 0 {
				if n := len(openAll); n > 0 {
					idx.wildcard = append(idx.wildcard, interval{openAll[n-1], line})
					openAll = openAll[:n-1]
				}
				continue
			}
			for _, r := range d.Rules {
				stack := open[r]
				if len(stack) == 0 {
					continue // unmatched, ignore
				}
				idx.byRule[r] = append(idx.byRule[r], interval{stack[len(stack)-1], line})
				open[r] = stack[:len(stack)-1]
			}
		}
	}

	eof := file.LineCount()
	for _, start := range openAll {
		idx.wildcard = append(idx.wildcard, interval{start, eof})
	}
	for r, stack := range open {
		for _, start := range stack {
			idx.byRule[r] = append(idx.byRule[r], interval{start, eof})
		}
	}
	return idx
}

func (idx *Index) add(rules []diag.Code, iv interval) {
	if len(rules) == 0 {
		idx.wildcard = append(idx.wildcard, iv)
		return
	}
	for _, r := range rules {
		idx.byRule[r] = append(idx.byRule[r], iv)
	}
}

// spanLines converts a byte span to the inclusive line range it covers.
func spanLines(file *source.File, sp source.Span) interval {
	first := file.LineOf(sp.Start)
	last := first
	if sp.End > sp.Start {
		last = file.LineOf(sp.End - 1)
	}
	return interval{first, last}
}

// IsSuppressed reports whether rule is suppressed at span. Multi-line
// spans are matched by their starting line only.
func (idx *Index) IsSuppressed(rule diag.Code, span source.Span) bool {
	line := idx.file.LineOf(span.Start)
	for _, iv := range idx.wildcard {
		if iv.contains(line) {
			return true
		}
	}
	for _, iv := range idx.byRule[rule] {
		if iv.contains(line) {
			return true
		}
	}
	return false
}

// Empty reports whether the index holds no suppression at all, letting
// callers skip the per-diagnostic filter.
func (idx *Index) Empty() bool {
	return len(idx.wildcard) == 0 && len(idx.byRule) == 0
}

// itemIndex is the default ItemFinder over a parsed source unit. It
// covers top-level items and contract members alike, so a directive
// inside a contract body scopes to the next member.
type itemIndex struct {
	spans []source.Span // sorted by Start
}

// NewItemFinder collects the declaration spans of one syntax tree.
func NewItemFinder(builder *ast.Builder, fileID ast.FileID) ItemFinder {
	file := builder.Files.Get(fileID)
	if file == nil {
		return nil
	}
	var spans []source.Span
	for _, id := range file.Items {
		item := builder.Items.Get(id)
		if item == nil {
			continue
		}
		spans = append(spans, item.Span)
		if item.Kind == ast.KindContract {
			for _, member := range builder.Items.Contract(item).Members {
				if m := builder.Items.Get(member); m != nil {
					spans = append(spans, m.Span)
				}
			}
		}
	}
	sort.Slice(spans, func(i, j int) bool { return spans[i].Start < spans[j].Start })
	return &itemIndex{spans: spans}
}

func (ii *itemIndex) NextItem(after uint32) (source.Span, bool) {
	i := sort.Search(len(ii.spans), func(i int) bool { return ii.spans[i].Start >= after })
	if i == len(ii.spans) {
		return source.Span{}, false
	}
	return ii.spans[i], true
}
