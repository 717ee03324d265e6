package emit

import (
	"strings"

	"github.com/dfeneyrou/styml-go/internal/tree"
)

// debugWork is one pending container in the debug emitter's work stack.
type debugWork struct {
	id       tree.ID
	depth    int
	next     int
	children []tree.ID // filtered to exclude Comment elements
	isMap    bool
}

// Debug renders store starting at root in the Python-literal structural
// form used for golden-file testing: maps as {'k' : v, ...}, sequences
// as [v, v, ...], scalars double-quoted, Unknown/empty as None.
// Comments are never emitted in this form.
func Debug(store *tree.Store, root tree.ID, withIndent bool) string {
	var b strings.Builder
	writeDebugNode(&b, store, root, 0, withIndent)
	return b.String()
}

func writeDebugNode(b *strings.Builder, store *tree.Store, id tree.ID, depth int, withIndent bool) {
	e := store.Get(id)
	switch e.Kind {
	case tree.Unknown:
		b.WriteString("None")
	case tree.Value:
		writeDebugString(b, store.String(id))
	case tree.Sequence:
		writeDebugContainer(b, store, id, depth, withIndent, false)
	case tree.Map:
		writeDebugContainer(b, store, id, depth, withIndent, true)
	}
}

// writeDebugContainer renders a Map or Sequence using an explicit stack
// of pending containers rather than recursion. Each stack frame tracks
// the non-Comment children still to render.
func writeDebugContainer(b *strings.Builder, store *tree.Store, root tree.ID, rootDepth int, withIndent, rootIsMap bool) {
	stack := []*debugWork{newDebugWork(store, root, rootDepth, rootIsMap)}
	openContainer(b, stack[0], withIndent)

	for len(stack) > 0 {
		w := stack[len(stack)-1]
		if w.next >= len(w.children) {
			closeContainer(b, w, withIndent)
			stack = stack[:len(stack)-1]
			continue
		}
		child := w.children[w.next]
		w.next++
		writeDebugSeparatorPrefix(b, w, withIndent)

		// For a Map, child is always a Key; its value is what gets
		// rendered. For a Sequence, child is the value itself.
		target := child
		if w.isMap {
			writeDebugKeyLiteral(b, store.String(child))
			b.WriteString(" : ")
			target = store.Get(child).Child
		}
		te := store.Get(target)

		switch te.Kind {
		case tree.Map, tree.Sequence:
			nw := newDebugWork(store, target, w.depth+1, te.Kind == tree.Map)
			openContainer(b, nw, withIndent)
			if len(nw.children) == 0 {
				closeContainer(b, nw, withIndent)
				continue
			}
			stack = append(stack, nw)
		default:
			writeDebugNode(b, store, target, w.depth+1, withIndent)
		}
	}
}

func newDebugWork(store *tree.Store, id tree.ID, depth int, isMap bool) *debugWork {
	e := store.Get(id)
	var kids []tree.ID
	for _, c := range e.Children {
		if store.Get(c).Kind != tree.Comment {
			kids = append(kids, c)
		}
	}
	return &debugWork{id: id, depth: depth, children: kids, isMap: isMap}
}

func pretty(w *debugWork, withIndent bool) bool {
	return withIndent && len(w.children) > 1
}

func openContainer(b *strings.Builder, w *debugWork, withIndent bool) {
	if w.isMap {
		b.WriteByte('{')
	} else {
		b.WriteByte('[')
	}
	if pretty(w, withIndent) {
		b.WriteByte('\n')
	}
}

func closeContainer(b *strings.Builder, w *debugWork, withIndent bool) {
	if pretty(w, withIndent) {
		b.WriteString(strings.Repeat("  ", w.depth))
	}
	if w.isMap {
		b.WriteByte('}')
	} else {
		b.WriteByte(']')
	}
}

func writeDebugSeparatorPrefix(b *strings.Builder, w *debugWork, withIndent bool) {
	if w.next == 1 {
		if pretty(w, withIndent) {
			b.WriteString(strings.Repeat("  ", w.depth+1))
		}
		return
	}
	b.WriteByte(',')
	if pretty(w, withIndent) {
		b.WriteByte('\n')
		b.WriteString(strings.Repeat("  ", w.depth+1))
	}
}

// writeDebugKeyLiteral renders a map key wrapped in single quotes, as
// opposed to scalar values which render double-quoted.
func writeDebugKeyLiteral(b *strings.Builder, s string) {
	b.WriteByte('\'')
	b.WriteString(strings.ReplaceAll(s, "'", `\'`))
	b.WriteByte('\'')
}

func writeDebugString(b *strings.Builder, s string) {
	b.WriteByte('"')
	for _, r := range s {
		switch r {
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		default:
			b.WriteRune(r)
		}
	}
	b.WriteByte('"')
}
