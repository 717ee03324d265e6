// Package emit implements the two read-only tree walkers that render a
// tree.Store to text: a YAML-style emitter and a Python-literal debug
// emitter. Both walk with an explicit work stack rather than recursion,
// so rendering depth is bounded by document depth, not call-stack depth.
package emit

import (
	"strings"

	"github.com/dfeneyrou/styml-go/internal/tree"
)

// yamlWork is one pending container to resume: its element, the indent
// its children render at, and the index of the next child to emit.
type yamlWork struct {
	id     tree.ID
	indent int
	next   int
}

// YAML renders store starting at root in the canonical YAML form, using
// an explicit work stack instead of recursion.
func YAML(store *tree.Store, root tree.ID) string {
	var b strings.Builder
	e := store.Get(root)

	switch e.Kind {
	case tree.Unknown:
		return ""
	case tree.Value:
		writeScalar(&b, store.String(root))
		b.WriteByte('\n')
		writeCommentChain(&b, store, e.NextComment, 0)
		return b.String()
	}

	writeCommentChain(&b, store, e.NextComment, 0)

	stack := []yamlWork{{id: root, indent: 0, next: 0}}
	for len(stack) > 0 {
		w := &stack[len(stack)-1]
		e := store.Get(w.id)
		if w.next >= len(e.Children) {
			stack = stack[:len(stack)-1]
			continue
		}
		child := e.Children[w.next]
		w.next++

		ce := store.Get(child)
		if ce.Kind == tree.Comment {
			writeStandaloneComment(&b, store, child, w.indent)
			continue
		}

		b.WriteString(strings.Repeat(" ", w.indent))

		switch e.Kind {
		case tree.Sequence:
			b.WriteString("- ")
			if pushed := emitScalarOrOpen(&b, store, child, w.indent+2); pushed != nil {
				stack = append(stack, yamlWork{id: *pushed, indent: w.indent + 2})
			}
		case tree.Map:
			ke := store.Get(child)
			writeScalar(&b, store.String(child))
			b.WriteByte(':')
			valueID := ke.Child
			if pushed := emitKeyedValue(&b, store, valueID, w.indent+2); pushed != nil {
				stack = append(stack, yamlWork{id: *pushed, indent: w.indent + 2})
			}
			writeCommentChain(&b, store, ke.NextComment, w.indent)
		}
	}
	if len(e.Children) == 0 {
		b.WriteString("\n")
	}
	return b.String()
}

// emitScalarOrOpen writes a sequence item's content when it is a scalar
// or empty, and returns the child id to push onto the work stack when it
// is a container.
func emitScalarOrOpen(b *strings.Builder, store *tree.Store, id tree.ID, indent int) *tree.ID {
	e := store.Get(id)
	switch e.Kind {
	case tree.Unknown:
		b.WriteByte('\n')
		return nil
	case tree.Value:
		writeScalar(b, store.String(id))
		b.WriteByte('\n')
		writeCommentChain(b, store, e.NextComment, indent)
		return nil
	default:
		if len(e.Children) == 0 {
			b.WriteString("\n")
			return nil
		}
		b.WriteByte('\n')
		cp := id
		return &cp
	}
}

// emitKeyedValue writes a map key's value when it is a scalar or empty,
// and returns the child id to push when it is a container.
func emitKeyedValue(b *strings.Builder, store *tree.Store, id tree.ID, indent int) *tree.ID {
	e := store.Get(id)
	switch e.Kind {
	case tree.Unknown:
		b.WriteByte('\n')
		return nil
	case tree.Value:
		b.WriteByte(' ')
		writeScalar(b, store.String(id))
		b.WriteByte('\n')
		writeCommentChain(b, store, e.NextComment, indent)
		return nil
	default:
		if len(e.Children) == 0 {
			b.WriteString("\n")
			return nil
		}
		b.WriteByte('\n')
		cp := id
		return &cp
	}
}

func writeCommentChain(b *strings.Builder, store *tree.Store, id tree.ID, indent int) {
	for id != tree.NoID {
		c := store.Get(id)
		b.WriteString(strings.Repeat(" ", indent))
		b.WriteByte('#')
		b.WriteString(store.String(id))
		b.WriteByte('\n')
		id = c.NextComment
	}
}

func writeStandaloneComment(b *strings.Builder, store *tree.Store, id tree.ID, indent int) {
	b.WriteString(strings.Repeat(" ", indent))
	b.WriteByte('#')
	b.WriteString(store.String(id))
	b.WriteByte('\n')
}

// writeScalar applies the YAML emitter's styling policy: prefer plain,
// fall back to single-quoted, fall back to double-quoted.
func writeScalar(b *strings.Builder, s string) {
	switch scalarStyle(s) {
	case stylePlain:
		b.WriteString(s)
	case styleSingle:
		b.WriteByte('\'')
		b.WriteString(strings.ReplaceAll(s, "'", "''"))
		b.WriteByte('\'')
	default:
		b.WriteByte('"')
		b.WriteString(escapeDouble(s))
		b.WriteByte('"')
	}
}

type scalarStyleKind int

const (
	stylePlain scalarStyleKind = iota
	styleSingle
	styleDouble
)

func scalarStyle(s string) scalarStyleKind {
	if s == "" {
		return styleSingle
	}
	lead := s[0]
	if lead == ' ' || lead == '>' || lead == '|' || lead == '\'' || lead == '"' {
		return pickQuoted(s)
	}
	switch {
	case strings.HasSuffix(s, " "),
		strings.ContainsAny(s, "\r\t"),
		strings.Contains(s, ": "),
		strings.Contains(s, ":\n"),
		strings.Contains(s, ":\r"),
		strings.Contains(s, " #"),
		strings.Contains(s, "\n"):
		return pickQuoted(s)
	}
	return stylePlain
}

func pickQuoted(s string) scalarStyleKind {
	if strings.Contains(s, "\n") {
		return styleDouble
	}
	return styleSingle
}

func escapeDouble(s string) string {
	var b strings.Builder
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
	return b.String()
}
