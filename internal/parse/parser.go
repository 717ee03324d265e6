// Package parse implements the indentation-stack driver that wires a
// token stream into a tree.Store and a keyindex.Index.
package parse

import (
	"github.com/dfeneyrou/styml-go/internal/keyindex"
	"github.com/dfeneyrou/styml-go/internal/token"
	"github.com/dfeneyrou/styml-go/internal/tree"
)

// frame is one level of the indentation stack: the element introduced at
// this level, the column it was introduced at, and the column its first
// child established (-1 if it has none yet).
type frame struct {
	elementID   tree.ID
	indent      int
	childIndent int
}

// Result is the product of a successful parse: the element store and key
// index backing a Document.
type Result struct {
	Store *tree.Store
	Index *keyindex.Index
}

// Parse tokenizes and parses src, returning the populated store and
// index, or the first fatal Error encountered.
func Parse(src []byte) (*Result, error) {
	store := tree.NewStore(len(src))
	index := keyindex.New()
	lx := token.NewLexer(src, store.Arena)

	rootChild := store.Get(tree.RootID).Child
	stack := []frame{{elementID: rootChild, indent: -1, childIndent: -1}}
	parentIndentForBlocks := -1

	for {
		tok, err := lx.Next(parentIndentForBlocks)
		if err != nil {
			return nil, lexError(src, err)
		}

		switch tok.Kind {
		case token.Eos:
			return &Result{Store: store, Index: index}, nil

		case token.Newline:
			parentIndentForBlocks = stack[len(stack)-1].indent

		case token.CommentTok:
			text := []byte(tok.Text(store.Arena))
			comment := store.NewComment(text, tok.Standalone)
			owner := findCommentOwner(store, stack)
			attachCommentTo(store, owner, comment)

		case token.CaretTok:
			if err := handleCaret(store, &stack, tok.Column, tok.Line, src); err != nil {
				return nil, err
			}

		case token.KeyTok:
			if err := handleKey(store, index, &stack, tok, src); err != nil {
				return nil, err
			}

		case token.StringValue:
			if err := handleStringValue(store, &stack, tok, src); err != nil {
				return nil, err
			}
		}
	}
}

func lexError(src []byte, err error) error {
	if le, ok := err.(*token.Error); ok {
		return newError(le.Line, 0, src, le.Message)
	}
	return err
}

// findCommentOwner returns the element a comment should be attached to:
// the top-of-stack element if it already has content (not Unknown), or
// its parent frame's element otherwise. Containers receive the comment
// as an ordinary child instead of through the comment chain.
func findCommentOwner(store *tree.Store, stack []frame) tree.ID {
	owner := stack[len(stack)-1].elementID
	e := store.Get(owner)
	if e.Kind == tree.Unknown && len(stack) > 1 {
		owner = stack[len(stack)-2].elementID
	}
	return owner
}

func attachCommentTo(store *tree.Store, owner, comment tree.ID) {
	e := store.Get(owner)
	switch e.Kind {
	case tree.Sequence, tree.Map:
		store.AppendChild(owner, comment)
	default:
		store.AttachComment(owner, comment)
	}
}

// handleCaret implements §4.2's Caret rule: pop frames until one accepts
// this column as either the established sibling indent, a fresh first
// child, or the "key:\n- value" same-indent convention; promote the
// accepted frame's element to Sequence and push a placeholder for the
// new item.
func handleCaret(store *tree.Store, stackP *[]frame, col, line int, src []byte) error {
	stack := *stackP

	for {
		t := &stack[len(stack)-1]
		if t.childIndent == col {
			break
		}
		if t.childIndent < 0 && col > t.indent {
			break
		}
		if t.childIndent < 0 && t.indent == col && len(stack) >= 2 {
			under := stack[len(stack)-2]
			if store.Get(under.elementID).Kind == tree.Key {
				break
			}
		}
		if len(stack) == 1 {
			return newError(line, col, src,
				"the indentation of the caret (=%d) does not match any parent", col)
		}
		if t.childIndent >= 0 && t.childIndent != col {
			return newError(line, col, src,
				"the indentation of the caret (=%d) does not match any parent", col)
		}
		stack = stack[:len(stack)-1]
	}

	t := &stack[len(stack)-1]
	parentID := t.elementID
	parent := store.Get(parentID)
	switch parent.Kind {
	case tree.Unknown:
		store.RewriteAsSequence(parentID)
	case tree.Sequence:
		// already the right shape
	default:
		return newError(line, col, src, "in a map, a value without a key is forbidden")
	}
	t.childIndent = col

	child := store.NewUnknown()
	store.AppendChild(parentID, child)
	stack = append(stack, frame{elementID: child, indent: col, childIndent: -1})
	*stackP = stack
	return nil
}

// handleKey implements §4.2's Key rule.
func handleKey(store *tree.Store, index *keyindex.Index, stackP *[]frame, tok token.Token, src []byte) error {
	stack := *stackP
	c := tok.Column

	for len(stack) > 1 && c <= stack[len(stack)-1].indent {
		stack = stack[:len(stack)-1]
	}
	t := &stack[len(stack)-1]

	parentID := t.elementID
	parent := store.Get(parentID)
	if parent.Kind == tree.Sequence {
		return newError(tok.Line, c, src,
			"the indentation of the key (=%d) does not match any parent", c)
	}
	if t.childIndent >= 0 && c != t.childIndent {
		return newError(tok.Line, c, src, "%q is not aligned with other child elements", tok.Text(store.Arena))
	}

	if parent.Kind == tree.Unknown {
		store.RewriteAsMap(parentID)
	}
	t.childIndent = c

	keyName := tok.Text(store.Arena)
	if _, found := index.Lookup(store, parentID, keyName); found {
		return newError(tok.Line, c, src,
			"duplicated key are forbidden and the key %q is a duplicate", keyName)
	}

	keyID, childID := store.NewKey([]byte(keyName))
	slot := store.AppendChild(parentID, keyID)
	index.Insert(store, parentID, keyName, slot)

	stack = append(stack, frame{elementID: keyID, indent: c, childIndent: -1})
	stack = append(stack, frame{elementID: childID, indent: c, childIndent: -1})
	*stackP = stack
	return nil
}

// handleStringValue implements §4.2's StringValue rule.
func handleStringValue(store *tree.Store, stackP *[]frame, tok token.Token, src []byte) error {
	stack := *stackP
	t := &stack[len(stack)-1]
	c := tok.Column

	if c <= t.indent {
		return newError(tok.Line, c, src,
			"%q is not compatible with the parent indentation", tok.Text(store.Arena))
	}
	if t.childIndent >= 0 && c != t.childIndent {
		return newError(tok.Line, c, src,
			"%q is not aligned with other child elements", tok.Text(store.Arena))
	}

	parentElem := store.Get(t.elementID)
	text := []byte(tok.Text(store.Arena))

	switch parentElem.Kind {
	case tree.Unknown:
		store.RewriteAsValue(t.elementID, text)
		stack = stack[:len(stack)-1]
	case tree.Sequence:
		t.childIndent = c
		store.AppendChild(t.elementID, store.NewValue(text))
	case tree.Map:
		return newError(tok.Line, c, src, "in a map, a value without a key is forbidden")
	default:
		return newError(tok.Line, c, src, "in a map, a value without a key is forbidden")
	}

	// A Key holds exactly one child; once its value lands, pop the key
	// frame too so the next token is evaluated against the key's parent.
	if len(stack) > 1 {
		parent := &stack[len(stack)-1]
		if store.Get(parent.elementID).Kind == tree.Key {
			stack = stack[:len(stack)-1]
		}
	}
	*stackP = stack
	return nil
}
