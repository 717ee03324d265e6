// Package styml implements a parser and emitter for a restricted,
// human-editable configuration format derived from a strict subset of
// YAML: scalar strings, ordered sequences, keyed maps, and line
// comments. Flow syntax, anchors, aliases, tags, and implicit typing are
// not supported; every scalar is a string, and typed access goes
// through the conversion helpers on Node.
package styml

import (
	"github.com/dfeneyrou/styml-go/internal/emit"
	"github.com/dfeneyrou/styml-go/internal/keyindex"
	"github.com/dfeneyrou/styml-go/internal/parse"
	"github.com/dfeneyrou/styml-go/internal/tree"
)

// Document owns the arena, element store, and key index backing a
// parsed or programmatically built tree. It is not safe for concurrent
// use; distinct Documents are fully independent.
type Document struct {
	store *tree.Store
	index *keyindex.Index
}

// Parse parses text and returns the resulting Document, or a ParseError.
// No partial Document is returned on failure.
func Parse(text string) (*Document, error) {
	return ParseBytes([]byte(text))
}

// ParseBytes parses src, a UTF-8 byte slice passed through verbatim
// inside string scalars without code-point validation.
func ParseBytes(src []byte) (*Document, error) {
	res, err := parse.Parse(src)
	if err != nil {
		return nil, wrapParseError(err)
	}
	return &Document{store: res.Store, index: res.Index}, nil
}

// NewDocument creates an empty Document whose root value is Unknown.
func NewDocument() *Document {
	return &Document{store: tree.NewStore(64), index: keyindex.New()}
}

// Root returns a Node view of the document's top-level value.
func (d *Document) Root() Node {
	return Node{doc: d, id: d.store.Get(tree.RootID).Child}
}

// YAML renders the document in the canonical YAML form.
func (d *Document) YAML() string {
	return emit.YAML(d.store, d.store.Get(tree.RootID).Child)
}

// Debug renders the document in the Python-literal structural form used
// for golden-file testing. Comments are never emitted in this form.
func (d *Document) Debug(withIndent bool) string {
	return emit.Debug(d.store, d.store.Get(tree.RootID).Child, withIndent)
}

// Stats reports the arena and element-vector footprint of the document,
// used by the CLI's -n flag; it does not mutate the document.
func (d *Document) Stats() tree.Stats {
	return d.store.Stats()
}
