package styml

import (
	"fmt"

	"github.com/dfeneyrou/styml-go/convert"
	"github.com/dfeneyrou/styml-go/internal/tree"
)

// Kind is the externally visible shape of a Node. Unknown elements
// report as Value, per §6.
type Kind int

const (
	KindValue Kind = iota
	KindSequence
	KindMap
	KindComment
)

func (k Kind) String() string {
	switch k {
	case KindSequence:
		return "Sequence"
	case KindMap:
		return "Map"
	case KindComment:
		return "Comment"
	default:
		return "Value"
	}
}

// Node is a lightweight view over one element of a Document. Nodes are
// cheap to copy and never own storage; mutating methods write through to
// the Document's store and key index.
//
// A Node obtained from a Map key that does not (yet) exist carries
// absent=true with the pending parent id and key string instead of a
// valid element id. Reading through such a Node yields a default or an
// AbsentKey AccessError; assigning through it materializes the key.
type Node struct {
	doc    *Document
	id     tree.ID
	absent bool
	parent tree.ID
	key    string
}

// Kind reports the node's externally visible shape.
func (n Node) Kind() Kind {
	if n.absent {
		return KindValue
	}
	switch n.doc.store.Get(n.id).Kind {
	case tree.Sequence:
		return KindSequence
	case tree.Map:
		return KindMap
	case tree.Comment:
		return KindComment
	default:
		return KindValue
	}
}

// IsAbsent reports whether this Node was obtained from a Map key that
// does not currently exist.
func (n Node) IsAbsent() bool { return n.absent }

// AsString decodes the node's scalar content. An Unknown element decodes
// to "" with no error; a container or an absent key is an AccessError.
func (n Node) AsString() (string, error) {
	if n.absent {
		return "", newAccessError(AbsentKey, "key %q is absent", n.key)
	}
	e := n.doc.store.Get(n.id)
	switch e.Kind {
	case tree.Unknown:
		return "", nil
	case tree.Value:
		return n.doc.store.String(n.id), nil
	default:
		return "", newAccessError(WrongKind, "node is a %s, not a scalar", Kind(n.Kind()))
	}
}

// AsStringOr decodes the node's scalar content, returning def on any
// error (wrong kind, absent key).
func (n Node) AsStringOr(def string) string {
	s, err := n.AsString()
	if err != nil {
		return def
	}
	return s
}

// AsInt decodes the node's scalar content as an integer.
func (n Node) AsInt() (int64, error) {
	s, err := n.AsString()
	if err != nil {
		return 0, err
	}
	v, err := convert.ToInt(s)
	if err != nil {
		return 0, wrapConvertError(err)
	}
	return v, nil
}

// AsIntOr decodes the node's scalar content as an integer, returning def
// on any error.
func (n Node) AsIntOr(def int64) int64 {
	v, err := n.AsInt()
	if err != nil {
		return def
	}
	return v
}

// AsFloat decodes the node's scalar content as a float.
func (n Node) AsFloat() (float64, error) {
	s, err := n.AsString()
	if err != nil {
		return 0, err
	}
	v, err := convert.ToFloat(s)
	if err != nil {
		return 0, wrapConvertError(err)
	}
	return v, nil
}

// AsFloatOr decodes the node's scalar content as a float, returning def
// on any error.
func (n Node) AsFloatOr(def float64) float64 {
	v, err := n.AsFloat()
	if err != nil {
		return def
	}
	return v
}

// AsBool decodes the node's scalar content as a bool.
func (n Node) AsBool() (bool, error) {
	s, err := n.AsString()
	if err != nil {
		return false, err
	}
	v, err := convert.ToBool(s)
	if err != nil {
		return false, wrapConvertError(err)
	}
	return v, nil
}

// AsBoolOr decodes the node's scalar content as a bool, returning def on
// any error.
func (n Node) AsBoolOr(def bool) bool {
	v, err := n.AsBool()
	if err != nil {
		return def
	}
	return v
}

// Decode decodes the node's scalar content into dst through
// convert.Decoder, the extension point for user-defined types the
// built-in String/Int/Float/Bool accessors don't cover.
func (n Node) Decode(dst convert.Decoder) error {
	s, err := n.AsString()
	if err != nil {
		return err
	}
	if err := dst.DecodeSTYML(s); err != nil {
		return wrapConvertError(&convert.Error{Value: s, Target: fmt.Sprintf("%T", dst), Cause: err})
	}
	return nil
}

// materialize returns the element id this Node should write through,
// creating the pending key in its parent Map first if the Node is
// absent.
func (n *Node) materialize() (tree.ID, error) {
	if !n.absent {
		return n.id, nil
	}
	store := n.doc.store
	parentElem := store.Get(n.parent)
	switch parentElem.Kind {
	case tree.Unknown:
		store.RewriteAsMap(n.parent)
	case tree.Map:
		// already the right shape
	default:
		return tree.NoID, newAccessError(WrongKind, "cannot set key %q: parent is a %s", n.key, describeKind(parentElem.Kind))
	}
	if _, found := n.doc.index.Lookup(store, n.parent, n.key); found {
		return tree.NoID, newAccessError(DuplicateKey, "key %q already exists", n.key)
	}
	keyID, childID := store.NewKey([]byte(n.key))
	slot := store.AppendChild(n.parent, keyID)
	n.doc.index.Insert(store, n.parent, n.key, slot)
	return childID, nil
}

// SetString encodes v as this node's scalar value, materializing an
// absent key first.
func (n *Node) SetString(v string) error { return n.setScalar([]byte(v)) }

// SetInt encodes v as this node's scalar value.
func (n *Node) SetInt(v int64) error { return n.setScalar([]byte(convert.FromInt(v))) }

// SetFloat encodes v as this node's scalar value.
func (n *Node) SetFloat(v float64) error { return n.setScalar([]byte(convert.FromFloat(v))) }

// SetBool encodes v as this node's scalar value.
func (n *Node) SetBool(v bool) error { return n.setScalar([]byte(convert.FromBool(v))) }

func (n *Node) setScalar(v []byte) error {
	id, err := n.materialize()
	if err != nil {
		return err
	}
	n.doc.store.RewriteAsValue(id, v)
	n.id = id
	n.absent = false
	n.key = ""
	return nil
}

// SetMap rewrites this node in place as an empty Map, materializing an
// absent key first.
func (n *Node) SetMap() error {
	id, err := n.materialize()
	if err != nil {
		return err
	}
	n.doc.store.RewriteAsMap(id)
	n.id = id
	n.absent = false
	n.key = ""
	return nil
}

// SetSequence rewrites this node in place as an empty Sequence,
// materializing an absent key first.
func (n *Node) SetSequence() error {
	id, err := n.materialize()
	if err != nil {
		return err
	}
	n.doc.store.RewriteAsSequence(id)
	n.id = id
	n.absent = false
	n.key = ""
	return nil
}

func describeKind(k tree.Kind) string {
	switch k {
	case tree.Sequence:
		return "Sequence"
	case tree.Map:
		return "Map"
	case tree.Key:
		return "Key"
	case tree.Comment:
		return "Comment"
	case tree.Value:
		return "Value"
	default:
		return "Value"
	}
}
