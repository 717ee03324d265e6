package styml

import "github.com/dfeneyrou/styml-go/internal/tree"

// HasKey reports whether key exists in this Map. False for any node
// that is not a Map, including absent nodes.
func (n Node) HasKey(key string) bool {
	if n.absent {
		return false
	}
	e := n.doc.store.Get(n.id)
	if e.Kind != tree.Map {
		return false
	}
	_, found := n.doc.index.Lookup(n.doc.store, n.id, key)
	return found
}

// Get returns a view of the value stored under key in this Map. If the
// key is absent, the returned Node carries the pending key; reading it
// yields a default/error, and assigning through it materializes the
// entry.
func (n Node) Get(key string) Node {
	if !n.absent {
		e := n.doc.store.Get(n.id)
		if e.Kind == tree.Map {
			if slot, found := n.doc.index.Lookup(n.doc.store, n.id, key); found {
				keyID := e.Children[slot]
				valueID := n.doc.store.Get(keyID).Child
				return Node{doc: n.doc, id: valueID}
			}
		}
	}
	return Node{doc: n.doc, absent: true, parent: n.id, key: key}
}

// Remove deletes key from this Map, re-indexing the child that is
// swapped into the removed slot to keep the key index and the dense
// child array consistent.
func (n Node) Remove(key string) error {
	if n.absent {
		return newAccessError(AbsentKey, "cannot remove %q: node is absent", key)
	}
	store := n.doc.store
	e := store.Get(n.id)
	if e.Kind != tree.Map {
		return newAccessError(WrongKind, "remove: node is a %s, not a Map", describeKind(e.Kind))
	}
	slot, found := n.doc.index.Remove(store, n.id, key)
	if !found {
		return newAccessError(AbsentKey, "key %q not found", key)
	}
	moved := store.RemoveChildAt(n.id, slot)
	if moved != tree.NoID {
		movedKey := store.String(moved)
		n.doc.index.Insert(store, n.id, movedKey, slot)
	}
	return nil
}

// Keys returns the Map's keys in child-array order, skipping comments.
// That is insertion order until a Remove, which moves the last key into
// the removed key's position.
func (n Node) Keys() []string {
	if n.absent {
		return nil
	}
	e := n.doc.store.Get(n.id)
	if e.Kind != tree.Map {
		return nil
	}
	var keys []string
	for _, c := range e.Children {
		ce := n.doc.store.Get(c)
		if ce.Kind == tree.Key {
			keys = append(keys, n.doc.store.String(c))
		}
	}
	return keys
}

// visibleChildren returns a Sequence/Map's children with Comment
// elements filtered out, preserving order.
func visibleChildren(n Node) []tree.ID {
	e := n.doc.store.Get(n.id)
	var out []tree.ID
	for _, c := range e.Children {
		if n.doc.store.Get(c).Kind != tree.Comment {
			out = append(out, c)
		}
	}
	return out
}

// Len returns the number of visible entries in a Map or Sequence.
func (n Node) Len() int {
	if n.absent {
		return 0
	}
	e := n.doc.store.Get(n.id)
	if e.Kind != tree.Sequence && e.Kind != tree.Map {
		return 0
	}
	return len(visibleChildren(n))
}

// At returns the i'th visible element of a Sequence.
func (n Node) At(i int) (Node, error) {
	if n.absent {
		return Node{}, newAccessError(AbsentKey, "node is absent")
	}
	e := n.doc.store.Get(n.id)
	if e.Kind != tree.Sequence {
		return Node{}, newAccessError(WrongKind, "node is a %s, not a Sequence", describeKind(e.Kind))
	}
	kids := visibleChildren(n)
	if i < 0 || i >= len(kids) {
		return Node{}, newAccessError(OutOfBounds, "index %d out of bounds (len %d)", i, len(kids))
	}
	return Node{doc: n.doc, id: kids[i]}, nil
}

// PushBack appends a scalar to the end of a Sequence, rewriting an
// Unknown node in place as an empty Sequence first.
func (n *Node) PushBack(v string) error {
	id, err := n.ensureSequence()
	if err != nil {
		return err
	}
	n.doc.store.AppendChild(id, n.doc.store.NewValue([]byte(v)))
	return nil
}

// PushBackSequence appends a new empty Sequence to the end of this
// Sequence and returns a Node view of it.
func (n *Node) PushBackSequence() (Node, error) {
	id, err := n.ensureSequence()
	if err != nil {
		return Node{}, err
	}
	child := n.doc.store.NewUnknown()
	n.doc.store.RewriteAsSequence(child)
	n.doc.store.AppendChild(id, child)
	return Node{doc: n.doc, id: child}, nil
}

// PushBackMap appends a new empty Map to the end of this Sequence and
// returns a Node view of it.
func (n *Node) PushBackMap() (Node, error) {
	id, err := n.ensureSequence()
	if err != nil {
		return Node{}, err
	}
	child := n.doc.store.NewUnknown()
	n.doc.store.RewriteAsMap(child)
	n.doc.store.AppendChild(id, child)
	return Node{doc: n.doc, id: child}, nil
}

func (n *Node) ensureSequence() (tree.ID, error) {
	id, err := n.materialize()
	if err != nil {
		return tree.NoID, err
	}
	e := n.doc.store.Get(id)
	if e.Kind == tree.Unknown {
		n.doc.store.RewriteAsSequence(id)
	} else if e.Kind != tree.Sequence {
		return tree.NoID, newAccessError(WrongKind, "node is a %s, not a Sequence", describeKind(e.Kind))
	}
	n.id = id
	n.absent = false
	n.key = ""
	return id, nil
}

// Insert inserts a scalar at position i in a Sequence, shifting later
// elements right by one.
func (n *Node) Insert(i int, v string) error {
	id, err := n.ensureSequence()
	if err != nil {
		return err
	}
	store := n.doc.store
	kids := visibleChildren(*n)
	if i < 0 || i > len(kids) {
		return newAccessError(OutOfBounds, "insert index %d out of bounds (len %d)", i, len(kids))
	}
	slot := sliceSlotForVisibleIndex(store, id, i)
	store.InsertChildAt(id, slot, store.NewValue([]byte(v)))
	return nil
}

// RemoveAt removes the element at visible position i from a Sequence,
// preserving the relative order of the remaining elements.
func (n *Node) RemoveAt(i int) error {
	if n.absent {
		return newAccessError(AbsentKey, "node is absent")
	}
	store := n.doc.store
	e := store.Get(n.id)
	if e.Kind != tree.Sequence {
		return newAccessError(WrongKind, "node is a %s, not a Sequence", describeKind(e.Kind))
	}
	kids := visibleChildren(*n)
	if i < 0 || i >= len(kids) {
		return newAccessError(OutOfBounds, "index %d out of bounds (len %d)", i, len(kids))
	}
	slot := sliceSlotForVisibleIndex(store, n.id, i)
	removeChildPreservingOrder(store, n.id, slot)
	return nil
}

// PopBack removes the last visible element of a Sequence.
func (n *Node) PopBack() error {
	l := n.Len()
	if l == 0 {
		return newAccessError(OutOfBounds, "pop_back on empty Sequence")
	}
	return n.RemoveAt(l - 1)
}

// sliceSlotForVisibleIndex maps a visible (comment-skipping) index to
// its actual slot in the dense child array.
func sliceSlotForVisibleIndex(store *tree.Store, id tree.ID, visibleIndex int) int {
	e := store.Get(id)
	seen := 0
	for slot, c := range e.Children {
		if store.Get(c).Kind == tree.Comment {
			continue
		}
		if seen == visibleIndex {
			return slot
		}
		seen++
	}
	return len(e.Children)
}

// removeChildPreservingOrder removes the child at slot, shifting later
// children left by one rather than swapping in the last child, since
// Sequence order is observable (unlike Map, whose order the key index
// does not depend on).
func removeChildPreservingOrder(store *tree.Store, parent tree.ID, slot int) {
	e := store.Get(parent)
	e.Children = append(e.Children[:slot], e.Children[slot+1:]...)
}
