package emit

import (
	"strings"
	"testing"

	"github.com/dfeneyrou/styml-go/internal/tree"
)

func buildS1(t *testing.T) (*tree.Store, tree.ID) {
	t.Helper()
	store := tree.NewStore(64)
	root := store.Get(tree.RootID).Child
	store.RewriteAsMap(root)

	setKey := func(parent tree.ID, name, value string) {
		keyID, childID := store.NewKey([]byte(name))
		store.AppendChild(parent, keyID)
		store.RewriteAsValue(childID, []byte(value))
	}
	setKey(root, "foo", "1")

	barKey, barVal := store.NewKey([]byte("bar"))
	store.AppendChild(root, barKey)
	store.RewriteAsSequence(barVal)
	store.AppendChild(barVal, store.NewValue([]byte("2")))

	nested := store.NewUnknown()
	store.RewriteAsSequence(nested)
	store.AppendChild(nested, store.NewValue([]byte("a")))
	store.AppendChild(nested, store.NewValue([]byte("b")))
	store.AppendChild(nested, store.NewValue([]byte("14")))
	store.AppendChild(barVal, nested)

	setKey(root, "john", "doe")
	return store, root
}

func TestYAMLRendersNestedSequenceIndented(t *testing.T) {
	store, root := buildS1(t)
	out := YAML(store, root)

	if !strings.HasPrefix(out, "foo: 1\nbar:\n  - 2\n  - \n    - a\n    - b\n    - 14\njohn: doe\n") {
		t.Fatalf("unexpected YAML:\n%s", out)
	}
	// every emitted line inside the nested sequence must carry its own
	// indentation; no nested item may start at column 0.
	for _, line := range strings.Split(out, "\n") {
		trimmed := strings.TrimLeft(line, " ")
		if trimmed == "- a" || trimmed == "- b" || trimmed == "- 14" {
			if line == trimmed {
				t.Fatalf("nested sequence item emitted without indentation: %q", line)
			}
		}
	}
}

func TestYAMLPlainScalarPreferredOverQuoting(t *testing.T) {
	store := tree.NewStore(8)
	v := store.NewValue([]byte("hello"))
	out := YAML(store, v)
	if out != "hello\n" {
		t.Fatalf("got %q", out)
	}
}

func TestYAMLQuotesScalarThatLooksLikeAKey(t *testing.T) {
	store := tree.NewStore(8)
	v := store.NewValue([]byte("a: b"))
	out := YAML(store, v)
	if !strings.HasPrefix(out, "'") {
		t.Fatalf("expected single-quoted scalar, got %q", out)
	}
}

func TestYAMLDoubleQuotesScalarWithNewline(t *testing.T) {
	store := tree.NewStore(8)
	v := store.NewValue([]byte("a\nb"))
	out := YAML(store, v)
	if !strings.HasPrefix(out, `"a\nb"`) {
		t.Fatalf("got %q", out)
	}
}

func TestYAMLUnknownRootRendersEmptyString(t *testing.T) {
	store := tree.NewStore(8)
	root := store.NewUnknown()
	out := YAML(store, root)
	if out != "" {
		t.Fatalf("got %q, want empty", out)
	}
}
