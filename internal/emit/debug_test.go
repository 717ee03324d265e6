package emit

import (
	"strings"
	"testing"

	"github.com/dfeneyrou/styml-go/internal/tree"
)

func TestDebugCompactFormMatchesS1(t *testing.T) {
	store, root := buildS1(t)
	got := Debug(store, root, false)
	want := `{'foo' : "1",'bar' : ["2",["a","b","14"]],'john' : "doe"}`
	if got != want {
		t.Fatalf("got  %s\nwant %s", got, want)
	}
}

func TestDebugPrettyFormIndentsMultiChildContainers(t *testing.T) {
	store, root := buildS1(t)
	got := Debug(store, root, true)
	if !strings.Contains(got, "\n") {
		t.Fatalf("expected a pretty, multi-line form, got %q", got)
	}
	if strings.Contains(got, ", ") {
		t.Fatalf("pretty form should break lines, not use a comma-space separator: %q", got)
	}
}

func TestDebugSingleChildContainerStaysInlineEvenWhenPretty(t *testing.T) {
	store := tree.NewStore(8)
	root := store.NewUnknown()
	store.RewriteAsSequence(root)
	store.AppendChild(root, store.NewValue([]byte("only")))

	got := Debug(store, root, true)
	if got != `["only"]` {
		t.Fatalf("got %q", got)
	}
}

func TestDebugUnknownIsNone(t *testing.T) {
	store := tree.NewStore(8)
	root := store.NewUnknown()
	if got := Debug(store, root, false); got != "None" {
		t.Fatalf("got %q, want None", got)
	}
}

func TestDebugEscapesKeyAndValue(t *testing.T) {
	store := tree.NewStore(8)
	root := store.NewUnknown()
	store.RewriteAsMap(root)
	keyID, childID := store.NewKey([]byte("it's a key"))
	store.AppendChild(root, keyID)
	store.RewriteAsValue(childID, []byte("line\nbreak"))

	got := Debug(store, root, false)
	want := `{'it\'s a key' : "line\nbreak"}`
	if got != want {
		t.Fatalf("got  %s\nwant %s", got, want)
	}
}

func TestDebugEmptyMapIsEmptyBraces(t *testing.T) {
	store := tree.NewStore(8)
	root := store.NewUnknown()
	store.RewriteAsMap(root)
	if got := Debug(store, root, false); got != "{}" {
		t.Fatalf("got %q", got)
	}
}
