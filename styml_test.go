package styml

import (
	"fmt"
	"strings"
	"testing"
)

// S1: nested sequence-of-sequences under a map, rendered through the
// compact debug form.
func TestScenarioS1(t *testing.T) {
	src := "foo: 1\nbar:\n - 2\n -\n  - a\n  - b\n  - 14\njohn: doe\n"
	doc, err := Parse(src)
	if err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}
	got := doc.Debug(false)
	want := `{'foo' : "1",'bar' : ["2",["a","b","14"]],'john' : "doe"}`
	if got != want {
		t.Fatalf("debug form mismatch:\n got  %s\n want %s", got, want)
	}
}

// S2: a repeated top-level key is a duplicate-key parse error.
func TestScenarioS2(t *testing.T) {
	_, err := Parse("a: b\nc: d\na: f\n")
	if err == nil {
		t.Fatal("expected parse error")
	}
	if !strings.Contains(err.Error(), "duplicated key are forbidden") {
		t.Fatalf("got %q", err.Error())
	}
}

// S3: a child less indented than the first sibling's established
// indentation (but still inside its parent) is a misalignment, not an
// unknown-parent error.
func TestScenarioS3(t *testing.T) {
	_, err := Parse("a:\n   c: d\n  e: f\n")
	if err == nil {
		t.Fatal("expected parse error")
	}
	if !strings.Contains(err.Error(), "is not aligned with other child elements") {
		t.Fatalf("got %q", err.Error())
	}
}

// S4: a tab used for indentation inside a block scalar body is fatal.
func TestScenarioS4(t *testing.T) {
	_, err := Parse("- |+\n\tb\n")
	if err == nil {
		t.Fatal("expected parse error")
	}
	if !strings.Contains(err.Error(), "using tabulation is not accepted for indentation") {
		t.Fatalf("got %q", err.Error())
	}
}

// S5: a repeated explicit-indent digit on a block scalar opener is fatal.
func TestScenarioS5(t *testing.T) {
	_, err := Parse("- |25\n  abc\n")
	if err == nil {
		t.Fatal("expected parse error")
	}
	if !strings.Contains(err.Error(), "explicit indentation cannot be provided more than once") {
		t.Fatalf("got %q", err.Error())
	}
}

// S6: insert/remove/reinsert cycles on a Map leave it in the same
// observable state, exercising the swap-with-last removal strategy and
// its key-index reindexing.
func TestScenarioS6(t *testing.T) {
	doc := NewDocument()
	root := doc.Root()
	if err := root.SetMap(); err != nil {
		t.Fatalf("SetMap: %v", err)
	}

	for i := 0; i < 16; i++ {
		key := fmt.Sprintf("%d", i)
		v := root.Get(key)
		if err := v.SetString(key); err != nil {
			t.Fatalf("set %s: %v", key, err)
		}
	}

	for i := 0; i < 16; i += 3 {
		key := fmt.Sprintf("%d", i)
		if err := root.Remove(key); err != nil {
			t.Fatalf("remove %s: %v", key, err)
		}
	}
	for i := 0; i < 16; i += 3 {
		key := fmt.Sprintf("%d", i)
		v := root.Get(key)
		if err := v.SetString(key); err != nil {
			t.Fatalf("reinsert %s: %v", key, err)
		}
	}

	if root.Len() != 16 {
		t.Fatalf("len = %d, want 16", root.Len())
	}
	for i := 0; i < 16; i++ {
		key := fmt.Sprintf("%d", i)
		got, err := root.Get(key).AsString()
		if err != nil {
			t.Fatalf("get %s: %v", key, err)
		}
		if got != key {
			t.Fatalf("key %s = %q, want %q", key, got, key)
		}
	}
}

// S7: a map entry nested inside a sequence item picks up later keys at
// the same column, and does not spuriously pick up keys that were never
// written.
func TestScenarioS7(t *testing.T) {
	src := "1234:\n  - a\n  - 5678: abc\n    9101112: def\n"
	doc, err := Parse(src)
	if err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}
	seq := doc.Root().Get("1234")
	if seq.Kind() != KindSequence {
		t.Fatalf("root[1234] kind = %v, want Sequence", seq.Kind())
	}
	if seq.Len() != 2 {
		t.Fatalf("root[1234] len = %d, want 2", seq.Len())
	}
	item, err := seq.At(1)
	if err != nil {
		t.Fatalf("At(1): %v", err)
	}
	if item.Kind() != KindMap {
		t.Fatalf("root[1234][1] kind = %v, want Map", item.Kind())
	}
	if !item.HasKey("5678") || !item.HasKey("9101112") {
		t.Fatal("expected keys 5678 and 9101112")
	}
	if item.HasKey("13141516") {
		t.Fatal("did not expect key 13141516")
	}
}

// Invariant 1: re-parsing a document's own YAML form yields an
// identical structural shape.
func TestRoundTripThroughYAML(t *testing.T) {
	src := "foo: 1\nbar:\n - 2\n -\n  - a\n  - b\n  - 14\njohn: doe\n"
	doc, err := Parse(src)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	rendered := doc.YAML()

	doc2, err := Parse(rendered)
	if err != nil {
		t.Fatalf("re-parse of own output failed: %v\n%s", err, rendered)
	}
	if doc.Debug(false) != doc2.Debug(false) {
		t.Fatalf("shape diverged after round trip:\n got  %s\n want %s", doc2.Debug(false), doc.Debug(false))
	}
}

// Invariant 2: the debug form never contains an unescaped control
// character inside a double-quoted scalar.
func TestDebugFormEscapesControlCharacters(t *testing.T) {
	doc, err := Parse("msg: \"line one\\nline two\"\n")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	got := doc.Debug(false)
	if strings.Contains(got, "\n") {
		t.Fatalf("debug form contains a raw newline: %q", got)
	}
	if !strings.Contains(got, `\n`) {
		t.Fatalf("expected escaped \\n in debug form, got %q", got)
	}
}

// Invariant 3: set/hasKey/remove on a Map behave as documented.
func TestMapSetHasKeyRemove(t *testing.T) {
	doc := NewDocument()
	root := doc.Root()
	if err := root.SetMap(); err != nil {
		t.Fatal(err)
	}
	v := root.Get("name")
	if err := v.SetString("alice"); err != nil {
		t.Fatal(err)
	}
	if !root.HasKey("name") {
		t.Fatal("expected hasKey(name) to be true")
	}
	got, err := root.Get("name").AsString()
	if err != nil || got != "alice" {
		t.Fatalf("got %q err %v", got, err)
	}
	if err := root.Remove("name"); err != nil {
		t.Fatal(err)
	}
	if root.HasKey("name") {
		t.Fatal("expected hasKey(name) to be false after remove")
	}
}

// Invariant 4: Sequence removal preserves the order of surviving
// elements (unlike Map removal, which swaps in the last child).
func TestSequenceRemoveAtPreservesOrder(t *testing.T) {
	doc := NewDocument()
	root := doc.Root()
	for _, v := range []string{"a", "b", "c", "d"} {
		if err := root.PushBack(v); err != nil {
			t.Fatal(err)
		}
	}
	if err := root.RemoveAt(1); err != nil {
		t.Fatal(err)
	}
	if root.Len() != 3 {
		t.Fatalf("len = %d, want 3", root.Len())
	}
	want := []string{"a", "c", "d"}
	for i, w := range want {
		got, err := root.At(i)
		if err != nil {
			t.Fatal(err)
		}
		s, err := got.AsString()
		if err != nil || s != w {
			t.Fatalf("At(%d) = %q, want %q", i, s, w)
		}
	}
}

// Access error: reading an absent key yields an AccessError, not a
// panic or a zero value silently treated as success.
func TestAbsentKeyIsAccessError(t *testing.T) {
	doc := NewDocument()
	root := doc.Root()
	if err := root.SetMap(); err != nil {
		t.Fatal(err)
	}
	missing := root.Get("nope")
	if !missing.IsAbsent() {
		t.Fatal("expected absent node")
	}
	if _, err := missing.AsString(); err == nil {
		t.Fatal("expected AccessError reading an absent key")
	}
	if got := missing.AsStringOr("fallback"); got != "fallback" {
		t.Fatalf("got %q, want fallback", got)
	}
}

// Assigning through a Node from a fresh Get of an already-materialized
// key overwrites the value in place instead of inserting a duplicate.
func TestAssignToExistingKeyOverwritesInPlace(t *testing.T) {
	doc := NewDocument()
	root := doc.Root()
	if err := root.SetMap(); err != nil {
		t.Fatal(err)
	}
	first := root.Get("k")
	if err := first.SetString("v1"); err != nil {
		t.Fatal(err)
	}
	// Get now resolves to the materialized key directly; SetString through
	// it is an ordinary overwrite in place, not a duplicate insert.
	again := root.Get("k")
	if again.IsAbsent() {
		t.Fatal("expected k to resolve to the materialized node")
	}
	if err := again.SetString("v2"); err != nil {
		t.Fatal(err)
	}
	got, _ := root.Get("k").AsString()
	if got != "v2" {
		t.Fatalf("got %q, want v2", got)
	}
}

func TestTypedAccessors(t *testing.T) {
	doc, err := Parse("n: 42\nf: 3.5\nb: true\n")
	if err != nil {
		t.Fatal(err)
	}
	if v, err := doc.Root().Get("n").AsInt(); err != nil || v != 42 {
		t.Fatalf("AsInt: %v %v", v, err)
	}
	if v, err := doc.Root().Get("f").AsFloat(); err != nil || v != 3.5 {
		t.Fatalf("AsFloat: %v %v", v, err)
	}
	if v, err := doc.Root().Get("b").AsBool(); err != nil || v != true {
		t.Fatalf("AsBool: %v %v", v, err)
	}
	if v := doc.Root().Get("n").AsIntOr(-1); v != 42 {
		t.Fatalf("AsIntOr: %v", v)
	}
	if v := doc.Root().Get("missing").AsIntOr(-1); v != -1 {
		t.Fatalf("AsIntOr default: %v", v)
	}
}

// point is a user-defined type decoded through the convert.Decoder
// extension hook rather than one of the built-in accessors.
type point struct{ x, y int }

func (p *point) DecodeSTYML(s string) error {
	_, err := fmt.Sscanf(s, "%d,%d", &p.x, &p.y)
	return err
}

func TestDecodeUserDefinedType(t *testing.T) {
	doc, err := Parse("at: 3,4\n")
	if err != nil {
		t.Fatal(err)
	}
	var p point
	if err := doc.Root().Get("at").Decode(&p); err != nil {
		t.Fatal(err)
	}
	if p.x != 3 || p.y != 4 {
		t.Fatalf("got %+v, want {3 4}", p)
	}
}

func TestDecodeUserDefinedTypeWrapsFailure(t *testing.T) {
	doc, err := Parse("at: not-a-point\n")
	if err != nil {
		t.Fatal(err)
	}
	var p point
	err = doc.Root().Get("at").Decode(&p)
	if err == nil {
		t.Fatal("expected an error")
	}
	ae, ok := err.(*AccessError)
	if !ok || ae.Kind != BadConversion {
		t.Fatalf("got %T (%v), want *AccessError{Kind: BadConversion}", err, err)
	}
}

func TestParseErrorCarriesLineAndSnippet(t *testing.T) {
	_, err := Parse("a: b\nc: d\na: f\n")
	pe, ok := err.(*ParseError)
	if !ok {
		t.Fatalf("expected *ParseError, got %T", err)
	}
	if pe.Line != 3 {
		t.Fatalf("line = %d, want 3", pe.Line)
	}
	if pe.Snippet == "" {
		t.Fatal("expected a non-empty snippet")
	}
}

func TestCommentsAreSkippedInDebugForm(t *testing.T) {
	src := "# a leading comment\nfoo: 1 # trailing\nbar: 2\n"
	doc, err := Parse(src)
	if err != nil {
		t.Fatal(err)
	}
	got := doc.Debug(false)
	if strings.Contains(got, "comment") {
		t.Fatalf("debug form should never carry comments: %q", got)
	}
	want := `{'foo' : "1",'bar' : "2"}`
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}
