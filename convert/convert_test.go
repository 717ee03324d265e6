package convert

import "testing"

func TestIntRoundTrip(t *testing.T) {
	s := FromInt(42)
	v, err := ToInt(s)
	if err != nil || v != 42 {
		t.Fatalf("got %v, %v", v, err)
	}
}

func TestFloatRoundTrip(t *testing.T) {
	s := FromFloat(3.5)
	v, err := ToFloat(s)
	if err != nil || v != 3.5 {
		t.Fatalf("got %v, %v", v, err)
	}
}

func TestBoolAcceptsYAMLAliases(t *testing.T) {
	for _, s := range []string{"true", "yes", "on", "True"} {
		v, err := ToBool(s)
		if err != nil || !v {
			t.Fatalf("%q: got %v, %v", s, v, err)
		}
	}
	for _, s := range []string{"false", "no", "off", "False"} {
		v, err := ToBool(s)
		if err != nil || v {
			t.Fatalf("%q: got %v, %v", s, v, err)
		}
	}
}

func TestToIntRejectsNonNumeric(t *testing.T) {
	_, err := ToInt("not-a-number")
	if err == nil {
		t.Fatal("expected an error")
	}
	ce, ok := err.(*Error)
	if !ok {
		t.Fatalf("got %T, want *Error", err)
	}
	if ce.Target != "int" {
		t.Fatalf("target = %q, want int", ce.Target)
	}
}
