// Package stymltest is a golden-file harness for round-tripping styml
// fixtures: a "<name>.styml" input is parsed and its debug-form output
// compared against a "<name>.txt" golden file, mirroring the upstream
// testsuite's .yaml/.txt/.error convention.
package stymltest

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dfeneyrou/styml-go"
)

// Case is one golden-file fixture: Input is the styml source, Want is
// the expected compact debug-form output, and WantErr, if non-empty, is
// a substring the parse error must contain instead.
type Case struct {
	Name    string
	Input   string
	Want    string
	WantErr string
}

// Run parses c.Input and asserts it matches either the expected debug
// form or the expected error substring.
func Run(t *testing.T, c Case) {
	t.Helper()
	doc, err := styml.Parse(c.Input)
	if c.WantErr != "" {
		require.Error(t, err)
		require.Contains(t, err.Error(), c.WantErr)
		return
	}
	require.NoError(t, err)
	require.Equal(t, c.Want, doc.Debug(false))
}

// LoadDir walks dir for "*.styml" fixtures and returns one Case per
// fixture, pairing each with its sibling ".txt" (expected debug form)
// or ".error" (expected error substring) file.
func LoadDir(t *testing.T, dir string) []Case {
	t.Helper()
	matches, err := filepath.Glob(filepath.Join(dir, "*.styml"))
	require.NoError(t, err)

	cases := make([]Case, 0, len(matches))
	for _, m := range matches {
		base := m[:len(m)-len(".styml")]
		name := filepath.Base(base)

		input, err := os.ReadFile(m)
		require.NoError(t, err)

		c := Case{Name: name, Input: string(input)}
		if errText, ferr := os.ReadFile(base + ".error"); ferr == nil {
			c.WantErr = strings.TrimSpace(string(errText))
		} else if want, ferr := os.ReadFile(base + ".txt"); ferr == nil {
			c.Want = strings.TrimSpace(string(want))
		}
		cases = append(cases, c)
	}
	return cases
}
