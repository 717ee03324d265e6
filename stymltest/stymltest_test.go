package stymltest

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRunAcceptsMatchingDebugForm(t *testing.T) {
	Run(t, Case{
		Name:  "simple map",
		Input: "foo: 1\n",
		Want:  `{'foo' : "1"}`,
	})
}

func TestRunAcceptsMatchingError(t *testing.T) {
	Run(t, Case{
		Name:    "duplicate key",
		Input:   "a: b\na: c\n",
		WantErr: "duplicated key",
	})
}

func TestLoadDirPairsFixturesWithGoldenFiles(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "ok.styml"), []byte("a: 1\n"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "ok.txt"), []byte(`{'a' : "1"}`), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "bad.styml"), []byte("a: 1\na: 2\n"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "bad.error"), []byte("duplicated key"), 0644))

	cases := LoadDir(t, dir)
	require.Len(t, cases, 2)

	byName := map[string]Case{}
	for _, c := range cases {
		byName[c.Name] = c
	}

	require.Equal(t, `{'a' : "1"}`, byName["ok"].Want)
	require.Equal(t, "duplicated key", byName["bad"].WantErr)

	for _, c := range cases {
		Run(t, c)
	}
}
