package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wallaceicy06/fwfcsv"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

const idNameSpec = `{
    "ColumnNames": ["id", "name"],
    "Offsets": [3, 5],
    "FixedWidthEncoding": "utf-8",
    "IncludeHeader": true,
    "DelimitedEncoding": "utf-8"
}`

func TestSpecRandomCommand(t *testing.T) {
	t.Run("Writes a loadable JSON spec", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "input", "random_spec.json")
		_, err := run(t, "spec", "random", "--columns", "4", "--seed", "7", "-o", path)
		require.NoError(t, err)

		spec, err := fwfcsv.LoadFixedWidthSpec(path)
		require.NoError(t, err)
		assert.Equal(t, []string{"f1", "f2", "f3", "f4"}, spec.ColumnNames())
	})

	t.Run("Picks YAML from the extension", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "random_spec.yaml")
		_, err := run(t, "spec", "random", "--columns", "2", "-o", path)
		require.NoError(t, err)

		p, err := fwfcsv.LoadPayload(path)
		require.NoError(t, err)
		assert.Len(t, p.Offsets, 2)
	})

	t.Run("Writes to stdout", func(t *testing.T) {
		out, err := run(t, "spec", "random", "--columns", "1", "--format", "yaml")
		require.NoError(t, err)
		assert.Contains(t, out, "ColumnNames:")
	})

	t.Run("Rejects unknown format", func(t *testing.T) {
		_, err := run(t, "spec", "random", "--format", "toml")
		assert.Error(t, err)
	})

	t.Run("Rejects zero columns", func(t *testing.T) {
		_, err := run(t, "spec", "random", "--columns", "0")
		assert.Error(t, err)
	})
}

func TestSpecShowCommand(t *testing.T) {
	path := filepath.Join(t.TempDir(), "spec.json")
	require.NoError(t, os.WriteFile(path, []byte(idNameSpec), 0o644))

	out, err := run(t, "spec", "show", "--spec", path)
	require.NoError(t, err)
	assert.Contains(t, out, "NAME")
	assert.Contains(t, out, "width 8, header true, encoding utf-8")

	lines := strings.Split(out, "\n")
	require.True(t, len(lines) > 2)
	assert.Equal(t, []string{"name", "3", "5", "str"}, strings.Fields(lines[2]))
}

func TestGenerateAndConvertCommands(t *testing.T) {
	dir := t.TempDir()
	specPath := filepath.Join(dir, "spec.json")
	fwfPath := filepath.Join(dir, "out", "data.fwf")
	csvPath := filepath.Join(dir, "out", "data.csv")
	require.NoError(t, os.WriteFile(specPath, []byte(idNameSpec), 0o644))

	_, err := run(t, "generate", "--spec", specPath, "--fwf-file", fwfPath, "-n", "2", "--seed", "1")
	require.NoError(t, err)

	data, err := os.ReadFile(fwfPath)
	require.NoError(t, err)
	fwfLines := strings.Split(strings.TrimSuffix(string(data), "\n"), "\n")
	require.Len(t, fwfLines, 3)
	assert.Equal(t, "id name ", fwfLines[0])

	_, err = run(t, "convert", "--spec", specPath, "--fwf-file", fwfPath, "--csv-file", csvPath, "--strict", "--atomic")
	require.NoError(t, err)

	data, err = os.ReadFile(csvPath)
	require.NoError(t, err)
	csvLines := strings.Split(strings.TrimSuffix(string(data), "\n"), "\n")
	require.Len(t, csvLines, 3)
	assert.Equal(t, "id,name", csvLines[0])
	assert.Equal(t, fwfLines[1][:3]+","+fwfLines[1][3:], csvLines[1])
}

func TestGenerateCommandErrors(t *testing.T) {
	dir := t.TempDir()

	t.Run("Spec and columns together", func(t *testing.T) {
		_, err := run(t, "generate", "--spec", "x.json", "--columns", "id:3", "--fwf-file", filepath.Join(dir, "a.fwf"), "-n", "1")
		assert.Error(t, err)
	})

	t.Run("Neither spec nor columns", func(t *testing.T) {
		_, err := run(t, "generate", "--fwf-file", filepath.Join(dir, "b.fwf"), "-n", "1")
		assert.Error(t, err)
	})

	t.Run("Zero lines creates nothing", func(t *testing.T) {
		path := filepath.Join(dir, "c.fwf")
		_, err := run(t, "generate", "--columns", "id:3", "--fwf-file", path, "-n", "0")
		var ve *fwfcsv.ValueError
		assert.ErrorAs(t, err, &ve)
		assert.NoFileExists(t, path)
	})

	t.Run("Column definitions", func(t *testing.T) {
		path := filepath.Join(dir, "d.fwf")
		_, err := run(t, "generate", "--columns", "id:3,name:5", "--header", "--fwf-file", path, "-n", "1")
		require.NoError(t, err)
		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(string(data), "id name \n"))
	})
}
