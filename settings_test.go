package crumb

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSettings_Validate(t *testing.T) {
	tests := []struct {
		name     string
		settings Settings
		wantErr  bool
	}{
		{"defaults", DefaultSettings(), false},
		{"empty", Settings{}, false},
		{"all set", Settings{Format: FormatVerbose, Tuples: TupleLegacyObject, Naming: NamingCamelCase}, false},
		{"unknown format", Settings{Format: "binary"}, true},
		{"unknown tuples", Settings{Tuples: "struct"}, true},
		{"unknown naming", Settings{Naming: "snake"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.settings.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrInvalidSettings) {
				t.Errorf("Validate() error should wrap ErrInvalidSettings, got %v", err)
			}
		})
	}
}

func TestNewCodec(t *testing.T) {
	c, err := NewCodec(Settings{Format: FormatCompact, Naming: NamingCamelCase})
	require.NoError(t, err)
	data, err := c.Marshal(Circle{Radius: 1})
	require.NoError(t, err)
	require.Equal(t, `{"circle":1}`, string(data))

	c, err = NewCodec(Settings{Format: FormatVerbose})
	require.NoError(t, err)
	require.Equal(t, FormatVerbose, c.(*Serializer).Format())

	c, err = NewCodec(Settings{Format: FormatBackwardCompatible, Tuples: TupleLegacyObject})
	require.NoError(t, err)
	data, err = c.Marshal(Pair(1, 2))
	require.NoError(t, err)
	require.Equal(t, `{"Item1":1,"Item2":2}`, string(data))

	_, err = NewCodec(Settings{Naming: "kebab"})
	require.ErrorIs(t, err, ErrInvalidSettings)
}

func TestLoadSettings(t *testing.T) {
	dir := t.TempDir()

	files := map[string]string{
		"codec.yaml":  "format: backward-compatible\ntuples: legacy-object\nnaming: camel\n",
		"codec.yml":   "format: backward-compatible\ntuples: legacy-object\nnaming: camel\n",
		"codec.json":  `{"format":"backward-compatible","tuples":"legacy-object","naming":"camel"}`,
		"codec.jsonc": "{\n  // written by the deploy tool\n  \"format\": \"backward-compatible\",\n  \"tuples\": \"legacy-object\",\n  \"naming\": \"camel\",\n}\n",
	}
	want := Settings{Format: FormatBackwardCompatible, Tuples: TupleLegacyObject, Naming: NamingCamelCase}

	for name, content := range files {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(dir, name)
			require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

			got, err := LoadSettings(path)
			require.NoError(t, err)
			require.Equal(t, want, got)
		})
	}
}

func TestLoadSettings_Defaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "codec.yaml")
	require.NoError(t, os.WriteFile(path, []byte("naming: camel\n"), 0o600))

	got, err := LoadSettings(path)
	require.NoError(t, err)
	require.Equal(t, Settings{Format: FormatCompact, Tuples: TupleArray, Naming: NamingCamelCase}, got)
}

func TestLoadSettings_Errors(t *testing.T) {
	dir := t.TempDir()

	t.Run("missing file", func(t *testing.T) {
		_, err := LoadSettings(filepath.Join(dir, "absent.yaml"))
		require.ErrorIs(t, err, os.ErrNotExist)
	})

	t.Run("unsupported extension", func(t *testing.T) {
		path := filepath.Join(dir, "codec.toml")
		require.NoError(t, os.WriteFile(path, []byte("format = 'compact'"), 0o600))
		_, err := LoadSettings(path)
		require.ErrorIs(t, err, ErrInvalidSettings)
	})

	t.Run("unknown value", func(t *testing.T) {
		path := filepath.Join(dir, "bad.yaml")
		require.NoError(t, os.WriteFile(path, []byte("format: binary\n"), 0o600))
		_, err := LoadSettings(path)
		require.ErrorIs(t, err, ErrInvalidSettings)
	})

	t.Run("malformed json", func(t *testing.T) {
		path := filepath.Join(dir, "bad.json")
		require.NoError(t, os.WriteFile(path, []byte(`{"format":`), 0o600))
		_, err := LoadSettings(path)
		require.ErrorIs(t, err, ErrInvalidSettings)
	})

	t.Run("malformed yaml", func(t *testing.T) {
		path := filepath.Join(dir, "bad2.yaml")
		require.NoError(t, os.WriteFile(path, []byte("format: [compact\n"), 0o600))
		_, err := LoadSettings(path)
		require.ErrorIs(t, err, ErrInvalidSettings)
	})
}
