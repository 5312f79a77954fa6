package corpus

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRead(t *testing.T) {
	c, err := Read(strings.NewReader(`[
		{"A": "the dog  the", "B": "le chien"},
		{"A": "a cat", "B": "un chat", "note": "ignored"}
	]`), Options{})
	require.NoError(t, err)

	assert.Equal(t, "A", c.TargetKey)
	assert.Equal(t, "B", c.SourceKey)
	require.Len(t, c.Pairs, 2)
	assert.Equal(t, []string{"the", "dog", "the"}, c.Pairs[0].Target)
	assert.Equal(t, []string{"le", "chien"}, c.Pairs[0].Source)
	assert.Equal(t, []string{"a", "cat"}, c.Pairs[1].Target)
}

func TestReadCustomKeys(t *testing.T) {
	c, err := Read(strings.NewReader(`[{"en": "house", "bn": "বাড়ি"}]`),
		Options{TargetKey: "en", SourceKey: "bn"})
	require.NoError(t, err)

	assert.Equal(t, []string{"house"}, c.Pairs[0].Target)
	assert.Equal(t, []string{"বাড়ি"}, c.Pairs[0].Source)
}

func TestReadNormalize(t *testing.T) {
	// "e" followed by a combining acute accent
	decomposed := "cafe\u0301"
	in := `[{"A": "` + decomposed + `", "B": "x"}]`

	raw, err := Read(strings.NewReader(in), Options{})
	require.NoError(t, err)
	assert.Equal(t, decomposed, raw.Pairs[0].Target[0])

	nfc, err := Read(strings.NewReader(in), Options{Normalize: true})
	require.NoError(t, err)
	assert.Equal(t, "caf\u00e9", nfc.Pairs[0].Target[0])
}

func TestReadFormatErrors(t *testing.T) {
	cases := []struct {
		name  string
		input string
		index int
		lang  string
	}{
		{"not an array", `{"A": "a", "B": "b"}`, -1, ""},
		{"trailing garbage", `[{"A": "a", "B": "b"}] garbage`, -1, ""},
		{"second value", `[{"A": "a", "B": "b"}] []`, -1, ""},
		{"not an object", `[{"A": "a", "B": "b"}, "oops"]`, 1, ""},
		{"missing target", `[{"B": "b"}]`, 0, "A"},
		{"missing source", `[{"A": "a"}]`, 0, "B"},
		{"non-string", `[{"A": "a", "B": 3}]`, 0, "B"},
		{"null sentence", `[{"A": null, "B": "b"}]`, 0, "A"},
		{"empty target", `[{"A": "a", "B": "b"}, {"A": "", "B": "b"}]`, 1, "A"},
		{"blank source", `[{"A": "a", "B": "  \t "}]`, 0, "B"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Read(strings.NewReader(tc.input), Options{})
			require.Error(t, err)

			var fe *FormatError
			require.True(t, errors.As(err, &fe), "unexpected error %v", err)
			assert.Equal(t, tc.index, fe.Index)
			assert.Equal(t, tc.lang, fe.Lang)
		})
	}
}

func TestLoad(t *testing.T) {
	fn := filepath.Join(t.TempDir(), "train.json")
	require.NoError(t, os.WriteFile(fn, []byte(`[{"A": "a b", "B": "x y"}]`), 0o644))

	c, err := Load(fn, Options{})
	require.NoError(t, err)
	assert.Len(t, c.Pairs, 1)

	_, err = Load(filepath.Join(t.TempDir(), "missing.json"), Options{})
	assert.Error(t, err)
}

func TestLoadWrapsFormatError(t *testing.T) {
	fn := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(fn, []byte(`[{"A": "a"}]`), 0o644))

	_, err := Load(fn, Options{})
	var fe *FormatError
	require.True(t, errors.As(err, &fe))
	assert.Contains(t, err.Error(), fn)
	assert.Contains(t, err.Error(), `language "B"`)
}
