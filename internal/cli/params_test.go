package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseParameterArgs(t *testing.T) {
	params, err := ParseParameterArgs([]string{"Env=prod", "ConnString=host=db;port=5432"})
	require.NoError(t, err)
	assert.Equal(t, map[string]string{
		"Env":        "prod",
		"ConnString": "host=db;port=5432",
	}, params)
}

func TestParseParameterArgsEmpty(t *testing.T) {
	params, err := ParseParameterArgs(nil)
	require.NoError(t, err)
	assert.Nil(t, params)
}

func TestParseParameterArgsInvalid(t *testing.T) {
	for _, arg := range []string{"NoEquals", "=value"} {
		_, err := ParseParameterArgs([]string{arg})
		assert.Error(t, err, "arg %q should be rejected", arg)
	}
}

func TestLoadParameterFileYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "params.yaml")
	require.NoError(t, os.WriteFile(path, []byte("Env: prod\nRegion: us-east-1\n"), 0o644))

	params, err := LoadParameterFile(path)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"Env": "prod", "Region": "us-east-1"}, params)
}

func TestLoadParameterFileJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "params.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"Env": "prod"}`), 0o644))

	params, err := LoadParameterFile(path)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"Env": "prod"}, params)
}

func TestMergeParameters(t *testing.T) {
	base := map[string]string{"Env": "dev", "Region": "us-east-1"}
	overrides := map[string]string{"Env": "prod"}

	merged := MergeParameters(base, overrides)
	assert.Equal(t, map[string]string{"Env": "prod", "Region": "us-east-1"}, merged)

	assert.Equal(t, overrides, MergeParameters(nil, overrides))
}

func TestValidateOutputFormat(t *testing.T) {
	for _, format := range []string{"table", "json", "yaml"} {
		assert.NoError(t, ValidateOutputFormat(format))
	}
	assert.Error(t, ValidateOutputFormat("xml"))
}
