package template

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stackctl/internal/controlplane"
)

func TestResolveURLPassesThrough(t *testing.T) {
	r := NewResolver()

	ref, err := r.Resolve(context.Background(), controlplane.TemplateSource{
		URL: "https://bucket.s3.amazonaws.com/template.yaml",
	})
	require.NoError(t, err)
	assert.Equal(t, "https://bucket.s3.amazonaws.com/template.yaml", ref.URL)
	assert.Empty(t, ref.Body)
}

func TestResolveRejectsUnknownURLScheme(t *testing.T) {
	r := NewResolver()

	_, err := r.Resolve(context.Background(), controlplane.TemplateSource{
		URL: "ftp://example.test/template.yaml",
	})
	require.Error(t, err)
}

func TestResolveFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "template.yaml")
	body := "Resources:\n  Bucket:\n    Type: AWS::S3::Bucket\n"
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))

	r := NewResolver()
	ref, err := r.Resolve(context.Background(), controlplane.TemplateSource{Path: path})
	require.NoError(t, err)
	assert.Equal(t, body, ref.Body)
}

func TestResolveMissingFile(t *testing.T) {
	r := NewResolver()

	_, err := r.Resolve(context.Background(), controlplane.TemplateSource{
		Path: filepath.Join(t.TempDir(), "nope.yaml"),
	})
	require.Error(t, err)
}

func TestResolveText(t *testing.T) {
	r := NewResolver()

	ref, err := r.Resolve(context.Background(), controlplane.TemplateSource{Text: `{"Resources":{}}`})
	require.NoError(t, err)
	assert.Equal(t, `{"Resources":{}}`, ref.Body)
}

func TestResolveInline(t *testing.T) {
	r := NewResolver()

	ref, err := r.Resolve(context.Background(), controlplane.TemplateSource{
		Inline: map[string]interface{}{
			"Resources": map[string]interface{}{},
		},
	})
	require.NoError(t, err)
	assert.JSONEq(t, `{"Resources":{}}`, ref.Body)
}

func TestResolveEmptySource(t *testing.T) {
	r := NewResolver()

	_, err := r.Resolve(context.Background(), controlplane.TemplateSource{})
	require.ErrorIs(t, err, ErrEmptySource)
}

func TestSourceFromArg(t *testing.T) {
	assert.Equal(t, "https://example.test/t.yaml", SourceFromArg("https://example.test/t.yaml").URL)
	assert.Equal(t, "s3://bucket/t.yaml", SourceFromArg("s3://bucket/t.yaml").URL)
	assert.Equal(t, "./stack.yaml", SourceFromArg("./stack.yaml").Path)
}
