// Package template resolves caller-facing template sources into the body
// or remote reference the control plane accepts.
package template

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"stackctl/internal/controlplane"
)

// ErrEmptySource is returned when a template source has no field set.
var ErrEmptySource = errors.New("template source is empty")

// Resolver turns a TemplateSource into a TemplateRef.
//
// Remote URLs are passed through as-is: the control plane fetches them
// itself. Local files and literal text are passed as the template body
// without transformation, since the control plane accepts both JSON and
// YAML bodies. Inline structures are serialized to JSON.
type Resolver struct{}

// NewResolver creates a Resolver.
func NewResolver() *Resolver {
	return &Resolver{}
}

// Resolve resolves src. Exactly one source field must be set; URL wins
// over body-producing fields if a caller sets several.
func (r *Resolver) Resolve(ctx context.Context, src controlplane.TemplateSource) (controlplane.TemplateRef, error) {
	switch {
	case src.URL != "":
		if !strings.HasPrefix(src.URL, "https://") && !strings.HasPrefix(src.URL, "s3://") {
			return controlplane.TemplateRef{}, fmt.Errorf("unsupported template URL scheme in %q", src.URL)
		}
		return controlplane.TemplateRef{URL: src.URL}, nil

	case src.Path != "":
		data, err := os.ReadFile(src.Path)
		if err != nil {
			return controlplane.TemplateRef{}, fmt.Errorf("reading template file: %w", err)
		}
		return controlplane.TemplateRef{Body: string(data)}, nil

	case src.Text != "":
		return controlplane.TemplateRef{Body: src.Text}, nil

	case src.Inline != nil:
		body, err := json.Marshal(src.Inline)
		if err != nil {
			return controlplane.TemplateRef{}, fmt.Errorf("serializing inline template: %w", err)
		}
		return controlplane.TemplateRef{Body: string(body)}, nil

	default:
		return controlplane.TemplateRef{}, ErrEmptySource
	}
}

// SourceFromArg builds a TemplateSource from a single CLI argument,
// distinguishing remote URLs from local file paths. The core never
// inspects argument shapes itself; this is the CLI-side constructor.
func SourceFromArg(arg string) controlplane.TemplateSource {
	if strings.HasPrefix(arg, "https://") || strings.HasPrefix(arg, "s3://") {
		return controlplane.TemplateSource{URL: arg}
	}
	return controlplane.TemplateSource{Path: arg}
}
