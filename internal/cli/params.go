package cli

import (
	"fmt"
	"os"
	"strings"

	"sigs.k8s.io/yaml"
)

// ParseParameterArgs parses repeated --parameter Key=Value flags into a
// map. Values may contain '='; only the first one splits.
func ParseParameterArgs(args []string) (map[string]string, error) {
	if len(args) == 0 {
		return nil, nil
	}

	params := make(map[string]string, len(args))
	for _, arg := range args {
		key, value, found := strings.Cut(arg, "=")
		if !found || key == "" {
			return nil, fmt.Errorf("invalid parameter %q, expected Key=Value", arg)
		}
		params[key] = value
	}
	return params, nil
}

// LoadParameterFile reads template parameters from a JSON or YAML file
// holding a flat string mapping. Flag-supplied parameters override
// file-supplied ones; the merge happens in the caller.
func LoadParameterFile(path string) (map[string]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading parameter file: %w", err)
	}

	var params map[string]string
	if err := yaml.Unmarshal(data, &params); err != nil {
		return nil, fmt.Errorf("parsing parameter file %s: %w", path, err)
	}
	return params, nil
}

// MergeParameters merges override parameters on top of base.
func MergeParameters(base, overrides map[string]string) map[string]string {
	if len(base) == 0 {
		return overrides
	}
	merged := make(map[string]string, len(base)+len(overrides))
	for k, v := range base {
		merged[k] = v
	}
	for k, v := range overrides {
		merged[k] = v
	}
	return merged
}
