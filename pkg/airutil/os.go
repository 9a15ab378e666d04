package airutil

import (
	"fmt"

	"github.com/drone/envsubst"
)

// ExpandEnv substitutes ${VAR} references with values from the
// environment.
func ExpandEnv(s string) (string, error) {
	val, err := envsubst.EvalEnv(s)
	if err != nil {
		return "", fmt.Errorf("expanding %q: %w", s, err)
	}
	return val, nil
}

// ExpandEnvAll expands each of the given values in place. Values are
// left untouched if any of them fails to expand.
func ExpandEnvAll(values ...*string) error {
	out := make([]string, len(values))
	for i, v := range values {
		val, err := ExpandEnv(*v)
		if err != nil {
			return err
		}
		out[i] = val
	}
	for i, v := range values {
		*v = out[i]
	}
	return nil
}
