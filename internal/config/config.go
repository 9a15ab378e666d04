package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/djcass44/debcat/pkg/airutil"
	v1 "github.com/djcass44/debcat/pkg/api/v1"
	"github.com/spf13/viper"
	"k8s.io/apimachinery/pkg/util/yaml"
)

const EnvPrefix = "DEBCAT"

const (
	KeyScheme    = "scheme"
	KeyHost      = "host"
	KeyRoot      = "root"
	KeyDist      = "dist"
	KeyComponent = "component"
)

// Defaults are the values used when neither a config file, the
// environment nor a flag provides one.
func Defaults() v1.MirrorSpec {
	return v1.MirrorSpec{
		Scheme:    "https",
		Host:      "mirrors.xmission.com",
		Root:      "debian",
		Dist:      "testing",
		Component: "main",
	}
}

// NewViper returns a viper instance that reads DEBCAT_* environment
// variables.
func NewViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	return v
}

// Load resolves the mirror configuration. Defaults are overridden by
// the config file at path (if any), which in turn is overridden by
// anything set in v through the environment or flags.
func Load(path string, v *viper.Viper) (v1.MirrorSpec, error) {
	spec := Defaults()

	if path != "" {
		m, err := ReadFile(path)
		if err != nil {
			return v1.MirrorSpec{}, err
		}
		merge(&spec, m.Spec)
	}

	if v != nil {
		for key, target := range fields(&spec) {
			if v.IsSet(key) {
				*target = v.GetString(key)
			}
		}
	}
	if err := airutil.ExpandEnvAll(&spec.Scheme, &spec.Host, &spec.Root, &spec.Dist, &spec.Component); err != nil {
		return v1.MirrorSpec{}, fmt.Errorf("expanding mirror configuration: %w", err)
	}

	if err := validate(spec); err != nil {
		return v1.MirrorSpec{}, err
	}
	return spec, nil
}

// ReadFile decodes a Mirror from a YAML or JSON file.
func ReadFile(path string) (*v1.Mirror, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var m v1.Mirror
	if err := yaml.NewYAMLOrJSONDecoder(f, 4).Decode(&m); err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}
	if m.Kind != "" && m.Kind != v1.KindMirror {
		return nil, fmt.Errorf("unexpected kind in %s: %s", path, m.Kind)
	}
	return &m, nil
}

func fields(spec *v1.MirrorSpec) map[string]*string {
	return map[string]*string{
		KeyScheme:    &spec.Scheme,
		KeyHost:      &spec.Host,
		KeyRoot:      &spec.Root,
		KeyDist:      &spec.Dist,
		KeyComponent: &spec.Component,
	}
}

func merge(dst *v1.MirrorSpec, src v1.MirrorSpec) {
	from := fields(&src)
	for key, target := range fields(dst) {
		if v := *from[key]; v != "" {
			*target = v
		}
	}
}

func validate(spec v1.MirrorSpec) error {
	switch spec.Scheme {
	case "http", "https":
	default:
		return fmt.Errorf("unsupported scheme: %q", spec.Scheme)
	}
	if spec.Host == "" {
		return fmt.Errorf("mirror host must be set")
	}
	if spec.Dist == "" || spec.Component == "" {
		return fmt.Errorf("dist and component must be set")
	}
	return nil
}
