package dart

import (
	"bytes"

	"github.com/Masterminds/semver/v3"
	"gopkg.in/yaml.v3"

	"github.com/teranos/contractgen/config"
	"github.com/teranos/contractgen/errors"
	"github.com/teranos/contractgen/typegen"
)

// pubspec mirrors the pubspec.yaml layout. Field order is the emitted order.
type pubspec struct {
	Name            string                 `yaml:"name"`
	Description     string                 `yaml:"description"`
	Version         string                 `yaml:"version"`
	PublishTo       string                 `yaml:"publish_to"`
	Environment     map[string]string      `yaml:"environment"`
	Dependencies    map[string]interface{} `yaml:"dependencies"`
	DevDependencies map[string]interface{} `yaml:"dev_dependencies"`
	Flutter         flutterSection         `yaml:"flutter"`
}

type flutterSection struct {
	UsesMaterialDesign bool `yaml:"uses-material-design"`
}

var flutterSDK = map[string]string{"sdk": "flutter"}

// GeneratePubspec renders the package manifest from config.
func GeneratePubspec(cfg config.DartConfig, timestamp string) ([]byte, error) {
	version, err := semver.NewVersion(cfg.Version)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid dart.version %q", cfg.Version)
	}

	manifest := pubspec{
		Name:        cfg.PackageName,
		Description: cfg.Description,
		Version:     version.String(),
		PublishTo:   "none",
		Environment: map[string]string{
			"sdk": cfg.SDKConstraint,
		},
		Dependencies:    map[string]interface{}{"flutter": flutterSDK},
		DevDependencies: map[string]interface{}{"flutter_test": flutterSDK},
		Flutter:         flutterSection{UsesMaterialDesign: true},
	}
	if cfg.FlutterConstraint != "" {
		manifest.Environment["flutter"] = cfg.FlutterConstraint
	}
	for name, constraint := range cfg.Dependencies {
		manifest.Dependencies[name] = constraint
	}
	for name, constraint := range cfg.DevDependencies {
		manifest.DevDependencies[name] = constraint
	}

	var buf bytes.Buffer
	buf.WriteString(typegen.Header("#", timestamp))
	buf.WriteString("\n")

	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(manifest); err != nil {
		return nil, errors.Wrap(err, "failed to encode pubspec.yaml")
	}
	if err := enc.Close(); err != nil {
		return nil, errors.Wrap(err, "failed to encode pubspec.yaml")
	}
	return buf.Bytes(), nil
}
