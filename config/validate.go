package config

import (
	"fmt"
	"reflect"
	"regexp"
	"sort"
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/go-playground/validator/v10"

	"github.com/teranos/contractgen/errors"
)

var (
	dartPackagePattern = regexp.MustCompile(`^[a-z][a-z0-9_]*$`)
	identifierPattern  = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Report fields by their config key rather than the Go field name
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("mapstructure"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	_ = v.RegisterValidation("dart_package", func(fl validator.FieldLevel) bool {
		return dartPackagePattern.MatchString(fl.Field().String())
	})
	_ = v.RegisterValidation("identifier", func(fl validator.FieldLevel) bool {
		return identifierPattern.MatchString(fl.Field().String())
	})
	return v
}

// Validate checks that the configuration is usable. All problems are
// reported together in one error marked with errors.ErrInvalidConfig.
func (c *Config) Validate() error {
	var problems []string

	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return errors.Wrap(err, "failed to validate config")
		}
		for _, fe := range verrs {
			problems = append(problems, fieldProblem(fe))
		}
	}

	problems = append(problems, c.Dart.constraintProblems()...)

	if len(problems) > 0 {
		return errors.InvalidConfigf("%s", strings.Join(problems, "; "))
	}
	return nil
}

func fieldProblem(fe validator.FieldError) string {
	key := strings.TrimPrefix(fe.Namespace(), "Config.")
	switch fe.Tag() {
	case "required":
		return key + " is required"
	case "min":
		return fmt.Sprintf("%s must have at least %s entries", key, fe.Param())
	case "gt":
		return fmt.Sprintf("%s must be greater than %s, got %v", key, fe.Param(), fe.Value())
	case "email":
		return fmt.Sprintf("%s is not a valid email address: %q", key, fe.Value())
	case "url":
		return fmt.Sprintf("%s is not a valid URL: %q", key, fe.Value())
	case "semver":
		return fmt.Sprintf("%s is not a semantic version: %q", key, fe.Value())
	case "dart_package":
		return fmt.Sprintf("%s must be lowercase with underscores: %q", key, fe.Value())
	case "identifier":
		return fmt.Sprintf("%s must be a valid class name: %q", key, fe.Value())
	default:
		return fmt.Sprintf("%s failed %q", key, fe.Tag())
	}
}

// constraintProblems checks the SDK and dependency version constraints.
func (d DartConfig) constraintProblems() []string {
	var problems []string
	check := func(key, constraint string) {
		if constraint == "" || constraint == "any" {
			return
		}
		if _, err := semver.NewConstraint(constraint); err != nil {
			problems = append(problems, fmt.Sprintf("%s has an invalid version constraint %q: %v", key, constraint, err))
		}
	}

	check("dart.sdk_constraint", d.SDKConstraint)
	check("dart.flutter_constraint", d.FlutterConstraint)
	for _, name := range sortedKeys(d.Dependencies) {
		check("dart.dependencies."+name, d.Dependencies[name])
	}
	for _, name := range sortedKeys(d.DevDependencies) {
		check("dart.dev_dependencies."+name, d.DevDependencies[name])
	}
	return problems
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
