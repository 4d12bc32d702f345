package config

import (
	"github.com/spf13/viper"
)

// SetDefaults configures default values for all configuration options
func SetDefaults(v *viper.Viper) {
	v.SetDefault("contracts.files", []string{"api/main.api"})
	v.SetDefault("parser.strict", false)

	// TypeScript: types and client live in separate trees
	v.SetDefault("typescript.types_dir", "frontend/src/types/generated")
	v.SetDefault("typescript.client_dir", "frontend/src/lib/api/generated")
	v.SetDefault("typescript.client_import", "../client")
	v.SetDefault("typescript.types_import", "../../../types/generated/types")
	v.SetDefault("typescript.query_package", "@tanstack/react-query")

	// Dart / Flutter
	v.SetDefault("dart.output_dir", "mobile/lib")
	v.SetDefault("dart.pubspec_path", "")
	v.SetDefault("dart.package_name", "api_client")
	v.SetDefault("dart.description", "Generated API client")
	v.SetDefault("dart.version", "1.0.0")
	v.SetDefault("dart.client_class", "ApiClient")
	v.SetDefault("dart.sdk_constraint", ">=3.0.0 <4.0.0")
	v.SetDefault("dart.flutter_constraint", ">=3.10.0")
	v.SetDefault("dart.timeout_seconds", 30)
	v.SetDefault("dart.dependencies", map[string]string{
		"http":            "^1.1.0",
		"json_annotation": "^4.8.1",
	})
	v.SetDefault("dart.dev_dependencies", map[string]string{
		"json_serializable": "^6.7.1",
		"build_runner":      "^2.4.7",
		"flutter_lints":     "^3.0.1",
	})

	// OpenAPI
	v.SetDefault("openapi.output_file", "docs/openapi/swagger.json")
	v.SetDefault("openapi.title", "API")
	v.SetDefault("openapi.description", "Generated from the service contracts")
	v.SetDefault("openapi.version", "1.0.0")
	v.SetDefault("openapi.contact_name", "")
	v.SetDefault("openapi.contact_email", "")
	v.SetDefault("openapi.license_name", "MIT")
	v.SetDefault("openapi.license_url", "https://opensource.org/licenses/MIT")
	v.SetDefault("openapi.swagger_ui_dir", "")
	v.SetDefault("openapi.servers", []map[string]interface{}{
		{"url": "http://localhost:8888", "description": "Development server"},
	})

	v.SetDefault("markdown.output_dir", "docs/api")
}
