// Package openapi renders a contract as an OpenAPI 3.0.3 document.
package openapi

import (
	"encoding/json"
	"fmt"
	"net/http"
	"path/filepath"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/teranos/contractgen/config"
	"github.com/teranos/contractgen/contract"
	"github.com/teranos/contractgen/errors"
	"github.com/teranos/contractgen/logger"
	"github.com/teranos/contractgen/typegen"
	"github.com/teranos/contractgen/version"
)

// Version is the OpenAPI version written to every document.
const Version = "3.0.3"

// BearerScheme names the security scheme attached to authenticated operations.
const BearerScheme = "bearerAuth"

// Generator emits a single OpenAPI JSON document.
type Generator struct {
	cfg          config.OpenAPIConfig
	outputFile   string
	swaggerUIDir string
}

// NewGenerator creates an OpenAPI generator.
func NewGenerator(cfg *config.Config) *Generator {
	g := &Generator{
		cfg:        cfg.OpenAPI,
		outputFile: cfg.Resolve(cfg.OpenAPI.OutputFile),
	}
	if cfg.OpenAPI.SwaggerUIDir != "" {
		g.swaggerUIDir = cfg.Resolve(cfg.OpenAPI.SwaggerUIDir)
	}
	return g
}

// Language returns the target name.
func (g *Generator) Language() string {
	return "openapi"
}

// Generate builds the document and encodes it as indented JSON.
func (g *Generator) Generate(doc *contract.Document, opts typegen.Options) ([]typegen.Artifact, error) {
	oas := Build(doc, g.cfg, opts.Timestamp)

	data, err := json.MarshalIndent(oas, "", "  ")
	if err != nil {
		return nil, errors.Wrap(err, "failed to encode OpenAPI document")
	}
	data = append(data, '\n')

	artifacts := []typegen.Artifact{{
		Path:    g.outputFile,
		Content: data,
		Target:  g.Language(),
		Summary: fmt.Sprintf("%d paths, %d schemas", oas.Paths.Len(), len(oas.Components.Schemas)),
	}}

	if g.swaggerUIDir != "" {
		ui, ok, err := SwaggerUI(g.swaggerUIDir, g.outputFile)
		if err != nil {
			return nil, err
		}
		if ok {
			artifacts = append(artifacts, ui)
		} else {
			logger.Warnw("Swagger UI not found, skipping",
				logger.FieldPath, filepath.Join(g.swaggerUIDir, SwaggerUIIndex))
		}
	}
	return artifacts, nil
}

// Build assembles the OpenAPI document for doc.
func Build(doc *contract.Document, cfg config.OpenAPIConfig, timestamp string) *openapi3.T {
	oas := &openapi3.T{
		OpenAPI: Version,
		Info:    buildInfo(cfg, timestamp),
		Servers: buildServers(cfg.Servers),
		Paths:   openapi3.NewPaths(),
		Components: &openapi3.Components{
			Schemas: openapi3.Schemas{},
			SecuritySchemes: openapi3.SecuritySchemes{
				BearerScheme: &openapi3.SecuritySchemeRef{Value: openapi3.NewJWTSecurityScheme()},
			},
		},
	}

	for _, t := range doc.Types {
		oas.Components.Schemas[t.Name] = TypeSchema(t)
	}

	for _, group := range doc.Groups() {
		oas.Tags = append(oas.Tags, &openapi3.Tag{
			Name:        group,
			Description: fmt.Sprintf("%s related endpoints", group),
		})
	}

	for _, e := range doc.Endpoints {
		path := contract.OpenAPIPath(e.Path)
		item := oas.Paths.Value(path)
		if item == nil {
			item = &openapi3.PathItem{}
			oas.Paths.Set(path, item)
		}
		item.SetOperation(e.Method, buildOperation(e))
	}

	return oas
}

func buildInfo(cfg config.OpenAPIConfig, timestamp string) *openapi3.Info {
	info := &openapi3.Info{
		Title:       cfg.Title,
		Description: cfg.Description,
		Version:     cfg.Version,
		Extensions: map[string]any{
			"x-generated-by":           typegen.GeneratorName,
			typegen.TimestampExtension: timestamp,
			typegen.VersionExtension:   version.Get().Version,
		},
	}
	if cfg.ContactName != "" || cfg.ContactEmail != "" {
		info.Contact = &openapi3.Contact{Name: cfg.ContactName, Email: cfg.ContactEmail}
	}
	if cfg.LicenseName != "" {
		info.License = &openapi3.License{Name: cfg.LicenseName, URL: cfg.LicenseURL}
	}
	return info
}

func buildServers(servers []config.ServerConfig) openapi3.Servers {
	out := make(openapi3.Servers, 0, len(servers))
	for _, s := range servers {
		out = append(out, &openapi3.Server{URL: s.URL, Description: s.Description})
	}
	return out
}

func buildOperation(e contract.Endpoint) *openapi3.Operation {
	op := &openapi3.Operation{
		Tags:        []string{e.Group},
		Summary:     e.Description,
		Description: e.Description,
		OperationID: e.Name,
	}

	for _, name := range contract.PathParams(e.Path) {
		param := openapi3.NewPathParameter(name).
			WithSchema(openapi3.NewStringSchema()).
			WithDescription(name + " parameter")
		op.AddParameter(param)
	}

	shape := e.Shape()
	if shape.HasRequest() {
		op.RequestBody = &openapi3.RequestBodyRef{
			Value: openapi3.NewRequestBody().
				WithRequired(true).
				WithJSONSchemaRef(SchemaFor(e.RequestType)),
		}
	}

	success := openapi3.NewResponse().WithDescription("Success")
	if shape.HasResponse() {
		success = success.WithJSONSchemaRef(SchemaFor(e.ResponseType))
	}

	op.Responses = openapi3.NewResponses(
		openapi3.WithStatus(http.StatusOK, &openapi3.ResponseRef{Value: success}),
		openapi3.WithStatus(http.StatusBadRequest, errorResponse("Bad Request")),
		openapi3.WithStatus(http.StatusInternalServerError, errorResponse("Internal Server Error")),
	)

	if e.RequiresAuth {
		op.Responses.Set("401", errorResponse("Unauthorized"))
		op.Security = openapi3.NewSecurityRequirements().
			With(openapi3.NewSecurityRequirement().Authenticate(BearerScheme))
	}

	return op
}

func errorResponse(description string) *openapi3.ResponseRef {
	return &openapi3.ResponseRef{
		Value: openapi3.NewResponse().
			WithDescription(description).
			WithJSONSchemaRef(errorSchema()),
	}
}
