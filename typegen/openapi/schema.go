package openapi

import (
	"github.com/getkin/kin-openapi/openapi3"

	"github.com/teranos/contractgen/contract"
	"github.com/teranos/contractgen/typegen/util"
)

// SchemaRefPrefix is where component schemas are referenced from.
const SchemaRefPrefix = "#/components/schemas/"

// SchemaFor converts a contract type expression to a schema. Custom type
// names become component references.
func SchemaFor(expr string) *openapi3.SchemaRef {
	return schemaForExpr(contract.ParseTypeExpr(expr))
}

func schemaForExpr(e *contract.Expr) *openapi3.SchemaRef {
	switch e.Kind {
	case contract.KindArray:
		s := openapi3.NewArraySchema()
		s.Items = schemaForExpr(e.Elem)
		return s.NewRef()

	case contract.KindOptional:
		return nullable(schemaForExpr(e.Elem))

	case contract.KindMap:
		s := openapi3.NewObjectSchema()
		s.AdditionalProperties = openapi3.AdditionalProperties{Schema: schemaForExpr(e.Elem)}
		return s.NewRef()
	}

	p, ok := util.LookupPrimitive(e.Name)
	if !ok {
		return openapi3.NewSchemaRef(SchemaRefPrefix+e.Name, nil)
	}

	switch p {
	case util.PrimInt32:
		return openapi3.NewInt32Schema().NewRef()
	case util.PrimInt64:
		return openapi3.NewInt64Schema().NewRef()
	case util.PrimFloat32:
		s := openapi3.NewFloat64Schema()
		s.Format = "float"
		return s.NewRef()
	case util.PrimFloat64:
		s := openapi3.NewFloat64Schema()
		s.Format = "double"
		return s.NewRef()
	case util.PrimBool:
		return openapi3.NewBoolSchema().NewRef()
	case util.PrimObject:
		return openapi3.NewObjectSchema().NewRef()
	case util.PrimTimestamp:
		return openapi3.NewDateTimeSchema().NewRef()
	default:
		return openapi3.NewStringSchema().NewRef()
	}
}

// nullable marks a schema as accepting null. A $ref cannot carry siblings
// in 3.0, so references are wrapped in allOf.
func nullable(ref *openapi3.SchemaRef) *openapi3.SchemaRef {
	if ref.Ref != "" {
		s := openapi3.NewSchema()
		s.AllOf = openapi3.SchemaRefs{ref}
		s.Nullable = true
		return s.NewRef()
	}
	ref.Value.Nullable = true
	return ref
}

// TypeSchema builds the component schema of a contract type. Required lists
// every non-optional field and is omitted when empty.
func TypeSchema(t contract.Type) *openapi3.SchemaRef {
	s := openapi3.NewObjectSchema()
	s.Description = t.Description

	for _, f := range t.Fields {
		prop := schemaForExpr(contract.ParseTypeExpr(f.SourceType).StripOptional())
		if f.Optional {
			prop = nullable(prop)
		}
		if f.Description != "" {
			prop = describe(prop, f.Description)
		}
		s.WithPropertyRef(f.JSONName, prop)
		if !f.Optional {
			s.Required = append(s.Required, f.JSONName)
		}
	}
	return s.NewRef()
}

// describe attaches a description. References are wrapped like nullable
// ones since the description would otherwise be dropped.
func describe(ref *openapi3.SchemaRef, description string) *openapi3.SchemaRef {
	if ref.Ref != "" {
		s := openapi3.NewSchema()
		s.AllOf = openapi3.SchemaRefs{ref}
		s.Description = description
		return s.NewRef()
	}
	ref.Value.Description = description
	return ref
}

// errorSchema is the body of 400, 401 and 500 responses.
func errorSchema() *openapi3.SchemaRef {
	return openapi3.NewObjectSchema().
		WithProperty("error", openapi3.NewStringSchema()).
		WithProperty("message", openapi3.NewStringSchema()).
		NewRef()
}
