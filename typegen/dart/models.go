package dart

import (
	"fmt"
	"strings"

	"github.com/teranos/contractgen/contract"
	"github.com/teranos/contractgen/typegen"
	"github.com/teranos/contractgen/typegen/util"
)

// modelField is a contract field resolved to its Dart form.
type modelField struct {
	ident     string
	key       string
	dartType  string
	optional  bool
	timestamp bool
	doc       string
}

func resolveFields(t contract.Type) []modelField {
	fields := make([]modelField, 0, len(t.Fields))
	for _, f := range t.Fields {
		expr := contract.ParseTypeExpr(f.SourceType).StripOptional()
		dartType := util.ConvertExpr(expr, typeConfig)
		if f.Optional {
			dartType = typeConfig.NullableFormat(dartType)
		}
		p, _ := util.LookupPrimitive(expr.Name)
		fields = append(fields, modelField{
			ident:     toDartIdent(f.JSONName),
			key:       dartString(f.JSONName),
			dartType:  dartType,
			optional:  f.Optional,
			timestamp: expr.Kind == contract.KindNamed && p == util.PrimTimestamp,
			doc:       f.Description,
		})
	}
	return fields
}

// GenerateModels renders one immutable value class per contract type.
func GenerateModels(doc *contract.Document, timestamp string) string {
	var sb strings.Builder

	sb.WriteString(typegen.Header("//", timestamp))
	sb.WriteString("\n")
	sb.WriteString("// ignore_for_file: prefer_const_constructors\n")

	for _, t := range doc.Types {
		sb.WriteString("\n")
		writeClass(&sb, t)
	}
	return sb.String()
}

func writeClass(sb *strings.Builder, t contract.Type) {
	fields := resolveFields(t)

	if t.Description != "" {
		sb.WriteString(fmt.Sprintf("/// %s\n", t.Description))
	}
	sb.WriteString(fmt.Sprintf("class %s {\n", t.Name))

	for _, f := range fields {
		if f.doc != "" {
			sb.WriteString(fmt.Sprintf("  /// %s\n", f.doc))
		}
		sb.WriteString(fmt.Sprintf("  final %s %s;\n", f.dartType, f.ident))
	}
	if len(fields) > 0 {
		sb.WriteString("\n")
	}

	writeConstructor(sb, t.Name, fields)
	sb.WriteString("\n")
	writeFromJSON(sb, t.Name, fields)
	sb.WriteString("\n")
	writeToJSON(sb, fields)
	sb.WriteString("\n")
	writeToString(sb, t.Name, fields)
	sb.WriteString("\n")
	writeEquality(sb, t.Name, fields)

	sb.WriteString("}\n")
}

func writeConstructor(sb *strings.Builder, name string, fields []modelField) {
	if len(fields) == 0 {
		sb.WriteString(fmt.Sprintf("  const %s();\n", name))
		return
	}
	sb.WriteString(fmt.Sprintf("  const %s({\n", name))
	for _, f := range fields {
		if f.optional {
			sb.WriteString(fmt.Sprintf("    this.%s,\n", f.ident))
		} else {
			sb.WriteString(fmt.Sprintf("    required this.%s,\n", f.ident))
		}
	}
	sb.WriteString("  });\n")
}

// writeFromJSON parses timestamps and passes every other value through.
func writeFromJSON(sb *strings.Builder, name string, fields []modelField) {
	sb.WriteString(fmt.Sprintf("  factory %s.fromJson(Map<String, dynamic> json) {\n", name))
	if len(fields) == 0 {
		sb.WriteString(fmt.Sprintf("    return %s();\n", name))
		sb.WriteString("  }\n")
		return
	}
	sb.WriteString(fmt.Sprintf("    return %s(\n", name))
	for _, f := range fields {
		value := fmt.Sprintf("json[%s]", f.key)
		switch {
		case f.timestamp && f.optional:
			value = fmt.Sprintf("json[%s] != null ? DateTime.parse(json[%s] as String) : null", f.key, f.key)
		case f.timestamp:
			value = fmt.Sprintf("DateTime.parse(json[%s] as String)", f.key)
		}
		sb.WriteString(fmt.Sprintf("      %s: %s,\n", f.ident, value))
	}
	sb.WriteString("    );\n")
	sb.WriteString("  }\n")
}

func writeToJSON(sb *strings.Builder, fields []modelField) {
	sb.WriteString("  Map<String, dynamic> toJson() {\n")
	sb.WriteString("    return {\n")
	for _, f := range fields {
		value := f.ident
		switch {
		case f.timestamp && f.optional:
			value = f.ident + "?.toIso8601String()"
		case f.timestamp:
			value = f.ident + ".toIso8601String()"
		}
		sb.WriteString(fmt.Sprintf("      %s: %s,\n", f.key, value))
	}
	sb.WriteString("    };\n")
	sb.WriteString("  }\n")
}

func writeToString(sb *strings.Builder, name string, fields []modelField) {
	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		parts = append(parts, fmt.Sprintf("%s: ${%s}", f.ident, f.ident))
	}
	sb.WriteString("  @override\n")
	sb.WriteString("  String toString() {\n")
	sb.WriteString(fmt.Sprintf("    return '%s(%s)';\n", name, strings.Join(parts, ", ")))
	sb.WriteString("  }\n")
}

func writeEquality(sb *strings.Builder, name string, fields []modelField) {
	sb.WriteString("  @override\n")
	sb.WriteString("  bool operator ==(Object other) {\n")
	sb.WriteString("    if (identical(this, other)) return true;\n")
	if len(fields) == 0 {
		sb.WriteString(fmt.Sprintf("    return other is %s;\n", name))
	} else {
		sb.WriteString(fmt.Sprintf("    return other is %s", name))
		for _, f := range fields {
			sb.WriteString(fmt.Sprintf(" &&\n        other.%s == %s", f.ident, f.ident))
		}
		sb.WriteString(";\n")
	}
	sb.WriteString("  }\n")
	sb.WriteString("\n")

	idents := make([]string, 0, len(fields))
	for _, f := range fields {
		idents = append(idents, f.ident)
	}
	sb.WriteString("  @override\n")
	sb.WriteString(fmt.Sprintf("  int get hashCode => Object.hashAll([%s]);\n", strings.Join(idents, ", ")))
}
