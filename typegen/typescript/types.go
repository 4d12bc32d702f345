package typescript

import (
	"fmt"
	"strings"

	"github.com/teranos/contractgen/contract"
	"github.com/teranos/contractgen/typegen"
	"github.com/teranos/contractgen/typegen/util"
)

// GenerateTypes renders one interface per contract type.
func GenerateTypes(doc *contract.Document, timestamp string) string {
	var sb strings.Builder

	sb.WriteString("/* eslint-disable */\n")
	sb.WriteString(typegen.Header("//", timestamp))
	sb.WriteString("\n")

	if len(doc.Types) == 0 {
		sb.WriteString("export {};\n")
		return sb.String()
	}

	for i, t := range doc.Types {
		if i > 0 {
			sb.WriteString("\n")
		}
		writeInterface(&sb, t)
	}
	return sb.String()
}

func writeInterface(sb *strings.Builder, t contract.Type) {
	if t.Description != "" {
		sb.WriteString("/**\n")
		sb.WriteString(fmt.Sprintf(" * %s\n", docText(t.Description)))
		sb.WriteString(" */\n")
	}

	sb.WriteString(fmt.Sprintf("export interface %s {\n", t.Name))
	for _, f := range t.Fields {
		if f.Description != "" {
			sb.WriteString(fmt.Sprintf("  /** %s */\n", docText(f.Description)))
		}
		marker := ""
		if f.Optional {
			marker = "?"
		}
		sb.WriteString(fmt.Sprintf("  %s%s: %s;\n",
			propertyName(f.JSONName), marker, util.ConvertFieldType(f.SourceType, typeConfig)))
	}
	sb.WriteString("}\n")
}
