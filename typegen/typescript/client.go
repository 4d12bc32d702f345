package typescript

import (
	"fmt"
	"strings"

	"github.com/teranos/contractgen/config"
	"github.com/teranos/contractgen/contract"
	"github.com/teranos/contractgen/typegen"
	"github.com/teranos/contractgen/typegen/util"
)

// GenerateClient renders index.ts: one exported object per endpoint group,
// each member dispatching through apiRequest.
func GenerateClient(doc *contract.Document, cfg config.TypeScriptConfig, timestamp string) string {
	var sb strings.Builder

	sb.WriteString("/* eslint-disable */\n")
	sb.WriteString(typegen.Header("//", timestamp))
	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("import { apiRequest } from '%s';\n", cfg.ClientImport))
	writeImportList(&sb, "type ", util.ReferencedTypes(contract.UsedTypes(doc.Endpoints)), cfg.TypesImport)

	byGroup := doc.EndpointsByGroup()
	for _, group := range doc.Groups() {
		sb.WriteString("\n")
		sb.WriteString(fmt.Sprintf("/**\n * %s API\n */\n", group))
		sb.WriteString(fmt.Sprintf("export const %s = {\n", groupObjectName(group)))
		for i, e := range byGroup[group] {
			if i > 0 {
				sb.WriteString("\n")
			}
			writeClientMember(&sb, e)
		}
		sb.WriteString("};\n")
	}
	return sb.String()
}

func writeClientMember(sb *strings.Builder, e contract.Endpoint) {
	sb.WriteString("  /**\n")
	sb.WriteString(fmt.Sprintf("   * %s\n", docText(e.Description)))
	sb.WriteString(fmt.Sprintf("   * %s %s\n", e.Method, e.Path))
	if e.RequiresAuth {
		sb.WriteString("   * @requires Authentication\n")
	}
	sb.WriteString("   */\n")

	shape := e.Shape()
	response := "void"
	if shape.HasResponse() {
		response = MapType(e.ResponseType)
	}

	params := ""
	args := []string{fmt.Sprintf("'%s'", e.Path)}
	if shape.HasRequest() {
		params = "data: " + MapType(e.RequestType)
		args = append(args, "data")
	}
	if e.RequiresAuth {
		if !shape.HasRequest() {
			args = append(args, "undefined")
		}
		args = append(args, "{ requiresAuth: true }")
	}

	sb.WriteString(fmt.Sprintf("  %s: (%s): Promise<%s> =>\n", memberName(e), params, response))
	sb.WriteString(fmt.Sprintf("    apiRequest.%s<%s>(%s),\n",
		strings.ToLower(e.Method), response, strings.Join(args, ", ")))
}
