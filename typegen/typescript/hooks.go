package typescript

import (
	"fmt"
	"strings"

	"github.com/teranos/contractgen/config"
	"github.com/teranos/contractgen/contract"
	"github.com/teranos/contractgen/typegen"
	"github.com/teranos/contractgen/typegen/util"
)

// GenerateHooks renders hooks.ts: a query hook per GET endpoint and a
// mutation hook for every other method.
func GenerateHooks(doc *contract.Document, cfg config.TypeScriptConfig, timestamp string) string {
	var sb strings.Builder

	sb.WriteString("/* eslint-disable */\n")
	sb.WriteString(typegen.Header("//", timestamp))
	sb.WriteString("\n")

	if len(doc.Endpoints) == 0 {
		sb.WriteString("export {};\n")
		return sb.String()
	}

	var queryImports []string
	var requestTypes []string
	hasQuery, hasMutation := false, false
	for _, e := range doc.Endpoints {
		if e.Method == "GET" {
			hasQuery = true
		} else {
			hasMutation = true
		}
		requestTypes = append(requestTypes, e.RequestType)
	}
	if hasQuery {
		queryImports = append(queryImports, "useQuery")
	}
	if hasMutation {
		queryImports = append(queryImports, "useMutation", "useQueryClient")
	}

	sb.WriteString(fmt.Sprintf("import { %s } from '%s';\n", strings.Join(queryImports, ", "), cfg.QueryPackage))
	writeImportList(&sb, "type ", util.ReferencedTypes(requestTypes), cfg.TypesImport)

	var objects []string
	for _, group := range doc.Groups() {
		objects = append(objects, groupObjectName(group))
	}
	sb.WriteString(fmt.Sprintf("import { %s } from './index';\n", strings.Join(objects, ", ")))

	for _, e := range doc.Endpoints {
		sb.WriteString("\n")
		if e.Method == "GET" {
			writeQueryHook(&sb, e)
		} else {
			writeMutationHook(&sb, e)
		}
	}
	return sb.String()
}

func hookName(e contract.Endpoint) string {
	return "use" + util.UpperFirst(e.Name)
}

func writeQueryHook(sb *strings.Builder, e contract.Endpoint) {
	call := fmt.Sprintf("%s.%s", groupObjectName(e.Group), memberName(e))
	key := memberName(e)

	sb.WriteString(fmt.Sprintf("/**\n * Query hook for %s\n */\n", e.Name))
	if e.Shape().HasRequest() {
		sb.WriteString(fmt.Sprintf("export function %s(params: %s) {\n", hookName(e), MapType(e.RequestType)))
		sb.WriteString("  return useQuery({\n")
		sb.WriteString(fmt.Sprintf("    queryKey: ['%s', params],\n", key))
		sb.WriteString(fmt.Sprintf("    queryFn: () => %s(params),\n", call))
	} else {
		sb.WriteString(fmt.Sprintf("export function %s() {\n", hookName(e)))
		sb.WriteString("  return useQuery({\n")
		sb.WriteString(fmt.Sprintf("    queryKey: ['%s'],\n", key))
		sb.WriteString(fmt.Sprintf("    queryFn: () => %s(),\n", call))
	}
	sb.WriteString("  });\n")
	sb.WriteString("}\n")
}

func writeMutationHook(sb *strings.Builder, e contract.Endpoint) {
	call := fmt.Sprintf("%s.%s", groupObjectName(e.Group), memberName(e))

	sb.WriteString(fmt.Sprintf("/**\n * Mutation hook for %s\n */\n", e.Name))
	sb.WriteString(fmt.Sprintf("export function %s() {\n", hookName(e)))
	sb.WriteString("  const queryClient = useQueryClient();\n")
	sb.WriteString("  return useMutation({\n")
	if e.Shape().HasRequest() {
		sb.WriteString(fmt.Sprintf("    mutationFn: (data: %s) => %s(data),\n", MapType(e.RequestType), call))
	} else {
		sb.WriteString(fmt.Sprintf("    mutationFn: () => %s(),\n", call))
	}
	sb.WriteString("    onSuccess: () => {\n")
	sb.WriteString(fmt.Sprintf("      queryClient.invalidateQueries({ queryKey: ['%s'] });\n", memberName(e)))
	sb.WriteString("    },\n")
	sb.WriteString("  });\n")
	sb.WriteString("}\n")
}
