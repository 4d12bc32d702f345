package contract

import (
	"bufio"
	"io"
	"os"
	"regexp"
	"strings"

	"github.com/teranos/contractgen/errors"
)

// scope is the construct the parser is currently inside.
type scope int

const (
	scopeTop       scope = iota
	scopeTypeGroup       // type ( ... )
	scopeType            // type Name { ... }
	scopeServer          // @server( ... )
	scopeService         // service Name { ... }
	scopeRoute           // line after @handler
)

func (s scope) String() string {
	switch s {
	case scopeTypeGroup:
		return "type group"
	case scopeType:
		return "type"
	case scopeServer:
		return "server config"
	case scopeService:
		return "service"
	case scopeRoute:
		return "route"
	default:
		return "top level"
	}
}

// transitions lists the scopes reachable from each scope.
var transitions = map[scope][]scope{
	scopeTop:       {scopeTypeGroup, scopeType, scopeServer, scopeService},
	scopeTypeGroup: {scopeType, scopeTop},
	scopeType:      {scopeTop, scopeTypeGroup},
	scopeServer:    {scopeTop},
	scopeService:   {scopeRoute, scopeTop},
	scopeRoute:     {scopeService},
}

var (
	typeOpenPattern      = regexp.MustCompile(`^type\s+(\w+)\s*(?:struct\s*)?\{\s*(\})?\s*$`)
	typeGroupOpenPattern = regexp.MustCompile(`^type\s*\(\s*$`)
	groupedTypePattern   = regexp.MustCompile(`^(\w+)\s*(?:struct\s*)?\{\s*(\})?\s*$`)
	fieldPattern         = regexp.MustCompile("^(\\w+)\\s+([^\\s`]+)\\s+`([^`]*)`\\s*(?://\\s*(.*))?$")
	jsonTagPattern       = regexp.MustCompile(`json:"([^"]*)"`)
	serverOpenPattern    = regexp.MustCompile(`^@server\s*\((.*)$`)
	settingPattern       = regexp.MustCompile(`^(\w+)\s*:\s*(.*?)\s*$`)
	identPattern         = regexp.MustCompile(`^\w+`)
	servicePattern       = regexp.MustCompile(`^service\s+[\w-]+`)
	handlerPattern       = regexp.MustCompile(`^@handler\s+(\w+)`)
	routePattern         = regexp.MustCompile(`^([A-Za-z]+)\s+([^\s(]+)(?:\s*\(\s*([\w.\[\]*]*)\s*\))?(?:\s+returns\s*\(\s*([\w.\[\]*]*)\s*\))?\s*$`)
)

var httpMethods = map[string]bool{
	"GET": true, "POST": true, "PUT": true, "PATCH": true,
	"DELETE": true, "HEAD": true, "OPTIONS": true,
}

// serverContext is the group, prefix and auth setting declared by the most
// recent @server block. It applies until the next service block closes.
type serverContext struct {
	group  string
	prefix string
	auth   bool
}

type parser struct {
	source string
	doc    *Document

	scope      scope
	typeParent scope
	current    *Type
	server     serverContext

	handler     string
	handlerLine int

	lineNo      int
	prevComment string
}

// Parse reads contract text from r. source names the input in positions and
// diagnostics. Malformed lines are skipped and recorded as diagnostics; the
// only error returned is a read failure.
func Parse(source string, r io.Reader) (*Document, error) {
	p := &parser{source: source, doc: &Document{}}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		p.lineNo++
		p.step(strings.TrimSpace(scanner.Text()))
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrapf(err, "failed to read contract %s", source)
	}

	p.finish()
	return p.doc, nil
}

// ParseString parses contract text held in memory.
func ParseString(source, text string) (*Document, error) {
	return Parse(source, strings.NewReader(text))
}

// ParseFile opens and parses the contract at path.
func ParseFile(path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open contract %s", path)
	}
	defer f.Close()
	return Parse(path, f)
}

func (p *parser) enter(to scope, line string) {
	for _, allowed := range transitions[p.scope] {
		if allowed == to {
			p.scope = to
			return
		}
	}
	p.diagnose(line, "illegal transition from "+p.scope.String()+" to "+to.String())
	p.scope = to
}

func (p *parser) diagnose(line, message string) {
	p.doc.Diagnostics = append(p.doc.Diagnostics, Diagnostic{
		Source:  p.pos(),
		Text:    line,
		Message: message,
	})
}

func (p *parser) pos() Position {
	return Position{File: p.source, Line: p.lineNo}
}

func (p *parser) step(line string) {
	// Type descriptions come from the nearest non-blank line above.
	comment := p.prevComment
	if line != "" {
		p.prevComment = ""
		if strings.HasPrefix(line, "//") {
			p.prevComment = cleanComment(line)
		}
	}

	switch p.scope {
	case scopeTop:
		p.stepTop(line, comment)
	case scopeTypeGroup:
		p.stepTypeGroup(line, comment)
	case scopeType:
		p.stepType(line)
	case scopeServer:
		p.stepServer(line)
	case scopeService:
		p.stepService(line)
	case scopeRoute:
		p.stepRoute(line)
	}
}

func (p *parser) stepTop(line, comment string) {
	switch {
	case typeGroupOpenPattern.MatchString(line):
		p.enter(scopeTypeGroup, line)

	case typeOpenPattern.MatchString(line):
		m := typeOpenPattern.FindStringSubmatch(line)
		p.openType(m[1], comment, m[2] != "", line)

	case strings.HasPrefix(line, "type ") && strings.Contains(line, "{"):
		p.diagnose(line, "unrecognised type declaration")

	case serverOpenPattern.MatchString(line):
		p.server = serverContext{}
		p.enter(scopeServer, line)
		rest := serverOpenPattern.FindStringSubmatch(line)[1]
		if idx := strings.Index(rest, ")"); idx >= 0 {
			p.applySettings(rest[:idx])
			p.enter(scopeTop, line)
			return
		}
		p.applySettings(rest)

	case servicePattern.MatchString(line):
		p.enter(scopeService, line)
	}
}

func (p *parser) stepTypeGroup(line, comment string) {
	switch {
	case line == ")":
		p.enter(scopeTop, line)
	case line == "" || strings.HasPrefix(line, "//"):
	case groupedTypePattern.MatchString(line):
		m := groupedTypePattern.FindStringSubmatch(line)
		p.openType(m[1], comment, m[2] != "", line)
	default:
		p.diagnose(line, "expected type declaration inside type group")
	}
}

func (p *parser) openType(name, description string, closed bool, line string) {
	p.typeParent = p.scope
	p.current = &Type{
		Name:        name,
		Fields:      []Field{},
		Description: description,
		Source:      p.pos(),
	}
	p.enter(scopeType, line)
	if closed {
		p.closeType(line)
	}
}

func (p *parser) closeType(line string) {
	p.doc.Types = append(p.doc.Types, *p.current)
	p.current = nil
	p.enter(p.typeParent, line)
}

func (p *parser) stepType(line string) {
	switch {
	case line == "}":
		p.closeType(line)
	case line == "" || strings.HasPrefix(line, "//"):
	default:
		field, ok := parseField(line)
		if !ok {
			p.diagnose(line, "expected field with json tag")
			return
		}
		field.Source = p.pos()
		p.current.Fields = append(p.current.Fields, field)
	}
}

func parseField(line string) (Field, bool) {
	m := fieldPattern.FindStringSubmatch(line)
	if m == nil {
		return Field{}, false
	}
	tag := jsonTagPattern.FindStringSubmatch(m[3])
	if tag == nil {
		return Field{}, false
	}

	name, options, _ := strings.Cut(tag[1], ",")
	if name == "" || name == "-" {
		return Field{}, false
	}

	optional := isOptionalExpr(m[2])
	for _, opt := range strings.Split(options, ",") {
		if opt == "optional" || opt == "omitempty" {
			optional = true
		}
	}

	return Field{
		SourceName:  m[1],
		SourceType:  m[2],
		JSONName:    name,
		Optional:    optional,
		Description: strings.TrimSpace(m[4]),
	}, true
}

// isOptionalExpr reports whether the outermost decoration of a type
// expression is a pointer or nullable marker. A sequence of pointers is not
// itself optional.
func isOptionalExpr(expr string) bool {
	return strings.HasPrefix(expr, "*") || strings.HasPrefix(expr, "?") || strings.HasSuffix(expr, "?")
}

func (p *parser) stepServer(line string) {
	if idx := strings.Index(line, ")"); idx >= 0 {
		p.applySettings(line[:idx])
		p.enter(scopeTop, line)
		return
	}
	p.applySettings(line)
}

// applySettings reads jwt, group and prefix keys. Several settings may share
// a line separated by commas; unknown keys such as middleware are ignored.
func (p *parser) applySettings(text string) {
	for _, part := range strings.Split(text, ",") {
		m := settingPattern.FindStringSubmatch(strings.TrimSpace(part))
		if m == nil {
			continue
		}
		value := m[2]
		switch m[1] {
		case "jwt":
			p.server.auth = identPattern.MatchString(value)
		case "group":
			p.server.group = identPattern.FindString(value)
		case "prefix":
			p.server.prefix = strings.TrimRight(value, "/")
		}
	}
}

func (p *parser) stepService(line string) {
	switch {
	case line == "}":
		p.server = serverContext{}
		p.enter(scopeTop, line)
	case handlerPattern.MatchString(line):
		p.handler = handlerPattern.FindStringSubmatch(line)[1]
		p.handlerLine = p.lineNo
		p.enter(scopeRoute, line)
	default:
		if m := routePattern.FindStringSubmatch(stripComment(line)); m != nil && httpMethods[strings.ToUpper(m[1])] {
			p.diagnose(line, "route without @handler")
		}
	}
}

func (p *parser) stepRoute(line string) {
	if line == "" || strings.HasPrefix(line, "//") || strings.HasPrefix(line, "@doc") {
		return
	}

	m := routePattern.FindStringSubmatch(stripComment(line))
	if m == nil || !httpMethods[strings.ToUpper(m[1])] {
		p.diagnose(line, "expected route after @handler "+p.handler)
		p.handler = ""
		p.enter(scopeService, line)
		p.stepService(line)
		return
	}

	p.doc.Endpoints = append(p.doc.Endpoints, p.endpoint(m))
	p.handler = ""
	p.enter(scopeService, line)
}

func (p *parser) endpoint(m []string) Endpoint {
	group := p.server.group
	if group == "" {
		group = DefaultGroup
	}
	return Endpoint{
		Name:         p.handler,
		Method:       strings.ToUpper(m[1]),
		Path:         p.server.prefix + m[2],
		Group:        group,
		RequestType:  bodyType(m[3]),
		ResponseType: bodyType(m[4]),
		RequiresAuth: p.server.auth,
		Description:  p.handler + " endpoint",
		Source:       Position{File: p.source, Line: p.lineNo},
	}
}

// finish reports constructs still open at end of input.
func (p *parser) finish() {
	switch p.scope {
	case scopeType, scopeTypeGroup:
		name := ""
		if p.current != nil {
			name = " " + p.current.Name
		}
		p.diagnose("", "unterminated type"+name)
	case scopeServer:
		p.diagnose("", "unterminated @server block")
	case scopeService:
		p.diagnose("", "unterminated service block")
	case scopeRoute:
		p.lineNo = p.handlerLine
		p.diagnose("@handler "+p.handler, "missing route after @handler "+p.handler)
	}
}

func bodyType(name string) string {
	if name == "void" {
		return ""
	}
	return name
}

func stripComment(line string) string {
	if idx := strings.Index(line, "//"); idx >= 0 {
		return strings.TrimSpace(line[:idx])
	}
	return line
}

func cleanComment(line string) string {
	return strings.TrimSpace(strings.TrimPrefix(line, "//"))
}
