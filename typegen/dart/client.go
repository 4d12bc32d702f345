package dart

import (
	"fmt"
	"strings"

	"github.com/teranos/contractgen/config"
	"github.com/teranos/contractgen/contract"
	"github.com/teranos/contractgen/typegen"
	"github.com/teranos/contractgen/typegen/util"
)

// GenerateClient renders api_client.dart: ApiException plus one client
// class with a method per endpoint.
func GenerateClient(doc *contract.Document, cfg config.DartConfig, timestamp string) string {
	var sb strings.Builder

	sb.WriteString(typegen.Header("//", timestamp))
	sb.WriteString("\n")
	sb.WriteString("import 'dart:async';\n")
	sb.WriteString("import 'dart:convert';\n")
	sb.WriteString("\n")
	sb.WriteString("import 'package:http/http.dart' as http;\n")
	sb.WriteString("\n")
	sb.WriteString("import 'models.dart';\n")
	sb.WriteString("\n")
	sb.WriteString(apiException)
	sb.WriteString("\n")

	class := cfg.ClientClass
	sb.WriteString(fmt.Sprintf("/// HTTP client for the %s API.\n", cfg.PackageName))
	sb.WriteString(fmt.Sprintf("class %s {\n", class))
	sb.WriteString(fmt.Sprintf(clientPreamble, class, cfg.TimeoutSeconds))

	for _, e := range doc.Endpoints {
		sb.WriteString("\n")
		writeMethod(&sb, e)
	}
	sb.WriteString("}\n")
	return sb.String()
}

const apiException = `/// Thrown when the server answers with a non-2xx status.
class ApiException implements Exception {
  final String message;
  final int statusCode;
  final dynamic details;

  ApiException(this.message, this.statusCode, [this.details]);

  @override
  String toString() => 'ApiException($statusCode): $message';
}
`

// clientPreamble holds the fields, constructor and transport helpers shared
// by every generated client. Formatted with the class name and the default
// timeout in seconds.
const clientPreamble = `  final String baseUrl;
  final Duration timeout;
  final Map<String, String> _headers;
  final http.Client _http;
  String? _authToken;

  %[1]s({
    required this.baseUrl,
    Map<String, String>? headers,
    this.timeout = const Duration(seconds: %[2]d),
    http.Client? httpClient,
  })  : _headers = {'Content-Type': 'application/json', ...?headers},
        _http = httpClient ?? http.Client();

  void setAuthToken(String token) {
    _authToken = token;
  }

  void clearAuthToken() {
    _authToken = null;
  }

  void close() {
    _http.close();
  }

  Map<String, String> _buildHeaders(bool auth) {
    final headers = Map<String, String>.from(_headers);
    final token = _authToken;
    if (auth && token != null) {
      headers['Authorization'] = 'Bearer $token';
    }
    return headers;
  }

  Uri _uri(String endpoint, Map<String, dynamic>? query) {
    final uri = Uri.parse('$baseUrl$endpoint');
    if (query == null || query.isEmpty) {
      return uri;
    }
    final params = <String, String>{};
    query.forEach((key, value) {
      if (value != null) {
        params[key] = value.toString();
      }
    });
    return uri.replace(queryParameters: params);
  }

  Future<T> _send<T>(
    String method,
    String endpoint,
    T Function(dynamic) fromJson, {
    Object? body,
    Map<String, dynamic>? query,
    bool auth = false,
  }) async {
    final request = http.Request(method, _uri(endpoint, query));
    request.headers.addAll(_buildHeaders(auth));
    if (body != null) {
      request.body = jsonEncode(body);
    }
    final streamed = await _http.send(request).timeout(timeout);
    final response = await http.Response.fromStream(streamed);
    return _handleResponse(response, fromJson);
  }

  Future<T> _get<T>(String endpoint, T Function(dynamic) fromJson,
          {Map<String, dynamic>? query, bool auth = false}) =>
      _send('GET', endpoint, fromJson, query: query, auth: auth);

  Future<T> _post<T>(String endpoint, T Function(dynamic) fromJson,
          {Object? body, bool auth = false}) =>
      _send('POST', endpoint, fromJson, body: body, auth: auth);

  Future<T> _put<T>(String endpoint, T Function(dynamic) fromJson,
          {Object? body, bool auth = false}) =>
      _send('PUT', endpoint, fromJson, body: body, auth: auth);

  Future<T> _patch<T>(String endpoint, T Function(dynamic) fromJson,
          {Object? body, bool auth = false}) =>
      _send('PATCH', endpoint, fromJson, body: body, auth: auth);

  Future<T> _delete<T>(String endpoint, T Function(dynamic) fromJson,
          {Object? body, bool auth = false}) =>
      _send('DELETE', endpoint, fromJson, body: body, auth: auth);

  T _handleResponse<T>(http.Response response, T Function(dynamic) fromJson) {
    if (response.statusCode < 200 || response.statusCode >= 300) {
      dynamic details;
      try {
        details = jsonDecode(response.body);
      } catch (_) {
        details = response.body;
      }
      throw ApiException(
        'Request failed with status ${response.statusCode}',
        response.statusCode,
        details,
      );
    }
    if (response.body.isEmpty) {
      return fromJson(const <String, dynamic>{});
    }
    return fromJson(jsonDecode(response.body));
  }

  static void _ignore(dynamic _) {}
`

var methodHelpers = map[string]string{
	"GET":    "_get",
	"POST":   "_post",
	"PUT":    "_put",
	"PATCH":  "_patch",
	"DELETE": "_delete",
}

func writeMethod(sb *strings.Builder, e contract.Endpoint) {
	shape := e.Shape()

	returnType := "void"
	decoder := "_ignore"
	if shape.HasResponse() {
		returnType = MapType(e.ResponseType)
		decoder = fmt.Sprintf("(json) => %s", decodeExpr(contract.ParseTypeExpr(e.ResponseType), "json"))
	}

	params := ""
	var named []string
	if shape.HasRequest() {
		params = MapType(e.RequestType) + " request"
		if e.Method == "GET" && isModel(e.RequestType) {
			named = append(named, "query: request.toJson()")
		} else {
			named = append(named, "body: request")
		}
	}
	if e.RequiresAuth {
		named = append(named, "auth: true")
	}

	helper, ok := methodHelpers[e.Method]
	args := []string{dartString(e.Path), decoder}
	if !ok || (e.Method == "GET" && len(named) > 0 && strings.HasPrefix(named[0], "body:")) {
		helper = "_send"
		args = append([]string{dartString(e.Method)}, args...)
	}
	args = append(args, named...)

	sb.WriteString(fmt.Sprintf("  /// %s\n", e.Description))
	sb.WriteString(fmt.Sprintf("  ///\n  /// %s %s\n", e.Method, e.Path))
	if e.RequiresAuth {
		sb.WriteString("  ///\n  /// Requires an auth token, see [setAuthToken].\n")
	}
	sb.WriteString(fmt.Sprintf("  Future<%s> %s(%s) {\n", returnType, methodName(e), params))
	sb.WriteString(fmt.Sprintf("    return %s(\n", helper))
	for _, arg := range args {
		sb.WriteString(fmt.Sprintf("      %s,\n", arg))
	}
	sb.WriteString("    );\n")
	sb.WriteString("  }\n")
}

// clientMembers are the public members every generated client already has,
// including those inherited from Object.
var clientMembers = map[string]bool{
	"baseUrl": true, "timeout": true,
	"setAuthToken": true, "clearAuthToken": true, "close": true,
	"toString": true, "hashCode": true, "noSuchMethod": true, "runtimeType": true,
}

func methodName(e contract.Endpoint) string {
	name := toDartIdent(e.Name)
	if clientMembers[name] {
		return name + "_"
	}
	return name
}

// isModel reports whether expr names a generated class.
func isModel(expr string) bool {
	e := contract.ParseTypeExpr(expr)
	return e.Kind == contract.KindNamed && !util.IsPrimitive(e.Name)
}
