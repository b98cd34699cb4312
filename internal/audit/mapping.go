package audit

import (
	"net/http"
	"strings"
)

// ActionResource holds action and resource derived from an HTTP route.
type ActionResource struct {
	Action   string
	Resource string
}

// routeOverrides maps routes whose action is not implied by the HTTP method.
var routeOverrides = map[string]ActionResource{
	http.MethodPut + " /api/organizations/default": {Action: "set_default", Resource: "organization"},
	http.MethodGet + " /logout":                    {Action: "logout", Resource: "session"},
}

// ParseRoute returns action and resource for a method and gin route pattern
// (e.g. PUT /api/organizations/:id -> update organization). Resource is the singular of the first
// path segment after /api (or /admin); unknown shapes map to "unknown".
func ParseRoute(method, fullPath string) ActionResource {
	if ar, ok := routeOverrides[method+" "+fullPath]; ok {
		return ar
	}
	return ActionResource{Action: methodToAction(method), Resource: pathToResource(fullPath)}
}

// Audited reports whether requests to the route are recorded: every mutating method plus the
// read-method overrides such as logout.
func Audited(method, fullPath string) bool {
	if _, ok := routeOverrides[method+" "+fullPath]; ok {
		return true
	}
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodOptions:
		return false
	default:
		return fullPath != ""
	}
}

func pathToResource(fullPath string) string {
	segments := strings.Split(strings.Trim(fullPath, "/"), "/")
	if len(segments) < 2 || (segments[0] != "api" && segments[0] != "admin") {
		return "unknown"
	}
	s := segments[1]
	switch {
	case s == "":
		return "unknown"
	case s == "geography":
		return s
	case strings.HasSuffix(s, "ies"):
		return strings.TrimSuffix(s, "ies") + "y"
	default:
		return strings.TrimSuffix(s, "s")
	}
}

func methodToAction(method string) string {
	switch method {
	case http.MethodGet, http.MethodHead:
		return "get"
	case http.MethodPost:
		return "create"
	case http.MethodPut, http.MethodPatch:
		return "update"
	case http.MethodDelete:
		return "delete"
	default:
		return strings.ToLower(method)
	}
}
