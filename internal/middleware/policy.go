package middleware

import "strings"

// AuthPolicy lists "entity.op" patterns naming the routes that need a
// bearer token. Either side may be "*"; a bare "*" matches every route.
type AuthPolicy []string

func (p AuthPolicy) Requires(entity, op string) bool {
	for _, pattern := range p {
		pattern = strings.TrimSpace(pattern)
		if pattern == "*" {
			return true
		}

		e, o, ok := strings.Cut(pattern, ".")
		if !ok {
			continue
		}
		if (e == "*" || e == entity) && (o == "*" || o == op) {
			return true
		}
	}
	return false
}
