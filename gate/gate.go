// Package gate answers "may this user see this piece of UI" as a pure
// predicate over role and department membership. Rendering (children,
// fallback, or nothing) is the view layer's concern; this package never
// touches HTML.
package gate

// Subject is the minimal slice of the current user the gate needs.
type Subject struct {
	Role       string
	Department string
}

// Requirement restricts visibility to a set of roles and/or departments.
// An empty slice means that dimension is unrestricted.
type Requirement struct {
	Roles       []string
	Departments []string
}

// Allowed reports whether the subject passes the requirement. A nil subject
// (no user established) always denies, regardless of how permissive the
// requirement is.
func Allowed(subject *Subject, req Requirement) bool {
	if subject == nil {
		return false
	}
	if len(req.Roles) > 0 && !contains(req.Roles, subject.Role) {
		return false
	}
	if len(req.Departments) > 0 && !contains(req.Departments, subject.Department) {
		return false
	}
	return true
}

func contains(values []string, want string) bool {
	for _, v := range values {
		if v == want {
			return true
		}
	}
	return false
}
