package models

// Viewer is the identity resolved from the incoming request, possibly
// anonymous. It is used only for privacy redaction and mutual-connection
// computation, never persisted and never used to filter the query itself.
type Viewer struct {
	UserID int64
	Role   Role
}

// Anonymous reports whether no identity could be resolved
func (v Viewer) Anonymous() bool {
	return v.UserID <= 0
}

// IsAdmin reports whether the viewer bypasses visibility flags everywhere
func (v Viewer) IsAdmin() bool {
	return !v.Anonymous() && v.Role == RoleAdmin
}

// Owns reports whether the viewer owns an alumni record
func (v Viewer) Owns(a *Alumni) bool {
	return !v.Anonymous() && a.UserID != nil && *a.UserID == v.UserID
}
