// Package authz decides whether a principal may mutate an owned
// resource. Ownership is the only rule: there are no roles, and a
// campground's owner gets no special power over other users' reviews.
package authz

import "errors"

var (
	// ErrUnauthenticated means no principal was supplied at all.
	ErrUnauthenticated = errors.New("authz: authentication required")

	// ErrForbidden means the principal is authenticated but does not
	// own the resource.
	ErrForbidden = errors.New("authz: permission denied")
)

// Principal is the authenticated identity performing an action.
type Principal struct {
	ID       string
	Username string
}

// Resource is any entity with a single owning user.
type Resource interface {
	OwnerID() string
}

// CanMutate reports whether p may update or delete res. It is pure and
// inspects only the owner field already resident on res. Creation does
// not go through this check; any authenticated principal may create.
func CanMutate(p *Principal, res Resource) error {
	if p == nil || p.ID == "" {
		return ErrUnauthenticated
	}
	if res.OwnerID() != p.ID {
		return ErrForbidden
	}
	return nil
}
