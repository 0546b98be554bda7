// Package review holds the review entity and its lifecycle manager.
// A review always belongs to exactly one campground; the manager keeps
// the review's back-reference and the campground's reference set in
// step on both create and delete.
package review

import "time"

// Review is a user review of a campground. AuthorID is set once at
// creation and never reassigned; CampgroundID is the back-reference to
// the owning campground.
type Review struct {
	ID           string
	Body         string
	Rating       int
	AuthorID     string
	CampgroundID string
	CreatedAt    time.Time
}

// OwnerID implements authz.Resource. Only the review's author may
// delete it; owning the parent campground grants nothing here.
func (r *Review) OwnerID() string { return r.AuthorID }
