package auth

import "errors"

// ErrForbidden is returned when a valid identity lacks rights over the
// target resource.
var ErrForbidden = errors.New("not authorized")

// Authorize is the ownership gate: the acting identity may mutate a
// resource only if it owns it. Post deletion checks against the post's
// owner; comment deletion checks against the comment's author, never
// the post's owner.
func Authorize(actingID, ownerID string) error {
	if actingID != ownerID {
		return ErrForbidden
	}
	return nil
}
