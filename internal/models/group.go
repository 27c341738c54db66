package models

// Group represents a set of users who split expenses with each other.
//
// Membership changes over time; balance computations always work on the
// membership snapshot fetched for that computation, so reruns over the same
// snapshot are idempotent.
type Group struct {
	// ID is the unique identifier for the group (UUID format).
	ID string

	// Name is the display name of the group (e.g., "Roommates", "Trip to Goa").
	Name string

	// Members is the list of member user ids. Uniqueness is enforced at the
	// storage layer.
	Members []UserID

	// CreatedAt is the Unix timestamp when the group was created.
	CreatedAt int64
}
