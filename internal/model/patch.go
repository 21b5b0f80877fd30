package model

// ProfilePatch carries a partial update of a user's own profile.
// Nil fields are left untouched. PasswordHash must be set by the
// service after hashing; the raw password never reaches a repository.
type ProfilePatch struct {
	Name           *string
	Email          *string
	PasswordHash   *string
	ProfilePicture *string
}

// EventPatch carries a partial update of an event. Any subset of the
// mutable columns may be set; nil fields are left untouched.
// Approval state and counters are never patched through this type.
type EventPatch struct {
	Title       *string
	Description *string
	Location    *string
	Category    *string
	Date        *string
	Time        *string
}

// EventSearch bundles the optional search filters. Keyword matches
// the title as a substring; Location and Category match exactly.
// All present filters are ANDed.
type EventSearch struct {
	Keyword  string
	Location string
	Category string
}
