package auth

// Access policy predicates. All pure functions over (actor, resource); every
// handler that mutates state consults the relevant predicate before touching
// storage. The admin role does not bypass per-expense ownership: admins get
// the separate global KPI view instead.

// CanViewExpense reports whether actor may read an expense owned by ownerID.
func CanViewExpense(actor *Actor, ownerID int64) bool {
	return actor != nil && actor.ID == ownerID
}

// CanMutateExpense reports whether actor may edit or delete an expense owned
// by ownerID.
func CanMutateExpense(actor *Actor, ownerID int64) bool {
	return actor != nil && actor.ID == ownerID
}

// IsAdmin reports whether actor holds the elevated role.
func IsAdmin(actor *Actor) bool {
	return actor.IsAdmin()
}

// CanDeleteUser reports whether actor may delete the user identified by
// targetID. Admin self-deletion is always rejected.
func CanDeleteUser(actor *Actor, targetID int64) bool {
	return IsAdmin(actor) && actor.ID != targetID
}
