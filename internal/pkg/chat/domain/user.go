package chat

// User is a read-only projection of an account managed elsewhere.
// The chat context only needs it to resolve usernames when adding
// members to group rooms; authentication lives outside this module.
type User struct {
	ID       int64  `db:"id"`
	Username string `db:"username"`
	Active   bool   `db:"is_active"`
}
