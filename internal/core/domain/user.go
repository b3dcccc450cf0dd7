package domain

import "time"

// User models an account known to the identity service.
type User struct {
	ID           uint      `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email,omitempty"`
	PasswordHash string    `json:"-"`
	Staff        bool      `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// groupSlugs maps the URL form of a group to its stored name.
var groupSlugs = map[string]string{
	"manager":       GroupManager,
	"delivery-crew": GroupDeliveryCrew,
}

// GroupBySlug returns the stored group name for a URL slug.
func GroupBySlug(slug string) (string, bool) {
	name, ok := groupSlugs[slug]
	return name, ok
}
