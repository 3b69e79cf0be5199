package models

// User is the authenticated customer profile paired with the session token.
// It is persisted locally alongside the token and purged together with it.
type User struct {
	ID    string `json:"_id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone,omitempty"`
}
