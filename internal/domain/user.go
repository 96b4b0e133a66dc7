package domain

// User is the profile of the authenticated customer
type User struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}
