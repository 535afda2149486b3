package user

// User is a record owned by the remote user-management API. The console only displays it.
type User struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
}

// HasName reports whether the optional name is present.
func (u User) HasName() bool {
	return u.Name != ""
}

// CreateUserData is the input buffer bound to the create form.
type CreateUserData struct {
	Email string `json:"email" validate:"required"`
	Name  string `json:"name" validate:"required"`
}
