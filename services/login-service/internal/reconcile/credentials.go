package reconcile

import "strings"

// Credentials is one login submission. It is never persisted or logged.
type Credentials struct {
	Email    string
	Password string
}

// Clear drops both fields so the plaintext password does not outlive the submission.
func (c *Credentials) Clear() {
	c.Email = ""
	c.Password = ""
}

// take copies the submitted values out and clears c. ok is false when either
// field is empty.
func (c *Credentials) take() (email, password string, ok bool) {
	if c == nil {
		return "", "", false
	}

	email = strings.TrimSpace(c.Email)
	password = c.Password
	c.Clear()

	return email, password, email != "" && password != ""
}
