package models

// AnonymousUID identifies requests admitted while authentication is open.
const AnonymousUID = "anonymous"

// AuthenticatedUser is the identity verified for a request.
type AuthenticatedUser struct {
	UID   string `json:"uid"`
	Email string `json:"email,omitempty"`
}
