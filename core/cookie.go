package core

// SessionCookieName is the cookie carrying the provider session secret.
const SessionCookieName = "appwrite-session"

// CookieSpec is the contract for the session cookie written on successful
// OTP verification and cleared on sign-out.
type CookieSpec struct {
	Name     string
	Path     string
	HTTPOnly bool
	Secure   bool
	SameSite string
}

func DefaultCookieSpec() CookieSpec {
	return CookieSpec{
		Name:     SessionCookieName,
		Path:     "/",
		HTTPOnly: true,
		Secure:   true,
		SameSite: "Strict",
	}
}
