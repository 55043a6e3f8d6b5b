package core

import "time"

// UserRecord is the application's own directory entry for a user.
//
// This is distinct from the identity provider's internal account object:
// AccountID points at the provider identity the record was created with.
type UserRecord struct {
	ID        string    `json:"id"`
	FullName  string    `json:"fullName"`
	Email     string    `json:"email"`
	Avatar    string    `json:"avatar"`
	AccountID string    `json:"accountId"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Session is an authenticated session minted by the identity provider.
//
// Secret is the raw provider secret; it leaves the process only inside the
// session cookie and is never persisted by this library.
type Session struct {
	ID     string `json:"id"`
	Secret string `json:"-"`
}

// ProviderToken is the identity provider's answer to an OTP request.
// UserID is the pending account id the entered passcode must be exchanged
// with to obtain a session.
type ProviderToken struct {
	UserID    string
	ExpiresAt time.Time
}

// SignUpInput contains the data needed to create an account
type SignUpInput struct {
	FullName string `json:"fullName"`
	Email    string `json:"email"`
}

// SignUpResult carries the pending account id issued for the sign-up.
// It does not imply a session exists yet.
type SignUpResult struct {
	AccountID string `json:"accountId"`
}

// SignInInput contains the email to issue a sign-in passcode for
type SignInInput struct {
	Email string `json:"email"`
}

// SignInResult carries the directory record's stored account id
type SignInResult struct {
	AccountID string `json:"accountId"`
}

// VerifyInput contains the pending account id and the user-entered passcode
type VerifyInput struct {
	AccountID string `json:"accountId"`
	Passcode  string `json:"password"`
}

// VerifyResult carries the provider session created for a verified passcode.
// Secret is written into the session cookie by the HTTP adapter.
type VerifyResult struct {
	SessionID string `json:"sessionId"`
	Secret    string `json:"-"`
}
