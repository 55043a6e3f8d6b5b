package core

import (
	"net/url"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Host allowlisted by the web app's image pipeline.
const avatarEndpoint = "https://ui-avatars.com/api/"

// Initials returns the upper-cased first letters of each whitespace-separated
// token of fullName, in order, concatenated without separators.
func Initials(fullName string) string {
	var b strings.Builder
	for _, token := range strings.Fields(fullName) {
		r, _ := utf8.DecodeRuneInString(token)
		b.WriteRune(unicode.ToUpper(r))
	}
	return b.String()
}

// AvatarURL synthesizes a placeholder avatar for a new user record from the
// initials of their full name.
func AvatarURL(fullName string) string {
	params := url.Values{}
	params.Set("name", Initials(fullName))
	return avatarEndpoint + "?" + params.Encode()
}
