package core

import (
	"net/url"
	"testing"
)

// Requirement: the synthesized initials equal the upper-cased first letters of
// each whitespace-separated token of the full name, in order, without separators.
func TestInitials(t *testing.T) {
	tests := []struct {
		name     string
		fullName string
		want     string
	}{
		{
			name:     "two tokens",
			fullName: "Jane Doe",
			want:     "JD",
		},
		{
			name:     "single token",
			fullName: "Jane",
			want:     "J",
		},
		{
			name:     "lower-case input is upper-cased",
			fullName: "jane doe",
			want:     "JD",
		},
		{
			name:     "extra whitespace between tokens",
			fullName: "  Jane   van   Doe  ",
			want:     "JVD",
		},
		{
			name:     "empty name",
			fullName: "",
			want:     "",
		},
	}

	for _, test := range tests {
		test := test
		t.Run(test.name, func(t *testing.T) {
			if got := Initials(test.fullName); got != test.want {
				t.Errorf("Initials(%q) = %q, want %q", test.fullName, got, test.want)
			}
		})
	}
}

// Requirement: AvatarURL encodes the initials into the name query parameter
// of the avatar endpoint.
func TestAvatarURL(t *testing.T) {
	got := AvatarURL("Jane Doe")

	parsed, err := url.Parse(got)
	if err != nil {
		t.Fatalf("AvatarURL() returned unparseable URL %q: %v", got, err)
	}
	if parsed.Host != "ui-avatars.com" {
		t.Errorf("AvatarURL() host = %q, want %q", parsed.Host, "ui-avatars.com")
	}
	if name := parsed.Query().Get("name"); name != "JD" {
		t.Errorf("AvatarURL() name parameter = %q, want %q", name, "JD")
	}
}
