package normalize_test

import (
	"testing"

	"github.com/dialoguedock/dialoguedock/internal/app/system/normalize"
)

func TestEmail(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"User@Example.COM", "user@example.com"},
		{"  padded@example.com ", "padded@example.com"},
		{"already@example.com", "already@example.com"},
		{"", ""},
	}
	for _, c := range cases {
		if got := normalize.Email(c.in); got != c.want {
			t.Errorf("Email(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}
