package normalize

import "testing"

func TestEmail(t *testing.T) {
	if got := Email("  Alice@Example.COM  "); got != "alice@example.com" {
		t.Errorf("Email: got %q", got)
	}
}

func TestUsername(t *testing.T) {
	if got := Username("  alice_b  "); got != "alice_b" {
		t.Errorf("Username: got %q", got)
	}
	// Case is preserved.
	if got := Username("AliceB"); got != "AliceB" {
		t.Errorf("Username: got %q", got)
	}
}

func TestName(t *testing.T) {
	if got := Name("  Alice   B.  Cooper "); got != "Alice B. Cooper" {
		t.Errorf("Name: got %q", got)
	}
	if got := Name(""); got != "" {
		t.Errorf("Name(empty): got %q", got)
	}
}

func TestIsValidEmail(t *testing.T) {
	valid := []string{
		"a@b.co",
		"alice.b@example.com",
		"x+tag@sub.example.org",
	}
	for _, s := range valid {
		if !IsValidEmail(s) {
			t.Errorf("IsValidEmail(%q) = false, want true", s)
		}
	}

	invalid := []string{
		"",
		"plainaddress",
		"@example.com",
		"a@b",
		"a@b.",
		"a@@b.co",
		"a b@example.com",
	}
	for _, s := range invalid {
		if IsValidEmail(s) {
			t.Errorf("IsValidEmail(%q) = true, want false", s)
		}
	}
}
