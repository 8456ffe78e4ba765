package identity

import "testing"

func TestStaticLookup(t *testing.T) {
	lk := Static{KeyUserName: "Ada Lovelace", KeyUserEmail: ""}

	if got, ok := lk.Get(KeyUserName); !ok || got != "Ada Lovelace" {
		t.Fatalf("expected Ada Lovelace, got %q (ok=%v)", got, ok)
	}
	if _, ok := lk.Get(KeyUserEmail); ok {
		t.Fatalf("empty value must read as absent")
	}
	if _, ok := lk.Get("user.signingkey"); ok {
		t.Fatalf("unknown key must read as absent")
	}
}

func TestNoneLookup(t *testing.T) {
	if _, ok := (None{}).Get(KeyUserName); ok {
		t.Fatalf("None must never answer")
	}
}
