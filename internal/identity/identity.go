// Package identity resolves the packager's global identity (name, email)
// from version-control configuration. It is injected into the metadata
// resolver so inference stays testable without touching the environment.
package identity

import (
	"os/exec"
	"strings"
)

// Well-known configuration keys.
const (
	KeyUserName  = "user.name"
	KeyUserEmail = "user.email"
)

// Lookup answers identity queries. Absence is not an error: a missing key
// simply makes the corresponding inference fall through.
type Lookup interface {
	Get(key string) (string, bool)
}

// Git reads keys from the global git configuration by shelling out to
// `git config --get`. Any failure (git missing, key unset) means absent.
type Git struct{}

func (Git) Get(key string) (string, bool) {
	out, err := exec.Command("git", "config", "--get", key).Output()
	if err != nil {
		return "", false
	}
	value := strings.TrimSpace(string(out))
	if value == "" {
		return "", false
	}
	return value, true
}

// Static is a map-backed Lookup for tests and default plumbing.
type Static map[string]string

func (s Static) Get(key string) (string, bool) {
	value, ok := s[key]
	if !ok || value == "" {
		return "", false
	}
	return value, true
}

// None never answers; it models an environment without any identity source.
type None struct{}

func (None) Get(string) (string, bool) { return "", false }
