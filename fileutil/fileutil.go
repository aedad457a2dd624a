package fileutil

import (
	"errors"
	"path/filepath"
	"strings"
)

// MaxNameLen is the longest single path element most filesystems accept.
const MaxNameLen = 255

var (
	ErrEmptyName     = errors.New("name is empty")
	ErrReservedName  = errors.New("name is reserved")
	ErrNameSeparator = errors.New("name contains a path separator")
	ErrNameTooLong   = errors.New("name is too long")
	ErrNameControl   = errors.New("name contains a control character")
)

// ValidName checks that name can be used as a single file name directly under
// some base directory without escaping it. reserved lists prefixes the caller
// keeps for its own files.
func ValidName(name string, reserved ...string) error {
	switch name {
	case "":
		return ErrEmptyName
	case ".", "..":
		return ErrReservedName
	}
	if len(name) > MaxNameLen {
		return ErrNameTooLong
	}
	if strings.ContainsAny(name, `/\`) {
		return ErrNameSeparator
	}
	for _, r := range name {
		if r < 0x20 || r == 0x7f {
			return ErrNameControl
		}
	}
	for _, prefix := range reserved {
		if strings.HasPrefix(name, prefix) {
			return ErrReservedName
		}
	}
	if filepath.Base(name) != name || filepath.VolumeName(name) != "" {
		return ErrNameSeparator
	}
	return nil
}

// HasPrefix checks a path has a prefix, making sure to respect path boundaries. So that /aa & /a does not match, but /a/a & /a does.
func HasPrefix(p, prefix string) bool {
	return p == prefix || strings.HasPrefix(p, filepath.Clean(prefix)+string(filepath.Separator))
}

// Within joins name onto base and reports whether the result is still strictly inside base.
func Within(base, name string) (string, bool) {
	joined := filepath.Join(base, name)
	if joined == filepath.Clean(base) {
		return joined, false
	}
	return joined, HasPrefix(joined, base)
}
