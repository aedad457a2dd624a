package paths

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const (
	dataDirName       = ".pws-restapi-server"
	dbFileName        = "main_v1.db"
	partitionsDirName = "partitions"
)

// Layout is the on-disk layout of the server's persisted state.
type Layout struct {
	Root       string
	DB         string
	Partitions string
}

// DefaultRoot is the per-user data directory, eg. ~/.pws-restapi-server
func DefaultRoot() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("find home dir: %w", err)
	}
	return filepath.Join(home, dataDirName), nil
}

// New derives a layout from root. db and partitions override the derived
// locations when non empty.
func New(root, db, partitions string) Layout {
	root = Expand(root)
	l := Layout{
		Root:       root,
		DB:         filepath.Join(root, dbFileName),
		Partitions: filepath.Join(root, partitionsDirName),
	}
	if db != "" {
		l.DB = Expand(db)
	}
	if partitions != "" {
		l.Partitions = Expand(partitions)
	}
	return l
}

// Ensure creates the directories the layout needs.
func (l Layout) Ensure() error {
	for _, dir := range []string{l.Root, filepath.Dir(l.DB), l.Partitions} {
		if err := os.MkdirAll(dir, os.ModePerm); err != nil {
			return fmt.Errorf("create %q: %w", dir, err)
		}
	}
	return nil
}

func (l Layout) String() string {
	return fmt.Sprintf("db %s, partitions %s", l.DB, l.Partitions)
}

// Expand replaces a leading ~ with the user's home dir and cleans the result.
func Expand(path string) string {
	path = strings.TrimSpace(path)
	if path == "" {
		return ""
	}
	if path == "~" || strings.HasPrefix(path, "~"+string(filepath.Separator)) {
		if home, err := os.UserHomeDir(); err == nil {
			path = filepath.Join(home, strings.TrimPrefix(path, "~"))
		}
	}
	return filepath.Clean(path)
}
