// Package partition stores opaque binary blobs ("partitions") as files
// directly under a single base directory, one file per identifier.
//
// Partitions are immutable once written: a write never replaces an existing
// file, and concurrent writers of the same identifier resolve to exactly one
// winner.
package partition

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"

	"go.bytecake.dev/pws/fileutil"
	"go.bytecake.dev/pws/multierr"
)

var (
	ErrInvalidBasePath = errors.New("invalid base path")
	ErrInvalidID       = errors.New("invalid partition id")
	ErrAlreadyExists   = errors.New("partition already exists")
	ErrNotFound        = errors.New("partition not found")
)

// files in the base dir with this prefix are in-flight writes, never partitions
const tmpPrefix = ".tmp-"

type Store struct {
	basePath string
}

func NewStore(basePath string) (*Store, error) {
	if basePath == "" {
		return nil, ErrInvalidBasePath
	}
	if err := os.MkdirAll(basePath, os.ModePerm); err != nil {
		return nil, fmt.Errorf("create base dir: %w", err)
	}
	stat, err := os.Stat(basePath)
	if err != nil {
		return nil, fmt.Errorf("stat base dir: %w", err)
	}
	if !stat.IsDir() {
		return nil, fmt.Errorf("%w: %q is not a directory", ErrInvalidBasePath, basePath)
	}
	return &Store{basePath: basePath}, nil
}

func (s *Store) BasePath() string { return s.basePath }

// Write stores the contents of r as partition id and returns the number of
// bytes written. It fails with ErrAlreadyExists if id is already stored, in
// which case the existing content is left untouched.
func (s *Store) Write(id string, r io.Reader) (int64, error) {
	absPath, err := s.path(id)
	if err != nil {
		return 0, err
	}
	if _, err := os.Lstat(absPath); err == nil {
		return 0, fmt.Errorf("%w: %q", ErrAlreadyExists, id)
	}

	tmpPath := filepath.Join(s.basePath, tmpPrefix+uuid.NewString())
	n, err := writeFile(tmpPath, r)
	if err != nil {
		var errs multierr.Err
		errs.Add(err)
		errs.Add(removeIfExists(tmpPath))
		return 0, errs.Err()
	}

	// linking fails if the target exists, so of two racing writers only one
	// gets to publish its file
	linkErr := os.Link(tmpPath, absPath)
	if err := removeIfExists(tmpPath); err != nil {
		log.Printf("error removing tmp partition file %q: %v", tmpPath, err)
	}
	if errors.Is(linkErr, fs.ErrExist) {
		return 0, fmt.Errorf("%w: %q", ErrAlreadyExists, id)
	}
	if linkErr != nil {
		return 0, fmt.Errorf("publish partition: %w", linkErr)
	}

	log.Printf("wrote partition %q (%s)", id, humanize.IBytes(uint64(n)))
	return n, nil
}

// Read opens partition id for reading. The caller must close the file.
func (s *Store) Read(id string) (*os.File, error) {
	absPath, err := s.path(id)
	if err != nil {
		return nil, err
	}
	file, err := os.Open(absPath)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %q", ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("open partition: %w", err)
	}
	stat, err := file.Stat()
	if err != nil {
		file.Close()
		return nil, fmt.Errorf("stat partition: %w", err)
	}
	if !stat.Mode().IsRegular() {
		file.Close()
		return nil, fmt.Errorf("%w: %q", ErrNotFound, id)
	}
	return file, nil
}

func (s *Store) Delete(id string) error {
	absPath, err := s.path(id)
	if err != nil {
		return err
	}
	// only regular files are partitions, same as Read and List
	stat, err := os.Lstat(absPath)
	if errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%w: %q", ErrNotFound, id)
	}
	if err != nil {
		return fmt.Errorf("stat partition: %w", err)
	}
	if !stat.Mode().IsRegular() {
		return fmt.Errorf("%w: %q", ErrNotFound, id)
	}
	err = os.Remove(absPath)
	if errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%w: %q", ErrNotFound, id)
	}
	if err != nil {
		return fmt.Errorf("remove partition: %w", err)
	}
	log.Printf("removed partition %q", id)
	return nil
}

// List returns the ids of all stored partitions, sorted.
func (s *Store) List() ([]string, error) {
	entries, err := os.ReadDir(s.basePath)
	if err != nil {
		return nil, fmt.Errorf("read base dir: %w", err)
	}
	var ids []string
	for _, entry := range entries {
		if !entry.Type().IsRegular() {
			continue
		}
		if strings.HasPrefix(entry.Name(), tmpPrefix) {
			continue
		}
		ids = append(ids, entry.Name())
	}
	sort.Strings(ids)
	return ids, nil
}

func (s *Store) path(id string) (string, error) {
	if err := fileutil.ValidName(id, tmpPrefix); err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidID, err)
	}
	absPath, ok := fileutil.Within(s.basePath, id)
	if !ok {
		return "", fmt.Errorf("%w: %q escapes the partition dir", ErrInvalidID, id)
	}
	return absPath, nil
}

func writeFile(path string, r io.Reader) (int64, error) {
	file, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return 0, fmt.Errorf("create tmp partition: %w", err)
	}
	n, err := io.Copy(file, r)
	if err != nil {
		file.Close()
		return 0, fmt.Errorf("copy partition: %w", err)
	}
	if err := file.Sync(); err != nil {
		file.Close()
		return 0, fmt.Errorf("sync partition: %w", err)
	}
	if err := file.Close(); err != nil {
		return 0, fmt.Errorf("close partition: %w", err)
	}
	return n, nil
}

func removeIfExists(path string) error {
	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}
