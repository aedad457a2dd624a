//nolint:thelper
package mockfs

import (
	"path/filepath"
	"testing"

	_ "github.com/jinzhu/gorm/dialects/sqlite"

	"go.bytecake.dev/pws/db"
	"go.bytecake.dev/pws/partition"
)

// MockFS is a migrated in-memory catalog and an empty partition store in a
// temp dir, both torn down with the test.
type MockFS struct {
	db         *db.DB
	partitions *partition.Store
}

func New(tb testing.TB) *MockFS {
	tb.Helper()

	dbc, err := db.NewMock()
	if err != nil {
		tb.Fatalf("create db: %v", err)
	}
	tb.Cleanup(func() {
		if err := dbc.Close(); err != nil {
			tb.Fatalf("close db: %v", err)
		}
	})

	if err := dbc.Migrate(); err != nil {
		tb.Fatalf("migrate db: %v", err)
	}
	dbc.LogMode(false)

	tmpDir := tb.TempDir()
	partitions, err := partition.NewStore(filepath.Join(tmpDir, "partitions"))
	if err != nil {
		tb.Fatalf("create partition store: %v", err)
	}

	return &MockFS{
		db:         dbc,
		partitions: partitions,
	}
}

func (m *MockFS) DB() *db.DB                     { return m.db }
func (m *MockFS) Partitions() *partition.Store   { return m.partitions }
func (m *MockFS) PartitionPath(id string) string { return filepath.Join(m.partitions.BasePath(), id) }
