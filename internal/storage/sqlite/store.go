// ABOUTME: SQLite-backed implementation of the storage.VectorStore contract
// ABOUTME: Holds partition scoping, dimension validation, and error mapping
package sqlite

import (
	"fmt"
	"strings"

	"github.com/harper/profilesearch/internal/storage"
)

// Store implements storage.VectorStore over a SQLite database. All
// operations are scoped to the partition given at construction.
type Store struct {
	db        *DB
	partition string
	dimension int
}

// NewStore creates a partition-scoped store. dimension is the expected
// embedding vector length; 0 disables validation (tests use small vectors).
func NewStore(db *DB, partition string, dimension int) (*Store, error) {
	if partition == "" {
		return nil, fmt.Errorf("partition name is required")
	}
	return &Store{
		db:        db,
		partition: partition,
		dimension: dimension,
	}, nil
}

// Partition returns the partition this store is scoped to
func (s *Store) Partition() string {
	return s.partition
}

// Close closes the underlying database
func (s *Store) Close() error {
	return s.db.Close()
}

// mapConstraintErr translates SQLite constraint failures into the
// storage error taxonomy
func mapConstraintErr(err error) error {
	if err == nil {
		return nil
	}
	msg := err.Error()
	if strings.Contains(msg, "UNIQUE constraint failed") || strings.Contains(msg, "PRIMARY KEY constraint failed") {
		return fmt.Errorf("%w: %v", storage.ErrDuplicateKey, err)
	}
	if strings.Contains(msg, "FOREIGN KEY constraint failed") {
		return fmt.Errorf("%w: %v", storage.ErrForeignKey, err)
	}
	return err
}
