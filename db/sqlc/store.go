package db

import (
	"context"
	"database/sql"
	"fmt"
)

type Store struct {
	*Queries
	DB *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		DB:      db,
		Queries: New(db),
	}
}

func (s *Store) ExecTx(ctx context.Context, fq func(q *Queries) error) error {
	// initialize transaction
	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	q := New(tx)
	err = fq(q)

	if err != nil {
		if txErr := tx.Rollback(); txErr != nil {
			return fmt.Errorf("encountered rollback error: %v (tx error: %v)", txErr, err)
		}
		return err
	}

	return tx.Commit()
}
