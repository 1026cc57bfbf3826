package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jask/userdesk/internal/database/repository"
	"github.com/jask/userdesk/internal/testdata"
	"github.com/jask/userdesk/internal/users"
)

var demoUsers = []users.Payload{
	{Username: "alice", Email: "alice@example.com", Password: "wonderland", FullName: "Alice Liddell", DOB: "1990-05-04", Phone: "555-0101", Address: "1 Rabbit Hole"},
	{Username: "bob", Email: "bob@example.com", Password: "builder99", FullName: "Bob Stone", Phone: "555-0102"},
	{Username: "carol", Email: "carol@corp.io", Password: "carol-pass", FullName: "Carol Danvers", DOB: "1985-03-15"},
	{Username: "dave", Email: "dave@corp.io", Password: "dave-pass", FullName: "Dave Lister", Address: "Red Dwarf"},
	{Username: "erin", Email: "erin@example.org", Password: "erin-pass", FullName: "Erin Hunt", Phone: "555-0105"},
	{Username: "frank", Email: "frank@example.org", Password: "frank-pass", FullName: "Frank Poole"},
}

// SeedDemoUsers fills an empty users table with a handful of records plus
// extra generated ones. It is idempotent and safe to run on every startup.
// The inserts share one transaction, so a failed seed leaves the table empty.
func SeedDemoUsers(ctx context.Context, db *sql.DB, extra int) error {
	rows := append(append([]users.Payload{}, demoUsers...), testdata.Users(extra, 1)...)
	return WithTx(ctx, db, func(tx *sql.Tx) error {
		repo := repository.NewUserRepo(tx)
		n, err := repo.Count(ctx)
		if err != nil || n > 0 {
			return err
		}
		for _, p := range rows {
			if _, err := repo.Create(ctx, p); err != nil {
				return fmt.Errorf("seed %s: %w", p.Username, err)
			}
		}
		return nil
	})
}
