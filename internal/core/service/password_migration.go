package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/stargazers/stargazing-api/internal/core/domain"
	"github.com/stargazers/stargazing-api/internal/core/ports"
)

// MigrationReport summarises a password migration run.
type MigrationReport struct {
	Scanned  int
	Migrated int
	Skipped  int
}

// PasswordMigrator rewrites legacy plaintext passwords as hashes so that login
// only ever compares against hashes.
type PasswordMigrator struct {
	users  ports.UserRepository
	hasher ports.PasswordHasher
	log    zerolog.Logger
}

func NewPasswordMigrator(users ports.UserRepository, hasher ports.PasswordHasher, log zerolog.Logger) *PasswordMigrator {
	return &PasswordMigrator{users: users, hasher: hasher, log: log}
}

// Run hashes every stored password that is not already a hash. With dryRun
// set it only counts. Records with an empty password are skipped.
func (m *PasswordMigrator) Run(ctx context.Context, dryRun bool) (MigrationReport, error) {
	var report MigrationReport

	users, err := m.users.List(ctx)
	if err != nil {
		return report, fmt.Errorf("list users: %w", err)
	}

	for _, u := range users {
		report.Scanned++
		if m.hasher.IsHash(u.PasswordHash) {
			continue
		}
		if u.PasswordHash == "" {
			m.log.Warn().Str("email", u.Email).Msg("user has no password, skipping")
			report.Skipped++
			continue
		}
		if dryRun {
			report.Migrated++
			continue
		}

		hash, err := m.hasher.Hash(u.PasswordHash)
		if err != nil {
			return report, fmt.Errorf("hash password for %s: %w", u.Email, err)
		}
		if _, err := m.users.Update(ctx, u.Email, domain.UserPatch{PasswordHash: &hash}); err != nil {
			return report, fmt.Errorf("update %s: %w", u.Email, err)
		}
		report.Migrated++
		m.log.Info().Str("email", u.Email).Msg("password migrated")
	}
	return report, nil
}
