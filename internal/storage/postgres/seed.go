package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"golang.org/x/crypto/bcrypt"

	"iturinews/internal/models"
)

func ptr(s string) *string { return &s }

// Seed populates the database with initial development data: the fixed
// category set and a bootstrap superadmin with a local password
// credential. No-op if users already exist.
func Seed(db *sql.DB) error {
	ctx := context.Background()
	store := NewStore(db)

	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM users").Scan(&count); err != nil {
		return fmt.Errorf("seed check users: %w", err)
	}
	if count > 0 {
		slog.Info("database already seeded, skipping")
		return nil
	}

	domains := []models.Domain{
		{Name: "Sport", Slug: "sport", Color: models.ColorEmerald},
		{Name: "Politique", Slug: "politique", Color: models.ColorRose},
		{Name: "Éducation", Slug: "education", Color: models.ColorIndigo},
		{Name: "Culture", Slug: "culture", Color: models.ColorPurple},
		{Name: "Économie", Slug: "economie", Color: models.ColorAmber},
		{Name: "Divers", Slug: "divers", Color: models.ColorSlate},
	}
	for _, d := range domains {
		if _, err := store.AddDomain(ctx, d); err != nil {
			return fmt.Errorf("seed domain %s: %w", d.Slug, err)
		}
	}

	// Bootstrap superadmin. They sign in with a local password until a
	// real identity provider is wired; the matching author row gives them
	// a byline so they can publish.
	hash, err := bcrypt.GenerateFromPassword([]byte("admin"), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("seed bcrypt: %w", err)
	}
	hashStr := string(hash)

	adminEmail := "admin@iturinews.local"
	if _, err := store.AddUser(ctx, models.User{
		Email:        adminEmail,
		Name:         "Admin",
		Role:         models.RoleSuperadmin,
		PasswordHash: &hashStr,
	}); err != nil {
		return fmt.Errorf("seed insert admin: %w", err)
	}
	if _, err := store.AddAuthor(ctx, models.Author{
		FullName: "Admin",
		Email:    ptr(adminEmail),
	}); err != nil {
		return fmt.Errorf("seed insert admin author: %w", err)
	}

	slog.Info("database seeded with default superadmin",
		"email", adminEmail,
		"password", "admin",
	)
	return nil
}
