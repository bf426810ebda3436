package main

import (
	"database/sql"
	"fmt"
	"log"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"

	"github.com/taskcamp/taskcamp/config"
	"github.com/taskcamp/taskcamp/pkg/helpers"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := sql.Open("pgx", cfg.PostgresDSN())
	if err != nil {
		log.Fatalf("failed to open db: %v", err)
	}
	defer func() { _ = db.Close() }()

	adminEmail := "admin@taskcamp.local"
	adminPassword := "changeme123"
	hash, err := helpers.HashPassword(adminPassword)
	if err != nil {
		log.Fatalf("failed to hash password: %v", err)
	}

	var adminID string
	err = db.QueryRow(`
		INSERT INTO accounts (email, handle, name, password_hash, role, email_verified)
		VALUES ($1, $2, $3, $4, 'admin', TRUE)
		ON CONFLICT (email) DO UPDATE SET name = EXCLUDED.name
		RETURNING id
	`, adminEmail, "admin", "Administrator", hash).Scan(&adminID)
	if err != nil {
		log.Fatalf("failed to seed admin account: %v", err)
	}
	fmt.Printf("seeded admin: id=%s email=%s password=%s\n", adminID, adminEmail, adminPassword)

	demoEmail := "demo@taskcamp.local"
	demoHash, err := helpers.HashPassword("password123")
	if err != nil {
		log.Fatalf("failed to hash password: %v", err)
	}
	var demoID string
	err = db.QueryRow(`
		INSERT INTO accounts (email, handle, name, password_hash, email_verified)
		VALUES ($1, $2, $3, $4, TRUE)
		ON CONFLICT (email) DO UPDATE SET name = EXCLUDED.name
		RETURNING id
	`, demoEmail, "demo", "Demo User", demoHash).Scan(&demoID)
	if err != nil {
		log.Fatalf("failed to seed demo account: %v", err)
	}
	fmt.Printf("seeded demo: id=%s email=%s password=password123\n", demoID, demoEmail)

	var projectID string
	err = db.QueryRow(`
		INSERT INTO projects (name, description, created_by, status, priority)
		VALUES ('Getting Started', 'Sample project seeded for local development', $1, 'in_progress', 'medium')
		ON CONFLICT (name) DO UPDATE SET updated_at = now()
		RETURNING id
	`, adminID).Scan(&projectID)
	if err != nil {
		log.Fatalf("failed to seed project: %v", err)
	}
	if _, err := db.Exec(`
		INSERT INTO project_members (project_id, account_id, role)
		VALUES ($1, $2, 'owner'), ($1, $3, 'member')
		ON CONFLICT (project_id, account_id) DO NOTHING
	`, projectID, adminID, demoID); err != nil {
		log.Fatalf("failed to seed memberships: %v", err)
	}
	fmt.Printf("seeded project: id=%s owner=%s member=%s\n", projectID, adminID, demoID)
}
