package main

import (
	"database/sql"
	"fmt"
	"log"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"

	"github.com/oksasatya/go-todo-api/config"
	"github.com/oksasatya/go-todo-api/pkg/helpers"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	dsn := cfg.PostgresDSN()
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		log.Fatalf("failed to open db: %v", err)
	}
	defer func() { _ = db.Close() }()

	email := "demo@example.com"
	password := "password123"
	name := "Demo User"
	hash, err := helpers.HashPassword(password)
	if err != nil {
		log.Fatalf("failed to hash password: %v", err)
	}

	var id string
	err = db.QueryRow(`
		INSERT INTO users (email, password_hash, name)
		VALUES ($1, $2, $3)
		ON CONFLICT (email) DO UPDATE SET name=EXCLUDED.name
		RETURNING id
	`, email, hash, name).Scan(&id)
	if err != nil {
		log.Fatalf("failed to seed user: %v", err)
	}
	fmt.Printf("seeded user: id=%s email=%s password=%s\n", id, email, password)

	todos := []struct {
		title       string
		description string
		completed   bool
	}{
		{"Buy milk", "2 liters, whole", false},
		{"Write weekly report", "", true},
		{"Book dentist appointment", "ask for a morning slot", false},
	}
	for _, t := range todos {
		if _, err := db.Exec(`
			INSERT INTO todos (title, description, completed, user_id)
			VALUES ($1, $2, $3, $4)
		`, t.title, t.description, t.completed, id); err != nil {
			log.Fatalf("failed to seed todo %q: %v", t.title, err)
		}
	}
	fmt.Printf("seeded %d todos for user %s\n", len(todos), id)
}
