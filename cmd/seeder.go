package cmd

import (
	"fmt"
	"log"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"
	gormPostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the database with sample data",
	Long:  `Seed the database with sample data for development and testing purposes.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig(".")
		if err != nil {
			log.Fatalf("failed to load config: %v", err)
		}

		sqlxDB, err := initDB(cfg.Database)
		if err != nil {
			log.Fatalf("failed to init db: %v", err)
		}

		db, err := gorm.Open(gormPostgres.New(gormPostgres.Config{Conn: sqlxDB.DB}), &gorm.Config{})
		if err != nil {
			log.Fatalf("failed to init orm: %v", err)
		}

		if clearData {
			for _, table := range []string{"expense_split_details", "expenses", "event_participants", "events", "users"} {
				if err := db.Exec("DELETE FROM " + table).Error; err != nil {
					log.Fatalf("failed to clear %s: %v", table, err)
				}
			}
			fmt.Println("Cleared existing data")
		}

		password := "password"
		hash, _ := bcrypt.GenerateFromPassword([]byte(password), cfg.Security.BCryptCost)

		aliceID := seedUser(db, "alice@mail.com", "Alice", string(hash))
		seedUser(db, "bob@mail.com", "Bob", string(hash))

		eventID := uuid.NewString()
		if err := db.Exec(
			"INSERT INTO events (id, name, description, organizer_id, currency, created_at, updated_at) VALUES (?, ?, ?, ?, ?, now(), now())",
			eventID, "Weekend Trip", "Sample event for development", aliceID, "EUR",
		).Error; err != nil {
			log.Fatalf("failed to insert event: %v", err)
		}
		fmt.Println("Seeded event:", eventID)

		participants := []struct {
			ID   string
			Name string
		}{
			{aliceID, "Alice"},
			{uuid.NewString(), "Bob"},
			{uuid.NewString(), "Charlie"},
		}
		for _, p := range participants {
			if err := db.Exec(
				"INSERT INTO event_participants (id, event_id, display_name, created_at) VALUES (?, ?, ?, now())",
				p.ID, eventID, p.Name,
			).Error; err != nil {
				log.Fatalf("failed to insert participant %s: %v", p.Name, err)
			}
		}
		fmt.Println("Seeded participants:", len(participants))

		expenseID := uuid.NewString()
		if err := db.Exec(
			"INSERT INTO expenses (id, event_id, description, amount, currency, paid_by, split_method, approval_status, submitted_at, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?, ?, ?, now(), now(), now())",
			expenseID, eventID, "Groceries", 120.0, "EUR", participants[0].ID, "equal", "pending",
		).Error; err != nil {
			log.Fatalf("failed to insert expense: %v", err)
		}
		for i, p := range participants {
			if err := db.Exec(
				"INSERT INTO expense_split_details (expense_id, participant_id, position) VALUES (?, ?, ?)",
				expenseID, p.ID, i,
			).Error; err != nil {
				log.Fatalf("failed to insert split detail: %v", err)
			}
		}
		fmt.Println("Seeded expense:", expenseID)
	},
}

func seedUser(db *gorm.DB, email, name, hash string) string {
	var existingID string
	row := db.Raw("SELECT id FROM users WHERE email = ?", email).Row()
	if err := row.Scan(&existingID); err == nil {
		fmt.Println("user already exists:", email)
		return existingID
	}

	id := uuid.NewString()
	if err := db.Exec(
		"INSERT INTO users (id, email, name, password_hash, is_active, created_at, updated_at) VALUES (?, ?, ?, ?, true, now(), now())",
		id, email, name, hash,
	).Error; err != nil {
		log.Fatalf("failed to insert user %s: %v", email, err)
	}
	fmt.Println("Seeded user:", email)
	return id
}
