package cmd

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"
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

		_, db, err := initDB(cfg.Database)
		if err != nil {
			log.Fatalf("failed to init db: %v", err)
		}

		if clearData {
			for _, table := range []string{"receipts", "requests", "approval_rules", "users", "currencies"} {
				if err := db.Exec("DELETE FROM " + table).Error; err != nil {
					log.Fatalf("failed to clear table %s: %v", table, err)
				}
			}
			fmt.Println("Cleared existing data")
		}

		password := "password"
		hash, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)

		sampleUsers := []struct {
			Email string
			Name  string
			Role  string
		}{
			{"admin@mail.com", "Ayu Admin", "admin"},
			{"budi@mail.com", "Budi Approver", "approver"},
			{"citra@mail.com", "Citra Cashier", "cashier"},
			{"dimas@mail.com", "Dimas Requester", "user"},
		}

		for _, u := range sampleUsers {
			var exists int
			row := db.Raw("SELECT 1 FROM users WHERE email = ?", u.Email).Row()
			if err := row.Scan(&exists); err == nil {
				fmt.Printf("user %s already exists, skipping\n", u.Email)
				continue
			}

			if err := db.Exec(
				"INSERT INTO users (email, name, password_hash, role, is_active, created_at, updated_at) VALUES (?, ?, ?, ?, true, now(), now())",
				u.Email, u.Name, string(hash), u.Role,
			).Error; err != nil {
				log.Fatalf("failed to insert user %s: %v", u.Email, err)
			}
			fmt.Printf("Seeded user: %s (%s)\n", u.Email, u.Role)
		}

		var approverID int64
		if err := db.Raw("SELECT id FROM users WHERE email = ?", "budi@mail.com").Row().Scan(&approverID); err != nil {
			log.Fatalf("failed to lookup approver id: %v", err)
		}
		var adminID int64
		if err := db.Raw("SELECT id FROM users WHERE email = ?", "admin@mail.com").Row().Scan(&adminID); err != nil {
			log.Fatalf("failed to lookup admin id: %v", err)
		}

		sampleRules := []struct {
			ApproverID int64
			Threshold  float64
			ApproveAll bool
		}{
			{approverID, 500000, false},
			{adminID, 0, true},
		}

		for _, r := range sampleRules {
			var exists int
			row := db.Raw("SELECT 1 FROM approval_rules WHERE approver_id = ? AND approve_all = ?", r.ApproverID, r.ApproveAll).Row()
			if err := row.Scan(&exists); err == nil {
				continue
			}

			if err := db.Exec(
				"INSERT INTO approval_rules (approver_id, amount_threshold, approve_all, is_active, created_at, updated_at) VALUES (?, ?, ?, true, now(), now())",
				r.ApproverID, r.Threshold, r.ApproveAll,
			).Error; err != nil {
				log.Fatalf("failed to insert approval rule: %v", err)
			}
			fmt.Printf("Seeded approval rule for user %d (approve_all=%v)\n", r.ApproverID, r.ApproveAll)
		}

		currencies := []struct {
			Name      string
			Code      string
			Rate      float64
			IsDefault bool
		}{
			{"Indonesian Rupiah", "IDR", 1, true},
			{"US Dollar", "USD", 15500, false},
			{"Singapore Dollar", "SGD", 11500, false},
		}

		for _, c := range currencies {
			var exists int
			row := db.Raw("SELECT 1 FROM currencies WHERE code = ?", c.Code).Row()
			if err := row.Scan(&exists); err == nil {
				continue
			}

			if err := db.Exec(
				"INSERT INTO currencies (name, code, exchange_rate, is_default, created_at, updated_at) VALUES (?, ?, ?, ?, now(), now())",
				c.Name, c.Code, c.Rate, c.IsDefault,
			).Error; err != nil {
				log.Fatalf("failed to insert currency %s: %v", c.Code, err)
			}
			fmt.Printf("Seeded currency: %s\n", c.Code)
		}

		fmt.Println("Database seeded successfully")
	},
}
