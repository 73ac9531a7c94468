package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"golang.org/x/crypto/bcrypt"
)

func main() {
	godotenv.Load()
	dbURL := os.Getenv("POSTGRES_URL")
	if dbURL == "" {
		log.Fatal("POSTGRES_URL is required")
	}

	db, err := sqlx.Connect("postgres", dbURL)
	if err != nil {
		log.Fatalf("failed to connect to db: %v", err)
	}
	defer db.Close()

	ctx := context.Background()

	// 1. Demo user (password: demo12345)
	hash, err := bcrypt.GenerateFromPassword([]byte("demo12345"), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("hash password: %v", err)
	}

	var userID string
	err = db.GetContext(ctx, &userID, `
		INSERT INTO users (name, email, password_hash)
		VALUES ($1, $2, $3)
		ON CONFLICT (email) DO UPDATE SET name = EXCLUDED.name
		RETURNING id`,
		"Demo User", "demo@papertrade.dev", string(hash))
	if err != nil {
		log.Fatalf("could not insert demo user: %v", err)
	}
	fmt.Printf("Demo user: demo@papertrade.dev / demo12345 (id %s)\n", userID)

	// 2. Recent price ticks so quotes are served fresh
	prices := map[string]string{
		"RELIANCE":  "2400.50",
		"TCS":       "3500.75",
		"HDFCBANK":  "1600.25",
		"INFY":      "1400.00",
		"ICICIBANK": "1000.40",
	}
	for sym, p := range prices {
		_, err := db.ExecContext(ctx, `
			INSERT INTO price_history (symbol, price, change_percent, volume, timestamp)
			VALUES ($1, $2::numeric, 0.85, 250000, now())`, sym, p)
		if err != nil {
			fmt.Printf("Warning: could not insert price for %s: %v\n", sym, err)
		}
	}

	// 3. One settled buy so the portfolio has something in it:
	// 10 RELIANCE at 2400.50 off the 100000 starting balance.
	txID := uuid.NewString()
	_, err = db.ExecContext(ctx, `
		INSERT INTO transactions (id, user_id, symbol, side, quantity, price, total_value, balance_after)
		VALUES ($1, $2, 'RELIANCE', 'buy', 10, 2400.50::numeric, 24005.00::numeric, 75995.00::numeric)`,
		txID, userID)
	if err != nil {
		fmt.Printf("Warning: could not insert transaction: %v\n", err)
	}

	_, err = db.ExecContext(ctx, `
		INSERT INTO holdings (user_id, symbol, name, quantity, avg_price, current_price)
		VALUES ($1, 'RELIANCE', 'Reliance Industries', 10, 2400.50::numeric, 2400.50::numeric)
		ON CONFLICT (user_id, symbol) DO UPDATE SET
			quantity = EXCLUDED.quantity, avg_price = EXCLUDED.avg_price, last_updated = now()`,
		userID)
	if err != nil {
		fmt.Printf("Warning: could not insert holding: %v\n", err)
	}

	_, err = db.ExecContext(ctx, `UPDATE users SET wallet_balance = 75995.00::numeric WHERE id = $1`, userID)
	if err != nil {
		fmt.Printf("Warning: could not sync wallet balance: %v\n", err)
	}

	fmt.Println("Seed complete.")
}
