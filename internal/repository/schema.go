package repository

import (
	"database/sql"
	"fmt"
)

// Schema creates the tables if they do not exist. Date-like columns are
// stored as text (YYYY-MM-DD) to match the values the interpreter and
// forms produce.
const Schema = `
	CREATE TABLE IF NOT EXISTS users (
		id SERIAL PRIMARY KEY,
		name VARCHAR(255) NOT NULL,
		email VARCHAR(255) UNIQUE,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS income (
		id SERIAL PRIMARY KEY,
		user_id INTEGER NOT NULL REFERENCES users(id),
		amount DECIMAL(10,2) NOT NULL,
		source VARCHAR(255) NOT NULL,
		frequency VARCHAR(20) NOT NULL,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS expenses (
		id SERIAL PRIMARY KEY,
		user_id INTEGER NOT NULL REFERENCES users(id),
		amount DECIMAL(10,2) NOT NULL,
		category VARCHAR(100) NOT NULL,
		description TEXT,
		date VARCHAR(10) NOT NULL,
		recurring BOOLEAN DEFAULT FALSE,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS debts (
		id SERIAL PRIMARY KEY,
		user_id INTEGER NOT NULL REFERENCES users(id),
		name VARCHAR(255) NOT NULL,
		balance DECIMAL(10,2) NOT NULL,
		interest_rate DECIMAL(5,2) DEFAULT 0,
		minimum_payment DECIMAL(10,2) NOT NULL,
		due_date INTEGER DEFAULT 1,
		type VARCHAR(50),
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS savings_goals (
		id SERIAL PRIMARY KEY,
		user_id INTEGER NOT NULL REFERENCES users(id),
		name VARCHAR(255) NOT NULL,
		target_amount DECIMAL(10,2) NOT NULL,
		current_amount DECIMAL(10,2) DEFAULT 0,
		target_date VARCHAR(10),
		monthly_contribution DECIMAL(10,2) DEFAULT 0,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS bills (
		id SERIAL PRIMARY KEY,
		user_id INTEGER NOT NULL REFERENCES users(id),
		name VARCHAR(255) NOT NULL,
		amount DECIMAL(10,2) NOT NULL,
		due_date INTEGER NOT NULL,
		frequency VARCHAR(20) NOT NULL,
		category VARCHAR(100),
		auto_pay BOOLEAN DEFAULT FALSE,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS budget_plans (
		id SERIAL PRIMARY KEY,
		user_id INTEGER NOT NULL REFERENCES users(id),
		plan_type VARCHAR(50) NOT NULL,
		plan_data TEXT NOT NULL,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS conversations (
		id SERIAL PRIMARY KEY,
		user_id INTEGER NOT NULL REFERENCES users(id),
		message TEXT NOT NULL,
		response TEXT NOT NULL,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);
`

// Migrate applies the schema
func Migrate(db *sql.DB) error {
	if _, err := db.Exec(Schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}
