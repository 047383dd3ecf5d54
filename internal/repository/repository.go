package repository

import (
	"database/sql"
	"fmt"
	"time"

	"financial-hub/internal/models"
)

// Repository provides database operations
type Repository struct {
	db *sql.DB
}

// NewRepository initializes a new repository
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// Ping checks database connectivity
func (r *Repository) Ping() error {
	return r.db.Ping()
}

// CreateUser creates a new user in the database
func (r *Repository) CreateUser(user *models.User) error {
	user.CreatedAt = time.Now()
	query := `
		INSERT INTO users (name, email, created_at)
		VALUES ($1, $2, $3)
		RETURNING id`
	err := r.db.QueryRow(query, user.Name, user.Email, user.CreatedAt).Scan(&user.ID)
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// FindUserByEmail retrieves a user by email
func (r *Repository) FindUserByEmail(email string) (*models.User, error) {
	user := &models.User{}
	query := `
		SELECT id, name, email, created_at
		FROM users
		WHERE email = $1`
	err := r.db.QueryRow(query, email).
		Scan(&user.ID, &user.Name, &user.Email, &user.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return user, nil
}

// FindUserByID retrieves a user by id
func (r *Repository) FindUserByID(id int64) (*models.User, error) {
	user := &models.User{}
	query := `
		SELECT id, name, email, created_at
		FROM users
		WHERE id = $1`
	err := r.db.QueryRow(query, id).
		Scan(&user.ID, &user.Name, &user.Email, &user.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return user, nil
}

// SaveConversation persists a message/response pair
func (r *Repository) SaveConversation(userID int64, message, response string) error {
	query := `
		INSERT INTO conversations (user_id, message, response, created_at)
		VALUES ($1, $2, $3, $4)`
	if _, err := r.db.Exec(query, userID, message, response, time.Now()); err != nil {
		return fmt.Errorf("failed to save conversation: %w", err)
	}
	return nil
}

// ListConversations returns the most recent message/response pairs for a user
func (r *Repository) ListConversations(userID int64, limit int) ([]models.Conversation, error) {
	query := `
		SELECT id, user_id, message, response, created_at
		FROM conversations
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2`
	rows, err := r.db.Query(query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list conversations: %w", err)
	}
	defer rows.Close()

	conversations := make([]models.Conversation, 0)
	for rows.Next() {
		var c models.Conversation
		if err := rows.Scan(&c.ID, &c.UserID, &c.Message, &c.Response, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan conversation: %w", err)
		}
		conversations = append(conversations, c)
	}
	return conversations, rows.Err()
}

// SaveBudgetPlan persists an AI-generated plan
func (r *Repository) SaveBudgetPlan(userID int64, planType, planData string) error {
	query := `
		INSERT INTO budget_plans (user_id, plan_type, plan_data, created_at)
		VALUES ($1, $2, $3, $4)`
	if _, err := r.db.Exec(query, userID, planType, planData, time.Now()); err != nil {
		return fmt.Errorf("failed to save budget plan: %w", err)
	}
	return nil
}
