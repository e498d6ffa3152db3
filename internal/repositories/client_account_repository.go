package repositories

import (
	"context"

	"grounds-backend/internal/models"

	"github.com/jackc/pgx/v5/pgxpool"
)

type ClientAccountRepository struct {
	DB *pgxpool.Pool
}

func NewClientAccountRepository(db *pgxpool.Pool) *ClientAccountRepository {
	return &ClientAccountRepository{DB: db}
}

func (r *ClientAccountRepository) Create(ctx context.Context, c *models.ClientAccount) error {
	if !c.IsActive {
		c.IsActive = true // Default to active
	}
	return r.DB.QueryRow(ctx,
		`INSERT INTO client_accounts(name, email, phone, access_code, is_active)
         VALUES($1, $2, $3, $4, $5)
         RETURNING id, created_at, updated_at`,
		c.Name, c.Email, c.Phone, c.AccessCode, c.IsActive,
	).Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)
}

func (r *ClientAccountRepository) Get(ctx context.Context, id int) (*models.ClientAccount, error) {
	row := r.DB.QueryRow(ctx,
		`SELECT id, name, email, phone, access_code, is_active, created_at, updated_at
         FROM client_accounts WHERE id=$1`, id)

	var c models.ClientAccount
	err := row.Scan(&c.ID, &c.Name, &c.Email, &c.Phone, &c.AccessCode,
		&c.IsActive, &c.CreatedAt, &c.UpdatedAt)
	return &c, err
}

func (r *ClientAccountRepository) GetByEmail(ctx context.Context, email string) (*models.ClientAccount, error) {
	row := r.DB.QueryRow(ctx,
		`SELECT id, name, email, phone, access_code, is_active, created_at, updated_at
         FROM client_accounts WHERE email=$1`, email)

	var c models.ClientAccount
	err := row.Scan(&c.ID, &c.Name, &c.Email, &c.Phone, &c.AccessCode,
		&c.IsActive, &c.CreatedAt, &c.UpdatedAt)
	return &c, err
}

// List returns all client accounts
func (r *ClientAccountRepository) List(ctx context.Context) ([]*models.ClientAccount, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT id, name, email, phone, access_code, is_active, created_at, updated_at
         FROM client_accounts ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var clients []*models.ClientAccount
	for rows.Next() {
		var c models.ClientAccount
		err := rows.Scan(&c.ID, &c.Name, &c.Email, &c.Phone, &c.AccessCode,
			&c.IsActive, &c.CreatedAt, &c.UpdatedAt)
		if err != nil {
			return nil, err
		}
		clients = append(clients, &c)
	}
	return clients, nil
}

// Update updates an existing client account, leaving the access code alone
func (r *ClientAccountRepository) Update(ctx context.Context, c *models.ClientAccount) error {
	_, err := r.DB.Exec(ctx,
		`UPDATE client_accounts SET name=$1, email=$2, phone=$3, is_active=$4,
		     updated_at=CURRENT_TIMESTAMP
         WHERE id=$5`,
		c.Name, c.Email, c.Phone, c.IsActive, c.ID)
	return err
}

// RotateAccessCode replaces the portal access code
func (r *ClientAccountRepository) RotateAccessCode(ctx context.Context, id int, hashedCode string) error {
	_, err := r.DB.Exec(ctx,
		`UPDATE client_accounts SET access_code=$1, updated_at=CURRENT_TIMESTAMP WHERE id=$2`,
		hashedCode, id)
	return err
}

// Delete removes a client account. Their projects survive with client_id NULL.
func (r *ClientAccountRepository) Delete(ctx context.Context, id int) error {
	_, err := r.DB.Exec(ctx, `DELETE FROM client_accounts WHERE id=$1`, id)
	return err
}
