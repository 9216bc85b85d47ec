package postgres

import (
	"context"
	"database/sql"

	domainErrors "github.com/freshdeli/console/internal/domain/errors"
	"github.com/freshdeli/console/internal/domain/operator"
	"github.com/freshdeli/console/internal/infrastructure/monitoring"
)

type OperatorRepository struct {
	db *sql.DB
}

func NewOperatorRepository(conn *Connection) *OperatorRepository {
	return &OperatorRepository{
		db: conn.GetDB(),
	}
}

func (r *OperatorRepository) GetOperator(ctx context.Context, username string) (*operator.Operator, error) {
	query := `
		SELECT username, password_digest, created_at
		FROM operators
		WHERE username = $1
	`

	var op operator.Operator
	row := monitoring.InstrumentQueryRow(ctx, r.db, "SELECT", "operators", query, username)
	if err := row.Scan(&op.Username, &op.PasswordDigest, &op.CreatedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, domainErrors.ErrOperatorNotFound
		}
		return nil, err
	}

	return &op, nil
}
