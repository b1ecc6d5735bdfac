package database

import (
	"context"
	"fmt"
	"strings"

	"github.com/Nebulazer123/moneymap/internal/models"
)

// createTransactionsTable matches the CSV/JSON export schema so an
// imported table round-trips without loss.
const createTransactionsTable = `
CREATE TABLE IF NOT EXISTS transactions (
	id               VARCHAR(16)   NOT NULL PRIMARY KEY,
	date             DATE          NOT NULL,
	amount           DECIMAL(12,2) NOT NULL,
	description      VARCHAR(255)  NOT NULL,
	merchant         VARCHAR(128)  NOT NULL,
	category         VARCHAR(64)   NOT NULL,
	kind             VARCHAR(32)   NOT NULL,
	account          VARCHAR(128)  NOT NULL,
	recurring        TINYINT(1)    NOT NULL DEFAULT 0,
	subscription     TINYINT(1)    NOT NULL DEFAULT 0,
	suspicious       TINYINT(1)    NOT NULL DEFAULT 0,
	suspicious_type  VARCHAR(16)   NOT NULL DEFAULT '',
	suspicion_reason TEXT          NOT NULL,
	parent_id        VARCHAR(16)   NOT NULL DEFAULT '',
	INDEX idx_merchant_date (merchant, date),
	INDEX idx_suspicious (suspicious)
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`

const transactionColumns = 14

// CreateSchema creates the transactions table if it does not exist
func (p *Pool) CreateSchema(ctx context.Context) error {
	if _, err := p.ExecContext(ctx, createTransactionsTable); err != nil {
		return fmt.Errorf("failed to create transactions table: %w", err)
	}
	return nil
}

// InsertTransactions bulk-inserts transactions in batches of batchSize
// rows per statement. Re-importing the same dataset replaces rows by ID
// instead of failing.
func (p *Pool) InsertTransactions(ctx context.Context, txns []models.Transaction, batchSize int) (int, error) {
	if batchSize < 1 {
		batchSize = 1
	}

	inserted := 0
	for start := 0; start < len(txns); start += batchSize {
		end := start + batchSize
		if end > len(txns) {
			end = len(txns)
		}
		batch := txns[start:end]

		query, args := buildInsert(batch)
		if _, err := p.ExecContext(ctx, query, args...); err != nil {
			return inserted, fmt.Errorf("failed to insert batch at row %d: %w", start, err)
		}
		inserted += len(batch)
	}
	return inserted, nil
}

func buildInsert(batch []models.Transaction) (string, []interface{}) {
	var sb strings.Builder
	sb.WriteString(`INSERT INTO transactions
		(id, date, amount, description, merchant, category, kind, account,
		 recurring, subscription, suspicious, suspicious_type, suspicion_reason, parent_id)
		VALUES `)

	placeholder := "(" + strings.TrimSuffix(strings.Repeat("?,", transactionColumns), ",") + ")"
	args := make([]interface{}, 0, len(batch)*transactionColumns)
	for i := range batch {
		if i > 0 {
			sb.WriteString(",")
		}
		sb.WriteString(placeholder)

		t := &batch[i]
		args = append(args,
			t.ID, t.Date, t.Amount, t.Description, t.Merchant, t.Category,
			string(t.Kind), t.Account, t.Recurring, t.Subscription,
			t.Suspicious, string(t.SuspiciousType), t.SuspicionReason, t.ParentID,
		)
	}

	sb.WriteString(` ON DUPLICATE KEY UPDATE
		amount = VALUES(amount),
		suspicious = VALUES(suspicious),
		suspicious_type = VALUES(suspicious_type),
		suspicion_reason = VALUES(suspicion_reason),
		parent_id = VALUES(parent_id)`)

	return sb.String(), args
}

// CountTransactions returns the number of rows in the transactions table
func (p *Pool) CountTransactions(ctx context.Context) (int64, error) {
	var count int64
	err := p.QueryRowContext(ctx, "SELECT COUNT(*) FROM transactions").Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count transactions: %w", err)
	}
	return count, nil
}
