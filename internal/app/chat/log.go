package chat

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Talibis/jug-classic/internal/pkg/errs"
)

// MessageLog is the append-only persisted record of chat messages.
type MessageLog interface {
	// Insert appends the message and returns it with its assigned ID.
	Insert(ctx context.Context, msg Message) (Message, error)

	// RecentByLocation returns up to limit messages for the location,
	// newest first (timestamp descending, ties by ID descending).
	RecentByLocation(ctx context.Context, locationID int64, limit int) ([]Message, error)
}

// PgMessageLog is the PostgreSQL-backed implementation of MessageLog.
type PgMessageLog struct {
	pool *pgxpool.Pool
}

// NewPgMessageLog builds a PgMessageLog over the given connection pool.
func NewPgMessageLog(pool *pgxpool.Pool) *PgMessageLog {
	return &PgMessageLog{pool: pool}
}

// Insert implements MessageLog.
func (l *PgMessageLog) Insert(ctx context.Context, msg Message) (Message, error) {
	err := l.pool.QueryRow(ctx,
		`INSERT INTO chat_messages (type, location_id, sender_id, content, timestamp)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id`,
		msg.Type, msg.LocationID, msg.SenderID, msg.Content, msg.Timestamp,
	).Scan(&msg.ID)

	if err != nil {
		return Message{}, errs.Internal(err)
	}

	return msg, nil
}

// RecentByLocation implements MessageLog.
func (l *PgMessageLog) RecentByLocation(ctx context.Context, locationID int64, limit int) ([]Message, error) {
	rows, err := l.pool.Query(ctx,
		`SELECT id, type, location_id, sender_id, content, timestamp
		 FROM chat_messages
		 WHERE location_id = $1
		 ORDER BY timestamp DESC, id DESC
		 LIMIT $2`,
		locationID, limit)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, errs.Internal(err)
	}
	defer rows.Close()

	var messages []Message
	for rows.Next() {
		var m Message
		if err := rows.Scan(&m.ID, &m.Type, &m.LocationID, &m.SenderID, &m.Content, &m.Timestamp); err != nil {
			return nil, errs.Internal(err)
		}
		messages = append(messages, m)
	}

	if err := rows.Err(); err != nil {
		return nil, errs.Internal(err)
	}

	return messages, nil
}
