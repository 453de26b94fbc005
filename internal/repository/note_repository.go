package repository

import (
	"context"
	"errors"
	"net"

	"thinkpad-notes-be/internal/entity"
	"thinkpad-notes-be/internal/pkg/serverutils"
	"thinkpad-notes-be/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type INoteRepository interface {
	Create(ctx context.Context, note *entity.Note) error
	GetById(ctx context.Context, id uuid.UUID) (*entity.Note, error)
	ListByOwner(ctx context.Context, ownerId string) ([]*entity.Note, error)
	Update(ctx context.Context, note *entity.Note) error
	Delete(ctx context.Context, id uuid.UUID, ownerId string) error
}

type noteRepository struct {
	db database.DatabaseQueryer
}

func NewNoteRepository(db *pgxpool.Pool) INoteRepository {
	return &noteRepository{db: db}
}

// Create persists the note with store-assigned timestamps. The caller's
// CreatedAt/UpdatedAt values are ignored and replaced by the database clock.
func (r *noteRepository) Create(ctx context.Context, note *entity.Note) error {
	row := r.db.QueryRow(
		ctx,
		`INSERT INTO notes (id, user_id, title, content, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, now(), now())
		 RETURNING created_at, updated_at`,
		note.Id,
		note.OwnerId,
		note.Title,
		note.Content,
	)
	if err := row.Scan(&note.CreatedAt, &note.UpdatedAt); err != nil {
		return storeError(err)
	}
	return nil
}

func (r *noteRepository) GetById(ctx context.Context, id uuid.UUID) (*entity.Note, error) {
	row := r.db.QueryRow(
		ctx,
		`SELECT id, user_id, title, content, created_at, updated_at
		 FROM notes
		 WHERE id = $1`,
		id,
	)

	var n entity.Note
	err := row.Scan(
		&n.Id,
		&n.OwnerId,
		&n.Title,
		&n.Content,
		&n.CreatedAt,
		&n.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, serverutils.ErrNotFound
		}
		return nil, storeError(err)
	}
	return &n, nil
}

func (r *noteRepository) ListByOwner(ctx context.Context, ownerId string) ([]*entity.Note, error) {
	rows, err := r.db.Query(
		ctx,
		`SELECT id, user_id, title, content, created_at, updated_at
		 FROM notes
		 WHERE user_id = $1
		 ORDER BY created_at DESC`,
		ownerId,
	)
	if err != nil {
		return nil, storeError(err)
	}
	defer rows.Close()

	res := make([]*entity.Note, 0)
	for rows.Next() {
		var n entity.Note
		err = rows.Scan(
			&n.Id,
			&n.OwnerId,
			&n.Title,
			&n.Content,
			&n.CreatedAt,
			&n.UpdatedAt,
		)
		if err != nil {
			return nil, storeError(err)
		}
		res = append(res, &n)
	}
	if err := rows.Err(); err != nil {
		return nil, storeError(err)
	}
	return res, nil
}

// Update only touches title, content and updated_at. The user_id predicate
// is the storage-level backstop of the ownership rule; ownership itself is
// never rewritten.
func (r *noteRepository) Update(ctx context.Context, note *entity.Note) error {
	row := r.db.QueryRow(
		ctx,
		`UPDATE notes
		 SET title = $1, content = $2, updated_at = now()
		 WHERE id = $3 AND user_id = $4
		 RETURNING created_at, updated_at`,
		note.Title,
		note.Content,
		note.Id,
		note.OwnerId,
	)

	err := row.Scan(&note.CreatedAt, &note.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return serverutils.ErrNotFound
		}
		return storeError(err)
	}
	return nil
}

func (r *noteRepository) Delete(ctx context.Context, id uuid.UUID, ownerId string) error {
	tag, err := r.db.Exec(
		ctx,
		`DELETE FROM notes WHERE id = $1 AND user_id = $2`,
		id,
		ownerId,
	)
	if err != nil {
		return storeError(err)
	}
	if tag.RowsAffected() == 0 {
		return serverutils.ErrNotFound
	}
	return nil
}

// storeError folds driver connectivity failures into the retry-later
// category; everything else passes through for the middleware to log.
func storeError(err error) error {
	var connErr *pgconn.ConnectError
	var netErr net.Error
	if errors.As(err, &connErr) || errors.As(err, &netErr) || errors.Is(err, context.DeadlineExceeded) {
		return serverutils.ErrServiceUnavailable
	}
	return err
}
