package reviews

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"avaliacoes/pkg/models"
)

const (
	insertSQL = `
		INSERT INTO reviews (id, title, comment, rating, name, email, created)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`
	selectAllSQL = `
		SELECT id, title, comment, rating, name, email, created
		FROM reviews
	`
	selectByIDSQL = `
		SELECT id, title, comment, rating, name, email, created
		FROM reviews
		WHERE id = ?
	`
	updateSQL = `
		UPDATE reviews
		SET title = ?, comment = ?, rating = ?, name = ?, email = ?
		WHERE id = ?
	`
	deleteSQL    = `DELETE FROM reviews WHERE id = ?`
	deleteAllSQL = `DELETE FROM reviews`
)

// Repo owns the connection and one prepared statement per operation.
type Repo struct {
	DB *sql.DB

	insert     *sql.Stmt
	selectAll  *sql.Stmt
	selectByID *sql.Stmt
	update     *sql.Stmt
	delete     *sql.Stmt
	deleteAll  *sql.Stmt
}

// NewRepo prepares every statement up front, so the schema must already be
// applied.
func NewRepo(ctx context.Context, db *sql.DB) (*Repo, error) {
	r := &Repo{DB: db}

	stmts := []struct {
		dst   **sql.Stmt
		query string
	}{
		{&r.insert, insertSQL},
		{&r.selectAll, selectAllSQL},
		{&r.selectByID, selectByIDSQL},
		{&r.update, updateSQL},
		{&r.delete, deleteSQL},
		{&r.deleteAll, deleteAllSQL},
	}
	for _, s := range stmts {
		stmt, err := db.PrepareContext(ctx, s.query)
		if err != nil {
			_ = r.Close()
			return nil, fmt.Errorf("prepare %q: %w", s.query, err)
		}
		*s.dst = stmt
	}
	return r, nil
}

func (r *Repo) Close() error {
	var errs []error
	for _, stmt := range []*sql.Stmt{r.insert, r.selectAll, r.selectByID, r.update, r.delete, r.deleteAll} {
		if stmt == nil {
			continue
		}
		if err := stmt.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (r *Repo) List(ctx context.Context) ([]models.Review, error) {
	rows, err := r.selectAll.QueryContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("list reviews: %w", err)
	}
	defer rows.Close()

	out := make([]models.Review, 0)
	for rows.Next() {
		review, err := scanReview(rows)
		if err != nil {
			return nil, fmt.Errorf("scan review row: %w", err)
		}
		out = append(out, *review)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows err: %w", err)
	}
	return out, nil
}

func (r *Repo) GetByID(ctx context.Context, id string) (*models.Review, error) {
	review, err := scanReview(r.selectByID.QueryRowContext(ctx, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("scan review: %w", err)
	}
	return review, nil
}

func (r *Repo) Create(ctx context.Context, review models.Review) error {
	if _, err := r.insert.ExecContext(ctx, insertArgs(review)...); err != nil {
		return fmt.Errorf("insert review: %w", err)
	}
	return nil
}

// Update overwrites every mutable column of the row; merging is the
// caller's job.
func (r *Repo) Update(ctx context.Context, review models.Review) error {
	_, err := r.update.ExecContext(ctx,
		review.Title,
		review.Comment,
		review.Rating,
		nullString(review.Name),
		nullString(review.Email),
		review.ID,
	)
	if err != nil {
		return fmt.Errorf("update review: %w", err)
	}
	return nil
}

// Delete does not report whether a row existed.
func (r *Repo) Delete(ctx context.Context, id string) error {
	if _, err := r.delete.ExecContext(ctx, id); err != nil {
		return fmt.Errorf("delete review: %w", err)
	}
	return nil
}

// ReplaceAll deletes every row and inserts the given ones in a single
// transaction. On any error the table is left as it was.
func (r *Repo) ReplaceAll(ctx context.Context, reviews []models.Review) (err error) {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin replace: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if _, err = tx.StmtContext(ctx, r.deleteAll).ExecContext(ctx); err != nil {
		return fmt.Errorf("clear reviews: %w", err)
	}

	insert := tx.StmtContext(ctx, r.insert)
	for _, review := range reviews {
		if _, err = insert.ExecContext(ctx, insertArgs(review)...); err != nil {
			return fmt.Errorf("insert review %s: %w", review.ID, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit replace: %w", err)
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanReview(s scanner) (*models.Review, error) {
	var review models.Review
	var name, email sql.NullString
	if err := s.Scan(
		&review.ID,
		&review.Title,
		&review.Comment,
		&review.Rating,
		&name,
		&email,
		&review.Created,
	); err != nil {
		return nil, err
	}
	if name.Valid {
		review.Name = &name.String
	}
	if email.Valid {
		review.Email = &email.String
	}
	return &review, nil
}

func insertArgs(review models.Review) []any {
	return []any{
		review.ID,
		review.Title,
		review.Comment,
		review.Rating,
		nullString(review.Name),
		nullString(review.Email),
		review.Created,
	}
}

func nullString(p *string) sql.NullString {
	if p == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *p, Valid: true}
}
