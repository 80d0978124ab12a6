// Habitline - Habit and Reading Tracker
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/habitline

package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/tomtom215/habitline/internal/domain"
)

const bookColumns = `id, name, image_key, total_pages, current_page,
	average_characters_per_minute, created_at, updated_at`

// CreateBook inserts b.
func (db *DB) CreateBook(ctx context.Context, b domain.Book) (err error) {
	defer observe("insert", "books", time.Now(), &err)

	_, err = db.conn.ExecContext(ctx, `INSERT INTO books (`+bookColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		b.ID, b.Name, nullString(b.Image), b.TotalPages, b.CurrentPage,
		nullFloat64(b.AverageCharactersPerMinute), formatTime(b.CreatedAt), formatTime(b.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("failed to create book: %w", err)
	}
	return nil
}

// GetBook returns the book with id.
func (db *DB) GetBook(ctx context.Context, id string) (b domain.Book, err error) {
	defer observe("select", "books", time.Now(), &err)
	return getBook(ctx, db.conn, id)
}

func getBook(ctx context.Context, q queryer, id string) (domain.Book, error) {
	row := q.QueryRowContext(ctx, `SELECT `+bookColumns+` FROM books WHERE id = ?`, id)
	b, err := scanBook(row)
	if err != nil {
		return domain.Book{}, notFound(err, ErrBookNotFound)
	}
	return b, nil
}

// ListBooks returns one page of books, newest first.
func (db *DB) ListBooks(ctx context.Context, page Page) (books []domain.Book, total int, err error) {
	defer observe("select", "books", time.Now(), &err)

	if err = db.conn.QueryRowContext(ctx, `SELECT COUNT(*) FROM books`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count books: %w", err)
	}

	rows, err := db.conn.QueryContext(ctx,
		`SELECT `+bookColumns+` FROM books ORDER BY created_at DESC, id LIMIT ? OFFSET ?`,
		page.Limit, page.Offset())
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list books: %w", err)
	}
	defer closeWithLog(rows, "rows")

	books = make([]domain.Book, 0, page.Limit)
	for rows.Next() {
		b, err := scanBook(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan book: %w", err)
		}
		books = append(books, b)
	}
	if err = rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating books: %w", err)
	}
	return books, total, nil
}

// UpdateBook writes every mutable field of b.
func (db *DB) UpdateBook(ctx context.Context, b domain.Book) (err error) {
	defer observe("update", "books", time.Now(), &err)

	res, err := db.conn.ExecContext(ctx, `UPDATE books
		SET name = ?, image_key = ?, total_pages = ?, current_page = ?,
			average_characters_per_minute = ?, updated_at = ?
		WHERE id = ?`,
		b.Name, nullString(b.Image), b.TotalPages, b.CurrentPage,
		nullFloat64(b.AverageCharactersPerMinute), formatTime(b.UpdatedAt), b.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update book: %w", err)
	}
	return requireRow(res, ErrBookNotFound)
}

// DeleteBook removes the book. It fails with ErrBookInUse while reading
// sessions reference it.
func (db *DB) DeleteBook(ctx context.Context, id string) (err error) {
	defer observe("delete", "books", time.Now(), &err)

	res, err := db.conn.ExecContext(ctx, `DELETE FROM books WHERE id = ?`, id)
	if err != nil {
		if isForeignKeyError(err) {
			return ErrBookInUse
		}
		return fmt.Errorf("failed to delete book: %w", err)
	}
	return requireRow(res, ErrBookNotFound)
}

func scanBook(s rowScanner) (domain.Book, error) {
	var (
		b                    domain.Book
		image                sql.NullString
		avg                  sql.NullFloat64
		createdAt, updatedAt string
	)
	if err := s.Scan(&b.ID, &b.Name, &image, &b.TotalPages, &b.CurrentPage,
		&avg, &createdAt, &updatedAt); err != nil {
		return domain.Book{}, err
	}
	b.Image = image.String
	if avg.Valid {
		v := avg.Float64
		b.AverageCharactersPerMinute = &v
	}
	var err error
	if b.CreatedAt, err = parseTime(createdAt); err != nil {
		return domain.Book{}, err
	}
	if b.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return domain.Book{}, err
	}
	return b, nil
}
