// Habitline - Habit and Reading Tracker
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/habitline

package tracker

import (
	"context"

	"github.com/tomtom215/habitline/internal/domain"
	"github.com/tomtom215/habitline/internal/eventprocessor"
	"github.com/tomtom215/habitline/internal/logging"
)

// CreateBookInput is the input to CreateBook.
type CreateBookInput struct {
	Name                       string
	Image                      string
	TotalPages                 int
	CurrentPage                int
	AverageCharactersPerMinute *float64
}

// CreateBook validates and stores a book.
func (s *Service) CreateBook(ctx context.Context, in CreateBookInput) (domain.Book, error) {
	b, err := domain.NewBook(s.newID(), in.Name, in.Image, in.TotalPages, in.CurrentPage,
		in.AverageCharactersPerMinute, s.clock())
	if err != nil {
		return domain.Book{}, translate(err, nil)
	}

	stored := b
	if stored.Image, err = s.putImage(ctx, b.Image); err != nil {
		return domain.Book{}, err
	}
	if err := s.store.CreateBook(ctx, stored); err != nil {
		return domain.Book{}, err
	}

	logging.Ctx(ctx).Info().Str("book_id", b.ID).Msg("Book created")
	s.emit(ctx, eventprocessor.EventBookCreated, b.ID, map[string]interface{}{
		"name":       b.Name,
		"totalPages": b.TotalPages,
	})
	return b, nil
}

// GetBook returns the book with id.
func (s *Service) GetBook(ctx context.Context, id string) (domain.Book, error) {
	b, err := s.store.GetBook(ctx, id)
	if err != nil {
		return domain.Book{}, translate(err, refs{"Book": id})
	}
	return s.resolveBook(ctx, b)
}

// ListBooks returns one page of books, newest first.
func (s *Service) ListBooks(ctx context.Context, page PageRequest) (Page[domain.Book], error) {
	req := s.pageOf(page)
	books, total, err := s.store.ListBooks(ctx, req.store())
	if err != nil {
		return Page[domain.Book]{}, err
	}
	for i := range books {
		if books[i], err = s.resolveBook(ctx, books[i]); err != nil {
			return Page[domain.Book]{}, err
		}
	}
	return newPage(books, total, req), nil
}

// UpdateBook applies patch to the book with id.
func (s *Service) UpdateBook(ctx context.Context, id string, patch domain.BookPatch) (domain.Book, error) {
	ids := refs{"Book": id}
	current, err := s.store.GetBook(ctx, id)
	if err != nil {
		return domain.Book{}, translate(err, ids)
	}

	next, err := current.Apply(patch, s.clock())
	if err != nil {
		return domain.Book{}, translate(err, nil)
	}
	if patch.Image != nil {
		if next.Image, err = s.putImage(ctx, *patch.Image); err != nil {
			return domain.Book{}, err
		}
	}
	if err := s.store.UpdateBook(ctx, next); err != nil {
		return domain.Book{}, translate(err, ids)
	}

	s.emit(ctx, eventprocessor.EventBookUpdated, id, map[string]interface{}{
		"currentPage": next.CurrentPage,
		"totalPages":  next.TotalPages,
	})
	return s.resolveBook(ctx, next)
}

// DeleteBook removes a book that no reading session references.
func (s *Service) DeleteBook(ctx context.Context, id string) error {
	if err := s.store.DeleteBook(ctx, id); err != nil {
		return translate(err, refs{"Book": id})
	}
	logging.Ctx(ctx).Info().Str("book_id", id).Msg("Book deleted")
	s.emit(ctx, eventprocessor.EventBookDeleted, id, nil)
	return nil
}
