// Habitline - Habit and Reading Tracker
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/habitline

package tracker

import (
	"context"
	"fmt"
	"time"

	"github.com/tomtom215/habitline/internal/database"
	"github.com/tomtom215/habitline/internal/domain"
	"github.com/tomtom215/habitline/internal/eventprocessor"
	"github.com/tomtom215/habitline/internal/logging"
	"github.com/tomtom215/habitline/internal/metrics"
)

// RecordReadingSessionInput is the input to RecordReadingSession.
type RecordReadingSessionInput struct {
	HabitID            string
	BookID             string
	StartTime          time.Time
	EndTime            time.Time
	NumberOfCharacters int
	Breaths            int
	UsingVoice         bool
	// EndPage, when set, becomes the book's current page.
	EndPage *int
}

// ReadingSessionResult is what RecordReadingSession stored.
type ReadingSessionResult struct {
	Session domain.ReadingSession
	Action  domain.Action
	Book    domain.Book
}

// ReadingSessionQuery filters ListReadingSessions.
type ReadingSessionQuery struct {
	PageRequest
	BookID  string
	HabitID string
}

// RecordReadingSession stores a completed reading action and its metrics,
// then updates the book's page and average speed.
func (s *Service) RecordReadingSession(ctx context.Context, in RecordReadingSessionInput) (ReadingSessionResult, error) {
	ids := refs{"Habit": in.HabitID, "Book": in.BookID}

	h, err := s.activeHabit(ctx, in.HabitID)
	if err != nil {
		return ReadingSessionResult{}, err
	}
	book, err := s.store.GetBook(ctx, in.BookID)
	if err != nil {
		return ReadingSessionResult{}, translate(err, ids)
	}
	if in.EndPage != nil && (*in.EndPage < 0 || *in.EndPage > book.TotalPages) {
		return ReadingSessionResult{}, validation("endPage",
			fmt.Sprintf("end page must be between 0 and %d", book.TotalPages))
	}

	now := s.clock()
	end := in.EndTime
	action, err := domain.NewAction(s.newID(), in.HabitID, in.StartTime, &end, now)
	if err != nil {
		return ReadingSessionResult{}, translate(err, nil)
	}
	session, err := domain.NewReadingSession(s.newID(), action, in.BookID,
		in.NumberOfCharacters, in.Breaths, in.UsingVoice, now)
	if err != nil {
		return ReadingSessionResult{}, translate(err, nil)
	}

	updated, err := s.store.RecordReadingSession(ctx, database.NewReadingSession{
		Action:  action,
		Session: session,
		EndPage: in.EndPage,
		Now:     now,
	})
	if err != nil {
		return ReadingSessionResult{}, translate(err, ids)
	}
	if updated, err = s.resolveBook(ctx, updated); err != nil {
		return ReadingSessionResult{}, err
	}

	metrics.ActionsRecorded.WithLabelValues(string(h.Type)).Inc()
	metrics.ReadingSessionsRecorded.Inc()
	logging.Ctx(ctx).Info().
		Str("session_id", session.ID).
		Str("book_id", in.BookID).
		Float64("cpm", session.CharactersPerMinute).
		Msg("Reading session recorded")
	s.emit(ctx, eventprocessor.EventReadingSessionRecorded, session.ID, map[string]interface{}{
		"habitId":             in.HabitID,
		"bookId":              in.BookID,
		"actionId":            action.ID,
		"charactersPerMinute": session.CharactersPerMinute,
	})

	return ReadingSessionResult{Session: session, Action: action, Book: updated}, nil
}

// GetReadingSession returns the session with id and its action.
func (s *Service) GetReadingSession(ctx context.Context, id string) (database.SessionRecord, error) {
	rec, err := s.store.GetReadingSession(ctx, id)
	if err != nil {
		return database.SessionRecord{}, translate(err, refs{"Reading session": id})
	}
	return rec, nil
}

// ListReadingSessions returns one page of sessions, newest action first.
func (s *Service) ListReadingSessions(ctx context.Context, q ReadingSessionQuery) (Page[database.SessionRecord], error) {
	req := s.pageOf(q.PageRequest)
	recs, total, err := s.store.ListReadingSessions(ctx,
		database.ReadingSessionFilter{BookID: q.BookID, HabitID: q.HabitID}, req.store())
	if err != nil {
		return Page[database.SessionRecord]{}, err
	}
	return newPage(recs, total, req), nil
}
