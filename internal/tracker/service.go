// Habitline - Habit and Reading Tracker
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/habitline

// Package tracker holds Habitline's use cases. It validates input through
// the domain package, persists through the database, keeps images in the
// media store and announces every change on the event bus.
//
// Every failure a client can act on is an *Error with a Kind; the api
// package maps kinds to HTTP statuses.
package tracker

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/tomtom215/habitline/internal/database"
	"github.com/tomtom215/habitline/internal/domain"
	"github.com/tomtom215/habitline/internal/eventprocessor"
)

// Paging limits.
const (
	DefaultPageSize     = 10
	MaxPageSize         = 100
	DefaultActivitySize = 50
	MaxActivitySize     = 200
	// detailActions bounds the actions returned with habit details.
	detailActions = 50
)

// Store is the persistence the service needs. Satisfied by *database.DB.
type Store interface {
	CreateHabit(ctx context.Context, h domain.Habit) error
	GetHabit(ctx context.Context, id string) (domain.Habit, error)
	GetActiveHabitByName(ctx context.Context, name string) (domain.Habit, error)
	ListHabits(ctx context.Context, filter database.HabitFilter, page database.Page) ([]domain.Habit, int, error)
	UpdateHabit(ctx context.Context, h domain.Habit) error
	DeactivateHabit(ctx context.Context, id string, now time.Time) error
	IncrementHabitActions(ctx context.Context, id string, at time.Time) (domain.Habit, error)

	CreateAction(ctx context.Context, a domain.Action) error
	GetAction(ctx context.Context, id string) (domain.Action, error)
	CompleteAction(ctx context.Context, a domain.Action) error
	ListActions(ctx context.Context, habitID string, page database.Page) ([]domain.Action, int, error)
	ListActionDetails(ctx context.Context, habitID string, limit int) ([]database.ActionDetail, error)

	CreateBook(ctx context.Context, b domain.Book) error
	GetBook(ctx context.Context, id string) (domain.Book, error)
	ListBooks(ctx context.Context, page database.Page) ([]domain.Book, int, error)
	UpdateBook(ctx context.Context, b domain.Book) error
	DeleteBook(ctx context.Context, id string) error

	RecordReadingSession(ctx context.Context, in database.NewReadingSession) (domain.Book, error)
	GetReadingSession(ctx context.Context, id string) (database.SessionRecord, error)
	ListReadingSessions(ctx context.Context, filter database.ReadingSessionFilter, page database.Page) ([]database.SessionRecord, int, error)

	ListActivity(ctx context.Context, limit int) ([]database.ActivityRecord, error)
	Ping(ctx context.Context) error
}

// MediaStore keeps image values by content key. Satisfied by *mediastore.Store.
type MediaStore interface {
	Put(ctx context.Context, value string) (string, error)
	Get(ctx context.Context, key string) (string, error)
}

// EventPublisher is satisfied by *eventprocessor.Publisher.
type EventPublisher interface {
	PublishEvent(ctx context.Context, event *eventprocessor.Event) error
}

// Service implements the tracker use cases.
type Service struct {
	store  Store
	media  MediaStore
	events EventPublisher
	now    func() time.Time
	newID  func() string

	defaultPageSize int
	maxPageSize     int
}

// Option configures a Service.
type Option func(*Service)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithIDGenerator replaces uuid.NewString.
func WithIDGenerator(gen func() string) Option {
	return func(s *Service) { s.newID = gen }
}

// WithEvents sets the publisher. Without one, no events are emitted.
func WithEvents(p EventPublisher) Option {
	return func(s *Service) { s.events = p }
}

// WithPageSizes sets the page size used when a request omits one and the
// largest page a request may ask for. Non-positive values keep the defaults.
func WithPageSizes(defaultSize, maxSize int) Option {
	return func(s *Service) {
		if maxSize > 0 {
			s.maxPageSize = maxSize
		}
		if defaultSize > 0 {
			s.defaultPageSize = defaultSize
		}
	}
}

// New builds a Service.
func New(store Store, media MediaStore, opts ...Option) *Service {
	s := &Service{
		store: store,
		media: media,
		now:   time.Now,
		newID: uuid.NewString,

		defaultPageSize: DefaultPageSize,
		maxPageSize:     MaxPageSize,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.defaultPageSize > s.maxPageSize {
		s.defaultPageSize = s.maxPageSize
	}
	return s
}

// Ping reports whether the store is reachable.
func (s *Service) Ping(ctx context.Context) error {
	return s.store.Ping(ctx)
}

func (s *Service) clock() time.Time {
	return s.now().UTC()
}

// PageRequest is a 1-based page number and a page size.
type PageRequest struct {
	Page  int
	Limit int
}

func (p PageRequest) normalize(defaultSize, maxSize int) PageRequest {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.Limit < 1 {
		p.Limit = defaultSize
	}
	if p.Limit > maxSize {
		p.Limit = maxSize
	}
	return p
}

// pageOf applies the service's page sizes to p.
func (s *Service) pageOf(p PageRequest) PageRequest {
	return p.normalize(s.defaultPageSize, s.maxPageSize)
}

func (p PageRequest) store() database.Page {
	return database.Page{Number: p.Page, Limit: p.Limit}
}

// Page is one page of results.
type Page[T any] struct {
	Items      []T
	Total      int
	Page       int
	Limit      int
	TotalPages int
}

func newPage[T any](items []T, total int, req PageRequest) Page[T] {
	totalPages := 0
	if req.Limit > 0 {
		totalPages = (total + req.Limit - 1) / req.Limit
	}
	return Page[T]{Items: items, Total: total, Page: req.Page, Limit: req.Limit, TotalPages: totalPages}
}
