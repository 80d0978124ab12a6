// Habitline - Habit and Reading Tracker
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/habitline

package tracker

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/tomtom215/habitline/internal/config"
	"github.com/tomtom215/habitline/internal/database"
	"github.com/tomtom215/habitline/internal/domain"
	"github.com/tomtom215/habitline/internal/eventprocessor"
	"github.com/tomtom215/habitline/internal/mediastore"
)

var testNow = time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)

const testLogo = "data:image/png;base64,iVBORw0KGgo="

type recordingPublisher struct {
	mu     sync.Mutex
	events []*eventprocessor.Event
	err    error
}

func (p *recordingPublisher) PublishEvent(_ context.Context, e *eventprocessor.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.events = append(p.events, e)
	return nil
}

func (p *recordingPublisher) types() []eventprocessor.EventType {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]eventprocessor.EventType, len(p.events))
	for i, e := range p.events {
		out[i] = e.Type
	}
	return out
}

type fixture struct {
	svc    *Service
	db     *database.DB
	media  *mediastore.Store
	events *recordingPublisher
}

func setup(t *testing.T) *fixture {
	t.Helper()
	db, err := database.New(&config.DatabaseConfig{Path: ":memory:", MaxOpenConns: 1})
	if err != nil {
		t.Fatalf("database.New: %v", err)
	}
	media, err := mediastore.OpenInMemory()
	if err != nil {
		t.Fatalf("OpenInMemory: %v", err)
	}
	t.Cleanup(func() {
		_ = media.Close()
		_ = db.Close()
	})

	var seq atomic.Int64
	events := &recordingPublisher{}
	svc := New(db, media,
		WithClock(func() time.Time { return testNow }),
		WithIDGenerator(func() string { return fmt.Sprintf("id-%d", seq.Add(1)) }),
		WithEvents(events),
	)
	return &fixture{svc: svc, db: db, media: media, events: events}
}

func (f *fixture) habit(t *testing.T, name string, kind domain.Complexity) domain.Habit {
	t.Helper()
	h, err := f.svc.CreateHabit(context.Background(), CreateHabitInput{Name: name, HabitType: kind, Logo: testLogo})
	if err != nil {
		t.Fatalf("CreateHabit(%q): %v", name, err)
	}
	return h
}

func (f *fixture) book(t *testing.T, name string, pages int) domain.Book {
	t.Helper()
	b, err := f.svc.CreateBook(context.Background(), CreateBookInput{Name: name, TotalPages: pages})
	if err != nil {
		t.Fatalf("CreateBook(%q): %v", name, err)
	}
	return b
}

func wantKind(t *testing.T, err error, kind Kind) *Error {
	t.Helper()
	var te *Error
	if !errors.As(err, &te) {
		t.Fatalf("err = %v (%T), want *Error of kind %s", err, err, kind)
	}
	if te.Kind != kind {
		t.Fatalf("kind = %s (%q), want %s", te.Kind, te.Message, kind)
	}
	return te
}

func ptr[T any](v T) *T { return &v }

func TestKindOf(t *testing.T) {
	t.Parallel()
	if KindOf(errors.New("boom")) != KindInternal {
		t.Error("plain errors are internal")
	}
	wrapped := fmt.Errorf("ctx: %w", notFound("Habit", "h-1", nil))
	if KindOf(wrapped) != KindNotFound {
		t.Error("wrapped *Error should keep its kind")
	}
	e := conflict("taken", database.ErrHabitNameConflict)
	if !errors.Is(e, database.ErrHabitNameConflict) {
		t.Error("Unwrap should expose the cause")
	}
}

func TestTranslate(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name    string
		err     error
		ids     refs
		kind    Kind
		message string
	}{
		{"habit", database.ErrHabitNotFound, refs{"Habit": "h-1"}, KindNotFound, "Habit with id h-1 not found"},
		{"book", fmt.Errorf("tx: %w", database.ErrBookNotFound), refs{"Book": "b-1"}, KindNotFound, "Book with id b-1 not found"},
		{"session", database.ErrReadingSessionNotFound, refs{"Reading session": "r"}, KindNotFound, "Reading session with id r not found"},
		{"completed", database.ErrActionAlreadyCompleted, refs{"Action": "a-1"}, KindConflict, "Action with id a-1 is already completed"},
		{"domain completed", domain.ErrAlreadyCompleted, refs{"Action": "a-1"}, KindConflict, "Action with id a-1 is already completed"},
		{"in use", database.ErrBookInUse, refs{"Book": "b-1"}, KindConflict, "Book with id b-1 has reading sessions and cannot be deleted"},
		{"validation", &domain.ValidationError{Field: "name", Message: "bad"}, nil, KindValidation, "bad"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			te := wantKind(t, translate(tt.err, tt.ids), tt.kind)
			if te.Message != tt.message {
				t.Errorf("message = %q, want %q", te.Message, tt.message)
			}
		})
	}

	plain := errors.New("disk on fire")
	if translate(plain, nil) != plain {
		t.Error("unknown errors should pass through")
	}
	if translate(nil, nil) != nil {
		t.Error("nil should stay nil")
	}
}

func TestWithPageSizes(t *testing.T) {
	t.Parallel()
	f := setup(t)
	ctx := context.Background()
	for i := 0; i < 5; i++ {
		f.habit(t, "Habit "+string(rune('A'+i)), domain.ComplexitySimple)
	}

	svc := New(f.db, f.media, WithPageSizes(2, 3))
	page, err := svc.ListHabits(ctx, HabitQuery{PageRequest: PageRequest{Limit: 50}})
	if err != nil {
		t.Fatalf("ListHabits: %v", err)
	}
	if page.Limit != 3 || len(page.Items) != 3 || page.TotalPages != 2 {
		t.Errorf("capped page = %+v", page)
	}
	page, _ = svc.ListHabits(ctx, HabitQuery{})
	if page.Limit != 2 || len(page.Items) != 2 {
		t.Errorf("default page = %+v", page)
	}

	tests := []struct {
		name     string
		opt      Option
		def, max int
	}{
		{"zero keeps defaults", WithPageSizes(0, 0), DefaultPageSize, MaxPageSize},
		{"default above max is clamped", WithPageSizes(20, 5), 5, 5},
		{"max only", WithPageSizes(0, 500), DefaultPageSize, 500},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New(nil, nil, tt.opt)
			if s.defaultPageSize != tt.def || s.maxPageSize != tt.max {
				t.Errorf("sizes = %d/%d, want %d/%d", s.defaultPageSize, s.maxPageSize, tt.def, tt.max)
			}
		})
	}
}

func TestPageRequest(t *testing.T) {
	t.Parallel()
	tests := []struct {
		in, want PageRequest
	}{
		{PageRequest{}, PageRequest{Page: 1, Limit: DefaultPageSize}},
		{PageRequest{Page: 3, Limit: 25}, PageRequest{Page: 3, Limit: 25}},
		{PageRequest{Page: -2, Limit: 1000}, PageRequest{Page: 1, Limit: MaxPageSize}},
	}
	for _, tt := range tests {
		if got := tt.in.normalize(DefaultPageSize, MaxPageSize); got != tt.want {
			t.Errorf("%+v.normalize() = %+v, want %+v", tt.in, got, tt.want)
		}
	}

	p := newPage([]int{1, 2}, 21, PageRequest{Page: 2, Limit: 10})
	if p.TotalPages != 3 {
		t.Errorf("TotalPages = %d, want 3", p.TotalPages)
	}
	if empty := newPage([]int{}, 0, PageRequest{Page: 1, Limit: 10}); empty.TotalPages != 0 {
		t.Errorf("empty TotalPages = %d", empty.TotalPages)
	}
}

func TestEmit_FailureIsSwallowed(t *testing.T) {
	t.Parallel()
	f := setup(t)
	f.events.err = errors.New("bus down")

	h, err := f.svc.CreateHabit(context.Background(), CreateHabitInput{
		Name: "Run", HabitType: domain.ComplexitySimple, Logo: testLogo,
	})
	if err != nil {
		t.Fatalf("CreateHabit should succeed when publishing fails: %v", err)
	}
	if _, err := f.svc.GetHabit(context.Background(), h.ID); err != nil {
		t.Errorf("habit not persisted: %v", err)
	}
}

func TestResolveMedia(t *testing.T) {
	t.Parallel()
	f := setup(t)
	ctx := context.Background()
	f.habit(t, "Run", domain.ComplexitySimple)

	got, err := f.svc.ResolveMedia(ctx, mediastore.KeyFor(testLogo))
	if err != nil || got != testLogo {
		t.Errorf("ResolveMedia() = %q, %v", got, err)
	}

	_, err = f.svc.ResolveMedia(ctx, mediastore.KeyFor("never stored"))
	te := wantKind(t, err, KindNotFound)
	if te.Message != "Media with id "+mediastore.KeyFor("never stored")+" not found" {
		t.Errorf("message = %q", te.Message)
	}
	_, err = f.svc.ResolveMedia(ctx, "not-a-key")
	wantKind(t, err, KindNotFound)
}

func TestListActivity_Limits(t *testing.T) {
	t.Parallel()
	f := setup(t)
	ctx := context.Background()

	for _, bad := range []int{-1, MaxActivitySize + 1} {
		_, err := f.svc.ListActivity(ctx, bad)
		wantKind(t, err, KindValidation)
	}

	err := f.db.RecordActivity(ctx, database.ActivityRecord{
		EventID: "e-1", EventType: "habit.created", EntityType: "habit", EntityID: "h-1", OccurredAt: testNow,
	})
	if err != nil {
		t.Fatalf("RecordActivity: %v", err)
	}
	got, err := f.svc.ListActivity(ctx, 0)
	if err != nil || len(got) != 1 {
		t.Errorf("ListActivity(0) = %v, %v", got, err)
	}
}
