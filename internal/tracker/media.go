// Habitline - Habit and Reading Tracker
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/habitline

package tracker

import (
	"context"
	"errors"
	"fmt"

	"github.com/tomtom215/habitline/internal/domain"
	"github.com/tomtom215/habitline/internal/logging"
	"github.com/tomtom215/habitline/internal/mediastore"
)

// ResolveMedia returns the value stored under key.
func (s *Service) ResolveMedia(ctx context.Context, key string) (string, error) {
	if !mediastore.IsKey(key) {
		return "", notFound("Media", key, nil)
	}
	v, err := s.media.Get(ctx, key)
	if err != nil {
		return "", translate(err, refs{"Media": key})
	}
	return v, nil
}

// putImage stores a non-empty image and returns its key.
func (s *Service) putImage(ctx context.Context, value string) (string, error) {
	if value == "" {
		return "", nil
	}
	key, err := s.media.Put(ctx, value)
	if err != nil {
		return "", fmt.Errorf("store image: %w", err)
	}
	return key, nil
}

// resolveImage turns a stored key back into its value. Values that are not
// keys are returned as they are. A dangling key resolves to "".
func (s *Service) resolveImage(ctx context.Context, stored string) (string, error) {
	if stored == "" || !mediastore.IsKey(stored) {
		return stored, nil
	}
	v, err := s.media.Get(ctx, stored)
	if errors.Is(err, mediastore.ErrNotFound) {
		logging.Ctx(ctx).Warn().Str("media_key", stored).Msg("Image missing from media store")
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("resolve image: %w", err)
	}
	return v, nil
}

func (s *Service) resolveHabit(ctx context.Context, h domain.Habit) (domain.Habit, error) {
	logo, err := s.resolveImage(ctx, h.Logo)
	if err != nil {
		return h, err
	}
	h.Logo = logo
	return h, nil
}

func (s *Service) resolveBook(ctx context.Context, b domain.Book) (domain.Book, error) {
	img, err := s.resolveImage(ctx, b.Image)
	if err != nil {
		return b, err
	}
	b.Image = img
	return b, nil
}
