// Habitline - Habit and Reading Tracker
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/habitline

package api

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/tomtom215/habitline/internal/domain"
	"github.com/tomtom215/habitline/internal/logging"
	"github.com/tomtom215/habitline/internal/mediastore"
	"github.com/tomtom215/habitline/internal/models"
)

// mediaCacheControl applies to decoded media. Keys are content hashes, so
// a key always names the same bytes.
const mediaCacheControl = "public, max-age=31536000, immutable"

// mediaCSP stops a served image from running anything if a browser
// navigates to it directly.
const mediaCSP = "default-src 'none'; sandbox"

// GetMedia handles GET /media/{key}. The key may be given with or without
// its "media:" prefix. Data URLs are served as bytes, remote URLs as a
// redirect.
func (h *Handler) GetMedia(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "key")
	if !strings.HasPrefix(key, mediastore.KeyPrefix) {
		key = mediastore.KeyPrefix + key
	}

	if media, ok := h.mediaCache.Get(key); ok {
		writeMedia(w, r, media)
		return
	}

	value, err := h.svc.ResolveMedia(r.Context(), key)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}

	switch mediastore.Classify(value) {
	case mediastore.KindDataURL:
		media, err := mediastore.Decode(value)
		if err == nil && !domain.IsRasterImageType(mediaType(media.ContentType)) {
			err = fmt.Errorf("refusing to serve %q as media", media.ContentType)
		}
		if err != nil {
			logging.Ctx(r.Context()).Warn().Err(err).Str("key", key).Msg("Stored media is not decodable")
			respondError(w, r, http.StatusNotFound, models.ErrCodeNotFound, "Media with id "+key+" not found", nil)
			return
		}
		h.mediaCache.Add(key, media)
		writeMedia(w, r, media)
	case mediastore.KindRemoteURL:
		http.Redirect(w, r, value, http.StatusFound)
	default:
		respondError(w, r, http.StatusNotFound, models.ErrCodeNotFound, "Media with id "+key+" not found", nil)
	}
}

// mediaType strips parameters from a Content-Type value.
func mediaType(contentType string) string {
	t, _, _ := strings.Cut(contentType, ";")
	return t
}

func writeMedia(w http.ResponseWriter, r *http.Request, media mediastore.Media) {
	w.Header().Set("Content-Type", media.ContentType)
	w.Header().Set("Content-Length", strconv.Itoa(len(media.Data)))
	w.Header().Set("Cache-Control", mediaCacheControl)
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.Header().Set("Content-Security-Policy", mediaCSP)
	w.WriteHeader(http.StatusOK)
	if r.Method == http.MethodHead {
		return
	}
	if _, err := w.Write(media.Data); err != nil {
		logging.Ctx(r.Context()).Debug().Err(err).Msg("Failed to write media")
	}
}
