// Habitline - Habit and Reading Tracker
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/habitline

package mediastore

import (
	"encoding/base64"
	"errors"
	"net/url"
	"strings"
)

// Kind classifies a stored media value.
type Kind int

const (
	KindUnknown Kind = iota
	KindDataURL
	KindRemoteURL
)

var (
	// ErrNotDataURL is returned by Decode for values that are not data URLs.
	ErrNotDataURL = errors.New("value is not a data URL")

	// ErrUnsupportedEncoding is returned for data URLs that are not base64.
	ErrUnsupportedEncoding = errors.New("only base64 data URLs are supported")
)

// Media is a decoded data URL.
type Media struct {
	ContentType string
	Data        []byte
}

// Classify reports what kind of value v is.
func Classify(v string) Kind {
	switch {
	case strings.HasPrefix(v, "data:"):
		return KindDataURL
	case isRemoteURL(v):
		return KindRemoteURL
	default:
		return KindUnknown
	}
}

func isRemoteURL(v string) bool {
	u, err := url.Parse(v)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

// Decode parses data:<mime>;base64,<payload>. A missing MIME type defaults
// to application/octet-stream.
func Decode(v string) (Media, error) {
	rest, ok := strings.CutPrefix(v, "data:")
	if !ok {
		return Media{}, ErrNotDataURL
	}
	header, payload, ok := strings.Cut(rest, ",")
	if !ok {
		return Media{}, ErrNotDataURL
	}

	params := strings.Split(header, ";")
	if params[len(params)-1] != "base64" {
		return Media{}, ErrUnsupportedEncoding
	}
	contentType := strings.Join(params[:len(params)-1], ";")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		// Some clients drop the padding.
		data, err = base64.RawStdEncoding.DecodeString(strings.TrimRight(payload, "="))
		if err != nil {
			return Media{}, err
		}
	}
	return Media{ContentType: contentType, Data: data}, nil
}
