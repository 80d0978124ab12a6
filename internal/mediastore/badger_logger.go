// Habitline - Habit and Reading Tracker
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/habitline

package mediastore

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/tomtom215/habitline/internal/logging"
)

// badgerLogger routes badger's printf-style output into zerolog. Badger is
// chatty at info, so info is demoted to debug.
type badgerLogger struct {
	log zerolog.Logger
}

func newBadgerLogger() *badgerLogger {
	return &badgerLogger{log: logging.WithComponent("mediastore")}
}

func (l *badgerLogger) Errorf(format string, args ...interface{}) {
	l.log.Error().Msg(trimMsg(format, args))
}

func (l *badgerLogger) Warningf(format string, args ...interface{}) {
	l.log.Warn().Msg(trimMsg(format, args))
}

func (l *badgerLogger) Infof(format string, args ...interface{}) {
	l.log.Debug().Msg(trimMsg(format, args))
}

func (l *badgerLogger) Debugf(format string, args ...interface{}) {
	l.log.Trace().Msg(trimMsg(format, args))
}

func trimMsg(format string, args []interface{}) string {
	return strings.TrimSpace(fmt.Sprintf(format, args...))
}
