// Package loglib provides the slog.Handler used by the driver and test
// harness binaries: a single formatted line per record, written to a log
// file and optionally mirrored to stderr.
/*
 * Copyright 2026, Ember Systems Contributors
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in
 * all copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 */
package loglib

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"
)

// Handler formats records as "time level: message key=value..." and writes
// them to an underlying file, mirroring to stderr when debug is set or the
// record is above debug level. Unlike a handler built for nested trace
// groups, this one is flat: the driver has one log stream, not a tree of
// per-subsystem loggers, so WithGroup folds the group name into the
// attribute key prefix instead of wrapping a child handler.
type Handler struct {
	out    io.Writer
	level  slog.Leveler
	mu     *sync.Mutex
	debug  bool
	attrs  []slog.Attr
	prefix string
}

// NewHandler returns a Handler writing to file at the given level, with
// stderr mirroring controlled by debug.
func NewHandler(file io.Writer, opts *slog.HandlerOptions, debug bool) *Handler {
	if opts == nil {
		opts = &slog.HandlerOptions{}
	}
	level := opts.Level
	if level == nil {
		level = slog.LevelInfo
	}
	return &Handler{
		out:   file,
		level: level,
		mu:    &sync.Mutex{},
		debug: debug,
	}
}

func (h *Handler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level.Level()
}

func (h *Handler) WithAttrs(attrs []slog.Attr) slog.Handler {
	next := *h
	next.attrs = append(append([]slog.Attr(nil), h.attrs...), attrs...)
	return &next
}

func (h *Handler) WithGroup(name string) slog.Handler {
	next := *h
	if next.prefix == "" {
		next.prefix = name
	} else {
		next.prefix = next.prefix + "." + name
	}
	return &next
}

func (h *Handler) Handle(_ context.Context, r slog.Record) error {
	var line strings.Builder
	line.WriteString(r.Time.Format("2006/01/02 15:04:05"))
	line.WriteByte(' ')
	line.WriteString(r.Level.String())
	line.WriteString(": ")
	line.WriteString(r.Message)

	for _, a := range h.attrs {
		h.writeAttr(&line, a)
	}
	r.Attrs(func(a slog.Attr) bool {
		h.writeAttr(&line, a)
		return true
	})
	line.WriteByte('\n')
	b := []byte(line.String())

	h.mu.Lock()
	defer h.mu.Unlock()

	var err error
	if h.out != nil {
		_, err = h.out.Write(b)
	}
	if h.debug || r.Level > slog.LevelDebug {
		_, err = os.Stderr.Write(b)
	}
	return err
}

func (h *Handler) writeAttr(line *strings.Builder, a slog.Attr) {
	key := a.Key
	if h.prefix != "" {
		key = h.prefix + "." + key
	}
	fmt.Fprintf(line, " %s=%s", key, a.Value.String())
}

// SetDebug toggles whether every record, not just above-debug ones, is
// mirrored to stderr.
func (h *Handler) SetDebug(debug bool) {
	h.debug = debug
}
