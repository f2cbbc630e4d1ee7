package server

import (
	"sort"
	"strings"

	"captcha-verifier/internal/application/port/output"

	"github.com/go-chi/httplog"
	"github.com/rs/zerolog"
	"github.com/ysmood/gson"
)

// newRequestLogger returns httplog's zerolog logger with its JSON output
// redirected into logger, so request lines land in the run log.
func newRequestLogger(logger output.LoggerPort) zerolog.Logger {
	return httplog.NewLogger("captcha-verifier", httplog.Options{
		JSON: true,
	}).Output(logSink{logger: logger})
}

// logSink decodes one zerolog JSON entry per Write and replays it on a
// LoggerPort at the matching level.
type logSink struct {
	logger output.LoggerPort
}

func (s logSink) Write(p []byte) (int, error) {
	entry := gson.New(p).Map()
	if len(entry) == 0 {
		s.logger.Info(strings.TrimSpace(string(p)))
		return len(p), nil
	}

	msg := entry[zerolog.MessageFieldName].Str()
	level := entry[zerolog.LevelFieldName].Str()
	delete(entry, zerolog.MessageFieldName)
	delete(entry, zerolog.LevelFieldName)
	delete(entry, zerolog.TimestampFieldName)

	keys := make([]string, 0, len(entry))
	for k := range entry {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	kv := make([]any, 0, 2*len(keys))
	for _, k := range keys {
		kv = append(kv, k, entry[k].Val())
	}

	switch level {
	case "debug", "trace":
		s.logger.Debug(msg, kv...)
	case "warn":
		s.logger.Warn(msg, kv...)
	case "error", "fatal", "panic":
		s.logger.Error(msg, kv...)
	default:
		s.logger.Info(msg, kv...)
	}
	return len(p), nil
}
