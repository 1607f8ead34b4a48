package logger

import (
	"log/slog"
	"os"
)

var log *slog.Logger = slog.Default()

// Init configures the global logger. Development gets human-readable text,
// everything else JSON.
func Init(environment string) {
	var handler slog.Handler
	if environment == "development" {
		handler = slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug})
	} else {
		handler = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})
	}

	log = slog.New(handler)
	slog.SetDefault(log)
}

func Info(msg string, args ...any) {
	log.Info(msg, normalize(args)...)
}

func Warn(msg string, args ...any) {
	log.Warn(msg, normalize(args)...)
}

func Error(msg string, args ...any) {
	log.Error(msg, normalize(args)...)
}

func Fatal(msg string, args ...any) {
	log.Error(msg, normalize(args)...)
	os.Exit(1)
}

// normalize lets call sites pass either key/value pairs or bare values
// (typically a single error).
func normalize(args []any) []any {
	if len(args)%2 == 0 {
		allPairs := true
		for i := 0; i < len(args); i += 2 {
			if _, ok := args[i].(string); !ok {
				allPairs = false
				break
			}
		}
		if allPairs {
			return args
		}
	}

	out := make([]any, 0, len(args)*2)
	for _, a := range args {
		if err, ok := a.(error); ok {
			out = append(out, "error", err)
			continue
		}
		out = append(out, "detail", a)
	}
	return out
}
