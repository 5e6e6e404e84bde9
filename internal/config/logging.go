package config

import (
	"io"
	"log"
	"os"
	"path/filepath"
)

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// SetupLogging sends the standard logger to path. The terminal belongs to
// the UI, so stderr is only used when the file cannot be opened.
func SetupLogging(path string) io.Closer {
	log.SetFlags(log.LstdFlags)
	log.SetPrefix(AppName + " ")
	if path == "" {
		log.SetOutput(os.Stderr)
		return nopCloser{}
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		log.SetOutput(os.Stderr)
		log.Printf("log dir: %v", err)
		return nopCloser{}
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		log.SetOutput(os.Stderr)
		log.Printf("log file: %v", err)
		return nopCloser{}
	}
	log.SetOutput(f)
	return f
}
