package bootstrap

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
)

const (
	SecondaryFile = "index2.html"
	NotFoundFile  = "404.html"
)

const (
	indexPage     = `<!DOCTYPE html><html><head><title>WebServer</title></head><body><h1>Web Server Response!!!</h1></body></html>`
	secondaryPage = `<!DOCTYPE html><html><head><title>WebServer</title></head><body><h1>Web Server Response 2!!!</h1></body></html>`
	notFoundPage  = `<!DOCTYPE html><html><head><title>404</title></head><body>404 - Page not found</body></html>`
)

// Content creates the web-root together with the default pages, if they don't exist
// yet. Existing files are never overwritten.
func Content(root, defaultFile string, logger zerolog.Logger) error {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return fmt.Errorf("bootstrap: web-root: %w", err)
	}

	logger.Debug().Str("root", root).Msg("web-root is ready")

	pages := []struct {
		Name, Content string
	}{
		{defaultFile, indexPage},
		{SecondaryFile, secondaryPage},
		{NotFoundFile, notFoundPage},
	}

	for _, page := range pages {
		path := filepath.Join(root, page.Name)
		created, err := createFile(path, page.Content)
		if err != nil {
			return fmt.Errorf("bootstrap: %s: %w", page.Name, err)
		}

		if created {
			logger.Info().Str("path", path).Msg("initialized default content")
		}
	}

	return nil
}

func createFile(path, content string) (created bool, err error) {
	fd, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		if errors.Is(err, fs.ErrExist) {
			return false, nil
		}

		return false, err
	}

	if _, err = fd.WriteString(content); err != nil {
		_ = fd.Close()
		return false, err
	}

	return true, fd.Close()
}
