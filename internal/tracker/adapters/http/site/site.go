// Package site раздает встроенную стартовую страницу и статические файлы.
package site

import (
	"embed"
	"fmt"
	"io/fs"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/static"
)

//go:embed static
var staticFiles embed.FS

const (
	staticRoot = "static"
	assetsDir  = "public"

	ErrMsgAssetNotFound = "Asset not found"
)

// Site содержит обработчики встроенных файлов.
type Site struct {
	// Index отдает index.html; монтируется на "/".
	Index fiber.Handler
	// Assets отдает файлы каталога public; монтируется на "/public*".
	Assets fiber.Handler
}

// New создает обработчики поверх встроенных файлов.
func New() *Site {
	root := sub(staticFiles, staticRoot)

	return &Site{
		Index: static.New("", static.Config{
			FS:              root,
			NotFoundHandler: notFound,
		}),
		Assets: static.New("", static.Config{
			FS:              sub(root, assetsDir),
			NotFoundHandler: notFound,
		}),
	}
}

func sub(fsys fs.FS, dir string) fs.FS {
	s, err := fs.Sub(fsys, dir)
	if err != nil {
		panic(fmt.Sprintf("embedded dir %q: %v", dir, err))
	}
	return s
}

func notFound(ctx fiber.Ctx) error {
	if err := ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{
		"error": ErrMsgAssetNotFound,
	}); err != nil {
		return fmt.Errorf("error sending 404 response: %w", err)
	}
	return nil
}
