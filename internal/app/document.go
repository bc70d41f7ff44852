package app

import (
	"errors"
	"io/fs"
	"os"
	"time"

	"github.com/dshills/clack/internal/engine"
	"github.com/dshills/clack/internal/renderer"
)

// saveIgnoreWindow is how long the watcher ignores the file after a save.
const saveIgnoreWindow = time.Second

// LoadFile reads path into a new engine. A path that does not exist yet
// yields an empty document; the caller binds it so the first save creates
// the file.
func LoadFile(path string, opts ...engine.Option) (*engine.Engine, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return engine.New(opts...), nil
		}
		return nil, NewOperationError("load", path, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, NewOperationError("load", path, err)
	}
	if info.IsDir() {
		return nil, NewOperationError("load", path, ErrIsDirectory)
	}

	e := engine.New(opts...)
	if _, err := e.ReadFrom(f); err != nil {
		return nil, NewOperationError("load", path, err)
	}
	return e, nil
}

// Open replaces the document with the contents of path and binds the
// session to it. On failure the current document is kept and the error is
// shown in the footer.
func (a *App) Open(path string) error {
	log := a.logger.WithField("path", path)

	e, err := LoadFile(path, engine.WithTypewriter(a.prefs.Typewriter))
	if err != nil {
		log.Error("load failed: %v", err)
		a.setOperationError(err)
		return err
	}

	a.engine = e
	a.bind(path)
	log.Info("opened document (%d chars)", e.Len())
	return nil
}

// Save writes the document to its path, or to Untitled.md when no path is
// bound yet, and binds that path.
func (a *App) Save() error {
	path := a.path
	if path == "" {
		path = renderer.DefaultFileName
	}
	log := a.logger.WithField("path", path)

	if a.watcher != nil {
		a.watcher.IgnoreFor(saveIgnoreWindow)
	}
	if err := a.writeFile(path); err != nil {
		log.Error("save failed: %v", err)
		a.setOperationError(err)
		return err
	}

	a.engine.MarkSaved()
	if path != a.path {
		a.bind(path)
	}
	a.setStatus("Saved to " + path)
	log.Info("saved document (%d chars)", a.engine.Len())
	return nil
}

func (a *App) writeFile(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return NewOperationError("save", path, err)
	}
	if _, err := a.engine.WriteTo(f); err != nil {
		_ = f.Close()
		return NewOperationError("save", path, err)
	}
	if err := f.Close(); err != nil {
		return NewOperationError("save", path, err)
	}
	return nil
}

// bind makes path the document path and points the watcher at it.
func (a *App) bind(path string) {
	a.path = path
	if a.watcher == nil {
		return
	}
	if err := a.watcher.Watch(path); err != nil {
		a.logger.WithComponent("watcher").Warn("cannot watch %s: %v", path, err)
	}
}
