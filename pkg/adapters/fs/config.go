// Package fs reads and writes notebooks on the local filesystem.
package fs

import (
	"io"
	"log/slog"
	"time"

	"github.com/aretw0/nbkit/pkg/codec"
)

// Config holds the configuration for the filesystem adapter.
type Config struct {
	Logger   *slog.Logger
	Registry *codec.Registry // defaults to codec.Default()
	Strict   bool            // parse JSON numbers as json.Number
	Atomic   bool            // write through a temp file + rename
	Perm     uint32          // file mode for written files, defaults to 0644
	Debounce time.Duration   // watcher quiet period, defaults to 50ms
}

func (c Config) withDefaults() Config {
	if c.Logger == nil {
		c.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if c.Registry == nil {
		c.Registry = codec.Default()
		if c.Strict {
			ipynb := codec.NewIPYNB()
			ipynb.Strict = true
			c.Registry.Register(".ipynb", ipynb)
			c.Registry.Register(".json", ipynb)
		}
	}
	if c.Perm == 0 {
		c.Perm = 0o644
	}
	if c.Debounce <= 0 {
		c.Debounce = 50 * time.Millisecond
	}
	return c
}
