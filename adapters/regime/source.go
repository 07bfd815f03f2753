package regime

import (
	"context"
	"os"
	"sync"
	"time"

	"go.uber.org/zap"

	"translation-quote/core/types"
	"translation-quote/internal/errors"
	"translation-quote/internal/logging"
)

// FileSource serves the regime stored in an HCL file. The file is re-read
// when its size or modification time changes, so edits apply to the next
// quote without a restart. Every call returns one complete snapshot.
type FileSource struct {
	Path string

	mu      sync.Mutex
	cached  types.Regime
	modTime time.Time
	size    int64
	loaded  bool
}

// NewFileSource creates a source for path
func NewFileSource(path string) *FileSource {
	return &FileSource{Path: path}
}

// Regime returns the current regime
func (s *FileSource) Regime(ctx context.Context) (types.Regime, error) {
	if err := ctx.Err(); err != nil {
		return types.Regime{}, err
	}

	info, err := os.Stat(s.Path)
	if err != nil {
		return types.Regime{}, errors.Config("reading regime file "+s.Path, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.loaded && info.ModTime().Equal(s.modTime) && info.Size() == s.size {
		return s.cached, nil
	}

	log := logging.FromContext(ctx).Named("regime")
	r, err := LoadFile(s.Path)
	if err != nil {
		if s.loaded {
			// keep serving the last good regime while the file is broken
			log.Warn("regime reload failed, serving previous version",
				zap.String("path", s.Path), zap.String("regime", s.cached.ID), zap.Error(err))
			return s.cached, nil
		}
		return types.Regime{}, err
	}

	if s.loaded {
		log.Info("regime reloaded", zap.String("path", s.Path), zap.String("regime", r.ID))
	}
	s.cached, s.modTime, s.size, s.loaded = r, info.ModTime(), info.Size(), true
	return r, nil
}
