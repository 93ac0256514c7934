package engine

import (
	"context"

	"taskquest/internal/storage"
)

// Export returns a snapshot of the whole document stamped with the current time.
func (s *Service) Export(ctx context.Context) (*storage.Export, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return &storage.Export{ExportDate: s.clock(), Data: s.doc.Clone()}, nil
}
