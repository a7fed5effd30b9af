package media

import (
	"fmt"
	"runtime"
	"sync"

	"github.com/KAMASDM/naishad/internal/models"

	"github.com/gammazero/workerpool"
)

// SaveGallery resolves every gallery image concurrently. Order is kept and
// the first error is returned; no new images are started after it.
func (s *Store) SaveGallery(items []models.GalleryImage, opts Options) ([]models.GalleryImage, error) {
	out := make([]models.GalleryImage, len(items))
	if len(items) == 0 {
		return out, nil
	}

	workers := runtime.NumCPU()
	if workers > len(items) {
		workers = len(items)
	}
	wp := workerpool.New(workers)

	var (
		mu       sync.Mutex
		firstErr error
	)
	failed := func() bool {
		mu.Lock()
		defer mu.Unlock()
		return firstErr != nil
	}

	for i, item := range items {
		if failed() {
			break
		}
		wp.Submit(func() {
			if failed() {
				return
			}
			url, err := s.Resolve(item.Image, opts)
			if err != nil {
				mu.Lock()
				if firstErr == nil {
					firstErr = fmt.Errorf("gallery image %d: %w", i+1, err)
				}
				mu.Unlock()
				return
			}
			out[i] = models.GalleryImage{Image: url, AltText: item.AltText}
		})
	}
	wp.StopWait()

	if firstErr != nil {
		return nil, firstErr
	}
	return out, nil
}
