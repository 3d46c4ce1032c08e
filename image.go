package main

import (
	"archive/zip"
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/bodgit/sevenzip"
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/nwaples/rardecode"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"
)

// FrameLoader decodes a playlist entry into a bitmap
type FrameLoader interface {
	Load(imagePath ImagePath) (image.Image, error)
}

// Preloader is implemented by loaders that can warm their cache in the background
type Preloader interface {
	Preload(imagePath ImagePath)
}

// PreloadStats provides statistics about preloading
type PreloadStats struct {
	QueueSize   int
	LoadedCount int
	FailedCount int
}

// ImageLoader decodes images and keeps the most recent ones in an LRU cache.
// Decoded images are CPU side; the GPU copy belongs to the renderer.
type ImageLoader struct {
	cache *lru.Cache[string, image.Image]
	load  func(ImagePath) (image.Image, error)

	requestChan chan ImagePath
	ctx         context.Context
	cancel      context.CancelFunc
	wg          sync.WaitGroup

	mu      sync.RWMutex
	stats   PreloadStats
	enabled bool
}

// NewImageLoader creates an ImageLoader. The preload worker runs until Stop.
func NewImageLoader(cacheSize int, preloadEnabled bool) *ImageLoader {
	cache, err := lru.New[string, image.Image](cacheSize)
	if err != nil {
		log.Printf("Error: Failed to create LRU cache: %v", err)
		cache, _ = lru.New[string, image.Image](8)
	}

	ctx, cancel := context.WithCancel(context.Background())
	l := &ImageLoader{
		cache:       cache,
		load:        loadImage,
		requestChan: make(chan ImagePath, 4),
		ctx:         ctx,
		cancel:      cancel,
		enabled:     preloadEnabled,
	}

	l.wg.Add(1)
	go l.worker()

	return l
}

// Load returns the decoded image, from the cache when possible
func (l *ImageLoader) Load(imagePath ImagePath) (image.Image, error) {
	if img, ok := l.cache.Get(imagePath.Path); ok {
		debugLog("Cache HIT: %s (cache: %d items)", imagePath.Path, l.cache.Len())
		return img, nil
	}

	img, err := l.load(imagePath)
	if err != nil {
		return nil, err
	}
	l.cache.Add(imagePath.Path, img)
	debugLog("Cache MISS: %s, loaded and cached (cache: %d items)", imagePath.Path, l.cache.Len())
	return img, nil
}

// Preload queues imagePath for background decoding. Never blocks.
func (l *ImageLoader) Preload(imagePath ImagePath) {
	if !l.IsEnabled() {
		return
	}
	if l.cache.Contains(imagePath.Path) {
		return
	}

	select {
	case l.requestChan <- imagePath:
	default:
		debugLog("Preload request channel full, skipping %s", imagePath.Path)
	}
}

// IsEnabled returns whether preloading is enabled
func (l *ImageLoader) IsEnabled() bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.enabled
}

// GetStats returns current preload statistics
func (l *ImageLoader) GetStats() PreloadStats {
	l.mu.RLock()
	defer l.mu.RUnlock()
	stats := l.stats
	stats.QueueSize = len(l.requestChan)
	return stats
}

// Stop stops the preload worker and waits for it to exit
func (l *ImageLoader) Stop() {
	l.cancel()
	l.wg.Wait()
}

func (l *ImageLoader) worker() {
	defer l.wg.Done()
	for {
		select {
		case <-l.ctx.Done():
			return
		case req := <-l.requestChan:
			if l.IsEnabled() {
				l.preloadImage(req)
			}
		}
	}
}

func (l *ImageLoader) preloadImage(imagePath ImagePath) {
	if l.cache.Contains(imagePath.Path) {
		return
	}

	img, err := l.load(imagePath)
	if err != nil {
		l.mu.Lock()
		l.stats.FailedCount++
		l.mu.Unlock()
		// The player reports the failure when it reaches this entry
		debugLog("Preload failed for %s: %v", imagePath.Path, err)
		return
	}
	l.cache.Add(imagePath.Path, img)

	l.mu.Lock()
	l.stats.LoadedCount++
	l.mu.Unlock()

	debugLog("Preloaded %s (cache: %d items)", imagePath.Path, l.cache.Len())
}

// Image loading functions

func decodeImage(r io.Reader, path string) (image.Image, error) {
	img, _, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}
	return img, nil
}

func loadImageFromZip(archivePath, entryPath string) (image.Image, error) {
	r, err := zip.OpenReader(archivePath)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	for _, f := range r.File {
		if f.Name == entryPath {
			rc, err := f.Open()
			if err != nil {
				return nil, err
			}
			defer rc.Close()

			data, err := io.ReadAll(rc)
			if err != nil {
				return nil, err
			}

			return decodeImage(bytes.NewReader(data), entryPath)
		}
	}
	return nil, fmt.Errorf("entry %s not found in %s", entryPath, archivePath)
}

func loadImageFromRar(archivePath, entryPath string) (image.Image, error) {
	f, err := os.Open(archivePath)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r, err := rardecode.NewReader(f, "")
	if err != nil {
		return nil, err
	}

	for {
		header, err := r.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}

		if header.Name == entryPath {
			data, err := io.ReadAll(r)
			if err != nil {
				return nil, err
			}
			return decodeImage(bytes.NewReader(data), entryPath)
		}
	}
	return nil, fmt.Errorf("entry %s not found in %s", entryPath, archivePath)
}

func loadImageFrom7z(archivePath, entryPath string) (image.Image, error) {
	r, err := sevenzip.OpenReader(archivePath)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	for _, f := range r.File {
		if f.Name == entryPath {
			rc, err := f.Open()
			if err != nil {
				return nil, err
			}
			defer rc.Close()

			data, err := io.ReadAll(rc)
			if err != nil {
				return nil, err
			}

			return decodeImage(bytes.NewReader(data), entryPath)
		}
	}
	return nil, fmt.Errorf("entry %s not found in %s", entryPath, archivePath)
}

func loadImage(imagePath ImagePath) (image.Image, error) {
	if imagePath.ArchivePath == "" {
		f, err := os.Open(imagePath.Path)
		if err != nil {
			return nil, err
		}
		defer f.Close()

		return decodeImage(f, imagePath.Path)
	}

	ext := strings.ToLower(filepath.Ext(imagePath.ArchivePath))
	switch ext {
	case ".zip":
		return loadImageFromZip(imagePath.ArchivePath, imagePath.EntryPath)
	case ".rar":
		return loadImageFromRar(imagePath.ArchivePath, imagePath.EntryPath)
	case ".7z":
		return loadImageFrom7z(imagePath.ArchivePath, imagePath.EntryPath)
	default:
		return nil, fmt.Errorf("unsupported archive format: %s", ext)
	}
}
