package main

import (
	"archive/zip"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/bodgit/sevenzip"
	"github.com/nwaples/rardecode"
)

var (
	// ErrEmptyPlaylist is returned when there is nothing to show.
	ErrEmptyPlaylist = errors.New("playlist is empty")
	// ErrDirectoryUnavailable is returned when the source cannot be listed.
	ErrDirectoryUnavailable = errors.New("source directory unavailable")
)

type ImagePath struct {
	Path        string // Local file path or archive:entry format
	ArchivePath string // Empty for regular files, path to archive for entries
	EntryPath   string // Empty for regular files, path within archive for entries
}

// Playlist is the ordered list of images to show. It is never mutated after load.
type Playlist struct {
	source string
	paths  []ImagePath
}

// NewPlaylist builds a playlist from already ordered paths.
func NewPlaylist(source string, paths []ImagePath) *Playlist {
	p := make([]ImagePath, len(paths))
	copy(p, paths)
	return &Playlist{source: source, paths: p}
}

func (p *Playlist) Source() string {
	return p.source
}

func (p *Playlist) Count() int {
	if p == nil {
		return 0
	}
	return len(p.paths)
}

// At returns the entry at a normalized position.
func (p *Playlist) At(n int) (int, ImagePath, error) {
	idx, err := Normalize(n, p.Count())
	if err != nil {
		return 0, ImagePath{}, err
	}
	return idx, p.paths[idx], nil
}

// Normalize maps any integer into [0, count) cyclically, so that -1 is the last entry.
func Normalize(n, count int) (int, error) {
	if count <= 0 {
		return 0, ErrEmptyPlaylist
	}
	m := n % count
	if m < 0 {
		m += count
	}
	return m, nil
}

func isArchiveExt(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".zip", ".rar", ".7z":
		return true
	default:
		return false
	}
}

func isSupportedExt(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".png", ".jpg", ".jpeg", ".webp", ".bmp", ".gif":
		return true
	default:
		return false
	}
}

// LoadPlaylist lists source once and sorts the result. source is either a directory,
// listed without recursion, or a zip/rar/7z archive.
// With supportedOnly unset every regular file in a directory is kept; files that
// fail to decode are skipped at playback time.
func LoadPlaylist(source string, sortMethod int, supportedOnly bool) (*Playlist, error) {
	info, err := os.Stat(source)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrDirectoryUnavailable, source, err)
	}

	var images []ImagePath
	if info.IsDir() {
		images, err = collectDirectory(source, supportedOnly)
	} else if isArchiveExt(source) {
		images, err = processArchive(source)
	} else {
		return nil, fmt.Errorf("%w: %s is not a directory or archive", ErrDirectoryUnavailable, source)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrDirectoryUnavailable, source, err)
	}

	if len(images) == 0 {
		return nil, fmt.Errorf("%w: no files in %s", ErrEmptyPlaylist, source)
	}

	sorted := sortImagePaths(images, sortMethod)
	debugLog("Loaded %d entries from %s (sort: %s)", len(sorted), source, getSortMethodName(sortMethod))
	return &Playlist{source: source, paths: sorted}, nil
}

func collectDirectory(dir string, supportedOnly bool) ([]ImagePath, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var images []ImagePath
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if !entry.Type().IsRegular() {
			// Follow symlinks but drop anything that is not a file behind them
			fi, err := os.Stat(filepath.Join(dir, entry.Name()))
			if err != nil || !fi.Mode().IsRegular() {
				continue
			}
		}

		fullPath := filepath.Join(dir, entry.Name())
		if supportedOnly && !isSupportedExt(fullPath) {
			continue
		}
		images = append(images, ImagePath{Path: fullPath})
	}
	return images, nil
}

// Archive listing

func extractImagesFromZip(archivePath string) ([]ImagePath, error) {
	r, err := zip.OpenReader(archivePath)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	var images []ImagePath
	for _, f := range r.File {
		if !f.FileInfo().IsDir() && isSupportedExt(f.Name) {
			images = append(images, ImagePath{
				Path:        archivePath + ":" + f.Name,
				ArchivePath: archivePath,
				EntryPath:   f.Name,
			})
		}
	}
	return images, nil
}

func extractImagesFromRar(archivePath string) ([]ImagePath, error) {
	f, err := os.Open(archivePath)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r, err := rardecode.NewReader(f, "")
	if err != nil {
		return nil, err
	}

	var images []ImagePath
	for {
		header, err := r.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}

		if !header.IsDir && isSupportedExt(header.Name) {
			images = append(images, ImagePath{
				Path:        archivePath + ":" + header.Name,
				ArchivePath: archivePath,
				EntryPath:   header.Name,
			})
		}
	}
	return images, nil
}

func extractImagesFrom7z(archivePath string) ([]ImagePath, error) {
	r, err := sevenzip.OpenReader(archivePath)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	var images []ImagePath
	for _, f := range r.File {
		if !f.FileInfo().IsDir() && isSupportedExt(f.Name) {
			images = append(images, ImagePath{
				Path:        archivePath + ":" + f.Name,
				ArchivePath: archivePath,
				EntryPath:   f.Name,
			})
		}
	}
	return images, nil
}

func processArchive(archivePath string) ([]ImagePath, error) {
	ext := strings.ToLower(filepath.Ext(archivePath))
	switch ext {
	case ".zip":
		return extractImagesFromZip(archivePath)
	case ".rar":
		return extractImagesFromRar(archivePath)
	case ".7z":
		return extractImagesFrom7z(archivePath)
	default:
		return nil, fmt.Errorf("unsupported archive format: %s", ext)
	}
}
