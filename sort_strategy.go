package main

import (
	"sort"

	"github.com/maruel/natural"
)

// Sort method constants
const (
	SortNatural    = 0 // Natural sort order (e.g., img1, img2, img10)
	SortSimple     = 1 // Simple string sort (lexicographical)
	SortEntryOrder = 2 // Keep listing order (no sort)
)

// SortStrategy orders the playlist once at load time
type SortStrategy interface {
	// Sort returns a new sorted slice without modifying the original
	Sort(images []ImagePath) []ImagePath
	// Name returns the human-readable name of the strategy
	Name() string
	// ID returns the numeric identifier for config storage
	ID() int
}

// NaturalSortStrategy implements natural sorting using maruel/natural
type NaturalSortStrategy struct{}

func (s *NaturalSortStrategy) Sort(images []ImagePath) []ImagePath {
	result := cloneImagePaths(images)
	sort.SliceStable(result, func(i, j int) bool {
		return natural.Less(result[i].Path, result[j].Path)
	})
	return result
}

func (s *NaturalSortStrategy) Name() string {
	return "Natural"
}

func (s *NaturalSortStrategy) ID() int {
	return SortNatural
}

// SimpleSortStrategy sorts by full path, byte by byte. No secondary key.
type SimpleSortStrategy struct{}

func (s *SimpleSortStrategy) Sort(images []ImagePath) []ImagePath {
	result := cloneImagePaths(images)
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Path < result[j].Path
	})
	return result
}

func (s *SimpleSortStrategy) Name() string {
	return "Simple"
}

func (s *SimpleSortStrategy) ID() int {
	return SortSimple
}

// EntryOrderSortStrategy preserves the listing order
type EntryOrderSortStrategy struct{}

func (s *EntryOrderSortStrategy) Sort(images []ImagePath) []ImagePath {
	return cloneImagePaths(images)
}

func (s *EntryOrderSortStrategy) Name() string {
	return "Entry Order"
}

func (s *EntryOrderSortStrategy) ID() int {
	return SortEntryOrder
}

func cloneImagePaths(images []ImagePath) []ImagePath {
	result := make([]ImagePath, len(images))
	copy(result, images)
	return result
}

// GetSortStrategy returns the strategy for a sort method ID
func GetSortStrategy(sortMethod int) SortStrategy {
	switch sortMethod {
	case SortNatural:
		return &NaturalSortStrategy{}
	case SortSimple:
		return &SimpleSortStrategy{}
	case SortEntryOrder:
		return &EntryOrderSortStrategy{}
	default:
		return &SimpleSortStrategy{}
	}
}

// GetAllSortStrategies returns all available sort strategies
func GetAllSortStrategies() []SortStrategy {
	return []SortStrategy{
		&NaturalSortStrategy{},
		&SimpleSortStrategy{},
		&EntryOrderSortStrategy{},
	}
}

// getSortMethodName returns the human-readable name of a sort method
func getSortMethodName(sortMethod int) string {
	return GetSortStrategy(sortMethod).Name()
}

// sortImagePaths returns a sorted copy of images
func sortImagePaths(images []ImagePath, sortMethod int) []ImagePath {
	return GetSortStrategy(sortMethod).Sort(images)
}

// parseSortMethod accepts the names used on the command line
func parseSortMethod(name string) (int, bool) {
	for _, s := range GetAllSortStrategies() {
		if name == s.Name() {
			return s.ID(), true
		}
	}
	switch name {
	case "natural":
		return SortNatural, true
	case "simple", "lexical":
		return SortSimple, true
	case "entry", "none":
		return SortEntryOrder, true
	}
	return 0, false
}
