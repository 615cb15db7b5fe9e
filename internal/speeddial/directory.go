package speeddial

import (
	"cmp"
	"maps"
	"slices"
)

// Entry is a speed dial code and the phone number it reaches. Name is an
// optional contact name.
type Entry struct {
	Code   string `json:"code"`
	Number string `json:"number"`
	Name   string `json:"name,omitempty"`
}

// DirectoryInfo summarizes a directory.
type DirectoryInfo struct {
	Name     string `json:"name"`
	Capacity int    `json:"capacity"`
	Size     int    `json:"size"`
}

// directory is a named, capacity-bounded set of entries keyed by code.
type directory struct {
	entries  map[string]Entry
	name     string
	capacity int
}

func newDirectory(name string, capacity int) *directory {
	return &directory{
		name:     name,
		capacity: capacity,
		entries:  make(map[string]Entry),
	}
}

func (d *directory) full() bool {
	return len(d.entries) >= d.capacity
}

func (d *directory) info() DirectoryInfo {
	return DirectoryInfo{
		Name:     d.name,
		Capacity: d.capacity,
		Size:     len(d.entries),
	}
}

// sorted returns the entries ordered by code.
func (d *directory) sorted() []Entry {
	entries := slices.AppendSeq(make([]Entry, 0, len(d.entries)), maps.Values(d.entries))
	slices.SortFunc(entries, func(a, b Entry) int {
		return cmp.Compare(a.Code, b.Code)
	})

	return entries
}
