package speeddial

import (
	"fmt"
	"maps"
	"slices"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
)

// Registry owns a bounded set of speed dial directories. All methods are
// safe for concurrent use; a single lock guards the whole registry.
type Registry struct {
	directories map[string]*directory
	observers   map[uint64]Observer
	events      *sequencer
	opts        options
	nextID      uint64
	seq         uint64
	initialized bool
	mu          sync.RWMutex
}

// Stats summarizes the registry contents.
type Stats struct {
	Directories int  `json:"directories"`
	Capacity    int  `json:"capacity"`
	Entries     int  `json:"entries"`
	Initialized bool `json:"initialized"`
}

// New creates an uninitialized registry. Call Initialize before use.
func New(opts ...Option) (*Registry, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	if err := o.validate(); err != nil {
		return nil, err
	}

	return &Registry{
		directories: make(map[string]*directory),
		observers:   make(map[uint64]Observer),
		events:      newSequencer(),
		opts:        o,
	}, nil
}

// Initialize creates the configured directories. It reports false when the
// registry was already initialized, in which case nothing changes.
func (r *Registry) Initialize() bool {
	p, ok := r.initialize()
	if !ok {
		return false
	}

	r.events.deliver(p)
	return true
}

func (r *Registry) initialize() (pending, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.initialized {
		return pending{}, false
	}

	for i, capacity := range r.opts.capacities() {
		name := r.opts.names[i]
		r.directories[name] = newDirectory(name, capacity)
	}
	r.initialized = true

	return r.record(EventInitialized, "", Entry{}), true
}

// Initialized reports whether Initialize has run.
func (r *Registry) Initialized() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.initialized
}

// Close drops every directory and entry and returns the registry to the
// uninitialized state. It reports false when there was nothing to release.
func (r *Registry) Close() bool {
	p, ok := r.close()
	if !ok {
		return false
	}

	r.events.deliver(p)
	return true
}

func (r *Registry) close() (pending, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.initialized {
		return pending{}, false
	}

	clear(r.directories)
	r.initialized = false

	return r.record(EventClosed, "", Entry{}), true
}

// AddNumber stores number under code in the named directory.
func (r *Registry) AddNumber(directoryName, code, number string) error {
	_, err := r.AddEntry(directoryName, Entry{Code: code, Number: number})
	return err
}

// AddEntry stores entry in the named directory and returns it as stored,
// after the number policy has been applied.
func (r *Registry) AddEntry(directoryName string, entry Entry) (Entry, error) {
	p, err := r.addEntry(directoryName, &entry)
	if err != nil {
		return Entry{}, err
	}

	r.events.deliver(p)
	return entry, nil
}

func (r *Registry) addEntry(directoryName string, entry *Entry) (pending, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.initialized {
		return pending{}, ErrNotInitialized
	}

	if err := r.normalize(entry); err != nil {
		return pending{}, err
	}

	dir, err := r.lookup(directoryName)
	if err != nil {
		return pending{}, err
	}

	if dir.full() {
		return pending{}, fmt.Errorf("%w: %q holds %d entries", ErrDirectoryFull, directoryName, dir.capacity)
	}

	if _, exists := dir.entries[entry.Code]; exists {
		return pending{}, fmt.Errorf("%w: %q in %q", ErrDuplicateCode, entry.Code, directoryName)
	}

	dir.entries[entry.Code] = *entry

	return r.record(EventAdded, directoryName, *entry), nil
}

// PhoneNumber returns the number stored under code in the named directory.
func (r *Registry) PhoneNumber(directoryName, code string) (string, error) {
	entry, err := r.Entry(directoryName, code)
	if err != nil {
		return "", err
	}

	return entry.Number, nil
}

// Entry returns the entry stored under code in the named directory.
func (r *Registry) Entry(directoryName, code string) (Entry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	dir, err := r.lookup(directoryName)
	if err != nil {
		return Entry{}, err
	}

	entry, ok := dir.entries[code]
	if !ok {
		return Entry{}, fmt.Errorf("%w: %q in %q", ErrCodeNotFound, code, directoryName)
	}

	return entry, nil
}

// RemoveNumber deletes the entry stored under code in the named directory.
func (r *Registry) RemoveNumber(directoryName, code string) error {
	p, err := r.removeNumber(directoryName, code)
	if err != nil {
		return err
	}

	r.events.deliver(p)
	return nil
}

func (r *Registry) removeNumber(directoryName, code string) (pending, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	dir, err := r.lookup(directoryName)
	if err != nil {
		return pending{}, err
	}

	entry, ok := dir.entries[code]
	if !ok {
		return pending{}, fmt.Errorf("%w: %q in %q", ErrCodeNotFound, code, directoryName)
	}

	delete(dir.entries, code)

	return r.record(EventRemoved, directoryName, entry), nil
}

// Entries returns the entries of the named directory sorted by code. An
// existing empty directory yields an empty, non-nil slice.
func (r *Registry) Entries(directoryName string) ([]Entry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	dir, err := r.lookup(directoryName)
	if err != nil {
		return nil, err
	}

	return dir.sorted(), nil
}

// DirectoryNames returns the sorted directory names.
func (r *Registry) DirectoryNames() ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if !r.initialized {
		return nil, ErrNotInitialized
	}

	return slices.Sorted(maps.Keys(r.directories)), nil
}

// Directory describes the named directory.
func (r *Registry) Directory(directoryName string) (DirectoryInfo, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	dir, err := r.lookup(directoryName)
	if err != nil {
		return DirectoryInfo{}, err
	}

	return dir.info(), nil
}

// Directories describes every directory, sorted by name.
func (r *Registry) Directories() ([]DirectoryInfo, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if !r.initialized {
		return nil, ErrNotInitialized
	}

	infos := make([]DirectoryInfo, 0, len(r.directories))
	for _, name := range slices.Sorted(maps.Keys(r.directories)) {
		infos = append(infos, r.directories[name].info())
	}

	return infos, nil
}

// Stats returns a summary of the registry.
func (r *Registry) Stats() Stats {
	r.mu.RLock()
	defer r.mu.RUnlock()

	stats := Stats{Initialized: r.initialized}
	for _, dir := range r.directories {
		stats.Directories++
		stats.Capacity += dir.capacity
		stats.Entries += len(dir.entries)
	}

	return stats
}

// Subscribe registers an observer for registry events and returns a
// function that removes it.
func (r *Registry) Subscribe(observer Observer) (unsubscribe func()) {
	r.mu.Lock()
	defer r.mu.Unlock()

	id := r.nextID
	r.nextID++
	r.observers[id] = observer

	var once sync.Once
	return func() {
		once.Do(func() {
			r.mu.Lock()
			defer r.mu.Unlock()

			delete(r.observers, id)
		})
	}
}

// lookup resolves a directory. Callers must hold r.mu.
func (r *Registry) lookup(name string) (*directory, error) {
	if !r.initialized {
		return nil, ErrNotInitialized
	}

	dir, ok := r.directories[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrDirectoryNotFound, name)
	}

	return dir, nil
}

// record builds the event for a mutation and assigns its sequence number.
// Callers must hold r.mu.
func (r *Registry) record(kind EventKind, directoryName string, entry Entry) pending {
	event := Event{
		ID:        uuid.New(),
		Time:      time.Now(),
		Kind:      kind,
		Directory: directoryName,
		Code:      entry.Code,
		Number:    entry.Number,
		Name:      entry.Name,
		Seq:       r.seq,
	}
	r.seq++

	var observers []Observer
	if len(r.observers) > 0 {
		observers = slices.Collect(maps.Values(r.observers))
	}

	return pending{observers: observers, event: event}
}

// normalize validates entry and applies the number policy to it.
func (r *Registry) normalize(entry *Entry) error {
	if entry.Code == "" {
		return fmt.Errorf("%w: empty code", ErrInvalidCode)
	}
	if !utf8.ValidString(entry.Code) {
		return fmt.Errorf("%w: %q is not valid UTF-8", ErrInvalidCode, entry.Code)
	}
	if limit := r.opts.maxCodeLength; limit > 0 && utf8.RuneCountInString(entry.Code) > limit {
		return fmt.Errorf("%w: %q is longer than %d characters", ErrInvalidCode, entry.Code, limit)
	}

	if !utf8.ValidString(entry.Name) {
		return fmt.Errorf("%w: %q is not valid UTF-8", ErrInvalidName, entry.Name)
	}

	number, err := r.normalizeNumber(entry.Number)
	if err != nil {
		return err
	}
	entry.Number = number

	return nil
}

// normalizeNumber applies the number policy, truncating or rejecting
// numbers over the configured length. Lengths count characters, not bytes.
func (r *Registry) normalizeNumber(number string) (string, error) {
	if number == "" {
		return "", fmt.Errorf("%w: empty number", ErrInvalidNumber)
	}
	if !utf8.ValidString(number) {
		return "", fmt.Errorf("%w: %q is not valid UTF-8", ErrInvalidNumber, number)
	}

	policy := r.opts.number
	if policy.MaxLength == 0 || utf8.RuneCountInString(number) <= policy.MaxLength {
		return number, nil
	}

	if !policy.Truncate {
		return "", fmt.Errorf("%w: %q is longer than %d characters", ErrInvalidNumber, number, policy.MaxLength)
	}

	return truncate(number, policy.MaxLength), nil
}

// truncate keeps the first n characters of s.
func truncate(s string, n int) string {
	count := 0
	for i := range s {
		if count == n {
			return s[:i]
		}
		count++
	}

	return s
}
