package requestid

import (
	"runtime"
	"sync"
	"weak"

	glog "github.com/goliatone/go-logger/glog"
	"github.com/google/uuid"
)

// Attribute is an identifier slot for host type H. Each Attribute owns an
// independent table; two attributes declared for the same host type never
// share values.
//
// The table is weak-keyed: holding an entry never keeps the host alive, and
// entries are removed once their host becomes unreachable.
type Attribute[H any] struct {
	logger glog.Logger

	mu  sync.RWMutex
	ids map[weak.Pointer[H]]uuid.UUID
}

type Option[H any] func(*Attribute[H])

// WithLogger enables debug logging on first assignment.
func WithLogger[H any](logger glog.Logger) Option[H] {
	return func(a *Attribute[H]) {
		a.logger = logger
	}
}

func New[H any](options ...Option[H]) *Attribute[H] {
	a := &Attribute[H]{
		ids: make(map[weak.Pointer[H]]uuid.UUID),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(a)
	}
	return a
}

// Get returns the identifier assigned to host, generating one on first
// access. Generation happens at most once per host: concurrent first reads
// all observe the same value. Reads of an already-assigned identifier only
// take the shared lock.
//
// Get panics on a nil host; there is no instance to key the identifier to.
func (a *Attribute[H]) Get(host *H) uuid.UUID {
	if host == nil {
		panic("requestid: nil host")
	}
	key := weak.Make(host)

	a.mu.RLock()
	id, ok := a.ids[key]
	a.mu.RUnlock()
	if ok {
		return id
	}

	a.mu.Lock()
	if existing, ok := a.ids[key]; ok {
		a.mu.Unlock()
		return existing
	}

	id = uuid.New()
	a.ids[key] = id
	a.mu.Unlock()

	runtime.AddCleanup(host, func(k weak.Pointer[H]) {
		a.mu.Lock()
		delete(a.ids, k)
		a.mu.Unlock()
	}, key)

	if a.logger != nil {
		a.logger.Debug("request id assigned", "request_id", id.String())
	}
	return id
}

// Set always fails: the identifier is established only through lazy
// generation on first Get.
func (a *Attribute[H]) Set(host *H, value uuid.UUID) error {
	_ = host
	_ = value
	return &ImmutableAttributeError{Op: "set"}
}

// Delete always fails: an assigned identifier lives as long as its host.
func (a *Attribute[H]) Delete(host *H) error {
	_ = host
	return &ImmutableAttributeError{Op: "delete"}
}

// Encoded returns the textual form of the host's identifier, generating it
// first if absent. The encoding name is validated before the generation
// path runs, so an unsupported name never assigns an identifier.
func (a *Attribute[H]) Encoded(host *H, enc Encoding) (string, error) {
	if err := validateEncoding(enc); err != nil {
		return "", err
	}
	return encode(a.Get(host), enc), nil
}

// Len reports how many hosts currently have an assigned identifier.
func (a *Attribute[H]) Len() int {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return len(a.ids)
}
