package tables

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"sort"
	"sync"

	"github.com/JonMunkholm/bizdash/internal/datatable"
	"github.com/JonMunkholm/bizdash/internal/store"
)

// Definition describes a mountable listing.
type Definition struct {
	Key         string // URL key, e.g. "negocios"
	Title       string
	Description string
	Order       int // Navigation order
	Mount       func(env Env) (Handle, error)
}

// Env is what a mounted table needs from its owner.
type Env struct {
	Store           store.Store
	PageSize        int
	PageSizeOptions []int
	Notify          func(Notice) // Optional sink for hook notices
}

func (e Env) notify(n Notice) {
	if e.Notify != nil {
		e.Notify(n)
	}
}

// Level is the severity of a Notice.
type Level string

const (
	LevelInfo    Level = "info"
	LevelSuccess Level = "success"
	LevelError   Level = "error"
)

// Notice is a user-facing message raised by a table hook.
type Notice struct {
	Level   Level  `json:"level"`
	Message string `json:"message"`
}

// Handle is a mounted table driven by string intents.
type Handle interface {
	Definition() Definition

	// Refresh reloads rows from the store. Selection is pruned to rows
	// still present.
	Refresh(ctx context.Context) error

	Search(query string)
	Sort(column string)
	SortState() (string, datatable.SortDirection)
	SetPage(page int)
	SetPageSize(size int) bool
	ToggleRow(key string) bool
	ToggleSelectAll()
	ClearSelection()
	ToggleColumn(key string) bool
	ClickRow(key string) bool
	Export(w io.Writer) error

	Model() Model
}

var (
	registry   = make(map[string]Definition)
	registryMu sync.RWMutex
)

// Register adds a listing to the registry.
// Panics if a listing with the same key is already registered.
func Register(def Definition) {
	registryMu.Lock()
	defer registryMu.Unlock()

	if def.Key == "" || def.Mount == nil {
		panic(fmt.Sprintf("invalid table definition: %q", def.Key))
	}
	if _, exists := registry[def.Key]; exists {
		panic(fmt.Sprintf("table already registered: %s", def.Key))
	}
	registry[def.Key] = def
}

// Get returns a listing by key.
func Get(key string) (Definition, bool) {
	registryMu.RLock()
	defer registryMu.RUnlock()

	def, ok := registry[key]
	return def, ok
}

// All returns every registered listing, by Order then Key.
func All() []Definition {
	registryMu.RLock()
	defer registryMu.RUnlock()

	result := make([]Definition, 0, len(registry))
	for _, def := range registry {
		result = append(result, def)
	}

	sort.Slice(result, func(i, j int) bool {
		if result[i].Order != result[j].Order {
			return result[i].Order < result[j].Order
		}
		return result[i].Key < result[j].Key
	})
	return result
}

// Keys returns the registered keys in navigation order.
func Keys() []string {
	defs := All()
	keys := make([]string, len(defs))
	for i, def := range defs {
		keys[i] = def.Key
	}
	return keys
}

// Path returns the URL of a listing's table endpoint, plus optional
// sub-path segments.
func Path(key string, parts ...string) string {
	p := "/t/" + url.PathEscape(key)
	for _, part := range parts {
		p += "/" + url.PathEscape(part)
	}
	return p
}
