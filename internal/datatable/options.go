package datatable

// DefaultPageSize is the number of rows per page when none is configured.
const DefaultPageSize = 10

// DefaultEmptyMessage is shown when the filtered result set is empty.
const DefaultEmptyMessage = "No hay datos disponibles"

// DefaultPageSizeOptions are offered by the page-size selector.
var DefaultPageSizeOptions = []int{10, 20, 30, 40, 50}

// Options configures one table instance. Each feature flag independently
// enables the corresponding toolbar control and engine behavior.
type Options[T any] struct {
	Searchable bool // Global text search
	Sortable   bool // Header-click sorting
	Selectable bool // Row checkboxes and select-all
	Pagination bool // Page slicing; when false the whole result is one page
	Exportable bool // CSV export
	Filterable bool // Column-visibility menu

	PageSize        int   // Rows per page (default: 10)
	PageSizeOptions []int // Choices for the page-size selector
	EmptyMessage    string
	Loading         bool

	// RowKey returns a unique key for a row. Selection uses it for
	// identity; when nil the row value itself is the identity, which for
	// pointer rows is reference identity. Required for non-comparable
	// row types such as MapRow.
	RowKey func(T) string

	// Hooks. All are invoked synchronously and their completion is never
	// awaited by the engine.
	OnRowClick        func(row T)
	OnSelectionChange func(selected []T)
	OnExport          func(rows []T)
	OnGlobalSearch    func(query string)
}

// DefaultOptions returns options with every feature enabled.
func DefaultOptions[T any]() Options[T] {
	return Options[T]{
		Searchable:      true,
		Sortable:        true,
		Selectable:      true,
		Pagination:      true,
		Exportable:      true,
		Filterable:      true,
		PageSize:        DefaultPageSize,
		PageSizeOptions: DefaultPageSizeOptions,
		EmptyMessage:    DefaultEmptyMessage,
	}
}

// withDefaults fills zero values that have no meaningful zero.
func (o Options[T]) withDefaults() Options[T] {
	if o.PageSize <= 0 {
		o.PageSize = DefaultPageSize
	}
	if len(o.PageSizeOptions) == 0 {
		o.PageSizeOptions = DefaultPageSizeOptions
	}
	if o.EmptyMessage == "" {
		o.EmptyMessage = DefaultEmptyMessage
	}
	return o
}
