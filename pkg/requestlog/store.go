package requestlog

// Logger records request entries.
type Logger interface {
	Log(entry *Entry)
}

// Store is a queryable request history.
type Store interface {
	Logger

	// Get returns the entry with the given id, or nil.
	Get(id string) *Entry
	// List returns matching entries, newest first.
	List(filter *Filter) []*Entry
	// Clear removes every entry.
	Clear()
	// Count returns the number of stored entries.
	Count() int
}

// Nop is a Store that discards everything.
type Nop struct{}

func (Nop) Log(*Entry)            {}
func (Nop) Get(string) *Entry     { return nil }
func (Nop) List(*Filter) []*Entry { return []*Entry{} }
func (Nop) Clear()                {}
func (Nop) Count() int            { return 0 }
