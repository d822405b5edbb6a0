package ledger

// Store is the persistence contract the engine needs. The sqlite-backed
// Repository is the production implementation; tests use an in-memory one.
//
// Upsert must be atomic for a single market name and GetAll must reflect
// all prior Upsert/Delete calls.
type Store interface {
	// Get returns the holding for a market name, or nil when absent.
	Get(marketName string) (*Holding, error)

	// GetAll returns every holding in the ledger.
	GetAll() ([]Holding, error)

	// Upsert inserts or replaces the holding for its market name.
	Upsert(h Holding) error

	// Delete removes a holding and reports whether it existed.
	Delete(marketName string) (bool, error)
}
