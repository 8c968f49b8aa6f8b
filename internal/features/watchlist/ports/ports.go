package ports

import "shipment-tracker/internal/features/watchlist/domain"

// Repository is the secondary port for watchlist persistence. The
// watchlist is small and rewritten wholesale: Load returns the full
// set, Save replaces it atomically.
type Repository interface {
	// Load reads the full watchlist. A missing store yields an empty
	// watchlist, not an error.
	Load() (domain.Watchlist, error)
	// Save replaces the persisted watchlist.
	Save(list domain.Watchlist) error
}
