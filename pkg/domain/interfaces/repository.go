package interfaces

// Repository defines the interface for data persistence. Implementations
// are tabular stores accessed by append and scan only; read-side logic
// resolves duplicates, the store never does.
type Repository interface {
	Roster() RosterRepository
	Response() ResponseRepository
	DispatchLog() DispatchLogRepository

	Close() error
}
