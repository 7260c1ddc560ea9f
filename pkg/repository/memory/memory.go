package memory

import (
	"github.com/availiq/availiq/pkg/domain/interfaces"
)

// Memory is the in-memory repository backend used for development and tests
type Memory struct {
	roster      *rosterRepository
	response    *responseRepository
	dispatchLog *dispatchLogRepository
}

var _ interfaces.Repository = &Memory{}

func New() *Memory {
	return &Memory{
		roster:      newRosterRepository(),
		response:    newResponseRepository(),
		dispatchLog: newDispatchLogRepository(),
	}
}

func (m *Memory) Roster() interfaces.RosterRepository {
	return m.roster
}

func (m *Memory) Response() interfaces.ResponseRepository {
	return m.response
}

func (m *Memory) DispatchLog() interfaces.DispatchLogRepository {
	return m.dispatchLog
}

func (m *Memory) Close() error {
	return nil
}
