package interfaces

import "github.com/m-mizutani/goerr/v2"

// Sentinel errors shared by all repository backends
var (
	ErrMemberNotFound = goerr.New("member not found")
)
