package pipeline

import "fmt"

// Sources named in FetchError.
const (
	SourceDisplays   = "displays"
	SourceExistCount = "exist-count"
	SourceMonitoring = "monitoring"
	SourceUnitData   = "unit-data"
)

// FetchError names the request that aborted a load.
type FetchError struct {
	Source string
	UnitID string
	Err    error
}

func (e *FetchError) Error() string {
	if e.UnitID != "" {
		return fmt.Sprintf("fetch %s for %q: %v", e.Source, e.UnitID, e.Err)
	}
	return fmt.Sprintf("fetch %s: %v", e.Source, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }
