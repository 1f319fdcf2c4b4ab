package recorder

import "ChartPulse/internal/model"

// Snapshot holds one resolved chart evaluation for persistence.
type Snapshot struct {
	Data *model.ChartData
}

// FetchEvent records the outcome of one external history fetch.
type FetchEvent struct {
	Asset      string
	Class      model.AssetClass
	Source     string // fetcher name
	Points     int
	DurationMs int64
	Err        string // empty on success
}

// Recorder persists historical chart data for analysis.
type Recorder interface {
	RecordSnapshot(snap *Snapshot) error
	RecordFetch(evt *FetchEvent) error
	Close() error
}
