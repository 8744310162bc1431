package telemetry

import (
	"encoding/json"
)

// NotApplicable marks fields that carry no value in the
// active mode.
const NotApplicable = -1

// Event is the per-frame statistics record passed between
// pipeline stages and published to external consumers.
type Event struct {
	Frame       uint64  `json:"frame"`
	Progress    int     `json:"progress"`
	Current     int     `json:"current"`
	TotalUnique int     `json:"total_unique"`
	Coverage    float64 `json:"coverage"`
	FPS         float64 `json:"fps"`
	Suppressed  uint64  `json:"suppressed"`
}

func (e *Event) ToPayload() ([]byte, error) {
	return json.Marshal(e)
}
