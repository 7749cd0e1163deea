package model

import "time"

// StatusSnapshot is generated fresh on every health poll and websocket tick;
// no history is kept.
type StatusSnapshot struct {
	Status             string `json:"status"`
	Timestamp          string `json:"timestamp"`
	DatastoreConnected bool   `json:"datastoreConnected"`
}

func NewStatusSnapshot(datastoreConnected bool) StatusSnapshot {
	return StatusSnapshot{
		Status:             "OK",
		Timestamp:          time.Now().UTC().Format(time.RFC3339),
		DatastoreConnected: datastoreConnected,
	}
}

// StatusMessage is the websocket frame pushed to /ws clients.
type StatusMessage struct {
	Type string         `json:"type"`
	Data StatusSnapshot `json:"data"`
}
