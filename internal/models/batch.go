package models

import (
	"encoding/json"
	"time"
)

// BatchStatus tracks progress of one ingestion batch. It is created at
// submission, mutated once per record by the orchestrator, and frozen once
// FinishedAt is set.
type BatchStatus struct {
	Total      int        `json:"total"`
	Processed  int        `json:"processed"`
	Approved   int        `json:"approved"`
	Rejected   int        `json:"rejected"`
	Errors     int        `json:"errors"`
	StartedAt  time.Time  `json:"started_at"`
	FinishedAt *time.Time `json:"finished_at"`
}

func (s BatchStatus) MarshalBinary() ([]byte, error) {
	return json.Marshal(s)
}

func (s *BatchStatus) UnmarshalBinary(data []byte) error {
	return json.Unmarshal(data, s)
}
