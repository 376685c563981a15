package models

import (
	"time"

	"bloodhound/internal/registry"
	id "bloodhound/pkg/domain"
)

// SourceOutcome records whether a single registry fetch succeeded, and if not,
// how it failed.
type SourceOutcome struct {
	OK          bool               `json:"ok"`
	FailureKind registry.FetchKind `json:"failure_kind,omitempty"`
}

// Snapshot is the merged view of one vendor across all four registries.
// Every record slot is always populated; failed fetches are filled with the
// source's Unknown sentinel and flagged in Sources.
type Snapshot struct {
	GSTIN string `json:"gstin"`
	PAN   id.PAN `json:"pan"`

	GSTN  *registry.GSTNRecord  `json:"gstn"`
	MCA   *registry.MCARecord   `json:"mca"`
	IBBI  *registry.IBBIRecord  `json:"ibbi"`
	Udyam *registry.UdyamRecord `json:"udyam"`

	Sources   map[registry.Source]SourceOutcome `json:"sources"`
	FetchedAt time.Time                         `json:"fetched_at"`
}

// Degraded reports whether any registry fetch failed and its slot holds a
// sentinel record.
func (s *Snapshot) Degraded() bool {
	for _, outcome := range s.Sources {
		if !outcome.OK {
			return true
		}
	}
	return false
}

// FailedSources returns the failed registries in merge order.
func (s *Snapshot) FailedSources() []registry.Source {
	var failed []registry.Source
	for _, source := range registry.Sources {
		if outcome, ok := s.Sources[source]; ok && !outcome.OK {
			failed = append(failed, source)
		}
	}
	return failed
}
