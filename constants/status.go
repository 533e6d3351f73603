package constants

// RunStatus is the canonical status for an ingestion run.
type RunStatus string

// Stable values (store these exact strings in DB).
const (
	RunStatusStored RunStatus = "STORED" // points extracted and written
	RunStatusEmpty  RunStatus = "EMPTY"  // document yielded no points
	RunStatusFailed RunStatus = "FAILED" // terminal failure
)
