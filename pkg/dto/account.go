package dto

// AccountRecord is the flat, storage-neutral form of an account row.
// Backends exchange these with the ledger; the ledger re-validates them on the way in.
type AccountRecord struct {
	Number     string
	HolderName string
	Balance    float64
}

// AccountRead is a read-optimized DTO for API responses.
type AccountRead struct {
	Number     string  `json:"number"`
	HolderName string  `json:"holder_name"`
	Balance    float64 `json:"balance"`
}

// BalanceSummary carries the aggregate figures over the whole ledger.
type BalanceSummary struct {
	Count   int     `json:"count"`
	Total   float64 `json:"total"`
	Average float64 `json:"average"`
}
