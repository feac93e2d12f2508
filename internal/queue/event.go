// Package queue defines message payloads exchanged over the message broker.
package queue

// FileNotarizedEvent is published when a notary file reaches the
// completed status. It carries enough information for downstream
// consumers to log or notify without querying the primary database.
type FileNotarizedEvent struct {
	FileID      uint64 `json:"file_id"`
	FileNumber  string `json:"file_number"`
	Title       string `json:"title"`
	TotalFeeVND int64  `json:"total_fee_vnd"`
	NotarizedBy uint64 `json:"notarized_by"`
	PartyCount  int    `json:"party_count"`
	AssetCount  int    `json:"asset_count"`
	NotarizedAt string `json:"notarized_at"`
}
