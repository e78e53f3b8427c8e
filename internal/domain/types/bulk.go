package types

// BulkUploadResult is the server's report after processing an uploaded CSV.
type BulkUploadResult struct {
	BatchID   string            `json:"batch_id,omitempty"`
	Processed int               `json:"processed"`
	Failed    int               `json:"failed"`
	Errors    []BulkUploadError `json:"errors,omitempty"`
}

// BulkUploadError is a server-reported row failure.
type BulkUploadError struct {
	Row     int    `json:"row"`
	Message string `json:"message"`
}
