package dataset

// Record is one labeled heading from an evaluation dataset: a free-text
// query with the authority URI a cataloger assigned to it. Datasets are
// exported from existing catalog records, so the expected URI is treated as
// ground truth.
type Record struct {
	Query         string `json:"query" parquet:"query"`
	TypeID        string `json:"type" parquet:"type"`
	ExpectedURI   string `json:"expected_uri" parquet:"expected_uri"`
	ExpectedLabel string `json:"expected_label" parquet:"expected_label"`
}
