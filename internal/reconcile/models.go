package reconcile

import "github.com/timothy-mendenhall/lc-reconcile-extended/internal/vocab"

// Query is one entry of an incoming reconciliation batch. Type is a pointer
// because an entry that omits the key entirely is handled differently from
// one carrying an empty or unknown type.
type Query struct {
	Query string  `json:"query"`
	Type  *string `json:"type"`
}

// Candidate is one scored suggestion in the wire format OpenRefine expects.
type Candidate struct {
	ID    string     `json:"id"`
	Name  string     `json:"name"`
	Score int        `json:"score"`
	Match bool       `json:"match"`
	Type  vocab.Type `json:"type"`
}

// Result wraps the candidate list for one batch slot.
type Result struct {
	Result []Candidate `json:"result"`
}

// Metadata is the service description returned when no queries are supplied.
type Metadata struct {
	Name            string          `json:"name"`
	DefaultTypes    []vocab.TypeRef `json:"defaultTypes"`
	IdentifierSpace string          `json:"identifierSpace"`
	SchemaSpace     string          `json:"schemaSpace"`
	View            View            `json:"view"`
}

// View tells OpenRefine how to turn a candidate ID into a link.
type View struct {
	URL string `json:"url"`
}
