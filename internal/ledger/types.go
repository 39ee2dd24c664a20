package ledger

// Counter is one persisted counter row: a normalized query text, how many
// times it has been searched, and a snapshot of the first result at the time
// the row was created. The snapshot is denormalized and is not kept in sync
// with the catalog.
type Counter struct {
	DocumentID string `json:"$id"`
	QueryText  string `json:"queryText"`
	Count      int    `json:"count"`
	MovieID    int    `json:"movieID"`
	Title      string `json:"title"`
	PosterURL  string `json:"posterURL"`
}

type documentList struct {
	Total     int       `json:"total"`
	Documents []Counter `json:"documents"`
}

type createRequest struct {
	DocumentID string      `json:"documentId"`
	Data       counterData `json:"data"`
}

type updateRequest struct {
	Data map[string]any `json:"data"`
}

type counterData struct {
	QueryText string `json:"queryText"`
	Count     int    `json:"count"`
	MovieID   int    `json:"movieID"`
	Title     string `json:"title"`
	PosterURL string `json:"posterURL"`
}
