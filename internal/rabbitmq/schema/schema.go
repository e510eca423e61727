package schema

import "encoding/json"

// CVUploaded is published by the API when a CV file lands in storage and
// consumed by the worker.
type CVUploaded struct {
	CVID int64
}

func (m *CVUploaded) Marshal() ([]byte, error) {
	return json.Marshal(m)
}

func (m *CVUploaded) Unmarshal(data []byte) error {
	return json.Unmarshal(data, m)
}

// CVAnalyzed is published by the worker when analysis completes and consumed
// by the API to notify connected clients.
type CVAnalyzed struct {
	CVID   int64
	UserID int64
	Status string
}

func (m *CVAnalyzed) Marshal() ([]byte, error) {
	return json.Marshal(m)
}

func (m *CVAnalyzed) Unmarshal(data []byte) error {
	return json.Unmarshal(data, m)
}
