package frames

import (
	"bytes"
	"io"

	json "github.com/goccy/go-json"
)

// UnmarshalJSON decodes a RawRow. A row is a JSON array of column values
// when it holds data, or a JSON object carrying a OneApiErrors list when the
// server reports a row-level failure in its place.
func (r *RawRow) UnmarshalJSON(data []byte) error {
	var row []interface{}

	reader := bytes.NewReader(data)
	dec := json.NewDecoder(reader)
	dec.UseNumber()

	if err := dec.Decode(&row); err == nil {
		r.Row = row
		r.Errors = nil
		return nil
	}

	if _, err := reader.Seek(0, io.SeekStart); err != nil {
		return err
	}

	var errs struct {
		OneApiErrors []OneApiError `json:"OneApiErrors"`
	}
	dec = json.NewDecoder(reader)
	if err := dec.Decode(&errs); err != nil {
		return err
	}
	r.Row = nil
	r.Errors = errs.OneApiErrors
	return nil
}
