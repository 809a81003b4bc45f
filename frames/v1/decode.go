// Package v1 decodes the management endpoint's non-streaming response
// body: a single JSON object carrying an array of tables, the last of which
// is an index describing the role of every other table (§4.D, §4.H of the
// service's query surface).
package v1

import (
	"bufio"
	"bytes"
	"io"

	json "github.com/goccy/go-json"

	"github.com/kustoclient/kustoclient/errors"
)

// RawRow is one row of a v1 table: either a list of column values or, when
// the query failed outright, a list of exception strings.
type RawRow struct {
	Row    []interface{}
	Errors []string
}

// UnmarshalJSON decodes a RawRow, trying the row-of-values shape first and
// falling back to the exceptions shape.
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
		Errors []string `json:"Exceptions"`
	}
	dec = json.NewDecoder(reader)
	if err := dec.Decode(&errs); err != nil {
		return err
	}
	r.Row = nil
	r.Errors = errs.Errors
	return nil
}

// RawColumn is a v1 column descriptor.
type RawColumn struct {
	ColumnName string `json:"ColumnName"`
	ColumnType string `json:"ColumnType"`
}

// RawTable is one table in a v1 response body.
type RawTable struct {
	TableName string      `json:"TableName"`
	Columns   []RawColumn `json:"Columns"`
	Rows      []RawRow    `json:"Rows"`
}

// Body is the full decoded v1 response.
type Body struct {
	Tables     []RawTable `json:"Tables"`
	Exceptions []string   `json:"Exceptions"`
}

// Decode reads and decodes a v1 response body. data is closed before
// returning.
func Decode(data io.ReadCloser, op errors.Op) (*Body, error) {
	defer data.Close()

	br := bufio.NewReader(data)
	peek, err := br.Peek(1)
	if err != nil {
		if err == io.EOF {
			return nil, errors.ES(op, errors.KHTTPError, "empty response body")
		}
		return nil, errors.E(op, errors.KIO, err)
	}
	if peek[0] != '{' {
		all, _ := io.ReadAll(br)
		return nil, errors.ES(op, errors.KHTTPError, "unexpected response body: %s", string(all))
	}

	var body Body
	dec := json.NewDecoder(br)
	dec.UseNumber()
	if err := dec.Decode(&body); err != nil {
		return nil, errors.E(op, errors.KInternal, err)
	}

	if len(body.Exceptions) > 0 {
		return nil, errors.ES(op, errors.KInternal, "management command failed: %v", body.Exceptions)
	}
	if len(body.Tables) == 0 {
		return nil, errors.ES(op, errors.KInternal, "management command returned no tables")
	}

	return &body, nil
}
