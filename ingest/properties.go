// Package ingest builds and submits queued-ingestion messages: a JSON
// descriptor of a blob already staged in object storage, enqueued onto one
// of the service's ingestion queues for the backend to pick up
// asynchronously. Local-file and stream upload paths are out of scope;
// only Blob-reference ingestion is implemented.
package ingest

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// DataFormat names the encoding of the data inside the referenced blob.
type DataFormat int

const (
	DFUnknown DataFormat = iota
	AVRO
	ApacheAVRO
	CSV
	JSON
	MultiJSON
	ORC
	Parquet
	PSV
	Raw
	SCSV
	SOHSV
	SingleJSON
	TSV
	TSVE
	TXT
)

type dfDescriptor struct {
	camelName string
	jsonName  string
}

var dfDescriptions = []dfDescriptor{
	{"", ""},
	{"Avro", "avro"},
	{"ApacheAvro", "avro"},
	{"Csv", "csv"},
	{"Json", "json"},
	{"MultiJson", "json"},
	{"Orc", "orc"},
	{"Parquet", "parquet"},
	{"Psv", "psv"},
	{"Raw", "raw"},
	{"Scsv", "scsv"},
	{"Sohsv", "sohsv"},
	{"SingleJson", "json"},
	{"Tsv", "tsv"},
	{"Tsve", "tsve"},
	{"Txt", "txt"},
}

// String implements fmt.Stringer, returning the lower-case wire name used by
// the Additional.Format field (e.g. "json", not "MultiJson").
func (d DataFormat) String() string {
	if d > 0 && int(d) < len(dfDescriptions) {
		return dfDescriptions[d].jsonName
	}
	return ""
}

// CamelCase returns the wire name used by the
// Additional.IngestionMappingType field (e.g. "MultiJson"), which differs
// in case from Format's.
func (d DataFormat) CamelCase() string {
	if d > 0 && int(d) < len(dfDescriptions) {
		return dfDescriptions[d].camelName
	}
	return ""
}

// MarshalJSON implements json.Marshaler.
func (d DataFormat) MarshalJSON() ([]byte, error) {
	if d == DFUnknown {
		return nil, fmt.Errorf("DataFormat is unset")
	}
	return json.Marshal(d.String())
}

// ReportLevel controls how much ingestion status the service reports back.
type ReportLevel int

const (
	FailuresOnly ReportLevel = iota
	None
	FailuresAndSuccesses
)

// ReportMethod controls where ingestion status is reported.
type ReportMethod int

const (
	ReportStatusToQueue ReportMethod = iota
	ReportStatusToTable
	ReportStatusToQueueAndTable
)

// Properties is the JSON-serializable ingestion descriptor sent in the
// Base64-encoded body of every queued message.
type Properties struct {
	ID                  uuid.UUID    `json:"Id"`
	BlobPath            string       `json:"BlobPath"`
	DatabaseName        string       `json:"DatabaseName"`
	TableName           string       `json:"TableName"`
	RawDataSize         int64        `json:"RawDataSize,omitempty"`
	RetainBlobOnSuccess bool         `json:"RetainBlobOnSuccess,omitempty"`
	FlushImmediately    bool         `json:"FlushImmediately"`
	IgnoreSizeLimit     bool         `json:"IgnoreSizeLimit,omitempty"`
	ReportLevel         ReportLevel  `json:"ReportLevel,omitempty"`
	ReportMethod        ReportMethod `json:"ReportMethod,omitempty"`

	// SourceMessageCreationTime defaults to the current time at
	// MarshalJSONString time if left zero.
	SourceMessageCreationTime time.Time  `json:"SourceMessageCreationTime,omitempty"`
	Additional                Additional `json:"AdditionalProperties"`
}

// Additional carries the mapping/format/tag fields the server reads out of
// AdditionalProperties.
type Additional struct {
	AuthContext           string     `json:"authorizationContext,omitempty"`
	IngestionMapping      string     `json:"ingestionMapping,omitempty"`
	IngestionMappingRef   string     `json:"ingestionMappingReference,omitempty"`
	IngestionMappingType  DataFormat `json:"ingestionMappingType,omitempty"`
	ValidationPolicy      string     `json:"validationPolicy,omitempty"`
	Format                DataFormat `json:"format,omitempty"`
	Tags                  []string   `json:"tags,omitempty"`
	IngestIfNotExists     string     `json:"ingestIfNotExists,omitempty"`
}

// MarshalJSON implements json.Marshaler. The server expects
// ingestionMappingType and format to be encoded in different cases
// (IngestionMappingType.CamelCase() vs .String()) despite sharing a Go
// type; this hand-rolled marshal keeps that split without a second enum.
func (a Additional) MarshalJSON() ([]byte, error) {
	type additional2 Additional
	b, err := json.Marshal(additional2(a))
	if err != nil {
		return nil, err
	}

	var m map[string]interface{}
	if err := json.Unmarshal(b, &m); err != nil {
		return nil, err
	}
	if _, ok := m["ingestionMappingType"]; ok {
		m["ingestionMappingType"] = a.IngestionMappingType.CamelCase()
	}
	return json.Marshal(m)
}

// MarshalJSONString fills in defaults, validates, and returns the
// Base64-encoded JSON body the message carries.
func (p Properties) MarshalJSONString() (string, error) {
	p = p.withDefaults()
	if err := p.validate(); err != nil {
		return "", err
	}

	b, err := json.Marshal(p)
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(b), nil
}

func (p Properties) withDefaults() Properties {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	if p.SourceMessageCreationTime.IsZero() {
		p.SourceMessageCreationTime = time.Now()
	}
	return p
}

func (p Properties) validate() error {
	switch {
	case p.ID == uuid.Nil:
		return fmt.Errorf("the ID cannot be a zero-value UUID")
	case p.DatabaseName == "":
		return fmt.Errorf("the database name cannot be empty")
	case p.TableName == "":
		return fmt.Errorf("the table name cannot be empty")
	case p.Additional.AuthContext == "":
		return fmt.Errorf("the authorization context was empty, which is not allowed")
	case p.BlobPath == "":
		return fmt.Errorf("the BlobPath was not set")
	}
	return nil
}
