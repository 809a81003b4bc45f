// Package frames defines the wire representation of the v2 streaming frame
// protocol shared by the full (buffered) and streaming dataset assemblers in
// frames/v2, plus the v1 management-response shape in frames/v1.
package frames

import (
	"sync"

	"github.com/kustoclient/kustoclient/errors"
	"github.com/kustoclient/kustoclient/types"
	"github.com/kustoclient/kustoclient/value"
)

// FrameType identifies a v2 frame's kind, as carried in its "FrameType" field.
type FrameType string

const (
	DataSetHeaderFrameType     FrameType = "DataSetHeader"
	DataTableFrameType         FrameType = "DataTable"
	TableHeaderFrameType       FrameType = "TableHeader"
	TableFragmentFrameType     FrameType = "TableFragment"
	TableProgressFrameType     FrameType = "TableProgress"
	TableCompletionFrameType   FrameType = "TableCompletion"
	DataSetCompletionFrameType FrameType = "DataSetCompletion"
)

// TableKind is the Kusto-assigned role of a DataTable within a result set.
type TableKind string

const (
	PrimaryResult              TableKind = "PrimaryResult"
	QueryProperties            TableKind = "QueryProperties"
	QueryCompletionInformation TableKind = "QueryCompletionInformation"
	QueryTraceLog              TableKind = "QueryTraceLog"
	QueryPerfLog               TableKind = "QueryPerfLog"
	TableOfContents            TableKind = "TableOfContents"
	QueryPlan                  TableKind = "QueryPlan"
	UnknownTableKind           TableKind = "Unknown"
)

// Frame is any of the seven v2 frame shapes.
type Frame interface {
	isFrame()
}

// FrameColumn is a column descriptor as it appears in a DataTable or
// TableHeader frame.
type FrameColumn struct {
	ColumnName string `json:"ColumnName"`
	ColumnType string `json:"ColumnType"`
}

// ErrorContext carries the server-side diagnostic fields attached to a
// OneApiError.
type ErrorContext struct {
	Timestamp        string `json:"timestamp"`
	ServiceAlias     string `json:"serviceAlias"`
	MachineName      string `json:"machineName"`
	ProcessName      string `json:"processName"`
	ProcessID        int    `json:"processId"`
	ThreadID         int    `json:"threadId"`
	ClientRequestID  string `json:"clientRequestId"`
	ActivityID       string `json:"activityId"`
	SubActivityID    string `json:"subActivityId"`
	ActivityType     string `json:"activityType"`
	ParentActivityID string `json:"parentActivityId"`
	ActivityStack    string `json:"activityStack"`
}

// ErrorMessage is the "error" object inside a OneApiError.
type ErrorMessage struct {
	Code        string       `json:"code"`
	Message     string       `json:"message"`
	Type        string       `json:"@type"`
	Context     ErrorContext `json:"@context"`
	IsPermanent bool         `json:"@permanent"`
}

// OneApiError is one entry of a frame's OneApiErrors list.
type OneApiError struct {
	Error ErrorMessage `json:"error"`
}

// RawRow is one row of a DataTable/TableFragment frame: either a list of
// column values, or, when the server reports a row-level failure instead of
// data, a list of OneApiErrors. Exactly one of the two is set.
type RawRow struct {
	Row    []interface{}
	Errors []OneApiError
}

// RawRows is an ordered list of RawRow.
type RawRows []RawRow

// DataSetHeader is the first frame of a v2 response.
type DataSetHeader struct {
	IsProgressive           bool
	Version                 string
	IsFragmented            bool
	ErrorReportingPlacement string
}

func (*DataSetHeader) isFrame() {}

// DataTable is a complete, non-fragmented table delivered in one frame.
type DataTable struct {
	TableID   int
	TableKind string
	TableName string
	Columns   []FrameColumn
	Rows      RawRows
}

func (*DataTable) isFrame() {}

// TableHeader opens a fragmented table: its schema, to be followed by one or
// more TableFragment frames and a closing TableCompletion.
type TableHeader struct {
	TableID   int
	TableKind string
	TableName string
	Columns   []FrameColumn
}

func (*TableHeader) isFrame() {}

// TableFragment carries a batch of rows for the currently open table.
// TableFragmentType is "DataAppend" (rows add to what's been seen) or
// "DataReplace" (rows replace everything seen so far for this table).
type TableFragment struct {
	TableFragmentType string
	TableID           int
	Rows              RawRows
}

func (*TableFragment) isFrame() {}

// TableProgress reports a fragmented table's estimated completion percentage.
type TableProgress struct {
	TableID  int
	Progress float64
}

func (*TableProgress) isFrame() {}

// TableCompletion closes a fragmented table, giving the total row count the
// assembler must have observed across all of its fragments.
type TableCompletion struct {
	TableID      int
	RowCount     int
	OneApiErrors []OneApiError
}

func (*TableCompletion) isFrame() {}

// DataSetCompletion is the final frame of a v2 response.
type DataSetCompletion struct {
	HasErrors    bool
	Cancelled    bool
	OneApiErrors []OneApiError
}

func (*DataSetCompletion) isFrame() {}

// EveryFrame is the decode target for one wire-format line: a struct wide
// enough to hold every frame type's fields so a single json.Unmarshal can
// determine, from FrameType, which concrete frame to build.
type EveryFrame struct {
	FrameType               FrameType     `json:"FrameType"`
	IsProgressive           bool          `json:"IsProgressive"`
	Version                 string        `json:"Version"`
	IsFragmented            bool          `json:"IsFragmented"`
	ErrorReportingPlacement string        `json:"ErrorReportingPlacement"`
	TableID                 int           `json:"TableId"`
	TableKind               string        `json:"TableKind"`
	TableName               string        `json:"TableName"`
	Columns                 []FrameColumn `json:"Columns"`
	Rows                    RawRows       `json:"Rows"`
	TableFragmentType       string        `json:"TableFragmentType"`
	RowCount                int           `json:"RowCount"`
	OneApiErrors            []OneApiError `json:"OneApiErrors"`
	HasErrors               bool          `json:"HasErrors"`
	Cancelled               bool          `json:"Cancelled"`
	TableProgress           float64       `json:"TableProgress"`
}

// Decode converts a generically-parsed EveryFrame into its concrete frame
// type.
func (f *EveryFrame) Decode() (Frame, error) {
	switch f.FrameType {
	case DataSetHeaderFrameType:
		return &DataSetHeader{
			IsProgressive:           f.IsProgressive,
			Version:                 f.Version,
			IsFragmented:            f.IsFragmented,
			ErrorReportingPlacement: f.ErrorReportingPlacement,
		}, nil
	case DataTableFrameType:
		return &DataTable{
			TableID:   f.TableID,
			TableKind: f.TableKind,
			TableName: f.TableName,
			Columns:   f.Columns,
			Rows:      f.Rows,
		}, nil
	case TableHeaderFrameType:
		return &TableHeader{
			TableID:   f.TableID,
			TableKind: f.TableKind,
			TableName: f.TableName,
			Columns:   f.Columns,
		}, nil
	case TableFragmentFrameType:
		return &TableFragment{
			TableFragmentType: f.TableFragmentType,
			TableID:           f.TableID,
			Rows:              f.Rows,
		}, nil
	case TableProgressFrameType:
		return &TableProgress{
			TableID:  f.TableID,
			Progress: f.TableProgress,
		}, nil
	case TableCompletionFrameType:
		return &TableCompletion{
			TableID:      f.TableID,
			RowCount:     f.RowCount,
			OneApiErrors: f.OneApiErrors,
		}, nil
	case DataSetCompletionFrameType:
		return &DataSetCompletion{
			HasErrors:    f.HasErrors,
			Cancelled:    f.Cancelled,
			OneApiErrors: f.OneApiErrors,
		}, nil
	default:
		return nil, errors.ES(errors.OpQuery, errors.KInternal, "unknown frame type: %s", f.FrameType)
	}
}

// Conversion maps a Kusto column type to the decoder that turns one raw JSON
// cell into a value.Kusto.
var Conversion = map[types.Column]func(interface{}) (value.Kusto, error){
	types.Bool:     unmarshalVia(func() value.Kusto { return &value.Bool{} }),
	types.DateTime: unmarshalVia(func() value.Kusto { return &value.DateTime{} }),
	types.Dynamic:  unmarshalVia(func() value.Kusto { return &value.Dynamic{} }),
	types.GUID:     unmarshalVia(func() value.Kusto { return &value.GUID{} }),
	types.Int:      unmarshalVia(func() value.Kusto { return &value.Int{} }),
	types.Long:     unmarshalVia(func() value.Kusto { return &value.Long{} }),
	types.Real:     unmarshalVia(func() value.Kusto { return &value.Real{} }),
	types.String:   unmarshalVia(func() value.Kusto { return &value.String{} }),
	types.Timespan: unmarshalVia(func() value.Kusto { return &value.Timespan{} }),
	types.Decimal:  unmarshalVia(func() value.Kusto { return &value.Decimal{} }),
}

func unmarshalVia(zero func() value.Kusto) func(interface{}) (value.Kusto, error) {
	return func(i interface{}) (value.Kusto, error) {
		v := zero()
		if err := v.Unmarshal(i); err != nil {
			return nil, err
		}
		return v, nil
	}
}

// Pool is a shared pool of scratch map[string]interface{} values (initial
// capacity 10). No decoder in this module draws from it.
var Pool = sync.Pool{
	New: func() interface{} {
		return make(map[string]interface{}, 10)
	},
}
