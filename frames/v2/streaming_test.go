package v2

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/kustoclient/kustoclient/errors"
)

func TestNewStreamingDatasetYieldsTablesInOrder(t *testing.T) {
	body := bodyLines(
		`{"FrameType":"DataSetHeader","Version":"v2.0"}`,
		`{"FrameType":"DataTable","TableId":0,"TableKind":"PrimaryResult","TableName":"Table_0","Columns":[{"ColumnName":"Value","ColumnType":"string"}],"Rows":[["hi"]]}`,
		`{"FrameType":"DataSetCompletion","HasErrors":false}`,
	)

	sd := NewStreamingDataset(context.Background(), body, errors.OpQuery)

	var got []string
	for lt := range sd.Results() {
		assert.NoError(t, lt.Err)
		got = append(got, lt.Table.Name)
	}
	assert.Equal(t, []string{"Table_0"}, got)
}

func TestNewStreamingDatasetPropagatesAssemblyError(t *testing.T) {
	body := bodyLines(
		`{"FrameType":"DataSetHeader","Version":"v2.0"}`,
		`{"FrameType":"TableFragment","TableId":9,"Rows":[]}`,
	)

	sd := NewStreamingDataset(context.Background(), body, errors.OpQuery)

	var lastErr error
	for lt := range sd.Results() {
		if lt.Err != nil {
			lastErr = lt.Err
		}
	}
	assert.Error(t, lastErr)
}

func TestNewStreamingDatasetContextCancelled(t *testing.T) {
	body := bodyLines(
		`{"FrameType":"DataSetHeader","Version":"v2.0"}`,
		`{"FrameType":"DataSetCompletion","HasErrors":false}`,
	)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	sd := NewStreamingDataset(ctx, body, errors.OpQuery)

	select {
	case lt, ok := <-sd.Results():
		if ok {
			assert.Error(t, lt.Err)
		}
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for streaming dataset")
	}
}
