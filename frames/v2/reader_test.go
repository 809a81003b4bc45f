package v2

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/kustoclient/kustoclient/errors"
	"github.com/kustoclient/kustoclient/frames"
)

func TestReadFramesEmptyBody(t *testing.T) {
	ch := make(chan frames.Frame, DefaultFrameCapacity)
	err := ReadFrames(context.Background(), strings.NewReader(""), ch, errors.OpQuery)
	assert.Error(t, err)
}

func TestReadFramesNotAnArray(t *testing.T) {
	ch := make(chan frames.Frame, DefaultFrameCapacity)
	err := ReadFrames(context.Background(), strings.NewReader(`{"foo":"bar"}`), ch, errors.OpQuery)
	assert.Error(t, err)
}

func TestReadFramesDecodesEachLine(t *testing.T) {
	body := `[{"FrameType":"DataSetHeader","IsProgressive":false,"Version":"v2.0","IsFragmented":false,"ErrorReportingPlacement":"EndOfTable"}
,{"FrameType":"DataSetCompletion","HasErrors":false,"Cancelled":false}
]`
	ch := make(chan frames.Frame, DefaultFrameCapacity)
	err := ReadFrames(context.Background(), strings.NewReader(body), ch, errors.OpQuery)
	assert.NoError(t, err)

	var got []frames.Frame
	for f := range ch {
		got = append(got, f)
	}
	assert.Len(t, got, 2)
	assert.IsType(t, &frames.DataSetHeader{}, got[0])
	assert.IsType(t, &frames.DataSetCompletion{}, got[1])
}

func TestReadFramesEOFBeforeClosingBracketIsTruncated(t *testing.T) {
	body := `[{"FrameType":"DataSetHeader","Version":"v2.0"}
,{"FrameType":"DataSetCompletion","HasErrors":false}
`
	ch := make(chan frames.Frame, DefaultFrameCapacity)
	err := ReadFrames(context.Background(), strings.NewReader(body), ch, errors.OpQuery)
	if assert.Error(t, err) {
		kustoErr, ok := err.(*errors.Error)
		if assert.True(t, ok) {
			assert.Equal(t, errors.KTruncatedStream, kustoErr.Kind)
		}
	}
}

func TestReadFramesRejectsUnexpectedLeadingByte(t *testing.T) {
	body := `[{"FrameType":"DataSetHeader","Version":"v2.0"}
;{"FrameType":"DataSetCompletion","HasErrors":false}
]`
	ch := make(chan frames.Frame, DefaultFrameCapacity)
	err := ReadFrames(context.Background(), strings.NewReader(body), ch, errors.OpQuery)
	if assert.Error(t, err) {
		kustoErr, ok := err.(*errors.Error)
		if assert.True(t, ok) {
			assert.Equal(t, errors.KUnexpectedByte, kustoErr.Kind)
		}
	}
}

func TestReadFramesContextCancelled(t *testing.T) {
	body := `[{"FrameType":"DataSetHeader","Version":"v2.0"}
,{"FrameType":"DataSetCompletion"}
]`
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	ch := make(chan frames.Frame)
	err := ReadFrames(ctx, strings.NewReader(body), ch, errors.OpQuery)
	assert.Error(t, err)
}
