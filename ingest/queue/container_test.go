package queue

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/kustoclient/kustoclient/ingest/resources"
)

func TestPickContainerErrorsWithNoContainers(t *testing.T) {
	_, err := PickContainer(resources.Ingestion{})
	assert.Error(t, err)
}
