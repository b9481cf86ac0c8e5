package main

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"blobsieve/internal/blob"
)

func TestTopBlobs(t *testing.T) {
	t.Parallel()

	blobs := []blob.Blob{{ID: 1}, {ID: 2}, {ID: 3}}

	assert.Len(t, topBlobs(blobs, 2), 2)
	assert.Len(t, topBlobs(blobs, 3), 3)
	assert.Len(t, topBlobs(blobs, 10), 3)
	assert.Empty(t, topBlobs(blobs, 0))
	assert.Empty(t, topBlobs(blobs, -5))
	assert.Empty(t, topBlobs(nil, 4))
}
