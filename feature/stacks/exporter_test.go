package stacks_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"testing"

	"stack-manager/core/reconcile"
	"stack-manager/core/storage/mocks"
	"stack-manager/feature/stacks"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestExporter_ExportWritesDocument(t *testing.T) {
	client := new(mocks.Client)
	var uploaded []byte
	client.On("PutObject", mock.Anything, "snapshots", stacks.SnapshotObject, mock.Anything, mock.AnythingOfType("int64"), mock.Anything).
		Run(func(args mock.Arguments) {
			data, err := io.ReadAll(args.Get(3).(io.Reader))
			require.NoError(t, err)
			uploaded = data
			opts := args.Get(5).(minio.PutObjectOptions)
			assert.Equal(t, "application/json", opts.ContentType)
		}).
		Return(minio.UploadInfo{}, nil)

	settings, err := reconcile.DefaultSettings().WithOverride(reconcile.IDKey(42), 200)
	require.NoError(t, err)

	require.NoError(t, stacks.NewExporter(client, "snapshots").Export(context.Background(), settings))

	var doc stacks.Document
	require.NoError(t, json.Unmarshal(uploaded, &doc))
	assert.Equal(t, stacks.CurrentVersion, doc.Version)
	assert.Equal(t, 1000, doc.DefaultLimit)
	assert.Equal(t, map[uint64]int{42: 200}, doc.Overrides.IDs)
	client.AssertExpectations(t)
}

func TestExporter_ExportError(t *testing.T) {
	client := new(mocks.Client)
	client.On("PutObject", mock.Anything, "snapshots", stacks.SnapshotObject, mock.Anything, mock.Anything, mock.Anything).
		Return(minio.UploadInfo{}, errors.New("access denied"))

	err := stacks.NewExporter(client, "snapshots").Export(context.Background(), reconcile.DefaultSettings())
	assert.ErrorContains(t, err, "failed to upload snapshot")
}

func TestExporter_FetchRestoresSettings(t *testing.T) {
	client := new(mocks.Client)
	body := `{"version": 2, "default_limit": 250, "overrides": {"names": {"generator.small": 40}}, "deny": ["Alice"]}`
	client.On("GetObject", mock.Anything, "snapshots", stacks.SnapshotObject, mock.Anything).
		Return(io.NopCloser(bytes.NewReader([]byte(body))), nil)

	doc, err := stacks.NewExporter(client, "snapshots").Fetch(context.Background())
	require.NoError(t, err)

	settings, err := doc.MergeInto(reconcile.DefaultSettings())
	require.NoError(t, err)
	assert.Equal(t, 250, settings.DefaultLimit)
	assert.Equal(t, 40, settings.ByName["generator.small"])
	assert.Equal(t, []string{"Alice"}, settings.Deny)
	assert.True(t, settings.BatchEnabled, "fields missing from the snapshot keep their value")
}

func TestExporter_FetchMissingObject(t *testing.T) {
	client := new(mocks.Client)
	client.On("GetObject", mock.Anything, "snapshots", stacks.SnapshotObject, mock.Anything).
		Return(nil, errors.New("The specified key does not exist."))

	_, err := stacks.NewExporter(client, "snapshots").Fetch(context.Background())
	assert.ErrorContains(t, err, "failed to download snapshot")
}
