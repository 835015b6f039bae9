package blobcopy

import (
	"context"
	"testing"

	"github.com/arthur-debert/viur/pkg/client"
	"github.com/arthur-debert/viur/pkg/errors"
	"github.com/arthur-debert/viur/pkg/testutil"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHostURL(t *testing.T) {
	assert.Equal(t, "https://my-app.appspot.com/", HostURL("my-app"))
	assert.Equal(t, "http://localhost:8080/", HostURL("localhost:8080"))
}

type instances struct {
	src, dst             *testutil.FakeBackend
	srcClient, dstClient *client.Client
}

func newInstances(t *testing.T) instances {
	t.Helper()
	src := testutil.NewFakeBackend(t)
	src.BackupKey = "src-key"
	dst := testutil.NewFakeBackend(t)
	dst.BackupKey = "dst-key"

	for _, blob := range []testutil.FakeBlob{
		{Key: "b1", ContentType: "image/png", Data: []byte("one")},
		{Key: "b2", ContentType: "application/pdf", Data: []byte("two")},
		{Key: "b3", ContentType: "text/plain", Data: []byte("three")},
	} {
		src.AddExportBlob(blob)
		src.StoreBlob(blob)
	}
	dst.StoreBlob(testutil.FakeBlob{Key: "b1", Data: []byte("one")})

	srcClient, err := client.New(client.Options{Host: src.URL(), Logger: zerolog.Nop()})
	require.NoError(t, err)
	dstClient, err := client.New(client.Options{Host: dst.URL(), Logger: zerolog.Nop()})
	require.NoError(t, err)
	return instances{src: src, dst: dst, srcClient: srcClient, dstClient: dstClient}
}

func (in instances) options() Options {
	return Options{
		SourceKey:        "src-key",
		DestinationKey:   "dst-key",
		SkipContentTypes: DefaultSkipContentTypes,
		Logger:           zerolog.Nop(),
	}
}

func TestRun(t *testing.T) {
	in := newInstances(t)
	known := NewMemoryStore()
	opts := in.options()
	opts.Known = known

	result, err := Run(context.Background(), in.srcClient, in.dstClient, opts)
	require.NoError(t, err)
	assert.Equal(t, &Result{Seen: 3, Copied: 1, Present: 1, Skipped: 1, Batches: 2}, result)

	stored := in.dst.StoredBlobs()
	assert.Equal(t, []byte("three"), stored["b3"].Data)
	assert.Equal(t, "text/plain", stored["b3"].ContentType)
	assert.NotContains(t, stored, "b2")

	has, err := known.Has("b1")
	require.NoError(t, err)
	assert.True(t, has)
}

func TestRun_KnownBlobsSkipHasblob(t *testing.T) {
	in := newInstances(t)
	known := NewMemoryStore()
	require.NoError(t, known.Add("b1"))
	opts := in.options()
	opts.Known = known

	_, err := Run(context.Background(), in.srcClient, in.dstClient, opts)
	require.NoError(t, err)
	assert.Zero(t, in.dst.CountRequests("GET /dbtransfer/hasblob/b1/dst-key"))
	assert.Equal(t, 1, in.dst.CountRequests("GET /dbtransfer/hasblob/b3/dst-key"))
}

func TestRun_Override(t *testing.T) {
	in := newInstances(t)
	opts := in.options()
	opts.Override = true
	opts.SkipContentTypes = nil

	result, err := Run(context.Background(), in.srcClient, in.dstClient, opts)
	require.NoError(t, err)
	assert.Equal(t, 3, result.Copied)
	assert.Zero(t, in.dst.CountRequests("GET /dbtransfer/hasblob/b1/dst-key"))
	assert.Equal(t, []byte("two"), in.dst.StoredBlobs()["b2"].Data)
}

func TestRun_WrongSourceKey(t *testing.T) {
	in := newInstances(t)
	opts := in.options()
	opts.SourceKey = "wrong"

	_, err := Run(context.Background(), in.srcClient, in.dstClient, opts)
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrSourceUnavailable))
}
