package storage

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeStore records object-storage calls and serves canned content.
type fakeStore struct {
	objects   map[string][]byte // "bucket/key" -> content
	uploads   []string          // "bucket/key" in upload order
	uploadErr error
}

func newFakeStore() *fakeStore {
	return &fakeStore{objects: make(map[string][]byte)}
}

func (f *fakeStore) ListObjects(ctx context.Context, bucket, prefix string) ([]ObjectInfo, error) {
	return nil, nil
}

func (f *fakeStore) DownloadObject(ctx context.Context, bucket, key, destPath string) error {
	content, ok := f.objects[bucket+"/"+key]
	if !ok {
		return errors.New("no such object")
	}
	return os.WriteFile(destPath, content, 0o644)
}

func (f *fakeStore) UploadObject(ctx context.Context, localPath, bucket, key string) error {
	if f.uploadErr != nil {
		return f.uploadErr
	}
	f.uploads = append(f.uploads, bucket+"/"+key)
	return nil
}

func TestClient_FetchS3(t *testing.T) {
	store := newFakeStore()
	store.objects["bkt/a/input.nc"] = []byte("netcdf bytes")

	client := NewClient(store)
	dest := filepath.Join(t.TempDir(), "input.nc")
	require.NoError(t, client.Fetch(context.Background(), "s3://bkt/a/input.nc", dest))

	got, err := os.ReadFile(dest)
	require.NoError(t, err)
	assert.Equal(t, []byte("netcdf bytes"), got)
}

func TestClient_FetchS3MissingObject(t *testing.T) {
	client := NewClient(newFakeStore())
	dest := filepath.Join(t.TempDir(), "input.nc")
	err := client.Fetch(context.Background(), "s3://bkt/missing.nc", dest)

	var transfer *TransferError
	require.ErrorAs(t, err, &transfer)
	assert.Equal(t, "fetch", transfer.Op)
	assert.Error(t, transfer.Unwrap())
}

func TestClient_FetchHTTP(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("forcing data"))
	}))
	defer srv.Close()

	client := NewClient(newFakeStore())
	dest := filepath.Join(t.TempDir(), "forcing.nc")
	require.NoError(t, client.Fetch(context.Background(), srv.URL+"/forcing.nc", dest))

	got, err := os.ReadFile(dest)
	require.NoError(t, err)
	assert.Equal(t, []byte("forcing data"), got)
}

func TestClient_FetchHTTPFollowsRedirect(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/real", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("moved data"))
	})
	mux.HandleFunc("/old", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/real", http.StatusFound)
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	client := NewClient(newFakeStore())
	dest := filepath.Join(t.TempDir(), "moved.nc")
	require.NoError(t, client.Fetch(context.Background(), srv.URL+"/old", dest))

	got, err := os.ReadFile(dest)
	require.NoError(t, err)
	assert.Equal(t, []byte("moved data"), got)
}

func TestClient_FetchHTTPNonSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	client := NewClient(newFakeStore())
	err := client.Fetch(context.Background(), srv.URL+"/gone.nc", filepath.Join(t.TempDir(), "gone.nc"))

	var transfer *TransferError
	require.ErrorAs(t, err, &transfer)
	assert.Contains(t, transfer.Error(), "404")
}

func TestClient_FetchMalformedURL(t *testing.T) {
	client := NewClient(newFakeStore())
	err := client.Fetch(context.Background(), "not-a-url", filepath.Join(t.TempDir(), "x"))

	var malformed *MalformedURLError
	assert.ErrorAs(t, err, &malformed)
}

func TestClient_Push(t *testing.T) {
	store := newFakeStore()
	client := NewClient(store)

	local := filepath.Join(t.TempDir(), "out.nc")
	require.NoError(t, os.WriteFile(local, []byte("result"), 0o644))

	dest, err := JoinForUpload("s3://bkt/runs/42", "out.nc")
	require.NoError(t, err)
	require.NoError(t, client.Push(context.Background(), local, dest))
	assert.Equal(t, []string{"bkt/runs/42/out.nc"}, store.uploads)
}

func TestClient_PushRejectsNonS3(t *testing.T) {
	client := NewClient(newFakeStore())
	loc, err := ParseURL("https://example.com/out.nc")
	require.NoError(t, err)

	var transfer *TransferError
	assert.ErrorAs(t, client.Push(context.Background(), "/tmp/out.nc", loc), &transfer)
}

func TestClient_PushBackendFailure(t *testing.T) {
	store := newFakeStore()
	store.uploadErr = errors.New("access denied")
	client := NewClient(store)

	local := filepath.Join(t.TempDir(), "out.nc")
	require.NoError(t, os.WriteFile(local, []byte("result"), 0o644))

	dest, err := JoinForUpload("s3://bkt/runs", "out.nc")
	require.NoError(t, err)

	var transfer *TransferError
	require.ErrorAs(t, client.Push(context.Background(), local, dest), &transfer)
	assert.ErrorIs(t, transfer.Unwrap(), store.uploadErr)
}
