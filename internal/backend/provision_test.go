package backend

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"io/fs"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const fakeBinary = "#!/bin/sh\nexit 0\n"

func newTestProvisioner(t *testing.T, src, sum string) (*Provisioner, string) {
	t.Helper()

	path := filepath.Join(t.TempDir(), "bin", "lightpanda")
	logger := zap.NewNop().Sugar()
	return &Provisioner{
		artifact:    Artifact{Path: path, SourceURL: src, SHA256: sum},
		client:      resty.New().SetLogger(logger),
		logger:      logger,
		chmod:       os.Chmod,
		lockTimeout: 5 * time.Second,
	}, path
}

func countingServer(t *testing.T, status int, body string) (*httptest.Server, *atomic.Int32) {
	t.Helper()

	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv, &hits
}

func partFiles(t *testing.T, dir string) []string {
	t.Helper()

	matches, err := filepath.Glob(filepath.Join(dir, "*.part"))
	require.NoError(t, err)
	return matches
}

func TestEnsureBinary_DownloadsOnceAndMarksExecutable(t *testing.T) {
	t.Parallel()

	srv, hits := countingServer(t, http.StatusOK, fakeBinary)
	p, path := newTestProvisioner(t, srv.URL+"/lightpanda", "")

	got, err := p.EnsureBinary(context.Background())
	require.NoError(t, err)
	require.Equal(t, path, got)
	require.Equal(t, int32(1), hits.Load())

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, fakeBinary, string(b))

	info, err := os.Stat(path)
	require.NoError(t, err)
	require.Equal(t, fs.FileMode(0o111), info.Mode().Perm()&0o111)

	got, err = p.EnsureBinary(context.Background())
	require.NoError(t, err)
	require.Equal(t, path, got)
	require.Equal(t, int32(1), hits.Load(), "second call must not touch the network")
}

func TestEnsureBinary_ExistingFileIsTrusted(t *testing.T) {
	t.Parallel()

	srv, hits := countingServer(t, http.StatusOK, fakeBinary)
	p, path := newTestProvisioner(t, srv.URL, "")

	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte("already here"), 0o644))

	got, err := p.EnsureBinary(context.Background())
	require.NoError(t, err)
	require.Equal(t, path, got)
	require.Zero(t, hits.Load())
}

func TestEnsureBinary_HTTPErrorLeavesNothingBehind(t *testing.T) {
	t.Parallel()

	srv, _ := countingServer(t, http.StatusNotFound, "missing")
	p, path := newTestProvisioner(t, srv.URL, "")

	_, err := p.EnsureBinary(context.Background())
	require.ErrorIs(t, err, ErrProvision)
	require.Contains(t, err.Error(), "404")

	require.NoFileExists(t, path)
	require.Empty(t, partFiles(t, filepath.Dir(path)))
}

func TestEnsureBinary_ChecksumMismatch(t *testing.T) {
	t.Parallel()

	srv, _ := countingServer(t, http.StatusOK, fakeBinary)
	p, path := newTestProvisioner(t, srv.URL, "0000000000000000000000000000000000000000000000000000000000000000")

	_, err := p.EnsureBinary(context.Background())
	require.ErrorIs(t, err, ErrProvision)
	require.Contains(t, err.Error(), "checksum mismatch")

	require.NoFileExists(t, path)
	require.Empty(t, partFiles(t, filepath.Dir(path)))
}

func TestEnsureBinary_ChecksumMatch(t *testing.T) {
	t.Parallel()

	sum := sha256.Sum256([]byte(fakeBinary))
	srv, _ := countingServer(t, http.StatusOK, fakeBinary)
	p, path := newTestProvisioner(t, srv.URL, hex.EncodeToString(sum[:]))

	got, err := p.EnsureBinary(context.Background())
	require.NoError(t, err)
	require.Equal(t, path, got)
}

func TestEnsureBinary_ChmodPermissionErrorIsTolerated(t *testing.T) {
	t.Parallel()

	srv, _ := countingServer(t, http.StatusOK, fakeBinary)
	p, path := newTestProvisioner(t, srv.URL, "")
	p.chmod = func(string, fs.FileMode) error { return &fs.PathError{Op: "chmod", Path: path, Err: fs.ErrPermission} }

	got, err := p.EnsureBinary(context.Background())
	require.NoError(t, err)
	require.Equal(t, path, got)
}

func TestEnsureBinary_ChmodOtherErrorFails(t *testing.T) {
	t.Parallel()

	srv, _ := countingServer(t, http.StatusOK, fakeBinary)
	p, _ := newTestProvisioner(t, srv.URL, "")
	p.chmod = func(string, fs.FileMode) error { return fs.ErrInvalid }

	_, err := p.EnsureBinary(context.Background())
	require.ErrorIs(t, err, ErrProvision)
	require.ErrorIs(t, err, fs.ErrInvalid)
}

func TestEnsureBinary_UnsupportedPlatform(t *testing.T) {
	t.Parallel()

	p, _ := newTestProvisioner(t, "", "")

	_, err := p.EnsureBinary(context.Background())
	require.ErrorIs(t, err, ErrProvision)
	require.Contains(t, err.Error(), "unsupported platform")
}

func TestEnsureBinary_TransportError(t *testing.T) {
	t.Parallel()

	srv, _ := countingServer(t, http.StatusOK, fakeBinary)
	url := srv.URL
	srv.Close()

	p, path := newTestProvisioner(t, url, "")

	_, err := p.EnsureBinary(context.Background())
	require.ErrorIs(t, err, ErrProvision)
	require.NoFileExists(t, path)
}

func TestDefaultDownloadURL(t *testing.T) {
	t.Parallel()

	require.Equal(t, nightlyBase+"lightpanda-x86_64-linux", DefaultDownloadURL("linux", "amd64"))
	require.Equal(t, nightlyBase+"lightpanda-aarch64-macos", DefaultDownloadURL("darwin", "arm64"))
	require.Empty(t, DefaultDownloadURL("windows", "amd64"))
}
