package backend

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/gofrs/flock"
	"go.uber.org/zap"

	"title-reader/config"
)

const nightlyBase = "https://github.com/lightpanda-io/browser/releases/download/nightly/"

// DefaultDownloadURL returns the nightly build for the platform, or "" when
// no prebuilt binary is published for it.
func DefaultDownloadURL(goos, goarch string) string {
	switch goos + "/" + goarch {
	case "linux/amd64":
		return nightlyBase + "lightpanda-x86_64-linux"
	case "linux/arm64":
		return nightlyBase + "lightpanda-aarch64-linux"
	case "darwin/amd64":
		return nightlyBase + "lightpanda-x86_64-macos"
	case "darwin/arm64":
		return nightlyBase + "lightpanda-aarch64-macos"
	default:
		return ""
	}
}

// Artifact is the on-disk browser binary and where it comes from.
type Artifact struct {
	Path      string
	SourceURL string
	SHA256    string
}

type Provisioner struct {
	artifact Artifact
	client   *resty.Client
	logger   *zap.SugaredLogger

	chmod       func(name string, mode fs.FileMode) error
	lockTimeout time.Duration

	warnUnverified sync.Once
}

func NewProvisioner(cfg *config.Config, logger *zap.SugaredLogger) *Provisioner {
	src := cfg.Browser.DownloadURL
	if src == "" {
		src = DefaultDownloadURL(runtime.GOOS, runtime.GOARCH)
	}

	client := resty.New().
		SetTimeout(10 * time.Minute).
		SetLogger(logger)

	return &Provisioner{
		artifact: Artifact{
			Path:      cfg.Browser.BinaryPath,
			SourceURL: src,
			SHA256:    cfg.Browser.SHA256,
		},
		client:      client,
		logger:      logger,
		chmod:       os.Chmod,
		lockTimeout: 2 * time.Minute,
	}
}

func (p *Provisioner) Artifact() Artifact { return p.artifact }

// EnsureBinary returns the binary path, downloading it first when it is not
// on disk. An existing file is trusted as is.
func (p *Provisioner) EnsureBinary(ctx context.Context) (string, error) {
	path := p.artifact.Path
	if fileExists(path) {
		return path, nil
	}
	if strings.TrimSpace(p.artifact.SourceURL) == "" {
		return "", fmt.Errorf("%w: unsupported platform %s/%s (set BROWSER_DOWNLOAD_URL)", ErrProvision, runtime.GOOS, runtime.GOARCH)
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return "", fmt.Errorf("%w: create %s: %w", ErrProvision, dir, err)
		}
	}

	lock := flock.New(path + ".lock")
	lockCtx, cancel := context.WithTimeout(ctx, p.lockTimeout)
	defer cancel()
	locked, err := lock.TryLockContext(lockCtx, 200*time.Millisecond)
	if err != nil || !locked {
		return "", fmt.Errorf("%w: acquire download lock: %w", ErrProvision, lockErr(err))
	}
	defer func() { _ = lock.Unlock() }()

	// Another process may have finished the download while we waited.
	if !fileExists(path) {
		if err := p.download(ctx, path); err != nil {
			return "", err
		}
	}

	if err := p.markExecutable(path); err != nil {
		return "", err
	}

	if !fileExists(path) {
		return "", fmt.Errorf("%w: artifact not found after provisioning", ErrProvision)
	}
	return path, nil
}

func (p *Provisioner) download(ctx context.Context, path string) error {
	src := p.artifact.SourceURL
	p.logger.Infow("browser_download_start", "url", src, "path", path)
	start := time.Now()

	resp, err := p.client.R().
		SetContext(ctx).
		SetDoNotParseResponse(true).
		Get(src)
	if err != nil {
		return fmt.Errorf("%w: download %s: %w", ErrProvision, src, err)
	}
	body := resp.RawBody()
	defer body.Close()

	if resp.StatusCode() < 200 || resp.StatusCode() >= 300 {
		return fmt.Errorf("%w: download %s: unexpected status %s", ErrProvision, src, resp.Status())
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.part")
	if err != nil {
		return fmt.Errorf("%w: create temp file: %w", ErrProvision, err)
	}
	tmpName := tmp.Name()
	placed := false
	defer func() {
		if !placed {
			_ = os.Remove(tmpName)
		}
	}()

	h := sha256.New()
	n, err := io.Copy(io.MultiWriter(tmp, h), body)
	if closeErr := tmp.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		return fmt.Errorf("%w: write %s: %w", ErrProvision, tmpName, err)
	}

	if want := p.artifact.SHA256; want != "" {
		if got := hex.EncodeToString(h.Sum(nil)); got != want {
			return fmt.Errorf("%w: checksum mismatch for %s (want %s, got %s)", ErrProvision, src, want, got)
		}
	} else {
		p.warnUnverified.Do(func() {
			p.logger.Warnw("browser_download_unverified", "url", src, "hint", "set BROWSER_BINARY_SHA256 to verify downloads")
		})
	}

	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("%w: move into place: %w", ErrProvision, err)
	}
	placed = true

	p.logger.Infow("browser_download_done", "path", path, "bytes", n, "duration", time.Since(start))
	return nil
}

func (p *Provisioner) markExecutable(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("%w: stat %s: %w", ErrProvision, path, err)
	}
	mode := info.Mode().Perm()
	if mode&0o111 == 0o111 {
		return nil
	}
	if err := p.chmod(path, mode|0o111); err != nil {
		if errors.Is(err, fs.ErrPermission) {
			p.logger.Warnw("browser_chmod_skipped", "path", path, "err", err)
			return nil
		}
		return fmt.Errorf("%w: chmod %s: %w", ErrProvision, path, err)
	}
	return nil
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

func lockErr(err error) error {
	if err != nil {
		return err
	}
	return errors.New("lock held by another process")
}
