package integration

import (
	"context"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"captcha-verifier/internal/di"
	"captcha-verifier/internal/domain/entity"
	"captcha-verifier/internal/infrastructure/env"
	"captcha-verifier/internal/infrastructure/logger"
	"captcha-verifier/internal/infrastructure/server"

	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newContainer(t *testing.T, appURL string) (*di.Container, string) {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping browser test in short mode")
	}

	out := t.TempDir()
	cfg := di.LoadConfig(&env.EnvService{})
	cfg.AppURL = appURL
	cfg.NoSandbox = true
	cfg.Timeout = 2 * time.Second
	cfg.LoadingTimeout = 3 * time.Second
	cfg.OutputDir = out

	container, err := di.NewContainer(context.Background(), cfg, logger.NewNop(), nil)
	require.NoError(t, err)
	t.Cleanup(container.Close)
	return container, out
}

func serveGame(t *testing.T) string {
	t.Helper()
	srv := httptest.NewServer(server.NewRouter(filepath.Join("testdata", "game"), logger.NewNop()))
	t.Cleanup(srv.Close)
	return srv.URL
}

func TestVerify_SnakeCaptcha(t *testing.T) {
	container, out := newContainer(t, serveGame(t))

	results, err := container.Verifier.Verify(context.Background())
	require.NoError(t, err)
	require.Len(t, results, 1)

	want := filepath.Join(out, "snake_captcha_verification.png")
	assert.Equal(t, want, results[0].Screenshot)

	img, err := imaging.Open(want)
	require.NoError(t, err)
	assert.Greater(t, img.Bounds().Dx(), 0)
}

func TestVerify_OverwritesScreenshot(t *testing.T) {
	container, out := newContainer(t, serveGame(t))
	path := filepath.Join(out, "snake_captcha_verification.png")
	require.NoError(t, os.WriteFile(path, []byte("stale"), 0644))

	_, err := container.Verifier.Verify(context.Background(), "snake")
	require.NoError(t, err)

	_, err = imaging.Open(path)
	assert.NoError(t, err)
}

func TestVerify_SeveralCaptchas(t *testing.T) {
	container, out := newContainer(t, serveGame(t))

	results, err := container.Verifier.Verify(context.Background(), "snake", "text")
	require.NoError(t, err)
	require.Len(t, results, 2)

	assert.FileExists(t, filepath.Join(out, "snake_captcha_verification.png"))
	assert.FileExists(t, filepath.Join(out, "text_captcha_verification.png"))
}

func TestVerify_AppUnreachable(t *testing.T) {
	srv := httptest.NewServer(nil)
	url := srv.URL
	srv.Close()

	container, out := newContainer(t, url)

	_, err := container.Verifier.Verify(context.Background())
	require.Error(t, err)

	var stepErr *entity.StepError
	require.ErrorAs(t, err, &stepErr)
	assert.Equal(t, "navigate", stepErr.Step.Name)
	assert.NoFileExists(t, filepath.Join(out, "snake_captcha_verification.png"))
}

func TestVerify_DebugKeyMissing(t *testing.T) {
	container, out := newContainer(t, serveGame(t)+"/?nodebug")

	_, err := container.Verifier.Verify(context.Background())
	require.Error(t, err)

	var stepErr *entity.StepError
	require.ErrorAs(t, err, &stepErr)
	assert.Equal(t, "debug-panel-visible", stepErr.Step.Name)
	assert.ErrorIs(t, err, entity.ErrTimeout)
	assert.NoFileExists(t, filepath.Join(out, "snake_captcha_verification.png"))
}

func TestDiscover_FixtureTriggers(t *testing.T) {
	container, _ := newContainer(t, serveGame(t))

	res, err := container.Discoverer.Discover(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{"snake", "text"}, res.Known)
	assert.Empty(t, res.Unknown)
	assert.Contains(t, res.Missing, "chess")
	assert.Empty(t, res.NoModal)
}
