package env

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnvService_Getters(t *testing.T) {
	t.Setenv("VERIFIER_HEADLESS", "false")
	t.Setenv("VERIFIER_SCREENSHOT_MAX_WIDTH", "1024")
	t.Setenv("VERIFIER_TIMEOUT", "750ms")
	t.Setenv("VERIFIER_BROKEN_INT", "ten")

	e := &EnvService{}

	assert.False(t, e.GetBool("VERIFIER_HEADLESS", true))
	assert.True(t, e.GetBool("VERIFIER_UNSET", true))
	assert.Equal(t, 1024, e.GetInt("VERIFIER_SCREENSHOT_MAX_WIDTH", 0))
	assert.Equal(t, 7, e.GetInt("VERIFIER_BROKEN_INT", 7))
	assert.Equal(t, 750*time.Millisecond, e.GetDuration("VERIFIER_TIMEOUT", time.Second))
	assert.Equal(t, time.Second, e.GetDuration("VERIFIER_UNSET", time.Second))
	assert.Equal(t, "http://localhost:8000", e.GetWithDefault("VERIFIER_APP_URL", "http://localhost:8000"))
}

func TestNewEnvService_Layering(t *testing.T) {
	dir := t.TempDir()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("VERIFIER_TEST_LAYER=base\nVERIFIER_TEST_BASE_ONLY=1\n"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env.ci"), []byte("VERIFIER_TEST_LAYER=ci\n"), 0644))

	t.Setenv("APP_ENV", "ci")
	// registered so t.Setenv restores them after godotenv writes
	t.Setenv("VERIFIER_TEST_LAYER", "")
	t.Setenv("VERIFIER_TEST_BASE_ONLY", "")
	os.Unsetenv("VERIFIER_TEST_LAYER")
	os.Unsetenv("VERIFIER_TEST_BASE_ONLY")

	svc := NewEnvService()

	assert.Equal(t, "ci", svc.AppEnv)
	assert.Equal(t, []string{".env", ".env.ci"}, svc.Loaded)
	assert.Equal(t, "ci", svc.Get("VERIFIER_TEST_LAYER"))
	assert.Equal(t, "1", svc.Get("VERIFIER_TEST_BASE_ONLY"))
}
