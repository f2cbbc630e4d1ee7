package entity

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookupCaptcha(t *testing.T) {
	c, err := LookupCaptcha("snake")
	require.NoError(t, err)
	assert.Equal(t, "#debug-snake-captcha", c.TriggerSelector())
	assert.Equal(t, "#snake-captcha-modal", c.ModalSelector())
	assert.Equal(t, "snake_captcha_verification.png", c.ScreenshotName("png"))
}

func TestLookupCaptcha_TextUsesSharedModal(t *testing.T) {
	c, err := LookupCaptcha(" Text ")
	require.NoError(t, err)
	assert.Equal(t, "#captcha-modal", c.ModalSelector())
	assert.Equal(t, "captcha-modal", c.ModalID())
	assert.Equal(t, "#debug-text-captcha", c.TriggerSelector())
}

func TestLookupCaptcha_Unknown(t *testing.T) {
	_, err := LookupCaptcha("blackjack")
	assert.ErrorIs(t, err, ErrUnknownCaptcha)
}

func TestCaptchaNames_Sorted(t *testing.T) {
	names := CaptchaNames()
	assert.Len(t, names, 15)
	assert.IsIncreasing(t, names)
	assert.Contains(t, names, DefaultCaptcha)
}

func TestCaptchaFromTriggerID(t *testing.T) {
	tests := []struct {
		id   string
		name string
		ok   bool
	}{
		{"debug-snake-captcha", "snake", true},
		{"debug-lunar-lander-captcha", "lunar-lander", true},
		{"debug-close-btn", "", false},
		{"debug--captcha", "", false},
		{"snake-captcha-modal", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			name, ok := CaptchaFromTriggerID(tt.id)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.name, name)
		})
	}
}

func TestCaptchaScenario_Order(t *testing.T) {
	c, err := LookupCaptcha("snake")
	require.NoError(t, err)

	s := CaptchaScenario(c, ScenarioOptions{
		URL:            "http://localhost:8000",
		DebugKey:       "`",
		LoadingTimeout: 10 * time.Second,
		OutputPath:     "snake_captcha_verification.png",
	})

	kinds := make([]StepKind, 0, len(s.Steps))
	for _, st := range s.Steps {
		kinds = append(kinds, st.Kind)
	}
	assert.Equal(t, []StepKind{
		StepNavigate, StepWaitVisible, StepClick, StepWaitHidden, StepWaitVisible,
		StepPressKey, StepWaitVisible, StepForceClick, StepWaitVisible, StepScreenshot,
	}, kinds)

	assert.Equal(t, 10*time.Second, s.Steps[3].Timeout)
	assert.Equal(t, "#debug-snake-captcha", s.Steps[7].Target)
	assert.Equal(t, "#snake-captcha-modal", s.Steps[8].Target)
	assert.Equal(t, "snake_captcha_verification.png", s.Steps[9].Target)
}

func TestStepError_Unwrap(t *testing.T) {
	err := &StepError{Index: 6, Step: Step{Name: "debug-panel-visible"}, Err: ErrTimeout}

	assert.Equal(t, "step 7 (debug-panel-visible): wait timed out", err.Error())
	assert.True(t, errors.Is(err, ErrTimeout))

	var se *StepError
	require.True(t, errors.As(error(err), &se))
	assert.Equal(t, "debug-panel-visible", se.Step.Name)
}
