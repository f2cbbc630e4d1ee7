package entity

import (
	"fmt"
	"time"
)

type StepKind string

const (
	StepNavigate    StepKind = "navigate"
	StepWaitVisible StepKind = "wait-visible"
	StepWaitHidden  StepKind = "wait-hidden"
	StepClick       StepKind = "click"
	StepForceClick  StepKind = "force-click"
	StepPressKey    StepKind = "press-key"
	StepScreenshot  StepKind = "screenshot"
)

// Step is one UI action or assertion. Target holds the selector, URL,
// key or output path depending on Kind. A zero Timeout means the
// runner's default.
type Step struct {
	Name    string
	Kind    StepKind
	Target  string
	Timeout time.Duration
}

type Scenario struct {
	Name  string
	Steps []Step
}

type StepResult struct {
	Step     Step
	Duration time.Duration
}

type RunResult struct {
	Scenario   string
	Steps      []StepResult
	Screenshot string
	Duration   time.Duration
}

// ScenarioOptions carries the app-specific values a captcha scenario needs.
type ScenarioOptions struct {
	URL            string
	DebugKey       string
	LoadingTimeout time.Duration
	OutputPath     string
}

// CaptchaScenario builds the path from the start screen to a visible
// captcha modal opened through the debug panel.
func CaptchaScenario(c Captcha, opts ScenarioOptions) Scenario {
	return Scenario{
		Name: c.Name,
		Steps: []Step{
			{Name: "navigate", Kind: StepNavigate, Target: opts.URL},
			{Name: "start-modal-visible", Kind: StepWaitVisible, Target: "#start-modal"},
			{Name: "single-player", Kind: StepClick, Target: "#single-player-btn"},
			{Name: "loading-hidden", Kind: StepWaitHidden, Target: "#loading-modal", Timeout: opts.LoadingTimeout},
			{Name: "seating-chart-visible", Kind: StepWaitVisible, Target: "#seating-chart"},
			{Name: "open-debug-panel", Kind: StepPressKey, Target: opts.DebugKey},
			{Name: "debug-panel-visible", Kind: StepWaitVisible, Target: "#debug-panel"},
			{Name: fmt.Sprintf("trigger-%s-captcha", c.Name), Kind: StepForceClick, Target: c.TriggerSelector()},
			{Name: fmt.Sprintf("%s-captcha-visible", c.Name), Kind: StepWaitVisible, Target: c.ModalSelector()},
			{Name: "screenshot", Kind: StepScreenshot, Target: opts.OutputPath},
		},
	}
}
