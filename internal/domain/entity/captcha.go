package entity

import (
	"fmt"
	"sort"
	"strings"
)

// Captcha describes one challenge reachable from the debug panel.
type Captcha struct {
	Name  string
	Modal string
}

func (c Captcha) TriggerID() string {
	return "debug-" + c.Name + "-captcha"
}

func (c Captcha) TriggerSelector() string {
	return "#" + c.TriggerID()
}

func (c Captcha) ModalID() string {
	if c.Modal != "" {
		return c.Modal
	}
	return c.Name + "-captcha-modal"
}

func (c Captcha) ModalSelector() string {
	return "#" + c.ModalID()
}

func (c Captcha) ScreenshotName(ext string) string {
	return c.Name + "_captcha_verification." + ext
}

const DefaultCaptcha = "snake"

var catalog = map[string]Captcha{
	"text":         {Name: "text", Modal: "captcha-modal"},
	"gas":          {Name: "gas"},
	"puzzle":       {Name: "puzzle"},
	"fishing":      {Name: "fishing"},
	"nba":          {Name: "nba"},
	"lunar-lander": {Name: "lunar-lander"},
	"tanks":        {Name: "tanks"},
	"darts":        {Name: "darts"},
	"chess":        {Name: "chess"},
	"flappy-bird":  {Name: "flappy-bird"},
	"skifree":      {Name: "skifree"},
	"pool":         {Name: "pool"},
	"simon":        {Name: "simon"},
	"minesweeper":  {Name: "minesweeper"},
	"snake":        {Name: "snake"},
}

func LookupCaptcha(name string) (Captcha, error) {
	c, ok := catalog[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return Captcha{}, fmt.Errorf("%w: %q", ErrUnknownCaptcha, name)
	}
	return c, nil
}

// CaptchaNames returns the catalog names in sorted order.
func CaptchaNames() []string {
	names := make([]string, 0, len(catalog))
	for name := range catalog {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// CaptchaFromTriggerID maps a "debug-<name>-captcha" id back to its name.
func CaptchaFromTriggerID(id string) (string, bool) {
	if !strings.HasPrefix(id, "debug-") || !strings.HasSuffix(id, "-captcha") {
		return "", false
	}
	name := strings.TrimSuffix(strings.TrimPrefix(id, "debug-"), "-captcha")
	if name == "" {
		return "", false
	}
	return name, true
}
