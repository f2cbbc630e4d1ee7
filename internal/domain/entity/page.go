package entity

type Screenshot struct {
	Data   []byte
	Format string
	Width  int
	Height int
}

// DebugTrigger is a debug-panel button found in the served page.
type DebugTrigger struct {
	ID      string
	Captcha string
	Label   string
}
