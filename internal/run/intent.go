package run

// Intent is a request from the player or the menu. The set is closed.
type Intent interface {
	intent()
}

// NewRun starts a fresh run from the first level.
type NewRun struct{}

// Resume continues the saved run, or starts fresh when there is none.
type Resume struct{}

// StartAt starts a fresh run at an unlocked level.
type StartAt struct {
	Level int
}

// Pick selects a cell.
type Pick struct {
	Cell int
}

// UseHint reveals the answer cell briefly.
type UseHint struct{}

// UseSlowMotion halves the countdown drain for a while.
type UseSlowMotion struct{}

// Continue skips the pause after a cleared level.
type Continue struct{}

// Retry replays the current level after a timeout.
type Retry struct{}

// Exit leaves the run. The saved run stays for a later resume.
type Exit struct{}

// Restart abandons the run and starts over from the first level.
type Restart struct{}

// Navigate jumps Delta levels away from the current one.
type Navigate struct {
	Delta int
}

func (NewRun) intent()        {}
func (Resume) intent()        {}
func (StartAt) intent()       {}
func (Pick) intent()          {}
func (UseHint) intent()       {}
func (UseSlowMotion) intent() {}
func (Continue) intent()      {}
func (Retry) intent()         {}
func (Exit) intent()          {}
func (Restart) intent()       {}
func (Navigate) intent()      {}
