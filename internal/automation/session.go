package automation

import (
	"time"

	"github.com/google/uuid"

	"github.com/mj1618/desktop-mcp/internal/platform"
)

// Session is the current application: the last process started by Launch.
type Session struct {
	ID      string    `json:"id" yaml:"id"`
	PID     int       `json:"pid" yaml:"pid"`
	Name    string    `json:"name" yaml:"name"`
	Path    string    `json:"path" yaml:"path"`
	Started time.Time `json:"started" yaml:"started"`
	// Window is the main window name at launch, empty if none appeared.
	Window string `json:"window,omitempty" yaml:"window,omitempty"`

	main platform.Element
}

func newSession(p platform.Process, main platform.Element) *Session {
	s := &Session{
		ID:      uuid.NewString(),
		PID:     p.PID,
		Name:    p.Name,
		Path:    p.Path,
		Started: time.Now(),
		main:    main,
	}
	if main != nil {
		s.Window, _ = main.Name()
	}
	return s
}
