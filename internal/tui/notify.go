package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/termjournal/internal/journal"
	"github.com/julianstephens/termjournal/internal/logger"
)

// eventBuffer is how many session events may queue before new ones are dropped
const eventBuffer = 32

// channelNotifier hands session events to the program loop. Sessions notify
// from the autosave goroutine, so sending must never block.
type channelNotifier chan journal.Event

func (c channelNotifier) Notify(e journal.Event) {
	select {
	case c <- e:
	default:
		logger.Warn("Notification queue full, dropping event", "kind", e.Kind, "date", e.Date)
	}
}

type eventMsg journal.Event

// waitForEvent blocks until the next session event arrives
func waitForEvent(ch <-chan journal.Event) tea.Cmd {
	return func() tea.Msg {
		return eventMsg(<-ch)
	}
}
