// Package tui hosts the game in a terminal through Bubble Tea: the tick
// loop, mouse and key mapping, the variant picker and the SSH server.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg is sent to trigger a game simulation tick. Gen identifies the
// game the tick loop belongs to, so a replaced game's ticks are ignored.
type TickMsg struct {
	Time time.Time
	Gen  int
}

// tickInterval returns the wall-clock period of one tick.
func tickInterval(tickRate int) time.Duration {
	if tickRate <= 0 {
		tickRate = 60
	}
	return time.Second / time.Duration(tickRate)
}

// tickCmd returns a Bubble Tea command that sends tick messages at the specified rate.
func tickCmd(tickRate, gen int) tea.Cmd {
	return tea.Tick(tickInterval(tickRate), func(t time.Time) tea.Msg {
		return TickMsg{Time: t, Gen: gen}
	})
}
