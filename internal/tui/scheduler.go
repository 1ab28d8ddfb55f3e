package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// animationStepMsg carries one deferred expand/collapse step back into Update.
type animationStepMsg struct {
	fn func()
}

// Scheduler delivers inspector animation steps as Bubble Tea ticks, so every
// step runs on the program's update goroutine.
type Scheduler struct {
	queue []tea.Cmd
}

// NewScheduler creates an empty scheduler.
func NewScheduler() *Scheduler {
	return &Scheduler{}
}

// After queues fn to run once d has elapsed.
func (s *Scheduler) After(d time.Duration, fn func()) {
	s.queue = append(s.queue, tea.Tick(d, func(time.Time) tea.Msg {
		return animationStepMsg{fn: fn}
	}))
}

// Pending returns the number of queued steps not yet handed to the program.
func (s *Scheduler) Pending() int {
	return len(s.queue)
}

// Cmd hands the queued steps to the program.
func (s *Scheduler) Cmd() tea.Cmd {
	if len(s.queue) == 0 {
		return nil
	}
	cmds := s.queue
	s.queue = nil
	return tea.Batch(cmds...)
}
