package app

import (
	"github.com/ayusman/handmouse/internal/gesture"
	"github.com/ayusman/handmouse/internal/store"
)

// startSession opens a journal session when a store is configured.
// Failures are logged and leave journaling off for this run.
func (a *App) startSession() {
	if a.store == nil || !a.config.Journal {
		return
	}

	session := &store.Session{CameraID: a.config.CameraID}
	if a.mouse != nil {
		screen := a.mouse.Screen()
		session.ScreenWidth = screen.Width
		session.ScreenHeight = screen.Height
	}

	if err := a.store.Sessions().Create(session); err != nil {
		logger.Warnf("journal: start session: %v", err)
		return
	}

	a.mu.Lock()
	a.session = session
	a.mu.Unlock()
	logger.Infof("journal session %s", session.ID)
}

func (a *App) finishSession() {
	a.mu.Lock()
	session := a.session
	if session != nil {
		session.Frames = a.stats.Frames
		session.Hands = a.stats.Hands
		session.Actions = a.stats.Actions
	}
	a.mu.Unlock()

	if session == nil {
		return
	}
	if err := a.store.Sessions().Finish(session); err != nil {
		logger.Warnf("journal: finish session %s: %v", session.ID, err)
	}
}

// journal records a dispatched action. Moves are only kept with JournalMoves.
func (a *App) journal(d Decision) {
	a.mu.RLock()
	session := a.session
	a.mu.RUnlock()

	if session == nil {
		return
	}
	if d.Action == gesture.Move && !a.config.JournalMoves {
		return
	}

	event := &store.Event{
		SessionID:   session.ID,
		Action:      d.Action.String(),
		IndexAngle:  d.Features.IndexAngle,
		MiddleAngle: d.Features.MiddleAngle,
		Spread:      d.Features.Spread,
		X:           d.X,
		Y:           d.Y,
	}
	if err := a.store.Events().Create(event); err != nil {
		logger.Warnf("journal: %s event: %v", d.Action, err)
	}
}
