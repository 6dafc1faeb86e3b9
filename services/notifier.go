package services

import "torneo-mus/models"

// LiveNotifier pushes update events to connected websocket clients.
// Implemented by live.Hub; a nil notifier disables broadcasting.
type LiveNotifier interface {
	NotifyMatchUpdated(match *models.Match)
	NotifyScheduleGenerated(matchCount int)
}
