package services

import "skvote/contexts/election-operations/verification-service/domain/entities"

// AllowedFrom enumerates the source states a transition may leave.
// Terminal states have no exits; re-opening a rejected record is not a
// supported transition, the applicant re-registers instead.
func AllowedFrom(target entities.Status) []entities.Status {
	switch target {
	case entities.StatusVerifying:
		return []entities.Status{entities.StatusPending}
	case entities.StatusVerified, entities.StatusRejected:
		return []entities.Status{entities.StatusPending, entities.StatusVerifying}
	default:
		return nil
	}
}

// CanTransition reports whether current -> target is a legal move.
func CanTransition(current entities.Status, target entities.Status) bool {
	for _, from := range AllowedFrom(target) {
		if from == current {
			return true
		}
	}
	return false
}
