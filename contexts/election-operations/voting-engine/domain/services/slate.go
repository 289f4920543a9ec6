package services

import (
	"strings"

	"skvote/contexts/election-operations/voting-engine/domain/entities"
	domainerrors "skvote/contexts/election-operations/voting-engine/domain/errors"
)

// NormalizeSlate validates the structural shape of a ballot slate before any
// candidate lookup: a non-empty chairperson id and a duplicate-free set of
// one to KagawadSeats kagawad ids. Returns the trimmed chairperson id and
// kagawad ids.
func NormalizeSlate(chairpersonID string, kagawadIDs []string) (string, []string, error) {
	chair := strings.TrimSpace(chairpersonID)
	if chair == "" {
		return "", nil, domainerrors.ErrInvalidCandidate
	}
	if len(kagawadIDs) < 1 || len(kagawadIDs) > entities.KagawadSeats {
		return "", nil, domainerrors.ErrInvalidCandidate
	}
	seen := make(map[string]struct{}, len(kagawadIDs))
	trimmed := make([]string, 0, len(kagawadIDs))
	for _, id := range kagawadIDs {
		id = strings.TrimSpace(id)
		if id == "" {
			return "", nil, domainerrors.ErrInvalidCandidate
		}
		if _, dup := seen[id]; dup {
			return "", nil, domainerrors.ErrInvalidCandidate
		}
		seen[id] = struct{}{}
		trimmed = append(trimmed, id)
	}
	return chair, trimmed, nil
}
