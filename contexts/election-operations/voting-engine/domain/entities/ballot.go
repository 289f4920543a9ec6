package entities

import "time"

const (
	PositionChairperson = "chairperson"
	PositionKagawad     = "kagawad"
)

// KagawadSeats is the number of Sangguniang Kabataan Kagawad seats; a ballot
// may select between one and this many Kagawad candidates.
const KagawadSeats = 7

// Ballot is one account's committed vote. KagawadIDs preserves selection
// order but the slate is semantically a set.
type Ballot struct {
	ID            string
	AccountID     string
	ChairpersonID string
	KagawadIDs    []string
	ReceiptCode   string
	CastAt        time.Time
}
