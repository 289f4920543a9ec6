package services

import "strings"

const receiptPrefix = "SK-"
const receiptLength = 12

// ReceiptCode derives the voter-facing receipt from the ballot id. The code
// is a pure function of the id so re-reading a ballot always reproduces the
// same receipt.
func ReceiptCode(ballotID string) string {
	compact := strings.ToUpper(strings.ReplaceAll(ballotID, "-", ""))
	if len(compact) > receiptLength {
		compact = compact[:receiptLength]
	}
	return receiptPrefix + compact
}
