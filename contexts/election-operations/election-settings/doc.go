// Package settings holds the single election settings record: registration
// and voting windows plus the feature switches the other services consult.
package settings
