// Package voting owns ballot casting, vote status, and result tabulation
// for the Sangguniang Kabataan election. One ballot per verified account,
// enforced by the ballot store's uniqueness guarantee.
package voting
