// Package approval keeps the ledger of confirmed review decisions and the
// policies used to decide bids without an operator.
package approval
