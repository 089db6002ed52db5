package common

// Lot lifecycle statuses. Transitions are one-way: active -> finalized or
// active -> cancelled. "Active" does not imply biddable: the close time is
// re-checked on every bid attempt, nothing transitions lots on a timer.
const (
	LotActive    = "active"
	LotFinalized = "finalized"
	LotCancelled = "cancelled"
)

// Account approval statuses. Only approved accounts may place bids.
const (
	ApprovalPending  = "pending"
	ApprovalApproved = "approved"
	ApprovalRejected = "rejected"
)

// Roles granted through the account_role table.
const (
	RoleAdmin = "admin"
)

const MaxLotPhotos = 20
