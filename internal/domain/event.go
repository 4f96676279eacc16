package domain

type ChangeAction string

const (
	ActionPrimaryUpserted   ChangeAction = "primary_upserted"
	ActionFinancialAttached ChangeAction = "financial_attached"
	ActionRemoved           ChangeAction = "removed"
)

// ChangeEvent announces a committed change to a cached answer. Answer is
// nil for removals.
type ChangeEvent struct {
	Action ChangeAction
	Topic  string
	Answer *CachedAnswer
}
