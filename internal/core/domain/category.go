package domain

// CategoryKind tells whether a category classifies money coming in or going out.
type CategoryKind string

const (
	CategoryKindIncome  CategoryKind = "INCOME"
	CategoryKindExpense CategoryKind = "EXPENSE"
)

// Sentinel category ids used by system-generated transactions.
const (
	CategoryTransfer      = "transfer"
	CategoryLoanPrincipal = "loan-principal"
	CategoryLoanRepayment = "loan-repayment"
)

// Category is static reference data attached to every transaction.
type Category struct {
	ID     string       `json:"id"`
	Name   string       `json:"name"`
	Kind   CategoryKind `json:"kind"`
	System bool         `json:"system"` // Reserved for transfer and loan legs
}

// Accepts reports whether a user-chosen transaction of type t may use this category.
func (c *Category) Accepts(t TransactionType) bool {
	if c.System {
		return false
	}
	switch t {
	case TransactionTypeIncome:
		return c.Kind == CategoryKindIncome
	case TransactionTypeExpense:
		return c.Kind == CategoryKindExpense
	}
	return false
}
