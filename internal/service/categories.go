package service

import (
	"finance-ledger/internal/core/domain"
	"finance-ledger/pkg/apperror"
)

// DefaultIncomeCategory is used by income distribution when no category is given.
const DefaultIncomeCategory = "salary"

// DefaultCategories returns the built-in category set, including the system
// categories used by transfers and loans.
func DefaultCategories() []domain.Category {
	return []domain.Category{
		{ID: "salary", Name: "Salary", Kind: domain.CategoryKindIncome},
		{ID: "freelance", Name: "Freelance", Kind: domain.CategoryKindIncome},
		{ID: "gift", Name: "Gifts", Kind: domain.CategoryKindIncome},
		{ID: "other-income", Name: "Other income", Kind: domain.CategoryKindIncome},
		{ID: "food", Name: "Food", Kind: domain.CategoryKindExpense},
		{ID: "transport", Name: "Transport", Kind: domain.CategoryKindExpense},
		{ID: "housing", Name: "Housing", Kind: domain.CategoryKindExpense},
		{ID: "utilities", Name: "Utilities", Kind: domain.CategoryKindExpense},
		{ID: "health", Name: "Health", Kind: domain.CategoryKindExpense},
		{ID: "education", Name: "University", Kind: domain.CategoryKindExpense},
		{ID: "entertainment", Name: "Entertainment", Kind: domain.CategoryKindExpense},
		{ID: "other-expense", Name: "Other expense", Kind: domain.CategoryKindExpense},
		{ID: domain.CategoryTransfer, Name: "Transfer", System: true},
		{ID: domain.CategoryLoanPrincipal, Name: "Loan given", Kind: domain.CategoryKindExpense, System: true},
		{ID: domain.CategoryLoanRepayment, Name: "Loan repayment", Kind: domain.CategoryKindIncome, System: true},
	}
}

// CategoryCatalog is read-only reference data.
type CategoryCatalog struct {
	byID  map[string]domain.Category
	order []string
}

// NewCategoryCatalog indexes categories by id. The system categories are always
// present so transfers and loans can post.
func NewCategoryCatalog(categories []domain.Category) *CategoryCatalog {
	c := &CategoryCatalog{byID: make(map[string]domain.Category)}
	add := func(cat domain.Category) {
		if _, ok := c.byID[cat.ID]; !ok {
			c.order = append(c.order, cat.ID)
		}
		c.byID[cat.ID] = cat
	}
	for _, cat := range categories {
		add(cat)
	}
	for _, cat := range DefaultCategories() {
		if cat.System {
			add(cat)
		}
	}
	return c
}

// Get returns the category or a NotFound error.
func (c *CategoryCatalog) Get(id string) (*domain.Category, error) {
	cat, ok := c.byID[id]
	if !ok {
		return nil, apperror.ErrNotFound("category")
	}
	return &cat, nil
}

// List returns all categories in registration order.
func (c *CategoryCatalog) List() []domain.Category {
	out := make([]domain.Category, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, c.byID[id])
	}
	return out
}
