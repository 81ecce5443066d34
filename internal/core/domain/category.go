package domain

// CategoryType restricts a category to one side of the ledger. Categories are
// never typed TRANSFER.
type CategoryType string

const (
	CategoryTypeExpense CategoryType = "EXPENSE"
	CategoryTypeIncome  CategoryType = "INCOME"
)

// Category labels transactions for budgeting and statistics.
type Category struct {
	BaseEntity
	Name  string       `json:"name"`
	Icon  string       `json:"icon"`
	Color string       `json:"color"`
	Type  CategoryType `json:"type"`
}

// DefaultCategories returns the seed used when no category collection exists
// in the persistence store.
func DefaultCategories() []Category {
	seed := []struct {
		id, name, icon, color string
		typ                   CategoryType
	}{
		{"cat-1", "Food", "fa-utensils", "bg-orange-500", CategoryTypeExpense},
		{"cat-2", "Transport", "fa-car", "bg-blue-500", CategoryTypeExpense},
		{"cat-3", "Leisure", "fa-gamepad", "bg-purple-500", CategoryTypeExpense},
		{"cat-4", "Health", "fa-heart-pulse", "bg-rose-500", CategoryTypeExpense},
		{"cat-5", "Education", "fa-graduation-cap", "bg-indigo-500", CategoryTypeExpense},
		{"cat-6", "Housing", "fa-house", "bg-emerald-500", CategoryTypeExpense},
		{"cat-7", "Shopping", "fa-bag-shopping", "bg-pink-500", CategoryTypeExpense},
		{"cat-8", "Services", "fa-wrench", "bg-amber-500", CategoryTypeExpense},
		{"cat-9", "Subscriptions", "fa-tv", "bg-red-500", CategoryTypeExpense},
		{"cat-10", "Internet", "fa-wifi", "bg-cyan-500", CategoryTypeExpense},
		{"cat-11", "Gifts", "fa-gift", "bg-violet-500", CategoryTypeExpense},
		{"cat-12", "Travel", "fa-plane", "bg-sky-500", CategoryTypeExpense},
		{"cat-13", "Salary", "fa-money-bill-trend-up", "bg-green-500", CategoryTypeIncome},
		{"cat-14", "Investments", "fa-chart-line", "bg-teal-500", CategoryTypeIncome},
		{"cat-15", "Other", "fa-ellipsis", "bg-slate-500", CategoryTypeExpense},
	}

	categories := make([]Category, 0, len(seed))
	for _, s := range seed {
		categories = append(categories, Category{
			BaseEntity: BaseEntity{ID: s.id},
			Name:       s.name,
			Icon:       s.icon,
			Color:      s.color,
			Type:       s.typ,
		})
	}
	return categories
}
