package model

// Budget is a user-set ceiling for one category name. The budgets table is
// keyed on the name alone, so setting a budget under an existing name
// replaces the prior row entirely, including its type.
type Budget struct {
	CategoryName string
	Type         CategoryType
	Value        float64
}
