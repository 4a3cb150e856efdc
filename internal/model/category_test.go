package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "already normalized", input: "food", want: "food"},
		{name: "uppercase", input: "FOOD", want: "food"},
		{name: "mixed case with spaces", input: "  Food ", want: "food"},
		{name: "interior spaces kept", input: " Eating Out ", want: "eating out"},
		{name: "whitespace only", input: "   ", want: ""},
		{name: "empty", input: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.input))
		})
	}
}

func TestParseCategoryType(t *testing.T) {
	tests := []struct {
		input  string
		want   CategoryType
		wantOK bool
	}{
		{input: "income", want: CategoryTypeIncome, wantOK: true},
		{input: "expense", want: CategoryTypeExpense, wantOK: true},
		{input: " Expense ", want: CategoryTypeExpense, wantOK: true},
		{input: "INCOME", want: CategoryTypeIncome, wantOK: true},
		{input: "savings", wantOK: false},
		{input: "", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, ok := ParseCategoryType(tt.input)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}
