package domain

// CategoryType is the fixed classification tag that places a category
// into one of five P&L buckets.
type CategoryType string

const (
	TypeRevenue     CategoryType = "revenue"
	TypeOtherIncome CategoryType = "other_income"

	TypeCOGS CategoryType = "cogs"

	TypeOperatingExpense     CategoryType = "operating_expense"
	TypePayroll              CategoryType = "payroll"
	TypeMarketing            CategoryType = "marketing"
	TypeAdmin                CategoryType = "admin"
	TypeRent                 CategoryType = "rent"
	TypeProfessionalServices CategoryType = "professional_services"
	TypeSoftware             CategoryType = "software"
	TypeTravel               CategoryType = "travel"

	TypeTaxes        CategoryType = "taxes"
	TypeInterest     CategoryType = "interest"
	TypeDepreciation CategoryType = "depreciation"
	TypeOtherExpense CategoryType = "other_expense"

	TypeTransfer      CategoryType = "transfer"
	TypeInvestment    CategoryType = "investment"
	TypeLoan          CategoryType = "loan"
	TypeEquity        CategoryType = "equity"
	TypeUncategorized CategoryType = "uncategorized"
)

// Bucket is the P&L placement of a category type.
type Bucket int

const (
	BucketIncome Bucket = iota
	BucketCOGS
	BucketOperatingExpense
	BucketBelowLine
	BucketNonPL
)

var typeBuckets = map[CategoryType]Bucket{
	TypeRevenue:     BucketIncome,
	TypeOtherIncome: BucketIncome,

	TypeCOGS: BucketCOGS,

	TypeOperatingExpense:     BucketOperatingExpense,
	TypePayroll:              BucketOperatingExpense,
	TypeMarketing:            BucketOperatingExpense,
	TypeAdmin:                BucketOperatingExpense,
	TypeRent:                 BucketOperatingExpense,
	TypeProfessionalServices: BucketOperatingExpense,
	TypeSoftware:             BucketOperatingExpense,
	TypeTravel:               BucketOperatingExpense,

	TypeTaxes:        BucketBelowLine,
	TypeInterest:     BucketBelowLine,
	TypeDepreciation: BucketBelowLine,
	TypeOtherExpense: BucketBelowLine,

	TypeTransfer:      BucketNonPL,
	TypeInvestment:    BucketNonPL,
	TypeLoan:          BucketNonPL,
	TypeEquity:        BucketNonPL,
	TypeUncategorized: BucketNonPL,
}

// BucketOf returns the P&L bucket of a category type. Unknown types map
// to BucketNonPL so they never leak into a statement.
func BucketOf(t CategoryType) Bucket {
	if b, ok := typeBuckets[t]; ok {
		return b
	}
	return BucketNonPL
}

// IsValidCategoryType reports whether t is one of the known types.
func IsValidCategoryType(t CategoryType) bool {
	_, ok := typeBuckets[t]
	return ok
}

// IncomeTypes returns the category types counted as income.
func IncomeTypes() []CategoryType {
	return []CategoryType{TypeRevenue, TypeOtherIncome}
}

// OperatingExpenseTypes returns the eight operating-expense category types.
func OperatingExpenseTypes() []CategoryType {
	return []CategoryType{
		TypeOperatingExpense, TypePayroll, TypeMarketing, TypeAdmin,
		TypeRent, TypeProfessionalServices, TypeSoftware, TypeTravel,
	}
}

// BelowLineTypes returns the below-the-line expense category types.
func BelowLineTypes() []CategoryType {
	return []CategoryType{TypeTaxes, TypeInterest, TypeDepreciation, TypeOtherExpense}
}

// ExpenseTypes returns every expense-side P&L category type.
func ExpenseTypes() []CategoryType {
	types := []CategoryType{TypeCOGS}
	types = append(types, OperatingExpenseTypes()...)
	types = append(types, BelowLineTypes()...)
	return types
}
