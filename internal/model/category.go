package model

// Category is one of the fixed spending categories assigned to every
// transaction. Unmatched transactions fall back to CategoryOther.
type Category string

const (
	// CategoryIncome represents credits such as salary or refunds.
	CategoryIncome Category = "Income"
	// CategoryTransfers represents movements between own accounts.
	CategoryTransfers Category = "Transfers"
	// CategorySubscriptions represents recurring service charges.
	CategorySubscriptions Category = "Subscriptions"
	// CategoryFees represents bank and service fees.
	CategoryFees Category = "Fees"
	// CategoryGroceries represents supermarket spending.
	CategoryGroceries Category = "Groceries"
	// CategoryDining represents restaurants, cafes and food delivery.
	CategoryDining Category = "Dining & Delivery"
	// CategoryTransport represents fuel, rideshare, transit and tolls.
	CategoryTransport Category = "Transport"
	// CategoryShopping represents retail purchases.
	CategoryShopping Category = "Shopping"
	// CategoryUtilities represents utilities, telecom, insurance and rent.
	CategoryUtilities Category = "Utilities & Bills"
	// CategoryHealth represents medical, pharmacy and fitness spending.
	CategoryHealth Category = "Health & Fitness"
	// CategoryEntertainment represents movies, games and events.
	CategoryEntertainment Category = "Entertainment"
	// CategoryTravel represents flights, hotels and car rental.
	CategoryTravel Category = "Travel"
	// CategoryOther is the fallback for unmatched transactions.
	CategoryOther Category = "Other"
)

// AllCategories lists every category in display order.
func AllCategories() []Category {
	return []Category{
		CategoryIncome,
		CategoryTransfers,
		CategorySubscriptions,
		CategoryFees,
		CategoryGroceries,
		CategoryDining,
		CategoryTransport,
		CategoryShopping,
		CategoryUtilities,
		CategoryHealth,
		CategoryEntertainment,
		CategoryTravel,
		CategoryOther,
	}
}

// IsSpending reports whether the category counts toward the spending
// breakdown. Transfers and Income are excluded from percent denominators.
func (c Category) IsSpending() bool {
	return c != CategoryTransfers && c != CategoryIncome
}
