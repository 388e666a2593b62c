package domain

type Category string

const (
	CategoryDining   Category = "Dining"
	CategoryActivity Category = "Activity"
	CategoryCafe     Category = "Café"
	CategoryTravel   Category = "Travel"
	CategoryStay     Category = "Stay"
	CategorySpecial  Category = "Special"
	CategoryShopping Category = "Shopping"
)

type Priority string

const (
	PriorityNone   Priority = ""
	PriorityLow    Priority = "Low"
	PriorityMedium Priority = "Medium"
	PriorityHigh   Priority = "High"
)

// Priorities lists the selectable priorities in display order.
var Priorities = []Priority{PriorityLow, PriorityMedium, PriorityHigh}

// ValidPriorities is the canonical set of accepted priority strings.
var ValidPriorities = map[string]bool{
	"": true, "Low": true, "Medium": true, "High": true,
}
