package domain

import "strings"

// CategoryStyle is how a category is drawn on a plan card.
type CategoryStyle struct {
	Color string
	Icon  string
}

// CategoryEntry pairs a category with its style.
type CategoryEntry struct {
	Category Category
	Style    CategoryStyle
}

// CategorySet is an ordered category table. The first entry is the
// fallback used for categories the set does not know.
type CategorySet struct {
	entries []CategoryEntry
	index   map[Category]int
}

// NewCategorySet builds a set from entries in display order.
func NewCategorySet(entries ...CategoryEntry) CategorySet {
	s := CategorySet{
		entries: make([]CategoryEntry, 0, len(entries)),
		index:   make(map[Category]int, len(entries)),
	}
	for _, e := range entries {
		if _, dup := s.index[e.Category]; dup {
			continue
		}
		s.index[e.Category] = len(s.entries)
		s.entries = append(s.entries, e)
	}
	return s
}

// DefaultCategories returns the trip's standard categories.
func DefaultCategories() CategorySet {
	return NewCategorySet(
		CategoryEntry{CategoryDining, CategoryStyle{Color: "#f97316", Icon: "🍽️"}},
		CategoryEntry{CategoryActivity, CategoryStyle{Color: "#3b82f6", Icon: "📸"}},
		CategoryEntry{CategoryCafe, CategoryStyle{Color: "#d97706", Icon: "☕"}},
		CategoryEntry{CategoryTravel, CategoryStyle{Color: "#8b5cf6", Icon: "✈️"}},
		CategoryEntry{CategoryStay, CategoryStyle{Color: "#10b981", Icon: "🏠"}},
		CategoryEntry{CategorySpecial, CategoryStyle{Color: "#ec4899", Icon: "💕"}},
		CategoryEntry{CategoryShopping, CategoryStyle{Color: "#f59e0b", Icon: "🛍️"}},
	)
}

// Entries returns the categories in display order.
func (s CategorySet) Entries() []CategoryEntry {
	out := make([]CategoryEntry, len(s.entries))
	copy(out, s.entries)
	return out
}

// Categories returns just the category keys in display order.
func (s CategorySet) Categories() []Category {
	out := make([]Category, len(s.entries))
	for i, e := range s.entries {
		out[i] = e.Category
	}
	return out
}

func (s CategorySet) Known(c Category) bool {
	_, ok := s.index[c]
	return ok
}

// Default returns the fallback category, or "" for an empty set.
func (s CategorySet) Default() Category {
	if len(s.entries) == 0 {
		return ""
	}
	return s.entries[0].Category
}

// Style returns the style for c, falling back to the default category's
// style when c is not recognized.
func (s CategorySet) Style(c Category) CategoryStyle {
	if i, ok := s.index[c]; ok {
		return s.entries[i].Style
	}
	if len(s.entries) == 0 {
		return CategoryStyle{}
	}
	return s.entries[0].Style
}

// CategoryOr returns raw trimmed as a Category, or fallback when raw is blank.
// Unknown names are kept as typed.
func CategoryOr(raw string, fallback Category) Category {
	if c := Category(strings.TrimSpace(raw)); c != "" {
		return c
	}
	return fallback
}
