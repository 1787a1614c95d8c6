// Package entity defines the domain models for the codes feature.
package entity

import "strings"

// Category identifies which TWSE ISIN listing page a record came from.
type Category string

const (
	// CategoryTWSE covers securities listed on the Taiwan Stock Exchange (strMode=2).
	CategoryTWSE Category = "TWSE"
	// CategoryOTC covers securities traded over the counter on the TPEx (strMode=4).
	CategoryOTC Category = "OTC"
	// CategoryFuture covers futures and index products (strMode=11).
	CategoryFuture Category = "FUTURE"
)

// Categories returns all source categories in crawl order.
func Categories() []Category {
	return []Category{CategoryTWSE, CategoryOTC, CategoryFuture}
}

func (c Category) String() string {
	return string(c)
}

func (c Category) IsValid() bool {
	switch c {
	case CategoryTWSE, CategoryOTC, CategoryFuture:
		return true
	default:
		return false
	}
}

// ParseCategory normalizes a user-supplied category filter. The empty string
// selects all categories and is valid.
func ParseCategory(s string) (Category, bool) {
	if s == "" {
		return "", true
	}
	c := Category(strings.ToUpper(strings.TrimSpace(s)))
	return c, c.IsValid()
}

// CodeRecord represents one tradable instrument row from a TWSE ISIN listing.
// Code plus Category identifies a record within a snapshot; the remaining
// fields carry whatever descriptive columns the source page publishes.
type CodeRecord struct {
	ID           uint     `gorm:"primaryKey"`
	Code         string   `gorm:"size:20;not null;uniqueIndex:code_cat,priority:1"`
	Name         string   `gorm:"size:255;not null"`
	Category     Category `gorm:"size:16;not null;uniqueIndex:code_cat,priority:2"`
	SecurityType string   `gorm:"size:64"` // upstream 類別 column (股票, ETF, 指數, ...)
	ISIN         string   `gorm:"size:12"`
	ListingDate  string   `gorm:"size:10"`
	Market       string   `gorm:"size:32"`
	Industry     string   `gorm:"size:64"`
	CFICode      string   `gorm:"size:6"`
	Remark       string   `gorm:"size:255"`
}

func (CodeRecord) TableName() string {
	return "twse_codes"
}

// Summary reduces the record to its code, name and category, the projection
// served when detail columns are not requested.
func (r CodeRecord) Summary() CodeRecord {
	return CodeRecord{Code: r.Code, Name: r.Name, Category: r.Category}
}
