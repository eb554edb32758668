package domain

import "time"

type BookStatus string

const (
	BookStatusAvailable   BookStatus = "AVAILABLE"
	BookStatusIssued      BookStatus = "ISSUED"
	BookStatusReserved    BookStatus = "RESERVED"
	BookStatusDamaged     BookStatus = "DAMAGED"
	BookStatusLost        BookStatus = "LOST"
	BookStatusUnderRepair BookStatus = "UNDER_REPAIR"
	BookStatusOutOfPrint  BookStatus = "OUT_OF_PRINT"
)

type BookCategory string

const (
	BookCategoryTextbook   BookCategory = "TEXTBOOK"
	BookCategoryReference  BookCategory = "REFERENCE"
	BookCategoryFiction    BookCategory = "FICTION"
	BookCategoryNonFiction BookCategory = "NON_FICTION"
	BookCategoryBiography  BookCategory = "BIOGRAPHY"
	BookCategoryScience    BookCategory = "SCIENCE"
	BookCategoryHistory    BookCategory = "HISTORY"
	BookCategoryLiterature BookCategory = "LITERATURE"
	BookCategoryMagazine   BookCategory = "MAGAZINE"
	BookCategoryJournal    BookCategory = "JOURNAL"
)

type BookCondition string

const (
	BookConditionExcellent BookCondition = "EXCELLENT"
	BookConditionGood      BookCondition = "GOOD"
	BookConditionFair      BookCondition = "FAIR"
	BookConditionPoor      BookCondition = "POOR"
	BookConditionDamaged   BookCondition = "DAMAGED"
)

// ParseBookCondition rejects unknown values instead of substituting a
// default; an empty input falls back to GOOD.
func ParseBookCondition(s string) (BookCondition, error) {
	switch BookCondition(s) {
	case "":
		return BookConditionGood, nil
	case BookConditionExcellent, BookConditionGood, BookConditionFair,
		BookConditionPoor, BookConditionDamaged:
		return BookCondition(s), nil
	}
	return "", &InvalidArgumentError{Field: "condition", Value: s}
}

func ParseBookCategory(s string) (BookCategory, error) {
	switch BookCategory(s) {
	case BookCategoryTextbook, BookCategoryReference, BookCategoryFiction,
		BookCategoryNonFiction, BookCategoryBiography, BookCategoryScience,
		BookCategoryHistory, BookCategoryLiterature, BookCategoryMagazine,
		BookCategoryJournal:
		return BookCategory(s), nil
	}
	return "", &InvalidArgumentError{Field: "category", Value: s}
}

type Book struct {
	ID              int32        `json:"id"`
	OwnerID         int32        `json:"owner_id"`
	ISBN            string       `json:"isbn"`
	AccessionNumber string       `json:"accession_number"`
	Title           string       `json:"title"`
	Author          string       `json:"author"`
	Publisher       string       `json:"publisher"`
	Category        BookCategory `json:"category"`
	ShelfNumber     string       `json:"shelf_number"`

	// Copy inventory. AvailableCopies + IssuedCopies == TotalCopies at all
	// times; mutated only through the inventory ledger's CAS updates.
	TotalCopies     int32 `json:"total_copies"`
	AvailableCopies int32 `json:"available_copies"`
	IssuedCopies    int32 `json:"issued_copies"`

	PriceCents         int64 `json:"price_cents"` // replacement cost for lost copies
	MaxBorrowDays      int32 `json:"max_borrow_days"`
	LateFeePerDayCents int64 `json:"late_fee_per_day_cents"`
	IsReferenceOnly    bool  `json:"is_reference_only"`

	Status    BookStatus    `json:"status"`
	Condition BookCondition `json:"condition"`

	// Optimistic concurrency token, incremented on every copy-count update.
	Version int64 `json:"version"`

	CreatedOn time.Time  `json:"created_on"`
	UpdatedOn time.Time  `json:"updated_on"`
	DeletedOn *time.Time `json:"deleted_on,omitempty"`
}

// BookCounts is the payload of a single CAS copy-count mutation.
type BookCounts struct {
	TotalCopies     int32
	AvailableCopies int32
	IssuedCopies    int32
	Status          BookStatus
}
