package models

// BookCondition describes the physical state of a copy.
type BookCondition string

const (
	ConditionNew        BookCondition = "New"
	ConditionSecondHand BookCondition = "Second Hand"
)

// BookStatus is the availability state of a book.
type BookStatus string

const (
	StatusAvailable BookStatus = "Available"
	StatusOnShelves BookStatus = "On Shelves"
	StatusBorrowed  BookStatus = "Borrowed"
	StatusSold      BookStatus = "Sold"
)

// Acquirable reports whether the status admits borrowing or purchasing.
func (s BookStatus) Acquirable() bool {
	return s == StatusAvailable || s == StatusOnShelves
}

// Book represents a row in the books table. is_available mirrors book_status
// and is derived on every write, never set independently.
type Book struct {
	ID          int64         `db:"id" json:"id"`
	Title       string        `db:"title" json:"title"`
	Author      string        `db:"author" json:"author"`
	Category    string        `db:"category" json:"category"`
	Publisher   string        `db:"publisher" json:"publisher"`
	Price       float64       `db:"price" json:"price"`
	Condition   BookCondition `db:"book_condition" json:"book_condition"`
	Status      BookStatus    `db:"book_status" json:"book_status"`
	IsAvailable bool          `db:"is_available" json:"is_available"`
}

// BorrowOnly reports whether the book follows the borrow/return path.
func (b *Book) BorrowOnly() bool {
	return b.Price == 0
}

// BookUpsertRequest carries the add and edit book form fields.
type BookUpsertRequest struct {
	Title     string        `json:"title" validate:"required"`
	Author    string        `json:"author" validate:"required"`
	Category  string        `json:"category" validate:"required"`
	Publisher string        `json:"publisher" validate:"required"`
	Price     float64       `json:"price" validate:"gte=0"`
	Condition BookCondition `json:"book_condition" validate:"required,oneof=New 'Second Hand'"`
	Status    BookStatus    `json:"book_status" validate:"required,oneof=Available 'On Shelves' Borrowed Sold"`
}

// DonateBookRequest carries the donation form fields. Donated copies always
// enter the borrow catalog at price 0 as Second Hand stock.
type DonateBookRequest struct {
	Title     string `json:"title" validate:"required"`
	Author    string `json:"author" validate:"required"`
	Category  string `json:"category" validate:"required"`
	Publisher string `json:"publisher" validate:"required"`
}

// CatalogFilter selects a catalog view for listing.
type CatalogFilter int

const (
	// CatalogAll lists the entire inventory regardless of state.
	CatalogAll CatalogFilter = iota
	// CatalogBorrow lists acquirable books with price 0.
	CatalogBorrow
	// CatalogSale lists acquirable books with price > 0.
	CatalogSale
)
