package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Book represents a catalogued book, whether or not a copy is owned
type Book struct {
	ID        string         `gorm:"type:uuid;primarykey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Title  string  `gorm:"type:text;not null" json:"title"`
	Series *string `gorm:"type:text" json:"series,omitempty"`

	ISBN      *string `gorm:"type:text;index" json:"isbn,omitempty"`
	JAN       *string `gorm:"type:text" json:"jan,omitempty"`
	ASIN      *string `gorm:"type:text" json:"asin,omitempty"`
	Publisher *string `gorm:"type:text" json:"publisher,omitempty"`

	// Publication date at whatever precision the source gave (a bare year is
	// common); the resolved date serves ordering only.
	PublicationDateStr *string    `gorm:"type:text" json:"publication_date_str,omitempty"`
	PublicationDate    *time.Time `gorm:"type:date;index" json:"publication_date,omitempty"`
	DatePrecision      string     `gorm:"size:10" json:"date_precision"`

	Price    *int   `json:"price,omitempty"`
	UserMemo string `gorm:"type:text" json:"user_memo"`
	HasItem  bool   `gorm:"default:false" json:"has_item"`

	Authors []BookAuthor `gorm:"foreignKey:BookID;constraint:OnDelete:CASCADE" json:"authors,omitempty"`
}

// BeforeCreate hook to generate UUID
func (b *Book) BeforeCreate(tx *gorm.DB) error {
	if b.ID == "" {
		b.ID = uuid.New().String()
	}
	return nil
}

// TableName specifies the table name for Book model
func (Book) TableName() string {
	return "books"
}

// BookAuthor links an author (with an optional role) to a book
type BookAuthor struct {
	ID        string         `gorm:"type:uuid;primarykey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	BookID string `gorm:"type:uuid;index;not null" json:"book_id"`
	Book   Book   `gorm:"foreignKey:BookID" json:"-"`

	AuthorName string  `gorm:"type:text;not null" json:"author_name"`
	Role       *string `gorm:"type:text" json:"role,omitempty"`
}

// BeforeCreate hook to generate UUID
func (a *BookAuthor) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.New().String()
	}
	return nil
}

// TableName specifies the table name for BookAuthor model
func (BookAuthor) TableName() string {
	return "book_authors"
}
