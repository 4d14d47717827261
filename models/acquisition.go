package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Acquisition type constants
const (
	AcquisitionTypePurchase = "purchase"
	AcquisitionTypeOther    = "other"
)

// Payment method constants (empty means unspecified)
const (
	PaymentMethodCash   = "cash"
	PaymentMethodCredit = "credit"
)

// Currency code constants
const (
	CurrencyJPY = "JPY"
	CurrencyUSD = "USD"
)

// Acquisition represents one purchase/receipt event with its line items
type Acquisition struct {
	ID        string         `gorm:"type:uuid;primarykey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	AcquisitionType string `gorm:"size:10;default:'purchase'" json:"acquisition_type"`

	// Acquisition date: the normalized user-entered string is the source of
	// truth; the resolved timestamp (missing components defaulted) exists for
	// range queries only.
	AcquisitionDateStr string     `gorm:"type:text" json:"acquisition_date_str"`
	AcquisitionDate    *time.Time `gorm:"index" json:"acquisition_date,omitempty"`
	AcquisitionDateTZ  string     `gorm:"size:64" json:"acquisition_date_tz"`
	DatePrecision      string     `gorm:"size:10" json:"date_precision"`

	StoreName          string `gorm:"type:text" json:"store_name"`
	TransactionNumber  string `gorm:"type:text" json:"transaction_number"`
	TransactionContext string `gorm:"type:text" json:"transaction_context"`
	Staff              string `gorm:"type:text" json:"staff"`

	CurrencyCode  string `gorm:"size:10;default:'JPY'" json:"currency_code"`
	Total         *int   `json:"total,omitempty"`
	Subtotal      *int   `json:"subtotal,omitempty"`
	Tax           *int   `json:"tax,omitempty"`
	ExtraFee      *int   `gorm:"default:0" json:"extra_fee,omitempty"`
	PaymentMethod string `gorm:"size:10;default:''" json:"payment_method"`

	Items []AcquiredItem `gorm:"foreignKey:AcquisitionID;constraint:OnDelete:CASCADE" json:"items,omitempty"`
}

// BeforeCreate hook to generate UUID
func (a *Acquisition) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.New().String()
	}
	return nil
}

// TableName specifies the table name for Acquisition model
func (Acquisition) TableName() string {
	return "acquisitions"
}

// IsValidAcquisitionType checks if the acquisition type is valid
func IsValidAcquisitionType(t string) bool {
	return t == AcquisitionTypePurchase || t == AcquisitionTypeOther
}

// IsValidPaymentMethod checks if the payment method is valid (empty allowed)
func IsValidPaymentMethod(m string) bool {
	return m == "" || m == PaymentMethodCash || m == PaymentMethodCredit
}

// IsValidCurrencyCode checks if the currency code is valid (empty allowed)
func IsValidCurrencyCode(c string) bool {
	return c == "" || c == CurrencyJPY || c == CurrencyUSD
}

// TotalQuantity sums the quantities of all line items
func (a *Acquisition) TotalQuantity() int {
	total := 0
	for _, item := range a.Items {
		if item.Quantity != nil {
			total += *item.Quantity
		}
	}
	return total
}

// Item type constants
const (
	ItemTypeBook  = "book"
	ItemTypeOther = "other"
)

// AcquiredItem is one line item of an acquisition
type AcquiredItem struct {
	ID        string         `gorm:"type:uuid;primarykey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	AcquisitionID string      `gorm:"type:uuid;index;not null" json:"acquisition_id"`
	Acquisition   Acquisition `gorm:"foreignKey:AcquisitionID" json:"-"`

	ItemType    string  `gorm:"size:20;default:'book'" json:"item_type"`
	ItemID      *string `gorm:"type:text" json:"item_id,omitempty"` // ISBN for books
	GenreCode   string  `gorm:"type:text" json:"genre_code"`
	Description string  `gorm:"type:text" json:"description"`
	Price       *int    `json:"price,omitempty"`
	NetPrice    *int    `json:"net_price,omitempty"`
	Tax         *int    `json:"tax,omitempty"`
	Quantity    *int    `gorm:"default:1" json:"quantity,omitempty"`
	UserMemo    string  `gorm:"type:text" json:"user_memo"`
}

// BeforeCreate hook to generate UUID
func (i *AcquiredItem) BeforeCreate(tx *gorm.DB) error {
	if i.ID == "" {
		i.ID = uuid.New().String()
	}
	return nil
}

// TableName specifies the table name for AcquiredItem model
func (AcquiredItem) TableName() string {
	return "acquired_items"
}

// IsValidItemType checks if the item type is valid
func IsValidItemType(t string) bool {
	return t == ItemTypeBook || t == ItemTypeOther
}
