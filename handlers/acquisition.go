package handlers

import (
	"errors"
	"net/http"

	"livre_manager_go/config"
	"livre_manager_go/db"
	"livre_manager_go/fuzzydate"
	"livre_manager_go/models"
	"livre_manager_go/services"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

// AcquisitionItemRequest is one line item of an acquisition payload
type AcquisitionItemRequest struct {
	ItemType    string  `json:"item_type"`
	ItemID      *string `json:"item_id"`
	GenreCode   string  `json:"genre_code"`
	Description string  `json:"description"`
	Price       *int    `json:"price"`
	NetPrice    *int    `json:"net_price"`
	Tax         *int    `json:"tax"`
	Quantity    *int    `json:"quantity"`
	UserMemo    string  `json:"user_memo"`
}

// AcquisitionRequest is the create/update payload for an acquisition
type AcquisitionRequest struct {
	AcquisitionType    string                   `json:"acquisition_type"`
	AcquisitionDateStr string                   `json:"acquisition_date_str"`
	AcquisitionDateTZ  string                   `json:"acquisition_date_tz"`
	StoreName          string                   `json:"store_name"`
	TransactionNumber  string                   `json:"transaction_number"`
	TransactionContext string                   `json:"transaction_context"`
	Staff              string                   `json:"staff"`
	CurrencyCode       string                   `json:"currency_code"`
	Total              *int                     `json:"total"`
	Subtotal           *int                     `json:"subtotal"`
	Tax                *int                     `json:"tax"`
	ExtraFee           *int                     `json:"extra_fee"`
	PaymentMethod      string                   `json:"payment_method"`
	Items              []AcquisitionItemRequest `json:"items"`
}

// errHandled signals that a validation failure has already been rendered as
// a JSON response. c.JSON returns nil on a successful write, so the helpers
// below must return a sentinel the handler can distinguish from success.
var errHandled = errors.New("response already written")

// badRequest renders a plain 400 message and marks the response as handled.
func badRequest(c echo.Context, message string) error {
	if err := c.JSON(http.StatusBadRequest, map[string]string{"error": message}); err != nil {
		return err
	}
	return errHandled
}

// fieldError renders a structured datetime/timezone error as a field-level
// JSON response; other errors fall back to a plain 400. Always returns a
// non-nil error, errHandled once the response is written.
func fieldError(c echo.Context, field string, err error) error {
	var renderErr error
	var fdErr *fuzzydate.Error
	if errors.As(err, &fdErr) {
		renderErr = c.JSON(http.StatusBadRequest, map[string]interface{}{
			"field":   field,
			"code":    string(fdErr.Code),
			"error":   fdErr.Error(),
			"details": fdErr.Details,
		})
	} else {
		renderErr = c.JSON(http.StatusBadRequest, map[string]interface{}{
			"field": field,
			"error": err.Error(),
		})
	}
	if renderErr != nil {
		return renderErr
	}
	return errHandled
}

// GetAcquisitionsHandler returns all acquisitions, newest first
func GetAcquisitionsHandler(c echo.Context) error {
	var acquisitions []models.Acquisition
	if err := db.DB.Preload("Items").
		Order("created_at DESC").
		Find(&acquisitions).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Error fetching acquisitions"})
	}
	return c.JSON(http.StatusOK, acquisitions)
}

// GetAcquisitionHandler returns a single acquisition with its items
func GetAcquisitionHandler(c echo.Context) error {
	id := c.Param("id")

	var acquisition models.Acquisition
	if err := db.DB.Preload("Items").First(&acquisition, "id = ?", id).Error; err != nil {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "Acquisition not found"})
	}
	return c.JSON(http.StatusOK, acquisition)
}

// CreateAcquisitionHandler creates an acquisition with its nested items
func CreateAcquisitionHandler(c echo.Context) error {
	var req AcquisitionRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
	}

	acquisition, err := acquisitionFromRequest(c, &req)
	if err != nil {
		if errors.Is(err, errHandled) {
			return nil
		}
		return err
	}

	if err := db.DB.Create(acquisition).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Error creating acquisition"})
	}
	return c.JSON(http.StatusCreated, acquisition)
}

// UpdateAcquisitionHandler replaces an acquisition and its items
func UpdateAcquisitionHandler(c echo.Context) error {
	id := c.Param("id")

	var existing models.Acquisition
	if err := db.DB.First(&existing, "id = ?", id).Error; err != nil {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "Acquisition not found"})
	}

	var req AcquisitionRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
	}

	updated, err := acquisitionFromRequest(c, &req)
	if err != nil {
		if errors.Is(err, errHandled) {
			return nil
		}
		return err
	}
	updated.ID = existing.ID
	updated.CreatedAt = existing.CreatedAt

	err = db.DB.Transaction(func(tx *gorm.DB) error {
		// Line items are replaced wholesale on update.
		if err := tx.Where("acquisition_id = ?", existing.ID).Delete(&models.AcquiredItem{}).Error; err != nil {
			return err
		}
		return tx.Save(updated).Error
	})
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Error updating acquisition"})
	}
	return c.JSON(http.StatusOK, updated)
}

// DeleteAcquisitionHandler soft-deletes an acquisition
func DeleteAcquisitionHandler(c echo.Context) error {
	id := c.Param("id")

	var acquisition models.Acquisition
	if err := db.DB.First(&acquisition, "id = ?", id).Error; err != nil {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "Acquisition not found"})
	}

	if err := db.DB.Select("Items").Delete(&acquisition).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Error deleting acquisition"})
	}
	return c.NoContent(http.StatusNoContent)
}

// acquisitionFromRequest validates the payload and builds the model. On a
// validation failure the JSON response is rendered here and errHandled is
// returned.
func acquisitionFromRequest(c echo.Context, req *AcquisitionRequest) (*models.Acquisition, error) {
	acquisitionType := req.AcquisitionType
	if acquisitionType == "" {
		acquisitionType = models.AcquisitionTypePurchase
	}
	if !models.IsValidAcquisitionType(acquisitionType) {
		return nil, badRequest(c, "Invalid acquisition type: "+acquisitionType)
	}
	if !models.IsValidPaymentMethod(req.PaymentMethod) {
		return nil, badRequest(c, "Invalid payment method: "+req.PaymentMethod)
	}
	currencyCode := req.CurrencyCode
	if currencyCode == "" {
		currencyCode = models.CurrencyJPY
	}
	if !models.IsValidCurrencyCode(currencyCode) {
		return nil, badRequest(c, "Invalid currency code: "+currencyCode)
	}

	acquisition := &models.Acquisition{
		AcquisitionType:    acquisitionType,
		StoreName:          req.StoreName,
		TransactionNumber:  req.TransactionNumber,
		TransactionContext: req.TransactionContext,
		Staff:              req.Staff,
		CurrencyCode:       currencyCode,
		Total:              req.Total,
		Subtotal:           req.Subtotal,
		Tax:                req.Tax,
		ExtraFee:           req.ExtraFee,
		PaymentMethod:      req.PaymentMethod,
	}

	if req.AcquisitionDateStr != "" {
		tzToken := req.AcquisitionDateTZ
		if tzToken == "" {
			if cfg, ok := c.Get("config").(*config.Config); ok {
				tzToken = cfg.DefaultTimezone
			}
		}
		defaultTZ, err := services.ResolveTimezone(tzToken)
		if err != nil {
			return nil, fieldError(c, "acquisition_date_tz", err)
		}
		norm, err := services.NormalizeAcquisitionDate(req.AcquisitionDateStr, defaultTZ)
		if err != nil {
			return nil, fieldError(c, "acquisition_date_str", err)
		}
		acquisition.AcquisitionDateStr = norm.Canonical
		acquisition.AcquisitionDate = &norm.Resolved
		acquisition.AcquisitionDateTZ = norm.Timezone
		acquisition.DatePrecision = norm.Precision.String()
	}

	for _, item := range req.Items {
		itemType := item.ItemType
		if itemType == "" {
			itemType = models.ItemTypeBook
		}
		if !models.IsValidItemType(itemType) {
			return nil, badRequest(c, "Invalid item type: "+itemType)
		}
		if itemType == models.ItemTypeBook && item.ItemID != nil && *item.ItemID != "" {
			cleaned, err := services.ValidateISBN(*item.ItemID)
			if err != nil {
				return nil, fieldError(c, "item_id", err)
			}
			item.ItemID = &cleaned
		}
		acquisition.Items = append(acquisition.Items, models.AcquiredItem{
			ItemType:    itemType,
			ItemID:      item.ItemID,
			GenreCode:   item.GenreCode,
			Description: item.Description,
			Price:       item.Price,
			NetPrice:    item.NetPrice,
			Tax:         item.Tax,
			Quantity:    item.Quantity,
			UserMemo:    services.SanitizeText(item.UserMemo),
		})
	}

	return acquisition, nil
}
