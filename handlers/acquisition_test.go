package handlers

import (
	"encoding/json"
	"net/http"
	"strings"
	"testing"

	"livre_manager_go/config"
	"livre_manager_go/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateAcquisitionHandler(t *testing.T) {
	database := setupTestDB(t)

	t.Run("Success with items", func(t *testing.T) {
		body := `{
			"acquisition_type": "purchase",
			"acquisition_date_str": "2023/4/1 9:5 JST",
			"store_name": "Example Books",
			"currency_code": "JPY",
			"total": 1320,
			"payment_method": "credit",
			"items": [
				{"item_type": "book", "item_id": "9784003101018", "description": "Complete Book", "price": 1320, "quantity": 1}
			]
		}`
		_, c, rec := setupEcho(http.MethodPost, "/api/acquisitions", strings.NewReader(body))

		err := CreateAcquisitionHandler(c)
		assert.NoError(t, err)
		assert.Equal(t, http.StatusCreated, rec.Code)

		var created models.Acquisition
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
		assert.Equal(t, "2023/04/01 09:05 JST", created.AcquisitionDateStr)
		assert.Equal(t, "Asia/Tokyo", created.AcquisitionDateTZ)
		assert.Equal(t, "minute", created.DatePrecision)
		require.NotNil(t, created.AcquisitionDate)
		require.Len(t, created.Items, 1)
		require.NotNil(t, created.Items[0].ItemID)
		assert.Equal(t, "9784003101018", *created.Items[0].ItemID)

		var stored models.Acquisition
		require.NoError(t, database.Preload("Items").First(&stored, "id = ?", created.ID).Error)
		assert.Equal(t, 1, stored.TotalQuantity())
	})

	t.Run("Default timezone from config", func(t *testing.T) {
		body := `{"acquisition_date_str": "2023/4/1 9:5", "store_name": "TZ Store"}`
		_, c, rec := setupEcho(http.MethodPost, "/api/acquisitions", strings.NewReader(body))
		c.Set("config", &config.Config{Environment: "test", DefaultTimezone: "Asia/Tokyo"})

		err := CreateAcquisitionHandler(c)
		assert.NoError(t, err)
		assert.Equal(t, http.StatusCreated, rec.Code)

		var created models.Acquisition
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
		assert.Equal(t, "Asia/Tokyo", created.AcquisitionDateTZ)
		assert.Equal(t, "2023/04/01 09:05 JST", created.AcquisitionDateStr)
	})

	t.Run("Explicit timezone beats config default", func(t *testing.T) {
		body := `{"acquisition_date_str": "2023/4/1 9:5 EST", "store_name": "TZ Store"}`
		_, c, rec := setupEcho(http.MethodPost, "/api/acquisitions", strings.NewReader(body))
		c.Set("config", &config.Config{Environment: "test", DefaultTimezone: "Asia/Tokyo"})

		err := CreateAcquisitionHandler(c)
		assert.NoError(t, err)
		assert.Equal(t, http.StatusCreated, rec.Code)

		var created models.Acquisition
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
		assert.Equal(t, "America/New_York", created.AcquisitionDateTZ)
	})

	t.Run("Invalid date reports field and code", func(t *testing.T) {
		body := `{"acquisition_date_str": "2021/02/29", "store_name": "Bad Date Store"}`
		_, c, rec := setupEcho(http.MethodPost, "/api/acquisitions", strings.NewReader(body))

		err := CreateAcquisitionHandler(c)
		assert.NoError(t, err)
		assert.Equal(t, http.StatusBadRequest, rec.Code)

		var resp map[string]interface{}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "acquisition_date_str", resp["field"])
		assert.Equal(t, "VALUE_ERROR", resp["code"])
	})

	t.Run("Invalid timezone token", func(t *testing.T) {
		body := `{"acquisition_date_str": "2023/4/1", "acquisition_date_tz": "Mars/Olympus"}`
		_, c, rec := setupEcho(http.MethodPost, "/api/acquisitions", strings.NewReader(body))

		err := CreateAcquisitionHandler(c)
		assert.NoError(t, err)
		assert.Equal(t, http.StatusBadRequest, rec.Code)

		var resp map[string]interface{}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "acquisition_date_tz", resp["field"])
	})

	t.Run("Invalid item ISBN", func(t *testing.T) {
		body := `{"store_name": "Bad ISBN", "items": [{"item_type": "book", "item_id": "9784003101019"}]}`
		_, c, rec := setupEcho(http.MethodPost, "/api/acquisitions", strings.NewReader(body))

		err := CreateAcquisitionHandler(c)
		assert.NoError(t, err)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("Invalid acquisition type", func(t *testing.T) {
		body := `{"acquisition_type": "theft"}`
		_, c, rec := setupEcho(http.MethodPost, "/api/acquisitions", strings.NewReader(body))

		err := CreateAcquisitionHandler(c)
		assert.NoError(t, err)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("Memo is sanitized", func(t *testing.T) {
		body := `{"store_name": "Memo Store", "items": [{"item_type": "other", "user_memo": "<script>alert(1)</script>plain"}]}`
		_, c, rec := setupEcho(http.MethodPost, "/api/acquisitions", strings.NewReader(body))

		err := CreateAcquisitionHandler(c)
		assert.NoError(t, err)
		assert.Equal(t, http.StatusCreated, rec.Code)

		var created models.Acquisition
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
		require.Len(t, created.Items, 1)
		assert.Equal(t, "plain", created.Items[0].UserMemo)
	})
}

func TestGetAcquisitionsHandler(t *testing.T) {
	database := setupTestDB(t)

	database.Create(&models.Acquisition{StoreName: "First Store"})
	database.Create(&models.Acquisition{StoreName: "Second Store"})

	_, c, rec := setupEcho(http.MethodGet, "/api/acquisitions", nil)
	err := GetAcquisitionsHandler(c)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)

	var list []models.Acquisition
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	assert.Len(t, list, 2)
}

func TestGetAcquisitionHandler(t *testing.T) {
	database := setupTestDB(t)

	acq := &models.Acquisition{StoreName: "Detail Store"}
	database.Create(acq)
	database.Create(&models.AcquiredItem{AcquisitionID: acq.ID, Description: "Item One", Quantity: intToPtr(2)})

	t.Run("Found", func(t *testing.T) {
		_, c, rec := setupEcho(http.MethodGet, "/api/acquisitions/"+acq.ID, nil)
		c.SetParamNames("id")
		c.SetParamValues(acq.ID)

		err := GetAcquisitionHandler(c)
		assert.NoError(t, err)
		assert.Equal(t, http.StatusOK, rec.Code)

		var got models.Acquisition
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
		assert.Len(t, got.Items, 1)
	})

	t.Run("Not found", func(t *testing.T) {
		_, c, rec := setupEcho(http.MethodGet, "/api/acquisitions/missing", nil)
		c.SetParamNames("id")
		c.SetParamValues("missing")

		err := GetAcquisitionHandler(c)
		assert.NoError(t, err)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestUpdateAcquisitionHandler(t *testing.T) {
	database := setupTestDB(t)

	acq := &models.Acquisition{StoreName: "Old Store"}
	database.Create(acq)
	database.Create(&models.AcquiredItem{AcquisitionID: acq.ID, Description: "Old Item"})

	body := `{"store_name": "New Store", "items": [{"item_type": "other", "description": "New Item"}]}`
	_, c, rec := setupEcho(http.MethodPut, "/api/acquisitions/"+acq.ID, strings.NewReader(body))
	c.SetParamNames("id")
	c.SetParamValues(acq.ID)

	err := UpdateAcquisitionHandler(c)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)

	var stored models.Acquisition
	require.NoError(t, database.Preload("Items").First(&stored, "id = ?", acq.ID).Error)
	assert.Equal(t, "New Store", stored.StoreName)
	require.Len(t, stored.Items, 1)
	assert.Equal(t, "New Item", stored.Items[0].Description)
}

func TestUpdateAcquisitionHandlerInvalidDate(t *testing.T) {
	database := setupTestDB(t)

	acq := &models.Acquisition{StoreName: "Stable Store", AcquisitionDateStr: "2023/04/01"}
	database.Create(acq)

	body := `{"store_name": "Stable Store", "acquisition_date_str": "2021/02/29"}`
	_, c, rec := setupEcho(http.MethodPut, "/api/acquisitions/"+acq.ID, strings.NewReader(body))
	c.SetParamNames("id")
	c.SetParamValues(acq.ID)

	err := UpdateAcquisitionHandler(c)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// The body is a single error object, not a response with trailing garbage.
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "acquisition_date_str", resp["field"])
	assert.Equal(t, "VALUE_ERROR", resp["code"])

	var stored models.Acquisition
	require.NoError(t, database.First(&stored, "id = ?", acq.ID).Error)
	assert.Equal(t, "2023/04/01", stored.AcquisitionDateStr)
}

func TestDeleteAcquisitionHandler(t *testing.T) {
	database := setupTestDB(t)

	acq := &models.Acquisition{StoreName: "Doomed Store"}
	database.Create(acq)

	_, c, rec := setupEcho(http.MethodDelete, "/api/acquisitions/"+acq.ID, nil)
	c.SetParamNames("id")
	c.SetParamValues(acq.ID)

	err := DeleteAcquisitionHandler(c)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	var count int64
	database.Model(&models.Acquisition{}).Count(&count)
	assert.Zero(t, count)
}
