package services

import (
	"bytes"
	"testing"

	"livre_manager_go/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupBookImportTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(&models.Book{}, &models.BookAuthor{})
	require.NoError(t, err)

	return db
}

// buildBookFile assembles an import spreadsheet in the template's shape:
// instructions first, then a Books sheet with a header row.
func buildBookFile(t *testing.T, rows [][]interface{}) *bytes.Buffer {
	f := excelize.NewFile()
	defer f.Close()

	f.SetSheetName("Sheet1", importSheetInstructions)
	f.NewSheet(importSheetBooks)
	for i, header := range bookImportHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(importSheetBooks, cell, header)
	}
	for r, row := range rows {
		for col, value := range row {
			cell, _ := excelize.CoordinatesToCellName(col+1, r+2)
			f.SetCellValue(importSheetBooks, cell, value)
		}
	}

	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf
}

func TestGenerateBookTemplate(t *testing.T) {
	buf, err := GenerateBookTemplate()
	require.NoError(t, err)

	f, err := excelize.OpenReader(buf)
	require.NoError(t, err)
	defer f.Close()

	sheets := f.GetSheetList()
	assert.Contains(t, sheets, importSheetInstructions)
	assert.Contains(t, sheets, importSheetBooks)

	rows, err := f.GetRows(importSheetBooks)
	require.NoError(t, err)
	require.NotEmpty(t, rows)
	assert.Equal(t, bookImportHeaders, rows[0])
}

func TestAnalyzeBookFile(t *testing.T) {
	buf := buildBookFile(t, [][]interface{}{
		{"First Book"},
		{""}, // empty title is skipped
		{"Second Book"},
	})

	total, err := AnalyzeBookFile(buf)
	require.NoError(t, err)
	assert.Equal(t, 2, total)
}

func TestBulkCreateBooksFromExcel(t *testing.T) {
	db := setupBookImportTestDB(t)

	buf := buildBookFile(t, [][]interface{}{
		{"Complete Book", "9784003101018", "Classics", "Example Press", "2020/4/10", 1200, "Jane Doe; John Roe:translator", "good condition"},
		{"Year Only", "", "", "", "1998", "", "", ""},
	})

	result, err := BulkCreateBooksFromExcel(db, buf, -1)
	require.NoError(t, err)
	assert.Equal(t, 2, result.TotalProcessed)
	assert.Equal(t, 2, result.SuccessCount)
	assert.Zero(t, result.FailedCount)
	assert.Empty(t, result.Errors)

	var book models.Book
	require.NoError(t, db.Preload("Authors").First(&book, "title = ?", "Complete Book").Error)
	require.NotNil(t, book.ISBN)
	assert.Equal(t, "9784003101018", *book.ISBN)
	require.NotNil(t, book.PublicationDateStr)
	assert.Equal(t, "2020/04/10", *book.PublicationDateStr)
	assert.Equal(t, "day", book.DatePrecision)
	require.NotNil(t, book.Price)
	assert.Equal(t, 1200, *book.Price)
	require.Len(t, book.Authors, 2)
	assert.Equal(t, "Jane Doe", book.Authors[0].AuthorName)
	assert.Nil(t, book.Authors[0].Role)
	require.NotNil(t, book.Authors[1].Role)
	assert.Equal(t, "translator", *book.Authors[1].Role)

	var yearOnly models.Book
	require.NoError(t, db.First(&yearOnly, "title = ?", "Year Only").Error)
	assert.Equal(t, "year", yearOnly.DatePrecision)
	require.NotNil(t, yearOnly.PublicationDateStr)
	assert.Equal(t, "1998", *yearOnly.PublicationDateStr)
}

func TestBulkCreateBooksRowErrors(t *testing.T) {
	db := setupBookImportTestDB(t)

	buf := buildBookFile(t, [][]interface{}{
		{"Good Book", "9784003101018"},
		{"Bad ISBN", "9784003101019"},
		{"Bad Date", "", "", "", "2021/02/29"},
		{"Bad Price", "", "", "", "", "a lot"},
	})

	result, err := BulkCreateBooksFromExcel(db, buf, -1)
	require.NoError(t, err)
	assert.Equal(t, 4, result.TotalProcessed)
	assert.Equal(t, 1, result.SuccessCount)
	assert.Equal(t, 3, result.FailedCount)
	assert.Len(t, result.Errors, 3)

	var count int64
	db.Model(&models.Book{}).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestBulkCreateBooksAllRowsFailed(t *testing.T) {
	db := setupBookImportTestDB(t)

	buf := buildBookFile(t, [][]interface{}{
		{"Bad ISBN", "123"},
	})

	result, err := BulkCreateBooksFromExcel(db, buf, -1)
	assert.Error(t, err)
	require.NotNil(t, result)
	assert.Equal(t, 1, result.FailedCount)

	var count int64
	db.Model(&models.Book{}).Count(&count)
	assert.Zero(t, count)
}

func TestBulkCreateBooksLimit(t *testing.T) {
	db := setupBookImportTestDB(t)

	buf := buildBookFile(t, [][]interface{}{
		{"One"},
		{"Two"},
		{"Three"},
	})

	result, err := BulkCreateBooksFromExcel(db, buf, 2)
	require.NoError(t, err)
	assert.Equal(t, 2, result.SuccessCount)
	assert.Equal(t, 1, result.SkippedOverLimitCount)
}
