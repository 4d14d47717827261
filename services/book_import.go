package services

import (
	"bytes"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"livre_manager_go/models"

	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

// ImportResult contains the summary of the import process
type ImportResult struct {
	TotalProcessed        int
	SuccessCount          int
	FailedCount           int
	SkippedOverLimitCount int
	Errors                []string
}

const (
	importSheetInstructions = "Instructions"
	importSheetBooks        = "Books"
)

// bookImportHeaders are the columns of the Books sheet, in order.
var bookImportHeaders = []string{
	"Title*",            // A
	"ISBN",              // B
	"Series",            // C
	"Publisher",         // D
	"Publication Date",  // E
	"Price",             // F
	"Authors",           // G (semicolon-separated "Name:Role" pairs)
	"Memo",              // H
}

// GenerateBookTemplate builds the Excel template for bulk book import.
func GenerateBookTemplate() (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer f.Close()

	f.SetSheetName("Sheet1", importSheetInstructions)

	f.SetCellValue(importSheetInstructions, "A1", "Bulk book import")
	f.SetCellValue(importSheetInstructions, "A3", "Considerations:")
	f.SetCellValue(importSheetInstructions, "A4", "- Title is required; every other column is optional.")
	f.SetCellValue(importSheetInstructions, "A5", "- ISBN may be ISBN-10 or ISBN-13, with or without hyphens; the check digit is verified.")
	f.SetCellValue(importSheetInstructions, "A6", "- Publication Date accepts a year (2020), year/month (2020/04) or a full date (2020/4/10).")
	f.SetCellValue(importSheetInstructions, "A7", "- Authors is a semicolon-separated list; append a role after a colon, e.g. \"Jane Doe:illustrator\".")
	f.SetCellValue(importSheetInstructions, "A8", "- Rows whose ISBN or date fails validation are reported and skipped; valid rows still import.")

	mainTitleStyle, _ := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true, Size: 14}})
	f.SetCellStyle(importSheetInstructions, "A1", "A1", mainTitleStyle)
	f.SetColWidth(importSheetInstructions, "A", "A", 90)

	f.NewSheet(importSheetBooks)
	for i, header := range bookImportHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(importSheetBooks, cell, header)
	}
	f.SetColWidth(importSheetBooks, "A", "H", 22)

	// Example row
	f.SetCellValue(importSheetBooks, "A2", "Example Title")
	f.SetCellValue(importSheetBooks, "B2", "9784003101018")
	f.SetCellValue(importSheetBooks, "D2", "Example Press")
	f.SetCellValue(importSheetBooks, "E2", time.Now().Format("2006/1/2"))
	f.SetCellValue(importSheetBooks, "F2", 1200)
	f.SetCellValue(importSheetBooks, "G2", "Jane Doe; John Roe:translator")

	headerStyle, _ := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	f.SetCellStyle(importSheetBooks, "A1", "H1", headerStyle)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write excel buffer: %w", err)
	}
	return buf, nil
}

// AnalyzeBookFile reads the file and returns the number of rows to process
func AnalyzeBookFile(file io.Reader) (int, error) {
	f, err := excelize.OpenReader(file)
	if err != nil {
		return 0, fmt.Errorf("failed to open excel file: %w", err)
	}
	defer f.Close()

	rows, err := bookRows(f)
	if err != nil {
		return 0, err
	}

	total := 0
	for i, row := range rows {
		if i == 0 {
			continue
		} // Header
		if len(row) > 0 && strings.TrimSpace(row[0]) != "" {
			total++
		}
	}
	return total, nil
}

// BulkCreateBooksFromExcel parses the Excel file and creates book records.
// Each row is validated independently: a bad ISBN or publication date fails
// that row only, with the error reported against its row number.
func BulkCreateBooksFromExcel(dbConn *gorm.DB, file io.Reader, limit int) (*ImportResult, error) {
	f, err := excelize.OpenReader(file)
	if err != nil {
		return nil, fmt.Errorf("failed to open excel file: %w", err)
	}
	defer f.Close()

	rows, err := bookRows(f)
	if err != nil {
		return nil, err
	}

	result := &ImportResult{Errors: []string{}}

	tx := dbConn.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	for i, row := range rows {
		if i == 0 {
			continue
		} // Header

		cell := func(col int) string {
			if col < len(row) {
				return strings.TrimSpace(row[col])
			}
			return ""
		}

		title := cell(0)
		if title == "" {
			continue
		}

		if limit != -1 && result.SuccessCount >= limit {
			result.SkippedOverLimitCount++
			continue
		}
		result.TotalProcessed++

		book := models.Book{Title: title, UserMemo: SanitizeText(cell(7))}

		if isbn := cell(1); isbn != "" {
			cleaned, err := ValidateISBN(isbn)
			if err != nil {
				result.FailedCount++
				result.Errors = append(result.Errors, fmt.Sprintf("Row %d: %v", i+1, err))
				continue
			}
			book.ISBN = &cleaned
		}
		if series := cell(2); series != "" {
			book.Series = &series
		}
		if publisher := cell(3); publisher != "" {
			book.Publisher = &publisher
		}
		if rawDate := cell(4); rawDate != "" {
			norm, err := NormalizeBookDate(rawDate)
			if err != nil {
				result.FailedCount++
				result.Errors = append(result.Errors, fmt.Sprintf("Row %d: invalid publication date %q: %v", i+1, rawDate, err))
				continue
			}
			book.PublicationDateStr = &norm.Canonical
			book.PublicationDate = &norm.Resolved
			book.DatePrecision = norm.Precision.String()
		}
		if rawPrice := cell(5); rawPrice != "" {
			price, err := strconv.Atoi(rawPrice)
			if err != nil {
				result.FailedCount++
				result.Errors = append(result.Errors, fmt.Sprintf("Row %d: invalid price %q", i+1, rawPrice))
				continue
			}
			book.Price = &price
		}
		book.Authors = parseAuthorList(cell(6))

		if err := tx.Create(&book).Error; err != nil {
			result.FailedCount++
			result.Errors = append(result.Errors, fmt.Sprintf("Row %d: failed to save book: %v", i+1, err))
			continue
		}
		result.SuccessCount++
	}

	if result.FailedCount > 0 && result.SuccessCount == 0 && result.TotalProcessed > 0 {
		tx.Rollback()
		return result, fmt.Errorf("all rows failed")
	}

	if err := tx.Commit().Error; err != nil {
		return nil, err
	}
	return result, nil
}

func bookRows(f *excelize.File) ([][]string, error) {
	sheets := f.GetSheetList()
	// The template carries an instructions sheet first; a bare single-sheet
	// file is accepted too.
	sheetName := sheets[0]
	if len(sheets) > 1 {
		sheetName = sheets[1]
	}
	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to read books sheet: %w", err)
	}
	return rows, nil
}

// parseAuthorList splits "Jane Doe; John Roe:translator" into author rows.
func parseAuthorList(raw string) []models.BookAuthor {
	if raw == "" {
		return nil
	}
	var authors []models.BookAuthor
	for _, part := range strings.Split(raw, ";") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		name, role, hasRole := strings.Cut(part, ":")
		author := models.BookAuthor{AuthorName: strings.TrimSpace(name)}
		if hasRole {
			r := strings.TrimSpace(role)
			if r != "" {
				author.Role = &r
			}
		}
		authors = append(authors, author)
	}
	return authors
}
