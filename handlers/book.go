package handlers

import (
	"errors"
	"net/http"

	"livre_manager_go/db"
	"livre_manager_go/models"
	"livre_manager_go/services"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

// BookAuthorRequest is one author entry of a book payload
type BookAuthorRequest struct {
	AuthorName string  `json:"author_name"`
	Role       *string `json:"role"`
}

// BookRequest is the create/update payload for a book
type BookRequest struct {
	Title              string              `json:"title"`
	Series             *string             `json:"series"`
	ISBN               *string             `json:"isbn"`
	JAN                *string             `json:"jan"`
	ASIN               *string             `json:"asin"`
	Publisher          *string             `json:"publisher"`
	PublicationDateStr *string             `json:"publication_date_str"`
	Price              *int                `json:"price"`
	UserMemo           string              `json:"user_memo"`
	HasItem            bool                `json:"has_item"`
	Authors            []BookAuthorRequest `json:"authors"`
}

// GetBooksHandler returns all books, newest first
func GetBooksHandler(c echo.Context) error {
	var books []models.Book
	query := db.DB.Preload("Authors").Order("created_at DESC")

	if search := c.QueryParam("search"); search != "" {
		likeSearch := "%" + search + "%"
		query = query.Where("title LIKE ? OR isbn LIKE ?", likeSearch, likeSearch)
	}
	if c.QueryParam("owned") == "true" {
		query = query.Where("has_item = ?", true)
	}

	if err := query.Find(&books).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Error fetching books"})
	}
	return c.JSON(http.StatusOK, books)
}

// GetBookHandler returns a single book with its authors
func GetBookHandler(c echo.Context) error {
	id := c.Param("id")

	var book models.Book
	if err := db.DB.Preload("Authors").First(&book, "id = ?", id).Error; err != nil {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "Book not found"})
	}
	return c.JSON(http.StatusOK, book)
}

// CreateBookHandler creates a book with its authors
func CreateBookHandler(c echo.Context) error {
	var req BookRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
	}

	book, err := bookFromRequest(c, &req)
	if err != nil {
		if errors.Is(err, errHandled) {
			return nil
		}
		return err
	}

	if err := db.DB.Create(book).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Error creating book"})
	}
	return c.JSON(http.StatusCreated, book)
}

// UpdateBookHandler replaces a book and its authors
func UpdateBookHandler(c echo.Context) error {
	id := c.Param("id")

	var existing models.Book
	if err := db.DB.First(&existing, "id = ?", id).Error; err != nil {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "Book not found"})
	}

	var req BookRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
	}

	updated, err := bookFromRequest(c, &req)
	if err != nil {
		if errors.Is(err, errHandled) {
			return nil
		}
		return err
	}
	updated.ID = existing.ID
	updated.CreatedAt = existing.CreatedAt

	err = db.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("book_id = ?", existing.ID).Delete(&models.BookAuthor{}).Error; err != nil {
			return err
		}
		return tx.Save(updated).Error
	})
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Error updating book"})
	}
	return c.JSON(http.StatusOK, updated)
}

// DeleteBookHandler soft-deletes a book
func DeleteBookHandler(c echo.Context) error {
	id := c.Param("id")

	var book models.Book
	if err := db.DB.First(&book, "id = ?", id).Error; err != nil {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "Book not found"})
	}

	if err := db.DB.Select("Authors").Delete(&book).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Error deleting book"})
	}
	return c.NoContent(http.StatusNoContent)
}

// BookImportTemplateHandler serves the Excel template for bulk import
func BookImportTemplateHandler(c echo.Context) error {
	buf, err := services.GenerateBookTemplate()
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Error generating template"})
	}
	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="book_import_template.xlsx"`)
	return c.Blob(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", buf.Bytes())
}

// ImportBooksHandler imports books from an uploaded spreadsheet
func ImportBooksHandler(c echo.Context) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Missing file upload"})
	}

	file, err := fileHeader.Open()
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Error opening uploaded file"})
	}
	defer file.Close()

	result, err := services.BulkCreateBooksFromExcel(db.DB, file, -1)
	if err != nil {
		if result != nil {
			return c.JSON(http.StatusUnprocessableEntity, result)
		}
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, result)
}

// bookFromRequest validates the payload and builds the model. On a validation
// failure the JSON response is rendered here and errHandled is returned.
func bookFromRequest(c echo.Context, req *BookRequest) (*models.Book, error) {
	if req.Title == "" {
		return nil, badRequest(c, "Title is required")
	}

	book := &models.Book{
		Title:     req.Title,
		Series:    req.Series,
		JAN:       req.JAN,
		ASIN:      req.ASIN,
		Publisher: req.Publisher,
		Price:     req.Price,
		UserMemo:  services.SanitizeText(req.UserMemo),
		HasItem:   req.HasItem,
	}

	if req.ISBN != nil && *req.ISBN != "" {
		cleaned, err := services.ValidateISBN(*req.ISBN)
		if err != nil {
			return nil, fieldError(c, "isbn", err)
		}
		book.ISBN = &cleaned
	}

	if req.PublicationDateStr != nil && *req.PublicationDateStr != "" {
		norm, err := services.NormalizeBookDate(*req.PublicationDateStr)
		if err != nil {
			return nil, fieldError(c, "publication_date_str", err)
		}
		book.PublicationDateStr = &norm.Canonical
		book.PublicationDate = &norm.Resolved
		book.DatePrecision = norm.Precision.String()
	}

	for _, author := range req.Authors {
		if author.AuthorName == "" {
			return nil, badRequest(c, "Author name is required")
		}
		book.Authors = append(book.Authors, models.BookAuthor{
			AuthorName: author.AuthorName,
			Role:       author.Role,
		})
	}

	return book, nil
}
