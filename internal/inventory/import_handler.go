package inventory

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"depo-backend/internal/database"
	"depo-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type ImportPreviewResponse struct {
	Header         []string   `json:"header"`
	Rows           [][]string `json:"rows"` // ilk satırlar, önizleme için
	RowCount       int        `json:"row_count"`
	MissingColumns []string   `json:"missing_columns"`
	OK             bool       `json:"ok"`
}

// tableFromRequest yüklenen dosyayı uzantısına göre parse eder. Dosya yoksa
// JSON gövdesindeki "text" alanı denenir (PDF metni frontend'de çıkarılmışsa).
func tableFromRequest(c *fiber.Ctx) (*Table, error) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		// Dosya yok, metin gövdesi dene
		var body struct {
			Text string `json:"text"`
		}
		if err := c.BodyParser(&body); err != nil || strings.TrimSpace(body.Text) == "" {
			return nil, fiber.NewError(fiber.StatusBadRequest, "Dosya yüklenmeli veya 'text' alanı gönderilmelidir")
		}
		t, err := TableFromText(body.Text)
		if err != nil {
			return nil, fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		return t, nil
	}

	file, err := fileHeader.Open()
	if err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Dosya açılamadı: "+err.Error())
	}
	defer file.Close()

	name := strings.ToLower(fileHeader.Filename)
	switch {
	case strings.HasSuffix(name, ".csv"):
		t, err := ReadDelimited(file)
		if err != nil {
			return nil, fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		return t, nil

	case strings.HasSuffix(name, ".xlsx"):
		t, err := TableFromExcel(file)
		if err != nil {
			return nil, fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		return t, nil

	case strings.HasSuffix(name, ".pdf"):
		data, err := io.ReadAll(file)
		if err != nil {
			return nil, fiber.NewError(fiber.StatusInternalServerError, "Dosya okunamadı: "+err.Error())
		}
		text, err := ExtractPDFText(bytes.NewReader(data), int64(len(data)))
		if err != nil {
			return nil, fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		t, err := TableFromText(text)
		if err != nil {
			return nil, fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		return t, nil

	case strings.HasSuffix(name, ".xls"):
		return nil, fiber.NewError(fiber.StatusBadRequest,
			"Eski .xls biçimi desteklenmiyor, dosyayı .xlsx olarak kaydedip tekrar yükleyin")
	}

	return nil, fiber.NewError(fiber.StatusBadRequest, "Sadece .csv, .xlsx veya .pdf dosyaları yüklenebilir")
}

// POST /api/import/products/preview (sadece owner)
// Dosyayı parse eder ve kaydetmeden önizleme döndürür. Eski sistemdeki
// "yükle -> önizle -> onayla" akışının ilk adımı.
func ImportProductsPreviewHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		t, err := tableFromRequest(c)
		if err != nil {
			return err
		}

		previewRows := t.Rows
		if len(previewRows) > 10 {
			previewRows = previewRows[:10]
		}

		missing := t.MissingProductColumns()
		return c.JSON(ImportPreviewResponse{
			Header:         t.Header,
			Rows:           previewRows,
			RowCount:       len(t.Rows),
			MissingColumns: missing,
			OK:             len(missing) == 0,
		})
	}
}

// POST /api/import/products (sadece owner)
// Ürün tablosunu toptan değiştirir (birleştirme yapılmaz). Zorunlu kolonlar
// eksikse hiçbir şey yazılmaz.
func ImportProductsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		t, err := tableFromRequest(c)
		if err != nil {
			return err
		}

		if missing := t.MissingProductColumns(); len(missing) > 0 {
			return fiber.NewError(fiber.StatusUnprocessableEntity,
				fmt.Sprintf("Zorunlu kolonlar eksik: %s", strings.Join(missing, ", ")))
		}

		products := ProductsFromTable(t)

		err = database.DB.Transaction(func(tx *gorm.DB) error {
			if err := tx.Where("1 = 1").Delete(&models.Product{}).Error; err != nil {
				return err
			}
			if len(products) == 0 {
				return nil
			}
			return tx.Create(&products).Error
		})
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Ürünler içe aktarılamadı")
		}

		return c.JSON(fiber.Map{
			"imported": len(products),
		})
	}
}
