package inventory

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"depo-backend/internal/models"

	"gorm.io/gorm"
)

// Table: Başlık satırlı düz tablo. İçe/dışa aktarmanın ortak ara biçimi;
// CSV, Excel ve PDF okuyucuların hepsi buna dönüştürür.
type Table struct {
	Header []string   `json:"header"`
	Rows   [][]string `json:"rows"`
}

// Ürün tablosu için başlık eşleştirme: eski sistemin İspanyolca başlıkları ve
// yaygın İngilizce varyantlar kabul edilir.
var headerAliases = map[string][]string{
	"name":      {"name", "product", "product name", "producto", "ürün", "ürün adı"},
	"unit":      {"unit", "unidad", "unidad de medida", "birim"},
	"category":  {"category", "type", "tipo", "tipo de producto", "kategori"},
	"stock":     {"stock", "initial stock", "initial_stock", "stock inicial", "stok"},
	"min_stock": {"min_stock", "min stock", "minimum", "stock minimo", "stock mínimo", "minimum stok"},
}

// requiredProductColumns: içe aktarmada zorunlu kolonlar
var requiredProductColumns = []string{"name", "unit", "stock"}

// ColumnIndex verilen kanonik kolonun tablodaki indeksini döndürür, yoksa -1.
func (t *Table) ColumnIndex(key string) int {
	aliases := headerAliases[key]
	for i, h := range t.Header {
		h = strings.ToLower(strings.TrimSpace(h))
		for _, a := range aliases {
			if h == a {
				return i
			}
		}
	}
	return -1
}

// MissingProductColumns zorunlu ürün kolonlarından tabloda bulunmayanları döndürür.
func (t *Table) MissingProductColumns() []string {
	missing := make([]string, 0)
	for _, col := range requiredProductColumns {
		if t.ColumnIndex(col) == -1 {
			missing = append(missing, col)
		}
	}
	return missing
}

// ReadDelimited CSV verisini tabloya çevirir. İlk satır başlıktır; satırlar
// farklı uzunlukta olabilir.
func ReadDelimited(r io.Reader) (*Table, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("CSV okunamadı: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("CSV dosyası boş")
	}

	return &Table{Header: records[0], Rows: records[1:]}, nil
}

// WriteDelimited tabloyu başlık satırıyla birlikte CSV olarak yazar (UTF-8).
func WriteDelimited(w io.Writer, t *Table) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(t.Header); err != nil {
		return err
	}
	for _, row := range t.Rows {
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// parseNumber hem "1234.56" hem "1.234,56" biçimindeki sayıları kabul eder.
func parseNumber(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	if strings.Contains(s, ",") {
		// Virgül ondalık ayırıcı, noktalar binlik ayırıcı
		s = strings.ReplaceAll(s, ".", "")
		s = strings.ReplaceAll(s, ",", ".")
	}
	return strconv.ParseFloat(s, 64)
}

// ProductsFromTable tabloyu ürün listesine çevirir. Zorunlu kolonlar önceden
// doğrulanmış olmalıdır; sayısı parse edilemeyen veya adı boş satırlar atlanır.
func ProductsFromTable(t *Table) []models.Product {
	nameIdx := t.ColumnIndex("name")
	unitIdx := t.ColumnIndex("unit")
	stockIdx := t.ColumnIndex("stock")
	categoryIdx := t.ColumnIndex("category")
	minStockIdx := t.ColumnIndex("min_stock")

	cell := func(row []string, idx int) string {
		if idx < 0 || idx >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[idx])
	}

	products := make([]models.Product, 0, len(t.Rows))
	for _, row := range t.Rows {
		name := cell(row, nameIdx)
		if name == "" {
			continue
		}

		stock, err := parseNumber(cell(row, stockIdx))
		if err != nil {
			continue
		}
		// min_stock opsiyonel, parse edilemezse 0 kalır
		minStock, _ := parseNumber(cell(row, minStockIdx))

		products = append(products, models.Product{
			Name:     name,
			Unit:     cell(row, unitIdx),
			Category: cell(row, categoryIdx),
			Stock:    stock,
			MinStock: minStock,
		})
	}
	return products
}

func formatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// ProductsTable ürün tablosunu dışa aktarma biçiminde döndürür.
func ProductsTable(db *gorm.DB) (*Table, error) {
	var products []models.Product
	if err := db.Order("id asc").Find(&products).Error; err != nil {
		return nil, err
	}

	t := &Table{Header: []string{"name", "unit", "category", "stock", "min_stock"}}
	for _, p := range products {
		t.Rows = append(t.Rows, []string{p.Name, p.Unit, p.Category, formatNumber(p.Stock), formatNumber(p.MinStock)})
	}
	return t, nil
}

// EntriesTable stok giriş tablosunu dışa aktarma biçiminde döndürür. Ürün adı
// yazım anındaki kopyadan okunur, ürün tablosu sonradan değişse de satır dolu kalır.
func EntriesTable(db *gorm.DB) (*Table, error) {
	var entries []models.StockEntry
	if err := db.Order("id asc").Find(&entries).Error; err != nil {
		return nil, err
	}

	t := &Table{Header: []string{"product", "quantity", "date", "reason"}}
	for _, e := range entries {
		t.Rows = append(t.Rows, []string{e.ProductName, formatNumber(e.Quantity), e.Date.Format("2006-01-02"), e.Reason})
	}
	return t, nil
}

// DispatchesTable sevkiyatları eski sistemin satır bazlı düz şemasıyla döndürür:
// her ürün satırı, sevkiyatın tarih/müşteri/sipariş bilgisini taşır.
func DispatchesTable(db *gorm.DB) (*Table, error) {
	var dispatches []models.Dispatch
	if err := db.Preload("Items").Order("id asc").Find(&dispatches).Error; err != nil {
		return nil, err
	}

	t := &Table{Header: []string{"date", "client", "order_number", "product", "quantity"}}
	for _, d := range dispatches {
		for _, item := range d.Items {
			t.Rows = append(t.Rows, []string{
				d.Date.Format("2006-01-02"),
				d.Client,
				d.OrderNumber,
				item.ProductName,
				formatNumber(item.Quantity),
			})
		}
	}
	return t, nil
}
