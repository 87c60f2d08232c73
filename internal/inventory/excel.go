package inventory

import (
	"bytes"
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

// TableFromExcel xlsx dosyasının ilk sheet'ini tabloya çevirir.
func TableFromExcel(r io.Reader) (*Table, error) {
	excelFile, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("Excel dosyası okunamadı: %w", err)
	}
	defer excelFile.Close()

	sheetList := excelFile.GetSheetList()
	if len(sheetList) == 0 {
		return nil, fmt.Errorf("Excel dosyasında sheet bulunamadı")
	}

	rows, err := excelFile.GetRows(sheetList[0])
	if err != nil {
		return nil, fmt.Errorf("Sheet okunamadı: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("Excel dosyası boş")
	}

	return &Table{Header: rows[0], Rows: rows[1:]}, nil
}

// TableToExcel tabloyu tek sheet'li bir xlsx dosyasına yazar.
func TableToExcel(t *Table) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)

	header := make([]interface{}, len(t.Header))
	for i, h := range t.Header {
		header[i] = h
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return nil, err
	}

	for i, row := range t.Rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		values := make([]interface{}, len(row))
		for j, v := range row {
			values[j] = v
		}
		if err := f.SetSheetRow(sheet, cell, &values); err != nil {
			return nil, err
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
