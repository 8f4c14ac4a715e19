package httpapi

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"dorry-backend/internal/domain"
)

func TestBuildBOQWorkbook(t *testing.T) {
	boq := &domain.BOQ{
		ID:        1,
		ProjectID: 1,
		Items: []domain.BOQItem{
			{
				Category: domain.CategoryConcreteFoundation, Name: "Foundation Concrete",
				Description: "Reinforced concrete for building foundation",
				Unit:        "m³", Quantity: 30, UnitPrice: 2200, TotalPrice: 66000,
			},
			{
				Category: domain.CategoryFinishesMaterials, Name: "Wall Paint",
				Description: "Interior wall paint",
				Unit:        "liter", Quantity: 75, UnitPrice: 120, TotalPrice: 9000,
			},
		},
		TotalCost: 75000,
	}
	categories := map[string]float64{
		domain.CategoryConcreteFoundation: 66000,
		domain.CategoryFinishesMaterials:  9000,
	}

	data, err := BuildBOQWorkbook("Villa", boq, categories)
	require.NoError(t, err)
	require.NotEmpty(t, data)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	const sheet = "Bill of Quantities"
	require.Contains(t, f.GetSheetList(), sheet)
	assert.NotContains(t, f.GetSheetList(), "Sheet1")

	title, err := f.GetCellValue(sheet, "A1")
	require.NoError(t, err)
	assert.Equal(t, "Bill of Quantities - Villa", title)

	for col, want := range BOQExportHeader {
		cell, err := excelize.CoordinatesToCellName(col+1, 2)
		require.NoError(t, err)
		got, err := f.GetCellValue(sheet, cell)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}

	// Line items start at row 3.
	name, err := f.GetCellValue(sheet, "B3")
	require.NoError(t, err)
	assert.Equal(t, "Foundation Concrete", name)
	total, err := f.GetCellValue(sheet, "G3")
	require.NoError(t, err)
	assert.Equal(t, "66000", total)

	name, err = f.GetCellValue(sheet, "B4")
	require.NoError(t, err)
	assert.Equal(t, "Wall Paint", name)

	// Blank separator, then subtotals sorted by category name, then
	// the grand total.
	subtotal, err := f.GetCellValue(sheet, "A6")
	require.NoError(t, err)
	assert.Equal(t, domain.CategoryConcreteFoundation+" Subtotal", subtotal)
	subtotal, err = f.GetCellValue(sheet, "A7")
	require.NoError(t, err)
	assert.Equal(t, domain.CategoryFinishesMaterials+" Subtotal", subtotal)

	label, err := f.GetCellValue(sheet, "A8")
	require.NoError(t, err)
	assert.Equal(t, "Total", label)
	grand, err := f.GetCellValue(sheet, "G8")
	require.NoError(t, err)
	assert.Equal(t, "75000", grand)
}

func TestBuildBOQWorkbook_EmptyItems(t *testing.T) {
	data, err := BuildBOQWorkbook("Empty", &domain.BOQ{}, nil)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	label, err := f.GetCellValue("Bill of Quantities", "A4")
	require.NoError(t, err)
	assert.Equal(t, "Total", label)
}
