package httpserver

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/tealeg/xlsx"
	"go.uber.org/zap"

	"jewelry-storefront/internal/domain"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

var exportHeaders = []string{
	"ID", "Name", "Slug", "SKU", "Category", "Subcategory",
	"Base Price", "Discounted Price", "Stock", "In Stock", "Active", "Tags",
}

// exportProducts writes the filtered admin product list as a spreadsheet.
func (h *adminHandler) exportProducts(c *gin.Context) {
	_, cat, ok := h.open(c, domain.KindCategory, domain.KindSubcategory, domain.KindProduct)
	if !ok {
		return
	}

	file := xlsx.NewFile()
	sheet, err := file.AddSheet("Products")
	if err != nil {
		writeError(c, err)
		return
	}
	header := sheet.AddRow()
	for _, name := range exportHeaders {
		header.AddCell().SetString(name)
	}
	rows := productRows(c, cat)
	for _, p := range rows {
		row := sheet.AddRow()
		row.AddCell().SetString(p.ID)
		row.AddCell().SetString(p.Name)
		row.AddCell().SetString(p.Slug)
		row.AddCell().SetString(p.SKU)
		row.AddCell().SetString(p.CategoryName)
		row.AddCell().SetString(p.SubcategoryName)
		row.AddCell().SetFloat(p.Pricing.BasePrice.InexactFloat64())
		row.AddCell().SetFloat(p.Pricing.DiscountedPrice.InexactFloat64())
		row.AddCell().SetInt(p.Inventory.Stock)
		row.AddCell().SetBool(p.Inventory.InStock)
		row.AddCell().SetBool(p.IsActive)
		row.AddCell().SetString(strings.Join(p.Tags, ";"))
	}

	c.Header("Content-Disposition", "attachment; filename=products.xlsx")
	c.Header("Content-Type", xlsxContentType)
	c.Status(http.StatusOK)
	if err := file.Write(c.Writer); err != nil {
		h.logger.Error("write product export", zap.Error(err))
		return
	}
	h.logger.Info("products exported", zap.Int("rows", len(rows)))
}
