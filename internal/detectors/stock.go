package detectors

import (
	"context"
	"fmt"

	"alerts-backend/internal/models"
)

// StockItem is a product that ran out of inventory.
type StockItem struct {
	ClientID    string
	ClientName  string
	ProductID   string
	ProductName string
	SKU         string
}

// Stock reports products with zero inventory.
type Stock struct {
	items []StockItem
}

var SampleStockItems = []StockItem{
	{
		ClientID:    "CLI002",
		ClientName:  "Comércio XYZ",
		ProductID:   "PROD12345",
		ProductName: "Notebook Dell Inspiron 15",
		SKU:         "NB-DELL-I15",
	},
}

func NewStock(items []StockItem) *Stock {
	return &Stock{items: items}
}

func (d *Stock) Name() string { return "stock" }

func (d *Stock) Analyze(ctx context.Context) ([]models.Candidate, error) {
	var candidates []models.Candidate
	for _, item := range d.items {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		candidates = append(candidates, models.Candidate{
			ClientID:    item.ClientID,
			ClientName:  item.ClientName,
			AlertType:   "stock_zero",
			Severity:    models.SeverityHigh,
			Title:       fmt.Sprintf("Out of Stock - %s", item.ProductName),
			Description: fmt.Sprintf("Product %q (SKU: %s) has no available inventory.", item.ProductName, item.SKU),
			Source:      d.Name(),
			Metadata: map[string]interface{}{
				"product_id":   item.ProductID,
				"product_name": item.ProductName,
				"sku":          item.SKU,
			},
		})
	}
	return candidates, nil
}
