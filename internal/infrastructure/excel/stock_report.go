// Package excel genera el reporte de existencias en formato XLSX.
package excel

import (
	"bytes"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/katarymba/ais-api/internal/domain/entity"
)

// StockReport construye un libro XLSX con el estado de existencias por
// almacén. Una fila por posición; nombres de producto y almacén resueltos
// contra los catálogos que se pasan.
func StockReport(stock []*entity.StockItem, products []*entity.Product, warehouses []*entity.Warehouse) (*bytes.Buffer, error) {
	productByID := make(map[string]*entity.Product, len(products))
	for _, p := range products {
		productByID[p.ID] = p
	}
	warehouseByID := make(map[string]*entity.Warehouse, len(warehouses))
	for _, w := range warehouses {
		warehouseByID[w.ID] = w
	}

	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Существующие остатки"
	idx, err := f.NewSheet(sheet)
	if err != nil {
		return nil, fmt.Errorf("crear hoja: %w", err)
	}
	f.SetActiveSheet(idx)
	f.DeleteSheet("Sheet1")

	headers := []interface{}{
		"SKU", "Товар", "Склад", "Количество", "Минимум", "Точка заказа",
		"Статус", "Цена", "Сумма", "Синхронизирован",
	}
	if err := f.SetSheetRow(sheet, "A1", &headers); err != nil {
		return nil, fmt.Errorf("escribir encabezado: %w", err)
	}

	for i, item := range stock {
		p := productByID[item.ProductID]
		w := warehouseByID[item.WarehouseID]

		sku, name, price, synced := "", item.ProductID, "", "нет"
		total := ""
		if p != nil {
			sku = p.SKU
			name = p.Name
			price = p.Price.StringFixed(2)
			total = p.Price.Mul(decimal.NewFromInt(item.Quantity)).StringFixed(2)
			if p.IsReconciled {
				synced = "да"
			}
		}
		warehouseName := item.WarehouseID
		if w != nil {
			warehouseName = w.Name
		}

		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, fmt.Errorf("coordenada de fila: %w", err)
		}
		row := []interface{}{
			sku, name, warehouseName, item.Quantity, item.MinimumQuantity,
			item.ReorderLevel, statusLabel(item.Status), price, total, synced,
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return nil, fmt.Errorf("escribir fila %d: %w", i+2, err)
		}
	}

	for col, width := range map[string]float64{"A": 16, "B": 36, "C": 24, "G": 14} {
		_ = f.SetColWidth(sheet, col, col, width)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("serializar libro: %w", err)
	}
	return buf, nil
}

func statusLabel(status string) string {
	switch status {
	case entity.StockStatusInStock:
		return "в наличии"
	case entity.StockStatusLowStock:
		return "заканчивается"
	case entity.StockStatusOutOfStock:
		return "нет в наличии"
	default:
		return status
	}
}
