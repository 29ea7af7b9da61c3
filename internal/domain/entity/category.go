package entity

import "time"

// Category representa una categoría de productos. Dimensión de referencia:
// el motor de sincronización solo la lee para resolver nombres a IDs.
type Category struct {
	ID          string
	Name        string
	Description string
	CreatedAt   time.Time
}
