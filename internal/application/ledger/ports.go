package ledger

import (
	"context"

	"github.com/katarymba/ais-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza que la actualización del StockItem
// y el append del StockMovement de una misma operación sean atómicos: un
// lector nunca observa uno sin el otro.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		stockRepo repository.StockRepository,
		movRepo repository.StockMovementRepository,
	) error) error
}
