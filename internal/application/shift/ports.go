package shift

import (
	"context"
	"time"

	"github.com/AmadeusReus/gestorpyme-api/internal/domain/repository"
)

// TxRunner ejecuta fn dentro de una transacción con repositorios atados a la
// tx. Initialize, Close y el sello del día deben serializarse por día
// contable: la implementación bloquea la fila de dias_contables
// (SELECT FOR UPDATE) a través de los repos entregados.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		days repository.AccountingDayRepository,
		shifts repository.ShiftRepository,
		events repository.CashEventRepository,
	) error) error
}

// Clock entrega la fecha calendario actual en la zona horaria configurada
// del negocio. La identidad del día contable depende de esta fecha, no del
// reloj UTC del proceso.
type Clock interface {
	Today() time.Time
}
