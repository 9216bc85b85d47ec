package ports

import (
	"context"

	"github.com/freshdeli/console/internal/domain/delivery"
	"github.com/freshdeli/console/internal/domain/operator"
)

type DeliveryRepository interface {
	GetSettings(ctx context.Context) (*delivery.Settings, error)
	SaveSettings(ctx context.Context, settings *delivery.Settings) error

	ListOrders(ctx context.Context, limit, offset int) ([]delivery.Order, error)
	GetOrderByID(ctx context.Context, id int64) (*delivery.Order, error)
	CreateOrder(ctx context.Context, order *delivery.Order) error
	UpdateOrderStatus(ctx context.Context, id int64, status delivery.Status) error
}

type OperatorRepository interface {
	GetOperator(ctx context.Context, username string) (*operator.Operator, error)
}
