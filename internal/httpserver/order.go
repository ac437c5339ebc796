package httpserver

import (
	"net/http"

	"github.com/Skotchmaster/bookstore/internal/service"
	"github.com/Skotchmaster/bookstore/internal/transport"
	"github.com/Skotchmaster/bookstore/pkg/logging"
	"github.com/labstack/echo/v4"
)

type OrderHTTP struct {
	Svc *service.OrderService
}

func (h *OrderHTTP) ListOrders(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.list_orders")

	userID, err := GetID(c)
	if err != nil {
		return err
	}

	orders, err := h.Svc.List(ctx, userID)
	if err != nil {
		return fromService(l, "list_orders", err, "Error retrieving orders")
	}
	return c.JSON(http.StatusOK, envelope(map[string]any{"orders": orders}))
}

func (h *OrderHTTP) GetOrder(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.get_order")

	userID, err := GetID(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return badRequest(l, "get_order", "Invalid order id", err)
	}

	order, err := h.Svc.Get(ctx, userID, id)
	if err != nil {
		return fromService(l, "get_order", err, "Error retrieving order")
	}
	return c.JSON(http.StatusOK, envelope(map[string]any{"order": order}))
}

func (h *OrderHTTP) CreateOrder(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.create_order")

	userID, err := GetID(c)
	if err != nil {
		return err
	}

	var req transport.CreateOrderRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(l, "create_order", "Invalid request body", err)
	}

	order, err := h.Svc.Create(ctx, userID, req)
	if err != nil {
		return fromService(l, "create_order", err, "Error creating order")
	}

	l.Info("create_order_success", "order_id", order.ID)
	return c.JSON(http.StatusCreated, envelope(map[string]any{"message": "Order created successfully", "order": order}))
}

func (h *OrderHTTP) UpdateOrderStatus(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.update_order_status")

	id, err := pathID(c, "id")
	if err != nil {
		return badRequest(l, "update_order_status", "Invalid order id", err)
	}

	var req transport.UpdateOrderStatusRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(l, "update_order_status", "Invalid request body", err)
	}

	order, err := h.Svc.UpdateStatus(ctx, id, req.Status)
	if err != nil {
		return fromService(l, "update_order_status", err, "Error updating order status")
	}
	return c.JSON(http.StatusOK, envelope(map[string]any{"message": "Order status updated successfully", "order": order}))
}

func (h *OrderHTTP) CancelOrder(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.cancel_order")

	userID, err := GetID(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return badRequest(l, "cancel_order", "Invalid order id", err)
	}

	order, err := h.Svc.Cancel(ctx, userID, id)
	if err != nil {
		return fromService(l, "cancel_order", err, "Error cancelling order")
	}
	return c.JSON(http.StatusOK, envelope(map[string]any{"message": "Order cancelled successfully", "order": order}))
}
