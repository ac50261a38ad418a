// Package http exposes the fulfillment API over Echo. Handlers translate
// JSON requests into commands and queries and map domain errors onto HTTP
// status codes; no business rules live here.
package http

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/model/employee"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"

	"github.com/labstack/echo/v4"
)

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	// Command handlers
	createOrderHandler       commands.CreateOrderCommandHandler
	updateOrderHandler       commands.UpdateOrderCommandHandler
	updateOrderStatusHandler commands.UpdateOrderStatusCommandHandler
	cancelOrderHandler       commands.CancelOrderCommandHandler
	assignOrderHandler       commands.AssignOrderCommandHandler
	unassignOrderHandler     commands.UnassignOrderCommandHandler
	scheduleOrderHandler     commands.ScheduleOrderCommandHandler
	deactivateOrderHandler   commands.DeactivateOrderCommandHandler
	createEmployeeHandler    commands.CreateEmployeeCommandHandler

	// Query handlers
	getOrderHandler               queries.GetOrderQueryHandler
	getOrderByTrackingCodeHandler queries.GetOrderByTrackingCodeQueryHandler
	getOrderHistoryHandler        queries.GetOrderHistoryQueryHandler
	getOverdueOrdersHandler       queries.GetOverdueOrdersQueryHandler

	logger *slog.Logger
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(
	createOrderHandler commands.CreateOrderCommandHandler,
	updateOrderHandler commands.UpdateOrderCommandHandler,
	updateOrderStatusHandler commands.UpdateOrderStatusCommandHandler,
	cancelOrderHandler commands.CancelOrderCommandHandler,
	assignOrderHandler commands.AssignOrderCommandHandler,
	unassignOrderHandler commands.UnassignOrderCommandHandler,
	scheduleOrderHandler commands.ScheduleOrderCommandHandler,
	deactivateOrderHandler commands.DeactivateOrderCommandHandler,
	createEmployeeHandler commands.CreateEmployeeCommandHandler,
	getOrderHandler queries.GetOrderQueryHandler,
	getOrderByTrackingCodeHandler queries.GetOrderByTrackingCodeQueryHandler,
	getOrderHistoryHandler queries.GetOrderHistoryQueryHandler,
	getOverdueOrdersHandler queries.GetOverdueOrdersQueryHandler,
	logger *slog.Logger,
) *Server {
	return &Server{
		createOrderHandler:            createOrderHandler,
		updateOrderHandler:            updateOrderHandler,
		updateOrderStatusHandler:      updateOrderStatusHandler,
		cancelOrderHandler:            cancelOrderHandler,
		assignOrderHandler:            assignOrderHandler,
		unassignOrderHandler:          unassignOrderHandler,
		scheduleOrderHandler:          scheduleOrderHandler,
		deactivateOrderHandler:        deactivateOrderHandler,
		createEmployeeHandler:         createEmployeeHandler,
		getOrderHandler:               getOrderHandler,
		getOrderByTrackingCodeHandler: getOrderByTrackingCodeHandler,
		getOrderHistoryHandler:        getOrderHistoryHandler,
		getOverdueOrdersHandler:       getOverdueOrdersHandler,
		logger:                        logger.With("component", "http_server"),
	}
}

// RegisterRoutes mounts all API routes on the given Echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	api := e.Group("/api/v1")

	api.POST("/orders", s.CreateOrder)
	api.GET("/orders/overdue", s.GetOverdueOrders)
	api.GET("/orders/:orderID", s.GetOrder)
	api.PATCH("/orders/:orderID", s.UpdateOrder)
	api.DELETE("/orders/:orderID", s.DeactivateOrder)
	api.GET("/orders/:orderID/history", s.GetOrderHistory)
	api.POST("/orders/:orderID/status", s.UpdateOrderStatus)
	api.POST("/orders/:orderID/cancel", s.CancelOrder)
	api.POST("/orders/:orderID/assign", s.AssignOrder)
	api.POST("/orders/:orderID/unassign", s.UnassignOrder)
	api.POST("/orders/:orderID/schedule", s.ScheduleOrder)
	api.GET("/tracking/:code", s.GetOrderByTrackingCode)
	api.POST("/employees", s.CreateEmployee)
}

// CreateOrder handles POST /api/v1/orders - creates a new order.
func (s *Server) CreateOrder(ctx echo.Context) error {
	var req CreateOrderRequest
	if err := ctx.Bind(&req); err != nil {
		return writeBadRequest(ctx, "Invalid request body")
	}

	customerID, err := kernel.UUIDFromString(req.CustomerID)
	if err != nil {
		return writeBadRequest(ctx, "Invalid customerId: "+err.Error())
	}
	createdBy, err := kernel.UUIDFromString(req.CreatedBy)
	if err != nil {
		return writeBadRequest(ctx, "Invalid createdBy: "+err.Error())
	}
	addressID, err := parseOptionalUUID(req.AddressID)
	if err != nil {
		return writeBadRequest(ctx, "Invalid addressId: "+err.Error())
	}

	if req.ScheduledDate != nil && !req.ScheduledDate.After(time.Now()) {
		return writeBadRequest(ctx, "scheduledDate must be in the future")
	}

	items, err := itemSpecsFromRequest(req.Items)
	if err != nil {
		return writeBadRequest(ctx, "Invalid items: "+err.Error())
	}

	cmd, err := commands.NewCreateOrderCommand(
		kernel.NewUUID(),
		customerID,
		addressID,
		createdBy,
		req.ScheduledDate,
		req.Notes,
		req.DeliveryNotes,
		items,
	)
	if err != nil {
		return writeError(ctx, err)
	}

	created, err := s.createOrderHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, CreateOrderResponse{
		ID:           created.ID().String(),
		TrackingCode: created.TrackingCode().String(),
	})
}

// GetOrder handles GET /api/v1/orders/{orderID}.
func (s *Server) GetOrder(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("orderID"))
	if err != nil {
		return writeBadRequest(ctx, "Invalid order ID")
	}

	query, err := queries.NewGetOrderQuery(orderID)
	if err != nil {
		return writeError(ctx, err)
	}

	resp, err := s.getOrderHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, orderResponseFromQuery(resp))
}

// GetOrderByTrackingCode handles GET /api/v1/tracking/{code} - the public
// customer-facing lookup. Malformed or mistyped codes fail with 422 before
// the database is touched.
func (s *Server) GetOrderByTrackingCode(ctx echo.Context) error {
	query, err := queries.NewGetOrderByTrackingCodeQuery(ctx.Param("code"))
	if err != nil {
		s.logTrackingCodeRejection(ctx, err)
		return writeError(ctx, err)
	}

	resp, err := s.getOrderByTrackingCodeHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, orderResponseFromQuery(resp))
}

// GetOrderHistory handles GET /api/v1/orders/{orderID}/history.
func (s *Server) GetOrderHistory(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("orderID"))
	if err != nil {
		return writeBadRequest(ctx, "Invalid order ID")
	}

	query, err := queries.NewGetOrderHistoryQuery(orderID)
	if err != nil {
		return writeError(ctx, err)
	}

	entries, err := s.getOrderHistoryHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	response := make([]HistoryEntryResponse, 0, len(entries))
	for _, entry := range entries {
		response = append(response, HistoryEntryResponse{
			ID:          entry.ID.String(),
			Status:      entry.Status,
			Description: entry.Description,
			OccurredAt:  entry.OccurredAt,
			ActorID:     entry.ActorID.String(),
		})
	}

	return ctx.JSON(http.StatusOK, response)
}

// GetOverdueOrders handles GET /api/v1/orders/overdue.
func (s *Server) GetOverdueOrders(ctx echo.Context) error {
	query, err := queries.NewGetOverdueOrdersQuery(time.Now())
	if err != nil {
		return writeError(ctx, err)
	}

	overdue, err := s.getOverdueOrdersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	response := make([]OverdueOrderResponse, 0, len(overdue))
	for _, o := range overdue {
		item := OverdueOrderResponse{
			ID:            o.ID.String(),
			TrackingCode:  o.TrackingCode,
			Status:        o.Status,
			ScheduledDate: o.ScheduledDate,
		}
		if o.AssigneeID != nil {
			assignee := o.AssigneeID.String()
			item.AssigneeID = &assignee
		}
		response = append(response, item)
	}

	return ctx.JSON(http.StatusOK, response)
}

// UpdateOrder handles PATCH /api/v1/orders/{orderID} - updates notes and/or
// replaces the line item set.
func (s *Server) UpdateOrder(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("orderID"))
	if err != nil {
		return writeBadRequest(ctx, "Invalid order ID")
	}

	var req UpdateOrderRequest
	if err = ctx.Bind(&req); err != nil {
		return writeBadRequest(ctx, "Invalid request body")
	}

	var items []commands.ItemSpec
	if req.Items != nil {
		items, err = itemSpecsFromRequest(req.Items)
		if err != nil {
			return writeBadRequest(ctx, "Invalid items: "+err.Error())
		}
	}

	cmd, err := commands.NewUpdateOrderCommand(orderID, req.Notes, req.DeliveryNotes, items)
	if err != nil {
		return writeError(ctx, err)
	}

	if err = s.updateOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// UpdateOrderStatus handles POST /api/v1/orders/{orderID}/status - records a
// status transition in the ledger.
func (s *Server) UpdateOrderStatus(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("orderID"))
	if err != nil {
		return writeBadRequest(ctx, "Invalid order ID")
	}

	var req UpdateOrderStatusRequest
	if err = ctx.Bind(&req); err != nil {
		return writeBadRequest(ctx, "Invalid request body")
	}

	actorID, err := kernel.UUIDFromString(req.ActorID)
	if err != nil {
		return writeBadRequest(ctx, "Invalid actorId: "+err.Error())
	}

	newStatus, err := order.StatusFromName(req.Status)
	if err != nil {
		return writeError(ctx, err)
	}

	cmd, err := commands.NewUpdateOrderStatusCommand(orderID, actorID, newStatus, req.Description)
	if err != nil {
		return writeError(ctx, err)
	}

	if err = s.updateOrderStatusHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// CancelOrder handles POST /api/v1/orders/{orderID}/cancel.
func (s *Server) CancelOrder(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("orderID"))
	if err != nil {
		return writeBadRequest(ctx, "Invalid order ID")
	}

	var req CancelOrderRequest
	if err = ctx.Bind(&req); err != nil {
		return writeBadRequest(ctx, "Invalid request body")
	}

	actorID, err := kernel.UUIDFromString(req.ActorID)
	if err != nil {
		return writeBadRequest(ctx, "Invalid actorId: "+err.Error())
	}

	cmd, err := commands.NewCancelOrderCommand(orderID, actorID, req.Reason)
	if err != nil {
		return writeError(ctx, err)
	}

	if err = s.cancelOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// AssignOrder handles POST /api/v1/orders/{orderID}/assign.
func (s *Server) AssignOrder(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("orderID"))
	if err != nil {
		return writeBadRequest(ctx, "Invalid order ID")
	}

	var req AssignOrderRequest
	if err = ctx.Bind(&req); err != nil {
		return writeBadRequest(ctx, "Invalid request body")
	}

	employeeID, err := kernel.UUIDFromString(req.EmployeeID)
	if err != nil {
		return writeBadRequest(ctx, "Invalid employeeId: "+err.Error())
	}

	cmd, err := commands.NewAssignOrderCommand(orderID, employeeID)
	if err != nil {
		return writeError(ctx, err)
	}

	if err = s.assignOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// UnassignOrder handles POST /api/v1/orders/{orderID}/unassign.
func (s *Server) UnassignOrder(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("orderID"))
	if err != nil {
		return writeBadRequest(ctx, "Invalid order ID")
	}

	cmd, err := commands.NewUnassignOrderCommand(orderID)
	if err != nil {
		return writeError(ctx, err)
	}

	if err = s.unassignOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// ScheduleOrder handles POST /api/v1/orders/{orderID}/schedule. The
// future-date rule lives here at the edge; the aggregate accepts any date so
// historical data can be restored unchanged.
func (s *Server) ScheduleOrder(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("orderID"))
	if err != nil {
		return writeBadRequest(ctx, "Invalid order ID")
	}

	var req ScheduleOrderRequest
	if err = ctx.Bind(&req); err != nil {
		return writeBadRequest(ctx, "Invalid request body")
	}

	if !req.ScheduledDate.After(time.Now()) {
		return writeBadRequest(ctx, "scheduledDate must be in the future")
	}

	cmd, err := commands.NewScheduleOrderCommand(orderID, req.ScheduledDate)
	if err != nil {
		return writeError(ctx, err)
	}

	if err = s.scheduleOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// DeactivateOrder handles DELETE /api/v1/orders/{orderID} - soft-deletes the order.
func (s *Server) DeactivateOrder(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("orderID"))
	if err != nil {
		return writeBadRequest(ctx, "Invalid order ID")
	}

	cmd, err := commands.NewDeactivateOrderCommand(orderID)
	if err != nil {
		return writeError(ctx, err)
	}

	if err = s.deactivateOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// CreateEmployee handles POST /api/v1/employees.
func (s *Server) CreateEmployee(ctx echo.Context) error {
	var req CreateEmployeeRequest
	if err := ctx.Bind(&req); err != nil {
		return writeBadRequest(ctx, "Invalid request body")
	}

	role, err := employee.RoleFromName(req.Role)
	if err != nil {
		return writeError(ctx, err)
	}

	userID, err := parseOptionalUUID(req.UserID)
	if err != nil {
		return writeBadRequest(ctx, "Invalid userId: "+err.Error())
	}

	employeeID := kernel.NewUUID()
	cmd, err := commands.NewCreateEmployeeCommand(employeeID, req.Name, role, userID)
	if err != nil {
		return writeError(ctx, err)
	}

	if err = s.createEmployeeHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, CreateEmployeeResponse{ID: employeeID.String()})
}

// logTrackingCodeRejection records rejected tracking codes separately from
// ordinary validation noise. A code that parses but fails its checksum points
// at corrupted input or a forged code, and operations want a trace of those.
func (s *Server) logTrackingCodeRejection(ctx echo.Context, err error) {
	reqCtx := ctx.Request().Context()
	switch {
	case errors.Is(err, kernel.ErrTrackingCodeChecksum):
		s.logger.WarnContext(reqCtx, "Tracking code rejected: checksum mismatch", "code", ctx.Param("code"))
	case errors.Is(err, kernel.ErrTrackingCodeFormat):
		s.logger.WarnContext(reqCtx, "Tracking code rejected: malformed", "code", ctx.Param("code"))
	}
}

// itemSpecsFromRequest converts request line items into command item specs.
func itemSpecsFromRequest(items []ItemRequest) ([]commands.ItemSpec, error) {
	specs := make([]commands.ItemSpec, 0, len(items))
	for _, item := range items {
		productID, err := kernel.UUIDFromString(item.ProductID)
		if err != nil {
			return nil, err
		}
		specs = append(specs, commands.ItemSpec{
			ProductID: productID,
			Quantity:  item.Quantity,
			Notes:     item.Notes,
		})
	}
	return specs, nil
}

// parseOptionalUUID parses a UUID string that may be absent.
func parseOptionalUUID(s *string) (*kernel.UUID, error) {
	if s == nil {
		return nil, nil
	}
	id, err := kernel.UUIDFromString(*s)
	if err != nil {
		return nil, err
	}
	return &id, nil
}
