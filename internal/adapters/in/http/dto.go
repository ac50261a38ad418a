package http

import (
	"time"

	"fulfillment/internal/core/application/usecases/queries"
)

// ErrorResponse is the JSON body of every non-2xx reply.
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// ItemRequest is one line item of an order creation or replacement.
type ItemRequest struct {
	ProductID string  `json:"productId"`
	Quantity  int     `json:"quantity"`
	Notes     *string `json:"notes,omitempty"`
}

// CreateOrderRequest is the body of POST /orders.
type CreateOrderRequest struct {
	CustomerID    string        `json:"customerId"`
	AddressID     *string       `json:"addressId,omitempty"`
	CreatedBy     string        `json:"createdBy"`
	ScheduledDate *time.Time    `json:"scheduledDate,omitempty"`
	Notes         string        `json:"notes,omitempty"`
	DeliveryNotes string        `json:"deliveryNotes,omitempty"`
	Items         []ItemRequest `json:"items"`
}

// CreateOrderResponse confirms a created order with its public tracking code.
type CreateOrderResponse struct {
	ID           string `json:"id"`
	TrackingCode string `json:"trackingCode"`
}

// UpdateOrderRequest is the body of PATCH /orders/{id}. Omitted fields keep
// their current values; a present items array replaces the whole set.
type UpdateOrderRequest struct {
	Notes         *string       `json:"notes,omitempty"`
	DeliveryNotes *string       `json:"deliveryNotes,omitempty"`
	Items         []ItemRequest `json:"items,omitempty"`
}

// UpdateOrderStatusRequest is the body of POST /orders/{id}/status. The
// status carries the ledger wire name (PENDIENTE, DESPACHADO, ...).
type UpdateOrderStatusRequest struct {
	ActorID     string  `json:"actorId"`
	Status      string  `json:"status"`
	Description *string `json:"description,omitempty"`
}

// CancelOrderRequest is the body of POST /orders/{id}/cancel.
type CancelOrderRequest struct {
	ActorID string `json:"actorId"`
	Reason  string `json:"reason"`
}

// AssignOrderRequest is the body of POST /orders/{id}/assign.
type AssignOrderRequest struct {
	EmployeeID string `json:"employeeId"`
}

// ScheduleOrderRequest is the body of POST /orders/{id}/schedule.
type ScheduleOrderRequest struct {
	ScheduledDate time.Time `json:"scheduledDate"`
}

// CreateEmployeeRequest is the body of POST /employees.
type CreateEmployeeRequest struct {
	Name   string  `json:"name"`
	Role   string  `json:"role"`
	UserID *string `json:"userId,omitempty"`
}

// CreateEmployeeResponse confirms a created employee.
type CreateEmployeeResponse struct {
	ID string `json:"id"`
}

// ItemResponse is one active line item in an order reply.
type ItemResponse struct {
	ID                string  `json:"id"`
	ProductID         string  `json:"productId"`
	Quantity          int     `json:"quantity"`
	DeliveredQuantity *int    `json:"deliveredQuantity,omitempty"`
	Notes             *string `json:"notes,omitempty"`
}

// OrderResponse is the full order representation returned by the read endpoints.
type OrderResponse struct {
	ID            string         `json:"id"`
	TrackingCode  string         `json:"trackingCode"`
	CustomerID    string         `json:"customerId"`
	AddressID     *string        `json:"addressId,omitempty"`
	OrderDate     time.Time      `json:"orderDate"`
	ScheduledDate *time.Time     `json:"scheduledDate,omitempty"`
	DeliveredDate *time.Time     `json:"deliveredDate,omitempty"`
	CreatedBy     string         `json:"createdBy"`
	AssigneeID    *string        `json:"assigneeId,omitempty"`
	Notes         string         `json:"notes,omitempty"`
	DeliveryNotes string         `json:"deliveryNotes,omitempty"`
	Status        string         `json:"status"`
	IsActive      bool           `json:"isActive"`
	Version       int64          `json:"version"`
	Items         []ItemResponse `json:"items"`
}

// HistoryEntryResponse is one status ledger entry.
type HistoryEntryResponse struct {
	ID          string    `json:"id"`
	Status      string    `json:"status"`
	Description *string   `json:"description,omitempty"`
	OccurredAt  time.Time `json:"occurredAt"`
	ActorID     string    `json:"actorId"`
}

// OverdueOrderResponse is one order past its scheduled date.
type OverdueOrderResponse struct {
	ID            string    `json:"id"`
	TrackingCode  string    `json:"trackingCode"`
	Status        string    `json:"status"`
	ScheduledDate time.Time `json:"scheduledDate"`
	AssigneeID    *string   `json:"assigneeId,omitempty"`
}

// orderResponseFromQuery maps a read-side order onto the wire representation.
func orderResponseFromQuery(src queries.OrderResponse) OrderResponse {
	resp := OrderResponse{
		ID:            src.ID.String(),
		TrackingCode:  src.TrackingCode,
		CustomerID:    src.CustomerID.String(),
		OrderDate:     src.OrderDate,
		ScheduledDate: src.ScheduledDate,
		DeliveredDate: src.DeliveredDate,
		CreatedBy:     src.CreatedBy.String(),
		Notes:         src.Notes,
		DeliveryNotes: src.DeliveryNotes,
		Status:        src.Status,
		IsActive:      src.IsActive,
		Version:       src.Version,
		Items:         make([]ItemResponse, 0, len(src.Items)),
	}

	if src.AddressID != nil {
		s := src.AddressID.String()
		resp.AddressID = &s
	}
	if src.AssigneeID != nil {
		s := src.AssigneeID.String()
		resp.AssigneeID = &s
	}

	for _, item := range src.Items {
		resp.Items = append(resp.Items, ItemResponse{
			ID:                item.ID.String(),
			ProductID:         item.ProductID.String(),
			Quantity:          item.Quantity,
			DeliveredQuantity: item.DeliveredQuantity,
			Notes:             item.Notes,
		})
	}

	return resp
}
