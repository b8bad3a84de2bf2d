// Package http exposes the command and query surface of the platform over an
// echo server. Handlers translate JSON payloads into validated commands,
// execute them and map the business error taxonomy to HTTP status codes.
//
// The caller's identity travels in the X-Actor-Id and X-Actor-Role headers;
// authentication itself happens upstream at the gateway.
package http

import (
	"log/slog"
	"net/http"
	"sync/atomic"
	"time"

	"dentallab/internal/core/application/usecases/commands"
	"dentallab/internal/core/application/usecases/queries"
	"dentallab/internal/core/domain/model/kernel"
	"dentallab/internal/core/domain/model/order"
	"dentallab/internal/core/domain/model/pricing"
	"dentallab/internal/core/ports"

	"github.com/labstack/echo/v4"
)

const (
	actorIDHeader   = "X-Actor-Id"
	actorRoleHeader = "X-Actor-Role"
)

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	// Command handlers
	createOrderHandler         commands.CreateOrderCommandHandler
	updateStatusHandler        commands.UpdateStatusCommandHandler
	submitToMarketplaceHandler commands.SubmitToMarketplaceCommandHandler
	applyToOrderHandler        commands.ApplyToOrderCommandHandler
	acceptApplicationHandler   commands.AcceptApplicationCommandHandler
	rejectApplicationHandler   commands.RejectApplicationCommandHandler
	confirmDeliveryHandler     commands.ConfirmDeliveryCommandHandler
	reportDeliveryIssueHandler commands.ReportDeliveryIssueCommandHandler
	raiseDisputeHandler        commands.RaiseDisputeCommandHandler
	resolveDisputeHandler      commands.ResolveDisputeCommandHandler
	upsertPricingRuleHandler   commands.UpsertPricingRuleCommandHandler
	deletePricingRuleHandler   commands.DeletePricingRuleCommandHandler
	addInvoiceOverrideHandler  commands.AddInvoiceOverrideCommandHandler

	// Query handlers
	getMarketplaceOrdersHandler   queries.GetMarketplaceOrdersQueryHandler
	getOrderHistoryHandler        queries.GetOrderHistoryQueryHandler
	getInvoiceHandler             queries.GetInvoiceQueryHandler
	getPendingApplicationsHandler queries.GetPendingApplicationsQueryHandler

	changeFeed ports.ChangeFeedPublisher
	logger     *slog.Logger
	lastStamp  atomic.Int64
}

// NewServer creates a new HTTP server with the required command and query
// handlers. The change feed publisher is optional; pass nil to disable the
// feed.
func NewServer(
	createOrderHandler commands.CreateOrderCommandHandler,
	updateStatusHandler commands.UpdateStatusCommandHandler,
	submitToMarketplaceHandler commands.SubmitToMarketplaceCommandHandler,
	applyToOrderHandler commands.ApplyToOrderCommandHandler,
	acceptApplicationHandler commands.AcceptApplicationCommandHandler,
	rejectApplicationHandler commands.RejectApplicationCommandHandler,
	confirmDeliveryHandler commands.ConfirmDeliveryCommandHandler,
	reportDeliveryIssueHandler commands.ReportDeliveryIssueCommandHandler,
	raiseDisputeHandler commands.RaiseDisputeCommandHandler,
	resolveDisputeHandler commands.ResolveDisputeCommandHandler,
	upsertPricingRuleHandler commands.UpsertPricingRuleCommandHandler,
	deletePricingRuleHandler commands.DeletePricingRuleCommandHandler,
	addInvoiceOverrideHandler commands.AddInvoiceOverrideCommandHandler,
	getMarketplaceOrdersHandler queries.GetMarketplaceOrdersQueryHandler,
	getOrderHistoryHandler queries.GetOrderHistoryQueryHandler,
	getInvoiceHandler queries.GetInvoiceQueryHandler,
	getPendingApplicationsHandler queries.GetPendingApplicationsQueryHandler,
	changeFeed ports.ChangeFeedPublisher,
	logger *slog.Logger,
) *Server {
	return &Server{
		createOrderHandler:            createOrderHandler,
		updateStatusHandler:           updateStatusHandler,
		submitToMarketplaceHandler:    submitToMarketplaceHandler,
		applyToOrderHandler:           applyToOrderHandler,
		acceptApplicationHandler:      acceptApplicationHandler,
		rejectApplicationHandler:      rejectApplicationHandler,
		confirmDeliveryHandler:        confirmDeliveryHandler,
		reportDeliveryIssueHandler:    reportDeliveryIssueHandler,
		raiseDisputeHandler:           raiseDisputeHandler,
		resolveDisputeHandler:         resolveDisputeHandler,
		upsertPricingRuleHandler:      upsertPricingRuleHandler,
		deletePricingRuleHandler:      deletePricingRuleHandler,
		addInvoiceOverrideHandler:     addInvoiceOverrideHandler,
		getMarketplaceOrdersHandler:   getMarketplaceOrdersHandler,
		getOrderHistoryHandler:        getOrderHistoryHandler,
		getInvoiceHandler:             getInvoiceHandler,
		getPendingApplicationsHandler: getPendingApplicationsHandler,
		changeFeed:                    changeFeed,
		logger:                        logger.With("component", "http_server"),
	}
}

// RegisterRoutes attaches every endpoint to the echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	api := e.Group("/api/v1")

	api.POST("/orders", s.CreateOrder)
	api.POST("/orders/:orderId/status", s.UpdateStatus)
	api.POST("/orders/:orderId/marketplace", s.SubmitToMarketplace)
	api.POST("/orders/:orderId/applications", s.ApplyToOrder)
	api.GET("/orders/:orderId/applications", s.GetPendingApplications)
	api.POST("/orders/:orderId/delivery/confirmation", s.ConfirmDelivery)
	api.POST("/orders/:orderId/delivery/issues", s.ReportDeliveryIssue)
	api.GET("/orders/:orderId/history", s.GetOrderHistory)
	api.GET("/orders/:orderId/invoice", s.GetInvoice)

	api.GET("/marketplace/orders", s.GetMarketplaceOrders)
	api.POST("/applications/:applicationId/acceptance", s.AcceptApplication)
	api.POST("/applications/:applicationId/rejection", s.RejectApplication)

	api.POST("/invoices/:invoiceId/dispute", s.RaiseDispute)
	api.POST("/invoices/:invoiceId/dispute/resolution", s.ResolveDispute)
	api.POST("/invoices/:invoiceId/line-items", s.AddInvoiceOverride)

	api.PUT("/pricing-rules/:ruleId", s.UpsertPricingRule)
	api.DELETE("/pricing-rules/:ruleId", s.DeletePricingRule)
}

// CreateOrder handles POST /api/v1/orders.
func (s *Server) CreateOrder(ctx echo.Context) error {
	var req CreateOrderRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	doctorID, err := kernel.UUIDFromString(req.DoctorID)
	if err != nil {
		return writeError(ctx, err)
	}

	urgency, err := order.UrgencyFromString(req.Urgency)
	if err != nil {
		return writeError(ctx, err)
	}

	var assignedLabID *kernel.UUID
	if req.AssignedLabID != nil {
		labID, labErr := kernel.UUIDFromString(*req.AssignedLabID)
		if labErr != nil {
			return writeError(ctx, labErr)
		}
		assignedLabID = &labID
	}

	orderID := kernel.NewUUID()
	cmd, err := commands.NewCreateOrderCommand(
		orderID,
		doctorID,
		order.RestorationType(req.RestorationType),
		urgency,
		req.TargetBudget,
		assignedLabID,
	)
	if err != nil {
		return writeError(ctx, err)
	}

	if err = s.createOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	s.publishChange(ctx, "Order", orderID, "Created")
	return ctx.JSON(http.StatusCreated, CreateOrderResponse{ID: orderID.String()})
}

// UpdateStatus handles POST /api/v1/orders/:orderId/status.
func (s *Server) UpdateStatus(ctx echo.Context) error {
	orderID, err := pathUUID(ctx, "orderId")
	if err != nil {
		return writeError(ctx, err)
	}

	actorID, actorRole, err := actor(ctx)
	if err != nil {
		return writeError(ctx, err)
	}

	var req UpdateStatusRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	target, err := order.StatusFromString(req.Target)
	if err != nil {
		return writeError(ctx, err)
	}

	cmd, err := commands.NewUpdateStatusCommand(orderID, actorID, actorRole, target, req.Notes)
	if err != nil {
		return writeError(ctx, err)
	}

	if err = s.updateStatusHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	s.publishChange(ctx, "Order", orderID, "StatusChanged")
	return ctx.NoContent(http.StatusNoContent)
}

// SubmitToMarketplace handles POST /api/v1/orders/:orderId/marketplace.
func (s *Server) SubmitToMarketplace(ctx echo.Context) error {
	orderID, err := pathUUID(ctx, "orderId")
	if err != nil {
		return writeError(ctx, err)
	}

	actorID, _, err := actor(ctx)
	if err != nil {
		return writeError(ctx, err)
	}

	cmd, err := commands.NewSubmitToMarketplaceCommand(orderID, actorID)
	if err != nil {
		return writeError(ctx, err)
	}

	if err = s.submitToMarketplaceHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	s.publishChange(ctx, "Order", orderID, "SubmittedToMarketplace")
	return ctx.NoContent(http.StatusNoContent)
}

// ApplyToOrder handles POST /api/v1/orders/:orderId/applications.
func (s *Server) ApplyToOrder(ctx echo.Context) error {
	orderID, err := pathUUID(ctx, "orderId")
	if err != nil {
		return writeError(ctx, err)
	}

	actorID, actorRole, err := actor(ctx)
	if err != nil {
		return writeError(ctx, err)
	}

	var req ApplyToOrderRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	labID, err := kernel.UUIDFromString(req.LabID)
	if err != nil {
		return writeError(ctx, err)
	}

	cmd, err := commands.NewApplyToOrderCommand(orderID, labID, actorID, actorRole)
	if err != nil {
		return writeError(ctx, err)
	}

	if err = s.applyToOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	s.publishChange(ctx, "Order", orderID, "ApplicationReceived")
	return ctx.NoContent(http.StatusCreated)
}

// AcceptApplication handles POST /api/v1/applications/:applicationId/acceptance.
func (s *Server) AcceptApplication(ctx echo.Context) error {
	applicationID, err := pathUUID(ctx, "applicationId")
	if err != nil {
		return writeError(ctx, err)
	}

	actorID, _, err := actor(ctx)
	if err != nil {
		return writeError(ctx, err)
	}

	var req AcceptApplicationRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewAcceptApplicationCommand(applicationID, actorID, req.AgreedFee)
	if err != nil {
		return writeError(ctx, err)
	}

	if err = s.acceptApplicationHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	s.publishChange(ctx, "Application", applicationID, "Accepted")
	return ctx.NoContent(http.StatusNoContent)
}

// RejectApplication handles POST /api/v1/applications/:applicationId/rejection.
func (s *Server) RejectApplication(ctx echo.Context) error {
	applicationID, err := pathUUID(ctx, "applicationId")
	if err != nil {
		return writeError(ctx, err)
	}

	actorID, _, err := actor(ctx)
	if err != nil {
		return writeError(ctx, err)
	}

	cmd, err := commands.NewRejectApplicationCommand(applicationID, actorID)
	if err != nil {
		return writeError(ctx, err)
	}

	if err = s.rejectApplicationHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	s.publishChange(ctx, "Application", applicationID, "Rejected")
	return ctx.NoContent(http.StatusNoContent)
}

// ConfirmDelivery handles POST /api/v1/orders/:orderId/delivery/confirmation.
func (s *Server) ConfirmDelivery(ctx echo.Context) error {
	orderID, err := pathUUID(ctx, "orderId")
	if err != nil {
		return writeError(ctx, err)
	}

	actorID, _, err := actor(ctx)
	if err != nil {
		return writeError(ctx, err)
	}

	cmd, err := commands.NewConfirmDeliveryCommand(orderID, actorID)
	if err != nil {
		return writeError(ctx, err)
	}

	if err = s.confirmDeliveryHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	s.publishChange(ctx, "Order", orderID, "DeliveryConfirmed")
	return ctx.NoContent(http.StatusNoContent)
}

// ReportDeliveryIssue handles POST /api/v1/orders/:orderId/delivery/issues.
func (s *Server) ReportDeliveryIssue(ctx echo.Context) error {
	orderID, err := pathUUID(ctx, "orderId")
	if err != nil {
		return writeError(ctx, err)
	}

	actorID, _, err := actor(ctx)
	if err != nil {
		return writeError(ctx, err)
	}

	var req ReportDeliveryIssueRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewReportDeliveryIssueCommand(orderID, actorID, req.Note)
	if err != nil {
		return writeError(ctx, err)
	}

	if err = s.reportDeliveryIssueHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusAccepted)
}

// RaiseDispute handles POST /api/v1/invoices/:invoiceId/dispute.
func (s *Server) RaiseDispute(ctx echo.Context) error {
	invoiceID, err := pathUUID(ctx, "invoiceId")
	if err != nil {
		return writeError(ctx, err)
	}

	actorID, actorRole, err := actor(ctx)
	if err != nil {
		return writeError(ctx, err)
	}

	var req RaiseDisputeRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewRaiseDisputeCommand(invoiceID, actorID, actorRole, req.Reason)
	if err != nil {
		return writeError(ctx, err)
	}

	if err = s.raiseDisputeHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	s.publishChange(ctx, "Invoice", invoiceID, "DisputeRaised")
	return ctx.NoContent(http.StatusNoContent)
}

// ResolveDispute handles POST /api/v1/invoices/:invoiceId/dispute/resolution.
func (s *Server) ResolveDispute(ctx echo.Context) error {
	invoiceID, err := pathUUID(ctx, "invoiceId")
	if err != nil {
		return writeError(ctx, err)
	}

	actorID, actorRole, err := actor(ctx)
	if err != nil {
		return writeError(ctx, err)
	}

	cmd, err := commands.NewResolveDisputeCommand(invoiceID, actorID, actorRole)
	if err != nil {
		return writeError(ctx, err)
	}

	if err = s.resolveDisputeHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	s.publishChange(ctx, "Invoice", invoiceID, "DisputeResolved")
	return ctx.NoContent(http.StatusNoContent)
}

// AddInvoiceOverride handles POST /api/v1/invoices/:invoiceId/line-items.
func (s *Server) AddInvoiceOverride(ctx echo.Context) error {
	invoiceID, err := pathUUID(ctx, "invoiceId")
	if err != nil {
		return writeError(ctx, err)
	}

	actorID, actorRole, err := actor(ctx)
	if err != nil {
		return writeError(ctx, err)
	}

	var req AddInvoiceOverrideRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewAddInvoiceOverrideCommand(
		invoiceID, actorID, actorRole,
		req.Description, req.Quantity, req.UnitPrice,
	)
	if err != nil {
		return writeError(ctx, err)
	}

	if err = s.addInvoiceOverrideHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	s.publishChange(ctx, "Invoice", invoiceID, "OverrideAdded")
	return ctx.NoContent(http.StatusCreated)
}

// UpsertPricingRule handles PUT /api/v1/pricing-rules/:ruleId.
func (s *Server) UpsertPricingRule(ctx echo.Context) error {
	ruleID, err := pathUUID(ctx, "ruleId")
	if err != nil {
		return writeError(ctx, err)
	}

	actorID, actorRole, err := actor(ctx)
	if err != nil {
		return writeError(ctx, err)
	}

	var req UpsertPricingRuleRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	ruleType, err := pricing.RuleTypeFromString(req.RuleType)
	if err != nil {
		return writeError(ctx, err)
	}

	var restorationType *order.RestorationType
	if req.RestorationType != nil {
		rt := order.RestorationType(*req.RestorationType)
		restorationType = &rt
	}

	var urgency *order.Urgency
	if req.Urgency != nil {
		u, urgencyErr := order.UrgencyFromString(*req.Urgency)
		if urgencyErr != nil {
			return writeError(ctx, urgencyErr)
		}
		urgency = &u
	}

	cmd, err := commands.NewUpsertPricingRuleCommand(
		ruleID, actorID, actorRole,
		ruleType, restorationType, urgency,
		req.Amount, req.IsPercentage, req.Priority, req.IsActive,
	)
	if err != nil {
		return writeError(ctx, err)
	}

	if err = s.upsertPricingRuleHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	s.publishChange(ctx, "PricingRule", ruleID, "Upserted")
	return ctx.NoContent(http.StatusNoContent)
}

// DeletePricingRule handles DELETE /api/v1/pricing-rules/:ruleId.
func (s *Server) DeletePricingRule(ctx echo.Context) error {
	ruleID, err := pathUUID(ctx, "ruleId")
	if err != nil {
		return writeError(ctx, err)
	}

	actorID, actorRole, err := actor(ctx)
	if err != nil {
		return writeError(ctx, err)
	}

	cmd, err := commands.NewDeletePricingRuleCommand(ruleID, actorID, actorRole)
	if err != nil {
		return writeError(ctx, err)
	}

	if err = s.deletePricingRuleHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	s.publishChange(ctx, "PricingRule", ruleID, "Deleted")
	return ctx.NoContent(http.StatusNoContent)
}

// GetMarketplaceOrders handles GET /api/v1/marketplace/orders?labId=...
func (s *Server) GetMarketplaceOrders(ctx echo.Context) error {
	labID, err := kernel.UUIDFromString(ctx.QueryParam("labId"))
	if err != nil {
		return writeError(ctx, err)
	}

	query, err := queries.NewGetMarketplaceOrdersQuery(labID)
	if err != nil {
		return writeError(ctx, err)
	}

	orders, err := s.getMarketplaceOrdersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toMarketplaceOrders(orders))
}

// GetOrderHistory handles GET /api/v1/orders/:orderId/history.
func (s *Server) GetOrderHistory(ctx echo.Context) error {
	orderID, err := pathUUID(ctx, "orderId")
	if err != nil {
		return writeError(ctx, err)
	}

	query, err := queries.NewGetOrderHistoryQuery(orderID)
	if err != nil {
		return writeError(ctx, err)
	}

	entries, err := s.getOrderHistoryHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toHistoryEntries(entries))
}

// GetInvoice handles GET /api/v1/orders/:orderId/invoice.
func (s *Server) GetInvoice(ctx echo.Context) error {
	orderID, err := pathUUID(ctx, "orderId")
	if err != nil {
		return writeError(ctx, err)
	}

	query, err := queries.NewGetInvoiceQuery(orderID)
	if err != nil {
		return writeError(ctx, err)
	}

	invoice, err := s.getInvoiceHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toInvoice(invoice))
}

// GetPendingApplications handles GET /api/v1/orders/:orderId/applications.
func (s *Server) GetPendingApplications(ctx echo.Context) error {
	orderID, err := pathUUID(ctx, "orderId")
	if err != nil {
		return writeError(ctx, err)
	}

	query, err := queries.NewGetPendingApplicationsQuery(orderID)
	if err != nil {
		return writeError(ctx, err)
	}

	applications, err := s.getPendingApplicationsHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toPendingApplications(applications))
}

// publishChange emits a change feed event for a committed mutation. The feed
// is best effort: failures are logged and never surface to the client.
func (s *Server) publishChange(ctx echo.Context, entityType string, entityID kernel.UUID, action string) {
	if s.changeFeed == nil {
		return
	}

	event := ports.ChangeEvent{
		EntityType: entityType,
		EntityID:   entityID,
		Action:     action,
		UpdatedAt:  s.changeStamp(),
	}

	if err := s.changeFeed.Publish(ctx.Request().Context(), event); err != nil {
		s.logger.ErrorContext(ctx.Request().Context(), "Change feed publish failed",
			"entityType", entityType, "entityId", entityID.String(), "error", err)
	}
}

// changeStamp produces the updatedAt value of a change event: wall clock in
// milliseconds, nudged forward when two changes land within the same
// millisecond. Consumers deduplicate redeliveries by (entityId, updatedAt),
// so two distinct changes to one entity must never share a stamp.
func (s *Server) changeStamp() int64 {
	stamp := time.Now().UTC().UnixMilli()
	for {
		last := s.lastStamp.Load()
		if stamp <= last {
			stamp = last + 1
		}
		if s.lastStamp.CompareAndSwap(last, stamp) {
			return stamp
		}
	}
}

func pathUUID(ctx echo.Context, name string) (kernel.UUID, error) {
	return kernel.UUIDFromString(ctx.Param(name))
}

func actor(ctx echo.Context) (kernel.UUID, kernel.Role, error) {
	actorID, err := kernel.UUIDFromString(ctx.Request().Header.Get(actorIDHeader))
	if err != nil {
		return kernel.UUID{}, kernel.RoleUnknown, err
	}

	role, err := kernel.RoleFromString(ctx.Request().Header.Get(actorRoleHeader))
	if err != nil {
		return kernel.UUID{}, kernel.RoleUnknown, err
	}

	return actorID, role, nil
}
