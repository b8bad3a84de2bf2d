package cmd

import (
	"log/slog"
	"time"

	httpin "dentallab/internal/adapters/in/http"
	"dentallab/internal/adapters/out/kafka"
	"dentallab/internal/adapters/out/labportal"
	"dentallab/internal/adapters/out/postgres"
	"dentallab/internal/adapters/out/push"
	"dentallab/internal/core/application/usecases/commands"
	"dentallab/internal/core/application/usecases/queries"
	"dentallab/internal/core/ports"
	"dentallab/internal/jobs"

	"gorm.io/gorm"
)

// CompositionRoot wires the application together: adapters into handlers,
// handlers into the HTTP server and the scheduled jobs.
type CompositionRoot struct {
	config     Config
	gormDB     *gorm.DB
	uowFactory *postgres.GormUnitOfWorkFactory
	portal     *labportal.Client
	transport  *push.HTTPTransport
	changeFeed ports.ChangeFeedPublisher
	logger     *slog.Logger
}

// NewCompositionRoot builds a root for the given config and database handle.
func NewCompositionRoot(config Config, gormDB *gorm.DB, logger *slog.Logger) CompositionRoot {
	var changeFeed ports.ChangeFeedPublisher
	if config.KafkaHost != "" {
		changeFeed = kafka.NewChangeFeedPublisher([]string{config.KafkaHost}, config.KafkaChangeFeedTopic)
	}

	return CompositionRoot{
		config:     config,
		gormDB:     gormDB,
		uowFactory: postgres.NewGormUnitOfWorkFactory(gormDB, time.Duration(config.TxTimeoutSec)*time.Second),
		portal:     labportal.NewClient(config.LabPortalURL),
		transport:  push.NewHTTPTransport(config.PushGatewayURL),
		changeFeed: changeFeed,
		logger:     logger,
	}
}

// Close releases long-lived adapter resources.
func (c *CompositionRoot) Close() error {
	if c.changeFeed != nil {
		return c.changeFeed.Close()
	}
	return nil
}

func (c *CompositionRoot) orderUoWFactory() commands.OrderUoWFactory {
	return FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) marketplaceUoWFactory() commands.MarketplaceUoWFactory {
	return FuncMarketplaceUoWFactory(func() commands.MarketplaceUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) billingUoWFactory() commands.BillingUoWFactory {
	return FuncBillingUoWFactory(func() commands.BillingUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	return commands.NewCreateOrderCommandHandler(c.orderUoWFactory(), c.portal)
}

func (c *CompositionRoot) CreateUpdateStatusCommandHandler() commands.UpdateStatusCommandHandler {
	return commands.NewUpdateStatusCommandHandler(c.orderUoWFactory(), c.portal, c.portal)
}

func (c *CompositionRoot) CreateSubmitToMarketplaceCommandHandler() commands.SubmitToMarketplaceCommandHandler {
	return commands.NewSubmitToMarketplaceCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreateApplyToOrderCommandHandler() commands.ApplyToOrderCommandHandler {
	return commands.NewApplyToOrderCommandHandler(c.marketplaceUoWFactory(), c.portal, c.portal)
}

func (c *CompositionRoot) CreateAcceptApplicationCommandHandler() commands.AcceptApplicationCommandHandler {
	return commands.NewAcceptApplicationCommandHandler(c.marketplaceUoWFactory(), c.portal)
}

func (c *CompositionRoot) CreateRejectApplicationCommandHandler() commands.RejectApplicationCommandHandler {
	return commands.NewRejectApplicationCommandHandler(c.marketplaceUoWFactory())
}

func (c *CompositionRoot) CreateConfirmDeliveryCommandHandler() commands.ConfirmDeliveryCommandHandler {
	return commands.NewConfirmDeliveryCommandHandler(c.orderUoWFactory(), c.portal)
}

func (c *CompositionRoot) CreateReportDeliveryIssueCommandHandler() commands.ReportDeliveryIssueCommandHandler {
	return commands.NewReportDeliveryIssueCommandHandler(c.orderUoWFactory(), c.portal)
}

func (c *CompositionRoot) CreateRaiseDisputeCommandHandler() commands.RaiseDisputeCommandHandler {
	return commands.NewRaiseDisputeCommandHandler(c.billingUoWFactory(), c.portal)
}

func (c *CompositionRoot) CreateResolveDisputeCommandHandler() commands.ResolveDisputeCommandHandler {
	return commands.NewResolveDisputeCommandHandler(c.billingUoWFactory())
}

func (c *CompositionRoot) CreateUpsertPricingRuleCommandHandler() commands.UpsertPricingRuleCommandHandler {
	return commands.NewUpsertPricingRuleCommandHandler(c.billingUoWFactory())
}

func (c *CompositionRoot) CreateDeletePricingRuleCommandHandler() commands.DeletePricingRuleCommandHandler {
	return commands.NewDeletePricingRuleCommandHandler(c.billingUoWFactory())
}

func (c *CompositionRoot) CreateAddInvoiceOverrideCommandHandler() commands.AddInvoiceOverrideCommandHandler {
	return commands.NewAddInvoiceOverrideCommandHandler(c.billingUoWFactory())
}

func (c *CompositionRoot) CreateSweepDeliverySlaCommandHandler() commands.SweepDeliverySlaCommandHandler {
	window := time.Duration(c.config.SlaConfirmationWindowHr) * time.Hour
	return commands.NewSweepDeliverySlaCommandHandler(c.orderUoWFactory(), window)
}

func (c *CompositionRoot) CreateDeliverNotificationsCommandHandler() commands.DeliverNotificationsCommandHandler {
	return commands.NewDeliverNotificationsCommandHandler(c.orderUoWFactory(), c.transport)
}

func (c *CompositionRoot) CreateGetMarketplaceOrdersQueryHandler() queries.GetMarketplaceOrdersQueryHandler {
	return queries.NewGetMarketplaceOrdersQueryHandler(c.gormDB, c.portal)
}

func (c *CompositionRoot) CreateGetOrderHistoryQueryHandler() queries.GetOrderHistoryQueryHandler {
	return queries.NewGetOrderHistoryQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetInvoiceQueryHandler() queries.GetInvoiceQueryHandler {
	return queries.NewGetInvoiceQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetPendingApplicationsQueryHandler() queries.GetPendingApplicationsQueryHandler {
	return queries.NewGetPendingApplicationsQueryHandler(c.gormDB)
}

// CreateHTTPServer builds the HTTP server with all handlers wired in.
func (c *CompositionRoot) CreateHTTPServer() *httpin.Server {
	return httpin.NewServer(
		c.CreateCreateOrderCommandHandler(),
		c.CreateUpdateStatusCommandHandler(),
		c.CreateSubmitToMarketplaceCommandHandler(),
		c.CreateApplyToOrderCommandHandler(),
		c.CreateAcceptApplicationCommandHandler(),
		c.CreateRejectApplicationCommandHandler(),
		c.CreateConfirmDeliveryCommandHandler(),
		c.CreateReportDeliveryIssueCommandHandler(),
		c.CreateRaiseDisputeCommandHandler(),
		c.CreateResolveDisputeCommandHandler(),
		c.CreateUpsertPricingRuleCommandHandler(),
		c.CreateDeletePricingRuleCommandHandler(),
		c.CreateAddInvoiceOverrideCommandHandler(),
		c.CreateGetMarketplaceOrdersQueryHandler(),
		c.CreateGetOrderHistoryQueryHandler(),
		c.CreateGetInvoiceQueryHandler(),
		c.CreateGetPendingApplicationsQueryHandler(),
		c.changeFeed,
		c.logger,
	)
}

// CreateJobManager builds the scheduled job manager.
func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(
		c.CreateSweepDeliverySlaCommandHandler(),
		c.CreateDeliverNotificationsCommandHandler(),
		c.logger,
	)
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncMarketplaceUoWFactory func() commands.MarketplaceUoW

func (f FuncMarketplaceUoWFactory) Create() commands.MarketplaceUoW {
	return f()
}

type FuncBillingUoWFactory func() commands.BillingUoW

func (f FuncBillingUoWFactory) Create() commands.BillingUoW {
	return f()
}
