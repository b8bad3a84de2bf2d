package services

import (
	"fmt"

	"dentallab/internal/core/domain/model/kernel"
	"dentallab/internal/core/domain/model/marketplace"
	"dentallab/internal/core/domain/model/order"
	"dentallab/internal/pkg/errs"
)

// MarketplaceMatcher is a domain service that governs which labs may see and
// apply to marketplace orders, and composes the mutations of an accepted
// application across the order and application aggregates.
//
// Business rules:
//   - An order is marketplace visible exactly while it awaits auto assignment
//     and has no assigned lab
//   - Only labs with completed onboarding may view or apply
//   - A lab whose application was rejected is permanently excluded from that
//     order; re-application fails before reaching storage
//   - Multiple labs may hold Pending applications concurrently; acceptance
//     of one supersedes the rest
type MarketplaceMatcher struct{}

// NewMarketplaceMatcher creates a new MarketplaceMatcher instance.
func NewMarketplaceMatcher() MarketplaceMatcher {
	return MarketplaceMatcher{}
}

// IsVisibleTo reports whether labID may see the order on the marketplace.
// previous holds the lab's existing applications for this order, if any.
func (m MarketplaceMatcher) IsVisibleTo(
	o *order.Order,
	labID kernel.UUID,
	onboarded bool,
	previous []*marketplace.Application,
) bool {
	if o == nil || o.Validate() != nil || !o.IsMarketplaceVisible() || !onboarded {
		return false
	}
	for _, app := range previous {
		if app.IsOwnedBy(labID) && app.Status() == marketplace.ApplicationRejected {
			return false
		}
	}
	return true
}

// NewApplication validates eligibility and creates a Pending application
// for labID on the order.
//
// Parameters:
//   - o: The order being applied to (must be marketplace visible)
//   - labID: The applying lab
//   - onboarded: Whether the lab's staff account completed onboarding
//   - previous: The lab's existing applications for this order
//
// Returns:
//   - *marketplace.Application: The new Pending application
//   - error: ConflictError(AlreadyRejected) when the lab was rejected on this
//     order before, ConflictError(AlreadyAssigned) when the order left the
//     marketplace, AuthorizationError when onboarding is incomplete,
//     ValidationError for a duplicate live application
func (m MarketplaceMatcher) NewApplication(
	o *order.Order,
	labID kernel.UUID,
	onboarded bool,
	previous []*marketplace.Application,
) (*marketplace.Application, error) {
	if err := o.Validate(); err != nil {
		return nil, err
	}
	if err := labID.Validate(); err != nil {
		return nil, errs.NewValueIsRequiredErrorWithCause("labId", err)
	}

	if !onboarded {
		return nil, errs.NewAuthorizationError(labID.String(), "apply to marketplace order")
	}

	if !o.IsMarketplaceVisible() {
		return nil, errs.NewConflictError(errs.ConflictAlreadyAssigned,
			fmt.Sprintf("order %s is not open for applications", o.ID()))
	}

	for _, app := range previous {
		if !app.IsOwnedBy(labID) {
			continue
		}
		if app.Status() == marketplace.ApplicationRejected {
			return nil, errs.NewConflictError(errs.ConflictAlreadyRejected,
				fmt.Sprintf("lab %s was rejected on order %s", labID, o.ID()))
		}
		return nil, errs.NewValueIsInvalidErrorWithCause("labId",
			fmt.Errorf("lab %s already has an application for order %s", labID, o.ID()))
	}

	return marketplace.NewApplication(kernel.NewUUID(), o.ID(), labID)
}

// Accept applies the acceptance of one application to the domain model:
// the order is assigned to the winning lab, the application turns Accepted
// and every other still Pending application is superseded.
//
// The storage layer must pair this with a conditional assignment write so
// that two concurrent accepts cannot both win; the first conflict surfaces
// here as ConflictError(AlreadyAssigned) when the order is already assigned.
//
// Returns the applications that were superseded.
func (m MarketplaceMatcher) Accept(
	o *order.Order,
	winner *marketplace.Application,
	agreedFee *kernel.Money,
	others []*marketplace.Application,
) ([]*marketplace.Application, error) {
	if err := o.Validate(); err != nil {
		return nil, err
	}
	if err := winner.Validate(); err != nil {
		return nil, err
	}
	if !winner.OrderID().IsEqual(o.ID()) {
		return nil, errs.NewValueIsInvalidErrorWithCause("applicationId",
			fmt.Errorf("application %s does not belong to order %s", winner.ID(), o.ID()))
	}

	if err := o.AssignLab(winner.LabID(), agreedFee); err != nil {
		return nil, err
	}
	if err := winner.Accept(); err != nil {
		return nil, err
	}

	superseded := make([]*marketplace.Application, 0, len(others))
	for _, app := range others {
		if app.ID().IsEqual(winner.ID()) || app.Status() != marketplace.ApplicationPending {
			continue
		}
		if err := app.Supersede(); err != nil {
			return nil, err
		}
		superseded = append(superseded, app)
	}

	return superseded, nil
}
