// Package marketplace contains the lab application aggregate for the open
// marketplace, where multiple labs compete for an unassigned work order.
package marketplace

import (
	"errors"
	"fmt"
	"time"

	"dentallab/internal/core/domain/model/kernel"
	"dentallab/internal/pkg/errs"
)

// ErrApplicationIsNotConstructed is returned when an Application was not
// created through NewApplication or RestoreApplication.
var ErrApplicationIsNotConstructed = errors.New("Application must be created via NewApplication or RestoreApplication")

// Application is a lab's request to be assigned a marketplace-listed order.
//
// Invariants:
//   - For a given order, at most one application may ever hold Accepted status;
//     the conditional assignment write in the persistence layer enforces this
//     under concurrency.
//   - Once Rejected, the (order, lab) pair is permanently excluded: the
//     validation layer refuses re-applications before they reach storage.
type Application struct {
	id        kernel.UUID
	orderID   kernel.UUID
	labID     kernel.UUID
	status    ApplicationStatus
	appliedAt time.Time

	isConstructed bool
}

// NewApplication creates a Pending application from labID for orderID.
func NewApplication(id, orderID, labID kernel.UUID) (*Application, error) {
	a := &Application{
		status:        ApplicationPending,
		appliedAt:     time.Now().UTC(),
		isConstructed: true,
	}

	if err := errors.Join(
		a.setID(id),
		a.setOrderID(orderID),
		a.setLabID(labID),
	); err != nil {
		return nil, err
	}

	return a, nil
}

// RestoreApplication reconstructs an application from persistence.
func RestoreApplication(id, orderID, labID kernel.UUID, status ApplicationStatus, appliedAt time.Time) (*Application, error) {
	if err := status.Validate(); err != nil {
		return nil, err
	}

	a := &Application{
		status:        status,
		appliedAt:     appliedAt,
		isConstructed: true,
	}

	if err := errors.Join(
		a.setID(id),
		a.setOrderID(orderID),
		a.setLabID(labID),
	); err != nil {
		return nil, err
	}

	return a, nil
}

// Validate ensures the Application was properly constructed through a factory.
func (a *Application) Validate() error {
	if a == nil || !a.isConstructed {
		return ErrApplicationIsNotConstructed
	}
	return nil
}

// ID returns the application's unique identifier.
func (a *Application) ID() kernel.UUID {
	return a.id
}

// OrderID returns the order applied for.
func (a *Application) OrderID() kernel.UUID {
	return a.orderID
}

// LabID returns the applying lab.
func (a *Application) LabID() kernel.UUID {
	return a.labID
}

// Status returns the current application status.
func (a *Application) Status() ApplicationStatus {
	return a.status
}

// AppliedAt returns when the lab applied.
func (a *Application) AppliedAt() time.Time {
	return a.appliedAt
}

// Accept marks the application as chosen by the doctor.
//
// Only a Pending application can be accepted; anything else means the caller
// lost a race and receives ConflictError(AlreadyAssigned).
func (a *Application) Accept() error {
	if err := a.Validate(); err != nil {
		return err
	}

	if a.status != ApplicationPending {
		return errs.NewConflictError(errs.ConflictAlreadyAssigned,
			fmt.Sprintf("application is %s, not Pending", a.status))
	}

	a.status = ApplicationAccepted
	return nil
}

// Reject marks the application as declined. Rejection is permanent: no
// operation ever moves an application out of Rejected, and the lab may not
// re-apply to this order.
func (a *Application) Reject() error {
	if err := a.Validate(); err != nil {
		return err
	}

	if a.status == ApplicationRejected {
		return errs.NewConflictError(errs.ConflictAlreadyRejected, "application was already rejected")
	}

	if a.status != ApplicationPending {
		return errs.NewValueIsInvalidErrorWithCause("applicationStatus",
			fmt.Errorf("%s application cannot be rejected", a.status))
	}

	a.status = ApplicationRejected
	return nil
}

// Supersede marks a still-pending application as outcompeted after another
// application on the same order was accepted.
func (a *Application) Supersede() error {
	if err := a.Validate(); err != nil {
		return err
	}

	if a.status != ApplicationPending {
		return errs.NewValueIsInvalidErrorWithCause("applicationStatus",
			fmt.Errorf("%s application cannot be superseded", a.status))
	}

	a.status = ApplicationSuperseded
	return nil
}

// IsOwnedBy reports whether the given lab submitted this application.
func (a *Application) IsOwnedBy(labID kernel.UUID) bool {
	return a.labID.IsEqual(labID)
}

func (a *Application) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	a.id = id
	return nil
}

func (a *Application) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("orderId", err)
	}
	a.orderID = orderID
	return nil
}

func (a *Application) setLabID(labID kernel.UUID) error {
	if err := labID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("labId", err)
	}
	a.labID = labID
	return nil
}
