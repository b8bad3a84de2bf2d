package order

import (
	"errors"
	"fmt"
	"time"

	"dentallab/internal/core/domain/model/kernel"
	"dentallab/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created
	// through the NewOrder or RestoreOrder factory methods.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder")

	errRestorationTypeIsRequired = errs.NewValueIsRequiredError("restorationType")
)

// Order represents a dental-lab work order. It is the aggregate root that
// manages the order lifecycle from creation through marketplace assignment,
// production, delivery and delivery confirmation.
//
// Order maintains these invariants:
//   - Must have a valid unique identifier and owning doctor
//   - Restoration type must be non-empty, urgency must be a valid level
//   - Status transitions follow the production state machine (see Status)
//   - A non-nil assigned lab implies auto-assignment is no longer pending
//   - The order is marketplace-visible iff it awaits auto-assignment and no
//     lab is assigned
//
// Every accepted transition produces a HistoryEntry and refreshes
// statusUpdatedAt, so callers always have an audit trail to persist.
type Order struct {
	id     kernel.UUID
	status Status

	restorationType RestorationType
	urgency         Urgency

	doctorID      kernel.UUID
	assignedLabID *kernel.UUID

	autoAssignPending           bool
	deliveryPendingConfirmation bool

	targetBudget *kernel.Money
	agreedFee    *kernel.Money

	createdAt       time.Time
	statusUpdatedAt time.Time

	actualDeliveryDate  *time.Time
	deliveryConfirmedAt *time.Time
	deliveryConfirmedBy *kernel.UUID

	isConstructed bool
}

// NewOrder creates a new work order in Pending status.
//
// If assignedLabID is non-nil, the order is directly assigned to that lab at
// creation and never enters the marketplace; otherwise the doctor may submit
// it to the marketplace later via SubmitToMarketplace.
//
// targetBudget is optional and only informs labs applying in the marketplace.
func NewOrder(
	id kernel.UUID,
	doctorID kernel.UUID,
	restorationType RestorationType,
	urgency Urgency,
	targetBudget *kernel.Money,
	assignedLabID *kernel.UUID,
) (*Order, error) {
	now := time.Now().UTC()

	o := &Order{
		status:          Pending,
		createdAt:       now,
		statusUpdatedAt: now,
		isConstructed:   true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setDoctorID(doctorID),
		o.setRestorationType(restorationType),
		o.setUrgency(urgency),
		o.setTargetBudget(targetBudget),
		o.setAssignedLabID(assignedLabID),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// RestoreOrder reconstructs an order from persistence without re-running
// creation-time defaults. All invariants are still validated.
func RestoreOrder(
	id kernel.UUID,
	status Status,
	doctorID kernel.UUID,
	restorationType RestorationType,
	urgency Urgency,
	assignedLabID *kernel.UUID,
	autoAssignPending bool,
	deliveryPendingConfirmation bool,
	targetBudget *kernel.Money,
	agreedFee *kernel.Money,
	createdAt time.Time,
	statusUpdatedAt time.Time,
	actualDeliveryDate *time.Time,
	deliveryConfirmedAt *time.Time,
	deliveryConfirmedBy *kernel.UUID,
) (*Order, error) {
	o := &Order{
		autoAssignPending:           autoAssignPending,
		deliveryPendingConfirmation: deliveryPendingConfirmation,
		agreedFee:                   agreedFee,
		createdAt:                   createdAt,
		statusUpdatedAt:             statusUpdatedAt,
		actualDeliveryDate:          actualDeliveryDate,
		deliveryConfirmedAt:         deliveryConfirmedAt,
		deliveryConfirmedBy:         deliveryConfirmedBy,
		isConstructed:               true,
	}

	if err := status.Validate(); err != nil {
		return nil, err
	}
	o.status = status

	if err := errors.Join(
		o.setID(id),
		o.setDoctorID(doctorID),
		o.setRestorationType(restorationType),
		o.setUrgency(urgency),
		o.setTargetBudget(targetBudget),
		o.setAssignedLabID(assignedLabID),
	); err != nil {
		return nil, err
	}

	if o.assignedLabID != nil && o.autoAssignPending {
		return nil, errs.NewValueIsInvalidErrorWithCause(
			"autoAssignPending",
			fmt.Errorf("order %s has an assigned lab but still awaits auto-assignment", id),
		)
	}

	return o, nil
}

// Validate ensures the Order instance was properly constructed through a factory.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// IsEqual compares two orders by their unique identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// Status returns the current lifecycle status.
func (o *Order) Status() Status {
	return o.status
}

// RestorationType returns the kind of restoration ordered.
func (o *Order) RestorationType() RestorationType {
	return o.restorationType
}

// Urgency returns the production priority.
func (o *Order) Urgency() Urgency {
	return o.urgency
}

// DoctorID returns the owning doctor.
func (o *Order) DoctorID() kernel.UUID {
	return o.doctorID
}

// AssignedLabID returns the assigned lab, or nil when unassigned.
func (o *Order) AssignedLabID() *kernel.UUID {
	return o.assignedLabID
}

// AutoAssignPending reports whether the order awaits marketplace assignment.
func (o *Order) AutoAssignPending() bool {
	return o.autoAssignPending
}

// DeliveryPendingConfirmation reports whether a delivered order still awaits
// the doctor's confirmation.
func (o *Order) DeliveryPendingConfirmation() bool {
	return o.deliveryPendingConfirmation
}

// TargetBudget returns the doctor's optional budget hint.
func (o *Order) TargetBudget() *kernel.Money {
	return o.targetBudget
}

// AgreedFee returns the fee agreed at assignment, or nil.
func (o *Order) AgreedFee() *kernel.Money {
	return o.agreedFee
}

// CreatedAt returns the order creation time.
func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

// StatusUpdatedAt returns the time of the last accepted transition.
func (o *Order) StatusUpdatedAt() time.Time {
	return o.statusUpdatedAt
}

// ActualDeliveryDate returns the confirmed delivery date, or nil.
func (o *Order) ActualDeliveryDate() *time.Time {
	return o.actualDeliveryDate
}

// DeliveryConfirmedAt returns when the doctor confirmed delivery, or nil.
func (o *Order) DeliveryConfirmedAt() *time.Time {
	return o.deliveryConfirmedAt
}

// DeliveryConfirmedBy returns the confirming actor, or nil.
func (o *Order) DeliveryConfirmedBy() *kernel.UUID {
	return o.deliveryConfirmedBy
}

// IsMarketplaceVisible reports whether the order is listed in the open
// marketplace. This is exactly: auto-assignment pending and no lab assigned.
func (o *Order) IsMarketplaceVisible() bool {
	return o.autoAssignPending && o.assignedLabID == nil
}

// SubmitToMarketplace exposes the order to competing lab applications.
//
// The order must still be Pending and unassigned. Submitting an already
// assigned order fails with ConflictError(AlreadyAssigned).
func (o *Order) SubmitToMarketplace() error {
	if err := o.Validate(); err != nil {
		return err
	}

	if o.assignedLabID != nil {
		return errs.NewConflictError(errs.ConflictAlreadyAssigned, "order already has an assigned lab")
	}

	if o.status != Pending {
		return errs.NewValueIsInvalidErrorWithCause(
			"status",
			fmt.Errorf("%s order cannot enter the marketplace", o.status),
		)
	}

	o.autoAssignPending = true
	return nil
}

// AssignLab assigns the order to a lab, closing the marketplace window.
//
// Assignment requires the order to be Pending and unassigned; a second
// assignment attempt fails with ConflictError(AlreadyAssigned). The agreed fee
// is optional and typically carried over from the accepted application.
//
// The persistence layer must pair this with a conditional write (assign only
// where no lab is set) so that two concurrent acceptances cannot both win.
func (o *Order) AssignLab(labID kernel.UUID, agreedFee *kernel.Money) error {
	if err := o.Validate(); err != nil {
		return err
	}

	if err := labID.Validate(); err != nil {
		return err
	}

	if o.assignedLabID != nil {
		return errs.NewConflictError(errs.ConflictAlreadyAssigned, "order already has an assigned lab")
	}

	if o.status != Pending {
		return errs.NewConflictError(errs.ConflictAlreadyAssigned,
			fmt.Sprintf("order already advanced to %s", o.status))
	}

	if agreedFee != nil {
		if err := agreedFee.Validate(); err != nil {
			return err
		}
	}

	o.assignedLabID = &labID
	o.agreedFee = agreedFee
	o.autoAssignPending = false
	return nil
}

// ChangeStatus applies a lifecycle transition requested by changedBy.
//
// qcComplete carries the external QC checklist signal; it is only consulted
// for the ReadyForQC -> ReadyForDelivery edge, which fails with
// GuardViolation(QCIncomplete) while checklist items remain open.
//
// Transitioning to Delivered starts the delivery confirmation sub-protocol by
// setting the pending-confirmation flag.
//
// On success the accepted transition is returned as a HistoryEntry for the
// caller to persist alongside the order.
func (o *Order) ChangeStatus(target Status, changedBy kernel.UUID, qcComplete bool, notes *string) (HistoryEntry, error) {
	if err := o.Validate(); err != nil {
		return HistoryEntry{}, err
	}

	if err := changedBy.Validate(); err != nil {
		return HistoryEntry{}, err
	}

	if err := o.status.CanTransitionTo(target); err != nil {
		return HistoryEntry{}, err
	}

	if o.status == ReadyForQC && target == ReadyForDelivery && !qcComplete {
		return HistoryEntry{}, errs.NewGuardViolationError(
			errs.GuardQCIncomplete,
			"QC checklist items are not all complete",
		)
	}

	old := o.status
	now := time.Now().UTC()

	o.status = target
	o.statusUpdatedAt = now

	if target == Delivered {
		o.deliveryPendingConfirmation = true
	}

	return newHistoryEntry(o.id, old, target, changedBy, now, notes), nil
}

// ConfirmDelivery records the doctor's confirmation of a delivered order.
//
// The order must be Delivered with confirmation still pending. Confirmation
// clears the pending flag and stamps the confirmation metadata and the actual
// delivery date.
func (o *Order) ConfirmDelivery(confirmedBy kernel.UUID) error {
	if err := o.Validate(); err != nil {
		return err
	}

	if err := confirmedBy.Validate(); err != nil {
		return err
	}

	if o.status != Delivered || !o.deliveryPendingConfirmation {
		return errs.NewValueIsInvalidErrorWithCause(
			"status",
			fmt.Errorf("order in %s with pending confirmation %t cannot be confirmed", o.status, o.deliveryPendingConfirmation),
		)
	}

	now := time.Now().UTC()
	o.deliveryPendingConfirmation = false
	o.deliveryConfirmedAt = &now
	o.deliveryConfirmedBy = &confirmedBy
	o.actualDeliveryDate = &now
	return nil
}

// CanReportDeliveryIssue validates that a delivery issue report is applicable.
//
// Reporting an issue deliberately performs no state transition: the order
// stays Delivered with confirmation pending until the doctor confirms. The
// note and lab notification are handled by the caller.
func (o *Order) CanReportDeliveryIssue() error {
	if err := o.Validate(); err != nil {
		return err
	}

	if o.status != Delivered || !o.deliveryPendingConfirmation {
		return errs.NewValueIsInvalidErrorWithCause(
			"status",
			fmt.Errorf("order in %s with pending confirmation %t has no delivery to dispute", o.status, o.deliveryPendingConfirmation),
		)
	}

	return nil
}

// IsOwnedBy reports whether the given doctor owns this order.
func (o *Order) IsOwnedBy(doctorID kernel.UUID) bool {
	return o.doctorID.IsEqual(doctorID)
}

// IsAssignedTo reports whether the given lab is assigned to this order.
func (o *Order) IsAssignedTo(labID kernel.UUID) bool {
	return o.assignedLabID != nil && o.assignedLabID.IsEqual(labID)
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setDoctorID(doctorID kernel.UUID) error {
	if err := doctorID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("doctorId", err)
	}
	o.doctorID = doctorID
	return nil
}

func (o *Order) setRestorationType(restorationType RestorationType) error {
	if err := restorationType.Validate(); err != nil {
		return err
	}
	o.restorationType = restorationType
	return nil
}

func (o *Order) setUrgency(urgency Urgency) error {
	if err := urgency.Validate(); err != nil {
		return err
	}
	o.urgency = urgency
	return nil
}

func (o *Order) setTargetBudget(budget *kernel.Money) error {
	if budget == nil {
		return nil
	}
	if err := budget.Validate(); err != nil {
		return err
	}
	o.targetBudget = budget
	return nil
}

func (o *Order) setAssignedLabID(labID *kernel.UUID) error {
	if labID == nil {
		return nil
	}
	if err := labID.Validate(); err != nil {
		return err
	}
	o.assignedLabID = labID
	return nil
}
