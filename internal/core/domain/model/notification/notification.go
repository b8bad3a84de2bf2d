// Package notification provides the outbound notification record created
// for order lifecycle events and queued for best effort push delivery.
package notification

import (
	"errors"
	"time"

	"dentallab/internal/core/domain/model/kernel"
	"dentallab/internal/pkg/errs"
)

// ErrNotificationIsNotConstructed is returned when a Notification was not
// created through NewNotification or RestoreNotification.
var ErrNotificationIsNotConstructed = errors.New("Notification must be created via NewNotification or RestoreNotification")

// Notification is a pending or delivered message for one recipient.
// Delivery is best effort: a failed push leaves SentAt nil and the record
// is retried by the delivery job.
type Notification struct {
	id          kernel.UUID
	recipientID kernel.UUID
	orderID     kernel.UUID
	title       string
	body        string
	url         string
	sentAt      *time.Time
	createdAt   time.Time

	isConstructed bool
}

// NewNotification creates an unsent notification for recipientID about
// an order event.
func NewNotification(
	id kernel.UUID,
	recipientID kernel.UUID,
	orderID kernel.UUID,
	title string,
	body string,
	url string,
) (*Notification, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	if err := recipientID.Validate(); err != nil {
		return nil, errs.NewValueIsRequiredErrorWithCause("recipientId", err)
	}
	if err := orderID.Validate(); err != nil {
		return nil, errs.NewValueIsRequiredErrorWithCause("orderId", err)
	}
	if title == "" {
		return nil, errs.NewValueIsRequiredError("title")
	}
	if body == "" {
		return nil, errs.NewValueIsRequiredError("body")
	}

	return &Notification{
		id:            id,
		recipientID:   recipientID,
		orderID:       orderID,
		title:         title,
		body:          body,
		url:           url,
		createdAt:     time.Now().UTC(),
		isConstructed: true,
	}, nil
}

// RestoreNotification reconstitutes a Notification from storage.
func RestoreNotification(
	id kernel.UUID,
	recipientID kernel.UUID,
	orderID kernel.UUID,
	title string,
	body string,
	url string,
	sentAt *time.Time,
	createdAt time.Time,
) (*Notification, error) {
	n, err := NewNotification(id, recipientID, orderID, title, body, url)
	if err != nil {
		return nil, err
	}
	n.sentAt = sentAt
	n.createdAt = createdAt
	return n, nil
}

// Validate checks that the Notification was properly constructed.
func (n *Notification) Validate() error {
	if n == nil || !n.isConstructed {
		return ErrNotificationIsNotConstructed
	}
	return nil
}

// ID returns the notification's unique identifier.
func (n *Notification) ID() kernel.UUID {
	return n.id
}

// RecipientID returns the user the notification is addressed to.
func (n *Notification) RecipientID() kernel.UUID {
	return n.recipientID
}

// OrderID returns the order the notification is about.
func (n *Notification) OrderID() kernel.UUID {
	return n.orderID
}

// Title returns the short notification headline.
func (n *Notification) Title() string {
	return n.title
}

// Body returns the notification text.
func (n *Notification) Body() string {
	return n.body
}

// URL returns the deep link opened when the notification is tapped.
func (n *Notification) URL() string {
	return n.url
}

// SentAt returns when the notification was delivered, nil while pending.
func (n *Notification) SentAt() *time.Time {
	return n.sentAt
}

// CreatedAt returns when the notification was created.
func (n *Notification) CreatedAt() time.Time {
	return n.createdAt
}

// IsSent reports whether the notification has been delivered.
func (n *Notification) IsSent() bool {
	return n.sentAt != nil
}

// MarkSent records successful delivery. Marking twice fails.
func (n *Notification) MarkSent(at time.Time) error {
	if err := n.Validate(); err != nil {
		return err
	}
	if n.sentAt != nil {
		return errs.NewValueIsInvalidError("sentAt")
	}
	sent := at.UTC()
	n.sentAt = &sent
	return nil
}
