// Package audit provides the immutable audit trail entry recorded for
// sensitive billing operations such as dispute handling, pricing rule
// changes and manual invoice overrides.
package audit

import (
	"errors"
	"time"

	"dentallab/internal/core/domain/model/kernel"
	"dentallab/internal/pkg/errs"
)

// ErrEntryIsNotConstructed is returned when an Entry was not created
// through NewEntry or RestoreEntry.
var ErrEntryIsNotConstructed = errors.New("Entry must be created via NewEntry or RestoreEntry")

// Entry is a single immutable audit record. Snapshots hold the JSON encoded
// state of the entity before and after the change; OldValue is nil for
// creations and NewValue is nil for deletions.
type Entry struct {
	id         kernel.UUID
	actorID    kernel.UUID
	action     string
	entityType string
	entityID   kernel.UUID
	oldValue   []byte
	newValue   []byte
	createdAt  time.Time

	isConstructed bool
}

// NewEntry creates an audit entry for a change performed by actorID.
func NewEntry(
	id kernel.UUID,
	actorID kernel.UUID,
	action string,
	entityType string,
	entityID kernel.UUID,
	oldValue []byte,
	newValue []byte,
) (*Entry, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	if err := actorID.Validate(); err != nil {
		return nil, errs.NewValueIsRequiredErrorWithCause("actorId", err)
	}
	if action == "" {
		return nil, errs.NewValueIsRequiredError("action")
	}
	if entityType == "" {
		return nil, errs.NewValueIsRequiredError("entityType")
	}
	if err := entityID.Validate(); err != nil {
		return nil, errs.NewValueIsRequiredErrorWithCause("entityId", err)
	}

	return &Entry{
		id:            id,
		actorID:       actorID,
		action:        action,
		entityType:    entityType,
		entityID:      entityID,
		oldValue:      oldValue,
		newValue:      newValue,
		createdAt:     time.Now().UTC(),
		isConstructed: true,
	}, nil
}

// RestoreEntry reconstitutes an Entry from storage.
func RestoreEntry(
	id kernel.UUID,
	actorID kernel.UUID,
	action string,
	entityType string,
	entityID kernel.UUID,
	oldValue []byte,
	newValue []byte,
	createdAt time.Time,
) (*Entry, error) {
	e, err := NewEntry(id, actorID, action, entityType, entityID, oldValue, newValue)
	if err != nil {
		return nil, err
	}
	e.createdAt = createdAt
	return e, nil
}

// Validate checks that the Entry was properly constructed.
func (e *Entry) Validate() error {
	if e == nil || !e.isConstructed {
		return ErrEntryIsNotConstructed
	}
	return nil
}

// ID returns the entry's unique identifier.
func (e *Entry) ID() kernel.UUID {
	return e.id
}

// ActorID returns the user who performed the change.
func (e *Entry) ActorID() kernel.UUID {
	return e.actorID
}

// Action returns the operation name, for example "RaiseDispute".
func (e *Entry) Action() string {
	return e.action
}

// EntityType returns the kind of entity that was changed.
func (e *Entry) EntityType() string {
	return e.entityType
}

// EntityID returns the identifier of the changed entity.
func (e *Entry) EntityID() kernel.UUID {
	return e.entityID
}

// OldValue returns the JSON snapshot before the change, nil for creations.
func (e *Entry) OldValue() []byte {
	return e.oldValue
}

// NewValue returns the JSON snapshot after the change, nil for deletions.
func (e *Entry) NewValue() []byte {
	return e.newValue
}

// CreatedAt returns when the entry was recorded.
func (e *Entry) CreatedAt() time.Time {
	return e.createdAt
}
