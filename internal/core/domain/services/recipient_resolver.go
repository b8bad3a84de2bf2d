package services

import (
	"dentallab/internal/core/domain/model/kernel"
)

// RecipientResolver is a domain service that computes the recipient set for
// an order notification: the ordering doctor plus the assigned lab's staff,
// deduplicated.
//
// Note added events exclude the acting user so people are not notified about
// their own notes. Status change events keep the actor in the set.
type RecipientResolver struct{}

// NewRecipientResolver creates a new RecipientResolver instance.
func NewRecipientResolver() RecipientResolver {
	return RecipientResolver{}
}

// Resolve returns the deduplicated recipient list for an order event.
// The doctor always sorts first, lab staff follow in the given order.
func (r RecipientResolver) Resolve(
	doctorID kernel.UUID,
	labStaffIDs []kernel.UUID,
	actorID kernel.UUID,
	excludeActor bool,
) []kernel.UUID {
	seen := make(map[kernel.UUID]struct{}, len(labStaffIDs)+1)
	recipients := make([]kernel.UUID, 0, len(labStaffIDs)+1)

	add := func(id kernel.UUID) {
		if id.Validate() != nil {
			return
		}
		if excludeActor && id.IsEqual(actorID) {
			return
		}
		if _, ok := seen[id]; ok {
			return
		}
		seen[id] = struct{}{}
		recipients = append(recipients, id)
	}

	add(doctorID)
	for _, id := range labStaffIDs {
		add(id)
	}

	return recipients
}
