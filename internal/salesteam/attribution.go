package salesteam

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/lumengrid/lumengrid-quote/internal/shared"
)

// ResolveOwner decides which sales-representative identity a new quotation
// counts against.
//
// A creator without elevated privilege always owns their own quotations; any
// requested override is ignored outright rather than rejected, so a tampered
// request cannot discover which user ids exist. Elevated creators may assign
// on behalf of another representative, but only to a user that exists.
func ResolveOwner(ctx context.Context, repo Repository, creator SalesUser, requestedOwnerID *uuid.UUID) (uuid.UUID, error) {
	if !creator.Elevated() || requestedOwnerID == nil {
		return creator.ID, nil
	}
	if *requestedOwnerID == creator.ID {
		return creator.ID, nil
	}
	target, err := repo.Get(ctx, *requestedOwnerID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return uuid.Nil, fmt.Errorf("%w: owner %s does not exist", shared.ErrValidation, *requestedOwnerID)
		}
		return uuid.Nil, fmt.Errorf("resolve owner: %w", err)
	}
	return target.ID, nil
}
