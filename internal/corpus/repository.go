// Package corpus stores and ranks trained stimulus-response pairs.
package corpus

import (
	"context"
	"errors"

	"github.com/capitalize-ai/response-engine/internal/model"
)

// ErrNotFound is returned when a lookup matches no row.
var ErrNotFound = errors.New("corpus: not found")

// Repository is the persistence collaborator for training entries and the
// interactions that reference them. Entries are never hard-deleted;
// deactivation is via the active flag.
type Repository interface {
	// FindActive returns all active entries in creation order.
	FindActive(ctx context.Context) ([]model.TrainingEntry, error)

	// List returns all entries, optionally filtered by needs-review state.
	List(ctx context.Context, needsReview *bool) ([]model.TrainingEntry, error)

	// FindByID returns one entry.
	FindByID(ctx context.Context, id string) (*model.TrainingEntry, error)

	// FindUnresolved returns the first entry that still needs review, has no
	// response, matches the category, and whose trigger loosely contains the
	// message text. ErrNotFound when there is none.
	FindUnresolved(ctx context.Context, message string, category model.Category) (*model.TrainingEntry, error)

	// Create inserts a new entry.
	Create(ctx context.Context, entry *model.TrainingEntry) error

	// Update rewrites an existing entry.
	Update(ctx context.Context, entry *model.TrainingEntry) error

	// IncrementUsage bumps the usage counter and returns the new count.
	IncrementUsage(ctx context.Context, id string) (int, error)

	// RecordInteraction stores one served reply for later feedback.
	RecordInteraction(ctx context.Context, in *model.Interaction) error

	// FindInteraction returns one interaction.
	FindInteraction(ctx context.Context, id string) (*model.Interaction, error)

	// UpdateInteraction rewrites an interaction (feedback fields).
	UpdateInteraction(ctx context.Context, in *model.Interaction) error

	// CountHelpful counts interactions marked helpful for an entry.
	CountHelpful(ctx context.Context, entryID string) (int, error)

	// Close releases the underlying store.
	Close() error
}
