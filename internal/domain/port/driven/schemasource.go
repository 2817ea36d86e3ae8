package driven

import (
	"context"

	"github.com/ericfisherdev/formpanel/internal/domain/model"
)

// SchemaSource defines the driven port for loading the form schema.
// Implementations return a schema that has passed FormSchema.Validate.
type SchemaSource interface {
	Load(ctx context.Context) (model.FormSchema, error)
}
