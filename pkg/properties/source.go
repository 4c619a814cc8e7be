// Package properties provides access to the listing data campaigns consume:
// image lists and financing plans per property. The listing service owns the
// full records; this package only reads them.
package properties

import (
	"context"
	"errors"

	"github.com/homespark/campaigner/pkg/models"
)

// ErrPropertyNotFound indicates the listing source has no property with the
// given id.
var ErrPropertyNotFound = errors.New("property not found")

// Source fetches one property's campaign-relevant data.
type Source interface {
	Property(ctx context.Context, id string) (*models.Property, error)
}
