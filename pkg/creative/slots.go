// Package creative maps template image slots to a property's available
// images.
package creative

import (
	"errors"
	"fmt"

	"github.com/homespark/campaigner/pkg/models"
)

// ErrImageIndexOutOfRange is returned when a slot is assigned an image index
// the property does not have.
var ErrImageIndexOutOfRange = errors.New("image index out of range")

// Assignment is the computed slot layout for one property.
type Assignment struct {
	// Selections holds one image selection per renderable slot, keyed by
	// slot id.
	Selections map[string]models.ImageSelection `json:"selections"`

	// MissingImages counts the template slots dropped because the property
	// has fewer images than the template declares. The caller surfaces the
	// deficiency; it is not an error.
	MissingImages int `json:"missing_images"`
}

// AssignSlots seeds an image selection for each renderable slot. Slots beyond
// the property's image count are dropped and counted in MissingImages.
// Existing user selections are preserved untouched, so re-running with
// unchanged inputs yields identical output.
func AssignSlots(slots []models.ImageSlot, imageCount int, existing map[string]models.ImageSelection) Assignment {
	renderable := len(slots)
	if imageCount < renderable {
		renderable = imageCount
	}

	selections := make(map[string]models.ImageSelection, renderable)

	for _, slot := range slots[:renderable] {
		if selection, ok := existing[slot.ID]; ok {
			selections[slot.ID] = selection

			continue
		}

		imageIndex := slot.DefaultImageIndex
		if imageIndex >= imageCount {
			imageIndex = imageCount - 1
		}

		if imageIndex < 0 {
			imageIndex = 0
		}

		selections[slot.ID] = models.ImageSelection{
			ImageIndex: imageIndex,
			Order:      slot.Order,
		}
	}

	return Assignment{
		Selections:    selections,
		MissingImages: len(slots) - renderable,
	}
}

// SelectImage applies a user's image pick for one slot, rejecting indices
// outside the property's image range at the point of assignment.
func SelectImage(selections map[string]models.ImageSelection, slot models.ImageSlot, imageIndex, imageCount int) error {
	if imageIndex < 0 || imageIndex >= imageCount {
		return fmt.Errorf("slot %s: index %d with %d images: %w",
			slot.ID, imageIndex, imageCount, ErrImageIndexOutOfRange)
	}

	selections[slot.ID] = models.ImageSelection{
		ImageIndex: imageIndex,
		Order:      slot.Order,
	}

	return nil
}
