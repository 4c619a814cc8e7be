package models

// ImageSlot is a named position in a creative template reserved for one
// property image.
type ImageSlot struct {
	ID                string `json:"id"                  validate:"required"`
	Name              string `json:"name"                validate:"required"`
	Order             int    `json:"order"`
	DefaultImageIndex int    `json:"default_image_index" validate:"min=0"`
}

// CreativeTemplate declares the image slots an email template renders and
// which campaign type it supports.
type CreativeTemplate struct {
	ID            string      `json:"id"             validate:"required"`
	Name          string      `json:"name"           validate:"required"`
	MultiProperty bool        `json:"multi_property"`
	Slots         []ImageSlot `json:"slots"          validate:"dive"`
}

// SupportsCampaignType reports whether the template may be used for the
// given campaign type. Multi-property templates are not usable for
// single-property campaigns and vice versa.
func (t *CreativeTemplate) SupportsCampaignType(campaignType CampaignType) bool {
	if campaignType == CampaignMultiProperty {
		return t.MultiProperty
	}

	return !t.MultiProperty
}
