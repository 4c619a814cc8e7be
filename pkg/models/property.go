package models

// Property is a listing as seen by the campaign resolver: an ordered set of
// creative images plus up to three financing plans. The listing data source
// owns the full record; only the fields campaigns consume appear here.
type Property struct {
	ID        string   `json:"id"        validate:"required"`
	Address   string   `json:"address"`
	Price     float64  `json:"price"`
	ImageURLs []string `json:"image_urls"`
	Plans     []Plan   `json:"plans"     validate:"max=3,dive"`
}

// AvailablePlans returns the property's plans with unavailable ones filtered
// out, preserving declaration order.
func (p *Property) AvailablePlans() []Plan {
	available := make([]Plan, 0, len(p.Plans))

	for _, plan := range p.Plans {
		if plan.IsAvailable {
			available = append(available, plan)
		}
	}

	return available
}
