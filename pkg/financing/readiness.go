package financing

// Ready is the single explicit send-readiness check for a campaign's
// financing state: financing disabled, or no financed properties, or every
// financed property has a selected plan with a positive monthly payment.
// Properties with a nil selection are financing-ineligible and do not count
// as financed.
func Ready(financingEnabled bool, selections []Selection) bool {
	if !financingEnabled {
		return true
	}

	for _, selection := range selections {
		if selection.Plan == nil {
			continue
		}

		if selection.Plan.MonthlyPayment <= 0 {
			return false
		}
	}

	return true
}
