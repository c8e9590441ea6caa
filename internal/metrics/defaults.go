package metrics

// Defaults returns the standard metric set for a run within the given
// bounds.
func Defaults(width, height, margin float64) []Metric {
	return []Metric{
		NewStrain(),
		NewMaxStrain(),
		NewKinetic(),
		NewOutOfBounds(width, height, margin),
	}
}
