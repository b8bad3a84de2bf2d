package order

// RestorationType names the kind of restoration an order is for, such as
// "Zirconia", "EMax" or "FullDenture". The set is open: lab catalogs differ,
// so the domain only requires a non-empty value. Pricing rules match against
// it by exact equality.
type RestorationType string

// Validate checks that the restoration type is not empty.
func (r RestorationType) Validate() error {
	if r == "" {
		return errRestorationTypeIsRequired
	}
	return nil
}

// String returns the restoration type as a plain string.
func (r RestorationType) String() string {
	return string(r)
}
