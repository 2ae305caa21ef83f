package tools

// RegisterAll installs every bundled tool pack into the registry.
func RegisterAll(r *Registry) error {
	for _, register := range []func(*Registry) error{
		registerSketchTools,
		registerFeatureTools,
		registerModifyTools,
		registerPatternTools,
		registerUtilityTools,
		registerFastenerTools,
	} {
		if err := register(r); err != nil {
			return err
		}
	}
	return nil
}
