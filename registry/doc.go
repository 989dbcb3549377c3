/*
Package registry manages named driver factories for DynaBench.

Driver packages register themselves during init:

	func init() {
	    registry.Register("dynamodb", func(cfg *config.Config) (dynabench.Driver, error) {
	        return New(cfg), nil
	    })
	}

The harness then builds a driver by name:

	drv, err := registry.New("dynamodb", cfg)

The registry is thread-safe and should be populated during initialization.
Registering the same name twice panics, since it indicates two driver
packages competing for one name.
*/
package registry
