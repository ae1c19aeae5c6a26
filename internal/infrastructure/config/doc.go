// Package config handles loading and validating Miele bridge configuration.
//
// This package manages:
//   - Loading configuration from YAML files
//   - Overriding with environment variables
//   - Validation of required fields
//   - Default value handling
//
// Security Considerations:
//   - The GroupKey is the shared secret for every paired appliance; set it
//     via the GROUP_KEY environment variable rather than the config file
//   - The config file, if used, should have restricted permissions (0600)
//   - The all-zero placeholder credentials are for commissioning tests only
//
// Performance Characteristics:
//   - Configuration is loaded once at startup
//   - No runtime overhead after initial load
//
// Usage:
//
//	cfg, err := config.Load("configs/config.yaml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.API.Port)
package config
