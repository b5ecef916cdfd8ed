// Package config loads service and client configuration.
//
// Files are resolved from the usual cmd/<name>/config.yml locations, then
// from the user's config directory (for the voicefeedback CLI), then
// overlaid with a .env file and process environment variables. Viper
// performs the unmarshal, so structs use mapstructure tags.
//
//	var cfg feedbackdConfig
//	err := config.LoadConfig("feedbackd", &cfg)
//
// Environment variables map onto nested keys by splitting on underscores,
// so AUTH_JWT_SECRET fills auth.jwt.secret.
package config
