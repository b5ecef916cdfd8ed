// Package component defines the lifecycle contract shared by the HTTP
// server, the audio capture backend and the telemetry exporters.
//
// Components are registered with a Registry, started in registration order
// and stopped in reverse. Optional interfaces (Describable, RouteProvider)
// feed the bootstrap startup summary. Lazy defers expensive setup, such
// as opening the host audio library, until first use.
package component
