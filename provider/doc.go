// Package provider holds the small generic framework behind swappable
// backends: a Provider names itself and reports availability, and a
// Registry turns a configured backend name into an instance through a
// registered Factory.
//
//	reg := provider.NewRegistry[transcription.Provider]()
//	reg.RegisterFactory("whisper", whisper.Factory())
//	p, err := reg.Create("whisper", map[string]any{"url": "http://localhost:8387"})
package provider
