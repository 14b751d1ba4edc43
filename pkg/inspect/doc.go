// Package inspect provides a development-time HTTP surface over a
// reactive store: JSON snapshots of the signal graph, store counters,
// Prometheus exposition, and a WebSocket feed of live write events.
//
// The live feed is driven by store hooks, so the hub must be created
// before the store and installed at construction:
//
//	hub := inspect.NewHub()
//	store := reactive.NewStore(reactive.WithHooks(hub.Hooks()))
//	srv := inspect.New(store, hub, nil)
//	err := srv.Run(ctx)
//
// This is a diagnostic surface for development, not a production API: it
// renders signal values with fmt and offers no authentication.
package inspect
