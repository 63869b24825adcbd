// Package constants holds shared provider identifiers.
package constants

const (
	// PubSubProviderLocal selects the local HTTP push simulator.
	PubSubProviderLocal = "local"
	// PubSubProviderGoogle selects Google Cloud Pub/Sub.
	PubSubProviderGoogle = "google"

	// AlertProviderDesktop selects the desktop shell bridge.
	AlertProviderDesktop = "desktop"
	// AlertProviderFCM selects Firebase Cloud Messaging push delivery.
	AlertProviderFCM = "fcm"

	// StoreProviderFirestore selects the hosted Firestore document store.
	StoreProviderFirestore = "firestore"
	// StoreProviderMemory selects the in-process store for local development.
	StoreProviderMemory = "memory"
)
