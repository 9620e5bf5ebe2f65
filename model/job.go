package model

// PersistJob asks the persist worker to overwrite the named collection
// with a full snapshot.
type PersistJob struct {
	// Name is the collection name, e.g. "books"
	Name string
	// Payload is the snapshot to serialize
	Payload any
}
