package service

// Debouncer delays a call until input has been quiet for a window.
// Each call to Trigger cancels the previously scheduled, not yet fired call.
type Debouncer interface {
	Trigger(fn func())
	Stop()
}

// DebouncerRegistry hands out one Debouncer per key and releases it on Remove.
type DebouncerRegistry interface {
	Get(key string) Debouncer
	Remove(key string)
}
