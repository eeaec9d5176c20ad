// Package stream is a small reactive engine for composing asynchronous
// sources into lifecycle-bound pipelines.
//
// A Stream is a blueprint: nothing runs until Subscribe is called. Each
// subscription gets its own context; cancelling the Subscription cancels
// that context, which tears down every source and derived stream the
// subscription started.
//
// Operators never block the subscribing goroutine. Work that must block
// (for example a geocoding lookup) is moved to a background Scheduler with
// SubscribeOn, and delivery is moved to a UI-affine Scheduler with
// ObserveOn.
//
// Invariants:
//
//   - Every operator calls its downstream Sink serially.
//   - No Sink method is called after Error or Complete.
//   - No value reaches an Observer after its Subscription is cancelled.
package stream
