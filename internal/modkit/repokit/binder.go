package repokit

// Binder produces a repo of type T bound to one Queryer.
// Services hold the pool bound repo and rebind onto the transaction
// inside WithTx closures
type Binder[T any] interface {
	Bind(Queryer) T
}
