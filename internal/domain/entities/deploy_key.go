package entities

// DeployKey is a per-repository deploy key fetched on demand from the
// source platform. ReadOnly is the inverse of the source's "can push"
// flag; keys are never cached beyond one migration pass.
type DeployKey struct {
	ID       int64
	Title    string
	Key      string
	ReadOnly bool
}
