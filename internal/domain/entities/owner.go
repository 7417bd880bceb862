package entities

// Owner is a candidate destination namespace: either the authenticated
// user itself or one of the organizations it belongs to. The owner list
// is always ordered identity first, then organizations in API order.
type Owner struct {
	ID    int64
	Name  string
	Login string
	Email string
}
