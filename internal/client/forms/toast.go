package forms

// Toast is a transient notification.
type Toast struct {
	Title       string
	Description string
	Destructive bool
}
