package domain

// Identity is a tracker user, as resolved by the identity picker.
// UniqueName is the sign-in address and is what item assignment wants.
type Identity struct {
	ID          string
	DisplayName string
	UniqueName  string
	Mail        string
}
