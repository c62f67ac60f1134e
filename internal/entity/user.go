package entity

// UserLoginData is the opaque identity the auth provider attaches to a
// request; the service never manages accounts or sessions itself.
type UserLoginData struct {
	ID    string
	Email string
	Name  string
}
