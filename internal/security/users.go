package security

// In-memory user registry (replace with the hosted auth provider's
// verification call later). The token endpoint checks credentials here
// and mints a session JWT with the user id as subject.
type User struct {
	ID      string
	Secret  string
	Enabled bool
}

var Users = map[string]User{
	"demo-user":  {ID: "demo-user", Secret: "demo-secret", Enabled: true},
	"test-user":  {ID: "test-user", Secret: "test-secret", Enabled: true},
	"qa-shopper": {ID: "qa-shopper", Secret: "qa-secret", Enabled: false},
}
