package switchback

type Key string

const (
	// CurrentUserKey stashes the ID of the user registered in a session.
	CurrentUserKey Key = "CurrentUserKey"

	// IpAddrKey stashes the IP address of an HTTP request being handled by switchback.
	IpAddrKey Key = "IpAddrKey"

	// PartialKey stashes whether an HTTP request asks for partial page content.
	PartialKey Key = "PartialKey"

	// RequestIDKey stashes a unique UUID for each HTTP request.
	RequestIDKey Key = "RequestIDKey"

	// SessionKey stashes the session associated with an HTTP request.
	SessionKey Key = "SessionKey"
)

// String formats the stringified key with additional contextual information
func (k Key) String() string {
	return "switchback context key: " + string(k)
}
