package template

import (
	"net/url"

	"github.com/google/uuid"
	"github.com/xy-planning-network/switchback"
)

// Env encloses some string representing an environment.
// It returns "env" as the name of the function for convenient passing to a template.FuncMap
// and returns a function returning the enclosed value when called.
func Env(e switchback.Environment) (string, func() string) {
	return "env", func() string { return e.String() }
}

// Nonce returns "nonce" as the name of the function for convenient passing to a template.FuncMap
// and returns a function generating a uuid.
func Nonce() (string, func() string) {
	return "nonce", func() string { return uuid.NewString() }
}

// RootURL encloses the *url.URL representing the base URL of the web app.
// It returns "rootURL" as the name of the function for convenient passing to a template.FuncMap
// and returns a function returning its *url.URL.String().
// If u is nil, that function will always return an empty string.
func RootURL(u *url.URL) (string, func() string) {
	if u == nil {
		return "rootURL", func() string { return "" }
	}

	s := u.String()
	return "rootURL", func() string { return s }
}

// PartialHeader returns "partialHeader" as the name of the function for convenient passing to a template.FuncMap
// and returns a function returning the header name client navigation marks its requests with.
func PartialHeader() (string, func() string) {
	return "partialHeader", func() string { return switchback.PartialHeader }
}
