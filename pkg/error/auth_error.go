package error

import "net/http"

// AuthError marks a bad or missing webhook signature. The webhook handler
// renders its own wire shape for these, so this kind only surfaces through
// the recovery middleware.
type AuthError string

func (err AuthError) Error() string {
	return string(err)
}

func (err AuthError) ErrCode() string {
	return "AUTH_ERROR"
}

func (err AuthError) StatusCode() int {
	return http.StatusUnauthorized
}
