package error

import "net/http"

// ConfigError flags missing credentials or wiring. Always a 500: the
// external caller must never mistake operator misconfiguration for a
// signature failure.
type ConfigError string

func (err ConfigError) Error() string {
	return string(err)
}

func (err ConfigError) ErrCode() string {
	return "CONFIG_ERROR"
}

func (err ConfigError) StatusCode() int {
	return http.StatusInternalServerError
}
