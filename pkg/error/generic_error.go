package error

// GenericError is implemented by every error kind in this package so the
// recovery middleware and handlers can map failures to a status code and a
// stable machine-readable code.
type GenericError interface {
	error
	ErrCode() string
	StatusCode() int
}
