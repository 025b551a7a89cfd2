package utils

// ResponseData is the JSON envelope of the API endpoints. Status is used to
// set the HTTP code and is not serialized.
type ResponseData struct {
	Status  int    `json:"-"`
	Code    string `json:"code"`
	Message string `json:"message"`
	Results any    `json:"results,omitempty"`
}
