package validations

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/nextplot/nextplot-gw/core/config"
	pkgError "github.com/nextplot/nextplot-gw/pkg/error"
)

// ValidateServiceConfig checks the credentials the event pipeline depends
// on. The server still starts without them (the webhook answers 500 until
// fixed), so callers treat this as a warning, not a fatal.
func ValidateServiceConfig(cfg *config.Config) error {
	err := validation.Errors{
		"LINE_CHANNEL_SECRET":       requiredUnless(cfg.Line.ChannelSecret, cfg.Line.SignatureRelaxed),
		"LINE_CHANNEL_ACCESS_TOKEN": requiredString(cfg.Line.AccessToken),
		"SUPABASE_URL":              requiredString(cfg.Supabase.URL),
		"SUPABASE_SERVICE_ROLE":     requiredString(cfg.Supabase.ServiceRole),
	}.Filter()

	if err != nil {
		return pkgError.ConfigError(err.Error())
	}
	return nil
}

func requiredString(v string) error {
	return validation.Validate(v, validation.Required)
}

func requiredUnless(v string, skip bool) error {
	if skip {
		return nil
	}
	return validation.Validate(v, validation.Required)
}
