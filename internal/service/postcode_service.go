package service

import (
	"context"
	"regexp"
	"strings"
	"unicode"

	"github.com/evyataryagoni/postcode-checker/internal/logger"
	"github.com/evyataryagoni/postcode-checker/internal/lookup"
	"github.com/evyataryagoni/postcode-checker/internal/metrics"
	"github.com/evyataryagoni/postcode-checker/internal/models"
	"github.com/evyataryagoni/postcode-checker/internal/settings"
	"github.com/go-playground/validator/v10"
)

// PostcodePattern is the whitespace-tolerant UK postcode pattern, suitable for
// an HTML input pattern attribute
const PostcodePattern = `^\s*[A-Za-z]{1,2}[0-9][A-Za-z0-9]?\s*[0-9][A-Za-z]{2}\s*$`

// normalizedPostcode matches a postcode with all whitespace removed
// Letter classes are spelled out since (?i) folds non-ASCII runes such as U+212A onto K
var normalizedPostcode = regexp.MustCompile(`^[A-Za-z]{1,2}[0-9][A-Za-z0-9]?[0-9][A-Za-z]{2}$`)

// Check outcomes used as metric labels
const (
	resultAllowed     = "allowed"
	resultNotAllowed  = "not_allowed"
	resultInvalid     = "invalid"
	resultConfigError = "config_error"
)

// PolicySource provides the admission policy
// Implemented by *settings.Settings
type PolicySource interface {
	Policy(ctx context.Context) (models.Policy, error)
}

var _ PolicySource = (*settings.Settings)(nil)

// PostcodeService decides whether a postcode is allowed
//
// Responsibilities:
//   - Normalize and validate the postcode format
//   - Enforce that the policy is configured
//   - Match the exact-allow list, then the LSOA prefix list via the lookup service
//
// It holds no per-check state; the policy is read on every check.
type PostcodeService struct {
	policy    PolicySource
	lookup    lookup.Client
	validator *validator.Validate
	metrics   *metrics.Metrics
	logger    *logger.Logger
}

// NewPostcodeService creates a new postcode service
//
// Parameters:
//   - policy: settings facade providing both allow-lists
//   - client: area lookup client
//   - m: metrics collector (optional, can be nil)
//   - log: logger (optional, can be nil)
func NewPostcodeService(policy PolicySource, client lookup.Client, m *metrics.Metrics, log *logger.Logger) *PostcodeService {
	if log == nil {
		log = logger.NewDefault()
	}
	return &PostcodeService{
		policy:    policy,
		lookup:    client,
		validator: newValidator(),
		metrics:   m,
		logger:    log.WithComponent("PostcodeService"),
	}
}

// newValidator registers the "postcode" tag
func newValidator() *validator.Validate {
	v := validator.New()
	// Registration only fails for an empty tag or nil func
	_ = v.RegisterValidation("postcode", func(fl validator.FieldLevel) bool {
		return normalizedPostcode.MatchString(fl.Field().String())
	})
	return v
}

// Normalize removes every whitespace character; case is preserved
func Normalize(raw string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, raw)
}

// IsValidFormat reports whether raw is a well-formed postcode once whitespace is removed
// It has no side effects and needs no policy
func (s *PostcodeService) IsValidFormat(raw string) bool {
	return s.validator.Var(Normalize(raw), "required,postcode") == nil
}

// IsAllowed decides whether a postcode is admitted
//
// Flow:
//  1. Normalize the input
//  2. Fail with *ConfigurationError if either allow-list is absent
//  3. Invalid format is not allowed
//  4. Exact match against the specific list is allowed without a lookup
//  5. Otherwise resolve the area and match it against the LSOA prefixes
//
// Returns an error only for an incomplete policy or a failing settings store.
// Lookup failures are logged and resolve to false.
func (s *PostcodeService) IsAllowed(ctx context.Context, raw string) (bool, error) {
	postcode := Normalize(raw)
	log := s.logger.WithPostcode(postcode)

	// Policy must be configured, regardless of input
	policy, err := s.policy.Policy(ctx)
	if err != nil {
		log.Error().Err(err).Msg("Failed to read admission policy")
		s.record(resultConfigError)
		return false, err
	}
	if !policy.Complete() {
		s.record(resultConfigError)
		return false, &ConfigurationError{Missing: missingSettings(policy)}
	}

	// Format check
	if !s.IsValidFormat(postcode) {
		log.Debug().Msg("Invalid postcode format")
		s.record(resultInvalid)
		return false, nil
	}

	// Exact-allow list, no lookup needed
	if inSpecificList(postcode, policy.SpecificAllowedPostcodes) {
		log.Debug().Msg("Postcode in specific allowed list")
		s.record(resultAllowed)
		return true, nil
	}

	// Area resolution, any lookup failure fails closed
	result := s.lookup.Lookup(ctx, postcode)
	if result.Status != models.LookupFound {
		log.Error().
			Str("url", result.URL).
			Int("status", result.StatusCode).
			Str("error", result.Message).
			Msgf("Error at %s - %d %s", result.URL, result.StatusCode, result.Message)
		s.record(resultNotAllowed)
		return false, nil
	}

	allowed := matchesAreaPrefix(result.AreaCode, policy.AllowedAreaPrefixes)
	log.Debug().
		Str("lsoa", result.AreaCode).
		Bool("allowed", allowed).
		Msg("Postcode area resolved")

	if allowed {
		s.record(resultAllowed)
	} else {
		s.record(resultNotAllowed)
	}
	return allowed, nil
}

// inSpecificList compares whitespace-stripped entries literally
func inSpecificList(postcode string, list []string) bool {
	for _, entry := range list {
		if Normalize(entry) == postcode {
			return true
		}
	}
	return false
}

// matchesAreaPrefix reports whether area starts with any prefix, ignoring case
// The whole LSOA string is matched, e.g. "Lsoa1" matches "Lsoa1 034A".
// An empty prefix list matches no area; an empty prefix entry matches every area.
func matchesAreaPrefix(area string, prefixes []string) bool {
	lowerArea := strings.ToLower(area)
	for _, prefix := range prefixes {
		if strings.HasPrefix(lowerArea, strings.ToLower(prefix)) {
			return true
		}
	}
	return false
}

func missingSettings(policy models.Policy) []string {
	var missing []string
	if !policy.HasSpecificAllowedPostcodes {
		missing = append(missing, settings.KeySpecificAllowedPostcodes)
	}
	if !policy.HasAllowedAreaPrefixes {
		missing = append(missing, settings.KeyAllowedPostcodesLSOA)
	}
	return missing
}

func (s *PostcodeService) record(result string) {
	if s.metrics != nil {
		s.metrics.PostcodeChecksTotal.WithLabelValues(result).Inc()
	}
}
