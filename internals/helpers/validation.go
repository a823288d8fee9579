package helper

import (
	"errors"
	"reflect"
	"regexp"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"
)

/* =======================================================
   Shared validator instance + custom rules
   ======================================================= */

var Validate = validator.New()

var (
	reDateYMD = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	reTimeHM  = regexp.MustCompile(`^\d{2}:\d{2}$`)
	rePrice   = regexp.MustCompile(`^\d+(\.\d{1,2})?$`)

	reUpper   = regexp.MustCompile(`[A-Z]`)
	reLower   = regexp.MustCompile(`[a-z]`)
	reDigit   = regexp.MustCompile(`[0-9]`)
	reSpecial = regexp.MustCompile(`[@$!%*?&]`)
	reDigits  = regexp.MustCompile(`^[0-9]+$`)
)

func init() {
	// report field names as their json tag so errors line up with the payload
	Validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})

	_ = Validate.RegisterValidation("dateymd", func(fl validator.FieldLevel) bool {
		return reDateYMD.MatchString(fl.Field().String())
	})
	_ = Validate.RegisterValidation("hhmm", func(fl validator.FieldLevel) bool {
		return reTimeHM.MatchString(fl.Field().String())
	})
	_ = Validate.RegisterValidation("price", func(fl validator.FieldLevel) bool {
		return rePrice.MatchString(fl.Field().String())
	})
}

/* =======================================================
   FieldErrors: per-field message lists
   ======================================================= */

// FieldErrors collects every validation message keyed by the submitted field
// name. All failing fields are reported together, not just the first one.
type FieldErrors map[string][]string

func (fe FieldErrors) Add(field, message string) {
	fe[field] = append(fe[field], message)
}

func (fe FieldErrors) Merge(other FieldErrors) {
	for field, msgs := range other {
		fe[field] = append(fe[field], msgs...)
	}
}

func (fe FieldErrors) Empty() bool { return len(fe) == 0 }

// First returns one message for log lines and terse clients.
func (fe FieldErrors) First() string {
	for _, msgs := range fe {
		if len(msgs) > 0 {
			return msgs[0]
		}
	}
	return ""
}

// Messages maps field name -> validator tag -> user-facing message.
type Messages map[string]map[string]string

// CollectFieldErrors translates validator.ValidationErrors through a per-DTO
// message table. Tags without an entry fall back to a generic message so a
// missing table row never leaks validator internals.
func CollectFieldErrors(err error, msgs Messages) FieldErrors {
	fe := FieldErrors{}
	if err == nil {
		return fe
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		fe.Add("non_field", "Invalid input.")
		return fe
	}

	for _, v := range verrs {
		field := v.Field()
		if byTag, ok := msgs[field]; ok {
			if msg, ok := byTag[v.Tag()]; ok {
				fe.Add(field, msg)
				continue
			}
		}
		fe.Add(field, "This value is invalid.")
	}
	return fe
}

/* =======================================================
   Password complexity: every failing rule is reported
   ======================================================= */

func PasswordRuleViolations(password string) []string {
	var out []string
	if len(password) < 8 {
		out = append(out, "Password must be at least 8 characters long.")
	}
	if !reUpper.MatchString(password) {
		out = append(out, "Password must contain at least one uppercase letter.")
	}
	if !reLower.MatchString(password) {
		out = append(out, "Password must contain at least one lowercase letter.")
	}
	if !reDigit.MatchString(password) {
		out = append(out, "Password must contain at least one digit.")
	}
	if !reSpecial.MatchString(password) {
		out = append(out, "Password must contain at least one special character (@, $, !, %, *, ?, &).")
	}
	return out
}

/* =======================================================
   Phone normalization
   ======================================================= */

// NormalizePhone strips (, ), - and any whitespace (including non-breaking
// spaces), then checks the +digits shape with 6..15 digits. Returns the
// canonical form.
func NormalizePhone(raw string) (string, error) {
	cleaned := strings.Map(func(r rune) rune {
		switch r {
		case '(', ')', '-':
			return -1
		}
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, raw)

	if !strings.HasPrefix(cleaned, "+") {
		return "", errors.New("Phone number must start with +.")
	}
	digits := cleaned[1:]
	if !reDigits.MatchString(digits) {
		return "", errors.New("Phone number may contain only digits after +.")
	}
	if len(digits) < 6 || len(digits) > 15 {
		return "", errors.New("Phone number must have between 6 and 15 digits.")
	}
	return cleaned, nil
}

/* =======================================================
   Storage error classification
   ======================================================= */

// IsUniqueViolation reports whether err is the store rejecting a duplicate
// key (gorm with TranslateError on). The pre-insert uniqueness check races
// with concurrent writers, so this is the authoritative signal.
func IsUniqueViolation(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey)
}
