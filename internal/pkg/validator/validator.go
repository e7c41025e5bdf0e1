package validator

import (
	"errors"
	"fmt"
	"regexp"
	"slices"
	"strings"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	phoneRegex = regexp.MustCompile(`^\+?[0-9][0-9 \-]{6,18}$`)
	urlRegex   = regexp.MustCompile(`^https?:\/\/(www\.)?[-a-zA-Z0-9@:%._\+~#=]{1,256}\.[a-zA-Z0-9()]{1,6}\b([-a-zA-Z0-9()@:%_\+.~#?&//=]*)$`)

	registerOnce sync.Once
)

// Accepted values of the enum tags
var (
	PostTypes    = []string{"article", "story", "guide", "video", "infographic"}
	CaseStatuses = []string{"Pending", "Verified", "Rejected"}
)

// Register installs the custom validation tags on gin's validator engine.
// It is safe to call more than once.
func Register() {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		if err := registerTags(v, customTags); err != nil {
			panic(fmt.Sprintf("validator: %v", err))
		}
	})
}

var customTags = map[string]validator.Func{
	"objectid": func(fl validator.FieldLevel) bool {
		return primitive.IsValidObjectID(fl.Field().String())
	},
	"phone": func(fl validator.FieldLevel) bool {
		return IsValidPhone(fl.Field().String())
	},
	"weburl": func(fl validator.FieldLevel) bool {
		return IsValidURL(fl.Field().String())
	},
	"posttype": func(fl validator.FieldLevel) bool {
		return slices.Contains(PostTypes, fl.Field().String())
	},
	"casestatus": func(fl validator.FieldLevel) bool {
		return slices.Contains(CaseStatuses, fl.Field().String())
	},
}

// registerTags installs every tag and reports all failures together
func registerTags(v *validator.Validate, tags map[string]validator.Func) error {
	var errs []error
	for tag, fn := range tags {
		if err := v.RegisterValidation(tag, fn); err != nil {
			errs = append(errs, fmt.Errorf("register %q: %w", tag, err))
		}
	}
	return errors.Join(errs...)
}

// Describe turns binding errors into one readable sentence
func Describe(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		field := lowerFirst(fe.Field())
		switch fe.Tag() {
		case "required":
			msgs = append(msgs, fmt.Sprintf("%s is required", field))
		case "email":
			msgs = append(msgs, fmt.Sprintf("%s must be a valid email", field))
		case "min":
			msgs = append(msgs, fmt.Sprintf("%s must be at least %s", field, fe.Param()))
		case "max":
			msgs = append(msgs, fmt.Sprintf("%s must be at most %s", field, fe.Param()))
		case "oneof":
			msgs = append(msgs, fmt.Sprintf("%s must be one of [%s]", field, fe.Param()))
		case "posttype":
			msgs = append(msgs, fmt.Sprintf("%s must be one of [%s]", field, strings.Join(PostTypes, " ")))
		case "casestatus":
			msgs = append(msgs, fmt.Sprintf("%s must be one of [%s]", field, strings.Join(CaseStatuses, " ")))
		default:
			msgs = append(msgs, fmt.Sprintf("%s is invalid", field))
		}
	}
	return strings.Join(msgs, "; ")
}

// IsValidPhone checks if the phone number format is valid
func IsValidPhone(phone string) bool {
	if strings.TrimSpace(phone) == "" {
		return false
	}
	return phoneRegex.MatchString(phone)
}

// IsValidURL checks if the URL format is valid
func IsValidURL(url string) bool {
	if strings.TrimSpace(url) == "" {
		return false
	}
	return urlRegex.MatchString(url)
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToLower(s[:1]) + s[1:]
}
