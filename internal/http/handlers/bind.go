package handlers

import (
	"errors"
	"reflect"
	"strings"
	"sync"

	"github.com/airtribe-projects/news-aggregator-api-codeByVaibhav/internal/domain/user"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var registerOnce sync.Once

// RegisterValidators installs the custom rules on gin's validator engine.
// Safe to call more than once.
func RegisterValidators() {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}

		// report json names ("email") instead of Go field names ("Email")
		v.RegisterTagNameFunc(func(sf reflect.StructField) string {
			name, _, _ := strings.Cut(sf.Tag.Get("json"), ",")
			if name == "-" {
				return ""
			}
			if name == "" {
				return sf.Name
			}
			return name
		})

		_ = v.RegisterValidation("simple_email", func(fl validator.FieldLevel) bool {
			return user.ValidEmail(fl.Field().String())
		})
	})
}

// rulePriority orders validation tags; the lowest-ranked violation decides
// the response message.
var rulePriority = map[string]int{
	"required":     0,
	"simple_email": 1,
	"min":          2,
}

var ruleMessages = map[string]string{
	"required":     MsgMissingCredentials,
	"simple_email": MsgInvalidEmail,
	"min":          MsgPasswordTooShort,
}

// signupMessage maps a binding error to the single message the client sees.
// Anything that is not a validation failure (empty or undecodable body)
// counts as missing credentials.
func signupMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return MsgMissingCredentials
	}

	best := ""
	bestRank := len(rulePriority)

	for _, fe := range verrs {
		rank, ok := rulePriority[fe.Tag()]
		if !ok {
			continue
		}
		if rank < bestRank {
			best, bestRank = fe.Tag(), rank
		}
	}

	if msg, ok := ruleMessages[best]; ok {
		return msg
	}
	return MsgMissingCredentials
}
