package app

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/go-playground/validator/v10"

	"hotel_directory/internal/domain"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	enum := func(allowed []string) validator.Func {
		return func(fl validator.FieldLevel) bool {
			return slices.Contains(allowed, fl.Field().String())
		}
	}
	_ = v.RegisterValidation("frontoffice", enum(domain.FrontOfficeJobs))
	_ = v.RegisterValidation("management", enum(domain.ManagementJobs))
	_ = v.RegisterValidation("foodbeverage", enum(domain.FoodAndBeverageRoles))
	_ = v.RegisterValidation("roomstar", enum(domain.RoomStars))
	return v
}

// check validates s and folds field errors into one ErrValidation.
func check(s any) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return err
	}
	msgs := make([]string, 0, len(ve))
	for _, fe := range ve {
		msgs = append(msgs, fieldMessage(fe))
	}
	return fmt.Errorf("%w: %s", domain.ErrValidation, strings.Join(msgs, ", "))
}

func fieldMessage(fe validator.FieldError) string {
	name := fe.Field()
	switch fe.Tag() {
	case "required":
		return "please add a " + name
	case "max":
		return fmt.Sprintf("%s can not be more than %s characters", name, fe.Param())
	case "min":
		return fmt.Sprintf("%s must be at least %s", name, fe.Param())
	case "email":
		return "please add a valid email"
	case "url", "http_url":
		return "please use a valid URL with HTTP or HTTPS"
	default:
		return fmt.Sprintf("%s is invalid", name)
	}
}
