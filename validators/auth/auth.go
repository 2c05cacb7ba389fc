package authValidator

import (
	"github.com/Consistent-coder/QuizMaster/middleware"
	"github.com/Consistent-coder/QuizMaster/utils"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = validator.New()

type signupRequest struct {
	Name     string `json:"name" validate:"required,min=2"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Role     string `json:"role" validate:"omitempty,oneof=USER ADMIN"`
}

type signinRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// Signup validator middleware
func Signup() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(signupRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.ErrorResponse(c, utils.BadRequest("Invalid request body!"))
		}

		if errs := fieldErrors(validate.Struct(reqData)); len(errs) > 0 {
			return middleware.ValidationErrorResponse(c, errs)
		}

		return c.Next()
	}
}

// Signin validator middleware
func Signin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(signinRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.ErrorResponse(c, utils.BadRequest("Invalid request body!"))
		}

		if errs := fieldErrors(validate.Struct(reqData)); len(errs) > 0 {
			return middleware.ValidationErrorResponse(c, errs)
		}

		return c.Next()
	}
}

func fieldErrors(err error) map[string]string {
	if err == nil {
		return nil
	}

	errs := make(map[string]string)
	if validationErrs, ok := err.(validator.ValidationErrors); ok {
		for _, fe := range validationErrs {
			switch fe.Tag() {
			case "required":
				errs[fe.Field()] = "This field is required!"
			case "email":
				errs[fe.Field()] = "Invalid email!"
			case "min":
				errs[fe.Field()] = "Value is too short!"
			case "oneof":
				errs[fe.Field()] = "Invalid value!"
			default:
				errs[fe.Field()] = "Invalid value!"
			}
		}
	} else {
		errs["body"] = "Invalid request body!"
	}
	return errs
}
