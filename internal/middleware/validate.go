package middleware

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/monocle-dev/opsdesk/internal/types"
)

func init() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterTagNameFunc(fieldName)
	}
}

// fieldName reports struct fields by the name the client sent.
func fieldName(field reflect.StructField) string {
	for _, tag := range []string{"json", "uri", "form"} {
		name, _, _ := strings.Cut(field.Tag.Get(tag), ",")
		if name != "" && name != "-" {
			return name
		}
	}
	return field.Name
}

// BindBody decodes the request body by content type. JSON bodies are cached
// on the context, so binding twice sees the same bytes.
func BindBody(ctx *gin.Context, obj any) error {
	b := binding.Default(ctx.Request.Method, ctx.ContentType())
	if bb, ok := b.(binding.BindingBody); ok {
		return ctx.ShouldBindBodyWith(obj, bb)
	}
	return ctx.ShouldBindWith(obj, b)
}

// ValidateBody rejects the request with a 400 envelope unless its body
// decodes into T and satisfies T's binding tags.
func ValidateBody[T any]() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		var req T
		if err := BindBody(ctx, &req); err != nil {
			abortInvalid(ctx, err)
			return
		}
		ctx.Next()
	}
}

// ValidateURI is ValidateBody for path parameters.
func ValidateURI[T any]() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		var req T
		if err := ctx.ShouldBindUri(&req); err != nil {
			abortInvalid(ctx, err)
			return
		}
		ctx.Next()
	}
}

func abortInvalid(ctx *gin.Context, err error) {
	resp := types.Failure("Invalid input: "+Describe(err), nil, http.StatusBadRequest)
	ctx.AbortWithStatusJSON(resp.StatusCode, resp)
}

// Describe renders the first problem in a binding error.
func Describe(err error) string {
	var fields validator.ValidationErrors
	if errors.As(err, &fields) && len(fields) > 0 {
		fe := fields[0]
		switch fe.Tag() {
		case "required":
			return fmt.Sprintf("%s is required", fe.Field())
		case "uuid", "uuid|len=0":
			return fmt.Sprintf("%s must be a valid UUID", fe.Field())
		case "min", "gte":
			return fmt.Sprintf("%s must be at least %s", fe.Field(), fe.Param())
		case "max", "lte":
			return fmt.Sprintf("%s must be at most %s", fe.Field(), fe.Param())
		case "oneof":
			return fmt.Sprintf("%s must be one of [%s]", fe.Field(), fe.Param())
		default:
			return fmt.Sprintf("%s failed on the %q rule", fe.Field(), fe.Tag())
		}
	}

	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		return fmt.Sprintf("%s must be a %s", typeErr.Field, typeErr.Type)
	}

	var syntaxErr *json.SyntaxError
	if errors.As(err, &syntaxErr) || errors.Is(err, io.ErrUnexpectedEOF) {
		return "malformed JSON body"
	}
	if errors.Is(err, io.EOF) {
		return "request body is empty"
	}

	return err.Error()
}
