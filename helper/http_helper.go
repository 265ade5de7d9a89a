package helper

import (
	"errors"
	"net/http"
	"reflect"
	"strings"

	"blog-api/models"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"gopkg.in/go-playground/validator.v9"
	enTranslations "gopkg.in/go-playground/validator.v9/translations/en"
)

const (
	codeTypeSuccess    = `success`
	codeTypeCreated    = `created`
	codeTypeBadRequest = `badRequest`
	codeTypeValidation = `validationError`
	codeTypeNotFound   = `notFound`
	codeTypeConflict   = `conflict`
	codeTypeInternal   = `internalError`
)

// ResponseHelper ...
type ResponseHelper struct {
	C        *gin.Context
	Status   int
	Message  interface{}
	Data     interface{}
	CodeType string
}

// HTTPHelper ...
type HTTPHelper struct {
	Validate   *validator.Validate
	Translator ut.Translator
}

// NewHTTPHelper builds a validator that reads `validate` tags and reports
// failures in English.
func NewHTTPHelper() (*HTTPHelper, error) {
	english := en.New()
	uni := ut.New(english, english)
	trans, _ := uni.GetTranslator("en")

	validate := validator.New()
	validate.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	if err := enTranslations.RegisterDefaultTranslations(validate, trans); err != nil {
		return nil, err
	}

	return &HTTPHelper{Validate: validate, Translator: trans}, nil
}

// ValidateStruct ...
// Run the `validate` tag rules on a bound request.
func (u *HTTPHelper) ValidateStruct(req interface{}) error {
	return u.Validate.Struct(req)
}

// GetStatusCode ...
// Map a service error to its HTTP status.
func (u *HTTPHelper) GetStatusCode(err error) int {
	var (
		notFound   *models.ErrorNotFound
		conflict   *models.ErrorConflict
		validation *models.ErrorValidation
	)
	switch {
	case err == nil:
		return http.StatusOK
	case errors.As(err, &notFound):
		return http.StatusNotFound
	case errors.As(err, &conflict):
		return http.StatusConflict
	case errors.As(err, &validation):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func codeType(status int) string {
	switch status {
	case http.StatusOK:
		return codeTypeSuccess
	case http.StatusCreated:
		return codeTypeCreated
	case http.StatusNotFound:
		return codeTypeNotFound
	case http.StatusConflict:
		return codeTypeConflict
	case http.StatusBadRequest:
		return codeTypeBadRequest
	default:
		return codeTypeInternal
	}
}

// SetResponse ...
// Set response data.
func (u *HTTPHelper) SetResponse(c *gin.Context, status int, message interface{}, data interface{}, codeType string) ResponseHelper {
	return ResponseHelper{c, status, message, data, codeType}
}

// SendServiceError ...
// Send a service error with the status its type maps to. Internal errors do
// not leak their message.
func (u *HTTPHelper) SendServiceError(c *gin.Context, err error) {
	status := u.GetStatusCode(err)
	message := err.Error()
	if status == http.StatusInternalServerError {
		_ = c.Error(err)
		message = http.StatusText(status)
	}
	u.SendResponse(u.SetResponse(c, status, message, u.EmptyJsonMap(), codeType(status)))
}

// SendBadRequest ...
// Send bad request response to consumers.
func (u *HTTPHelper) SendBadRequest(c *gin.Context, message string) {
	u.SendResponse(u.SetResponse(c, http.StatusBadRequest, message, u.EmptyJsonMap(), codeTypeBadRequest))
}

// SendValidationError ...
// Send validation error response to consumers, one list of messages per
// snake_case field.
func (u *HTTPHelper) SendValidationError(c *gin.Context, err error) {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		u.SendBadRequest(c, err.Error())
		return
	}

	errorResponse := map[string][]string{}
	errorTranslation := validationErrors.Translate(u.Translator)
	for _, fieldErr := range validationErrors {
		errKey := Underscore(fieldErr.StructField())
		errorResponse[errKey] = append(errorResponse[errKey], errorTranslation[fieldErr.Namespace()])
	}
	u.SendResponse(u.SetResponse(c, http.StatusBadRequest, errorResponse, u.EmptyJsonMap(), codeTypeValidation))
}

// SendSuccess ...
// Send success response to consumers.
func (u *HTTPHelper) SendSuccess(c *gin.Context, message string, data interface{}) {
	u.SendResponse(u.SetResponse(c, http.StatusOK, message, data, codeTypeSuccess))
}

// SendCreated ...
func (u *HTTPHelper) SendCreated(c *gin.Context, message string, data interface{}) {
	u.SendResponse(u.SetResponse(c, http.StatusCreated, message, data, codeTypeCreated))
}

// SendResponse ...
// Send response
func (u *HTTPHelper) SendResponse(res ResponseHelper) {
	if s, ok := res.Message.(string); ok && s == "" {
		res.Message = `success`
	}
	res.C.JSON(res.Status, map[string]interface{}{
		"code":         res.Status,
		"code_type":    res.CodeType,
		"code_message": res.Message,
		"data":         res.Data,
	})
}

func (u *HTTPHelper) EmptyJsonMap() map[string]interface{} {
	return make(map[string]interface{})
}
