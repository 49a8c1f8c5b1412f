package server

import (
	"encoding/json"
	"errors"
	"io"
	"reflect"
	"strings"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// errorDetail locates one problem in the request, e.g. loc ["body","prompt"].
type errorDetail struct {
	Loc  []string `json:"loc"`
	Msg  string   `json:"msg"`
	Type string   `json:"type"`
}

type validationErrorBody struct {
	Detail []errorDetail `json:"detail"`
}

var tagNamesOnce sync.Once

// registerValidatorTagNames makes validation errors report JSON field names.
func registerValidatorTagNames() {
	tagNamesOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			if name == "" {
				return f.Name
			}
			return name
		})
	})
}

func invalidJSONDetail() errorDetail {
	return errorDetail{Loc: []string{"body"}, Msg: "invalid JSON body", Type: "value_error.jsondecode"}
}

// validationDetails converts a binding error into the 422 response detail.
func validationDetails(err error) []errorDetail {
	var (
		verrs     validator.ValidationErrors
		typeErr   *json.UnmarshalTypeError
		syntaxErr *json.SyntaxError
	)
	switch {
	case errors.As(err, &verrs):
		out := make([]errorDetail, 0, len(verrs))
		for _, fe := range verrs {
			d := errorDetail{Loc: []string{"body", fe.Field()}}
			if fe.Tag() == "required" {
				d.Msg, d.Type = "field required", "value_error.missing"
			} else {
				d.Msg, d.Type = fe.Error(), "value_error."+fe.Tag()
			}
			out = append(out, d)
		}
		return out
	case errors.As(err, &typeErr):
		loc := []string{"body"}
		if typeErr.Field != "" {
			loc = append(loc, strings.Split(typeErr.Field, ".")...)
		}
		return []errorDetail{{Loc: loc, Msg: typeErr.Type.String() + " type expected", Type: "type_error." + typeErr.Type.String()}}
	case errors.As(err, &syntaxErr), errors.Is(err, io.EOF), errors.Is(err, io.ErrUnexpectedEOF):
		return []errorDetail{invalidJSONDetail()}
	default:
		return []errorDetail{{Loc: []string{"body"}, Msg: err.Error(), Type: "value_error"}}
	}
}
