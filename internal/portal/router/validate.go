// Copyright 2025 Arcade Team
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package router

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-arcade/portal/internal/portal/model"
	httpx "github.com/go-arcade/portal/pkg/http"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

func newValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("role_portal", func(fl validator.FieldLevel) bool {
		_, err := model.ParseRolePortal(fl.Field().String())
		return err == nil
	})
	return v
}

// bind parses the body into form and validates it. Failures carry the
// form toast and one message per json field.
func (rt *Router) bind(c *fiber.Ctx, form any) error {
	if err := c.BodyParser(form); err != nil {
		return httpx.NewError(fiber.StatusBadRequest, httpx.BadRequest, err.Error()).
			WithToast(t(c, msgFormInvalid, nil))
	}
	err := rt.validate.Struct(form)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return httpx.NewError(fiber.StatusBadRequest, httpx.BadRequest, err.Error()).
			WithToast(t(c, msgFormInvalid, nil))
	}

	typ := reflect.TypeOf(form)
	for typ.Kind() == reflect.Pointer {
		typ = typ.Elem()
	}
	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		name, label := fe.Field(), fe.Field()
		if sf, ok := typ.FieldByName(fe.StructField()); ok {
			if j := strings.Split(sf.Tag.Get("json"), ",")[0]; j != "" && j != "-" {
				name = j
			}
			if l := sf.Tag.Get("label"); l != "" {
				label = l
			}
		}
		fields[name] = t(c, fieldMessage(fe.Tag()), map[string]any{"Label": label})
	}

	e := httpx.NewError(fiber.StatusBadRequest, httpx.BadRequest, t(c, msgFormInvalid, nil)).
		WithToast(t(c, msgFormInvalid, nil))
	e.Fields = fields
	return e
}

func fieldMessage(tag string) string {
	switch tag {
	case "required", "required_if":
		return msgFieldRequired
	case "gt", "min":
		return msgFieldSelect
	default:
		return msgFieldInvalid
	}
}
