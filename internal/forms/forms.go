// Package forms declares the request bodies accepted by the blog and the
// constraints applied to them.
package forms

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		if label := fld.Tag.Get("label"); label != "" {
			return label
		}
		return fld.Name
	})
	return v
}

type RegisterForm struct {
	Name       string `form:"name" label:"Name" validate:"required"`
	Email      string `form:"email" label:"Email" validate:"required"`
	Password   string `form:"password" label:"Password" validate:"required,min=8,max=16"`
	RePassword string `form:"re_password" label:"Confirm Password" validate:"required,eqfield=Password"`
}

type LoginForm struct {
	Email    string `form:"email" label:"Email" validate:"required,email"`
	Password string `form:"password" label:"Password" validate:"required,min=8,max=16"`
	Remember bool   `form:"remember"`
}

type PostForm struct {
	Title    string `form:"title" label:"Blog Post Title" validate:"required"`
	Subtitle string `form:"subtitle" label:"Subtitle" validate:"required"`
	ImgURL   string `form:"img_url" label:"Blog Image URL" validate:"required,url"`
	Body     string `form:"body" label:"Blog Content" validate:"required"`
}

type CommentForm struct {
	Body string `form:"body" label:"Comment" validate:"required"`
}

// ContactForm is accepted as-is.
type ContactForm struct {
	Name    string `form:"name"`
	Email   string `form:"email"`
	Phone   string `form:"phone"`
	Message string `form:"message"`
}

// Normalize trims surrounding whitespace from every string field of form.
func Normalize(form any) {
	v := reflect.ValueOf(form)
	if v.Kind() != reflect.Pointer || v.Elem().Kind() != reflect.Struct {
		return
	}
	v = v.Elem()
	for i := 0; i < v.NumField(); i++ {
		f := v.Field(i)
		if f.Kind() == reflect.String && f.CanSet() {
			f.SetString(strings.TrimSpace(f.String()))
		}
	}
}

// Validate checks form against its tags and returns one message per failing
// field, in field order. A nil result means the form is valid.
func Validate(form any) []string {
	err := validate.Struct(form)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []string{err.Error()}
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, message(fe))
	}
	return msgs
}

func message(fe validator.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required.", field)
	case "email":
		return "Invalid email address."
	case "url":
		return fmt.Sprintf("%s must be a valid URL.", field)
	case "min", "max":
		return fmt.Sprintf("%s must be between 8 and 16 characters long.", field)
	case "eqfield":
		return "Passwords must match."
	}
	return fmt.Sprintf("%s is invalid.", field)
}
