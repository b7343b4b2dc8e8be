package handler

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"estategate/internal/gate/models"
	dErrors "estategate/pkg/domain-errors"
)

var validate = newValidator()

// VerifyVisitorRequest is the HTTP request body for POST /v1/visitors/verify.
// Code is an opaque token and is passed through untouched.
type VerifyVisitorRequest struct {
	Code         string `json:"code" validate:"required,max=128"`
	PIN          string `json:"pin" validate:"omitempty,max=32"`
	HostResident string `json:"host_resident" validate:"omitempty,max=128"`
	Method       string `json:"method" validate:"omitempty,oneof=qr manual"`
	Location     string `json:"location" validate:"omitempty,max=128"`
}

// Validate implements the Validatable interface for httputil.DecodeAndPrepare.
func (r *VerifyVisitorRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request body is required")
	}
	r.HostResident = strings.TrimSpace(r.HostResident)
	r.Location = strings.TrimSpace(r.Location)
	return validateStruct(r)
}

func (r *VerifyVisitorRequest) ToModel() models.VerifyRequest {
	return models.VerifyRequest{
		Code:         r.Code,
		PIN:          r.PIN,
		HostResident: r.HostResident,
		Method:       models.VerificationMethod(r.Method),
		Location:     r.Location,
	}
}

// UpdateCommand is one tagged visitor update on the wire.
type UpdateCommand struct {
	Kind         string `json:"kind" validate:"required,oneof=check_out relabel change_purpose reassign_host"`
	Name         string `json:"name,omitempty" validate:"required_if=Kind relabel,max=128"`
	Purpose      string `json:"purpose,omitempty" validate:"required_if=Kind change_purpose,max=256"`
	HostResident string `json:"host_resident,omitempty" validate:"required_if=Kind reassign_host,max=128"`
}

func (c UpdateCommand) toModel() models.VisitorUpdate {
	switch c.Kind {
	case models.CheckOut{}.Kind():
		return models.CheckOut{}
	case models.Relabel{}.Kind():
		return models.Relabel{Name: c.Name}
	case models.ChangePurpose{}.Kind():
		return models.ChangePurpose{Purpose: c.Purpose}
	case models.ReassignHost{}.Kind():
		return models.ReassignHost{HostResident: c.HostResident}
	}
	return nil
}

// UpdateVisitorRequest is the HTTP request body for PATCH /v1/visitors/{id}.
type UpdateVisitorRequest struct {
	Updates []UpdateCommand `json:"updates" validate:"required,min=1,max=10,dive"`
}

func (r *UpdateVisitorRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request body is required")
	}
	return validateStruct(r)
}

func (r *UpdateVisitorRequest) ToModel() []models.VisitorUpdate {
	return toModels(r.Updates)
}

// CheckoutRequest is the optional body for POST /v1/visitors/{id}/checkout.
// Extra updates are applied in the same step as the checkout.
type CheckoutRequest struct {
	Updates []UpdateCommand `json:"updates,omitempty" validate:"omitempty,max=10,dive"`
}

func (r *CheckoutRequest) Validate() error {
	if r == nil {
		return nil
	}
	return validateStruct(r)
}

func (r *CheckoutRequest) ToModel() []models.VisitorUpdate {
	return toModels(r.Updates)
}

// EmergencyAlertRequest is the HTTP request body for POST /v1/alerts/emergency.
type EmergencyAlertRequest struct {
	Message  string `json:"message" validate:"required,max=500"`
	Location string `json:"location" validate:"omitempty,max=128"`
	RaisedBy string `json:"raised_by" validate:"omitempty,max=128"`
	Priority string `json:"priority" validate:"omitempty,oneof=low medium high critical urgent"`
}

func (r *EmergencyAlertRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request body is required")
	}
	r.Message = strings.TrimSpace(r.Message)
	return validateStruct(r)
}

func (r *EmergencyAlertRequest) ToModel() models.EmergencyAlertRequest {
	return models.EmergencyAlertRequest{
		Message:  r.Message,
		Location: r.Location,
		RaisedBy: r.RaisedBy,
		Priority: models.Priority(r.Priority),
	}
}

// AnnouncementRequest is the HTTP request body for POST /v1/announcements.
type AnnouncementRequest struct {
	Title    string `json:"title" validate:"required,max=200"`
	Body     string `json:"body" validate:"required,max=2000"`
	Author   string `json:"author" validate:"omitempty,max=128"`
	Priority string `json:"priority" validate:"omitempty,oneof=low medium high critical urgent"`
}

func (r *AnnouncementRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request body is required")
	}
	r.Title = strings.TrimSpace(r.Title)
	r.Body = strings.TrimSpace(r.Body)
	return validateStruct(r)
}

func (r *AnnouncementRequest) ToModel() models.AnnouncementRequest {
	return models.AnnouncementRequest{
		Title:    r.Title,
		Body:     r.Body,
		Author:   r.Author,
		Priority: models.Priority(r.Priority),
	}
}

func toModels(cmds []UpdateCommand) []models.VisitorUpdate {
	out := make([]models.VisitorUpdate, 0, len(cmds))
	for _, c := range cmds {
		out = append(out, c.toModel())
	}
	return out
}

// validateStruct runs the struct tags and reports the first failing field
// as a validation error, e.g. "code: required".
func validateStruct(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return dErrors.Wrap(err, dErrors.CodeBadRequest, "invalid request")
	}
	fe := verrs[0]
	msg := fmt.Sprintf("%s: %s", fieldPath(fe.Namespace()), fe.Tag())
	if fe.Param() != "" {
		msg += "=" + fe.Param()
	}
	return dErrors.New(dErrors.CodeValidation, msg)
}

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// fieldPath drops the struct name: "UpdateVisitorRequest.updates[0].name"
// becomes "updates[0].name".
func fieldPath(namespace string) string {
	if _, rest, ok := strings.Cut(namespace, "."); ok {
		return rest
	}
	return namespace
}
