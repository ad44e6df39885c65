package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/slatesocial/site/internal/service"
	"github.com/slatesocial/site/internal/ui"
	"github.com/slatesocial/site/internal/validation"
)

const (
	maxFormBytes = 64 << 10
	// honeypotField is hidden from people; bots fill it in.
	honeypotField = "website"
)

type RegisterHandler struct {
	registrations *service.RegistrationService
}

func NewRegisterHandler(registrations *service.RegistrationService) *RegisterHandler {
	return &RegisterHandler{
		registrations: registrations,
	}
}

// Submit handles the beta registration form posted from the landing page.
func (h *RegisterHandler) Submit(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxFormBytes)
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form submission", http.StatusBadRequest)
		return
	}

	in := service.RegistrationInput{
		FullName: r.PostFormValue(service.FieldFullName),
		GymName:  r.PostFormValue(service.FieldGymName),
		Email:    r.PostFormValue(service.FieldEmail),
		Message:  r.PostFormValue(service.FieldMessage),
	}

	if r.PostFormValue(honeypotField) != "" {
		slog.Warn("registration honeypot filled", "remote_addr", r.RemoteAddr)
		ui.Render(w, r, ui.RegisterThanks(in.FullName, false))
		return
	}

	_, created, err := h.registrations.Register(r.Context(), in)
	var fieldErrs validation.Errors
	if errors.As(err, &fieldErrs) {
		values := map[string]string{
			service.FieldFullName: in.FullName,
			service.FieldGymName:  in.GymName,
			service.FieldEmail:    in.Email,
			service.FieldMessage:  in.Message,
		}
		ui.RenderStatus(w, r, http.StatusUnprocessableEntity, ui.RegisterForm(values, fieldErrs))
		return
	}
	if err != nil {
		slog.Error("registration failed", "error", err)
		http.Error(w, "Something went wrong. Please try again later.", http.StatusInternalServerError)
		return
	}

	ui.Render(w, r, ui.RegisterThanks(in.FullName, !created))
}
