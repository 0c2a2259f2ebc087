package main

import (
	"net/http"

	"reviewhub/proj/internal/lib/validator"
)

type signupRequest struct {
	Username string `json:"username" validate:"required,max=150,username"`
	Email    string `json:"email" validate:"required,email,max=254"`
}

// signup resolves or registers the user and mails a confirmation code.
// The code itself never appears in the response.
func (app *Application) signup(w http.ResponseWriter, r *http.Request) {
	var input signupRequest
	if err := app.readJSON(w, r, &input); err != nil {
		app.Http.BadRequest(w, r, err.Error())
		return
	}
	if errs := validator.ValidateStruct(app.validator, input); errs != nil {
		app.Http.UnprocessableEntity(w, r, errs)
		return
	}
	if err := app.services.Auth.RequestCode(r.Context(), input.Username, input.Email); err != nil {
		app.handleServiceError(w, r, err)
		return
	}
	app.Http.Ok(w, r, envelop{
		"username": input.Username,
		"email":    input.Email,
	}, "Confirmation code sent")
}

type obtainTokenRequest struct {
	Username         string `json:"username" validate:"required,max=150"`
	ConfirmationCode string `json:"confirmation_code" validate:"required"`
}

func (app *Application) obtainToken(w http.ResponseWriter, r *http.Request) {
	var input obtainTokenRequest
	if err := app.readJSON(w, r, &input); err != nil {
		app.Http.BadRequest(w, r, err.Error())
		return
	}
	if errs := validator.ValidateStruct(app.validator, input); errs != nil {
		app.Http.UnprocessableEntity(w, r, errs)
		return
	}
	token, err := app.services.Auth.ExchangeCode(r.Context(), input.Username, input.ConfirmationCode)
	if err != nil {
		app.handleServiceError(w, r, err)
		return
	}
	app.Http.Ok(w, r, envelop{"token": token}, "")
}
