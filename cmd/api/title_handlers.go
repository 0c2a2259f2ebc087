package main

import (
	"net/http"

	"reviewhub/proj/internal/domain/filters"
	"reviewhub/proj/internal/lib/validator"
	"reviewhub/proj/internal/services/titles"
)

func (app *Application) getTitles(w http.ResponseWriter, r *http.Request) {
	var f filters.TitleFilter
	if !app.decodeQuery(w, r, &f) {
		return
	}
	f.SetDefaults()
	if errs := validator.ValidateStruct(app.validator, f); errs != nil {
		app.Http.UnprocessableEntity(w, r, errs)
		return
	}
	titleList, metadata, err := app.services.Titles.List(r.Context(), f)
	if err != nil {
		app.handleServiceError(w, r, err)
		return
	}
	app.Http.Ok(w, r, envelop{"titles": titleList, "metadata": metadata}, "")
}

func (app *Application) getTitle(w http.ResponseWriter, r *http.Request) {
	id, ok := app.extractIDParam(w, r, "titleID")
	if !ok {
		return
	}
	title, err := app.services.Titles.Get(r.Context(), id)
	if err != nil {
		app.handleServiceError(w, r, err)
		return
	}
	app.Http.Ok(w, r, envelop{"title": title}, "")
}

type createTitleRequest struct {
	Name        string   `json:"name" validate:"required,max=256"`
	Year        int32    `json:"year" validate:"required"`
	Description string   `json:"description"`
	Category    *string  `json:"category" validate:"omitempty,slug"`
	Genres      []string `json:"genres" validate:"omitempty,dive,slug"`
}

func (app *Application) createTitle(w http.ResponseWriter, r *http.Request) {
	var input createTitleRequest
	if err := app.readJSON(w, r, &input); err != nil {
		app.Http.BadRequest(w, r, err.Error())
		return
	}
	if errs := validator.ValidateStruct(app.validator, input); errs != nil {
		app.Http.UnprocessableEntity(w, r, errs)
		return
	}
	title, err := app.services.Titles.Create(
		r.Context(), input.Name, input.Year, input.Description, input.Category, input.Genres,
	)
	if err != nil {
		app.handleServiceError(w, r, err)
		return
	}
	app.Http.Created(w, r, envelop{"title": title}, "")
}

type updateTitleRequest struct {
	Name        *string  `json:"name" validate:"omitempty,max=256"`
	Year        *int32   `json:"year"`
	Description *string  `json:"description"`
	Category    *string  `json:"category" validate:"omitempty,slug"`
	Genres      []string `json:"genres" validate:"omitempty,dive,slug"`
}

func (app *Application) updateTitle(w http.ResponseWriter, r *http.Request) {
	id, ok := app.extractIDParam(w, r, "titleID")
	if !ok {
		return
	}
	var input updateTitleRequest
	if err := app.readJSON(w, r, &input); err != nil {
		app.Http.BadRequest(w, r, err.Error())
		return
	}
	if errs := validator.ValidateStruct(app.validator, input); errs != nil {
		app.Http.UnprocessableEntity(w, r, errs)
		return
	}
	title, err := app.services.Titles.Update(r.Context(), id, titles.TitleParams{
		Name:        input.Name,
		Year:        input.Year,
		Description: input.Description,
		Category:    input.Category,
		Genres:      input.Genres,
	})
	if err != nil {
		app.handleServiceError(w, r, err)
		return
	}
	app.Http.Ok(w, r, envelop{"title": title}, "")
}

func (app *Application) deleteTitle(w http.ResponseWriter, r *http.Request) {
	id, ok := app.extractIDParam(w, r, "titleID")
	if !ok {
		return
	}
	if err := app.services.Titles.Delete(r.Context(), id); err != nil {
		app.handleServiceError(w, r, err)
		return
	}
	app.Http.NoContent(w, r, "")
}
