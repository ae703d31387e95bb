package controllers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	enTranslations "github.com/go-playground/validator/v10/translations/en"
	"github.com/julienschmidt/httprouter"
	helper "github.com/lintang-b-s/tollrate/pkg/http/router/routerhelper"
	"github.com/lintang-b-s/tollrate/pkg/toll"
	"go.uber.org/zap"
)

const maxRequestBodyBytes = 8 << 20

type tollAPI struct {
	tollService TollService
	log         *zap.Logger
	validate    *validator.Validate
	trans       ut.Translator
}

func New(tollService TollService, log *zap.Logger) *tollAPI {
	validate := validator.New()
	english := en.New()
	uni := ut.New(english, english)
	trans, _ := uni.GetTranslator("en")
	_ = enTranslations.RegisterDefaultTranslations(validate, trans)

	return &tollAPI{
		tollService: tollService,
		log:         log,
		validate:    validate,
		trans:       trans,
	}
}

func (api *tollAPI) Routes(group *helper.RouteGroup) {
	group.POST("/tolls", api.computeTolls)
	group.GET("/schedule", api.schedule)
}

// computeTolls runs the toll pipeline over the posted edges.
// Optional spans replace the full week schedule for this request.
// Query param include_timed=false drops the timed toll rows from the response.
func (api *tollAPI) computeTolls(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
	var (
		request computeTollsRequest
		err     error
	)

	includeTimed := true
	if v := r.URL.Query().Get("include_timed"); v != "" {
		includeTimed, err = strconv.ParseBool(v)
		if err != nil {
			api.BadRequestResponse(w, r, errors.New("include_timed must be a valid bool"))
			return
		}
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodyBytes)
	err = json.NewDecoder(r.Body).Decode(&request)
	if err != nil {
		api.BadRequestResponse(w, r, err)
		return
	}
	if err := r.Body.Close(); err != nil {
		api.ServerErrorResponse(w, r, err)
		return
	}

	if err := api.validate.Struct(request); err != nil {
		vv := translateError(err, api.trans)
		vvString := []string{}
		for _, v := range vv {
			vvString = append(vvString, v.Error())
		}
		api.BadRequestResponse(w, r, fmt.Errorf("validation error: %v", vvString))
		return
	}

	res, err := api.tollService.ComputeTolls(r.Context(), request.toEdges(), request.reference(), request.Band,
		request.Spans)
	if err != nil {
		api.getStatusCode(w, r, err)
		return
	}

	headers := make(http.Header)

	if err := api.writeJSON(w, http.StatusOK, envelope{"data": NewComputeTollsResponse(res, includeTimed)}, headers); err != nil {
		api.ServerErrorResponse(w, r, err)
		return
	}
}

func (api *tollAPI) schedule(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
	resp := envelope{
		"data":     NewScheduleResponse(api.tollService.Schedule()),
		"brackets": NewBracketsResponse(toll.Brackets()),
	}
	if err := api.writeJSON(w, http.StatusOK, resp, nil); err != nil {
		api.ServerErrorResponse(w, r, err)
		return
	}
}
