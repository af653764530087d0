package trip

import (
	"net/http"

	"manta/infras/otel"
	"manta/internal/domains/trip/model"
	"manta/internal/domains/trip/model/dto"
	"manta/internal/domains/trip/service"
	"manta/shared/constant"
	gDto "manta/shared/dto"
	"manta/shared/validator"
	"manta/transport/http/response"

	"github.com/go-chi/chi/v5"

	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Trip
	otel    otel.Otel
}

func New(service service.Trip, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/trips", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreateTrip)
		routerGroup.Get("/", handler.GetTrips)
		routerGroup.Get("/{id}", handler.GetTripByID)
		routerGroup.Patch("/{id}", handler.UpdateTrip)
		routerGroup.Delete("/{id}", handler.DeleteTrip)
	})
}

// CreateTrip handles the creation of a new dive trip.
// @Summary Create a new trip
// @Description Create a new dive trip with the provided details.
// @Tags Trip
// @Accept json
// @Produce json
// @Param request body dto.CreateTripRequest true "Create Trip Request"
// @Success 201 {object} response.Message "Trip created successfully"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/trips [post]
// @Security BearerAuth
func (handler *Handler) CreateTrip(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateTrip")
	defer scope.End()

	req := dto.CreateTripRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	if err := handler.service.Create(ctx, req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create trip")

		response.WithError(writer, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Trip created successfully by user " + user)

	response.WithMessage(writer, http.StatusCreated, "Trip created successfully")
}

// GetTrips retrieves all trips based on query parameters.
// @Summary Get all trips
// @Description Retrieve all trips with optional filtering and pagination.
// @Tags Trip
// @Accept json
// @Produce json
// @Param title query string false "Filter by title"
// @Param location query string false "Filter by location"
// @Param status query string false "Filter by status"
// @Success 200 {object} dto.GetTripsResponse "List of trips"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/trips [get]
func (handler *Handler) GetTrips(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetTrips")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(request, true)

	filterGroup := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters:  []any{},
	}

	for _, field := range []string{model.FieldTitle, model.FieldLocation, model.FieldStatus} {
		value := request.URL.Query().Get(field)
		if value == "" {
			continue
		}

		operator := gDto.FilterOperatorEq
		if field != model.FieldStatus {
			operator = gDto.FilterOperatorLike
		}

		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    field,
			Operator: operator,
			Value:    value,
			Table:    model.TableName,
		})
	}

	trips, err := handler.service.GetAll(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get trips")

		response.WithError(writer, err)

		return
	}

	scope.AddEvent("Trips retrieved successfully")

	response.WithJSON(writer, http.StatusOK, trips)
}

// GetTripByID retrieves a trip by its ID.
// @Summary Get a trip by ID
// @Description Retrieve a trip by its unique identifier.
// @Tags Trip
// @Accept json
// @Produce json
// @Param id path string true "Trip ID"
// @Success 200 {object} dto.TripResponse "Trip details"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/trips/{id} [get]
func (handler *Handler) GetTripByID(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetTripByID")
	defer scope.End()

	id := chi.URLParam(request, constant.RequestParamID)

	trip, err := handler.service.Get(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get trip by ID")

		response.WithError(writer, err)

		return
	}

	scope.AddEvent("Trip retrieved successfully")

	response.WithJSON(writer, http.StatusOK, trip)
}

// UpdateTrip updates an existing trip by its ID.
// @Summary Update a trip by ID
// @Description Update the details of an existing trip.
// @Tags Trip
// @Accept json
// @Produce json
// @Param id path string true "Trip ID"
// @Param request body dto.UpdateTripRequest true "Update Trip Request"
// @Success 200 {object} response.Message "Trip updated successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/trips/{id} [patch]
// @Security BearerAuth
func (handler *Handler) UpdateTrip(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateTrip")
	defer scope.End()

	id := chi.URLParam(request, constant.RequestParamID)

	req := dto.UpdateTripRequest{}
	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	if err := handler.service.Update(ctx, req, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update trip")

		response.WithError(writer, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Trip updated successfully by user " + user)

	response.WithMessage(writer, http.StatusOK, "Trip updated successfully")
}

// DeleteTrip deletes a trip by its ID.
// @Summary Delete a trip by ID
// @Description Delete a trip using its unique identifier.
// @Tags Trip
// @Accept json
// @Produce json
// @Param id path string true "Trip ID"
// @Success 200 {object} response.Message "Trip deleted successfully"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/trips/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteTrip(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteTrip")
	defer scope.End()

	id := chi.URLParam(request, constant.RequestParamID)

	if err := handler.service.Delete(ctx, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete trip")

		response.WithError(writer, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Trip deleted successfully by user " + user)

	response.WithMessage(writer, http.StatusOK, "Trip deleted successfully")
}
