package rental

import (
	"net/http"

	"manta/infras/otel"
	"manta/internal/domains/rental/model"
	"manta/internal/domains/rental/model/dto"
	"manta/internal/domains/rental/service"
	"manta/shared/constant"
	gDto "manta/shared/dto"
	"manta/shared/validator"
	"manta/transport/http/response"

	"github.com/go-chi/chi/v5"

	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Rental
	otel    otel.Otel
}

func New(service service.Rental, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/rentals", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreateRental)
		routerGroup.Get("/", handler.GetRentals)
		routerGroup.Get("/{id}", handler.GetRentalByID)
		routerGroup.Patch("/{id}", handler.UpdateRental)
		routerGroup.Delete("/{id}", handler.DeleteRental)
	})

	router.Route("/rental-bookings", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreateRentalBooking)
		routerGroup.Get("/", handler.GetRentalBookings)
		routerGroup.Get("/user/{userId}", handler.GetRentalBookingsByUser)
		routerGroup.Patch("/{bookingId}/complete", handler.CompleteRentalBooking)
	})
}

// CreateRental handles the creation of a new rental asset.
// @Summary Create a new rental
// @Description Register a new piece of rentable dive equipment.
// @Tags Rental
// @Accept json
// @Produce json
// @Param request body dto.CreateRentalRequest true "Create Rental Request"
// @Success 201 {object} response.Message "Rental created successfully"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/rentals [post]
// @Security BearerAuth
func (handler *Handler) CreateRental(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateRental")
	defer scope.End()

	req := dto.CreateRentalRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	if err := handler.service.Create(ctx, req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create rental")

		response.WithError(writer, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Rental created successfully by user " + user)

	response.WithMessage(writer, http.StatusCreated, "Rental created successfully")
}

// GetRentals retrieves all rentals based on query parameters.
// @Summary Get all rentals
// @Description Retrieve all rental assets with optional filtering and pagination.
// @Tags Rental
// @Accept json
// @Produce json
// @Param title query string false "Filter by title"
// @Param status query string false "Filter by status"
// @Success 200 {object} dto.GetRentalsResponse "List of rentals"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/rentals [get]
func (handler *Handler) GetRentals(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetRentals")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(request, true)

	filterGroup := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters:  []any{},
	}

	if title := request.URL.Query().Get(model.FieldTitle); title != "" {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldTitle,
			Operator: gDto.FilterOperatorLike,
			Value:    title,
			Table:    model.TableName,
		})
	}

	if status := request.URL.Query().Get(model.FieldStatus); status != "" {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldStatus,
			Operator: gDto.FilterOperatorEq,
			Value:    status,
			Table:    model.TableName,
		})
	}

	rentals, err := handler.service.GetAll(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get rentals")

		response.WithError(writer, err)

		return
	}

	scope.AddEvent("Rentals retrieved successfully")

	response.WithJSON(writer, http.StatusOK, rentals)
}

// GetRentalByID retrieves a rental by its ID.
// @Summary Get a rental by ID
// @Description Retrieve a rental asset by its unique identifier.
// @Tags Rental
// @Accept json
// @Produce json
// @Param id path string true "Rental ID"
// @Success 200 {object} dto.RentalResponse "Rental details"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/rentals/{id} [get]
func (handler *Handler) GetRentalByID(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetRentalByID")
	defer scope.End()

	id := chi.URLParam(request, constant.RequestParamID)

	rental, err := handler.service.Get(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get rental by ID")

		response.WithError(writer, err)

		return
	}

	scope.AddEvent("Rental retrieved successfully")

	response.WithJSON(writer, http.StatusOK, rental)
}

// UpdateRental updates an existing rental by its ID.
// @Summary Update a rental by ID
// @Description Update the details of an existing rental asset.
// @Tags Rental
// @Accept json
// @Produce json
// @Param id path string true "Rental ID"
// @Param request body dto.UpdateRentalRequest true "Update Rental Request"
// @Success 200 {object} response.Message "Rental updated successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/rentals/{id} [patch]
// @Security BearerAuth
func (handler *Handler) UpdateRental(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateRental")
	defer scope.End()

	id := chi.URLParam(request, constant.RequestParamID)

	req := dto.UpdateRentalRequest{}
	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	if err := handler.service.Update(ctx, req, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update rental")

		response.WithError(writer, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Rental updated successfully by user " + user)

	response.WithMessage(writer, http.StatusOK, "Rental updated successfully")
}

// DeleteRental deletes a rental by its ID.
// @Summary Delete a rental by ID
// @Description Delete a rental asset using its unique identifier.
// @Tags Rental
// @Accept json
// @Produce json
// @Param id path string true "Rental ID"
// @Success 200 {object} response.Message "Rental deleted successfully"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/rentals/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteRental(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteRental")
	defer scope.End()

	id := chi.URLParam(request, constant.RequestParamID)

	if err := handler.service.Delete(ctx, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete rental")

		response.WithError(writer, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Rental deleted successfully by user " + user)

	response.WithMessage(writer, http.StatusOK, "Rental deleted successfully")
}

// CreateRentalBooking reserves a rental behind a payment intent.
// @Summary Book a rental
// @Description Reserve an available rental and create the payment intent for it.
// @Tags RentalBooking
// @Accept json
// @Produce json
// @Param request body dto.CreateRentalBookingRequest true "Create Rental Booking Request"
// @Success 201 {object} dto.CreateRentalBookingResponse "Client secret and booking id"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 502 {object} response.Error
// @Router /v1/rental-bookings [post]
// @Security BearerAuth
func (handler *Handler) CreateRentalBooking(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateRentalBooking")
	defer scope.End()

	req := dto.CreateRentalBookingRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	res, err := handler.service.CreateBooking(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create rental booking")

		response.WithError(writer, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Rental booking created successfully by user " + user)

	response.WithJSON(writer, http.StatusCreated, res)
}

// GetRentalBookings retrieves all rental bookings.
// @Summary Get all rental bookings
// @Description Retrieve all rental bookings with optional filtering and pagination.
// @Tags RentalBooking
// @Accept json
// @Produce json
// @Param payment_status query string false "Filter by payment status"
// @Param status query string false "Filter by status"
// @Success 200 {object} dto.GetRentalBookingsResponse "List of rental bookings"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/rental-bookings [get]
// @Security BearerAuth
func (handler *Handler) GetRentalBookings(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetRentalBookings")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(request, true)

	filterGroup := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters:  []any{},
	}

	for _, field := range []string{model.FieldBookingPaymentStatus, model.FieldStatus} {
		value := request.URL.Query().Get(field)
		if value == "" {
			continue
		}

		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    field,
			Operator: gDto.FilterOperatorEq,
			Value:    value,
			Table:    model.BookingTableName,
		})
	}

	bookings, err := handler.service.GetBookings(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get rental bookings")

		response.WithError(writer, err)

		return
	}

	scope.AddEvent("Rental bookings retrieved successfully")

	response.WithJSON(writer, http.StatusOK, bookings)
}

// GetRentalBookingsByUser retrieves rental bookings for one user.
// @Summary Get rental bookings by user
// @Description Retrieve all rental bookings made by the given user.
// @Tags RentalBooking
// @Accept json
// @Produce json
// @Param userId path string true "User ID"
// @Success 200 {object} dto.GetRentalBookingsResponse "List of rental bookings"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/rental-bookings/user/{userId} [get]
// @Security BearerAuth
func (handler *Handler) GetRentalBookingsByUser(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetRentalBookingsByUser")
	defer scope.End()

	userID := chi.URLParam(request, constant.RequestParamUserID)

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(request, true)

	bookings, err := handler.service.GetBookingsByUser(ctx, userID, queryParams)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get rental bookings by user")

		response.WithError(writer, err)

		return
	}

	scope.AddEvent("User rental bookings retrieved successfully")

	response.WithJSON(writer, http.StatusOK, bookings)
}

// CompleteRentalBooking marks a rental booking as returned.
// @Summary Complete a rental booking
// @Description Close an active rental booking and release the asset.
// @Tags RentalBooking
// @Accept json
// @Produce json
// @Param bookingId path string true "Rental Booking ID"
// @Success 200 {object} response.Message "Rental booking completed successfully"
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/rental-bookings/{bookingId}/complete [patch]
// @Security BearerAuth
func (handler *Handler) CompleteRentalBooking(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CompleteRentalBooking")
	defer scope.End()

	bookingID := chi.URLParam(request, constant.RequestParamBookingID)

	if err := handler.service.CompleteBooking(ctx, bookingID); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to complete rental booking")

		response.WithError(writer, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Rental booking completed successfully by user " + user)

	response.WithMessage(writer, http.StatusOK, "Rental booking completed successfully")
}
