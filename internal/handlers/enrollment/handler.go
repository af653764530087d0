package enrollment

import (
	"net/http"

	"manta/infras/otel"
	"manta/internal/domains/enrollment/model"
	"manta/internal/domains/enrollment/model/dto"
	"manta/internal/domains/enrollment/service"
	"manta/shared/constant"
	gDto "manta/shared/dto"
	"manta/shared/validator"
	"manta/transport/http/response"

	"github.com/go-chi/chi/v5"

	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Enrollment
	otel    otel.Otel
}

func New(service service.Enrollment, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/enrollments", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreateEnrollment)
		routerGroup.Get("/", handler.GetEnrollments)
		routerGroup.Get("/user/{userId}", handler.GetEnrollmentsByUser)
		routerGroup.Delete("/{id}", handler.DeleteEnrollment)
	})
}

// CreateEnrollment registers a paid course enrollment.
// @Summary Create a new enrollment
// @Description Register a user in a course after client-side payment confirmation.
// @Tags Enrollment
// @Accept json
// @Produce json
// @Param request body dto.CreateEnrollmentRequest true "Create Enrollment Request"
// @Success 201 {object} dto.EnrollmentResponse "Created enrollment"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/enrollments [post]
// @Security BearerAuth
func (handler *Handler) CreateEnrollment(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateEnrollment")
	defer scope.End()

	req := dto.CreateEnrollmentRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	res, err := handler.service.Create(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create enrollment")

		response.WithError(writer, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Enrollment created successfully by user " + user)

	response.WithJSON(writer, http.StatusCreated, res)
}

// GetEnrollments retrieves all enrollments.
// @Summary Get all enrollments
// @Description Retrieve all enrollments with optional filtering and pagination.
// @Tags Enrollment
// @Accept json
// @Produce json
// @Param course_id query string false "Filter by course"
// @Success 200 {object} dto.GetEnrollmentsResponse "List of enrollments"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/enrollments [get]
// @Security BearerAuth
func (handler *Handler) GetEnrollments(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetEnrollments")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(request, true)

	filterGroup := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters:  []any{},
	}

	if courseID := request.URL.Query().Get(model.FieldCourseID); courseID != "" {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldCourseID,
			Operator: gDto.FilterOperatorEq,
			Value:    courseID,
			Table:    model.TableName,
		})
	}

	enrollments, err := handler.service.GetAll(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get enrollments")

		response.WithError(writer, err)

		return
	}

	scope.AddEvent("Enrollments retrieved successfully")

	response.WithJSON(writer, http.StatusOK, enrollments)
}

// GetEnrollmentsByUser retrieves enrollments for one user.
// @Summary Get enrollments by user
// @Description Retrieve all enrollments belonging to the given user.
// @Tags Enrollment
// @Accept json
// @Produce json
// @Param userId path string true "User ID"
// @Success 200 {object} dto.GetEnrollmentsResponse "List of enrollments"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/enrollments/user/{userId} [get]
// @Security BearerAuth
func (handler *Handler) GetEnrollmentsByUser(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetEnrollmentsByUser")
	defer scope.End()

	userID := chi.URLParam(request, constant.RequestParamUserID)

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(request, true)

	enrollments, err := handler.service.GetByUser(ctx, userID, queryParams)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get enrollments by user")

		response.WithError(writer, err)

		return
	}

	scope.AddEvent("User enrollments retrieved successfully")

	response.WithJSON(writer, http.StatusOK, enrollments)
}

// DeleteEnrollment deletes an enrollment by its ID.
// @Summary Delete an enrollment by ID
// @Description Remove an enrollment record. Administrative use only.
// @Tags Enrollment
// @Accept json
// @Produce json
// @Param id path string true "Enrollment ID"
// @Success 200 {object} response.Message "Enrollment deleted successfully"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/enrollments/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteEnrollment(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteEnrollment")
	defer scope.End()

	id := chi.URLParam(request, constant.RequestParamID)

	if err := handler.service.Delete(ctx, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete enrollment")

		response.WithError(writer, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Enrollment deleted successfully by user " + user)

	response.WithMessage(writer, http.StatusOK, "Enrollment deleted successfully")
}
