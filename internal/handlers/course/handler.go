package course

import (
	"net/http"

	"manta/infras/otel"
	"manta/internal/domains/course/model"
	"manta/internal/domains/course/model/dto"
	"manta/internal/domains/course/service"
	"manta/shared/constant"
	gDto "manta/shared/dto"
	"manta/shared/validator"
	"manta/transport/http/response"

	"github.com/go-chi/chi/v5"

	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Course
	otel    otel.Otel
}

func New(service service.Course, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/courses", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreateCourse)
		routerGroup.Get("/", handler.GetCourses)
		routerGroup.Patch("/order", handler.ReplaceOrder)
		routerGroup.Get("/{id}", handler.GetCourseByID)
		routerGroup.Patch("/{id}", handler.UpdateCourse)
		routerGroup.Delete("/{id}", handler.DeleteCourse)
	})
}

// CreateCourse handles the creation of a new course.
// @Summary Create a new course
// @Description Create a new dive course with the provided details.
// @Tags Course
// @Accept json
// @Produce json
// @Param request body dto.CreateCourseRequest true "Create Course Request"
// @Success 201 {object} response.Message "Course created successfully"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/courses [post]
// @Security BearerAuth
func (handler *Handler) CreateCourse(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateCourse")
	defer scope.End()

	req := dto.CreateCourseRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	if err := handler.service.Create(ctx, req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create course")

		response.WithError(writer, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Course created successfully by user " + user)

	response.WithMessage(writer, http.StatusCreated, "Course created successfully")
}

// GetCourses retrieves all courses ordered by catalog position.
// @Summary Get all courses
// @Description Retrieve all courses with optional filtering and pagination.
// @Tags Course
// @Accept json
// @Produce json
// @Param title query string false "Filter by title"
// @Param level query string false "Filter by level"
// @Param status query string false "Filter by status"
// @Success 200 {object} dto.GetCoursesResponse "List of courses"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/courses [get]
func (handler *Handler) GetCourses(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetCourses")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(request, true)

	filterGroup := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters:  []any{},
	}

	for _, field := range []string{model.FieldTitle, model.FieldLevel, model.FieldStatus} {
		value := request.URL.Query().Get(field)
		if value == "" {
			continue
		}

		operator := gDto.FilterOperatorEq
		if field == model.FieldTitle {
			operator = gDto.FilterOperatorLike
		}

		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    field,
			Operator: operator,
			Value:    value,
			Table:    model.TableName,
		})
	}

	courses, err := handler.service.GetAll(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get courses")

		response.WithError(writer, err)

		return
	}

	scope.AddEvent("Courses retrieved successfully")

	response.WithJSON(writer, http.StatusOK, courses)
}

// GetCourseByID retrieves a course by its ID.
// @Summary Get a course by ID
// @Description Retrieve a course by its unique identifier.
// @Tags Course
// @Accept json
// @Produce json
// @Param id path string true "Course ID"
// @Success 200 {object} dto.CourseResponse "Course details"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/courses/{id} [get]
func (handler *Handler) GetCourseByID(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetCourseByID")
	defer scope.End()

	id := chi.URLParam(request, constant.RequestParamID)

	course, err := handler.service.Get(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get course by ID")

		response.WithError(writer, err)

		return
	}

	scope.AddEvent("Course retrieved successfully")

	response.WithJSON(writer, http.StatusOK, course)
}

// UpdateCourse updates an existing course by its ID.
// @Summary Update a course by ID
// @Description Update the details of an existing course.
// @Tags Course
// @Accept json
// @Produce json
// @Param id path string true "Course ID"
// @Param request body dto.UpdateCourseRequest true "Update Course Request"
// @Success 200 {object} response.Message "Course updated successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/courses/{id} [patch]
// @Security BearerAuth
func (handler *Handler) UpdateCourse(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateCourse")
	defer scope.End()

	id := chi.URLParam(request, constant.RequestParamID)

	req := dto.UpdateCourseRequest{}
	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	if err := handler.service.Update(ctx, req, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update course")

		response.WithError(writer, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Course updated successfully by user " + user)

	response.WithMessage(writer, http.StatusOK, "Course updated successfully")
}

// DeleteCourse deletes a course by its ID.
// @Summary Delete a course by ID
// @Description Delete a course using its unique identifier.
// @Tags Course
// @Accept json
// @Produce json
// @Param id path string true "Course ID"
// @Success 200 {object} response.Message "Course deleted successfully"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/courses/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteCourse(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteCourse")
	defer scope.End()

	id := chi.URLParam(request, constant.RequestParamID)

	if err := handler.service.Delete(ctx, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete course")

		response.WithError(writer, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Course deleted successfully by user " + user)

	response.WithMessage(writer, http.StatusOK, "Course deleted successfully")
}

// ReplaceOrder replaces the catalog ordering of all courses.
// @Summary Reorder the course catalog
// @Description Replace the display order of every course with the provided sequence.
// @Tags Course
// @Accept json
// @Produce json
// @Param request body dto.ReplaceOrderRequest true "Replace Order Request"
// @Success 200 {object} dto.ReplaceOrderResponse "Courses in their new order"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/courses/order [patch]
// @Security BearerAuth
func (handler *Handler) ReplaceOrder(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".ReplaceOrder")
	defer scope.End()

	req := dto.ReplaceOrderRequest{}
	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	res, err := handler.service.ReplaceOrder(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to replace course order")

		response.WithError(writer, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Course order replaced successfully by user " + user)

	response.WithJSON(writer, http.StatusOK, res)
}
