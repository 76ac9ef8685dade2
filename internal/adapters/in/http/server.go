// Package http exposes the workflow over REST. Handlers translate requests
// into guarded commands and queries, and map domain errors onto the HTTP
// surface; no business rule lives here.
package http

import (
	"net/http"
	"time"

	"freight/internal/core/application/usecases/commands"
	"freight/internal/core/application/usecases/queries"
	"freight/internal/core/domain/model/booking"
	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/trip"
	"freight/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	// Command handlers
	createBookingHandler       commands.CreateBookingCommandHandler
	createTripHandler          commands.CreateTripCommandHandler
	loadBookingsHandler        commands.LoadBookingsCommandHandler
	unloadBookingsHandler      commands.UnloadBookingsCommandHandler
	changeBookingStatusHandler commands.ChangeBookingStatusCommandHandler
	changeTripStatusHandler    commands.ChangeTripStatusCommandHandler

	// Query handlers
	getTripsHandler       queries.GetTripsQueryHandler
	getTripSummaryHandler queries.GetTripSummaryQueryHandler
}

// NewServer creates an HTTP server with the required command and query handlers.
func NewServer(
	createBookingHandler commands.CreateBookingCommandHandler,
	createTripHandler commands.CreateTripCommandHandler,
	loadBookingsHandler commands.LoadBookingsCommandHandler,
	unloadBookingsHandler commands.UnloadBookingsCommandHandler,
	changeBookingStatusHandler commands.ChangeBookingStatusCommandHandler,
	changeTripStatusHandler commands.ChangeTripStatusCommandHandler,
	getTripsHandler queries.GetTripsQueryHandler,
	getTripSummaryHandler queries.GetTripSummaryQueryHandler,
) *Server {
	return &Server{
		createBookingHandler:       createBookingHandler,
		createTripHandler:          createTripHandler,
		loadBookingsHandler:        loadBookingsHandler,
		unloadBookingsHandler:      unloadBookingsHandler,
		changeBookingStatusHandler: changeBookingStatusHandler,
		changeTripStatusHandler:    changeTripStatusHandler,
		getTripsHandler:            getTripsHandler,
		getTripSummaryHandler:      getTripSummaryHandler,
	}
}

// RegisterRoutes attaches every route to the echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", s.Health)

	e.POST("/api/bookings", s.CreateBooking)
	e.PATCH("/api/bookings/:id/status", s.ChangeBookingStatus)

	e.GET("/api/loading/ogpls", s.GetTrips)
	e.POST("/api/loading/ogpls", s.CreateTrip)
	e.POST("/api/loading/ogpls/:id/load-bookings", s.LoadBookings)
	e.DELETE("/api/loading/ogpls/:id/unload-bookings", s.UnloadBookings)
	e.PATCH("/api/loading/ogpls/:id/status", s.ChangeTripStatus)
	e.GET("/api/loading/ogpls/:id/summary", s.GetTripSummary)
}

// Health handles GET /health.
func (s *Server) Health(ctx echo.Context) error {
	return respond(ctx, http.StatusOK, map[string]string{"status": "ok"}, "")
}

type articleRequest struct {
	ArticleType string          `json:"article_type"`
	Quantity    int             `json:"quantity"`
	WeightKg    decimal.Decimal `json:"weight_kg"`
}

type createBookingRequest struct {
	FromBranchID string           `json:"from_branch_id"`
	ToBranchID   string           `json:"to_branch_id"`
	SenderRef    string           `json:"sender_ref"`
	Receiver     string           `json:"receiver"`
	TotalAmount  decimal.Decimal  `json:"total_amount"`
	IsQuotation  bool             `json:"is_quotation"`
	Articles     []articleRequest `json:"articles"`
}

// CreateBooking handles POST /api/bookings.
func (s *Server) CreateBooking(ctx echo.Context) error {
	actor, err := actorFromRequest(ctx)
	if err != nil {
		return respondError(ctx, err)
	}

	var req createBookingRequest
	if err = ctx.Bind(&req); err != nil {
		return respondError(ctx, errs.NewValueIsInvalidErrorWithCause("request body", err))
	}

	fromBranch, err := parseUUID("from_branch_id", req.FromBranchID)
	if err != nil {
		return respondError(ctx, err)
	}
	toBranch, err := parseUUID("to_branch_id", req.ToBranchID)
	if err != nil {
		return respondError(ctx, err)
	}

	articles := make([]commands.ArticleInput, 0, len(req.Articles))
	for _, a := range req.Articles {
		articles = append(articles, commands.ArticleInput{
			ArticleType: a.ArticleType,
			Quantity:    a.Quantity,
			WeightKg:    a.WeightKg,
		})
	}

	cmd, err := commands.NewCreateBookingCommand(
		kernel.NewUUID(),
		fromBranch,
		toBranch,
		req.SenderRef,
		req.Receiver,
		req.TotalAmount,
		req.IsQuotation,
		articles,
		actor,
	)
	if err != nil {
		return respondError(ctx, err)
	}

	b, err := s.createBookingHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return respondError(ctx, err)
	}

	return respond(ctx, http.StatusCreated, bookingToResponse(b), "booking created")
}

type changeBookingStatusRequest struct {
	Status          string `json:"status"`
	WorkflowContext string `json:"workflow_context"`
}

// ChangeBookingStatus handles PATCH /api/bookings/:id/status.
func (s *Server) ChangeBookingStatus(ctx echo.Context) error {
	actor, err := actorFromRequest(ctx)
	if err != nil {
		return respondError(ctx, err)
	}

	bookingID, err := parseUUID("id", ctx.Param("id"))
	if err != nil {
		return respondError(ctx, err)
	}

	var req changeBookingStatusRequest
	if err = ctx.Bind(&req); err != nil {
		return respondError(ctx, errs.NewValueIsInvalidErrorWithCause("request body", err))
	}

	toStatus, err := booking.StatusFromString(req.Status)
	if err != nil {
		return respondError(ctx, err)
	}

	// An unrecognized context is carried as unknown so the state machine can
	// report the mismatch against the required context.
	wctx := booking.ContextFromString(req.WorkflowContext)

	cmd, err := commands.NewChangeBookingStatusCommand(bookingID, toStatus, wctx, actor)
	if err != nil {
		return respondError(ctx, err)
	}

	b, err := s.changeBookingStatusHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return respondError(ctx, err)
	}

	return respond(ctx, http.StatusOK, bookingToResponse(b), "status changed")
}

type createTripRequest struct {
	VehicleID             string `json:"vehicle_id"`
	FromStationID         string `json:"from_station_id"`
	ToStationID           string `json:"to_station_id"`
	TransitDate           string `json:"transit_date"`
	DriverPrimaryName     string `json:"driver_primary_name"`
	DriverPrimaryMobile   string `json:"driver_primary_mobile"`
	DriverSecondaryName   string `json:"driver_secondary_name"`
	DriverSecondaryMobile string `json:"driver_secondary_mobile"`
	Remarks               string `json:"remarks"`
	SealNumber            string `json:"seal_number"`
}

// CreateTrip handles POST /api/loading/ogpls.
func (s *Server) CreateTrip(ctx echo.Context) error {
	actor, err := actorFromRequest(ctx)
	if err != nil {
		return respondError(ctx, err)
	}

	var req createTripRequest
	if err = ctx.Bind(&req); err != nil {
		return respondError(ctx, errs.NewValueIsInvalidErrorWithCause("request body", err))
	}

	vehicleID, err := parseUUID("vehicle_id", req.VehicleID)
	if err != nil {
		return respondError(ctx, err)
	}
	fromStation, err := parseUUID("from_station_id", req.FromStationID)
	if err != nil {
		return respondError(ctx, err)
	}
	toStation, err := parseUUID("to_station_id", req.ToStationID)
	if err != nil {
		return respondError(ctx, err)
	}

	transitDate, err := time.Parse("2006-01-02", req.TransitDate)
	if err != nil {
		return respondError(ctx, errs.NewValueIsInvalidErrorWithCause("transit_date", err))
	}

	cmd, err := commands.NewCreateTripCommand(
		kernel.NewUUID(),
		vehicleID,
		fromStation,
		toStation,
		transitDate,
		trip.DriverInfo{
			PrimaryName:     req.DriverPrimaryName,
			PrimaryMobile:   req.DriverPrimaryMobile,
			SecondaryName:   req.DriverSecondaryName,
			SecondaryMobile: req.DriverSecondaryMobile,
		},
		req.Remarks,
		req.SealNumber,
		actor,
	)
	if err != nil {
		return respondError(ctx, err)
	}

	t, err := s.createTripHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return respondError(ctx, err)
	}

	return respond(ctx, http.StatusCreated, tripToResponse(t), "trip created")
}

type loadBookingsRequest struct {
	BookingIDs []string `json:"booking_ids"`
	Notes      string   `json:"notes"`
	// VehicleValidation defaults to true when the field is absent; only an
	// explicit false bypasses the hard capacity check.
	VehicleValidation *bool `json:"vehicle_validation"`
}

// LoadBookings handles POST /api/loading/ogpls/:id/load-bookings.
func (s *Server) LoadBookings(ctx echo.Context) error {
	actor, err := actorFromRequest(ctx)
	if err != nil {
		return respondError(ctx, err)
	}

	tripID, err := parseUUID("id", ctx.Param("id"))
	if err != nil {
		return respondError(ctx, err)
	}

	var req loadBookingsRequest
	if err = ctx.Bind(&req); err != nil {
		return respondError(ctx, errs.NewValueIsInvalidErrorWithCause("request body", err))
	}

	bookingIDs, err := parseUUIDs("booking_ids", req.BookingIDs)
	if err != nil {
		return respondError(ctx, err)
	}

	validateCapacity := req.VehicleValidation == nil || *req.VehicleValidation

	cmd, err := commands.NewLoadBookingsCommand(tripID, bookingIDs, req.Notes, validateCapacity, actor)
	if err != nil {
		return respondError(ctx, err)
	}

	result, err := s.loadBookingsHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return respondError(ctx, err)
	}

	return respond(ctx, http.StatusOK, loadResultToResponse(result), "bookings loaded")
}

type unloadBookingsRequest struct {
	BookingIDs []string `json:"booking_ids"`
	ArticleIDs []string `json:"article_ids"`
}

// UnloadBookings handles DELETE /api/loading/ogpls/:id/unload-bookings.
func (s *Server) UnloadBookings(ctx echo.Context) error {
	actor, err := actorFromRequest(ctx)
	if err != nil {
		return respondError(ctx, err)
	}

	tripID, err := parseUUID("id", ctx.Param("id"))
	if err != nil {
		return respondError(ctx, err)
	}

	var req unloadBookingsRequest
	if err = ctx.Bind(&req); err != nil {
		return respondError(ctx, errs.NewValueIsInvalidErrorWithCause("request body", err))
	}

	bookingIDs, err := parseUUIDs("booking_ids", req.BookingIDs)
	if err != nil {
		return respondError(ctx, err)
	}
	articleIDs, err := parseUUIDs("article_ids", req.ArticleIDs)
	if err != nil {
		return respondError(ctx, err)
	}

	cmd, err := commands.NewUnloadBookingsCommand(tripID, bookingIDs, articleIDs, actor)
	if err != nil {
		return respondError(ctx, err)
	}

	result, err := s.unloadBookingsHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return respondError(ctx, err)
	}

	return respond(ctx, http.StatusOK, unloadResultToResponse(result), "bookings unloaded")
}

type changeTripStatusRequest struct {
	Action string `json:"action"`
}

// ChangeTripStatus handles PATCH /api/loading/ogpls/:id/status.
func (s *Server) ChangeTripStatus(ctx echo.Context) error {
	actor, err := actorFromRequest(ctx)
	if err != nil {
		return respondError(ctx, err)
	}

	tripID, err := parseUUID("id", ctx.Param("id"))
	if err != nil {
		return respondError(ctx, err)
	}

	var req changeTripStatusRequest
	if err = ctx.Bind(&req); err != nil {
		return respondError(ctx, errs.NewValueIsInvalidErrorWithCause("request body", err))
	}

	action, err := commands.TripActionFromString(req.Action)
	if err != nil {
		return respondError(ctx, err)
	}

	cmd, err := commands.NewChangeTripStatusCommand(tripID, action, actor)
	if err != nil {
		return respondError(ctx, err)
	}

	t, err := s.changeTripStatusHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return respondError(ctx, err)
	}

	return respond(ctx, http.StatusOK, tripToResponse(t), "trip status changed")
}

// GetTrips handles GET /api/loading/ogpls.
func (s *Server) GetTrips(ctx echo.Context) error {
	actor, err := actorFromRequest(ctx)
	if err != nil {
		return respondError(ctx, err)
	}

	var status *trip.Status
	if raw := ctx.QueryParam("status"); raw != "" {
		parsed, parseErr := trip.StatusFromString(raw)
		if parseErr != nil {
			return respondError(ctx, parseErr)
		}
		status = &parsed
	}

	var vehicleID *kernel.UUID
	if raw := ctx.QueryParam("vehicle_id"); raw != "" {
		parsed, parseErr := parseUUID("vehicle_id", raw)
		if parseErr != nil {
			return respondError(ctx, parseErr)
		}
		vehicleID = &parsed
	}

	dateFrom, err := optionalDate(ctx.QueryParam("date_from"), "date_from")
	if err != nil {
		return respondError(ctx, err)
	}
	dateTo, err := optionalDate(ctx.QueryParam("date_to"), "date_to")
	if err != nil {
		return respondError(ctx, err)
	}

	query, err := queries.NewGetTripsQuery(actor.OrgID(), status, vehicleID, dateFrom, dateTo)
	if err != nil {
		return respondError(ctx, err)
	}

	trips, err := s.getTripsHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return respondError(ctx, err)
	}

	return respond(ctx, http.StatusOK, tripListToResponse(trips), "")
}

// GetTripSummary handles GET /api/loading/ogpls/:id/summary.
func (s *Server) GetTripSummary(ctx echo.Context) error {
	actor, err := actorFromRequest(ctx)
	if err != nil {
		return respondError(ctx, err)
	}

	tripID, err := parseUUID("id", ctx.Param("id"))
	if err != nil {
		return respondError(ctx, err)
	}

	query, err := queries.NewGetTripSummaryQuery(actor.OrgID(), tripID)
	if err != nil {
		return respondError(ctx, err)
	}

	summary, err := s.getTripSummaryHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return respondError(ctx, err)
	}

	return respond(ctx, http.StatusOK, summaryToResponse(summary), "")
}

func parseUUID(param, raw string) (kernel.UUID, error) {
	if raw == "" {
		return kernel.UUID{}, errs.NewValueIsRequiredError(param)
	}
	id, err := kernel.UUIDFromString(raw)
	if err != nil {
		return kernel.UUID{}, errs.NewValueIsInvalidErrorWithCause(param, err)
	}
	return id, nil
}

func parseUUIDs(param string, raw []string) ([]kernel.UUID, error) {
	ids := make([]kernel.UUID, 0, len(raw))
	for _, s := range raw {
		id, err := parseUUID(param, s)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func optionalDate(raw, param string) (*time.Time, error) {
	if raw == "" {
		return nil, nil
	}
	parsed, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return nil, errs.NewValueIsInvalidErrorWithCause(param, err)
	}
	return &parsed, nil
}
