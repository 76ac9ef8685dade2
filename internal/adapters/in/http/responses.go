package http

import (
	"time"

	"freight/internal/core/application/usecases/commands"
	"freight/internal/core/application/usecases/queries"
	"freight/internal/core/domain/model/booking"
	"freight/internal/core/domain/model/trip"

	"github.com/shopspring/decimal"
)

type articleResponse struct {
	ID          string          `json:"id"`
	ArticleType string          `json:"article_type"`
	Quantity    int             `json:"quantity"`
	WeightKg    decimal.Decimal `json:"weight_kg"`
	Status      string          `json:"status"`
	OGPLID      *string         `json:"ogpl_id,omitempty"`
	LoadedAt    *time.Time      `json:"loaded_at,omitempty"`
}

type bookingResponse struct {
	ID           string            `json:"id"`
	LRNumber     string            `json:"lr_number"`
	FromBranchID string            `json:"from_branch_id"`
	ToBranchID   string            `json:"to_branch_id"`
	Status       string            `json:"status"`
	SenderRef    string            `json:"sender_ref"`
	Receiver     string            `json:"receiver"`
	TotalAmount  decimal.Decimal   `json:"total_amount"`
	CreatedAt    time.Time         `json:"created_at"`
	Articles     []articleResponse `json:"articles"`
}

func bookingToResponse(b *booking.Booking) bookingResponse {
	articles := make([]articleResponse, 0, len(b.Articles()))
	for _, article := range b.Articles() {
		resp := articleResponse{
			ID:          article.ID().String(),
			ArticleType: article.ArticleType(),
			Quantity:    article.Quantity(),
			WeightKg:    article.WeightKg(),
			Status:      article.Status().String(),
			LoadedAt:    article.LoadedAt(),
		}
		if id := article.OGPLID(); id != nil {
			s := id.String()
			resp.OGPLID = &s
		}
		articles = append(articles, resp)
	}

	return bookingResponse{
		ID:           b.ID().String(),
		LRNumber:     b.LRNumber(),
		FromBranchID: b.FromBranch().String(),
		ToBranchID:   b.ToBranch().String(),
		Status:       b.Status().String(),
		SenderRef:    b.SenderRef(),
		Receiver:     b.Receiver(),
		TotalAmount:  b.TotalAmount(),
		CreatedAt:    b.CreatedAt(),
		Articles:     articles,
	}
}

type tripResponse struct {
	ID            string    `json:"id"`
	OGPLNumber    string    `json:"ogpl_number"`
	VehicleID     string    `json:"vehicle_id"`
	FromStationID string    `json:"from_station_id"`
	ToStationID   string    `json:"to_station_id"`
	TransitDate   time.Time `json:"transit_date"`
	Status        string    `json:"status"`
	DriverName    string    `json:"driver_name"`
	DriverMobile  string    `json:"driver_mobile"`
	Remarks       string    `json:"remarks,omitempty"`
	SealNumber    string    `json:"seal_number,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

func tripToResponse(t *trip.Trip) tripResponse {
	return tripResponse{
		ID:            t.ID().String(),
		OGPLNumber:    t.OGPLNumber(),
		VehicleID:     t.VehicleID().String(),
		FromStationID: t.FromStation().String(),
		ToStationID:   t.ToStation().String(),
		TransitDate:   t.TransitDate(),
		Status:        t.Status().String(),
		DriverName:    t.Driver().PrimaryName,
		DriverMobile:  t.Driver().PrimaryMobile,
		Remarks:       t.Remarks(),
		SealNumber:    t.SealNumber(),
		CreatedAt:     t.CreatedAt(),
	}
}

type tripListItemResponse struct {
	ID             string          `json:"id"`
	OGPLNumber     string          `json:"ogpl_number"`
	VehicleID      string          `json:"vehicle_id"`
	Registration   string          `json:"registration"`
	FromStation    string          `json:"from_station"`
	ToStation      string          `json:"to_station"`
	TransitDate    time.Time       `json:"transit_date"`
	Status         string          `json:"status"`
	BookingCount   int             `json:"booking_count"`
	ArticleCount   int             `json:"article_count"`
	LoadedWeightKg decimal.Decimal `json:"loaded_weight_kg"`
}

func tripListToResponse(rows []queries.GetTripsQueryResponse) []tripListItemResponse {
	out := make([]tripListItemResponse, 0, len(rows))
	for _, row := range rows {
		out = append(out, tripListItemResponse{
			ID:             row.ID.String(),
			OGPLNumber:     row.OGPLNumber,
			VehicleID:      row.VehicleID.String(),
			Registration:   row.Registration,
			FromStation:    row.FromStation,
			ToStation:      row.ToStation,
			TransitDate:    row.TransitDate,
			Status:         row.Status,
			BookingCount:   row.BookingCount,
			ArticleCount:   row.ArticleCount,
			LoadedWeightKg: row.LoadedWeightKg,
		})
	}
	return out
}

type loadResultResponse struct {
	LoadedArticles int             `json:"loaded_articles"`
	LoadedBookings int             `json:"loaded_bookings"`
	TotalWeightKg  decimal.Decimal `json:"total_weight_kg"`
	Warnings       []string        `json:"warnings,omitempty"`
}

func loadResultToResponse(result *commands.LoadResult) loadResultResponse {
	return loadResultResponse{
		LoadedArticles: result.LoadedArticles,
		LoadedBookings: result.LoadedBookings,
		TotalWeightKg:  result.TotalWeightKg,
		Warnings:       result.Warnings,
	}
}

type unloadResultResponse struct {
	UnloadedArticles int `json:"unloaded_articles"`
	UnloadedBookings int `json:"unloaded_bookings"`
	RevertedBookings int `json:"reverted_bookings"`
}

func unloadResultToResponse(result *commands.UnloadResult) unloadResultResponse {
	return unloadResultResponse{
		UnloadedArticles: result.UnloadedArticles,
		UnloadedBookings: result.UnloadedBookings,
		RevertedBookings: result.RevertedBookings,
	}
}

type tripSummaryResponse struct {
	ID                 string          `json:"id"`
	OGPLNumber         string          `json:"ogpl_number"`
	Status             string          `json:"status"`
	Registration       string          `json:"registration"`
	FromStation        string          `json:"from_station"`
	ToStation          string          `json:"to_station"`
	TransitDate        time.Time       `json:"transit_date"`
	DriverName         string          `json:"driver_name"`
	DriverMobile       string          `json:"driver_mobile"`
	SealNumber         string          `json:"seal_number,omitempty"`
	BookingCount       int             `json:"booking_count"`
	LoadedArticles     int             `json:"loaded_articles"`
	PendingArticles    int             `json:"pending_articles"`
	ProgressPercent    float64         `json:"progress_percent"`
	LoadedWeightKg     decimal.Decimal `json:"loaded_weight_kg"`
	CapacityKg         decimal.Decimal `json:"capacity_kg"`
	UtilizationPercent float64         `json:"utilization_percent"`
	OverCapacity       bool            `json:"over_capacity"`
	CapacityWarnings   []string        `json:"capacity_warnings,omitempty"`
	TotalValue         decimal.Decimal `json:"total_value"`
}

func summaryToResponse(summary queries.GetTripSummaryQueryResponse) tripSummaryResponse {
	return tripSummaryResponse{
		ID:                 summary.ID.String(),
		OGPLNumber:         summary.OGPLNumber,
		Status:             summary.Status,
		Registration:       summary.Registration,
		FromStation:        summary.FromStation,
		ToStation:          summary.ToStation,
		TransitDate:        summary.TransitDate,
		DriverName:         summary.DriverName,
		DriverMobile:       summary.DriverMobile,
		SealNumber:         summary.SealNumber,
		BookingCount:       summary.BookingCount,
		LoadedArticles:     summary.LoadedArticles,
		PendingArticles:    summary.PendingArticles,
		ProgressPercent:    summary.ProgressPercent,
		LoadedWeightKg:     summary.LoadedWeightKg,
		CapacityKg:         summary.CapacityKg,
		UtilizationPercent: summary.UtilizationPercent,
		OverCapacity:       summary.OverCapacity,
		CapacityWarnings:   summary.CapacityWarnings,
		TotalValue:         summary.TotalValue,
	}
}
