package cmd

import (
	"freight/internal/adapters/out/postgres"
	"freight/internal/adapters/out/postgres/branchrepo"
	"freight/internal/adapters/out/postgres/sequencerepo"
	"freight/internal/core/application/numbering"
	"freight/internal/core/application/usecases/commands"
	"freight/internal/core/application/usecases/queries"
	"freight/internal/core/domain/services"

	"gorm.io/gorm"
)

type CompositionRoot struct {
	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory
	numbers    *numbering.Generator
	capacity   services.CapacityValidator
}

func NewCompositionRoot(config Config, gormDB *gorm.DB) (CompositionRoot, error) {
	format, err := numbering.FormatFromString(config.LRNumberFormat)
	if err != nil {
		return CompositionRoot{}, err
	}

	numbers, err := numbering.NewGenerator(
		sequencerepo.NewGormSequenceRepository(gormDB),
		branchrepo.NewGormBranchRepository(gormDB),
		format,
		numbering.NewSystemClock(),
	)
	if err != nil {
		return CompositionRoot{}, err
	}

	return CompositionRoot{
		gormDB:     gormDB,
		uowFactory: *postgres.NewGormUnitOfWorkFactory(gormDB),
		numbers:    numbers,
		capacity:   services.NewCapacityValidator(config.CapacityWarnPercent),
	}, nil
}

func (c *CompositionRoot) CreateCreateBookingCommandHandler() commands.CreateBookingCommandHandler {
	var f commands.BookingUoWFactory = FuncBookingUoWFactory(func() commands.BookingUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateBookingCommandHandler(f, c.numbers)
}

func (c *CompositionRoot) CreateCreateTripCommandHandler() commands.CreateTripCommandHandler {
	var f commands.TripUoWFactory = FuncTripUoWFactory(func() commands.TripUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateTripCommandHandler(f, c.numbers)
}

func (c *CompositionRoot) CreateLoadBookingsCommandHandler() commands.LoadBookingsCommandHandler {
	return commands.NewLoadBookingsCommandHandler(c.loadingUoWFactory(), c.capacity)
}

func (c *CompositionRoot) CreateUnloadBookingsCommandHandler() commands.UnloadBookingsCommandHandler {
	return commands.NewUnloadBookingsCommandHandler(c.loadingUoWFactory())
}

func (c *CompositionRoot) CreateChangeBookingStatusCommandHandler() commands.ChangeBookingStatusCommandHandler {
	var f commands.BookingUoWFactory = FuncBookingUoWFactory(func() commands.BookingUoW {
		return c.uowFactory.Create()
	})
	return commands.NewChangeBookingStatusCommandHandler(f)
}

func (c *CompositionRoot) CreateChangeTripStatusCommandHandler() commands.ChangeTripStatusCommandHandler {
	return commands.NewChangeTripStatusCommandHandler(c.loadingUoWFactory())
}

func (c *CompositionRoot) CreateGetTripsQueryHandler() queries.GetTripsQueryHandler {
	return queries.NewGetTripsQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetTripSummaryQueryHandler() queries.GetTripSummaryQueryHandler {
	return queries.NewGetTripSummaryQueryHandler(c.gormDB, c.capacity)
}

func (c *CompositionRoot) CreateGetStaleLoadingTripsQueryHandler() queries.GetStaleLoadingTripsQueryHandler {
	return queries.NewGetStaleLoadingTripsQueryHandler(c.gormDB)
}

func (c *CompositionRoot) loadingUoWFactory() commands.LoadingUoWFactory {
	return FuncLoadingUoWFactory(func() commands.LoadingUoW {
		return c.uowFactory.Create()
	})
}

type FuncBookingUoWFactory func() commands.BookingUoW

func (f FuncBookingUoWFactory) Create() commands.BookingUoW {
	return f()
}

type FuncTripUoWFactory func() commands.TripUoW

func (f FuncTripUoWFactory) Create() commands.TripUoW {
	return f()
}

type FuncLoadingUoWFactory func() commands.LoadingUoW

func (f FuncLoadingUoWFactory) Create() commands.LoadingUoW {
	return f()
}
