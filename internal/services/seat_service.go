package services

import (
	"math"
	"strconv"

	"github.com/spf13/cast"

	"github.com/Pravinkumar0908/trip-bus-sub002/internal/config"
	"github.com/Pravinkumar0908/trip-bus-sub002/internal/models"
)

// seatsPerRow is fixed: the 2+1 aisle split is a labeling detail on the
// rendered deck, not a structural one.
const seatsPerRow = 3

// SeatService derives seat grids, price grids and pricing tiers from
// the handful of high-level fleet form parameters. It does not validate
// business-rule bounds on row counts; that belongs to the form.
type SeatService struct {
	cfg config.FleetConfig
}

// NewSeatService creates a new SeatService
func NewSeatService(cfg config.FleetConfig) *SeatService {
	return &SeatService{cfg: cfg}
}

// TierInput carries the raw pricing fields from the fleet form. Price
// is kept as the raw form string; it may be blank or non-numeric on
// records predating validation.
type TierInput struct {
	Price          string
	LowerDeckPrice *float64
	UpperDeckPrice *float64
	LadiesPrice    *float64
	ReservedPrice  *float64
}

// GenerateLayout builds the two deck grids. Every cell starts
// unoccupied (0). Zero or negative row counts yield an empty grid.
func (s *SeatService) GenerateLayout(lowerRows, upperRows int) (lower, upper models.IntGrid) {
	return generateDeck(lowerRows), generateDeck(upperRows)
}

func generateDeck(rows int) models.IntGrid {
	grid := models.IntGrid{}
	for i := 0; i < rows; i++ {
		grid = append(grid, make([]int, seatsPerRow))
	}
	return grid
}

// GeneratePrices builds a price grid mirroring the deck shape. Every
// cell in the deck gets the same base price; prices vary by deck, not
// by individual seat, in the generated default.
func (s *SeatService) GeneratePrices(rows int, basePrice float64) models.StringGrid {
	grid := models.StringGrid{}
	for i := 0; i < rows; i++ {
		row := make([]string, seatsPerRow)
		for j := range row {
			row[j] = formatPrice(basePrice)
		}
		grid = append(grid, row)
	}
	return grid
}

// ResolveTiers resolves the four price tiers. An explicit tier always
// wins; otherwise each tier derives from the general price with its
// configured offset, and when the general price itself is absent or
// non-numeric every tier falls back to its configured floor.
func (s *SeatService) ResolveTiers(in TierInput) models.PricingTiers {
	base, err := cast.ToFloat64E(in.Price)
	hasBase := err == nil && in.Price != ""

	tiers := models.PricingTiers{
		LowerDeckPrice: s.cfg.LowerDeckFloor,
		UpperDeckPrice: s.cfg.UpperDeckFloor,
		LadiesPrice:    s.cfg.LadiesFloor,
		ReservedPrice:  s.cfg.ReservedFloor,
	}

	if hasBase {
		tiers.LowerDeckPrice = base
		tiers.UpperDeckPrice = base + s.cfg.UpperDeckOffset
		tiers.LadiesPrice = base + s.cfg.LadiesOffset
		tiers.ReservedPrice = base + s.cfg.ReservedOffset
	}

	if in.LowerDeckPrice != nil {
		tiers.LowerDeckPrice = *in.LowerDeckPrice
	}
	if in.UpperDeckPrice != nil {
		tiers.UpperDeckPrice = *in.UpperDeckPrice
	}
	if in.LadiesPrice != nil {
		tiers.LadiesPrice = *in.LadiesPrice
	}
	if in.ReservedPrice != nil {
		tiers.ReservedPrice = *in.ReservedPrice
	}

	return tiers
}

// TotalSeats returns the derived seat count for the two decks
func (s *SeatService) TotalSeats(lowerRows, upperRows int) int {
	if lowerRows < 0 {
		lowerRows = 0
	}
	if upperRows < 0 {
		upperRows = 0
	}
	return (lowerRows + upperRows) * seatsPerRow
}

// AvailableSeats returns the seats sellable at creation time, after the
// configured pre-reserved/held allowance is taken off the top.
func (s *SeatService) AvailableSeats(totalSeats int) int {
	held := int(math.Floor(float64(totalSeats) * s.cfg.SeatHoldRatio))
	return totalSeats - held
}

func formatPrice(price float64) string {
	return "₹" + strconv.FormatFloat(price, 'f', -1, 64)
}
