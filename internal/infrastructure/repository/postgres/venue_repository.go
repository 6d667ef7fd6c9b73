package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/daehyun-cho/matchup/internal/domain/venue"
	qb "github.com/daehyun-cho/matchup/internal/platform/querybuilder"
)

type VenueRepository struct {
	db *sqlx.DB
}

func NewVenueRepository(db *sqlx.DB) *VenueRepository {
	return &VenueRepository{db: db}
}

func (r *VenueRepository) Create(ctx context.Context, v venue.Venue) error {
	var lat, lng *float64
	if v.Location != nil {
		lat = &v.Location.Lat
		lng = &v.Location.Lng
	}

	query, args, err := qb.InsertInto("venues").
		Columns("id", "name", "address", "region", "lat", "lng").
		Values(v.ID, v.Name, v.Address, v.Region, float64PtrToNull(lat), float64PtrToNull(lng)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build insert venue query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert venue: %w", err)
	}

	return nil
}

func (r *VenueRepository) GetByID(ctx context.Context, venueID string) (venue.Venue, bool, error) {
	query, args, err := qb.Select("*").From("venues").
		Where(qb.Eq("id", venueID)).
		ToSQL()
	if err != nil {
		return venue.Venue{}, false, fmt.Errorf("build get venue by id query: %w", err)
	}

	var row venueTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return venue.Venue{}, false, nil
		}
		return venue.Venue{}, false, fmt.Errorf("get venue by id: %w", err)
	}

	return row.toDomain(), true, nil
}

func (r *VenueRepository) List(ctx context.Context, filter venue.ListFilter) ([]venue.Venue, error) {
	builder := qb.Select("*").From("venues")
	if filter.Region != "" {
		builder = builder.Where(qb.Eq("region", filter.Region))
	}
	if filter.Keyword != "" {
		pattern := "%" + filter.Keyword + "%"
		builder = builder.Where(qb.Or(
			qb.ILike("name", pattern),
			qb.ILike("address", pattern),
		))
	}
	query, args, err := builder.OrderBy("created_at", "id").ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list venues query: %w", err)
	}

	var rows []venueTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list venues: %w", err)
	}

	out := make([]venue.Venue, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}

	return out, nil
}

func (r *VenueRepository) ListRegions(ctx context.Context) ([]string, error) {
	query, args, err := qb.Select("DISTINCT region").From("venues").
		OrderBy("region").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list venue regions query: %w", err)
	}

	var regions []string
	if err := r.db.SelectContext(ctx, &regions, query, args...); err != nil {
		return nil, fmt.Errorf("list venue regions: %w", err)
	}

	return regions, nil
}

func (r *VenueRepository) ListMissingCoordinates(ctx context.Context, limit int) ([]venue.Venue, error) {
	query, args, err := qb.Select("*").From("venues").
		Where(qb.Or(qb.IsNull("lat"), qb.IsNull("lng"))).
		OrderBy("created_at", "id").
		Limit(limit).
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list venues missing coordinates query: %w", err)
	}

	var rows []venueTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list venues missing coordinates: %w", err)
	}

	out := make([]venue.Venue, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}

	return out, nil
}

func (r *VenueRepository) UpdateCoordinates(ctx context.Context, venueID string, loc venue.Coordinates) error {
	query, args, err := qb.Update("venues").
		Set("lat", loc.Lat).
		Set("lng", loc.Lng).
		Where(qb.Eq("id", venueID)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build update venue coordinates query: %w", err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update venue coordinates: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected update venue coordinates: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("update venue coordinates: not found")
	}

	return nil
}
