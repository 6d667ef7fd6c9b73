package postgres

import (
	"database/sql"
	"time"

	"github.com/daehyun-cho/matchup/internal/domain/venue"
)

type venueTableModel struct {
	ID        string          `db:"id"`
	Name      string          `db:"name"`
	Address   string          `db:"address"`
	Region    string          `db:"region"`
	Lat       sql.NullFloat64 `db:"lat"`
	Lng       sql.NullFloat64 `db:"lng"`
	CreatedAt time.Time       `db:"created_at"`
}

func (m venueTableModel) toDomain() venue.Venue {
	v := venue.Venue{
		ID:        m.ID,
		Name:      m.Name,
		Address:   m.Address,
		Region:    m.Region,
		CreatedAt: m.CreatedAt,
	}
	if m.Lat.Valid && m.Lng.Valid {
		v.Location = &venue.Coordinates{Lat: m.Lat.Float64, Lng: m.Lng.Float64}
	}
	return v
}
