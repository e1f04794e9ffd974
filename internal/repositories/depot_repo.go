package repositories

import (
	"database/sql"

	intconfig "github.com/rajabhujbal77/Dirba-Amba-Service-sub001/internal/config"
	"github.com/rajabhujbal77/Dirba-Amba-Service-sub001/internal/domain"
	"github.com/rajabhujbal77/Dirba-Amba-Service-sub001/internal/domain/models"
)

type DepotRepo struct {
	DB *sql.DB
}

func (r DepotRepo) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

func (r DepotRepo) GetByID(id int64) (models.Depot, error) {
	if id <= 0 {
		return models.Depot{}, domain.ValidationError{Field: "id", Msg: "invalid id"}
	}
	var d models.Depot
	err := r.db().QueryRow(`
		SELECT id, COALESCE(name,''), COALESCE(depot_type,'')
		FROM depots WHERE id = ? LIMIT 1
	`, id).Scan(&d.ID, &d.Name, &d.Type)
	if err != nil {
		if err == sql.ErrNoRows {
			return models.Depot{}, domain.NotFoundError{Resource: "depot", Err: err}
		}
		return models.Depot{}, err
	}
	return d, nil
}

func (r DepotRepo) List() ([]models.Depot, error) {
	rows, err := r.db().Query(`
		SELECT id, COALESCE(name,''), COALESCE(depot_type,'')
		FROM depots ORDER BY name ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Depot{}
	for rows.Next() {
		var d models.Depot
		if err := rows.Scan(&d.ID, &d.Name, &d.Type); err != nil {
			return out, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

// ForwardRoutesFrom lists the depot ids this depot forwards parcels to.
func (r DepotRepo) ForwardRoutesFrom(depotID int64) ([]int64, error) {
	rows, err := r.db().Query(`
		SELECT to_depot_id FROM depot_routes WHERE from_depot_id = ?
	`, depotID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []int64{}
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return out, err
		}
		out = append(out, id)
	}
	return out, rows.Err()
}
