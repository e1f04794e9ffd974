package repositories

import (
	"database/sql"

	intconfig "github.com/rajabhujbal77/Dirba-Amba-Service-sub001/internal/config"
	"github.com/rajabhujbal77/Dirba-Amba-Service-sub001/internal/domain"
)

// PriceRepo resolves package unit prices. Resolution order is fixed:
// customer-specific discounted price, then depot override, then base price.
type PriceRepo struct {
	DB *sql.DB
}

func (r PriceRepo) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

// ResolveUnitPrice returns the effective price for a catalog package when
// the caller did not supply one.
func (r PriceRepo) ResolveUnitPrice(customerPhone string, depotID, packageID int64) (int64, error) {
	if packageID <= 0 {
		return 0, domain.ValidationError{Field: "package_id", Msg: "invalid id"}
	}
	db := r.db()

	var price int64
	if customerPhone != "" {
		err := db.QueryRow(`
			SELECT price FROM customer_package_prices
			WHERE customer_phone = ? AND package_id = ?
			LIMIT 1
		`, customerPhone, packageID).Scan(&price)
		if err == nil {
			return price, nil
		}
		if err != sql.ErrNoRows {
			return 0, err
		}
	}

	if depotID > 0 {
		err := db.QueryRow(`
			SELECT price FROM depot_package_prices
			WHERE depot_id = ? AND package_id = ?
			LIMIT 1
		`, depotID, packageID).Scan(&price)
		if err == nil {
			return price, nil
		}
		if err != sql.ErrNoRows {
			return 0, err
		}
	}

	err := db.QueryRow(`SELECT base_price FROM packages WHERE id = ? LIMIT 1`, packageID).Scan(&price)
	if err == sql.ErrNoRows {
		return 0, domain.NotFoundError{Resource: "package", Err: err}
	}
	return price, err
}
