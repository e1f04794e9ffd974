package repositories

import (
	"database/sql"

	intdb "github.com/rajabhujbal77/Dirba-Amba-Service-sub001/internal/db"
)

// coreDDL creates the tables the engine owns. Statements are idempotent so
// bootstrap can run on every start.
var coreDDL = []string{
	`CREATE TABLE IF NOT EXISTS sequence_counters (
	name VARCHAR(32) NOT NULL PRIMARY KEY,
	counter_date DATE NOT NULL,
	value BIGINT NOT NULL DEFAULT 0
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci;`,
	`CREATE TABLE IF NOT EXISTS depots (
	id BIGINT AUTO_INCREMENT PRIMARY KEY,
	name VARCHAR(100) NOT NULL,
	depot_type VARCHAR(20) NOT NULL DEFAULT 'managed',
	created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci;`,
	`CREATE TABLE IF NOT EXISTS depot_routes (
	from_depot_id BIGINT NOT NULL,
	to_depot_id BIGINT NOT NULL,
	PRIMARY KEY (from_depot_id, to_depot_id)
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci;`,
	`CREATE TABLE IF NOT EXISTS bookings (
	id BIGINT AUTO_INCREMENT PRIMARY KEY,
	receipt_no VARCHAR(30) NOT NULL,
	origin_depot_id BIGINT NOT NULL,
	dest_depot_id BIGINT NOT NULL,
	sender_name VARCHAR(255) NOT NULL,
	sender_phone VARCHAR(100) NOT NULL DEFAULT '',
	payment_method VARCHAR(20) NOT NULL DEFAULT 'paid',
	delivery_type VARCHAR(20) NOT NULL DEFAULT 'door',
	delivery_charge BIGINT NOT NULL DEFAULT 0,
	subtotal BIGINT NOT NULL DEFAULT 0,
	total BIGINT NOT NULL DEFAULT 0,
	status VARCHAR(30) NOT NULL DEFAULT 'booked',
	trip_id BIGINT NULL,
	current_location_depot_id BIGINT NULL,
	booked_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
	delivered_at TIMESTAMP NULL,
	UNIQUE KEY uniq_receipt_no (receipt_no),
	KEY idx_trip (trip_id),
	KEY idx_status (status)
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci;`,
	`CREATE TABLE IF NOT EXISTS booking_receivers (
	id BIGINT AUTO_INCREMENT PRIMARY KEY,
	booking_id BIGINT NOT NULL,
	position INT NOT NULL DEFAULT 0,
	name VARCHAR(255) NOT NULL,
	phone VARCHAR(100) NOT NULL DEFAULT '',
	address VARCHAR(500) NOT NULL DEFAULT '',
	KEY idx_booking (booking_id)
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci;`,
	`CREATE TABLE IF NOT EXISTS package_lines (
	id BIGINT AUTO_INCREMENT PRIMARY KEY,
	receiver_id BIGINT NOT NULL,
	package_id BIGINT NULL,
	size_text VARCHAR(100) NOT NULL DEFAULT '',
	quantity INT NOT NULL DEFAULT 1,
	unit_price BIGINT NOT NULL DEFAULT 0,
	KEY idx_receiver (receiver_id)
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci;`,
	`CREATE TABLE IF NOT EXISTS packages (
	id BIGINT AUTO_INCREMENT PRIMARY KEY,
	name VARCHAR(100) NOT NULL,
	base_price BIGINT NOT NULL DEFAULT 0
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci;`,
	`CREATE TABLE IF NOT EXISTS depot_package_prices (
	depot_id BIGINT NOT NULL,
	package_id BIGINT NOT NULL,
	price BIGINT NOT NULL,
	PRIMARY KEY (depot_id, package_id)
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci;`,
	`CREATE TABLE IF NOT EXISTS customer_package_prices (
	customer_phone VARCHAR(100) NOT NULL,
	package_id BIGINT NOT NULL,
	price BIGINT NOT NULL,
	PRIMARY KEY (customer_phone, package_id)
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci;`,
	`CREATE TABLE IF NOT EXISTS trips (
	id BIGINT AUTO_INCREMENT PRIMARY KEY,
	trip_no VARCHAR(30) NOT NULL,
	driver_name VARCHAR(255) NOT NULL DEFAULT '',
	vehicle_code VARCHAR(50) NOT NULL DEFAULT '',
	origin_depot_id BIGINT NOT NULL,
	dest_depot_id BIGINT NOT NULL,
	status VARCHAR(20) NOT NULL DEFAULT 'planned',
	is_forwarding TINYINT(1) NOT NULL DEFAULT 0,
	completed_at TIMESTAMP NULL,
	created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
	UNIQUE KEY uniq_trip_no (trip_no),
	KEY idx_origin_forwarding (origin_depot_id, is_forwarding)
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci;`,
	`CREATE TABLE IF NOT EXISTS trip_bookings (
	trip_id BIGINT NOT NULL,
	booking_id BIGINT NOT NULL,
	created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
	PRIMARY KEY (trip_id, booking_id),
	KEY idx_booking (booking_id)
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci;`,
	`CREATE TABLE IF NOT EXISTS advance_payments (
	id BIGINT AUTO_INCREMENT PRIMARY KEY,
	receipt_no VARCHAR(30) NOT NULL,
	booking_id BIGINT NOT NULL,
	amount BIGINT NOT NULL,
	method VARCHAR(20) NOT NULL DEFAULT 'cash',
	created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
	UNIQUE KEY uniq_receipt_no (receipt_no),
	KEY idx_booking (booking_id)
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci;`,
	`CREATE TABLE IF NOT EXISTS users (
	id BIGINT AUTO_INCREMENT PRIMARY KEY,
	name VARCHAR(255) NOT NULL,
	username VARCHAR(100) NOT NULL,
	email VARCHAR(255) NOT NULL,
	phone VARCHAR(100) NOT NULL DEFAULT '',
	password_hash VARCHAR(255) NOT NULL,
	role VARCHAR(30) NOT NULL DEFAULT 'user',
	status VARCHAR(20) NOT NULL DEFAULT 'active',
	created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
	updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
	UNIQUE KEY uniq_email (email),
	UNIQUE KEY uniq_username (username)
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci;`,
}

// EnsureCoreTables bootstraps the schema on startup.
func EnsureCoreTables(db *sql.DB) error {
	for _, ddl := range coreDDL {
		if _, err := db.Exec(ddl); err != nil {
			return err
		}
	}
	return nil
}

// HasCoreTables is a cheap readiness probe used by /db-check.
func HasCoreTables(db *sql.DB) bool {
	return intdb.HasTable(db, "bookings") && intdb.HasTable(db, "trips") &&
		intdb.HasTable(db, "trip_bookings") && intdb.HasTable(db, "sequence_counters")
}
