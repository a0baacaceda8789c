package config

import "fmt"

// Schema statements are idempotent so startup can run them every time.
// The UNIQUE key on journey_seats (bus_id, journey_date, seat_number) is
// the storage-level backstop for seat exclusivity: even if two processes
// race past their in-memory critical sections, at most one insert wins.
var schemaDDL = []string{
	`CREATE TABLE IF NOT EXISTS users (
	id BIGINT AUTO_INCREMENT PRIMARY KEY,
	name VARCHAR(255) NOT NULL,
	username VARCHAR(100) NOT NULL,
	email VARCHAR(255) NOT NULL,
	phone VARCHAR(50) NOT NULL DEFAULT '',
	password_hash VARCHAR(255) NOT NULL,
	role VARCHAR(20) NOT NULL DEFAULT 'user',
	status VARCHAR(20) NOT NULL DEFAULT 'active',
	created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
	updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
	UNIQUE KEY uniq_username (username),
	UNIQUE KEY uniq_email (email)
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci;`,

	`CREATE TABLE IF NOT EXISTS buses (
	id BIGINT AUTO_INCREMENT PRIMARY KEY,
	bus_number VARCHAR(50) NOT NULL,
	bus_name VARCHAR(255) NOT NULL,
	bus_type VARCHAR(50) NOT NULL,
	total_seats INT NOT NULL,
	amenities VARCHAR(500) NOT NULL DEFAULT '',
	operator_name VARCHAR(255) NOT NULL,
	price_per_seat BIGINT NOT NULL DEFAULT 0,
	created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
	UNIQUE KEY uniq_bus_number (bus_number)
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci;`,

	`CREATE TABLE IF NOT EXISTS routes (
	id BIGINT AUTO_INCREMENT PRIMARY KEY,
	from_city VARCHAR(255) NOT NULL,
	to_city VARCHAR(255) NOT NULL,
	distance_km INT NOT NULL DEFAULT 0,
	duration VARCHAR(50) NOT NULL DEFAULT '',
	departure_time VARCHAR(10) NOT NULL DEFAULT '',
	arrival_time VARCHAR(10) NOT NULL DEFAULT '',
	base_fare BIGINT NOT NULL,
	bus_id BIGINT NOT NULL,
	journey_date DATE NOT NULL,
	created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
	KEY idx_route_cities (from_city, to_city),
	KEY idx_route_bus (bus_id)
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci;`,

	`CREATE TABLE IF NOT EXISTS bookings (
	id BIGINT AUTO_INCREMENT PRIMARY KEY,
	booking_ref CHAR(36) NOT NULL,
	user_id BIGINT NOT NULL,
	bus_id BIGINT NOT NULL,
	route_id BIGINT NOT NULL,
	journey_date DATE NOT NULL,
	total_fare BIGINT NOT NULL,
	status ENUM('pending','confirmed','cancelled') NOT NULL DEFAULT 'pending',
	created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
	cancelled_at TIMESTAMP NULL DEFAULT NULL,
	UNIQUE KEY uniq_booking_ref (booking_ref),
	KEY idx_booking_user (user_id),
	KEY idx_booking_bus_date (bus_id, journey_date)
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci;`,

	`CREATE TABLE IF NOT EXISTS booking_passengers (
	id BIGINT AUTO_INCREMENT PRIMARY KEY,
	booking_id BIGINT NOT NULL,
	seat_number INT NOT NULL,
	name VARCHAR(255) NOT NULL,
	email VARCHAR(255) NOT NULL DEFAULT '',
	phone VARCHAR(100) NOT NULL DEFAULT '',
	created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
	UNIQUE KEY uniq_booking_seat (booking_id, seat_number),
	KEY idx_bp_booking (booking_id)
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci;`,

	`CREATE TABLE IF NOT EXISTS journey_seats (
	id BIGINT AUTO_INCREMENT PRIMARY KEY,
	bus_id BIGINT NOT NULL,
	journey_date DATE NOT NULL,
	seat_number INT NOT NULL,
	booking_id BIGINT NOT NULL,
	created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
	UNIQUE KEY uniq_journey_seat (bus_id, journey_date, seat_number),
	KEY idx_js_booking (booking_id)
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci;`,
}

// EnsureSchema creates missing tables. Existing tables are left untouched.
func EnsureSchema() error {
	dbMu.Lock()
	db := DB
	dbMu.Unlock()

	if db == nil {
		return fmt.Errorf("database not connected")
	}
	for _, ddl := range schemaDDL {
		if _, err := db.Exec(ddl); err != nil {
			return fmt.Errorf("schema bootstrap failed: %w", err)
		}
	}
	return nil
}
