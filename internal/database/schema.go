package database

import (
	"context"
	"database/sql"
)

// schema lists the DDL statements executed at startup.  Statements
// are idempotent so the server can be restarted against an existing
// database.  The unique key on bills.rental_id is what enforces the
// one-bill-per-rental rule at the storage level.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS customers (
		id         BIGINT UNSIGNED NOT NULL AUTO_INCREMENT,
		first_name VARCHAR(100) NOT NULL,
		last_name  VARCHAR(100) NOT NULL DEFAULT '',
		email      VARCHAR(255) NOT NULL DEFAULT '',
		phone      VARCHAR(15)  NOT NULL DEFAULT '',
		address    VARCHAR(255) NOT NULL DEFAULT '',
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
		PRIMARY KEY (id)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS costumes (
		id                       BIGINT UNSIGNED NOT NULL AUTO_INCREMENT,
		name                     VARCHAR(100) NOT NULL,
		description              VARCHAR(500) NULL,
		size                     VARCHAR(10)  NOT NULL,
		category                 VARCHAR(50)  NOT NULL,
		daily_rental_price_cents BIGINT NOT NULL,
		stock_quantity           INT NOT NULL DEFAULT 1,
		available                TINYINT(1) NOT NULL DEFAULT 1,
		created_at               DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at               DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
		PRIMARY KEY (id),
		KEY idx_costumes_category (category),
		KEY idx_costumes_size (size)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS rentals (
		id                   BIGINT UNSIGNED NOT NULL AUTO_INCREMENT,
		customer_id          BIGINT UNSIGNED NOT NULL,
		costume_id           BIGINT UNSIGNED NOT NULL,
		rental_date          DATE NOT NULL,
		expected_return_date DATE NOT NULL,
		actual_return_date   DATE NULL,
		status               ENUM('ACTIVE','RETURNED','OVERDUE','CANCELLED') NOT NULL DEFAULT 'ACTIVE',
		notes                VARCHAR(500) NULL,
		created_at           DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at           DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
		PRIMARY KEY (id),
		KEY idx_rentals_status (status),
		KEY idx_rentals_customer (customer_id),
		KEY idx_rentals_costume (costume_id),
		CONSTRAINT fk_rentals_customer FOREIGN KEY (customer_id) REFERENCES customers (id),
		CONSTRAINT fk_rentals_costume  FOREIGN KEY (costume_id)  REFERENCES costumes (id)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS bills (
		id                 BIGINT UNSIGNED NOT NULL AUTO_INCREMENT,
		rental_id          BIGINT UNSIGNED NOT NULL,
		total_amount_cents BIGINT NOT NULL,
		late_fee_cents     BIGINT NOT NULL DEFAULT 0,
		damage_fee_cents   BIGINT NOT NULL DEFAULT 0,
		discount_cents     BIGINT NOT NULL DEFAULT 0,
		bill_date          DATETIME NOT NULL,
		due_date           DATETIME NULL,
		paid_date          DATETIME NULL,
		status             ENUM('PENDING','PAID','OVERDUE','CANCELLED') NOT NULL DEFAULT 'PENDING',
		payment_method     ENUM('CASH','CREDIT_CARD','DEBIT_CARD','BANK_TRANSFER','PAYPAL') NULL,
		notes              VARCHAR(500) NULL,
		created_at         DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at         DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
		PRIMARY KEY (id),
		UNIQUE KEY uq_bills_rental (rental_id),
		KEY idx_bills_status (status),
		CONSTRAINT fk_bills_rental FOREIGN KEY (rental_id) REFERENCES rentals (id)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS staff (
		id            BIGINT UNSIGNED NOT NULL AUTO_INCREMENT,
		email         VARCHAR(255) NOT NULL,
		password_hash VARCHAR(255) NOT NULL,
		role          ENUM('ADMIN','CLERK') NOT NULL DEFAULT 'CLERK',
		is_active     TINYINT(1) NOT NULL DEFAULT 1,
		created_at    DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at    DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
		PRIMARY KEY (id),
		UNIQUE KEY uq_staff_email (email)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS refresh_tokens (
		id         BIGINT UNSIGNED NOT NULL AUTO_INCREMENT,
		staff_id   BIGINT UNSIGNED NOT NULL,
		token_hash CHAR(64) NOT NULL,
		expires_at DATETIME NOT NULL,
		revoked_at DATETIME NULL,
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		PRIMARY KEY (id),
		UNIQUE KEY uq_refresh_tokens_hash (token_hash),
		KEY idx_refresh_tokens_staff (staff_id),
		CONSTRAINT fk_refresh_tokens_staff FOREIGN KEY (staff_id) REFERENCES staff (id)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
}

// EnsureSchema creates any missing tables.  It runs before the
// HTTP server starts accepting requests.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}
