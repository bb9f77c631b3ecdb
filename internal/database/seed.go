package database

import (
	"context"
	"database/sql"
	"log"
)

type seedCustomer struct {
	first, last, email, phone, address string
}

type seedCostume struct {
	name, description, size, category string
	priceCents                        int64
	stock                             int
}

var sampleCustomers = []seedCustomer{
	{"John", "Doe", "john.doe@email.com", "555-1234", "123 Main St, City, State"},
	{"Jane", "Smith", "jane.smith@email.com", "555-5678", "456 Oak Ave, City, State"},
	{"Bob", "Johnson", "bob.johnson@email.com", "555-9012", "789 Pine Rd, City, State"},
	{"Alice", "Brown", "alice.brown@email.com", "555-3456", "321 Elm St, City, State"},
	{"Charlie", "Wilson", "charlie.wilson@email.com", "555-7890", "654 Maple Dr, City, State"},
}

var sampleCostumes = []seedCostume{
	{"Vampire Costume", "Classic vampire costume with cape", "M", "Horror", 2500, 3},
	{"Princess Dress", "Beautiful princess dress with tiara", "S", "Fairy Tale", 3000, 2},
	{"Pirate Outfit", "Complete pirate costume with hat and sword", "L", "Adventure", 2800, 4},
	{"Superhero Suit", "Red and blue superhero costume", "M", "Superhero", 3500, 5},
	{"Witch Costume", "Spooky witch costume with hat", "L", "Horror", 2200, 2},
	{"Knight Armor", "Medieval knight armor costume", "XL", "Medieval", 4000, 1},
	{"Fairy Wings Set", "Delicate fairy wings with wand", "One Size", "Fairy Tale", 1800, 6},
	{"Zombie Outfit", "Scary zombie costume with makeup", "L", "Horror", 2600, 3},
	{"Angel Costume", "White angel costume with wings", "M", "Spiritual", 2400, 2},
	{"Cowboy Outfit", "Western cowboy costume with hat", "L", "Western", 3200, 3},
	{"Ballerina Tutu", "Pink ballerina tutu with accessories", "S", "Dance", 2000, 4},
	{"Robot Costume", "Futuristic robot costume", "M", "Sci-Fi", 3800, 2},
	{"Cat Costume", "Cute cat costume with ears and tail", "S", "Animals", 1600, 5},
	{"Doctor Outfit", "Professional doctor costume", "M", "Profession", 2500, 3},
	{"Clown Costume", "Colorful clown costume with accessories", "L", "Comedy", 2800, 2},
}

// Seed populates sample customers and costumes when their tables
// are empty.  An already-populated table is left untouched, so
// seeding is safe to run on every startup.
func Seed(ctx context.Context, db *sql.DB) error {
	var n int
	if err := db.QueryRowContext(ctx, "SELECT COUNT(*) FROM customers").Scan(&n); err != nil {
		return err
	}
	if n == 0 {
		for _, c := range sampleCustomers {
			if _, err := db.ExecContext(ctx,
				"INSERT INTO customers (first_name, last_name, email, phone, address) VALUES (?,?,?,?,?)",
				c.first, c.last, c.email, c.phone, c.address); err != nil {
				return err
			}
		}
		log.Printf("seeded %d sample customers", len(sampleCustomers))
	}

	if err := db.QueryRowContext(ctx, "SELECT COUNT(*) FROM costumes").Scan(&n); err != nil {
		return err
	}
	if n == 0 {
		for _, c := range sampleCostumes {
			if _, err := db.ExecContext(ctx,
				"INSERT INTO costumes (name, description, size, category, daily_rental_price_cents, stock_quantity, available) VALUES (?,?,?,?,?,?,1)",
				c.name, c.description, c.size, c.category, c.priceCents, c.stock); err != nil {
				return err
			}
		}
		log.Printf("seeded %d sample costumes", len(sampleCostumes))
	}
	return nil
}
