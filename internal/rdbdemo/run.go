// Package rdbdemo is a guided walkthrough of the rdb API. It exercises both
// facades against a throwaway database: the materialized query path with its
// string rows, and the prepared statement path with typed columns and the
// transaction guard.
package rdbdemo

import (
	"context"
	"fmt"
	"os"
	"path"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/rdbgo/rdb"
	"github.com/rdbgo/rdb/internal/rdbcli/styled"
	"github.com/rdbgo/rdb/internal/version"
)

// Run executes the walkthrough from start to finish, printing each step.
func Run(ctx context.Context) error {
	fmt.Println(version.DemoVersion())

	tmpDir, err := os.MkdirTemp("", "rdbdemo_*")
	if err != nil {
		return err
	}
	defer os.RemoveAll(tmpDir)

	db, err := rdb.Open(path.Join(tmpDir, "demo.db"))
	if err != nil {
		return err
	}
	defer db.Close()

	steps := []func(*rdb.DB) error{
		stepCreateSchema,
		stepInsertProducts,
		stepListProducts,
		stepFilterProducts,
		stepEscapedInsert,
		stepCreateOrders,
		stepJoinOrders,
		stepSalesSummary,
		stepTableChecks,
		stepQueryError,
		stepLowStock,
		stepAbandonedTransaction,
	}

	for _, step := range steps {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := step(db); err != nil {
			return err
		}
	}

	fmt.Println("\nDemo completed successfully!")
	return nil
}

func stepCreateSchema(db *rdb.DB) error {
	fmt.Println("\n1. Creating schema...")

	stmts := []string{
		`DROP TABLE IF EXISTS products`,
		`DROP TABLE IF EXISTS orders`,
		`CREATE TABLE products (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT NOT NULL,
			price REAL,
			stock INTEGER
		)`,
		`CREATE TABLE orders (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			product_id INTEGER,
			quantity INTEGER,
			customer TEXT
		)`,
	}
	for _, s := range stmts {
		if err := db.Execute(s); err != nil {
			return err
		}
	}

	fmt.Println("Tables created")
	return nil
}

func stepInsertProducts(db *rdb.DB) error {
	fmt.Println("\n2. Inserting products...")

	products := []string{
		`INSERT INTO products (name, price, stock) VALUES ('Laptop', 999.99, 10)`,
		`INSERT INTO products (name, price, stock) VALUES ('Mouse', 29.99, 50)`,
		`INSERT INTO products (name, price, stock) VALUES ('Keyboard', 79.99, 30)`,
		`INSERT INTO products (name, price, stock) VALUES ('Monitor', 299.99, 15)`,
	}
	for _, s := range products {
		if err := db.Execute(s); err != nil {
			return err
		}
	}

	fmt.Printf("Last product ID: %d\n", db.LastInsertID())
	return nil
}

func stepListProducts(db *rdb.DB) error {
	fmt.Println("\n3. Listing all products...")

	res := db.Query("SELECT * FROM products ORDER BY price DESC")
	if res.Error != "" {
		return fmt.Errorf("listing products: %s", res.Error)
	}

	printResults(res)
	return nil
}

func stepFilterProducts(db *rdb.DB) error {
	fmt.Println("\n4. Products under $100...")

	res := db.Query("SELECT name, price FROM products WHERE price < 100")
	if res.Error != "" {
		return fmt.Errorf("filtering products: %s", res.Error)
	}

	var row rdb.Row
	for res.Next(&row) {
		fmt.Printf("  - %s: $%s\n", row["name"], row["price"])
	}
	return nil
}

// stepEscapedInsert interpolates untrusted text into a SQL string, which the
// materialized facade requires, and shows Escape making that safe.
func stepEscapedInsert(db *rdb.DB) error {
	fmt.Println("\n5. Inserting product with special characters...")

	name := `32" Monitor (Bob's Edition)`
	sql := fmt.Sprintf(
		"INSERT INTO products (name, price, stock) VALUES ('%s', 449.99, 5)",
		rdb.Escape(name),
	)
	if err := db.Execute(sql); err != nil {
		return err
	}

	fmt.Printf("Inserted: %s (ID: %d)\n", name, db.LastInsertID())
	return nil
}

func stepCreateOrders(db *rdb.DB) error {
	fmt.Println("\n6. Creating orders...")

	orders := []string{
		`INSERT INTO orders (product_id, quantity, customer) VALUES (1, 2, 'Alice')`,
		`INSERT INTO orders (product_id, quantity, customer) VALUES (2, 5, 'Bob')`,
		`INSERT INTO orders (product_id, quantity, customer) VALUES (1, 1, 'Charlie')`,
	}
	for _, s := range orders {
		if err := db.Execute(s); err != nil {
			return err
		}
	}

	fmt.Println("Orders created")
	return nil
}

func stepJoinOrders(db *rdb.DB) error {
	fmt.Println("\n7. Order details (with JOIN)...")

	res := db.Query(`
		SELECT o.id, o.customer, p.name, o.quantity, p.price,
		       (o.quantity * p.price) AS total
		FROM orders o
		JOIN products p ON o.product_id = p.id
		ORDER BY o.id
	`)
	if res.Error != "" {
		return fmt.Errorf("joining orders: %s", res.Error)
	}

	printResults(res)
	return nil
}

func stepSalesSummary(db *rdb.DB) error {
	fmt.Println("\n8. Sales summary...")

	res := db.Query(`
		SELECT
			COUNT(*) AS total_orders,
			SUM(o.quantity * p.price) AS total_revenue
		FROM orders o
		JOIN products p ON o.product_id = p.id
	`)
	if res.Error != "" {
		return fmt.Errorf("summarizing sales: %s", res.Error)
	}

	if res.NumRows > 0 {
		stats := res.Rows[0]
		fmt.Printf("  Total orders: %s\n", stats["total_orders"])
		fmt.Printf("  Total revenue: $%s\n", stats["total_revenue"])
	}
	return nil
}

func stepTableChecks(db *rdb.DB) error {
	fmt.Println("\n9. Checking tables...")

	fmt.Printf("  products table exists: %v\n", db.TableExists("products"))
	fmt.Printf("  customers table exists: %v\n", db.TableExists("customers"))
	return nil
}

// stepQueryError shows the materialized facade's failure mode: no returned
// error, just an empty table with the diagnostic in Error.
func stepQueryError(db *rdb.DB) error {
	fmt.Println("\n10. Querying a nonexistent table...")

	res := db.Query("SELECT * FROM nonexistent_table")
	if res.Error == "" {
		return fmt.Errorf("expected a query error, got %d rows", res.NumRows)
	}

	fmt.Printf("  Error caught: %s\n", res.Error)
	return nil
}

// stepLowStock switches to the prepared statement facade for typed column
// access on the same database.
func stepLowStock(db *rdb.DB) error {
	fmt.Println("\n11. Low stock items (prepared statement)...")

	stmt, err := db.Prepare(
		"SELECT name, stock FROM products WHERE stock < 20 ORDER BY stock",
	)
	if err != nil {
		return err
	}
	defer stmt.Close()

	return stmt.ForEachRow(func(row *rdb.Stmt) error {
		fmt.Printf("  - %s (only %d left)\n", row.ColumnText(0), row.ColumnInt(1))
		return nil
	})
}

// stepAbandonedTransaction begins a transaction, writes, and lets the guard
// roll it back on the way out of the scope.
func stepAbandonedTransaction(db *rdb.DB) error {
	fmt.Println("\n12. Abandoning a transaction...")

	countProducts := func() (int64, error) {
		stmt, err := db.Prepare("SELECT COUNT(*) FROM products")
		if err != nil {
			return 0, err
		}
		defer stmt.Close()
		if _, err := stmt.Step(); err != nil {
			return 0, err
		}
		return stmt.ColumnInt(0), nil
	}

	before, err := countProducts()
	if err != nil {
		return err
	}

	err = func() error {
		tx, err := db.Begin()
		if err != nil {
			return err
		}
		defer tx.Rollback()

		return db.Execute(
			`INSERT INTO products (name, price, stock) VALUES ('Ghost', 1.00, 0)`,
		)
	}()
	if err != nil {
		return err
	}

	after, err := countProducts()
	if err != nil {
		return err
	}

	fmt.Printf("  Products before: %d, after rollback: %d\n", before, after)
	return nil
}

func printResults(res *rdb.Results) {
	tw := styled.NewTableWriter()

	header := table.Row{}
	for _, col := range res.Columns {
		header = append(header, col)
	}
	tw.AppendHeader(header)

	var row rdb.Row
	for res.Next(&row) {
		twRow := table.Row{}
		for _, col := range res.Columns {
			twRow = append(twRow, row[col])
		}
		tw.AppendRow(twRow)
	}

	fmt.Println(tw.Render())
	styled.DimmedColor().Printf("%d row(s)\n", res.NumRows)
}
