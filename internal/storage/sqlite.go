// Package storage provides the SQLite implementation of the Storage interface.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/mattn/go-sqlite3"
	"github.com/shopspring/decimal"

	"github.com/shelfscout/shelfscout/internal/models"
	"github.com/shelfscout/shelfscout/internal/similarity"
)

// driverName registers a sqlite3 driver whose connections carry the
// trigram_similarity scalar function, so candidate filtering can run in SQL.
const driverName = "sqlite3_trigram"

var registerDriver sync.Once

// SQLiteStorage implements Storage using SQLite.
type SQLiteStorage struct {
	db *sql.DB
}

// NewSQLiteStorage opens or creates a SQLite database at dbPath and
// initializes the schema. Parent directories are created if they do not
// exist. Every connection has trigram_similarity installed as a pure SQL
// function.
func NewSQLiteStorage(dbPath string) (*SQLiteStorage, error) {
	registerDriver.Do(func() {
		sql.Register(driverName, &sqlite3.SQLiteDriver{
			ConnectHook: func(conn *sqlite3.SQLiteConn) error {
				return conn.RegisterFunc("trigram_similarity", similarity.Similarity, true)
			},
		})
	})

	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}
	db, err := sql.Open(driverName, dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to enable WAL: %w", err)
	}
	if _, err := db.Exec("PRAGMA foreign_keys=ON"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	if err := initSchema(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return &SQLiteStorage{db: db}, nil
}

func initSchema(db *sql.DB) error {
	schema := `
	CREATE TABLE IF NOT EXISTS chains (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS stores (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		chain_id INTEGER NOT NULL,
		name TEXT NOT NULL,
		FOREIGN KEY (chain_id) REFERENCES chains(id)
	);

	CREATE INDEX IF NOT EXISTS idx_stores_chain ON stores(chain_id);

	CREATE TABLE IF NOT EXISTS products (
		id TEXT PRIMARY KEY,
		chain_id INTEGER NOT NULL,
		sku TEXT NOT NULL,
		name TEXT NOT NULL,
		category TEXT NOT NULL DEFAULT '',
		base_price TEXT NOT NULL DEFAULT '0',
		description TEXT NOT NULL DEFAULT '',
		image_url TEXT NOT NULL DEFAULT '',
		FOREIGN KEY (chain_id) REFERENCES chains(id)
	);

	CREATE UNIQUE INDEX IF NOT EXISTS idx_products_chain_sku ON products(chain_id, sku);
	CREATE INDEX IF NOT EXISTS idx_products_chain ON products(chain_id);

	CREATE TABLE IF NOT EXISTS store_inventory (
		store_id INTEGER NOT NULL,
		product_id TEXT NOT NULL,
		aisle TEXT NOT NULL DEFAULT '',
		shelf_position TEXT NOT NULL DEFAULT '',
		stock_quantity INTEGER NOT NULL DEFAULT 0,
		is_available INTEGER NOT NULL DEFAULT 1,
		PRIMARY KEY (store_id, product_id),
		FOREIGN KEY (store_id) REFERENCES stores(id),
		FOREIGN KEY (product_id) REFERENCES products(id)
	);
	`
	_, err := db.Exec(schema)
	return err
}

// ResolveStoreChain returns the chain owning the store.
func (s *SQLiteStorage) ResolveStoreChain(ctx context.Context, storeID int64) (int64, error) {
	var chainID int64
	err := s.db.QueryRowContext(ctx,
		`SELECT chain_id FROM stores WHERE id = ?`, storeID,
	).Scan(&chainID)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, fmt.Errorf("%w: %d", ErrStoreNotFound, storeID)
	}
	if err != nil {
		return 0, mapError(err)
	}
	return chainID, nil
}

// ListProducts returns the chain's products matching the filter. The filter
// tree is rendered into a single WHERE disjunction; similarity conditions use
// the trigram_similarity function installed on the connection.
func (s *SQLiteStorage) ListProducts(ctx context.Context, chainID int64, filter Filter) ([]*models.Product, error) {
	if len(filter.Any) == 0 {
		return []*models.Product{}, nil
	}

	where, args, err := renderFilter(filter)
	if err != nil {
		return nil, err
	}

	query := `SELECT id, chain_id, sku, name, category, base_price, description, image_url
		 FROM products WHERE chain_id = ? AND ` + where
	queryArgs := append([]interface{}{chainID}, args...)

	rows, err := s.db.QueryContext(ctx, query, queryArgs...)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	var products []*models.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, mapError(err)
	}
	return products, nil
}

func renderFilter(f Filter) (string, []interface{}, error) {
	clauses := make([]string, 0, len(f.Any))
	args := make([]interface{}, 0, len(f.Any)*2)
	for _, c := range f.Any {
		col, err := filterColumn(c.Field)
		if err != nil {
			return "", nil, err
		}
		switch c.Op {
		case OpEquals:
			clauses = append(clauses, "lower("+col+") = ?")
			args = append(args, c.Value)
		case OpPrefix:
			clauses = append(clauses, "instr(lower("+col+"), ?) = 1")
			args = append(args, c.Value)
		case OpContains:
			clauses = append(clauses, "instr(lower("+col+"), ?) > 0")
			args = append(args, c.Value)
		case OpSimilarTo:
			clauses = append(clauses, "trigram_similarity("+col+", ?) > ?")
			args = append(args, c.Value, c.Threshold)
		default:
			return "", nil, fmt.Errorf("unsupported filter op: %d", c.Op)
		}
	}
	return "(" + strings.Join(clauses, " OR ") + ")", args, nil
}

func filterColumn(f Field) (string, error) {
	switch f {
	case FieldName:
		return "name", nil
	case FieldSKU:
		return "sku", nil
	case FieldCategory:
		return "category", nil
	case FieldDescription:
		return "description", nil
	default:
		return "", fmt.Errorf("unsupported filter field: %d", f)
	}
}

func scanProduct(rows *sql.Rows) (*models.Product, error) {
	var p models.Product
	var price string
	if err := rows.Scan(&p.ID, &p.ChainID, &p.SKU, &p.Name, &p.Category, &price, &p.Description, &p.ImageURL); err != nil {
		return nil, err
	}
	parsed, err := decimal.NewFromString(price)
	if err != nil {
		return nil, fmt.Errorf("invalid base_price for product %s: %w", p.ID, err)
	}
	p.BasePrice = parsed
	return &p, nil
}

// GetInventory returns the store's inventory facts for the given product ids.
func (s *SQLiteStorage) GetInventory(ctx context.Context, storeID int64, productIDs []string) ([]*models.StoreInventoryFact, error) {
	if len(productIDs) == 0 {
		return []*models.StoreInventoryFact{}, nil
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(productIDs)), ",")
	args := make([]interface{}, 0, len(productIDs)+1)
	args = append(args, storeID)
	for _, id := range productIDs {
		args = append(args, id)
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT store_id, product_id, aisle, shelf_position, stock_quantity, is_available
		 FROM store_inventory WHERE store_id = ? AND product_id IN (`+placeholders+`)`,
		args...,
	)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	var facts []*models.StoreInventoryFact
	for rows.Next() {
		var f models.StoreInventoryFact
		if err := rows.Scan(&f.StoreID, &f.ProductID, &f.Aisle, &f.ShelfPosition, &f.StockQuantity, &f.IsAvailable); err != nil {
			return nil, err
		}
		facts = append(facts, &f)
	}
	if err := rows.Err(); err != nil {
		return nil, mapError(err)
	}
	return facts, nil
}

// CreateChain inserts a chain. A zero ID is assigned by the database.
func (s *SQLiteStorage) CreateChain(ctx context.Context, chain *models.Chain) error {
	if chain.ID != 0 {
		_, err := s.db.ExecContext(ctx,
			`INSERT INTO chains (id, name) VALUES (?, ?)`, chain.ID, chain.Name)
		return mapError(err)
	}
	result, err := s.db.ExecContext(ctx, `INSERT INTO chains (name) VALUES (?)`, chain.Name)
	if err != nil {
		return mapError(err)
	}
	chain.ID, err = result.LastInsertId()
	return err
}

// CreateStore inserts a store. A zero ID is assigned by the database.
func (s *SQLiteStorage) CreateStore(ctx context.Context, store *models.Store) error {
	if store.ID != 0 {
		_, err := s.db.ExecContext(ctx,
			`INSERT INTO stores (id, chain_id, name) VALUES (?, ?, ?)`,
			store.ID, store.ChainID, store.Name)
		return mapError(err)
	}
	result, err := s.db.ExecContext(ctx,
		`INSERT INTO stores (chain_id, name) VALUES (?, ?)`, store.ChainID, store.Name)
	if err != nil {
		return mapError(err)
	}
	store.ID, err = result.LastInsertId()
	return err
}

// CreateProduct inserts a product. An empty ID is assigned a fresh UUID.
// Violating the (chain, sku) uniqueness invariant returns ErrDuplicateSKU.
func (s *SQLiteStorage) CreateProduct(ctx context.Context, product *models.Product) error {
	if product.ID == "" {
		product.ID = uuid.NewString()
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO products (id, chain_id, sku, name, category, base_price, description, image_url)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		product.ID, product.ChainID, product.SKU, product.Name, product.Category,
		product.BasePrice.String(), product.Description, product.ImageURL,
	)
	return mapError(err)
}

// UpsertInventory inserts or replaces the inventory fact for the fact's
// (store, product) pair.
func (s *SQLiteStorage) UpsertInventory(ctx context.Context, fact *models.StoreInventoryFact) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO store_inventory (store_id, product_id, aisle, shelf_position, stock_quantity, is_available)
		 VALUES (?, ?, ?, ?, ?, ?)
		 ON CONFLICT (store_id, product_id) DO UPDATE SET
			aisle = excluded.aisle,
			shelf_position = excluded.shelf_position,
			stock_quantity = excluded.stock_quantity,
			is_available = excluded.is_available`,
		fact.StoreID, fact.ProductID, fact.Aisle, fact.ShelfPosition, fact.StockQuantity, fact.IsAvailable,
	)
	return mapError(err)
}

// CountChains returns the number of chains.
func (s *SQLiteStorage) CountChains(ctx context.Context) (int64, error) {
	return s.count(ctx, "chains")
}

// CountStores returns the number of stores.
func (s *SQLiteStorage) CountStores(ctx context.Context) (int64, error) {
	return s.count(ctx, "stores")
}

// CountProducts returns the number of products across all chains.
func (s *SQLiteStorage) CountProducts(ctx context.Context) (int64, error) {
	return s.count(ctx, "products")
}

func (s *SQLiteStorage) count(ctx context.Context, table string) (int64, error) {
	var n int64
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM `+table).Scan(&n)
	if err != nil {
		return 0, mapError(err)
	}
	return n, nil
}

// Close closes the database.
func (s *SQLiteStorage) Close() error {
	return s.db.Close()
}

// mapError translates driver errors into the package's sentinel errors.
func mapError(err error) error {
	if err == nil {
		return nil
	}
	if strings.Contains(err.Error(), "no such function: trigram_similarity") {
		return fmt.Errorf("%w: %v", ErrSimilarityUnavailable, err)
	}
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) && sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique {
		if strings.Contains(err.Error(), "products.chain_id") || strings.Contains(err.Error(), "products.sku") {
			return fmt.Errorf("%w: %v", ErrDuplicateSKU, err)
		}
	}
	return err
}
