package db

import (
	"context"
	"database/sql"
	"fmt"
	"net"
	"strconv"

	"github.com/go-sql-driver/mysql"
	_ "github.com/mattn/go-sqlite3"

	"insurecost/config"
	"insurecost/insurance"
)

const (
	DriverMySQL  = "mysql"
	DriverSQLite = "sqlite3"
)

const insertPredictionSQL = `
    INSERT INTO predictions (
        nama, age, sex, bmi, children, smoker, predicted_charges
    ) VALUES (?, ?, ?, ?, ?, ?, ?)`

const selectPredictionsSQL = `
    SELECT id, nama, age, sex, bmi, children, smoker, predicted_charges
    FROM predictions
    ORDER BY id ASC`

// Gateway opens a fresh connection for every operation and closes it before
// returning, on success and failure alike.
type Gateway struct {
	driver string
	dsn    string
}

// NewGateway returns a gateway for a registered database/sql driver.
func NewGateway(driver, dsn string) *Gateway {
	return &Gateway{driver: driver, dsn: dsn}
}

// FromConfig builds the DSN for the configured driver.
func FromConfig(cfg config.Database) (*Gateway, error) {
	switch cfg.Driver {
	case DriverMySQL:
		return NewGateway(DriverMySQL, MySQLDSN(cfg)), nil
	case DriverSQLite:
		return NewGateway(DriverSQLite, SQLiteDSN(cfg.Path)), nil
	default:
		return nil, fmt.Errorf("unsupported driver %q", cfg.Driver)
	}
}

// MySQLDSN formats a go-sql-driver DSN for cfg.
func MySQLDSN(cfg config.Database) string {
	mc := mysql.NewConfig()
	mc.User = cfg.User
	mc.Passwd = cfg.Password
	mc.Net = "tcp"
	mc.Addr = net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port))
	mc.DBName = cfg.Name
	return mc.FormatDSN()
}

// SQLiteDSN opens path with a busy timeout.
func SQLiteDSN(path string) string {
	return path + "?_busy_timeout=5000"
}

// Driver returns the database/sql driver name.
func (g *Gateway) Driver() string { return g.driver }

func (g *Gateway) open(ctx context.Context) (*sql.DB, error) {
	conn, err := sql.Open(g.driver, g.dsn)
	if err != nil {
		return nil, &insurance.StorageError{Op: "connect", Err: err}
	}
	conn.SetMaxOpenConns(1)
	conn.SetMaxIdleConns(0)
	if err := conn.PingContext(ctx); err != nil {
		conn.Close()
		return nil, &insurance.StorageError{Op: "connect", Err: err}
	}
	return conn, nil
}

// EnsureSchema creates the predictions table when it does not exist.
func (g *Gateway) EnsureSchema(ctx context.Context) error {
	ddl, err := schemaFor(g.driver)
	if err != nil {
		return &insurance.StorageError{Op: "schema", Err: err}
	}
	conn, err := g.open(ctx)
	if err != nil {
		return err
	}
	defer conn.Close()

	if _, err := conn.ExecContext(ctx, ddl); err != nil {
		return &insurance.StorageError{Op: "schema", Err: err}
	}
	return nil
}

// InsertPrediction stores rec in one committed statement and sets rec.ID.
// A failed insert is rolled back before the connection is closed.
func (g *Gateway) InsertPrediction(ctx context.Context, rec *insurance.PredictionRecord) error {
	conn, err := g.open(ctx)
	if err != nil {
		return err
	}
	defer conn.Close()

	tx, err := conn.BeginTx(ctx, nil)
	if err != nil {
		return &insurance.StorageError{Op: "insert", Err: err}
	}

	res, err := tx.ExecContext(ctx, insertPredictionSQL,
		rec.Name,
		rec.Age,
		rec.Sex,
		rec.BMI,
		rec.Children,
		rec.Smoker,
		rec.PredictedCharges,
	)
	if err != nil {
		tx.Rollback()
		return &insurance.StorageError{Op: "insert", Err: err}
	}
	id, err := res.LastInsertId()
	if err != nil {
		tx.Rollback()
		return &insurance.StorageError{Op: "insert", Err: err}
	}
	if err := tx.Commit(); err != nil {
		return &insurance.StorageError{Op: "commit", Err: err}
	}
	rec.ID = id
	return nil
}

// FetchAllPredictions returns every stored record by ascending id. An empty
// table gives an empty slice.
func (g *Gateway) FetchAllPredictions(ctx context.Context) ([]insurance.PredictionRecord, error) {
	conn, err := g.open(ctx)
	if err != nil {
		return nil, err
	}
	defer conn.Close()

	rows, err := conn.QueryContext(ctx, selectPredictionsSQL)
	if err != nil {
		return nil, &insurance.StorageError{Op: "query", Err: err}
	}
	defer rows.Close()

	records := make([]insurance.PredictionRecord, 0)
	for rows.Next() {
		var r insurance.PredictionRecord
		if err := rows.Scan(&r.ID, &r.Name, &r.Age, &r.Sex, &r.BMI, &r.Children, &r.Smoker, &r.PredictedCharges); err != nil {
			return nil, &insurance.StorageError{Op: "scan", Err: err}
		}
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, &insurance.StorageError{Op: "scan", Err: err}
	}
	return records, nil
}
