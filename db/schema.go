package db

import "fmt"

const mysqlSchema = `
    CREATE TABLE IF NOT EXISTS predictions (
        id INT AUTO_INCREMENT PRIMARY KEY,
        nama VARCHAR(255) NOT NULL,
        age INT NOT NULL,
        sex TINYINT NOT NULL,
        bmi DOUBLE NOT NULL,
        children INT NOT NULL,
        smoker TINYINT NOT NULL,
        predicted_charges DOUBLE NOT NULL
    )`

const sqliteSchema = `
    CREATE TABLE IF NOT EXISTS predictions (
        id INTEGER PRIMARY KEY AUTOINCREMENT,
        nama TEXT NOT NULL,
        age INTEGER NOT NULL,
        sex INTEGER NOT NULL,
        bmi REAL NOT NULL,
        children INTEGER NOT NULL,
        smoker INTEGER NOT NULL,
        predicted_charges REAL NOT NULL
    )`

func schemaFor(driver string) (string, error) {
	switch driver {
	case DriverMySQL:
		return mysqlSchema, nil
	case DriverSQLite:
		return sqliteSchema, nil
	default:
		return "", fmt.Errorf("no schema for driver %q", driver)
	}
}
