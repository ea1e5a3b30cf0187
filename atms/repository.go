package atms

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"atmlocator/model"

	"github.com/go-sql-driver/mysql"
)

var (
	ErrAtmNotFound  = errors.New("atm not found")
	ErrDuplicateAtm = errors.New("atm with same id already exists")
)

// mysqlDuplicateEntry is ER_DUP_ENTRY.
const mysqlDuplicateEntry = 1062

func EnsureSchema(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, queryToCreateAtmsTable()); err != nil {
		return fmt.Errorf("create atms table: %w", err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAtm(row rowScanner) (model.Atm, error) {
	var a model.Atm
	err := row.Scan(&a.Id, &a.Name, &a.Address, &a.BranchCode, &a.BranchManager, &a.Latitude, &a.Longitude, &a.Phone, &a.WorkingHours)
	return a, err
}

func ListAtms(ctx context.Context, db *sql.DB) ([]model.Atm, error) {
	rows, err := db.QueryContext(ctx, queryToGetAllAtms())
	if err != nil {
		return nil, fmt.Errorf("query atms: %w", err)
	}
	defer rows.Close()

	atms := make([]model.Atm, 0)
	for rows.Next() {
		a, err := scanAtm(rows)
		if err != nil {
			return nil, fmt.Errorf("scan atm: %w", err)
		}
		atms = append(atms, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate atms: %w", err)
	}
	return atms, nil
}

func GetAtm(ctx context.Context, db *sql.DB, id string) (model.Atm, error) {
	a, err := scanAtm(db.QueryRowContext(ctx, queryToGetAtmById(), id))
	if errors.Is(err, sql.ErrNoRows) {
		return model.Atm{}, ErrAtmNotFound
	}
	if err != nil {
		return model.Atm{}, fmt.Errorf("get atm %s: %w", id, err)
	}
	return a, nil
}

// InsertAtm stores a in one transaction, rejecting duplicate ids.
func InsertAtm(ctx context.Context, db *sql.DB, a model.Atm) (err error) {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}

	rollback := true
	defer func() {
		if rollback {
			_ = tx.Rollback()
		}
	}()

	var count int
	if err = tx.QueryRowContext(ctx, queryToCheckIfAtmExists(), a.Id).Scan(&count); err != nil {
		return fmt.Errorf("check atm %s: %w", a.Id, err)
	}
	if count > 0 {
		return ErrDuplicateAtm
	}

	_, err = tx.ExecContext(ctx, queryToAddAtm(), a.Id, a.Name, a.Address, a.BranchCode, a.BranchManager, a.Latitude, a.Longitude, a.Phone, a.WorkingHours)
	if err != nil {
		var mysqlErr *mysql.MySQLError
		if errors.As(err, &mysqlErr) && mysqlErr.Number == mysqlDuplicateEntry {
			return ErrDuplicateAtm
		}
		return fmt.Errorf("insert atm %s: %w", a.Id, err)
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit atm %s: %w", a.Id, err)
	}
	rollback = false
	return nil
}
