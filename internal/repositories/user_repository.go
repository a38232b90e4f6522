package repositories

import (
	"database/sql"
	"errors"

	intconfig "metrobook/internal/config"
	"metrobook/internal/domain"
	"metrobook/internal/domain/models"

	"github.com/go-sql-driver/mysql"
)

// UserRepository covers both passenger accounts (users table) and employee
// accounts. Credential hashes are stored and compared by the auth handlers.
type UserRepository struct {
	DB *sql.DB
}

func (r UserRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

// FindPassengerByUsername matches case- and whitespace-insensitively.
func (r UserRepository) FindPassengerByUsername(username string) (models.Passenger, string, error) {
	var (
		p    models.Passenger
		hash string
		name sql.NullString
	)
	err := r.db().QueryRow(`
		SELECT name, username, password
		FROM users
		WHERE TRIM(LOWER(username)) = TRIM(LOWER(?))
	`, username).Scan(&name, &p.Username, &hash)
	if err != nil {
		return p, "", err
	}
	if name.Valid {
		p.Name = name.String
	} else {
		p.Name = p.Username
	}
	return p, hash, nil
}

// PassengerNameByID returns the display name for an identity number.
func (r UserRepository) PassengerNameByID(id string) (string, error) {
	var name sql.NullString
	err := r.db().QueryRow(`SELECT name FROM users WHERE id = ?`, id).Scan(&name)
	if err != nil {
		return "", err
	}
	if !name.Valid || name.String == "" {
		return "", sql.ErrNoRows
	}
	return name.String, nil
}

// CreatePassenger inserts a new passenger account. Duplicate id, username or
// email maps to a conflict.
func (r UserRepository) CreatePassenger(p models.Passenger, passwordHash string) error {
	_, err := r.db().Exec(`
		INSERT INTO users (
			id, name, date_of_birth, resettle_date, address,
			username, password, email, phone, priority_card_path
		)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		p.ID,
		p.Name,
		p.BirthDate,
		p.ResettleDate,
		p.Address,
		p.Username,
		passwordHash,
		p.Email,
		p.Phone,
		p.CardPath,
	)
	if err != nil {
		var me *mysql.MySQLError
		if errors.As(err, &me) && me.Number == 1062 {
			return domain.ConflictError{Resource: "account", Msg: "id, username or email already registered", Err: err}
		}
		return err
	}
	return nil
}

// FindEmployeeByCredential accepts either the employee id or the username.
func (r UserRepository) FindEmployeeByCredential(credential string) (models.Employee, string, error) {
	var (
		e    models.Employee
		hash string
	)
	err := r.db().QueryRow(`
		SELECT employee_id, name, password
		FROM employee
		WHERE TRIM(LOWER(CAST(employee_id AS CHAR))) = TRIM(LOWER(?))
		   OR TRIM(LOWER(username)) = TRIM(LOWER(?))
	`, credential, credential).Scan(&e.ID, &e.Name, &hash)
	if err != nil {
		return e, "", err
	}
	return e, hash, nil
}

// CreateEmployee inserts a staff account.
func (r UserRepository) CreateEmployee(e models.Employee, passwordHash string) error {
	_, err := r.db().Exec(`
		INSERT INTO employee (employee_id, name, username, password, email, phone)
		VALUES (?, ?, ?, ?, ?, ?)
	`, e.ID, e.Name, e.Username, passwordHash, e.Email, e.Phone)
	if err != nil {
		var me *mysql.MySQLError
		if errors.As(err, &me) && me.Number == 1062 {
			return domain.ConflictError{Resource: "account", Msg: "employee id, username or email already registered", Err: err}
		}
		return err
	}
	return nil
}
