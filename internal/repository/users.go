package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/pairloom/profiles/internal/database"
	"github.com/pairloom/profiles/internal/model"
	"github.com/pairloom/profiles/internal/server"
	"github.com/rs/zerolog"
)

// userColumns is the canonical column list; every SELECT uses it so scan
// order is fixed in one place.
const userColumns = "user_id, name, age, location, gender, preferences, video_clip"

// UserRepository is the record store for user profiles. Absent records
// surface as sql.ErrNoRows; key collisions surface as the driver's
// unique-violation error straight from the primary-key constraint, which
// is what makes concurrent creates on one id have at most one winner.
type UserRepository struct {
	db  *database.Database
	log *zerolog.Logger
}

// NewUserRepository constructs a UserRepository from the application
// container.
func NewUserRepository(s *server.Server) *UserRepository {
	return &UserRepository{
		db:  s.DB,
		log: s.Logger,
	}
}

// List returns every record matching the conjunction of the supplied
// predicates, ordered by key. No predicates means every record. An
// empty result is a non-nil empty slice.
func (r *UserRepository) List(ctx context.Context, filter model.UserFilter) ([]model.User, error) {
	query := "SELECT " + userColumns + " FROM users"

	var conds []string
	var args []any
	if filter.Location != nil {
		conds = append(conds, "location = ?")
		args = append(args, *filter.Location)
	}
	if filter.MinAge != nil {
		conds = append(conds, "age >= ?")
		args = append(args, *filter.MinAge)
	}
	if filter.MaxAge != nil {
		conds = append(conds, "age <= ?")
		args = append(args, *filter.MaxAge)
	}
	if filter.Gender != nil {
		conds = append(conds, "gender = ?")
		args = append(args, *filter.Gender)
	}
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY user_id"

	rows, err := r.db.DB.QueryContext(ctx, r.db.Rebind(query), args...)
	if err != nil {
		return nil, fmt.Errorf("listing users: %w", err)
	}
	defer rows.Close()

	users := []model.User{}
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, *user)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating users: %w", err)
	}

	return users, nil
}

// GetByID looks up a single record by primary key. Returns sql.ErrNoRows
// when no record has that id.
func (r *UserRepository) GetByID(ctx context.Context, id int64) (*model.User, error) {
	query := r.db.Rebind("SELECT " + userColumns + " FROM users WHERE user_id = ?")
	return scanUser(r.db.DB.QueryRowContext(ctx, query, id))
}

// Create inserts a new record and returns it as persisted. The
// primary-key constraint rejects duplicates atomically, leaving the
// store untouched; the resulting driver error carries the
// unique-violation code for the service layer to classify.
func (r *UserRepository) Create(ctx context.Context, user model.User) (*model.User, error) {
	prefs, err := marshalPreferences(user.Preferences)
	if err != nil {
		return nil, err
	}

	query := r.db.Rebind("INSERT INTO users (" + userColumns + ") VALUES (?, ?, ?, ?, ?, ?, ?)")
	_, err = r.db.DB.ExecContext(ctx, query,
		user.UserID, user.Name, user.Age, user.Location, user.Gender, prefs, user.VideoClip)
	if err != nil {
		return nil, err
	}

	return r.GetByID(ctx, user.UserID)
}

// Replace overwrites every non-key field of the record at id with the
// supplied values. The path id is authoritative: the supplied record's
// own UserID is ignored for the lookup and the key never changes.
// Returns sql.ErrNoRows when no record exists at id; it never creates.
func (r *UserRepository) Replace(ctx context.Context, id int64, user model.User) (*model.User, error) {
	prefs, err := marshalPreferences(user.Preferences)
	if err != nil {
		return nil, err
	}

	query := r.db.Rebind(`UPDATE users
		SET name = ?, age = ?, location = ?, gender = ?, preferences = ?, video_clip = ?
		WHERE user_id = ?`)
	res, err := r.db.DB.ExecContext(ctx, query,
		user.Name, user.Age, user.Location, user.Gender, prefs, user.VideoClip, id)
	if err != nil {
		return nil, fmt.Errorf("replacing user: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("replacing user: %w", err)
	}
	if affected == 0 {
		return nil, sql.ErrNoRows
	}

	return r.GetByID(ctx, id)
}

// Delete removes the record at id. Returns sql.ErrNoRows when no record
// exists, so a second delete of the same id fails the same way.
func (r *UserRepository) Delete(ctx context.Context, id int64) error {
	query := r.db.Rebind("DELETE FROM users WHERE user_id = ?")
	res, err := r.db.DB.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("deleting user: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting user: %w", err)
	}
	if affected == 0 {
		return sql.ErrNoRows
	}

	return nil
}

// scanner covers both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanUser(s scanner) (*model.User, error) {
	var user model.User
	var prefs []byte

	err := s.Scan(&user.UserID, &user.Name, &user.Age, &user.Location,
		&user.Gender, &prefs, &user.VideoClip)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(prefs, &user.Preferences); err != nil {
		return nil, fmt.Errorf("decoding preferences: %w", err)
	}

	return &user, nil
}

// marshalPreferences serializes the opaque preferences document for
// storage. A nil map still stores as an empty object so the column's
// NOT NULL constraint holds.
func marshalPreferences(prefs map[string]any) ([]byte, error) {
	if prefs == nil {
		prefs = map[string]any{}
	}
	data, err := json.Marshal(prefs)
	if err != nil {
		return nil, fmt.Errorf("encoding preferences: %w", err)
	}
	return data, nil
}
