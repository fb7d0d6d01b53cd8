package user

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/patrickmn/go-cache"
)

const userColumns = `u.user_id, u.username, u.password_hash, u.first_name, u.last_name, u.email, u.phone_number, COALESCE(u.role_id, 0), COALESCE(r.role_name, '')`

const userFrom = ` FROM room_booking.users u LEFT JOIN room_booking.roles r ON r.role_id = u.role_id`

// Repository reads and writes users, roles and permissions. By-id user
// lookups go through a short-lived cache because the booking lifecycle
// resolves the requesting user's role on every creation.
type Repository struct {
	conn  *pgx.Conn
	cache *cache.Cache
}

func NewRepository(conn *pgx.Conn) *Repository {
	return &Repository{
		conn:  conn,
		cache: cache.New(1*time.Minute, 5*time.Minute),
	}
}

func (r *Repository) GetAllUsers(ctx context.Context) ([]User, error) {
	sql := `SELECT ` + userColumns + userFrom + `;`

	users, err := r.queryUsers(ctx, sql)

	if err != nil {
		return nil, fmt.Errorf("failed to fetch users: %w", err)
	}

	return users, nil
}

func (r *Repository) GetUserByID(ctx context.Context, id int64) (User, error) {
	key := strconv.FormatInt(id, 10)

	if cached, found := r.cache.Get(key); found {
		return cached.(User), nil
	}

	sql := `SELECT ` + userColumns + userFrom + ` WHERE u.user_id=$1;`

	user, err := r.scanUserRow(r.conn.QueryRow(ctx, sql, id))

	if errors.Is(err, pgx.ErrNoRows) {
		return User{}, ErrUserNotFound
	}

	if err != nil {
		return User{}, fmt.Errorf("failed to fetch user with id %v: %w", id, err)
	}

	r.cache.Set(key, user, cache.DefaultExpiration)

	return user, nil
}

func (r *Repository) GetUserByUsername(ctx context.Context, username string) (User, error) {
	sql := `SELECT ` + userColumns + userFrom + ` WHERE u.username=$1;`

	user, err := r.scanUserRow(r.conn.QueryRow(ctx, sql, username))

	if errors.Is(err, pgx.ErrNoRows) {
		return User{}, ErrUserNotFound
	}

	if err != nil {
		return User{}, fmt.Errorf("failed to fetch user '%v': %w", username, err)
	}

	return user, nil
}

func (r *Repository) UserExistsByUsername(ctx context.Context, username string) (bool, error) {
	sql := `SELECT EXISTS (SELECT 1 FROM room_booking.users WHERE username=$1);`

	var exists bool

	if err := r.conn.QueryRow(ctx, sql, username).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check username '%v' existence: %w", username, err)
	}

	return exists, nil
}

func (r *Repository) UserExistsByEmail(ctx context.Context, email string) (bool, error) {
	sql := `SELECT EXISTS (SELECT 1 FROM room_booking.users WHERE email=$1);`

	var exists bool

	if err := r.conn.QueryRow(ctx, sql, email).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check email existence: %w", err)
	}

	return exists, nil
}

func (r *Repository) InsertUser(ctx context.Context, user User) (User, error) {
	sql := `
			INSERT INTO room_booking.users(username, password_hash, first_name, last_name, email, phone_number, role_id)
			VALUES ($1, $2, $3, $4, $5, $6, NULLIF($7, 0))
			RETURNING user_id;
		`

	err := r.conn.QueryRow(ctx, sql,
		user.Username,
		user.PasswordHash,
		user.FirstName,
		user.LastName,
		user.Email,
		user.PhoneNumber,
		user.RoleID,
	).Scan(&user.ID)

	if err != nil {
		return User{}, fmt.Errorf("failed to insert user: %w", err)
	}

	return user, nil
}

func (r *Repository) UpdateUser(ctx context.Context, user User) error {
	sql := `
			UPDATE room_booking.users
			SET
				username=$1,
				password_hash=$2,
				first_name=$3,
				last_name=$4,
				email=$5,
				phone_number=$6,
				role_id=NULLIF($7, 0)
			WHERE user_id=$8;
		`

	tag, err := r.conn.Exec(ctx, sql,
		user.Username,
		user.PasswordHash,
		user.FirstName,
		user.LastName,
		user.Email,
		user.PhoneNumber,
		user.RoleID,
		user.ID,
	)

	if err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return ErrUserNotFound
	}

	r.cache.Delete(strconv.FormatInt(user.ID, 10))

	return nil
}

func (r *Repository) DeleteUser(ctx context.Context, id int64) error {
	sql := `DELETE FROM room_booking.users WHERE user_id=$1;`

	tag, err := r.conn.Exec(ctx, sql, id)

	if err != nil {
		return fmt.Errorf("failed to delete user '%v': %w", id, err)
	}

	if tag.RowsAffected() == 0 {
		return ErrUserNotFound
	}

	r.cache.Delete(strconv.FormatInt(id, 10))

	return nil
}

func (r *Repository) GetAllRoles(ctx context.Context) ([]Role, error) {
	sql := `SELECT role_id, role_name FROM room_booking.roles;`

	return queryNamedRows(ctx, r.conn, sql, func(id int64, name string) Role { return Role{ID: id, Name: name} })
}

func (r *Repository) GetRoleByID(ctx context.Context, id int64) (Role, error) {
	sql := `SELECT role_id, role_name FROM room_booking.roles WHERE role_id=$1;`

	var role Role
	err := r.conn.QueryRow(ctx, sql, id).Scan(&role.ID, &role.Name)

	if errors.Is(err, pgx.ErrNoRows) {
		return Role{}, ErrRoleNotFound
	}

	if err != nil {
		return Role{}, fmt.Errorf("failed to fetch role with id %v: %w", id, err)
	}

	return role, nil
}

func (r *Repository) InsertRole(ctx context.Context, role Role) (Role, error) {
	sql := `INSERT INTO room_booking.roles(role_name) VALUES ($1) RETURNING role_id;`

	if err := r.conn.QueryRow(ctx, sql, role.Name).Scan(&role.ID); err != nil {
		return Role{}, fmt.Errorf("failed to insert role: %w", err)
	}

	return role, nil
}

func (r *Repository) UpdateRole(ctx context.Context, role Role) error {
	sql := `UPDATE room_booking.roles SET role_name=$1 WHERE role_id=$2;`

	tag, err := r.conn.Exec(ctx, sql, role.Name, role.ID)

	if err != nil {
		return fmt.Errorf("failed to update role: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return ErrRoleNotFound
	}

	// role names feed the cached user lookups
	r.cache.Flush()

	return nil
}

func (r *Repository) DeleteRole(ctx context.Context, id int64) error {
	sql := `DELETE FROM room_booking.roles WHERE role_id=$1;`

	tag, err := r.conn.Exec(ctx, sql, id)

	if err != nil {
		return fmt.Errorf("failed to delete role '%v': %w", id, err)
	}

	if tag.RowsAffected() == 0 {
		return ErrRoleNotFound
	}

	r.cache.Flush()

	return nil
}

func (r *Repository) GetAllPermissions(ctx context.Context) ([]Permission, error) {
	sql := `SELECT permission_id, permission_name FROM room_booking.permissions;`

	return queryNamedRows(ctx, r.conn, sql, func(id int64, name string) Permission { return Permission{ID: id, Name: name} })
}

func (r *Repository) GetPermissionByID(ctx context.Context, id int64) (Permission, error) {
	sql := `SELECT permission_id, permission_name FROM room_booking.permissions WHERE permission_id=$1;`

	var permission Permission
	err := r.conn.QueryRow(ctx, sql, id).Scan(&permission.ID, &permission.Name)

	if errors.Is(err, pgx.ErrNoRows) {
		return Permission{}, ErrPermissionNotFound
	}

	if err != nil {
		return Permission{}, fmt.Errorf("failed to fetch permission with id %v: %w", id, err)
	}

	return permission, nil
}

func (r *Repository) GetPermissionsPerRole(ctx context.Context, roleID int64) ([]Permission, error) {
	sql := `
			SELECT p.permission_id, p.permission_name
			FROM room_booking.permissions p
			JOIN room_booking.role_permissions rp ON rp.permission_id = p.permission_id
			WHERE rp.role_id=$1;
		`

	return queryNamedRows(ctx, r.conn, sql, func(id int64, name string) Permission { return Permission{ID: id, Name: name} }, roleID)
}

func (r *Repository) InsertPermission(ctx context.Context, permission Permission) (Permission, error) {
	sql := `INSERT INTO room_booking.permissions(permission_name) VALUES ($1) RETURNING permission_id;`

	if err := r.conn.QueryRow(ctx, sql, permission.Name).Scan(&permission.ID); err != nil {
		return Permission{}, fmt.Errorf("failed to insert permission: %w", err)
	}

	return permission, nil
}

func (r *Repository) UpdatePermission(ctx context.Context, permission Permission) error {
	sql := `UPDATE room_booking.permissions SET permission_name=$1 WHERE permission_id=$2;`

	tag, err := r.conn.Exec(ctx, sql, permission.Name, permission.ID)

	if err != nil {
		return fmt.Errorf("failed to update permission: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return ErrPermissionNotFound
	}

	return nil
}

func (r *Repository) DeletePermission(ctx context.Context, id int64) error {
	sql := `DELETE FROM room_booking.permissions WHERE permission_id=$1;`

	tag, err := r.conn.Exec(ctx, sql, id)

	if err != nil {
		return fmt.Errorf("failed to delete permission '%v': %w", id, err)
	}

	if tag.RowsAffected() == 0 {
		return ErrPermissionNotFound
	}

	return nil
}

func (r *Repository) scanUserRow(row pgx.Row) (User, error) {
	var user User
	err := row.Scan(
		&user.ID,
		&user.Username,
		&user.PasswordHash,
		&user.FirstName,
		&user.LastName,
		&user.Email,
		&user.PhoneNumber,
		&user.RoleID,
		&user.RoleName,
	)

	return user, err
}

func (r *Repository) queryUsers(ctx context.Context, sql string, args ...any) ([]User, error) {
	rows, err := r.conn.Query(ctx, sql, args...)

	if err != nil {
		return nil, err
	}

	defer rows.Close()

	var users []User

	for rows.Next() {
		var user User
		err := rows.Scan(
			&user.ID,
			&user.Username,
			&user.PasswordHash,
			&user.FirstName,
			&user.LastName,
			&user.Email,
			&user.PhoneNumber,
			&user.RoleID,
			&user.RoleName,
		)

		if err != nil {
			return nil, fmt.Errorf("error scanning user row: %w", err)
		}

		users = append(users, user)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating user rows: %w", err)
	}

	return users, nil
}

func queryNamedRows[T any](ctx context.Context, conn *pgx.Conn, sql string, build func(int64, string) T, args ...any) ([]T, error) {
	rows, err := conn.Query(ctx, sql, args...)

	if err != nil {
		return nil, fmt.Errorf("failed to fetch rows: %w", err)
	}

	defer rows.Close()

	var items []T

	for rows.Next() {
		var id int64
		var name string

		if err := rows.Scan(&id, &name); err != nil {
			return nil, fmt.Errorf("error scanning row: %w", err)
		}

		items = append(items, build(id, name))
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return items, nil
}
