package room

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/patrickmn/go-cache"
)

const roomColumns = `room_id, room_name, capacity, location, available, restricted`

// Repository reads and writes rooms, their equipment and their fixed
// schedules. By-id lookups go through a short-lived cache because the booking
// lifecycle resolves the room on every creation and approval.
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

func (r *Repository) GetAllRooms(ctx context.Context) ([]Room, error) {
	sql := `SELECT ` + roomColumns + ` FROM room_booking.rooms;`

	rooms, err := r.queryRooms(ctx, sql)

	if err != nil {
		return nil, fmt.Errorf("failed to fetch rooms: %w", err)
	}

	return rooms, nil
}

func (r *Repository) GetRoomByID(ctx context.Context, id int64) (Room, error) {
	key := strconv.FormatInt(id, 10)

	if cached, found := r.cache.Get(key); found {
		return cached.(Room), nil
	}

	sql := `SELECT ` + roomColumns + ` FROM room_booking.rooms WHERE room_id=$1;`

	var room Room
	err := r.conn.QueryRow(ctx, sql, id).Scan(
		&room.ID,
		&room.Name,
		&room.Capacity,
		&room.Location,
		&room.Available,
		&room.Restricted,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return Room{}, ErrRoomNotFound
	}

	if err != nil {
		return Room{}, fmt.Errorf("failed to fetch room with id %v: %w", id, err)
	}

	r.cache.Set(key, room, cache.DefaultExpiration)

	return room, nil
}

func (r *Repository) GetAvailableRooms(ctx context.Context) ([]Room, error) {
	sql := `SELECT ` + roomColumns + ` FROM room_booking.rooms WHERE available=TRUE;`

	rooms, err := r.queryRooms(ctx, sql)

	if err != nil {
		return nil, fmt.Errorf("failed to fetch available rooms: %w", err)
	}

	return rooms, nil
}

func (r *Repository) GetRoomsWithMinCapacity(ctx context.Context, capacity int) ([]Room, error) {
	sql := `SELECT ` + roomColumns + ` FROM room_booking.rooms WHERE capacity >= $1;`

	rooms, err := r.queryRooms(ctx, sql, capacity)

	if err != nil {
		return nil, fmt.Errorf("failed to fetch rooms with capacity >= %v: %w", capacity, err)
	}

	return rooms, nil
}

// GetRoomsFreeBetween returns the rooms with no confirmed booking colliding
// with [start, end), under the same overlap rule the availability check uses.
func (r *Repository) GetRoomsFreeBetween(ctx context.Context, start, end time.Time) ([]Room, error) {
	sql := `
			SELECT ` + roomColumns + ` FROM room_booking.rooms
			WHERE room_id NOT IN (
				SELECT room_id FROM room_booking.bookings
				WHERE status='confirmed'
				AND ((start_time <= $2 AND end_time >= $1) OR (start_time >= $1 AND start_time < $2))
			);
		`

	rooms, err := r.queryRooms(ctx, sql, start, end)

	if err != nil {
		return nil, fmt.Errorf("failed to fetch free rooms: %w", err)
	}

	return rooms, nil
}

func (r *Repository) InsertRoom(ctx context.Context, room Room) (Room, error) {
	sql := `
			INSERT INTO room_booking.rooms(room_name, capacity, location, available, restricted)
			VALUES ($1, $2, $3, $4, $5)
			RETURNING room_id;
		`

	err := r.conn.QueryRow(ctx, sql,
		room.Name,
		room.Capacity,
		room.Location,
		room.Available,
		room.Restricted,
	).Scan(&room.ID)

	if err != nil {
		return Room{}, fmt.Errorf("failed to insert room: %w", err)
	}

	return room, nil
}

func (r *Repository) UpdateRoom(ctx context.Context, room Room) error {
	sql := `
			UPDATE room_booking.rooms
			SET
				room_name=$1,
				capacity=$2,
				location=$3,
				available=$4,
				restricted=$5
			WHERE room_id=$6;
		`

	tag, err := r.conn.Exec(ctx, sql,
		room.Name,
		room.Capacity,
		room.Location,
		room.Available,
		room.Restricted,
		room.ID,
	)

	if err != nil {
		return fmt.Errorf("failed to update room: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return ErrRoomNotFound
	}

	r.cache.Delete(strconv.FormatInt(room.ID, 10))

	return nil
}

func (r *Repository) DeleteRoom(ctx context.Context, id int64) error {
	sql := `DELETE FROM room_booking.rooms WHERE room_id=$1;`

	tag, err := r.conn.Exec(ctx, sql, id)

	if err != nil {
		return fmt.Errorf("failed to delete room '%v': %w", id, err)
	}

	if tag.RowsAffected() == 0 {
		return ErrRoomNotFound
	}

	r.cache.Delete(strconv.FormatInt(id, 10))

	return nil
}

func (r *Repository) GetEquipmentPerRoom(ctx context.Context, roomID int64) ([]Equipment, error) {
	sql := `
			SELECT equipment_id, room_id, equipment_name, description, is_available
			FROM room_booking.room_equipment
			WHERE room_id=$1;
		`

	rows, err := r.conn.Query(ctx, sql, roomID)

	if err != nil {
		return nil, fmt.Errorf("failed to fetch equipment for room %v: %w", roomID, err)
	}

	defer rows.Close()

	var equipment []Equipment

	for rows.Next() {
		var item Equipment
		err := rows.Scan(&item.ID, &item.RoomID, &item.Name, &item.Description, &item.Available)

		if err != nil {
			return nil, fmt.Errorf("error scanning equipment row: %w", err)
		}

		equipment = append(equipment, item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating equipment rows: %w", err)
	}

	return equipment, nil
}

func (r *Repository) SaveEquipment(ctx context.Context, item Equipment) (Equipment, error) {
	sql := `
			INSERT INTO room_booking.room_equipment(room_id, equipment_name, description, is_available)
			VALUES ($1, $2, $3, $4)
			RETURNING equipment_id;
		`

	err := r.conn.QueryRow(ctx, sql, item.RoomID, item.Name, item.Description, item.Available).Scan(&item.ID)

	if err != nil {
		return Equipment{}, fmt.Errorf("failed to insert equipment: %w", err)
	}

	return item, nil
}

func (r *Repository) GetSchedulesPerRoom(ctx context.Context, roomID int64) ([]Schedule, error) {
	sql := `
			SELECT schedule_id, room_id, start_time, end_time, usage
			FROM room_booking.schedule
			WHERE room_id=$1;
		`

	return r.querySchedules(ctx, sql, roomID)
}

func (r *Repository) GetSchedulesPerRoomBetween(ctx context.Context, roomID int64, start, end time.Time) ([]Schedule, error) {
	sql := `
			SELECT schedule_id, room_id, start_time, end_time, usage
			FROM room_booking.schedule
			WHERE room_id=$1 AND start_time BETWEEN $2 AND $3;
		`

	return r.querySchedules(ctx, sql, roomID, start, end)
}

func (r *Repository) SaveSchedule(ctx context.Context, schedule Schedule) (Schedule, error) {
	sql := `
			INSERT INTO room_booking.schedule(room_id, start_time, end_time, usage)
			VALUES ($1, $2, $3, $4)
			RETURNING schedule_id;
		`

	err := r.conn.QueryRow(ctx, sql, schedule.RoomID, schedule.StartTime, schedule.EndTime, schedule.Usage).Scan(&schedule.ID)

	if err != nil {
		return Schedule{}, fmt.Errorf("failed to insert schedule: %w", err)
	}

	return schedule, nil
}

func (r *Repository) querySchedules(ctx context.Context, sql string, args ...any) ([]Schedule, error) {
	rows, err := r.conn.Query(ctx, sql, args...)

	if err != nil {
		return nil, fmt.Errorf("failed to fetch schedules: %w", err)
	}

	defer rows.Close()

	var schedules []Schedule

	for rows.Next() {
		var schedule Schedule
		err := rows.Scan(&schedule.ID, &schedule.RoomID, &schedule.StartTime, &schedule.EndTime, &schedule.Usage)

		if err != nil {
			return nil, fmt.Errorf("error scanning schedule row: %w", err)
		}

		schedules = append(schedules, schedule)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating schedule rows: %w", err)
	}

	return schedules, nil
}

func (r *Repository) queryRooms(ctx context.Context, sql string, args ...any) ([]Room, error) {
	rows, err := r.conn.Query(ctx, sql, args...)

	if err != nil {
		return nil, err
	}

	defer rows.Close()

	var rooms []Room

	for rows.Next() {
		var room Room
		err := rows.Scan(
			&room.ID,
			&room.Name,
			&room.Capacity,
			&room.Location,
			&room.Available,
			&room.Restricted,
		)

		if err != nil {
			return nil, fmt.Errorf("error scanning room row: %w", err)
		}

		rooms = append(rooms, room)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating room rows: %w", err)
	}

	return rooms, nil
}
