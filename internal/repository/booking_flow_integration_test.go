//go:build integration

package repository

import (
    "context"
    "database/sql"
    "os"
    "sync"
    "testing"
    "time"

    "github.com/iliyamo/hotel-reservation/internal/database"
    "github.com/iliyamo/hotel-reservation/internal/model"
)

// The tests in this file need a real MySQL server because they verify
// the row-lock serialization of booking mutations. Point them at a
// scratch database with TEST_DB_USER / TEST_DB_PASS / TEST_DB_HOST /
// TEST_DB_PORT / TEST_DB_NAME and run with -tags integration.

func openTestDB(t *testing.T) *sql.DB {
    t.Helper()
    user := os.Getenv("TEST_DB_USER")
    if user == "" {
        t.Skip("TEST_DB_USER not set")
    }
    host := os.Getenv("TEST_DB_HOST")
    if host == "" {
        host = "127.0.0.1"
    }
    port := os.Getenv("TEST_DB_PORT")
    if port == "" {
        port = "3306"
    }
    name := os.Getenv("TEST_DB_NAME")
    if name == "" {
        name = "hotel_test"
    }
    db, err := database.Open(user, os.Getenv("TEST_DB_PASS"), host, port, name)
    if err != nil {
        t.Fatalf("open test database: %v", err)
    }
    t.Cleanup(func() { db.Close() })
    return db
}

var testSchema = []string{
    `CREATE TABLE IF NOT EXISTS rooms (
        id BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
        room_number VARCHAR(16) NOT NULL,
        floor INT NOT NULL,
        capacity INT NOT NULL,
        category_id BIGINT UNSIGNED NOT NULL
    ) ENGINE=InnoDB`,
    `CREATE TABLE IF NOT EXISTS booking_statuses (
        id BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
        status_name VARCHAR(64) NOT NULL
    ) ENGINE=InnoDB`,
    `CREATE TABLE IF NOT EXISTS bookings (
        id BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
        client_id BIGINT UNSIGNED NULL,
        staff_id BIGINT UNSIGNED NULL,
        booked_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
        arrival_date DATE NOT NULL,
        departure_date DATE NOT NULL,
        booking_status_id BIGINT UNSIGNED NOT NULL,
        total_cost_cents INT UNSIGNED NOT NULL
    ) ENGINE=InnoDB`,
    `CREATE TABLE IF NOT EXISTS booking_rooms (
        booking_id BIGINT UNSIGNED NOT NULL,
        room_id BIGINT UNSIGNED NOT NULL,
        PRIMARY KEY (booking_id, room_id)
    ) ENGINE=InnoDB`,
}

// setupBookingFixture creates the tables the booking engine touches,
// wipes them, and seeds one room and a CONFIRMED status. Returns the
// room id and the status id.
func setupBookingFixture(t *testing.T, db *sql.DB) (uint64, uint64) {
    t.Helper()
    ctx := context.Background()
    for _, stmt := range testSchema {
        if _, err := db.ExecContext(ctx, stmt); err != nil {
            t.Fatalf("create schema: %v", err)
        }
    }
    for _, table := range []string{"booking_rooms", "bookings", "booking_statuses", "rooms"} {
        if _, err := db.ExecContext(ctx, "DELETE FROM "+table); err != nil {
            t.Fatalf("clean %s: %v", table, err)
        }
    }
    res, err := db.ExecContext(ctx,
        `INSERT INTO rooms (room_number, floor, capacity, category_id) VALUES ('101', 1, 2, 1)`)
    if err != nil {
        t.Fatalf("seed room: %v", err)
    }
    roomID, _ := res.LastInsertId()
    res, err = db.ExecContext(ctx,
        `INSERT INTO booking_statuses (status_name) VALUES ('CONFIRMED')`)
    if err != nil {
        t.Fatalf("seed status: %v", err)
    }
    statusID, _ := res.LastInsertId()
    return uint64(roomID), uint64(statusID)
}

// attemptCreate runs the same lock-scan-insert sequence the create
// endpoint uses and reports whether the booking was admitted.
func attemptCreate(ctx context.Context, bookings *BookingRepo, rooms *RoomRepo,
    roomID, statusID uint64, stay model.StayRange, vacating map[string]bool) (bool, error) {
    tx, err := bookings.DB().BeginTx(ctx, nil)
    if err != nil {
        return false, err
    }
    committed := false
    defer func() {
        if !committed {
            _ = tx.Rollback()
        }
    }()
    if err := rooms.LockTx(ctx, tx, roomID); err != nil {
        return false, err
    }
    claims, err := bookings.ClaimsForRoomTx(ctx, tx, roomID)
    if err != nil {
        return false, err
    }
    if hit := FirstConflict(claims, stay, 0, vacating); hit != nil {
        return false, nil
    }
    b := &model.Booking{
        Arrival:        stay.Arrival,
        Departure:      stay.Departure,
        StatusID:       statusID,
        TotalCostCents: 10000,
    }
    if err := bookings.CreateTx(ctx, tx, b, roomID); err != nil {
        return false, err
    }
    if err := tx.Commit(); err != nil {
        return false, err
    }
    committed = true
    return true, nil
}

// TestConcurrentCreateSingleWinner fires many simultaneous attempts at
// the same room and range and checks that exactly one booking lands.
func TestConcurrentCreateSingleWinner(t *testing.T) {
    db := openTestDB(t)
    roomID, statusID := setupBookingFixture(t, db)
    bookings := NewBookingRepo(db)
    rooms := NewRoomRepo(db)
    vacating := map[string]bool{"CANCELLED": true}
    stay := model.StayRange{Arrival: date("2026-07-01"), Departure: date("2026-07-05")}

    const workers = 8
    results := make(chan bool, workers)
    errs := make(chan error, workers)
    var start sync.WaitGroup
    start.Add(1)
    var done sync.WaitGroup
    for i := 0; i < workers; i++ {
        done.Add(1)
        go func() {
            defer done.Done()
            start.Wait()
            ok, err := attemptCreate(context.Background(), bookings, rooms, roomID, statusID, stay, vacating)
            if err != nil {
                errs <- err
                return
            }
            results <- ok
        }()
    }
    start.Done()
    done.Wait()
    close(results)
    close(errs)
    for err := range errs {
        t.Fatalf("create attempt failed: %v", err)
    }
    admitted := 0
    for ok := range results {
        if ok {
            admitted++
        }
    }
    if admitted != 1 {
        t.Errorf("admitted %d overlapping bookings, want exactly 1", admitted)
    }
    var count int
    if err := db.QueryRow(`SELECT COUNT(*) FROM bookings`).Scan(&count); err != nil {
        t.Fatalf("count bookings: %v", err)
    }
    if count != 1 {
        t.Errorf("bookings table holds %d rows, want 1", count)
    }
}

// TestUpdateSeesCreateCommittedWhileWaiting starts an update while a
// concurrent create holds the room lock. Once the create commits and
// the update acquires the lock, the update's claims scan must include
// the freshly committed booking. The lock being the update's first
// read is what guarantees this; reading the target booking before the
// lock would pin a snapshot that predates the create.
func TestUpdateSeesCreateCommittedWhileWaiting(t *testing.T) {
    db := openTestDB(t)
    roomID, statusID := setupBookingFixture(t, db)
    bookings := NewBookingRepo(db)
    rooms := NewRoomRepo(db)
    vacating := map[string]bool{"CANCELLED": true}
    ctx := context.Background()

    seed := model.StayRange{Arrival: date("2026-08-01"), Departure: date("2026-08-03")}
    ok, err := attemptCreate(ctx, bookings, rooms, roomID, statusID, seed, vacating)
    if err != nil || !ok {
        t.Fatalf("seed booking: admitted=%v err=%v", ok, err)
    }
    var targetID uint64
    if err := db.QueryRow(`SELECT id FROM bookings ORDER BY id LIMIT 1`).Scan(&targetID); err != nil {
        t.Fatalf("find seed booking: %v", err)
    }

    rival := model.StayRange{Arrival: date("2026-08-10"), Departure: date("2026-08-12")}
    lockHeld := make(chan struct{})
    rivalDone := make(chan error, 1)
    go func() {
        tx, err := bookings.DB().BeginTx(ctx, nil)
        if err != nil {
            rivalDone <- err
            return
        }
        if err := rooms.LockTx(ctx, tx, roomID); err != nil {
            _ = tx.Rollback()
            rivalDone <- err
            return
        }
        close(lockHeld)
        time.Sleep(200 * time.Millisecond)
        b := &model.Booking{
            Arrival:        rival.Arrival,
            Departure:      rival.Departure,
            StatusID:       statusID,
            TotalCostCents: 10000,
        }
        if err := bookings.CreateTx(ctx, tx, b, roomID); err != nil {
            _ = tx.Rollback()
            rivalDone <- err
            return
        }
        rivalDone <- tx.Commit()
    }()

    <-lockHeld
    tx, err := bookings.DB().BeginTx(ctx, nil)
    if err != nil {
        t.Fatalf("begin update tx: %v", err)
    }
    defer tx.Rollback()
    if err := rooms.LockTx(ctx, tx, roomID); err != nil {
        t.Fatalf("lock room: %v", err)
    }
    if err := <-rivalDone; err != nil {
        t.Fatalf("rival create: %v", err)
    }
    if _, err := bookings.GetByIDTx(ctx, tx, targetID); err != nil {
        t.Fatalf("read target booking: %v", err)
    }
    claims, err := bookings.ClaimsForRoomTx(ctx, tx, roomID)
    if err != nil {
        t.Fatalf("scan claims: %v", err)
    }
    moved := model.StayRange{Arrival: date("2026-08-11"), Departure: date("2026-08-13")}
    hit := FirstConflict(claims, moved, targetID, vacating)
    if hit == nil {
        t.Fatal("update admitted a stay overlapping a booking committed while waiting on the room lock")
    }
    if hit.Stay.Arrival != rival.Arrival {
        t.Errorf("conflict arrival = %s, want %s",
            hit.Stay.Arrival.Format(model.DateOnly), rival.Arrival.Format(model.DateOnly))
    }
}

// TestRoomForBookingLookup covers the pool-side room association read.
func TestRoomForBookingLookup(t *testing.T) {
    db := openTestDB(t)
    roomID, statusID := setupBookingFixture(t, db)
    bookings := NewBookingRepo(db)
    rooms := NewRoomRepo(db)
    vacating := map[string]bool{"CANCELLED": true}
    ctx := context.Background()

    stay := model.StayRange{Arrival: date("2026-09-01"), Departure: date("2026-09-04")}
    if ok, err := attemptCreate(ctx, bookings, rooms, roomID, statusID, stay, vacating); err != nil || !ok {
        t.Fatalf("seed booking: admitted=%v err=%v", ok, err)
    }
    var bookingID uint64
    if err := db.QueryRow(`SELECT id FROM bookings ORDER BY id LIMIT 1`).Scan(&bookingID); err != nil {
        t.Fatalf("find booking: %v", err)
    }
    got, err := bookings.RoomForBooking(ctx, bookingID)
    if err != nil {
        t.Fatalf("RoomForBooking: %v", err)
    }
    if got != roomID {
        t.Errorf("RoomForBooking = %d, want %d", got, roomID)
    }
    if _, err := bookings.RoomForBooking(ctx, bookingID+1000); err != ErrBookingNotFound {
        t.Errorf("RoomForBooking for missing booking = %v, want ErrBookingNotFound", err)
    }
}
