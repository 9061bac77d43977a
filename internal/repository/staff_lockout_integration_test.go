//go:build integration

package repository

import (
    "context"
    "database/sql"
    "sync"
    "testing"
)

const staffTestSchema = `CREATE TABLE IF NOT EXISTS staff (
    id BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
    first_name VARCHAR(64) NOT NULL,
    last_name VARCHAR(64) NOT NULL,
    phone VARCHAR(32) NOT NULL,
    email VARCHAR(128) NOT NULL,
    login VARCHAR(64) NOT NULL UNIQUE,
    password_hash VARCHAR(128) NOT NULL,
    position_id BIGINT UNSIGNED NULL,
    created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
    failed_attempts INT NOT NULL DEFAULT 0,
    blocked TINYINT(1) NOT NULL DEFAULT 0
) ENGINE=InnoDB`

func seedStaffAccount(t *testing.T, db *sql.DB) uint64 {
    t.Helper()
    ctx := context.Background()
    if _, err := db.ExecContext(ctx, staffTestSchema); err != nil {
        t.Fatalf("create staff table: %v", err)
    }
    if _, err := db.ExecContext(ctx, `DELETE FROM staff`); err != nil {
        t.Fatalf("clean staff: %v", err)
    }
    res, err := db.ExecContext(ctx,
        `INSERT INTO staff (first_name, last_name, phone, email, login, password_hash)
         VALUES ('Ann', 'Lee', '555-0101', 'ann@example.com', 'ann', 'x')`)
    if err != nil {
        t.Fatalf("seed staff: %v", err)
    }
    id, _ := res.LastInsertId()
    return uint64(id)
}

// TestRecordFailureConcurrent hammers the failure counter from many
// goroutines. The increment is a single UPDATE, so no attempt may be
// lost and the account must end up blocked with the counter cleared.
func TestRecordFailureConcurrent(t *testing.T) {
    db := openTestDB(t)
    id := seedStaffAccount(t, db)
    repo := NewStaffRepo(db)
    ctx := context.Background()

    const attempts = 10
    const limit = int32(attempts)
    var wg sync.WaitGroup
    errs := make(chan error, attempts)
    for i := 0; i < attempts; i++ {
        wg.Add(1)
        go func() {
            defer wg.Done()
            if _, err := repo.RecordFailure(ctx, id, limit); err != nil {
                errs <- err
            }
        }()
    }
    wg.Wait()
    close(errs)
    for err := range errs {
        t.Fatalf("RecordFailure: %v", err)
    }

    s, err := repo.GetByID(ctx, id)
    if err != nil {
        t.Fatalf("GetByID: %v", err)
    }
    if !s.Blocked {
        t.Errorf("after %d failures with limit %d, account is not blocked", attempts, limit)
    }
    if s.FailedAttempts != 0 {
        t.Errorf("failed_attempts = %d after blocking, want 0", s.FailedAttempts)
    }
}

// TestRecordFailureBelowLimit checks that failures short of the limit
// accumulate without blocking and that ResetFailures clears them.
func TestRecordFailureBelowLimit(t *testing.T) {
    db := openTestDB(t)
    id := seedStaffAccount(t, db)
    repo := NewStaffRepo(db)
    ctx := context.Background()

    for i := 0; i < 2; i++ {
        blocked, err := repo.RecordFailure(ctx, id, 3)
        if err != nil {
            t.Fatalf("RecordFailure: %v", err)
        }
        if blocked {
            t.Fatalf("blocked after %d failures with limit 3", i+1)
        }
    }
    s, err := repo.GetByID(ctx, id)
    if err != nil {
        t.Fatalf("GetByID: %v", err)
    }
    if s.FailedAttempts != 2 {
        t.Errorf("failed_attempts = %d, want 2", s.FailedAttempts)
    }
    if err := repo.ResetFailures(ctx, id); err != nil {
        t.Fatalf("ResetFailures: %v", err)
    }
    s, err = repo.GetByID(ctx, id)
    if err != nil {
        t.Fatalf("GetByID: %v", err)
    }
    if s.FailedAttempts != 0 {
        t.Errorf("failed_attempts = %d after reset, want 0", s.FailedAttempts)
    }

    if _, err := repo.RecordFailure(ctx, id+1000, 3); err != ErrStaffNotFound {
        t.Errorf("RecordFailure for missing staff = %v, want ErrStaffNotFound", err)
    }
}
